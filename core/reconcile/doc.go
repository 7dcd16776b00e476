// Package reconcile builds the participant dataset of a competition event.
//
// Participant data for an event is spread over several buckets written by
// unrelated flows: the general player and staff lists, team applications,
// the immutable snapshot captured when a team submits, and a per-event
// participant cache. A Reconciler resolves the team an event view belongs to,
// gathers every record of that event (and team), normalizes the differing
// field spellings into Record, merges records of the same person and orders
// the result by role and name.
//
// The same person may appear in several roles (a coach who also competes).
// The merged record keeps the most important role as the primary entry and
// every other role as a secondary entry with its own key.
//
// LoadDataset never fails. A bucket that cannot be read or decoded is logged
// and read as empty.
package reconcile
