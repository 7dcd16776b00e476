package reconcile

import (
	"roster-manager/core/kv"
)

// resolveTeam runs the full resolution: the backend-confirmed team first,
// then the general team context resolver.
func (c *call) resolveTeam(eventID, teamID string, identity Identity) *Team {
	if t := c.backendTeam(eventID, teamID, identity); t != nil {
		return t
	}
	return c.teamContext(eventID, teamID, identity)
}

// backendTeam returns a team the backend has confirmed: the session-cached
// team_<teamId> of this event, or a created and submitted team of the caller.
func (c *call) backendTeam(eventID, teamID string, identity Identity) *Team {
	if teamID != "" {
		if obj := c.sessionTeam(teamID); obj != nil && obj.String("event_id", "eventId") == eventID {
			if t := normalizeTeam(obj, TeamSourceBackend); t != nil {
				return t
			}
		}
	}

	for _, user := range identity.Keys() {
		for _, obj := range c.createdTeams(kv.CreatedTeamsKey(user)) {
			if teamEventID(obj) != eventID || !obj.Bool("isCreated") {
				continue
			}
			if !obj.Bool("submittedForReview", "submitted_for_review") {
				continue
			}
			if t := normalizeTeam(obj, TeamSourceBackend); t != nil {
				return t
			}
		}
	}
	return nil
}

type createdTeam struct {
	bucket string
	obj    kv.Object
}

func (c *call) allCreatedTeams() []createdTeam {
	var out []createdTeam
	for _, bucket := range c.createdTeamBuckets() {
		for _, obj := range c.createdTeams(bucket) {
			out = append(out, createdTeam{bucket: bucket, obj: obj})
		}
	}
	return out
}

// teamContext resolves the team from the stored buckets alone, in order:
// an explicit team id in any created-team bucket, its submitted snapshot,
// a created team of the caller, the only team of the event, an application
// of the caller, the first snapshot of the event.
func (c *call) teamContext(eventID, teamID string, identity Identity) *Team {
	if teamID != "" {
		for _, ct := range c.allCreatedTeams() {
			if sameID(ct.obj.String("id", "teamId"), teamID) {
				if t := normalizeTeam(ct.obj, ct.bucket); t != nil {
					return t
				}
			}
		}
		if snap, ok := c.snapshot(eventID, teamID); ok && sameID(snap.TeamID, teamID) {
			if t := snapshotTeam(snap); t != nil {
				return t
			}
		}
	}

	for _, user := range identity.Keys() {
		bucket := kv.CreatedTeamsKey(user)
		for _, obj := range c.createdTeams(bucket) {
			if teamEventID(obj) == eventID && obj.Bool("isCreated") {
				if t := normalizeTeam(obj, bucket); t != nil {
					return t
				}
			}
		}
	}

	if t := c.onlyTeamOfEvent(eventID); t != nil {
		return t
	}

	if t := c.applicationTeam(eventID, identity); t != nil {
		return t
	}

	if snap, ok := c.snapshot(eventID, teamID); ok {
		return snapshotTeam(snap)
	}
	return nil
}

// onlyTeamOfEvent returns the team of eventID when exactly one distinct team
// exists for it across every created-team bucket.
func (c *call) onlyTeamOfEvent(eventID string) *Team {
	var found *Team
	for _, ct := range c.allCreatedTeams() {
		if teamEventID(ct.obj) != eventID {
			continue
		}
		t := normalizeTeam(ct.obj, ct.bucket)
		if t == nil {
			continue
		}
		if found != nil && found.ID != t.ID {
			return nil
		}
		if found == nil {
			found = t
		}
	}
	return found
}

// applicationTeam synthesizes a team from an approved or pending application
// the caller submitted for eventID.
func (c *call) applicationTeam(eventID string, identity Identity) *Team {
	primary := identity.Primary()
	if identity.UserID == "" && primary == "" {
		return nil
	}
	for _, app := range c.applications() {
		if app.String("eventId", "event_id") != eventID {
			continue
		}
		if !applicationAllowed(app.String("status"), true) {
			continue
		}
		mine := identity.UserID != "" && app.String("userId", "user_id") == identity.UserID
		if !mine && primary != "" {
			mine = app.String("submittedBy") == primary || app.String("applicantName") == primary
		}
		if !mine {
			continue
		}
		id := app.String("teamId", "team_id")
		if id == "" {
			continue
		}
		t := normalizeTeam(kv.Object{
			"teamId":     id,
			"teamName":   app.String("teamName", "team"),
			"leaderName": app.String("teamLeader"),
			"eventId":    eventID,
			"eventName":  app.String("eventName", "event_name"),
			"isCreated":  false,
		}, TeamSourceApplications)
		if t != nil {
			return t
		}
	}
	return nil
}

// snapshotTeam is the team captured in snap, with its id filled in from the
// snapshot when the stored team lacks one.
func snapshotTeam(snap kv.Snapshot) *Team {
	obj := kv.Object{}
	if snap.Team != nil {
		obj = snap.Team.Clone()
	}
	if teamID(obj) == "" {
		if snap.TeamID == "" {
			return nil
		}
		obj["teamId"] = snap.TeamID
	}
	return normalizeTeam(obj, TeamSourceSnapshot)
}
