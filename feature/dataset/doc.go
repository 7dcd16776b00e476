// Package dataset serves reconciled participant datasets over HTTP.
//
// # Endpoints
//
//   - GET /dataset/:eventId: the merged, ordered participant list of an
//     event, optionally narrowed to a team and to players or staff.
//   - GET /dataset/:eventId/team: the team context of the event view.
//   - GET /idcard/:idCard: gender, age and masked number of an ID card.
//
// The caller identity (user id and names) steers team resolution. It is read
// from the user_id / user_name query parameters or the X-User-Id /
// X-User-Name headers.
package dataset
