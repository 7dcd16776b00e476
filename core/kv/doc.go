// Package kv is the bucket store the registration flows write into.
//
// The browser side of the application keeps team and participant data in a
// string-keyed, JSON-valued store (localStorage / sessionStorage). This package
// makes that store explicit:
//
//   - Store: Get/Set/Delete/Keys over string keys, one instance per scope
//     (ScopeLocal, ScopeSession).
//   - Backends: MemoryStore (tests, single node), DatabaseStore (kv_entries
//     table through GORM, MySQL or SQLite) and ObjectStore (one JSON object per
//     key in an S3/MinIO bucket).
//   - Repository: typed accessors per bucket key pattern (createdTeams_<user>,
//     submittedTeamData_<eventId>, teamApplications, playerList, staffList,
//     participantList_<eventId>, participantList_latest, session team_<teamId>).
//
// Decoding failures wrap ErrMalformed so callers can degrade to an empty bucket.
//
// # Usage
//
//	local, _ := kv.Open(cfg.Store, kv.ScopeLocal, kv.Backends{DB: db})
//	session, _ := kv.Open(cfg.Store, kv.ScopeSession, kv.Backends{DB: db})
//	repo := kv.NewRepository(local, session)
//	players, err := repo.Players(ctx)
package kv
