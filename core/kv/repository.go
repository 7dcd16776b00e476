package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Bucket keys and key prefixes written by the registration flows.
const (
	PrefixCreatedTeams      = "createdTeams_"
	PrefixSubmittedTeamData = "submittedTeamData_"
	KeyTeamApplications     = "teamApplications"
	KeyPlayerList           = "playerList"
	KeyStaffList            = "staffList"
	PrefixParticipantList   = "participantList_"
	KeyParticipantLatest    = "participantList_latest"
	PrefixSessionTeam       = "team_"
)

// CreatedTeamsKey is the bucket holding the teams created by user.
func CreatedTeamsKey(user string) string { return PrefixCreatedTeams + user }

// SnapshotKey is the bucket holding the submitted snapshots of an event.
func SnapshotKey(eventID string) string { return PrefixSubmittedTeamData + eventID }

// ParticipantCacheKey is the participant cache bucket of an event.
func ParticipantCacheKey(eventID string) string { return PrefixParticipantList + eventID }

// SessionTeamKey is the session-scoped cached backend team.
func SessionTeamKey(teamID string) string { return PrefixSessionTeam + teamID }

// Snapshot is one immutable roster captured at submission time.
type Snapshot struct {
	TeamID  string
	Team    Object
	Players []Object
	Staff   []Object
}

// LatestCache is the participantList_latest bucket.
type LatestCache struct {
	EventID string
	Data    []Object
}

// Repository gives typed access to the buckets of the local and session scopes.
// Missing keys read as empty. Values that are not valid JSON of the expected
// shape return an error wrapping ErrMalformed.
type Repository struct {
	local   Store
	session Store
}

// NewRepository creates a Repository. session may be nil.
func NewRepository(local, session Store) *Repository {
	return &Repository{local: local, session: session}
}

// Local returns the local-scope store.
func (r *Repository) Local() Store { return r.local }

// Session returns the session-scope store, which may be nil.
func (r *Repository) Session() Store { return r.session }

// CreatedTeamBuckets lists every createdTeams_<user> key.
func (r *Repository) CreatedTeamBuckets(ctx context.Context) ([]string, error) {
	return r.local.Keys(ctx, PrefixCreatedTeams)
}

// CreatedTeams reads one createdTeams_<user> bucket by its full key.
func (r *Repository) CreatedTeams(ctx context.Context, bucketKey string) ([]Object, error) {
	return r.readList(ctx, r.local, bucketKey)
}

// SessionTeam reads the session-cached team_<teamId> object; nil when absent.
func (r *Repository) SessionTeam(ctx context.Context, teamID string) (Object, error) {
	if r.session == nil || teamID == "" {
		return nil, nil
	}
	key := SessionTeamKey(teamID)
	raw, ok, err := r.session.Get(ctx, key)
	if err != nil || !ok {
		return nil, err
	}
	var obj map[string]any
	if err := decode(key, raw, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	return Object(obj), nil
}

// Snapshots reads submittedTeamData_<eventId>.
func (r *Repository) Snapshots(ctx context.Context, eventID string) ([]Snapshot, error) {
	items, err := r.readList(ctx, r.local, SnapshotKey(eventID))
	if err != nil {
		return nil, err
	}
	out := make([]Snapshot, 0, len(items))
	for _, item := range items {
		team := item.Object("team")
		teamID := item.String("teamId", "team_id")
		if teamID == "" && team != nil {
			teamID = team.String("id", "teamId")
		}
		out = append(out, Snapshot{
			TeamID:  teamID,
			Team:    team,
			Players: item.List("players"),
			Staff:   item.List("staff"),
		})
	}
	return out, nil
}

// Applications reads teamApplications.
func (r *Repository) Applications(ctx context.Context) ([]Object, error) {
	return r.readList(ctx, r.local, KeyTeamApplications)
}

// Players reads playerList.
func (r *Repository) Players(ctx context.Context) ([]Object, error) {
	return r.readList(ctx, r.local, KeyPlayerList)
}

// Staff reads staffList.
func (r *Repository) Staff(ctx context.Context) ([]Object, error) {
	return r.readList(ctx, r.local, KeyStaffList)
}

// ParticipantCache reads participantList_<eventId>.
func (r *Repository) ParticipantCache(ctx context.Context, eventID string) ([]Object, error) {
	return r.readList(ctx, r.local, ParticipantCacheKey(eventID))
}

// LatestParticipantCache reads participantList_latest; nil when absent.
func (r *Repository) LatestParticipantCache(ctx context.Context) (*LatestCache, error) {
	raw, ok, err := r.local.Get(ctx, KeyParticipantLatest)
	if err != nil || !ok {
		return nil, err
	}
	var obj map[string]any
	if err := decode(KeyParticipantLatest, raw, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}
	latest := Object(obj)
	arr, _ := latest["data"].([]any)
	return &LatestCache{
		EventID: latest.String("eventId", "event_id"),
		Data:    objectsOf(arr),
	}, nil
}

func (r *Repository) readList(ctx context.Context, store Store, key string) ([]Object, error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		return nil, err
	}
	var arr []any
	if err := decode(key, raw, &arr); err != nil {
		return nil, err
	}
	return objectsOf(arr), nil
}

func decode(key, raw string, v any) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("bucket %s: %w: %w", key, ErrMalformed, err)
	}
	return nil
}
