package reconcile

import (
	"context"
	"strings"
	"time"

	"roster-manager/core/kv"

	"go.uber.org/zap"
)

// Application review states.
const (
	StatusApproved = "approved"
	StatusPending  = "pending"
)

// call memoizes bucket reads for the duration of one reconciler call, so a
// bucket consulted by several resolution steps is read and logged once.
type call struct {
	ctx    context.Context
	repo   Repository
	logger *zap.Logger
	now    time.Time

	lists     map[string][]kv.Object
	snapshots map[string][]kv.Snapshot
	buckets   []string
	listed    bool
}

func (r *Reconciler) newCall(ctx context.Context) *call {
	return &call{
		ctx:       ctx,
		repo:      r.repo,
		logger:    r.logger,
		now:       r.now(),
		lists:     make(map[string][]kv.Object),
		snapshots: make(map[string][]kv.Snapshot),
	}
}

func (c *call) unreadable(bucket string, err error) {
	c.logger.Warn("Unreadable bucket treated as empty",
		zap.String("bucket", bucket),
		zap.Error(err),
	)
}

func (c *call) list(bucket string, read func(context.Context) ([]kv.Object, error)) []kv.Object {
	if items, ok := c.lists[bucket]; ok {
		return items
	}
	items, err := read(c.ctx)
	if err != nil {
		c.unreadable(bucket, err)
		items = nil
	}
	c.lists[bucket] = items
	return items
}

func (c *call) createdTeamBuckets() []string {
	if c.listed {
		return c.buckets
	}
	c.listed = true
	keys, err := c.repo.CreatedTeamBuckets(c.ctx)
	if err != nil {
		c.unreadable(kv.PrefixCreatedTeams+"*", err)
		return nil
	}
	c.buckets = keys
	return keys
}

func (c *call) createdTeams(bucket string) []kv.Object {
	return c.list(bucket, func(ctx context.Context) ([]kv.Object, error) {
		return c.repo.CreatedTeams(ctx, bucket)
	})
}

func (c *call) sessionTeam(teamID string) kv.Object {
	obj, err := c.repo.SessionTeam(c.ctx, teamID)
	if err != nil {
		c.unreadable(kv.SessionTeamKey(teamID), err)
		return nil
	}
	return obj
}

func (c *call) applications() []kv.Object {
	return c.list(kv.KeyTeamApplications, c.repo.Applications)
}

func (c *call) snapshotList(eventID string) []kv.Snapshot {
	key := kv.SnapshotKey(eventID)
	if snaps, ok := c.snapshots[key]; ok {
		return snaps
	}
	snaps, err := c.repo.Snapshots(c.ctx, eventID)
	if err != nil {
		c.unreadable(key, err)
		snaps = nil
	}
	c.snapshots[key] = snaps
	return snaps
}

// snapshot picks the snapshot of teamID, or the first one when teamID is
// empty or has none. Callers that need the team's own snapshot check TeamID.
func (c *call) snapshot(eventID, teamID string) (kv.Snapshot, bool) {
	snaps := c.snapshotList(eventID)
	if len(snaps) == 0 {
		return kv.Snapshot{}, false
	}
	if teamID != "" {
		for _, s := range snaps {
			if sameID(s.TeamID, teamID) {
				return s, true
			}
		}
	}
	return snaps[0], true
}

func (c *call) snapshotRecords(snap kv.Snapshot) []Record {
	out := make([]Record, 0, len(snap.Players)+len(snap.Staff))
	for _, p := range snap.Players {
		out = append(out, baseRecord(fromSnapshot(p, snap), SourceSnapshot, c.now))
	}
	for _, s := range snap.Staff {
		out = append(out, baseRecord(fromSnapshot(s, snap), SourceSnapshot, c.now))
	}
	return out
}

// inScope keeps records of eventID and, when both sides name a team, of teamID.
func inScope(obj kv.Object, eventID, teamID string) bool {
	if obj.String("eventId", "event_id") != eventID {
		return false
	}
	if teamID == "" {
		return true
	}
	own := obj.String("teamId", "team_id")
	return own == "" || sameID(own, teamID)
}

func (c *call) playerRecords(eventID, teamID string) []Record {
	var out []Record
	for _, p := range c.list(kv.KeyPlayerList, c.repo.Players) {
		if inScope(p, eventID, teamID) {
			out = append(out, baseRecord(fromPlayerList(p), SourcePlayerList, c.now))
		}
	}
	return out
}

func (c *call) staffRecords(eventID, teamID string) []Record {
	var out []Record
	for _, s := range c.list(kv.KeyStaffList, c.repo.Staff) {
		if inScope(s, eventID, teamID) {
			out = append(out, baseRecord(fromStaffList(s), SourceStaffList, c.now))
		}
	}
	return out
}

func applicationAllowed(status string, includePending bool) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case StatusApproved:
		return true
	case StatusPending:
		return includePending
	}
	return false
}

func (c *call) applicationRecords(eventID, teamID string, includePending bool) []Record {
	var out []Record
	for _, app := range c.applications() {
		if !applicationAllowed(app.String("status"), includePending) {
			continue
		}
		if inScope(app, eventID, teamID) {
			out = append(out, baseRecord(fromApplication(app), SourceTeamApplications, c.now))
		}
	}
	return out
}

func (c *call) participantCache(eventID string) []kv.Object {
	items := c.list(kv.ParticipantCacheKey(eventID), func(ctx context.Context) ([]kv.Object, error) {
		return c.repo.ParticipantCache(ctx, eventID)
	})
	if len(items) > 0 {
		return items
	}
	latest, err := c.repo.LatestParticipantCache(c.ctx)
	if err != nil {
		c.unreadable(kv.KeyParticipantLatest, err)
		return nil
	}
	if latest == nil || latest.EventID != eventID {
		return nil
	}
	return latest.Data
}

func (c *call) participantCacheRecords(eventID, teamID string) []Record {
	var out []Record
	for _, p := range c.participantCache(eventID) {
		if inScope(p, eventID, teamID) {
			out = append(out, baseRecord(fromParticipantCache(p, teamID), SourceParticipantCache, c.now))
		}
	}
	return out
}
