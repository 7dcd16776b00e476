package reconcile

import (
	"context"
	"time"

	"roster-manager/core/kv"

	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Repository is the read side of the bucket store the reconciler consumes.
// *kv.Repository implements it.
type Repository interface {
	CreatedTeamBuckets(ctx context.Context) ([]string, error)
	CreatedTeams(ctx context.Context, bucketKey string) ([]kv.Object, error)
	SessionTeam(ctx context.Context, teamID string) (kv.Object, error)
	Snapshots(ctx context.Context, eventID string) ([]kv.Snapshot, error)
	Applications(ctx context.Context) ([]kv.Object, error)
	Players(ctx context.Context) ([]kv.Object, error)
	Staff(ctx context.Context) ([]kv.Object, error)
	ParticipantCache(ctx context.Context, eventID string) ([]kv.Object, error)
	LatestParticipantCache(ctx context.Context) (*kv.LatestCache, error)
}

// Reconciler builds participant datasets from the bucket store.
// It holds no per-call state and is safe for concurrent use.
type Reconciler struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
	locale language.Tag
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger used for unreadable bucket warnings.
func WithLogger(l *zap.Logger) Option {
	return func(r *Reconciler) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithClock sets the clock used for age derivation.
func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLocale sets the collation used to order names within a role.
func WithLocale(tag language.Tag) Option {
	return func(r *Reconciler) { r.locale = tag }
}

// New creates a Reconciler over repo. Names sort with Chinese collation
// unless WithLocale says otherwise.
func New(repo Repository, opts ...Option) *Reconciler {
	r := &Reconciler{
		repo:   repo,
		logger: zap.NewNop(),
		now:    time.Now,
		locale: language.Chinese,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultOptions returns the options of a plain dataset load for eventID:
// players and staff included, pending applications and snapshot
// preference off.
func DefaultOptions(eventID string) Options {
	return Options{EventID: eventID}
}

// LoadDataset reconciles every record source into one dataset.
// It never fails: unreadable buckets are logged and read as empty.
func (r *Reconciler) LoadDataset(ctx context.Context, opts Options) *Dataset {
	ds := &Dataset{
		Participants: []Record{},
		Meta:         Meta{Source: DatasetSourceLocal},
	}
	if opts.EventID == "" {
		return ds
	}

	c := r.newCall(ctx)
	team := c.resolveTeam(opts.EventID, opts.TeamID, opts.Identity)

	var buffer []Record
	if opts.PreferSnapshot {
		target := opts.TeamID
		if team != nil {
			target = team.ID
		}
		// A snapshot of another team must not replace the resolved one.
		if snap, ok := c.snapshot(opts.EventID, target); ok && (target == "" || sameID(snap.TeamID, target)) {
			if st := snapshotTeam(snap); st != nil {
				team = st
			}
			buffer = append(buffer, c.snapshotRecords(snap)...)
			ds.Meta.Source = DatasetSourceSnapshot
		}
	}

	teamID := opts.TeamID
	if teamID == "" && team != nil {
		teamID = team.ID
	}
	if team == nil && teamID != "" {
		team = &Team{ID: teamID, TeamName: UnsetTeamName, Source: TeamSourceExplicit}
	}
	ds.Team = team

	buffer = append(buffer, c.playerRecords(opts.EventID, teamID)...)
	buffer = append(buffer, c.staffRecords(opts.EventID, teamID)...)
	buffer = append(buffer, c.applicationRecords(opts.EventID, teamID, opts.IncludePending)...)
	buffer = append(buffer, c.participantCacheRecords(opts.EventID, teamID)...)

	records := filterRecords(mergeRecords(buffer), opts)
	sortRecords(records, r.locale)

	ds.Participants = records
	ds.Meta.Total = len(records)
	for _, rec := range records {
		if rec.RoleType == RolePlayer {
			ds.Meta.Players++
		}
	}
	ds.Meta.Staff = ds.Meta.Total - ds.Meta.Players

	r.logger.Debug("Dataset loaded",
		zap.String("event_id", opts.EventID),
		zap.String("team_id", teamID),
		zap.Int("total", ds.Meta.Total),
		zap.Int("players", ds.Meta.Players),
		zap.String("source", ds.Meta.Source),
	)
	return ds
}

// ResolveTeam returns the team context LoadDataset would use for eventID,
// or nil when none can be determined.
func (r *Reconciler) ResolveTeam(ctx context.Context, eventID, teamID string, identity Identity) *Team {
	if eventID == "" {
		return nil
	}
	return r.newCall(ctx).resolveTeam(eventID, teamID, identity)
}

func filterRecords(records []Record, opts Options) []Record {
	if !opts.ExcludePlayers && !opts.ExcludeStaff {
		return records
	}
	out := records[:0]
	for _, rec := range records {
		isPlayer := rec.RoleType == RolePlayer
		if opts.ExcludePlayers && isPlayer {
			continue
		}
		if opts.ExcludeStaff && !isPlayer {
			continue
		}
		out = append(out, rec)
	}
	return out
}
