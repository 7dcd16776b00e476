package dataset

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"roster-manager/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// IDCardInfo is what can be derived from an ID card alone.
type IDCardInfo struct {
	Gender       string        `json:"gender"`
	Age          reconcile.Age `json:"age"`
	MaskedIDCard string        `json:"maskedIdCard"`
}

type cachedDataset struct {
	dataset *reconcile.Dataset
	built   time.Time
}

// Service builds datasets. Concurrent identical requests share one build, and
// with a positive TTL finished datasets are reused until they expire.
// Cached datasets are shared between callers and must not be modified.
type Service struct {
	reconciler *reconcile.Reconciler
	logger     *zap.Logger
	ttl        time.Duration
	now        func() time.Time

	mu    sync.RWMutex
	cache map[string]cachedDataset
	gen   uint64
	sf    singleflight.Group
}

// NewService creates a new dataset service. ttl <= 0 disables caching.
func NewService(reconciler *reconcile.Reconciler, logger *zap.Logger, ttl time.Duration) *Service {
	return &Service{
		reconciler: reconciler,
		logger:     logger,
		ttl:        ttl,
		now:        time.Now,
		cache:      make(map[string]cachedDataset),
	}
}

// Dataset returns the dataset for opts.
func (s *Service) Dataset(ctx context.Context, opts reconcile.Options) *reconcile.Dataset {
	key := cacheKey(opts)

	if ds, ok := s.cached(key); ok {
		return ds
	}

	// The build is shared by every waiting caller, so it must outlive the
	// request that happened to start it.
	buildCtx := context.WithoutCancel(ctx)
	result, _, shared := s.sf.Do(key, func() (any, error) {
		if ds, ok := s.cached(key); ok {
			return ds, nil
		}
		s.mu.RLock()
		gen := s.gen
		s.mu.RUnlock()

		ds := s.reconciler.LoadDataset(buildCtx, opts)
		if s.ttl > 0 {
			s.mu.Lock()
			// Invalidated while building: the result may predate the write.
			if s.gen == gen {
				s.cache[key] = cachedDataset{dataset: ds, built: s.now()}
			}
			s.mu.Unlock()
		}
		return ds, nil
	})
	if shared {
		s.logger.Debug("Dataset build shared", zap.String("key", key))
	}
	return result.(*reconcile.Dataset)
}

func (s *Service) cached(key string) (*reconcile.Dataset, bool) {
	if s.ttl <= 0 {
		return nil, false
	}
	s.mu.RLock()
	entry, ok := s.cache[key]
	s.mu.RUnlock()
	if !ok || s.now().Sub(entry.built) > s.ttl {
		return nil, false
	}
	return entry.dataset, true
}

// Invalidate drops every cached dataset.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cache = make(map[string]cachedDataset)
	s.gen++
	s.mu.Unlock()
}

// Team returns the resolved team context, or nil.
func (s *Service) Team(ctx context.Context, eventID, teamID string, identity reconcile.Identity) *reconcile.Team {
	return s.reconciler.ResolveTeam(ctx, eventID, teamID, identity)
}

// IDCard derives gender, age and the masked form of idCard.
func (s *Service) IDCard(idCard string) IDCardInfo {
	return IDCardInfo{
		Gender:       reconcile.NormalizeGender("", idCard),
		Age:          reconcile.AgeFromIDCard(idCard, s.now()),
		MaskedIDCard: reconcile.MaskIDCard(idCard),
	}
}

func cacheKey(opts reconcile.Options) string {
	return strings.Join([]string{
		opts.EventID,
		opts.TeamID,
		strconv.FormatBool(opts.ExcludePlayers),
		strconv.FormatBool(opts.ExcludeStaff),
		strconv.FormatBool(opts.IncludePending),
		strconv.FormatBool(opts.PreferSnapshot),
		opts.Identity.UserID,
		strings.Join(opts.Identity.Names, ","),
	}, "|")
}
