package buckets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"roster-manager/core/kv"

	"go.uber.org/zap"
)

var (
	// ErrInvalidJSON is returned when a bucket value is not valid JSON.
	ErrInvalidJSON = errors.New("bucket value is not valid JSON")
	// ErrUnknownScope is returned for a scope other than local or session.
	ErrUnknownScope = errors.New("unknown bucket scope")
)

// Service reads and writes raw buckets of the local and session scopes.
type Service struct {
	repo     *kv.Repository
	logger   *zap.Logger
	onChange func()
}

// NewService creates a new buckets service. onChange, if set, runs after
// every successful write so dependent caches can be dropped.
func NewService(repo *kv.Repository, logger *zap.Logger, onChange func()) *Service {
	return &Service{repo: repo, logger: logger, onChange: onChange}
}

func (s *Service) store(scope string) (kv.Store, error) {
	switch scope {
	case kv.ScopeLocal, "":
		return s.repo.Local(), nil
	case kv.ScopeSession:
		if st := s.repo.Session(); st != nil {
			return st, nil
		}
		return nil, fmt.Errorf("%w: %s is not configured", ErrUnknownScope, scope)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownScope, scope)
	}
}

func (s *Service) changed(scope, key, op string) {
	s.logger.Debug("Bucket changed",
		zap.String("scope", scope),
		zap.String("bucket", key),
		zap.String("op", op),
	)
	if s.onChange != nil {
		s.onChange()
	}
}

// List returns the keys of scope starting with prefix.
func (s *Service) List(ctx context.Context, scope, prefix string) ([]string, error) {
	st, err := s.store(scope)
	if err != nil {
		return nil, err
	}
	return st.Keys(ctx, prefix)
}

// Get returns the raw value of a bucket.
func (s *Service) Get(ctx context.Context, scope, key string) (string, bool, error) {
	st, err := s.store(scope)
	if err != nil {
		return "", false, err
	}
	return st.Get(ctx, key)
}

// Put stores value under key. The value must be valid JSON.
func (s *Service) Put(ctx context.Context, scope, key string, value []byte) error {
	if !json.Valid(value) {
		return ErrInvalidJSON
	}
	st, err := s.store(scope)
	if err != nil {
		return err
	}
	if err := st.Set(ctx, key, string(value)); err != nil {
		return fmt.Errorf("store bucket %s: %w", key, err)
	}
	s.changed(scope, key, "put")
	return nil
}

// Delete removes a bucket.
func (s *Service) Delete(ctx context.Context, scope, key string) error {
	st, err := s.store(scope)
	if err != nil {
		return err
	}
	if err := st.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete bucket %s: %w", key, err)
	}
	s.changed(scope, key, "delete")
	return nil
}

// Import loads a storage dump (a JSON object of key to value) into scope.
func (s *Service) Import(ctx context.Context, scope string, dump []byte) ([]string, error) {
	st, err := s.store(scope)
	if err != nil {
		return nil, err
	}
	keys, err := kv.Import(ctx, st, dump)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Storage dump imported", zap.String("scope", scope), zap.Int("buckets", len(keys)))
	if s.onChange != nil {
		s.onChange()
	}
	return keys, nil
}
