package cmd

import (
	"context"
	"fmt"
	"os"

	"roster-manager/core/config"
	"roster-manager/core/database"
	"roster-manager/core/kv"
	"roster-manager/core/logger"
	"roster-manager/core/reconcile"
	"roster-manager/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime holds the configuration and connections shared by commands.
type runtime struct {
	cfg     *config.Config
	log     *zap.Logger
	db      *gorm.DB
	storage storage.Client
	repo    *kv.Repository
}

func bootstrap(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	rt := &runtime{cfg: cfg, log: l}
	if err := rt.openStores(ctx); err != nil {
		return nil, err
	}
	if err := rt.seed(ctx, seedFile); err != nil {
		return nil, err
	}
	return rt, nil
}

// openStores opens the local and session bucket stores on the configured driver.
func (rt *runtime) openStores(ctx context.Context) error {
	var b kv.Backends

	switch rt.cfg.Store.Driver {
	case kv.DriverDatabase:
		db, err := database.Connect(rt.cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if rt.cfg.Store.Migrate {
			if err := kv.Migrate(db); err != nil {
				return err
			}
		}
		rt.db = db
		b.DB = db
	case kv.DriverObject:
		client, err := storage.NewClient(rt.cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, rt.cfg.Storage.Bucket, rt.cfg.Storage.Region); err != nil {
			return err
		}
		rt.storage = client
		b.Storage = client
		b.Bucket = rt.cfg.Storage.Bucket
	}

	local, err := kv.Open(rt.cfg.Store, kv.ScopeLocal, b)
	if err != nil {
		return err
	}
	session, err := kv.Open(rt.cfg.Store, kv.ScopeSession, b)
	if err != nil {
		return err
	}
	rt.repo = kv.NewRepository(local, session)

	rt.log.Debug("Bucket store opened", zap.String("driver", rt.cfg.Store.Driver))
	return nil
}

func (rt *runtime) seed(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}
	dump, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}
	keys, err := kv.Import(ctx, rt.repo.Local(), dump)
	if err != nil {
		return fmt.Errorf("failed to import seed file %s: %w", path, err)
	}
	rt.log.Info("Seed imported", zap.String("file", path), zap.Int("buckets", len(keys)))
	return nil
}

func (rt *runtime) reconciler() *reconcile.Reconciler {
	return reconcile.New(rt.repo,
		reconcile.WithLogger(logger.Named(rt.log, "reconcile")),
		reconcile.WithLocale(rt.cfg.Reconcile.LocaleTag()),
	)
}
