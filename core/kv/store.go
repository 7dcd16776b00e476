package kv

import (
	"context"
	"errors"
	"fmt"

	"roster-manager/core/storage"

	"gorm.io/gorm"
)

// Scopes partition the store the way the browser partitions localStorage and
// sessionStorage.
const (
	ScopeLocal   = "local"
	ScopeSession = "session"
)

// Supported store drivers.
const (
	DriverMemory   = "memory"
	DriverDatabase = "database"
	DriverObject   = "object"
)

var (
	// ErrMalformed marks a bucket whose value is not the JSON shape its key implies.
	ErrMalformed = errors.New("malformed bucket value")
	// ErrUnknownDriver is returned by Open for an unsupported driver name.
	ErrUnknownDriver = errors.New("unknown store driver")
)

// Store is a string-keyed store of JSON-encoded values.
// A missing key is reported with ok=false and no error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Keys lists stored keys starting with prefix, sorted ascending.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Backends carries the optional connections a driver may need.
type Backends struct {
	DB      *gorm.DB
	Storage storage.Client
	Bucket  string
}

// Open builds the store of one scope for the configured driver.
func Open(cfg Config, scope string, b Backends) (Store, error) {
	switch cfg.Driver {
	case DriverMemory, "":
		return NewMemoryStore(), nil
	case DriverDatabase:
		if b.DB == nil {
			return nil, fmt.Errorf("store driver %q requires a database connection", cfg.Driver)
		}
		return NewDatabaseStore(b.DB, scope), nil
	case DriverObject:
		if b.Storage == nil {
			return nil, fmt.Errorf("store driver %q requires a storage client", cfg.Driver)
		}
		return NewObjectStore(b.Storage, b.Bucket, cfg.Prefix, scope), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, cfg.Driver)
	}
}
