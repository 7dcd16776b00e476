package kv

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one stored bucket row.
type Entry struct {
	Scope     string    `gorm:"column:scope;primaryKey;type:varchar(32)"`
	Key       string    `gorm:"column:bucket_key;primaryKey;type:varchar(191)"`
	Value     string    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (Entry) TableName() string {
	return "kv_entries"
}

// EntryColumns are the columns the bucket table must carry.
var EntryColumns = []string{"scope", "bucket_key", "value", "updated_at"}

// Migrate creates or updates the bucket table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", Entry{}.TableName(), err)
	}
	return nil
}

// DatabaseStore keeps the buckets of one scope in the kv_entries table.
type DatabaseStore struct {
	db    *gorm.DB
	scope string
}

// NewDatabaseStore creates a DatabaseStore for scope.
func NewDatabaseStore(db *gorm.DB, scope string) *DatabaseStore {
	return &DatabaseStore{db: db, scope: scope}
}

func (s *DatabaseStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry Entry
	res := s.db.WithContext(ctx).
		Where("scope = ? AND bucket_key = ?", s.scope, key).
		Limit(1).
		Find(&entry)
	if res.Error != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", key, res.Error)
	}
	if res.RowsAffected == 0 {
		return "", false, nil
	}
	return entry.Value, true, nil
}

func (s *DatabaseStore) Set(ctx context.Context, key, value string) error {
	entry := Entry{Scope: s.scope, Key: key, Value: value, UpdatedAt: time.Now()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}, {Name: "bucket_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *DatabaseStore) Delete(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).
		Where("scope = ? AND bucket_key = ?", s.scope, key).
		Delete(&Entry{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *DatabaseStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := s.db.WithContext(ctx).
		Model(&Entry{}).
		Where("scope = ? AND bucket_key LIKE ? ESCAPE '!'", s.scope, escapeLike(prefix)+"%").
		Order("bucket_key").
		Pluck("bucket_key", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list keys with prefix %q: %w", prefix, err)
	}
	return keys, nil
}

// escapeLike escapes LIKE wildcards; bucket keys routinely contain '_'.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
