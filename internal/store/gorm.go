package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// KVEntry is the single-table schema backing the GORM store.
type KVEntry struct {
	Key   string `gorm:"primaryKey;size:255"`
	Value string `gorm:"type:text;not null"`
}

// TableName keeps the table name stable across drivers.
func (KVEntry) TableName() string { return "kv_entries" }

// GormStore persists collections as rows of a key-value table, one row per
// collection. Works against SQLite or Postgres depending on the dialector
// the caller connected with.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the backing table and returns the store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Get(ctx context.Context, key string) (string, error) {
	var entry KVEntry
	if err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return entry.Value, nil
}

func (s *GormStore) Set(ctx context.Context, key, value string) error {
	entry := KVEntry{Key: key, Value: value}
	return s.db.WithContext(ctx).Save(&entry).Error
}

func (s *GormStore) Remove(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&KVEntry{}, "key = ?", key).Error
}
