package repository

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/store"
)

type journalDoc map[string]map[string]map[string]models.JournalEntry

// JournalRepository owns the per-user, per-lesson journal entries. Writes
// shallow-merge the patch into any existing entry.
type JournalRepository interface {
	Get(ctx context.Context, userID int64, courseID string, lessonID int) models.JournalEntry
	Merge(ctx context.Context, userID int64, courseID string, lessonID int, patch models.JournalEntry) models.JournalEntry
	Course(ctx context.Context, userID int64, courseID string) map[int]models.JournalEntry
}

type journalRepository struct {
	kv     store.Store
	logger zerolog.Logger
}

// NewJournalRepository constructs a repository over the given store.
func NewJournalRepository(kv store.Store, logger zerolog.Logger) JournalRepository {
	return &journalRepository{
		kv:     kv,
		logger: logger.With().Str("component", "journal_repository").Logger(),
	}
}

// Get returns nil when no entry exists for the key.
func (r *journalRepository) Get(ctx context.Context, userID int64, courseID string, lessonID int) models.JournalEntry {
	doc := readCollection[journalDoc](ctx, r.kv, keyJournal, r.logger)
	return doc[feedKey(userID)][courseID][strconv.Itoa(lessonID)]
}

func (r *journalRepository) Merge(ctx context.Context, userID int64, courseID string, lessonID int, patch models.JournalEntry) models.JournalEntry {
	doc := readCollection[journalDoc](ctx, r.kv, keyJournal, r.logger)
	if doc == nil {
		doc = make(journalDoc)
	}
	userKey := feedKey(userID)
	if doc[userKey] == nil {
		doc[userKey] = make(map[string]map[string]models.JournalEntry)
	}
	if doc[userKey][courseID] == nil {
		doc[userKey][courseID] = make(map[string]models.JournalEntry)
	}

	lessonKey := strconv.Itoa(lessonID)
	entry := doc[userKey][courseID][lessonKey]
	if entry == nil {
		entry = make(models.JournalEntry)
	}
	for field, value := range patch {
		entry[field] = value
	}
	doc[userKey][courseID][lessonKey] = entry
	writeCollection(ctx, r.kv, keyJournal, doc, r.logger)
	return entry
}

// Course returns an empty map when the user has no entries for the course.
func (r *journalRepository) Course(ctx context.Context, userID int64, courseID string) map[int]models.JournalEntry {
	doc := readCollection[journalDoc](ctx, r.kv, keyJournal, r.logger)
	entries := make(map[int]models.JournalEntry)
	for key, entry := range doc[feedKey(userID)][courseID] {
		lessonID, err := strconv.Atoi(key)
		if err != nil {
			r.logger.Warn().Str("lesson", key).Msg("skipping malformed lesson key")
			continue
		}
		entries[lessonID] = entry
	}
	return entries
}
