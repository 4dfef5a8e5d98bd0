package repository

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/store"
)

// progressDoc is the stored shape: userID -> courseID -> lessonID -> record.
// Map keys are decimal strings because the document is JSON.
type progressDoc map[string]map[string]map[string]models.LessonProgress

// ProgressRepository owns the per-user, per-lesson progress records.
type ProgressRepository interface {
	Get(ctx context.Context, userID int64, courseID string, lessonID int) (models.LessonProgress, bool)
	Set(ctx context.Context, userID int64, courseID string, lessonID int, record models.LessonProgress)
	Course(ctx context.Context, userID int64, courseID string) map[int]models.LessonProgress
}

type progressRepository struct {
	kv     store.Store
	logger zerolog.Logger
}

// NewProgressRepository constructs a repository over the given store.
func NewProgressRepository(kv store.Store, logger zerolog.Logger) ProgressRepository {
	return &progressRepository{
		kv:     kv,
		logger: logger.With().Str("component", "progress_repository").Logger(),
	}
}

func (r *progressRepository) Get(ctx context.Context, userID int64, courseID string, lessonID int) (models.LessonProgress, bool) {
	doc := readCollection[progressDoc](ctx, r.kv, keyProgress, r.logger)
	record, ok := doc[feedKey(userID)][courseID][strconv.Itoa(lessonID)]
	return record, ok
}

func (r *progressRepository) Set(ctx context.Context, userID int64, courseID string, lessonID int, record models.LessonProgress) {
	doc := readCollection[progressDoc](ctx, r.kv, keyProgress, r.logger)
	if doc == nil {
		doc = make(progressDoc)
	}
	userKey := feedKey(userID)
	if doc[userKey] == nil {
		doc[userKey] = make(map[string]map[string]models.LessonProgress)
	}
	if doc[userKey][courseID] == nil {
		doc[userKey][courseID] = make(map[string]models.LessonProgress)
	}
	doc[userKey][courseID][strconv.Itoa(lessonID)] = record
	writeCollection(ctx, r.kv, keyProgress, doc, r.logger)
}

func (r *progressRepository) Course(ctx context.Context, userID int64, courseID string) map[int]models.LessonProgress {
	doc := readCollection[progressDoc](ctx, r.kv, keyProgress, r.logger)
	records := make(map[int]models.LessonProgress)
	for key, record := range doc[feedKey(userID)][courseID] {
		lessonID, err := strconv.Atoi(key)
		if err != nil {
			r.logger.Warn().Str("lesson", key).Msg("skipping malformed lesson key")
			continue
		}
		records[lessonID] = record
	}
	return records
}
