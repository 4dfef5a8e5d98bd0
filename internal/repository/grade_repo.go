package repository

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/store"
)

type gradeDoc map[string]map[string]map[string]models.GradeRecord

// GradeRepository owns the per-user, per-lesson grade records. A save
// overwrites any prior grade for the same key.
type GradeRepository interface {
	Get(ctx context.Context, userID int64, courseID string, lessonID int) (models.GradeRecord, bool)
	Set(ctx context.Context, userID int64, courseID string, lessonID int, record models.GradeRecord)
	Course(ctx context.Context, userID int64, courseID string) map[int]models.GradeRecord
}

type gradeRepository struct {
	kv     store.Store
	logger zerolog.Logger
}

// NewGradeRepository constructs a repository over the given store.
func NewGradeRepository(kv store.Store, logger zerolog.Logger) GradeRepository {
	return &gradeRepository{
		kv:     kv,
		logger: logger.With().Str("component", "grade_repository").Logger(),
	}
}

func (r *gradeRepository) Get(ctx context.Context, userID int64, courseID string, lessonID int) (models.GradeRecord, bool) {
	doc := readCollection[gradeDoc](ctx, r.kv, keyGrades, r.logger)
	record, ok := doc[feedKey(userID)][courseID][strconv.Itoa(lessonID)]
	return record, ok
}

func (r *gradeRepository) Set(ctx context.Context, userID int64, courseID string, lessonID int, record models.GradeRecord) {
	doc := readCollection[gradeDoc](ctx, r.kv, keyGrades, r.logger)
	if doc == nil {
		doc = make(gradeDoc)
	}
	userKey := feedKey(userID)
	if doc[userKey] == nil {
		doc[userKey] = make(map[string]map[string]models.GradeRecord)
	}
	if doc[userKey][courseID] == nil {
		doc[userKey][courseID] = make(map[string]models.GradeRecord)
	}
	doc[userKey][courseID][strconv.Itoa(lessonID)] = record
	writeCollection(ctx, r.kv, keyGrades, doc, r.logger)
}

func (r *gradeRepository) Course(ctx context.Context, userID int64, courseID string) map[int]models.GradeRecord {
	doc := readCollection[gradeDoc](ctx, r.kv, keyGrades, r.logger)
	records := make(map[int]models.GradeRecord)
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
