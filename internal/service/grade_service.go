package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/repository"
)

// ErrInvalidGrade indicates grade or maxGrade is out of range.
var ErrInvalidGrade = errors.New("invalid grade")

// GradeService stores lesson grades and journal entries.
type GradeService interface {
	SaveGrade(ctx context.Context, userID int64, courseID string, lessonID, grade, maxGrade int) (models.GradeRecord, error)
	Grade(ctx context.Context, userID int64, courseID string, lessonID int) (models.GradeRecord, bool)
	CourseGrades(ctx context.Context, userID int64, courseID string) map[int]models.GradeRecord
	SaveJournalEntry(ctx context.Context, userID int64, courseID string, lessonID int, patch models.JournalEntry) models.JournalEntry
	JournalEntry(ctx context.Context, userID int64, courseID string, lessonID int) models.JournalEntry
	CourseJournal(ctx context.Context, userID int64, courseID string) map[int]models.JournalEntry
}

type gradeService struct {
	grades  repository.GradeRepository
	journal repository.JournalRepository
	logger  zerolog.Logger
	now     func() time.Time
}

// NewGradeService constructs a grade and journal service.
func NewGradeService(grades repository.GradeRepository, journal repository.JournalRepository, logger zerolog.Logger) GradeService {
	return &gradeService{
		grades:  grades,
		journal: journal,
		logger:  logger.With().Str("component", "grade_service").Logger(),
		now:     time.Now,
	}
}

// SaveGrade overwrites any prior grade for the same lesson. Percentage and
// status are derived, never supplied by the caller.
func (s *gradeService) SaveGrade(ctx context.Context, userID int64, courseID string, lessonID, grade, maxGrade int) (models.GradeRecord, error) {
	if maxGrade <= 0 || grade < 0 || grade > maxGrade {
		return models.GradeRecord{}, ErrInvalidGrade
	}

	percentage := int(math.Round(float64(grade) / float64(maxGrade) * 100))
	// Pass/fail compares the raw grade against the threshold, so grades
	// are expected on a 0-100 scale regardless of maxGrade.
	status := models.GradeStatusFailed
	if grade >= models.GradePassThreshold {
		status = models.GradeStatusPassed
	}

	record := models.GradeRecord{
		Grade:       grade,
		MaxGrade:    maxGrade,
		Percentage:  percentage,
		Status:      status,
		CompletedAt: s.now().UTC(),
	}
	s.grades.Set(ctx, userID, courseID, lessonID, record)

	s.logger.Info().
		Int64("user_id", userID).
		Str("course_id", courseID).
		Int("lesson_id", lessonID).
		Int("percentage", percentage).
		Str("status", status).
		Msg("grade saved")

	return record, nil
}

func (s *gradeService) Grade(ctx context.Context, userID int64, courseID string, lessonID int) (models.GradeRecord, bool) {
	return s.grades.Get(ctx, userID, courseID, lessonID)
}

func (s *gradeService) CourseGrades(ctx context.Context, userID int64, courseID string) map[int]models.GradeRecord {
	return s.grades.Course(ctx, userID, courseID)
}

// SaveJournalEntry shallow-merges the patch over any existing entry and
// always stamps an update timestamp.
func (s *gradeService) SaveJournalEntry(ctx context.Context, userID int64, courseID string, lessonID int, patch models.JournalEntry) models.JournalEntry {
	if patch == nil {
		patch = make(models.JournalEntry)
	}
	patch["updatedAt"] = s.now().UTC().Format(time.RFC3339)
	return s.journal.Merge(ctx, userID, courseID, lessonID, patch)
}

func (s *gradeService) JournalEntry(ctx context.Context, userID int64, courseID string, lessonID int) models.JournalEntry {
	return s.journal.Get(ctx, userID, courseID, lessonID)
}

func (s *gradeService) CourseJournal(ctx context.Context, userID int64, courseID string) map[int]models.JournalEntry {
	return s.journal.Course(ctx, userID, courseID)
}
