package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/observability"
	"github.com/educode-platform/educode-api/internal/repository"
)

// ErrUnknownSection indicates the section name is not video, theory or practice.
var ErrUnknownSection = errors.New("unknown lesson section")

// ProgressService drives the per-lesson completion and unlock state machine.
//
// Lesson 1 of any course starts unlocked; every other lesson stays locked
// until its predecessor completes. A lesson completes when all three sections
// are done, and that transition unlocks the next lesson and emits exactly one
// lesson_unlocked notification. Re-marking an already done section changes
// nothing.
type ProgressService interface {
	MarkSection(ctx context.Context, userID int64, courseID string, lessonID int, section string) (models.LessonProgress, error)
	IsUnlocked(ctx context.Context, userID int64, courseID string, lessonID int) bool
	IsCompleted(ctx context.Context, userID int64, courseID string, lessonID int) bool
	LessonProgress(ctx context.Context, userID int64, courseID string, lessonID int) models.LessonProgress
	CourseProgress(ctx context.Context, userID int64, courseID string) map[int]models.LessonProgress
}

type progressService struct {
	repo          repository.ProgressRepository
	notifications NotificationService
	logger        zerolog.Logger
}

// NewProgressService constructs the unlock engine.
func NewProgressService(repo repository.ProgressRepository, notifications NotificationService, logger zerolog.Logger) ProgressService {
	return &progressService{
		repo:          repo,
		notifications: notifications,
		logger:        logger.With().Str("component", "progress_service").Logger(),
	}
}

func defaultProgress(lessonID int) models.LessonProgress {
	return models.LessonProgress{Unlocked: lessonID == 1}
}

func (s *progressService) MarkSection(ctx context.Context, userID int64, courseID string, lessonID int, section string) (models.LessonProgress, error) {
	record, ok := s.repo.Get(ctx, userID, courseID, lessonID)
	if !ok {
		record = defaultProgress(lessonID)
	}

	switch section {
	case models.SectionVideo:
		record.SectionsCompleted.Video = true
	case models.SectionTheory:
		record.SectionsCompleted.Theory = true
	case models.SectionPractice:
		record.SectionsCompleted.Practice = true
	default:
		return models.LessonProgress{}, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}

	wasCompleted := record.Completed
	if record.SectionsCompleted.AllDone() {
		record.Completed = true
	}
	s.repo.Set(ctx, userID, courseID, lessonID, record)

	// The cascade fires only on the transition into completed, never on
	// subsequent writes.
	if record.Completed && !wasCompleted {
		s.unlockNext(ctx, userID, courseID, lessonID)
		observability.LessonsCompleted().Inc()
	}

	return record, nil
}

func (s *progressService) unlockNext(ctx context.Context, userID int64, courseID string, lessonID int) {
	nextID := lessonID + 1

	next, ok := s.repo.Get(ctx, userID, courseID, nextID)
	if !ok {
		next = models.LessonProgress{Unlocked: true}
	} else {
		next.Unlocked = true
	}
	s.repo.Set(ctx, userID, courseID, nextID, next)

	_, err := s.notifications.Add(ctx, NotificationInput{
		UserID:   userID,
		Type:     models.NotificationTypeLessonUnlocked,
		Title:    "Lesson unlocked",
		Message:  fmt.Sprintf("Lesson %d is now available. Keep going!", nextID),
		CourseID: courseID,
		LessonID: nextID,
	})
	if err != nil {
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("failed to add unlock notification")
	}

	s.logger.Info().
		Int64("user_id", userID).
		Str("course_id", courseID).
		Int("lesson_id", lessonID).
		Msg("lesson completed, next lesson unlocked")
}

func (s *progressService) IsUnlocked(ctx context.Context, userID int64, courseID string, lessonID int) bool {
	record, ok := s.repo.Get(ctx, userID, courseID, lessonID)
	if !ok {
		return lessonID == 1
	}
	return record.Unlocked
}

func (s *progressService) IsCompleted(ctx context.Context, userID int64, courseID string, lessonID int) bool {
	record, _ := s.repo.Get(ctx, userID, courseID, lessonID)
	return record.Completed
}

func (s *progressService) LessonProgress(ctx context.Context, userID int64, courseID string, lessonID int) models.LessonProgress {
	record, ok := s.repo.Get(ctx, userID, courseID, lessonID)
	if !ok {
		return defaultProgress(lessonID)
	}
	return record
}

func (s *progressService) CourseProgress(ctx context.Context, userID int64, courseID string) map[int]models.LessonProgress {
	return s.repo.Course(ctx, userID, courseID)
}
