package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/repository"
)

// Submission failure sentinels.
var (
	ErrEmptyCode          = errors.New("submission code must not be empty")
	ErrSubmissionNotFound = errors.New("submission not found")
)

// SubmissionInput describes a student's task attempt.
type SubmissionInput struct {
	StudentID   int64
	CourseID    string
	LessonID    int
	TaskID      int
	Code        string
	Originality int
	AICheck     string
}

// SubmissionService records task attempts and teacher grading.
type SubmissionService interface {
	Submit(ctx context.Context, input SubmissionInput) (models.Submission, error)
	Grade(ctx context.Context, id string, score int, feedback string) (models.Submission, error)
	ListByStudent(ctx context.Context, studentID int64) []models.Submission
	ListByTask(ctx context.Context, courseID string, lessonID, taskID int) []models.Submission
}

type submissionService struct {
	repo          repository.SubmissionRepository
	courses       repository.CourseRepository
	journal       repository.JournalRepository
	notifications NotificationService
	logger        zerolog.Logger
	now           func() time.Time
}

// NewSubmissionService constructs a submission service.
func NewSubmissionService(repo repository.SubmissionRepository, courses repository.CourseRepository, journal repository.JournalRepository, notifications NotificationService, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		repo:          repo,
		courses:       courses,
		journal:       journal,
		notifications: notifications,
		logger:        logger.With().Str("component", "submission_service").Logger(),
		now:           time.Now,
	}
}

// Submit stores a pending submission and notifies the course teacher when
// one is assigned.
func (s *submissionService) Submit(ctx context.Context, input SubmissionInput) (models.Submission, error) {
	if strings.TrimSpace(input.Code) == "" {
		return models.Submission{}, ErrEmptyCode
	}

	originality := input.Originality
	if originality <= 0 || originality > 100 {
		originality = 100
	}
	aiCheck := input.AICheck
	if aiCheck == "" {
		aiCheck = models.AICheckPassed
	}

	submission := models.Submission{
		ID:          uuid.NewString(),
		StudentID:   input.StudentID,
		CourseID:    input.CourseID,
		LessonID:    input.LessonID,
		TaskID:      input.TaskID,
		Code:        input.Code,
		Originality: originality,
		AICheck:     aiCheck,
		Status:      models.SubmissionStatusPending,
		SubmittedAt: s.now().UTC(),
	}
	s.repo.Create(ctx, submission)

	if course, ok := s.courses.FindByID(ctx, input.CourseID); ok && course.TeacherID != nil {
		_, err := s.notifications.Add(ctx, NotificationInput{
			UserID:   *course.TeacherID,
			Type:     models.NotificationTypeSubmission,
			Title:    "New submission",
			Message:  fmt.Sprintf("A student submitted task %d of lesson %d in %s.", input.TaskID, input.LessonID, course.Title),
			CourseID: input.CourseID,
			LessonID: input.LessonID,
		})
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to notify teacher about submission")
		}
	}

	return submission, nil
}

// Grade marks a submission graded, notifies the student and merges the score
// into the lesson's journal entry.
func (s *submissionService) Grade(ctx context.Context, id string, score int, feedback string) (models.Submission, error) {
	status := models.SubmissionStatusGraded
	submission, err := s.repo.Update(ctx, id, repository.SubmissionPatch{
		Score:    &score,
		Feedback: &feedback,
		Status:   &status,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Submission{}, ErrSubmissionNotFound
		}
		return models.Submission{}, err
	}

	s.journal.Merge(ctx, submission.StudentID, submission.CourseID, submission.LessonID, models.JournalEntry{
		"taskGrade": score,
	})

	_, err = s.notifications.Add(ctx, NotificationInput{
		UserID:   submission.StudentID,
		Type:     models.NotificationTypeGrade,
		Title:    "New grade in the journal",
		Message:  fmt.Sprintf("Task %d of lesson %d was graded: %d points.", submission.TaskID, submission.LessonID, score),
		CourseID: submission.CourseID,
		LessonID: submission.LessonID,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to notify student about grade")
	}

	return submission, nil
}

func (s *submissionService) ListByStudent(ctx context.Context, studentID int64) []models.Submission {
	return s.repo.ListByStudent(ctx, studentID)
}

func (s *submissionService) ListByTask(ctx context.Context, courseID string, lessonID, taskID int) []models.Submission {
	return s.repo.ListByTask(ctx, courseID, lessonID, taskID)
}
