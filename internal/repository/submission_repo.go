package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/store"
)

// SubmissionPatch is a shallow-merge update for a submission.
type SubmissionPatch struct {
	Score       *int
	Feedback    *string
	Status      *string
	Originality *int
	AICheck     *string
}

// SubmissionRepository owns the submissions collection.
type SubmissionRepository interface {
	List(ctx context.Context) []models.Submission
	FindByID(ctx context.Context, id string) (models.Submission, bool)
	ListByStudent(ctx context.Context, studentID int64) []models.Submission
	ListByTask(ctx context.Context, courseID string, lessonID, taskID int) []models.Submission
	Create(ctx context.Context, submission models.Submission)
	Update(ctx context.Context, id string, patch SubmissionPatch) (models.Submission, error)
}

type submissionRepository struct {
	kv     store.Store
	logger zerolog.Logger
}

// NewSubmissionRepository constructs a repository over the given store.
func NewSubmissionRepository(kv store.Store, logger zerolog.Logger) SubmissionRepository {
	return &submissionRepository{
		kv:     kv,
		logger: logger.With().Str("component", "submission_repository").Logger(),
	}
}

func (r *submissionRepository) List(ctx context.Context) []models.Submission {
	return readCollection[[]models.Submission](ctx, r.kv, keySubmissions, r.logger)
}

func (r *submissionRepository) FindByID(ctx context.Context, id string) (models.Submission, bool) {
	for _, submission := range r.List(ctx) {
		if submission.ID == id {
			return submission, true
		}
	}
	return models.Submission{}, false
}

func (r *submissionRepository) ListByStudent(ctx context.Context, studentID int64) []models.Submission {
	var matched []models.Submission
	for _, submission := range r.List(ctx) {
		if submission.StudentID == studentID {
			matched = append(matched, submission)
		}
	}
	return matched
}

func (r *submissionRepository) ListByTask(ctx context.Context, courseID string, lessonID, taskID int) []models.Submission {
	var matched []models.Submission
	for _, submission := range r.List(ctx) {
		if submission.CourseID == courseID && submission.LessonID == lessonID && submission.TaskID == taskID {
			matched = append(matched, submission)
		}
	}
	return matched
}

func (r *submissionRepository) Create(ctx context.Context, submission models.Submission) {
	submissions := r.List(ctx)
	submissions = append(submissions, submission)
	writeCollection(ctx, r.kv, keySubmissions, submissions, r.logger)
}

func (r *submissionRepository) Update(ctx context.Context, id string, patch SubmissionPatch) (models.Submission, error) {
	submissions := r.List(ctx)
	for i := range submissions {
		if submissions[i].ID != id {
			continue
		}
		if patch.Score != nil {
			submissions[i].Score = *patch.Score
		}
		if patch.Feedback != nil {
			submissions[i].Feedback = *patch.Feedback
		}
		if patch.Status != nil {
			submissions[i].Status = *patch.Status
		}
		if patch.Originality != nil {
			submissions[i].Originality = *patch.Originality
		}
		if patch.AICheck != nil {
			submissions[i].AICheck = *patch.AICheck
		}
		writeCollection(ctx, r.kv, keySubmissions, submissions, r.logger)
		return submissions[i], nil
	}
	return models.Submission{}, ErrNotFound
}
