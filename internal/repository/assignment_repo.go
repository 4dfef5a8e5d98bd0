package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/store"
)

// TeacherAssignmentRepository owns the teacher-to-subject-to-group bindings.
type TeacherAssignmentRepository interface {
	List(ctx context.Context) []models.TeacherAssignment
	ListByTeacher(ctx context.Context, teacherID int64) []models.TeacherAssignment
	Create(ctx context.Context, assignment models.TeacherAssignment)
	Remove(ctx context.Context, id int64) error
}

type teacherAssignmentRepository struct {
	kv     store.Store
	logger zerolog.Logger
}

// NewTeacherAssignmentRepository constructs a repository over the given store.
func NewTeacherAssignmentRepository(kv store.Store, logger zerolog.Logger) TeacherAssignmentRepository {
	return &teacherAssignmentRepository{
		kv:     kv,
		logger: logger.With().Str("component", "teacher_assignment_repository").Logger(),
	}
}

func (r *teacherAssignmentRepository) List(ctx context.Context) []models.TeacherAssignment {
	return readCollection[[]models.TeacherAssignment](ctx, r.kv, keyTeacherAssignments, r.logger)
}

func (r *teacherAssignmentRepository) ListByTeacher(ctx context.Context, teacherID int64) []models.TeacherAssignment {
	var matched []models.TeacherAssignment
	for _, assignment := range r.List(ctx) {
		if assignment.TeacherID == teacherID {
			matched = append(matched, assignment)
		}
	}
	return matched
}

func (r *teacherAssignmentRepository) Create(ctx context.Context, assignment models.TeacherAssignment) {
	assignments := r.List(ctx)
	assignments = append(assignments, assignment)
	writeCollection(ctx, r.kv, keyTeacherAssignments, assignments, r.logger)
}

func (r *teacherAssignmentRepository) Remove(ctx context.Context, id int64) error {
	assignments := r.List(ctx)
	filtered := assignments[:0:0]
	for _, assignment := range assignments {
		if assignment.ID != id {
			filtered = append(filtered, assignment)
		}
	}
	if len(filtered) == len(assignments) {
		return ErrNotFound
	}
	writeCollection(ctx, r.kv, keyTeacherAssignments, filtered, r.logger)
	return nil
}

// LessonAssignmentPatch is a shallow-merge update for a lesson assignment.
type LessonAssignmentPatch struct {
	DueDate *time.Time
	Status  *string
}

// LessonAssignmentRepository owns the lesson scheduling collection.
type LessonAssignmentRepository interface {
	List(ctx context.Context) []models.LessonAssignment
	ListByGroup(ctx context.Context, groupID int64) []models.LessonAssignment
	FindByID(ctx context.Context, id int64) (models.LessonAssignment, bool)
	Create(ctx context.Context, assignment models.LessonAssignment)
	Update(ctx context.Context, id int64, patch LessonAssignmentPatch) (models.LessonAssignment, error)
	Remove(ctx context.Context, id int64) error
}

type lessonAssignmentRepository struct {
	kv     store.Store
	logger zerolog.Logger
}

// NewLessonAssignmentRepository constructs a repository over the given store.
func NewLessonAssignmentRepository(kv store.Store, logger zerolog.Logger) LessonAssignmentRepository {
	return &lessonAssignmentRepository{
		kv:     kv,
		logger: logger.With().Str("component", "lesson_assignment_repository").Logger(),
	}
}

func (r *lessonAssignmentRepository) List(ctx context.Context) []models.LessonAssignment {
	return readCollection[[]models.LessonAssignment](ctx, r.kv, keyLessonAssignments, r.logger)
}

func (r *lessonAssignmentRepository) ListByGroup(ctx context.Context, groupID int64) []models.LessonAssignment {
	var matched []models.LessonAssignment
	for _, assignment := range r.List(ctx) {
		if assignment.GroupID == groupID {
			matched = append(matched, assignment)
		}
	}
	return matched
}

func (r *lessonAssignmentRepository) FindByID(ctx context.Context, id int64) (models.LessonAssignment, bool) {
	for _, assignment := range r.List(ctx) {
		if assignment.ID == id {
			return assignment, true
		}
	}
	return models.LessonAssignment{}, false
}

func (r *lessonAssignmentRepository) Create(ctx context.Context, assignment models.LessonAssignment) {
	assignments := r.List(ctx)
	assignments = append(assignments, assignment)
	writeCollection(ctx, r.kv, keyLessonAssignments, assignments, r.logger)
}

func (r *lessonAssignmentRepository) Update(ctx context.Context, id int64, patch LessonAssignmentPatch) (models.LessonAssignment, error) {
	assignments := r.List(ctx)
	for i := range assignments {
		if assignments[i].ID != id {
			continue
		}
		if patch.DueDate != nil {
			assignments[i].DueDate = *patch.DueDate
		}
		if patch.Status != nil {
			assignments[i].Status = *patch.Status
		}
		writeCollection(ctx, r.kv, keyLessonAssignments, assignments, r.logger)
		return assignments[i], nil
	}
	return models.LessonAssignment{}, ErrNotFound
}

func (r *lessonAssignmentRepository) Remove(ctx context.Context, id int64) error {
	assignments := r.List(ctx)
	filtered := assignments[:0:0]
	for _, assignment := range assignments {
		if assignment.ID != id {
			filtered = append(filtered, assignment)
		}
	}
	if len(filtered) == len(assignments) {
		return ErrNotFound
	}
	writeCollection(ctx, r.kv, keyLessonAssignments, filtered, r.logger)
	return nil
}
