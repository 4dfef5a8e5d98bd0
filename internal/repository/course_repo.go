package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/store"
)

// CourseRepository owns the courses collection. Courses carry their lessons
// and tasks inline and are mutated by whole-object replacement.
type CourseRepository interface {
	List(ctx context.Context) []models.Course
	FindByID(ctx context.Context, id string) (models.Course, bool)
	Create(ctx context.Context, course models.Course)
	Save(ctx context.Context, course models.Course) error
	Remove(ctx context.Context, id string) error
	Replace(ctx context.Context, courses []models.Course)
}

type courseRepository struct {
	kv     store.Store
	logger zerolog.Logger
}

// NewCourseRepository constructs a repository over the given store.
func NewCourseRepository(kv store.Store, logger zerolog.Logger) CourseRepository {
	return &courseRepository{
		kv:     kv,
		logger: logger.With().Str("component", "course_repository").Logger(),
	}
}

func (r *courseRepository) List(ctx context.Context) []models.Course {
	return readCollection[[]models.Course](ctx, r.kv, keyCourses, r.logger)
}

func (r *courseRepository) FindByID(ctx context.Context, id string) (models.Course, bool) {
	for _, course := range r.List(ctx) {
		if course.ID == id {
			return course, true
		}
	}
	return models.Course{}, false
}

func (r *courseRepository) Create(ctx context.Context, course models.Course) {
	courses := r.List(ctx)
	courses = append(courses, course)
	writeCollection(ctx, r.kv, keyCourses, courses, r.logger)
}

// Save replaces the stored course with the same id.
func (r *courseRepository) Save(ctx context.Context, course models.Course) error {
	courses := r.List(ctx)
	for i := range courses {
		if courses[i].ID == course.ID {
			courses[i] = course
			writeCollection(ctx, r.kv, keyCourses, courses, r.logger)
			return nil
		}
	}
	return ErrNotFound
}

func (r *courseRepository) Remove(ctx context.Context, id string) error {
	courses := r.List(ctx)
	filtered := courses[:0:0]
	for _, course := range courses {
		if course.ID != id {
			filtered = append(filtered, course)
		}
	}
	if len(filtered) == len(courses) {
		return ErrNotFound
	}
	writeCollection(ctx, r.kv, keyCourses, filtered, r.logger)
	return nil
}

func (r *courseRepository) Replace(ctx context.Context, courses []models.Course) {
	writeCollection(ctx, r.kv, keyCourses, courses, r.logger)
}
