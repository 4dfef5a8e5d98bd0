package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/repository"
)

// Curriculum failure sentinels.
var (
	ErrCourseNotFound = errors.New("course not found")
	ErrCourseExists   = errors.New("a course with this id already exists")
	ErrLessonNotFound = errors.New("lesson not found")
)

// CurriculumService manages subjects (courses) and their embedded lessons.
type CurriculumService interface {
	ListCourses(ctx context.Context) []models.Course
	GetCourse(ctx context.Context, id string) (models.Course, error)
	CreateCourse(ctx context.Context, course models.Course) (models.Course, error)
	ReplaceCourse(ctx context.Context, course models.Course) (models.Course, error)
	DeleteCourse(ctx context.Context, id string) error
	GetLesson(ctx context.Context, courseID string, lessonID int) (models.Lesson, error)
	AddLesson(ctx context.Context, courseID string, lesson models.Lesson) (models.Course, error)
}

type curriculumService struct {
	repo   repository.CourseRepository
	logger zerolog.Logger
}

// NewCurriculumService constructs a curriculum service.
func NewCurriculumService(repo repository.CourseRepository, logger zerolog.Logger) CurriculumService {
	return &curriculumService{
		repo:   repo,
		logger: logger.With().Str("component", "curriculum_service").Logger(),
	}
}

func (s *curriculumService) ListCourses(ctx context.Context) []models.Course {
	return s.repo.List(ctx)
}

func (s *curriculumService) GetCourse(ctx context.Context, id string) (models.Course, error) {
	course, ok := s.repo.FindByID(ctx, id)
	if !ok {
		return models.Course{}, ErrCourseNotFound
	}
	return course, nil
}

func (s *curriculumService) CreateCourse(ctx context.Context, course models.Course) (models.Course, error) {
	course.ID = slugify(course.ID)
	if course.ID == "" {
		course.ID = slugify(course.Title)
	}
	if course.ID == "" {
		return models.Course{}, ErrCourseNotFound
	}
	if _, exists := s.repo.FindByID(ctx, course.ID); exists {
		return models.Course{}, ErrCourseExists
	}
	if course.Status == "" {
		course.Status = models.CourseStatusDraft
	}

	s.repo.Create(ctx, course)
	s.logger.Info().Str("course_id", course.ID).Msg("course created")
	return course, nil
}

// ReplaceCourse swaps the whole stored object; partial course edits are not
// supported, matching the collection's replace-by-id contract.
func (s *curriculumService) ReplaceCourse(ctx context.Context, course models.Course) (models.Course, error) {
	if err := s.repo.Save(ctx, course); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Course{}, ErrCourseNotFound
		}
		return models.Course{}, err
	}
	return course, nil
}

func (s *curriculumService) DeleteCourse(ctx context.Context, id string) error {
	if err := s.repo.Remove(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCourseNotFound
		}
		return err
	}
	return nil
}

func (s *curriculumService) GetLesson(ctx context.Context, courseID string, lessonID int) (models.Lesson, error) {
	course, ok := s.repo.FindByID(ctx, courseID)
	if !ok {
		return models.Lesson{}, ErrCourseNotFound
	}
	lesson, ok := course.Lesson(lessonID)
	if !ok {
		return models.Lesson{}, ErrLessonNotFound
	}
	return lesson, nil
}

// AddLesson appends a lesson with the next sequential id.
func (s *curriculumService) AddLesson(ctx context.Context, courseID string, lesson models.Lesson) (models.Course, error) {
	course, ok := s.repo.FindByID(ctx, courseID)
	if !ok {
		return models.Course{}, ErrCourseNotFound
	}

	lesson.ID = len(course.Lessons) + 1
	for i := range lesson.Tasks {
		lesson.Tasks[i].ID = i + 1
	}
	course.Lessons = append(course.Lessons, lesson)

	if err := s.repo.Save(ctx, course); err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func slugify(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	var b strings.Builder
	lastDash := true
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}
