package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/repository"
	"github.com/educode-platform/educode-api/internal/store"
)

func newCurriculumService(t *testing.T) CurriculumService {
	t.Helper()
	return NewCurriculumService(repository.NewCourseRepository(store.NewMemoryStore(), zerolog.Nop()), zerolog.Nop())
}

func TestCreateCourseSlugifiesID(t *testing.T) {
	svc := newCurriculumService(t)
	ctx := context.Background()

	course, err := svc.CreateCourse(ctx, models.Course{Title: "Intro to Algorithms!"})
	require.NoError(t, err)
	require.Equal(t, "intro-to-algorithms", course.ID)
	require.Equal(t, models.CourseStatusDraft, course.Status)

	_, err = svc.CreateCourse(ctx, models.Course{ID: "Intro to Algorithms", Title: "Duplicate"})
	require.ErrorIs(t, err, ErrCourseExists)
}

func TestGetCourseAndLesson(t *testing.T) {
	svc := newCurriculumService(t)
	ctx := context.Background()

	_, err := svc.CreateCourse(ctx, models.Course{
		ID:    "algorithms",
		Title: "Algorithms",
		Lessons: []models.Lesson{
			{ID: 1, Title: "Variables"},
			{ID: 2, Title: "Loops"},
		},
	})
	require.NoError(t, err)

	course, err := svc.GetCourse(ctx, "algorithms")
	require.NoError(t, err)
	require.Len(t, course.Lessons, 2)

	lesson, err := svc.GetLesson(ctx, "algorithms", 2)
	require.NoError(t, err)
	require.Equal(t, "Loops", lesson.Title)

	_, err = svc.GetLesson(ctx, "algorithms", 9)
	require.ErrorIs(t, err, ErrLessonNotFound)
	_, err = svc.GetLesson(ctx, "missing", 1)
	require.ErrorIs(t, err, ErrCourseNotFound)
}

func TestAddLessonNumbersSequentially(t *testing.T) {
	svc := newCurriculumService(t)
	ctx := context.Background()

	_, err := svc.CreateCourse(ctx, models.Course{ID: "algorithms", Title: "Algorithms", Lessons: []models.Lesson{{ID: 1, Title: "Variables"}}})
	require.NoError(t, err)

	course, err := svc.AddLesson(ctx, "algorithms", models.Lesson{
		Title: "Loops",
		Tasks: []models.Task{{Title: "FizzBuzz"}, {Title: "Sum"}},
	})
	require.NoError(t, err)
	require.Len(t, course.Lessons, 2)
	require.Equal(t, 2, course.Lessons[1].ID)
	require.Equal(t, 1, course.Lessons[1].Tasks[0].ID)
	require.Equal(t, 2, course.Lessons[1].Tasks[1].ID)
}

func TestReplaceAndDeleteCourse(t *testing.T) {
	svc := newCurriculumService(t)
	ctx := context.Background()

	_, err := svc.CreateCourse(ctx, models.Course{ID: "algorithms", Title: "Algorithms"})
	require.NoError(t, err)

	updated, err := svc.ReplaceCourse(ctx, models.Course{ID: "algorithms", Title: "Algorithms II"})
	require.NoError(t, err)
	require.Equal(t, "Algorithms II", updated.Title)

	_, err = svc.ReplaceCourse(ctx, models.Course{ID: "missing", Title: "Nope"})
	require.ErrorIs(t, err, ErrCourseNotFound)

	require.NoError(t, svc.DeleteCourse(ctx, "algorithms"))
	require.ErrorIs(t, svc.DeleteCourse(ctx, "algorithms"), ErrCourseNotFound)
	require.Empty(t, svc.ListCourses(ctx))
}
