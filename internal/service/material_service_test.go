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

func newMaterialFixture(t *testing.T) (MaterialService, repository.CourseRepository) {
	t.Helper()
	kv := store.NewMemoryStore()
	courses := repository.NewCourseRepository(kv, zerolog.Nop())
	svc := NewMaterialService(repository.NewMaterialRepository(kv, zerolog.Nop()), courses, zerolog.Nop())
	return svc, courses
}

func TestUploadDetectsContentTypeFromBytes(t *testing.T) {
	svc, courses := newMaterialFixture(t)
	ctx := context.Background()

	courses.Create(ctx, models.Course{ID: "algorithms", Title: "Algorithms", Lessons: []models.Lesson{{ID: 1, Title: "Variables"}}})

	material, err := svc.Upload(ctx, MaterialUpload{
		CourseID:   "algorithms",
		LessonID:   1,
		Filename:   "notes.bin",
		Data:       []byte("%PDF-1.4 fake document"),
		UploadedBy: 7,
	})
	require.NoError(t, err)
	require.Equal(t, "application/pdf", material.ContentType)
	require.Equal(t, int64(22), material.Size)
	require.NotEmpty(t, material.ID)

	listed := svc.ListByLesson(ctx, "algorithms", 1)
	require.Len(t, listed, 1)

	meta, data, err := svc.Download(ctx, material.ID)
	require.NoError(t, err)
	require.Equal(t, "notes.bin", meta.Filename)
	require.Equal(t, []byte("%PDF-1.4 fake document"), data)
}

func TestUploadValidatesTargets(t *testing.T) {
	svc, courses := newMaterialFixture(t)
	ctx := context.Background()

	courses.Create(ctx, models.Course{ID: "algorithms", Title: "Algorithms", Lessons: []models.Lesson{{ID: 1, Title: "Variables"}}})

	_, err := svc.Upload(ctx, MaterialUpload{CourseID: "algorithms", LessonID: 1})
	require.ErrorIs(t, err, ErrEmptyFile)

	_, err = svc.Upload(ctx, MaterialUpload{CourseID: "missing", LessonID: 1, Data: []byte("x")})
	require.ErrorIs(t, err, ErrCourseNotFound)

	_, err = svc.Upload(ctx, MaterialUpload{CourseID: "algorithms", LessonID: 9, Data: []byte("x")})
	require.ErrorIs(t, err, ErrLessonNotFound)
}

func TestDeleteMaterial(t *testing.T) {
	svc, courses := newMaterialFixture(t)
	ctx := context.Background()

	courses.Create(ctx, models.Course{ID: "algorithms", Title: "Algorithms", Lessons: []models.Lesson{{ID: 1, Title: "Variables"}}})

	material, err := svc.Upload(ctx, MaterialUpload{CourseID: "algorithms", LessonID: 1, Data: []byte("hello"), Filename: "a.txt"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, material.ID))
	require.ErrorIs(t, svc.Delete(ctx, material.ID), ErrMaterialNotFound)

	_, _, err = svc.Download(ctx, material.ID)
	require.ErrorIs(t, err, ErrMaterialNotFound)
}
