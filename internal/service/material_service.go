package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/repository"
)

// Material failure sentinels.
var (
	ErrMaterialNotFound = errors.New("lesson material not found")
	ErrEmptyFile        = errors.New("uploaded file is empty")
)

// MaterialUpload describes a file attached to a lesson.
type MaterialUpload struct {
	CourseID   string
	LessonID   int
	Filename   string
	Data       []byte
	UploadedBy int64
}

// MaterialService stores and serves uploaded lesson materials.
type MaterialService interface {
	Upload(ctx context.Context, upload MaterialUpload) (models.LessonMaterial, error)
	ListByLesson(ctx context.Context, courseID string, lessonID int) []models.LessonMaterial
	Download(ctx context.Context, id string) (models.LessonMaterial, []byte, error)
	Delete(ctx context.Context, id string) error
}

type materialService struct {
	repo    repository.MaterialRepository
	courses repository.CourseRepository
	logger  zerolog.Logger
	now     func() time.Time
}

// NewMaterialService constructs a material service.
func NewMaterialService(repo repository.MaterialRepository, courses repository.CourseRepository, logger zerolog.Logger) MaterialService {
	return &materialService{
		repo:    repo,
		courses: courses,
		logger:  logger.With().Str("component", "material_service").Logger(),
		now:     time.Now,
	}
}

// Upload detects the content type from the bytes, never from the filename.
func (s *materialService) Upload(ctx context.Context, upload MaterialUpload) (models.LessonMaterial, error) {
	if len(upload.Data) == 0 {
		return models.LessonMaterial{}, ErrEmptyFile
	}

	course, ok := s.courses.FindByID(ctx, upload.CourseID)
	if !ok {
		return models.LessonMaterial{}, ErrCourseNotFound
	}
	if _, ok := course.Lesson(upload.LessonID); !ok {
		return models.LessonMaterial{}, ErrLessonNotFound
	}

	filename := strings.TrimSpace(upload.Filename)
	if filename == "" {
		filename = "material"
	}

	material := models.LessonMaterial{
		ID:          uuid.NewString(),
		CourseID:    upload.CourseID,
		LessonID:    upload.LessonID,
		Filename:    filename,
		ContentType: mimetype.Detect(upload.Data).String(),
		Size:        int64(len(upload.Data)),
		UploadedBy:  upload.UploadedBy,
		UploadedAt:  s.now().UTC(),
	}
	s.repo.Create(ctx, material, upload.Data)

	s.logger.Info().
		Str("material_id", material.ID).
		Str("content_type", material.ContentType).
		Int64("size", material.Size).
		Msg("lesson material uploaded")
	return material, nil
}

func (s *materialService) ListByLesson(ctx context.Context, courseID string, lessonID int) []models.LessonMaterial {
	return s.repo.ListByLesson(ctx, courseID, lessonID)
}

func (s *materialService) Download(ctx context.Context, id string) (models.LessonMaterial, []byte, error) {
	material, ok := s.repo.FindByID(ctx, id)
	if !ok {
		return models.LessonMaterial{}, nil, ErrMaterialNotFound
	}
	data, ok := s.repo.Content(ctx, id)
	if !ok {
		return models.LessonMaterial{}, nil, ErrMaterialNotFound
	}
	return material, data, nil
}

func (s *materialService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Remove(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMaterialNotFound
		}
		return err
	}
	return nil
}
