package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/internal/store"
)

// MaterialRepository owns uploaded lesson materials. Metadata and raw file
// bytes live under separate keys so listing stays cheap.
type MaterialRepository interface {
	List(ctx context.Context) []models.LessonMaterial
	ListByLesson(ctx context.Context, courseID string, lessonID int) []models.LessonMaterial
	FindByID(ctx context.Context, id string) (models.LessonMaterial, bool)
	Create(ctx context.Context, material models.LessonMaterial, data []byte)
	Content(ctx context.Context, id string) ([]byte, bool)
	Remove(ctx context.Context, id string) error
}

type materialRepository struct {
	kv     store.Store
	logger zerolog.Logger
}

// NewMaterialRepository constructs a repository over the given store.
func NewMaterialRepository(kv store.Store, logger zerolog.Logger) MaterialRepository {
	return &materialRepository{
		kv:     kv,
		logger: logger.With().Str("component", "material_repository").Logger(),
	}
}

func (r *materialRepository) List(ctx context.Context) []models.LessonMaterial {
	return readCollection[[]models.LessonMaterial](ctx, r.kv, keyLessonMaterials, r.logger)
}

func (r *materialRepository) ListByLesson(ctx context.Context, courseID string, lessonID int) []models.LessonMaterial {
	var matched []models.LessonMaterial
	for _, material := range r.List(ctx) {
		if material.CourseID == courseID && material.LessonID == lessonID {
			matched = append(matched, material)
		}
	}
	return matched
}

func (r *materialRepository) FindByID(ctx context.Context, id string) (models.LessonMaterial, bool) {
	for _, material := range r.List(ctx) {
		if material.ID == id {
			return material, true
		}
	}
	return models.LessonMaterial{}, false
}

func (r *materialRepository) Create(ctx context.Context, material models.LessonMaterial, data []byte) {
	materials := r.List(ctx)
	materials = append(materials, material)
	writeCollection(ctx, r.kv, keyLessonMaterials, materials, r.logger)

	files := r.files(ctx)
	files[material.ID] = data
	writeCollection(ctx, r.kv, keyLessonMaterialData, files, r.logger)
}

func (r *materialRepository) Content(ctx context.Context, id string) ([]byte, bool) {
	data, ok := r.files(ctx)[id]
	return data, ok
}

func (r *materialRepository) Remove(ctx context.Context, id string) error {
	materials := r.List(ctx)
	filtered := materials[:0:0]
	for _, material := range materials {
		if material.ID != id {
			filtered = append(filtered, material)
		}
	}
	if len(filtered) == len(materials) {
		return ErrNotFound
	}
	writeCollection(ctx, r.kv, keyLessonMaterials, filtered, r.logger)

	files := r.files(ctx)
	delete(files, id)
	writeCollection(ctx, r.kv, keyLessonMaterialData, files, r.logger)
	return nil
}

func (r *materialRepository) files(ctx context.Context) map[string][]byte {
	files := readCollection[map[string][]byte](ctx, r.kv, keyLessonMaterialData, r.logger)
	if files == nil {
		files = make(map[string][]byte)
	}
	return files
}
