package handler

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/middleware"
	"github.com/educode-platform/educode-api/internal/service"
	"github.com/educode-platform/educode-api/internal/utils"
)

// MaterialHandler wires lesson material upload and download routes.
type MaterialHandler struct {
	service service.MaterialService
	logger  zerolog.Logger
}

// NewMaterialHandler constructs the handler.
func NewMaterialHandler(service service.MaterialService, logger zerolog.Logger) *MaterialHandler {
	return &MaterialHandler{
		service: service,
		logger:  logger.With().Str("component", "material_handler").Logger(),
	}
}

// Register attaches the read endpoints.
func (h *MaterialHandler) Register(router fiber.Router) {
	router.Get("", h.listByLesson)
	router.Get("/:id/download", h.download)
}

// RegisterAdmin attaches the mutating endpoints.
func (h *MaterialHandler) RegisterAdmin(router fiber.Router) {
	router.Post("", h.upload)
	router.Delete("/:id", h.delete)
}

func (h *MaterialHandler) listByLesson(c *fiber.Ctx) error {
	courseID := c.Query("courseId")
	if courseID == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "courseId query parameter required")
	}
	lessonID, err := parseQueryInt(c, "lessonId")
	if err != nil || lessonID <= 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid lessonId")
	}

	materials := h.service.ListByLesson(c.Context(), courseID, lessonID)
	return utils.SendSuccess(c, "materials retrieved", materials)
}

func (h *MaterialHandler) download(c *fiber.Ctx) error {
	material, data, err := h.service.Download(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrMaterialNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "lesson material not found")
		}
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load material")
	}

	c.Set(fiber.HeaderContentType, material.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, material.Filename))
	return c.Send(data)
}

func (h *MaterialHandler) upload(c *fiber.Ctx) error {
	courseID := c.FormValue("courseId")
	lessonID, err := parseFormInt(c, "lessonId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid lessonId")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "file missing")
	}

	src, err := file.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "could not read uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "could not read uploaded file")
	}

	material, err := h.service.Upload(c.Context(), service.MaterialUpload{
		CourseID:   courseID,
		LessonID:   lessonID,
		Filename:   file.Filename,
		Data:       data,
		UploadedBy: middleware.UserIDFromContext(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyFile):
			return utils.SendError(c, fiber.StatusBadRequest, "uploaded file is empty")
		case errors.Is(err, service.ErrCourseNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "course not found")
		case errors.Is(err, service.ErrLessonNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "lesson not found")
		}
		h.logger.Error().Err(err).Msg("material upload failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "upload failed")
	}

	return utils.SendCreated(c, "material uploaded", material)
}

func (h *MaterialHandler) delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, service.ErrMaterialNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "lesson material not found")
		}
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete material")
	}
	return utils.SendSuccess(c, "material deleted", nil)
}
