package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/dto"
	"github.com/educode-platform/educode-api/internal/middleware"
	"github.com/educode-platform/educode-api/internal/service"
	"github.com/educode-platform/educode-api/internal/utils"
)

// ProgressHandler wires the lesson progress and unlock routes.
type ProgressHandler struct {
	service   service.ProgressService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewProgressHandler constructs the handler.
func NewProgressHandler(service service.ProgressService, validator *validator.Validate, logger zerolog.Logger) *ProgressHandler {
	return &ProgressHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "progress_handler").Logger(),
	}
}

// Register attaches the progress endpoints.
func (h *ProgressHandler) Register(router fiber.Router) {
	router.Get("/:courseId", h.courseProgress)
	router.Get("/:courseId/lessons/:lessonId", h.lessonProgress)
	router.Post("/sections", h.markSection)
}

func (h *ProgressHandler) courseProgress(c *fiber.Ctx) error {
	userID := middleware.UserIDFromContext(c)
	progress := h.service.CourseProgress(c.Context(), userID, c.Params("courseId"))
	return utils.SendSuccess(c, "course progress", progress)
}

func (h *ProgressHandler) lessonProgress(c *fiber.Ctx) error {
	lessonID, err := parseIntParam(c, "lessonId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	userID := middleware.UserIDFromContext(c)
	progress := h.service.LessonProgress(c.Context(), userID, c.Params("courseId"), lessonID)
	return utils.SendSuccess(c, "lesson progress", progress)
}

func (h *ProgressHandler) markSection(c *fiber.Ctx) error {
	var payload dto.MarkSectionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	userID := middleware.UserIDFromContext(c)
	progress, err := h.service.MarkSection(c.Context(), userID, payload.CourseID, payload.LessonID, payload.Section)
	if err != nil {
		if errors.Is(err, service.ErrUnknownSection) {
			return utils.SendError(c, fiber.StatusBadRequest, "unknown lesson section")
		}
		h.logger.Error().Err(err).Msg("mark section failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to record progress")
	}

	return utils.SendSuccess(c, "section marked", progress)
}
