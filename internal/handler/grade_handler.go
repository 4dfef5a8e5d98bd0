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

// GradeHandler wires the grade book and journal routes.
type GradeHandler struct {
	service   service.GradeService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewGradeHandler constructs the handler.
func NewGradeHandler(service service.GradeService, validator *validator.Validate, logger zerolog.Logger) *GradeHandler {
	return &GradeHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "grade_handler").Logger(),
	}
}

// RegisterGrades attaches the grade endpoints.
func (h *GradeHandler) RegisterGrades(router fiber.Router) {
	router.Get("/:courseId", h.courseGrades)
	router.Post("", h.saveGrade)
}

// RegisterJournal attaches the journal endpoints.
func (h *GradeHandler) RegisterJournal(router fiber.Router) {
	router.Get("/:courseId", h.courseJournal)
	router.Get("/:courseId/lessons/:lessonId", h.journalEntry)
	router.Post("", h.saveJournalEntry)
}

func (h *GradeHandler) courseGrades(c *fiber.Ctx) error {
	userID := middleware.UserIDFromContext(c)
	grades := h.service.CourseGrades(c.Context(), userID, c.Params("courseId"))
	return utils.SendSuccess(c, "grades retrieved", grades)
}

func (h *GradeHandler) saveGrade(c *fiber.Ctx) error {
	var payload dto.SaveGradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	userID := middleware.UserIDFromContext(c)
	record, err := h.service.SaveGrade(c.Context(), userID, payload.CourseID, payload.LessonID, payload.Grade, payload.MaxGrade)
	if err != nil {
		if errors.Is(err, service.ErrInvalidGrade) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid grade")
		}
		h.logger.Error().Err(err).Msg("grade save failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to save grade")
	}

	return utils.SendSuccess(c, "grade saved", record)
}

func (h *GradeHandler) courseJournal(c *fiber.Ctx) error {
	userID := middleware.UserIDFromContext(c)
	journal := h.service.CourseJournal(c.Context(), userID, c.Params("courseId"))
	return utils.SendSuccess(c, "journal retrieved", journal)
}

func (h *GradeHandler) journalEntry(c *fiber.Ctx) error {
	lessonID, err := parseIntParam(c, "lessonId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	userID := middleware.UserIDFromContext(c)
	entry := h.service.JournalEntry(c.Context(), userID, c.Params("courseId"), lessonID)
	return utils.SendSuccess(c, "journal entry", entry)
}

func (h *GradeHandler) saveJournalEntry(c *fiber.Ctx) error {
	var payload dto.JournalEntryRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	userID := middleware.UserIDFromContext(c)
	entry := h.service.SaveJournalEntry(c.Context(), userID, payload.CourseID, payload.LessonID, payload.Fields)
	return utils.SendSuccess(c, "journal entry saved", entry)
}
