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

// SubmissionHandler wires the task submission and grading routes.
type SubmissionHandler struct {
	service   service.SubmissionService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSubmissionHandler constructs the handler.
func NewSubmissionHandler(service service.SubmissionService, validator *validator.Validate, logger zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "submission_handler").Logger(),
	}
}

// Register attaches the student-facing endpoints.
func (h *SubmissionHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
	router.Get("/mine", h.listMine)
}

// RegisterGrading attaches the teacher grading endpoints.
func (h *SubmissionHandler) RegisterGrading(router fiber.Router) {
	router.Get("", h.listByTask)
	router.Post("/:id/grade", h.grade)
}

func (h *SubmissionHandler) submit(c *fiber.Ctx) error {
	var payload dto.SubmitCodeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	userID := middleware.UserIDFromContext(c)
	submission, err := h.service.Submit(c.Context(), service.SubmissionInput{
		StudentID: userID,
		CourseID:  payload.CourseID,
		LessonID:  payload.LessonID,
		TaskID:    payload.TaskID,
		Code:      payload.Code,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCode):
			return utils.SendError(c, fiber.StatusBadRequest, "submission code must not be empty")
		case errors.Is(err, service.ErrCourseNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "course not found")
		case errors.Is(err, service.ErrLessonNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "lesson not found")
		}
		h.logger.Error().Err(err).Msg("submission failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to submit code")
	}

	return utils.SendCreated(c, "code submitted", submission)
}

func (h *SubmissionHandler) listMine(c *fiber.Ctx) error {
	userID := middleware.UserIDFromContext(c)
	submissions := h.service.ListByStudent(c.Context(), userID)
	return utils.SendSuccess(c, "submissions retrieved", submissions)
}

func (h *SubmissionHandler) listByTask(c *fiber.Ctx) error {
	courseID := c.Query("courseId")
	if courseID == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "courseId query parameter required")
	}
	lessonID, err := parseQueryInt(c, "lessonId")
	if err != nil || lessonID <= 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid lessonId")
	}
	taskID, err := parseQueryInt(c, "taskId")
	if err != nil || taskID <= 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid taskId")
	}

	submissions := h.service.ListByTask(c.Context(), courseID, lessonID, taskID)
	return utils.SendSuccess(c, "submissions retrieved", submissions)
}

func (h *SubmissionHandler) grade(c *fiber.Ctx) error {
	var payload dto.GradeSubmissionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	submission, err := h.service.Grade(c.Context(), c.Params("id"), payload.Score, payload.Feedback)
	if err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "submission not found")
		}
		h.logger.Error().Err(err).Msg("grading failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to grade submission")
	}

	return utils.SendSuccess(c, "submission graded", submission)
}
