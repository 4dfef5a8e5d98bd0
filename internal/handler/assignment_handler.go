package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/dto"
	"github.com/educode-platform/educode-api/internal/repository"
	"github.com/educode-platform/educode-api/internal/service"
	"github.com/educode-platform/educode-api/internal/utils"
)

// AssignmentHandler wires teacher assignment and lesson scheduling routes.
type AssignmentHandler struct {
	service   service.AssignmentService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAssignmentHandler constructs the handler.
func NewAssignmentHandler(service service.AssignmentService, validator *validator.Validate, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "assignment_handler").Logger(),
	}
}

// RegisterTeachers attaches the teacher-assignment endpoints.
func (h *AssignmentHandler) RegisterTeachers(router fiber.Router) {
	router.Get("", h.listTeacherAssignments)
	router.Post("", h.assignTeacher)
	router.Delete("/:id", h.unassignTeacher)
}

// RegisterLessons attaches the lesson scheduling endpoints.
func (h *AssignmentHandler) RegisterLessons(router fiber.Router) {
	router.Get("", h.listLessonAssignments)
	router.Post("", h.scheduleLesson)
	router.Patch("/:id", h.updateLessonAssignment)
	router.Delete("/:id", h.removeLessonAssignment)
}

func (h *AssignmentHandler) listTeacherAssignments(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "teacher assignments retrieved", h.service.ListTeacherAssignments(c.Context()))
}

func (h *AssignmentHandler) assignTeacher(c *fiber.Ctx) error {
	var payload dto.TeacherAssignmentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	assignment, err := h.service.AssignTeacher(c.Context(), payload.TeacherID, payload.SubjectID, payload.GroupID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeacherRequired):
			return utils.SendError(c, fiber.StatusBadRequest, "the assignee must have the teacher role")
		case errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "teacher not found")
		case errors.Is(err, service.ErrCourseNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "subject not found")
		case errors.Is(err, service.ErrGroupNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "group not found")
		}
		h.logger.Error().Err(err).Msg("teacher assignment failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to assign teacher")
	}
	return utils.SendCreated(c, "teacher assigned", assignment)
}

func (h *AssignmentHandler) unassignTeacher(c *fiber.Ctx) error {
	id, err := parseInt64Param(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.UnassignTeacher(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "assignment not found")
		}
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to remove assignment")
	}
	return utils.SendSuccess(c, "teacher unassigned", nil)
}

func (h *AssignmentHandler) listLessonAssignments(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "lesson assignments retrieved", h.service.ListLessonAssignments(c.Context()))
}

func (h *AssignmentHandler) scheduleLesson(c *fiber.Ctx) error {
	var payload dto.LessonAssignmentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	assignment, err := h.service.ScheduleLesson(c.Context(), payload.CourseID, payload.LessonID, payload.GroupID, payload.DueDate)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "course not found")
		case errors.Is(err, service.ErrLessonNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "lesson not found")
		case errors.Is(err, service.ErrGroupNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "group not found")
		}
		h.logger.Error().Err(err).Msg("lesson scheduling failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to schedule lesson")
	}
	return utils.SendCreated(c, "lesson scheduled", assignment)
}

func (h *AssignmentHandler) updateLessonAssignment(c *fiber.Ctx) error {
	id, err := parseInt64Param(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.LessonAssignmentUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	assignment, err := h.service.UpdateLessonAssignment(c.Context(), id, repository.LessonAssignmentPatch{
		DueDate: payload.DueDate,
		Status:  payload.Status,
	})
	if err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "assignment not found")
		}
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update assignment")
	}
	return utils.SendSuccess(c, "lesson assignment updated", assignment)
}

func (h *AssignmentHandler) removeLessonAssignment(c *fiber.Ctx) error {
	id, err := parseInt64Param(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.RemoveLessonAssignment(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrAssignmentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "assignment not found")
		}
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to remove assignment")
	}
	return utils.SendSuccess(c, "lesson assignment removed", nil)
}
