package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/dto"
	"github.com/educode-platform/educode-api/internal/service"
	"github.com/educode-platform/educode-api/internal/utils"
)

// CourseHandler wires the subject and lesson catalogue routes.
type CourseHandler struct {
	service   service.CurriculumService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCourseHandler constructs the handler.
func NewCourseHandler(service service.CurriculumService, validator *validator.Validate, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "course_handler").Logger(),
	}
}

// Register attaches the read endpoints available to every signed-in user.
func (h *CourseHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Get("/:id/lessons/:lessonId", h.getLesson)
}

// RegisterAdmin attaches the mutating endpoints.
func (h *CourseHandler) RegisterAdmin(router fiber.Router) {
	router.Post("", h.create)
	router.Put("/:id", h.replace)
	router.Delete("/:id", h.delete)
	router.Post("/:id/lessons", h.addLesson)
}

func (h *CourseHandler) list(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "courses retrieved", h.service.ListCourses(c.Context()))
}

func (h *CourseHandler) get(c *fiber.Ctx) error {
	course, err := h.service.GetCourse(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "course not found")
		}
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load course")
	}
	return utils.SendSuccess(c, "course retrieved", course)
}

func (h *CourseHandler) getLesson(c *fiber.Ctx) error {
	lessonID, err := parseIntParam(c, "lessonId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	lesson, err := h.service.GetLesson(c.Context(), c.Params("id"), lessonID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCourseNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "course not found")
		case errors.Is(err, service.ErrLessonNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "lesson not found")
		}
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load lesson")
	}
	return utils.SendSuccess(c, "lesson retrieved", lesson)
}

func (h *CourseHandler) create(c *fiber.Ctx) error {
	var payload dto.CourseRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	course, err := h.service.CreateCourse(c.Context(), payload.ToModel())
	if err != nil {
		if errors.Is(err, service.ErrCourseExists) {
			return utils.SendError(c, fiber.StatusConflict, "a course with this id already exists")
		}
		h.logger.Error().Err(err).Msg("course create failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create course")
	}
	return utils.SendCreated(c, "course created", course)
}

func (h *CourseHandler) replace(c *fiber.Ctx) error {
	var payload dto.CourseRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	course := payload.ToModel()
	course.ID = c.Params("id")

	updated, err := h.service.ReplaceCourse(c.Context(), course)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "course not found")
		}
		h.logger.Error().Err(err).Str("course_id", course.ID).Msg("course replace failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update course")
	}
	return utils.SendSuccess(c, "course updated", updated)
}

func (h *CourseHandler) delete(c *fiber.Ctx) error {
	if err := h.service.DeleteCourse(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "course not found")
		}
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete course")
	}
	return utils.SendSuccess(c, "course deleted", nil)
}

func (h *CourseHandler) addLesson(c *fiber.Ctx) error {
	var payload dto.LessonRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	course, err := h.service.AddLesson(c.Context(), c.Params("id"), payload.ToLessonModel())
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "course not found")
		}
		h.logger.Error().Err(err).Msg("lesson add failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to add lesson")
	}
	return utils.SendCreated(c, "lesson added", course)
}
