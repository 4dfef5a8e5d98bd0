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

// GroupHandler wires the student group routes.
type GroupHandler struct {
	service   service.GroupService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewGroupHandler constructs the handler.
func NewGroupHandler(service service.GroupService, validator *validator.Validate, logger zerolog.Logger) *GroupHandler {
	return &GroupHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "group_handler").Logger(),
	}
}

// Register attaches the group endpoints.
func (h *GroupHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Post("", h.create)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *GroupHandler) list(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "groups retrieved", h.service.List(c.Context()))
}

func (h *GroupHandler) get(c *fiber.Ctx) error {
	id, err := parseInt64Param(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	group, err := h.service.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "group not found")
		}
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load group")
	}
	return utils.SendSuccess(c, "group retrieved", group)
}

func (h *GroupHandler) create(c *fiber.Ctx) error {
	var payload dto.GroupRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	group, err := h.service.Create(c.Context(), payload.Name, payload.TeacherID, payload.StudentIDs)
	if err != nil {
		if errors.Is(err, service.ErrEmptyName) {
			return utils.SendError(c, fiber.StatusBadRequest, "name must not be empty")
		}
		h.logger.Error().Err(err).Msg("group create failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create group")
	}
	return utils.SendCreated(c, "group created", group)
}

func (h *GroupHandler) update(c *fiber.Ctx) error {
	id, err := parseInt64Param(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.GroupUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	group, err := h.service.Update(c.Context(), id, repository.GroupPatch{
		Name:       payload.Name,
		TeacherID:  payload.TeacherID,
		StudentIDs: payload.StudentIDs,
	})
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "group not found")
		}
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to update group")
	}
	return utils.SendSuccess(c, "group updated", group)
}

func (h *GroupHandler) delete(c *fiber.Ctx) error {
	id, err := parseInt64Param(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "group not found")
		}
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete group")
	}
	return utils.SendSuccess(c, "group deleted", nil)
}
