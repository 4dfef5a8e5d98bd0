package handler

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/dto"
	"github.com/educode-platform/educode-api/internal/service"
	"github.com/educode-platform/educode-api/internal/utils"
)

// UserHandler exposes the admin account management routes.
type UserHandler struct {
	service   service.AuthService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(service service.AuthService, validator *validator.Validate, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register attaches the user management endpoints. The group is expected to
// sit behind BearerAuth plus RequireAdmin.
func (h *UserHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/stats", h.stats)
	router.Get("/export", h.export)
	router.Post("/import", h.importUsers)
	router.Post("/clear", h.clear)
	router.Patch("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *UserHandler) list(c *fiber.Ctx) error {
	users := h.service.ListUsers(c.Context())
	return utils.SendSuccess(c, "users retrieved", dto.NewUserResponseSlice(users))
}

func (h *UserHandler) stats(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "user stats", h.service.Stats(c.Context()))
}

func (h *UserHandler) export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.service.Export(c.Context(), &buf); err != nil {
		h.logger.Error().Err(err).Msg("user export failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "export failed")
	}

	filename := fmt.Sprintf("educode_users_%s.json", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(buf.Bytes())
}

func (h *UserHandler) importUsers(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "database file missing")
	}

	src, err := file.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "could not read uploaded file")
	}
	defer src.Close()

	if err := h.service.Import(c.Context(), src); err != nil {
		if errors.Is(err, service.ErrInvalidImport) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid database file format")
		}
		h.logger.Error().Err(err).Msg("user import failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "import failed")
	}

	return utils.SendSuccess(c, "users imported", nil)
}

func (h *UserHandler) clear(c *fiber.Ctx) error {
	if err := h.service.Clear(c.Context()); err != nil {
		if errors.Is(err, service.ErrPermissionDenied) {
			return utils.SendError(c, fiber.StatusForbidden, "permission denied")
		}
		h.logger.Error().Err(err).Msg("user clear failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "clear failed")
	}
	return utils.SendSuccess(c, "user database reset", nil)
}

func (h *UserHandler) update(c *fiber.Ctx) error {
	id, err := parseInt64Param(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.UpdateUserRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := h.service.UpdateUser(c.Context(), id, service.UserUpdate{
		Email:     payload.Email,
		Password:  payload.Password,
		FullName:  payload.FullName,
		Role:      payload.Role,
		TeacherID: payload.TeacherID,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		}
		h.logger.Error().Err(err).Int64("user_id", id).Msg("user update failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "update failed")
	}

	return utils.SendSuccess(c, "user updated", dto.NewUserResponse(user))
}

func (h *UserHandler) delete(c *fiber.Ctx) error {
	id, err := parseInt64Param(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteUser(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		case errors.Is(err, service.ErrPermissionDenied):
			return utils.SendError(c, fiber.StatusForbidden, "permission denied")
		}
		h.logger.Error().Err(err).Int64("user_id", id).Msg("user delete failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "delete failed")
	}

	return utils.SendSuccess(c, "user deleted", nil)
}
