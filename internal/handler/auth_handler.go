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

// AuthHandler wires login, registration and session routes.
type AuthHandler struct {
	service   service.AuthService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, validator *validator.Validate, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register attaches the public auth endpoints.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.login)
	router.Post("/register", h.register)
}

// RegisterProtected attaches the endpoints that need a bearer token.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	router.Post("/logout", h.logout)
	router.Get("/me", h.me)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := h.service.Login(c.Context(), payload.Email, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		case errors.Is(err, service.ErrWrongPassword):
			return utils.SendError(c, fiber.StatusUnauthorized, "wrong password")
		}
		return utils.SendError(c, fiber.StatusInternalServerError, "login failed")
	}

	token, err := h.service.IssueToken(user)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to issue token")
		return utils.SendError(c, fiber.StatusInternalServerError, "login failed")
	}

	return utils.SendSuccess(c, "login successful", dto.AuthResponse{
		User:  dto.NewUserResponse(user),
		Token: token,
	})
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := h.service.Register(c.Context(), payload.Email, payload.Password, payload.FullName)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return utils.SendError(c, fiber.StatusConflict, "a user with this email already exists")
		}
		return utils.SendError(c, fiber.StatusInternalServerError, "registration failed")
	}

	token, err := h.service.IssueToken(user)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to issue token")
		return utils.SendError(c, fiber.StatusInternalServerError, "registration failed")
	}

	return utils.SendCreated(c, "registration successful", dto.AuthResponse{
		User:  dto.NewUserResponse(user),
		Token: token,
	})
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	h.service.Logout(c.Context())
	return utils.SendSuccess(c, "logged out", nil)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	userID := middleware.UserIDFromContext(c)
	if userID == 0 {
		return utils.SendError(c, fiber.StatusUnauthorized, "user not authenticated")
	}

	user, ok := h.service.CurrentUser(c.Context())
	if !ok || user.ID != userID {
		// The session lives in the store; fall back to the token identity.
		for _, candidate := range h.service.ListUsers(c.Context()) {
			if candidate.ID == userID {
				user = candidate
				ok = true
				break
			}
		}
	}
	if !ok {
		return utils.SendError(c, fiber.StatusNotFound, "user not found")
	}

	return utils.SendSuccess(c, "current user", dto.NewUserResponse(user))
}
