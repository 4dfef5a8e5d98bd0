package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/dto"
	"github.com/educode-platform/educode-api/internal/service"
	"github.com/educode-platform/educode-api/internal/utils"
)

// AIHandler wires the AI task generation route.
type AIHandler struct {
	service   service.AIGenerationService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAIHandler constructs the handler.
func NewAIHandler(service service.AIGenerationService, validator *validator.Validate, logger zerolog.Logger) *AIHandler {
	return &AIHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "ai_handler").Logger(),
	}
}

// Register attaches the generation endpoint.
func (h *AIHandler) Register(router fiber.Router) {
	router.Post("/tasks", h.generateTasks)
}

func (h *AIHandler) generateTasks(c *fiber.Ctx) error {
	var payload dto.GenerateTasksRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	tasks, err := h.service.GenerateTasks(c.Context(), payload.Topic, payload.Difficulty, payload.Language, payload.Count)
	if err != nil {
		h.logger.Error().Err(err).Str("topic", payload.Topic).Msg("task generation failed")
		return utils.SendError(c, fiber.StatusBadGateway, "task generation failed")
	}

	return utils.SendSuccess(c, "tasks generated", tasks)
}
