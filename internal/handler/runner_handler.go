package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/dto"
	"github.com/educode-platform/educode-api/internal/utils"
	"github.com/educode-platform/educode-api/pkg/runner"
)

// RunnerHandler wires the practice code runner route.
type RunnerHandler struct {
	logger zerolog.Logger
}

// NewRunnerHandler constructs the handler.
func NewRunnerHandler(logger zerolog.Logger) *RunnerHandler {
	return &RunnerHandler{
		logger: logger.With().Str("component", "runner_handler").Logger(),
	}
}

// Register attaches the run endpoint.
func (h *RunnerHandler) Register(router fiber.Router) {
	router.Post("/run", h.run)
}

func (h *RunnerHandler) run(c *fiber.Ctx) error {
	var payload dto.RunCodeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result := runner.Run(payload.Code)
	return utils.SendSuccess(c, "code executed", result)
}
