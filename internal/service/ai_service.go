package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/educode-platform/educode-api/internal/models"
	"github.com/educode-platform/educode-api/pkg/ai"
)

// AIGenerationService turns generator output into lesson tasks.
type AIGenerationService interface {
	GenerateTasks(ctx context.Context, topic, difficulty, language string, count int) ([]models.Task, error)
}

type aiGenerationService struct {
	generator ai.Generator
	logger    zerolog.Logger
}

// NewAIGenerationService constructs an AI generation service.
func NewAIGenerationService(generator ai.Generator, logger zerolog.Logger) AIGenerationService {
	return &aiGenerationService{
		generator: generator,
		logger:    logger.With().Str("component", "ai_generation_service").Logger(),
	}
}

func (s *aiGenerationService) GenerateTasks(ctx context.Context, topic, difficulty, language string, count int) ([]models.Task, error) {
	if count <= 0 {
		count = 3
	}
	if count > 10 {
		count = 10
	}
	if language == "" {
		language = "python"
	}
	if difficulty == "" {
		difficulty = "beginner"
	}

	generated, err := s.generator.GenerateTasks(ctx, ai.TaskRequest{
		Topic:      strings.TrimSpace(topic),
		Difficulty: difficulty,
		Language:   language,
		Count:      count,
	})
	if err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(generated))
	for i, task := range generated {
		tasks = append(tasks, models.Task{
			ID:             i + 1,
			Title:          task.Title,
			Description:    task.Description,
			InitialCode:    task.InitialCode,
			ExpectedOutput: task.ExpectedOutput,
		})
	}

	s.logger.Info().Int("count", len(tasks)).Str("topic", topic).Msg("lesson tasks generated")
	return tasks, nil
}
