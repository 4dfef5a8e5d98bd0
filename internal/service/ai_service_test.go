package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/educode-platform/educode-api/pkg/ai"
)

type failingGenerator struct{}

func (failingGenerator) GenerateTasks(context.Context, ai.TaskRequest) ([]ai.GeneratedTask, error) {
	return nil, errors.New("provider unavailable")
}

func TestGenerateTasksAssignsSequentialIDs(t *testing.T) {
	svc := NewAIGenerationService(ai.NewStaticGenerator(), zerolog.Nop())

	tasks, err := svc.GenerateTasks(context.Background(), "loops", "beginner", "python", 3)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	for i, task := range tasks {
		require.Equal(t, i+1, task.ID)
		require.Contains(t, task.Title, "loops")
	}
}

func TestGenerateTasksClampsCount(t *testing.T) {
	svc := NewAIGenerationService(ai.NewStaticGenerator(), zerolog.Nop())
	ctx := context.Background()

	tasks, err := svc.GenerateTasks(ctx, "loops", "", "", 0)
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	tasks, err = svc.GenerateTasks(ctx, "loops", "", "", 99)
	require.NoError(t, err)
	require.Len(t, tasks, 10)
}

func TestGenerateTasksPropagatesProviderError(t *testing.T) {
	svc := NewAIGenerationService(failingGenerator{}, zerolog.Nop())

	_, err := svc.GenerateTasks(context.Background(), "loops", "beginner", "python", 2)
	require.Error(t, err)
}
