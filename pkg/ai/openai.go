package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "educode",
		Subsystem: "ai",
		Name:      "generation_duration_seconds",
		Help:      "Duration of AI task generation requests",
	}, []string{"model"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "educode",
		Subsystem: "ai",
		Name:      "generation_failures_total",
		Help:      "Number of AI task generation failures",
	}, []string{"model"})
)

// OpenAIConfig defines configuration options for the OpenAI generator.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Logger      zerolog.Logger
}

// OpenAIGenerator implements Generator against the OpenAI chat completion API.
type OpenAIGenerator struct {
	client *openai.Client
	cfg    OpenAIConfig
	logger zerolog.Logger
}

// NewOpenAIGenerator builds a new generator using the provided configuration.
func NewOpenAIGenerator(cfg OpenAIConfig) (*OpenAIGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}

	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = 2048
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	config := openai.DefaultConfig(cfg.APIKey)
	client := openai.NewClientWithConfig(config)

	return &OpenAIGenerator{
		client: client,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// GenerateTasks sends the generation request to OpenAI and parses the response.
func (g *OpenAIGenerator) GenerateTasks(ctx context.Context, req TaskRequest) ([]GeneratedTask, error) {
	start := time.Now()
	request := openai.ChatCompletionRequest{
		Model:       g.cfg.Model,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: generatorSystemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildTaskPrompt(req),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	resp, err := g.client.CreateChatCompletion(ctx, request)
	aiDuration.WithLabelValues(g.cfg.Model).Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues(g.cfg.Model).Inc()
		return nil, fmt.Errorf("openai generate tasks: %w", err)
	}

	if len(resp.Choices) == 0 {
		aiFailures.WithLabelValues(g.cfg.Model).Inc()
		return nil, fmt.Errorf("no choices returned from openai")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	tasks, err := parseTaskResponse(content)
	if err != nil {
		aiFailures.WithLabelValues(g.cfg.Model).Inc()
		return nil, err
	}

	g.logger.Debug().Int("count", len(tasks)).Str("model", g.cfg.Model).Msg("tasks generated")
	return tasks, nil
}

func generatorSystemPrompt() string {
	return "You are a programming course author. Respond with a JSON object containing a tasks array; each task has title, " +
		"description, initialCode, and expectedOutput fields. Tasks must be solvable by a beginner in the requested language."
}

func buildTaskPrompt(req TaskRequest) string {
	builder := strings.Builder{}
	builder.WriteString("# Topic\n")
	builder.WriteString(req.Topic)
	builder.WriteString("\n\n## Language\n")
	builder.WriteString(req.Language)
	builder.WriteString("\n\n## Difficulty\n")
	builder.WriteString(req.Difficulty)
	builder.WriteString(fmt.Sprintf("\n\n## Count\nGenerate exactly %d tasks.", req.Count))
	builder.WriteString("\nReturn JSON.")
	return builder.String()
}

func parseTaskResponse(content string) ([]GeneratedTask, error) {
	type payload struct {
		Tasks []GeneratedTask `json:"tasks"`
	}

	var data payload
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return nil, fmt.Errorf("parse task json: %w", err)
	}

	if len(data.Tasks) == 0 {
		return nil, fmt.Errorf("model returned no tasks")
	}

	return data.Tasks, nil
}
