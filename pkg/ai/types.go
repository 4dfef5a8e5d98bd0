package ai

import "context"

// TaskRequest describes the tasks a teacher wants generated for a lesson.
type TaskRequest struct {
	Topic      string
	Difficulty string
	Language   string
	Count      int
}

// GeneratedTask is one practice exercise produced by the model.
type GeneratedTask struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	InitialCode    string `json:"initialCode"`
	ExpectedOutput string `json:"expectedOutput"`
}

// Generator produces practice tasks for lesson authoring.
type Generator interface {
	GenerateTasks(ctx context.Context, req TaskRequest) ([]GeneratedTask, error)
}
