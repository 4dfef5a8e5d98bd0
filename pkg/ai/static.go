package ai

import (
	"context"
	"fmt"
	"strings"
)

// StaticGenerator produces deterministic template tasks. It backs keyless
// deployments and tests.
type StaticGenerator struct{}

// NewStaticGenerator returns a generator that needs no API access.
func NewStaticGenerator() *StaticGenerator {
	return &StaticGenerator{}
}

func (g *StaticGenerator) GenerateTasks(_ context.Context, req TaskRequest) ([]GeneratedTask, error) {
	if req.Count <= 0 {
		req.Count = 1
	}
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		topic = "programming basics"
	}

	tasks := make([]GeneratedTask, 0, req.Count)
	for i := 1; i <= req.Count; i++ {
		tasks = append(tasks, GeneratedTask{
			Title:          fmt.Sprintf("Practice %d: %s", i, topic),
			Description:    fmt.Sprintf("Write a program that demonstrates %s. Print the result.", topic),
			InitialCode:    "# Write your code here\n",
			ExpectedOutput: "",
		})
	}
	return tasks, nil
}
