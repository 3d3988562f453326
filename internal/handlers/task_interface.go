package handlers

import (
	"context"
	"io"
	"moodTracker/internal/models/suggestion"
	"moodTracker/internal/models/task"
)

type TaskService interface {
	HealthCheck(context.Context) error
	CreateTask(context.Context, string) (*task.Task, error)
	ListTasks(context.Context) ([]*task.Task, error)
	DeleteTask(context.Context, int64) error
}

type SuggestionService interface {
	Suggest(suggestion.Request) (*suggestion.Result, error)
}

type Renderer interface {
	Render(io.Writer, string, any) error
}
