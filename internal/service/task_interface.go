package service

import (
	"context"
	"moodTracker/internal/models/task"
)

type TaskRepository interface {
	HealthCheck(context.Context) error
	Create(context.Context, *task.Task) error
	List(context.Context) ([]*task.Task, error)
	// Delete возвращает false, если задачи с таким id не было
	Delete(context.Context, int64) (bool, error)
	Close() error
}
