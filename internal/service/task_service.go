package service

import (
	"context"
	"fmt"
	"moodTracker/internal/logger"
	"moodTracker/internal/models/task"
	"strconv"
	"unicode/utf8"

	"go.uber.org/zap"
)

type RepoType string

const (
	SQLiteType   RepoType = "sqlite"
	PostgresType RepoType = "postgres"
	InMemoryType RepoType = "inmemory"
)

// здесь происходит проверка ошибок бизнес-логики

type TaskService struct {
	repo     TaskRepository
	RepoType RepoType
}

func NewTaskService(repo TaskRepository, repoType RepoType) TaskService {
	return TaskService{
		repo:     repo,
		RepoType: repoType,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return fmt.Errorf("проверка здоровья сервиса: %w", err)
	}
	return nil
}

// CreateTask сохраняет текст как есть, пустая строка тоже допустима.
func (s *TaskService) CreateTask(ctx context.Context, text string) (*task.Task, error) {
	if utf8.RuneCountInString(text) > task.MaxTextLength {
		logger.Info("Service: Слишком длинный текст задачи", zap.Int("length", utf8.RuneCountInString(text)))
		return nil, NewValidationError("name", fmt.Sprintf("must be at most %d characters", task.MaxTextLength))
	}

	newTask := &task.Task{Text: text}
	if err := s.repo.Create(ctx, newTask); err != nil {
		return nil, fmt.Errorf("создание задачи: %w", err)
	}

	logger.Info("Service: Задача создана", zap.Int64("task_id", newTask.ID))
	return newTask, nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]*task.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("удаление задачи: %w", err)
	}
	if !found {
		logger.Info("Service: Задача не найдена", zap.Int64("target_id", id))
		return NewNotFound("task", strconv.FormatInt(id, 10))
	}

	logger.Info("Service: Задача удалена", zap.Int64("task_id", id))
	return nil
}
