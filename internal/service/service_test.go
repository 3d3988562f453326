package service_test

import (
	"context"
	"errors"
	"moodTracker/internal/models/task"
	"moodTracker/internal/service"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTaskRepository - мок репозитория
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTaskRepository) Create(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTaskRepository) List(ctx context.Context) ([]*task.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTaskRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}

var _ service.TaskRepository = (*MockTaskRepository)(nil)

// TestTaskService_HealthCheck тестирует HealthCheck
func TestTaskService_HealthCheck(t *testing.T) {
	tests := []struct {
		name        string
		setupMock   func(*MockTaskRepository)
		expectError bool
	}{
		{
			name: "success - health check passes",
			setupMock: func(m *MockTaskRepository) {
				m.On("HealthCheck", mock.Anything).Return(nil)
			},
			expectError: false,
		},
		{
			name: "error - health check fails",
			setupMock: func(m *MockTaskRepository) {
				m.On("HealthCheck", mock.Anything).Return(errors.New("db connection failed"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)

			svc := service.NewTaskService(mockRepo, service.SQLiteType)
			err := svc.HealthCheck(context.Background())

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "проверка здоровья сервиса")
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

// TestTaskService_CreateTask тестирует создание задачи
func TestTaskService_CreateTask(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		text        string
		repoErr     error
		callsRepo   bool
		expectError bool
		errorCode   string
	}{
		{
			name:      "success - regular text",
			text:      "Buy groceries",
			callsRepo: true,
		},
		{
			name:      "success - empty text is allowed",
			text:      "",
			callsRepo: true,
		},
		{
			name:      "success - exactly max length",
			text:      strings.Repeat("я", task.MaxTextLength),
			callsRepo: true,
		},
		{
			name:        "error - too long",
			text:        strings.Repeat("a", task.MaxTextLength+1),
			expectError: true,
			errorCode:   service.CodeValidationError,
		},
		{
			name:        "error - repository fails",
			text:        "Buy groceries",
			repoErr:     errors.New("disk full"),
			callsRepo:   true,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			if tt.callsRepo {
				mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(tk *task.Task) bool {
					return tk.Text == tt.text && tk.ID == 0
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*task.Task).ID = 7
				}).Return(tt.repoErr)
			}

			svc := service.NewTaskService(mockRepo, service.SQLiteType)
			result, err := svc.CreateTask(ctx, tt.text)

			if tt.expectError {
				require.Error(t, err)
				if tt.errorCode != "" {
					busErr, ok := service.AsBusinessError(err)
					require.True(t, ok, "Expected BusinessError")
					assert.Equal(t, tt.errorCode, busErr.Code)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(7), result.ID)
				assert.Equal(t, tt.text, result.Text)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

// TestTaskService_ListTasks тестирует получение всех задач
func TestTaskService_ListTasks(t *testing.T) {
	ctx := context.Background()

	t.Run("success - list tasks", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		tasks := []*task.Task{
			{ID: 1, Text: "Task 1"},
			{ID: 2, Text: "Task 2"},
		}
		mockRepo.On("List", mock.Anything).Return(tasks, nil)

		svc := service.NewTaskService(mockRepo, service.SQLiteType)
		result, err := svc.ListTasks(ctx)

		assert.NoError(t, err)
		assert.Len(t, result, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("error - repository fails", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("List", mock.Anything).Return(nil, errors.New("db locked"))

		svc := service.NewTaskService(mockRepo, service.SQLiteType)
		_, err := svc.ListTasks(ctx)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "получение задач")
		mockRepo.AssertExpectations(t)
	})
}

// TestTaskService_DeleteTask тестирует удаление задачи
func TestTaskService_DeleteTask(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		found       bool
		repoErr     error
		expectError bool
		errorCode   string
	}{
		{
			name:  "success - delete existing task",
			found: true,
		},
		{
			name:        "error - task not found",
			found:       false,
			expectError: true,
			errorCode:   service.CodeNotFound,
		},
		{
			name:        "error - repository fails",
			repoErr:     errors.New("db locked"),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			mockRepo.On("Delete", mock.Anything, int64(42)).Return(tt.found, tt.repoErr)

			svc := service.NewTaskService(mockRepo, service.SQLiteType)
			err := svc.DeleteTask(ctx, 42)

			if tt.expectError {
				require.Error(t, err)
				busErr, ok := service.AsBusinessError(err)
				if tt.errorCode != "" {
					require.True(t, ok, "Expected BusinessError")
					assert.Equal(t, tt.errorCode, busErr.Code)
					assert.Equal(t, "42", busErr.Details["id"])
				} else {
					assert.False(t, ok)
				}
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

// TestTaskService_RepoType проверяет работу с разными типами репозиториев
func TestTaskService_RepoType(t *testing.T) {
	for _, repoType := range []service.RepoType{service.SQLiteType, service.PostgresType, service.InMemoryType} {
		mockRepo := new(MockTaskRepository)
		svc := service.NewTaskService(mockRepo, repoType)
		assert.Equal(t, repoType, svc.RepoType)
	}
}

// TestBusinessError тестирует форматирование и распаковку ошибок
func TestBusinessError(t *testing.T) {
	cause := errors.New("boom")
	busErr := service.NewBusinessError("SOMETHING", "went wrong", service.ToDetail("key", 1))
	busErr.Err = cause

	assert.Equal(t, "[SOMETHING] went wrong: boom", busErr.Error())
	assert.ErrorIs(t, busErr, cause)
	assert.Equal(t, 1, busErr.Details["key"])

	wrapped := errors.Join(errors.New("outer"), busErr)
	found, ok := service.AsBusinessError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "SOMETHING", found.Code)

	_, ok = service.AsBusinessError(cause)
	assert.False(t, ok)
}
