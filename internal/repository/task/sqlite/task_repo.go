package sqlite

import (
	"context"
	"fmt"
	"moodTracker/internal/logger"
	"moodTracker/internal/models/task"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const memoryPath = ":memory:"

const slowQuery = 100 * time.Millisecond

type Storage struct {
	db *gorm.DB
}

// New открывает файл базы (и создаёт его вместе с каталогом при первом запуске) и применяет миграции.
func New(ctx context.Context, path string) (*Storage, error) {
	if path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			logger.Error("Repository: Не удалось создать каталог базы", err, zap.String("path", path))
			return nil, fmt.Errorf("создание каталога базы: %w", err)
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			logger.Info("Repository: База не найдена, создаём", zap.String("path", path))
		}
	}

	db, err := gorm.Open(gormsqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		logger.Error("Repository: Ошибка открытия SQLite", err)
		return nil, fmt.Errorf("открытие базы: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("получение *sql.DB: %w", err)
	}
	// SQLite допускает одного писателя, а ":memory:" живёт в пределах одного соединения
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	if err := Migrate(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	logger.Info("Repository: Успешное подключение к SQLite", zap.String("path", path))
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("получение *sql.DB: %w", err)
	}
	logger.Info("Repository: Закрытие соединения SQLite")
	return sqlDB.Close()
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("получение *sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	logger.Info("Repository: Соединение стабильно")
	return nil
}

func (s *Storage) Create(ctx context.Context, taskToCreate *task.Task) error {
	start := time.Now()

	// GORM сам оборачивает вставку в транзакцию и коммитит её
	if err := s.db.WithContext(ctx).Create(taskToCreate).Error; err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление задачи: %w", err)
	}

	warnIfSlow(start)
	return nil
}

func (s *Storage) List(ctx context.Context) ([]*task.Task, error) {
	start := time.Now()

	tasks := []*task.Task{}
	if err := s.db.WithContext(ctx).Order("id").Find(&tasks).Error; err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	warnIfSlow(start)
	return tasks, nil
}

func (s *Storage) Delete(ctx context.Context, id int64) (bool, error) {
	start := time.Now()

	res := s.db.WithContext(ctx).Delete(&task.Task{}, id)
	if res.Error != nil {
		logger.Error("Repository: Не удалось удалить задачу", res.Error, zap.Duration("ms", time.Since(start)))
		return false, fmt.Errorf("удаление задачи: %w", res.Error)
	}

	warnIfSlow(start)
	return res.RowsAffected > 0, nil
}

func warnIfSlow(start time.Time) {
	if time.Since(start) > slowQuery {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
}
