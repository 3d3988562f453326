package app

import (
	"context"
	"errors"
	"fmt"
	"moodTracker/internal/config"
	"moodTracker/internal/handlers"
	"moodTracker/internal/logger"
	"moodTracker/internal/middleware"
	"moodTracker/internal/repository/task/inmemory"
	"moodTracker/internal/repository/task/postgres"
	"moodTracker/internal/repository/task/sqlite"
	"moodTracker/internal/service"
	"moodTracker/internal/views"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// App держит всё, что живёт от старта процесса до его остановки.
// Обработчики получают зависимости отсюда, глобального подключения к базе нет.
type App struct {
	config            *config.Config
	server            *http.Server
	router            *chi.Mux
	repository        service.TaskRepository
	taskService       service.TaskService
	suggestionService service.SuggestionService
	shutdowns         []func() // функции для graceful shutdown
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) (*App, error) {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return nil, fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	if a.config.SecretKeyIsDefault() {
		logger.Warn("App: SECRET_KEY не задан, используется значение по умолчанию")
	}

	repo, err := newRepository(ctx, a.config)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("инициализация репозитория: %w", err)
	}
	a.repository = repo
	a.shutdowns = append(a.shutdowns, func() {
		if err := repo.Close(); err != nil {
			logger.Error("App: Ошибка закрытия репозитория", err)
		}
	})

	renderer, err := views.New()
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("загрузка шаблонов: %w", err)
	}

	a.taskService = service.NewTaskService(repo, service.RepoType(a.config.Repository.Type))
	a.suggestionService = service.NewSuggestionService()

	taskHandler := handlers.NewTaskHandler(&a.taskService, renderer, a.config.Repository.Type)
	trackerHandler := handlers.NewTrackerHandler(&a.suggestionService, renderer)

	a.router = chi.NewRouter()
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logging)
	a.router.Use(middleware.Recover)
	a.router.Use(middleware.RateLimit(a.config.Server.RateLimit))
	a.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.config.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", middleware.RequestIdHeader},
		ExposedHeaders: []string{middleware.RequestIdHeader},
		MaxAge:         300,
	}))
	handlers.Routes(a.router, &taskHandler, &trackerHandler)

	a.server = &http.Server{
		Addr:         a.config.GetServerAddr(),
		Handler:      a.Handler(),
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
	}

	logger.Info("App: Инициализация завершена",
		zap.String("addr", a.server.Addr),
		zap.String("repository", a.config.Repository.Type))
	return a, nil
}

func newRepository(ctx context.Context, cfg *config.Config) (service.TaskRepository, error) {
	switch service.RepoType(cfg.Repository.Type) {
	case service.SQLiteType:
		return sqlite.New(ctx, cfg.Database.Path)
	case service.PostgresType:
		pool := postgres.DefaultPoolConfig()
		if cfg.Database.MaxConnections > 0 {
			pool.MaxConns = int32(cfg.Database.MaxConnections)
		}
		if cfg.Database.MinConnections > 0 {
			pool.MinConns = int32(cfg.Database.MinConnections)
		}
		if cfg.Database.IdleTimeout > 0 {
			pool.MaxConnIdleTime = cfg.Database.IdleTimeout
		}
		return postgres.New(ctx, cfg.Database.URL, pool)
	case service.InMemoryType:
		return inmemory.NewTaskStorage(), nil
	default:
		return nil, fmt.Errorf("неизвестный тип репозитория %q", cfg.Repository.Type)
	}
}

// Handler возвращает роутер, обёрнутый в трассировку.
func (a *App) Handler() http.Handler {
	return otelhttp.NewHandler(a.router, "mood-tracker")
}

// Run блокируется до отмены ctx или ошибки сервера, затем останавливает сервер и освобождает ресурсы.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server started", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("запуск сервера: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Server: Остановка сервера...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("остановка сервера: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Close выполняет функции остановки в обратном порядке регистрации.
func (a *App) Close() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
	a.shutdowns = nil
}
