package handlers

import (
	"moodTracker/internal/handlers/dto"
	"moodTracker/internal/logger"
	"moodTracker/internal/views"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const serviceName = "mood-tracker"

type TaskHandler struct {
	TaskService TaskService
	Views       Renderer
	RepoType    string
}

func NewTaskHandler(taskService TaskService, renderer Renderer, repoType string) TaskHandler {
	return TaskHandler{
		TaskService: taskService,
		Views:       renderer,
		RepoType:    repoType,
	}
}

func (s *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP: Health check")

	resp := dto.HealthResponse{
		Status:     "ok",
		Service:    serviceName,
		Repository: s.RepoType,
		Time:       time.Now().UTC(),
	}

	if err := s.TaskService.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: Сервис недоступен", err)
		resp.Status = "unavailable"
		resp.Error = err.Error()
		responseWithJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	responseWithJSON(w, http.StatusOK, resp)
}

func (s *TaskHandler) SchedulePage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	tasks, err := s.TaskService.ListTasks(r.Context())
	if err != nil {
		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "list_tasks"),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError)
		return
	}

	logger.Info("HTTP_OUT: Задачи получены",
		zap.Int("count", len(tasks)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	renderPage(w, s.Views, views.PageSchedule, dto.SchedulePage{Tasks: dto.FromTaskList(tasks)})
}

// PostTask создаёт задачу из поля name; отсутствующее поле сохраняется как пустая строка.
func (s *TaskHandler) PostTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if err := parseForm(r); err != nil {
		logger.Warn("HTTP: Ошибка чтения формы",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest)
		return
	}

	logger.Info("HTTP: Вызов сервиса создания задач")
	created, err := s.TaskService.CreateTask(r.Context(), r.PostForm.Get("name"))
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}

		logger.Error("HTTP: Ошибка Service", err,
			zap.String("operation", "create_task"),
			zap.String("client_ip", r.RemoteAddr),
			zap.Duration("ms", time.Since(start)))

		responseWithError(w, http.StatusInternalServerError)
		return
	}

	logger.Info("HTTP_OUT: Задача создана",
		zap.Int64("task_id", created.ID),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusFound))

	http.Redirect(w, r, "/schedule", http.StatusFound)
}

func (s *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		// маршрут принимает только цифры, сюда попадает лишь переполнение int64
		logger.Warn("HTTP: Не удалось получить id",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusNotFound)
		return
	}

	logger.Info("HTTP: Обращение к сервису для удаления задачи")

	if err := s.TaskService.DeleteTask(r.Context(), id); err != nil {
		if handleBusinessError(w, err) {
			return
		}

		logger.Error("HTTP: ошибка в Service", err,
			zap.String("operation", "delete_task"),
			zap.String("client_addr", r.RemoteAddr))

		responseWithError(w, http.StatusInternalServerError)
		return
	}

	logger.Info("HTTP_OUT: Задача удалена",
		zap.Int64("task_id", id),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusFound))

	http.Redirect(w, r, "/schedule", http.StatusFound)
}
