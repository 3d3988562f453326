package handlers

import (
	"moodTracker/internal/handlers/dto"
	"moodTracker/internal/logger"
	"moodTracker/internal/models/suggestion"
	"moodTracker/internal/views"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const MissingFormDataMessage = "Missing form data. Please fill out the form completely."

type TrackerHandler struct {
	SuggestionService SuggestionService
	Views             Renderer
}

func NewTrackerHandler(suggestionService SuggestionService, renderer Renderer) TrackerHandler {
	return TrackerHandler{
		SuggestionService: suggestionService,
		Views:             renderer,
	}
}

func (h *TrackerHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")
	renderPage(w, h.Views, views.PageHome, nil)
}

func (h *TrackerHandler) TrackerPage(w http.ResponseWriter, r *http.Request) {
	logger.HttpRequestInfo(r, "HTTP_IN:")
	renderPage(w, h.Views, views.PageTracker, nil)
}

// SubmitTracker ничего не проверяет и не сохраняет: поля формы уходят редиректом в /suggestion.
// Поле, которого нет в форме, не попадает и в строку запроса.
func (h *TrackerHandler) SubmitTracker(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	if err := parseForm(r); err != nil {
		logger.Warn("HTTP: Ошибка чтения формы",
			zap.Error(err),
			zap.String("client_ip", r.RemoteAddr))

		responseWithError(w, http.StatusBadRequest)
		return
	}

	target := "/suggestion"
	if query := encodeOrdered(r.PostForm, suggestion.Fields); query != "" {
		target += "?" + query
	}

	logger.Info("HTTP_OUT: Редирект на подсказки",
		zap.String("location", target),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusFound))

	http.Redirect(w, r, target, http.StatusFound)
}

// Suggestion читает только строку запроса, даже для POST.
func (h *TrackerHandler) Suggestion(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logger.HttpRequestInfo(r, "HTTP_IN:")

	query := r.URL.Query()
	for _, field := range suggestion.Fields {
		// пустое значение не считается отсутствующим
		if !query.Has(field) {
			logger.Warn("HTTP: Не хватает параметра",
				zap.String("field", field),
				zap.String("client_ip", r.RemoteAddr))

			responseWithText(w, http.StatusOK, MissingFormDataMessage)
			return
		}
	}

	result, err := h.SuggestionService.Suggest(suggestion.FromValues(query.Get))
	if err != nil {
		if handleBusinessError(w, err) {
			return
		}
		logger.Error("HTTP: Ошибка Service", err, zap.String("operation", "suggest"))
		responseWithError(w, http.StatusInternalServerError)
		return
	}

	logger.Info("HTTP_OUT: Подсказки посчитаны",
		zap.Int("suggestions", len(result.Suggestions)),
		zap.Int("study_times", len(result.StudyTimes)),
		zap.Duration("ms", time.Since(start)),
		zap.Int("http_status", http.StatusOK))

	renderPage(w, h.Views, views.PageSuggestion, dto.FromSuggestion(result))
}

// encodeOrdered кодирует ключи в заданном порядке, url.Values.Encode сортировал бы их.
func encodeOrdered(values url.Values, keys []string) string {
	var b strings.Builder
	for _, key := range keys {
		vs, ok := values[key]
		if !ok || len(vs) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(vs[0]))
	}
	return b.String()
}
