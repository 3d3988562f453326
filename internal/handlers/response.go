package handlers

import (
	"encoding/json"
	"moodTracker/internal/logger"
	"net/http"
)

func responseWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("HTTP: Ошибка кодирования JSON", err)
	}
}

func responseWithText(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(message))
}

func responseWithError(w http.ResponseWriter, code int) {
	responseWithText(w, code, http.StatusText(code))
}

func renderPage(w http.ResponseWriter, views Renderer, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.Render(w, page, data); err != nil {
		logger.Error("HTTP: Ошибка рендера страницы", err)
		responseWithError(w, http.StatusInternalServerError)
	}
}
