package handlers

import (
	"moodTracker/internal/logger"
	"moodTracker/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// handleBusinessError отвечает клиенту, если err - BusinessError, и сообщает, что ответ уже записан.
func handleBusinessError(w http.ResponseWriter, err error) bool {
	businessErr, ok := service.AsBusinessError(err)
	if !ok {
		return false
	}

	statusCode := mapBusinessErrorToHTTP(businessErr.Code)

	logger.Warn("HTTP: Бизнес-ошибка",
		zap.String("error_code", businessErr.Code),
		zap.Any("details", businessErr.Details),
		zap.Int("http_status", statusCode))

	responseWithText(w, statusCode, businessErr.Message)
	return true
}

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeValidationError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
