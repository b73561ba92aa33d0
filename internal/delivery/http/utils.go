package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/frontandrew/crosspass/internal/domain"
)

// respondJSON отправляет JSON ответ
func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Failed to marshal response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondError отправляет JSON ответ с ошибкой
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// getPaginationParams извлекает limit и offset из query параметров
func getPaginationParams(r *http.Request) (limit, offset int) {
	limit = 50
	offset = 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	return limit, offset
}

// statusForError сопоставляет доменную ошибку HTTP статусу
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrIdentityNotFound),
		errors.Is(err, domain.ErrTravellerNotFound),
		errors.Is(err, domain.ErrVehicleNotFound),
		errors.Is(err, domain.ErrPresetNotFound),
		errors.Is(err, domain.ErrPassNotFound),
		errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrPassportTaken),
		errors.Is(err, domain.ErrTravellerLinkExists),
		errors.Is(err, domain.ErrPassAlreadyUtilized),
		errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidPassword),
		errors.Is(err, domain.ErrInvalidIdentityData),
		errors.Is(err, domain.ErrInvalidVehicleNumber),
		errors.Is(err, domain.ErrInvalidVehicleLabel),
		errors.Is(err, domain.ErrInvalidPresetName),
		errors.Is(err, domain.ErrInvalidPassData),
		errors.Is(err, domain.ErrInvalidPassDate),
		errors.Is(err, domain.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondDomainError отправляет доменную ошибку с подходящим статусом
// Внутренние ошибки не раскрываются клиенту
func respondDomainError(w http.ResponseWriter, err error) {
	code := statusForError(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "Internal server error"
	}
	respondError(w, code, message)
}
