package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"marketplace-client/internal/core/domain"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	// формируем объект ошибки
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// WriteValidationErrors отправляет 422 со списком ошибок по полям.
func WriteValidationErrors(w http.ResponseWriter, verrs domain.ValidationErrors) {
	RespondWithJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
		"error":  "validation failed",
		"fields": verrs,
	})
}

// statusForError маппит доменные ошибки на HTTP-статусы.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAuthRequired),
		errors.Is(err, domain.ErrSessionExpired),
		errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrDraftNotFound),
		errors.Is(err, domain.ErrListingNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrPossibleDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func GetPageOrDefault(r *http.Request) (int, error) {
	pageStr := r.URL.Query().Get("page")
	page := 1 // дефолтное значение
	if pageStr != "" {
		var err error
		page, err = strconv.Atoi(pageStr)
		if err != nil {
			return 0, err
		}
	}
	return page, nil
}
