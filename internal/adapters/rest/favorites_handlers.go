package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"
	"marketplace-client/internal/core/port/usecases_port"
)

// FavoritesHandler - хендлеры избранного.
type FavoritesHandler struct {
	toggleUC usecases_port.ToggleFavoriteUseCasePort
	getUC    usecases_port.GetFavoritesUseCasePort
}

// NewFavoritesHandler - конструктор.
func NewFavoritesHandler(toggleUC usecases_port.ToggleFavoriteUseCasePort,
	getUC usecases_port.GetFavoritesUseCasePort) *FavoritesHandler {
	return &FavoritesHandler{
		toggleUC: toggleUC,
		getUC:    getUC,
	}
}

func kindFromString(raw string) (domain.ItemKind, bool) {
	switch raw {
	case string(domain.KindProperties):
		return domain.KindProperties, true
	case string(domain.KindAuctions):
		return domain.KindAuctions, true
	default:
		return "", false
	}
}

// Toggle обрабатывает POST /api/v1/favorites/toggle
func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ToggleFavorite"})

	var req ToggleFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	kind, ok := kindFromString(req.Type)
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Unknown favorite type")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"kind":    kind,
		"item_id": req.ID,
	})
	handlerLogger.Info("Processing favorite toggle", nil)

	isFavorite, err := h.toggleUC.Execute(r.Context(), kind, req.ID)
	if err != nil {
		if errors.Is(err, domain.ErrAuthRequired) {
			handlerLogger.Warn("Toggle rejected: no session", nil)
			WriteJSONError(w, http.StatusUnauthorized, err.Error())
			return
		}
		handlerLogger.Error("Toggle favorite use case failed", err, nil)
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}

	RespondWithJSON(w, http.StatusOK, ToggleFavoriteResponse{IsFavorite: isFavorite})
}

// GetFavorites обрабатывает GET /api/v1/favorites
func (h *FavoritesHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetFavorites"})

	kind, ok := kindFromString(r.URL.Query().Get("type"))
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Unknown favorite type")
		return
	}

	page, err := GetPageOrDefault(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid page parameter")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"kind": kind,
		"page": page,
	})
	handlerLogger.Info("Processing request for user favorites", nil)

	result, err := h.getUC.Execute(r.Context(), kind, page)
	if err != nil {
		handlerLogger.Error("Get favorites use case failed", err, nil)
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}

	// Маппим результат из домена в DTO ответа
	response := PaginatedFavoritesResponse{
		Data:        make([]ListingCardResponse, len(result.Items)),
		CurrentPage: result.CurrentPage,
		LastPage:    result.LastPage,
		Total:       result.Total,
	}
	for i, card := range result.Items {
		response.Data[i] = toCardResponse(card)
	}

	RespondWithJSON(w, http.StatusOK, response)
}
