package rest

import (
	"encoding/json"
	"net/http"
	"strconv"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"
	"marketplace-client/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

// ListingsHandler - хендлеры листингов: загрузка, фильтры, пагинация, детали.
type ListingsHandler struct {
	browseUC       usecases_port.BrowseListingsUseCasePort
	updateFilterUC usecases_port.UpdateFilterUseCasePort
	resetUC        usecases_port.ResetFiltersUseCasePort
	changePageUC   usecases_port.ChangePageUseCasePort
	detailsUC      usecases_port.GetListingDetailsUseCasePort
}

// NewListingsHandler - конструктор.
func NewListingsHandler(browseUC usecases_port.BrowseListingsUseCasePort,
	updateFilterUC usecases_port.UpdateFilterUseCasePort,
	resetUC usecases_port.ResetFiltersUseCasePort,
	changePageUC usecases_port.ChangePageUseCasePort,
	detailsUC usecases_port.GetListingDetailsUseCasePort) *ListingsHandler {
	return &ListingsHandler{
		browseUC:       browseUC,
		updateFilterUC: updateFilterUC,
		resetUC:        resetUC,
		changePageUC:   changePageUC,
		detailsUC:      detailsUC,
	}
}

// resourceFromRequest достает ресурс листинга из URL-параметра {resource}.
func resourceFromRequest(r *http.Request) (domain.ListingResource, bool) {
	switch chi.URLParam(r, "resource") {
	case "lands":
		return domain.ResourceLands, true
	case "auctions":
		return domain.ResourceAuctions, true
	case "land-requests":
		return domain.ResourceLandRequests, true
	default:
		return "", false
	}
}

// GetSnapshot обрабатывает GET /api/v1/listings/{resource}
func (h *ListingsHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetSnapshot"})

	resource, ok := resourceFromRequest(r)
	if !ok {
		WriteJSONError(w, http.StatusNotFound, "unknown listing resource")
		return
	}

	// Параметр refresh=1 форсирует сетевую перезагрузку с текущими фильтрами
	if r.URL.Query().Get("refresh") == "1" {
		snap := h.browseUC.Snapshot(r.Context(), resource)
		fresh, err := h.browseUC.Execute(r.Context(), resource, snap.Filters, snap.CurrentPage)
		if err != nil {
			logger.Warn("Refresh failed, serving stale snapshot", port.Fields{"resource": resource, "error": err.Error()})
		} else {
			RespondWithJSON(w, http.StatusOK, toSnapshotResponse(fresh))
			return
		}
	}

	RespondWithJSON(w, http.StatusOK, toSnapshotResponse(h.browseUC.Snapshot(r.Context(), resource)))
}

// UpdateFilter обрабатывает PUT /api/v1/listings/{resource}/filters
func (h *ListingsHandler) UpdateFilter(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateFilter"})

	resource, ok := resourceFromRequest(r)
	if !ok {
		WriteJSONError(w, http.StatusNotFound, "unknown listing resource")
		return
	}

	var req UpdateFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Field == "" {
		WriteJSONError(w, http.StatusBadRequest, "Field name is required")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"resource": resource,
		"field":    req.Field,
	})
	handlerLogger.Info("Processing filter update", nil)

	snap, err := h.updateFilterUC.Execute(r.Context(), resource, req.Field, req.Value)
	if err != nil {
		handlerLogger.Error("Update filter use case failed", err, nil)
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}

	RespondWithJSON(w, http.StatusOK, toSnapshotResponse(snap))
}

// ResetFilters обрабатывает DELETE /api/v1/listings/{resource}/filters
func (h *ListingsHandler) ResetFilters(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ResetFilters"})

	resource, ok := resourceFromRequest(r)
	if !ok {
		WriteJSONError(w, http.StatusNotFound, "unknown listing resource")
		return
	}

	logger.Info("Processing filters reset", port.Fields{"resource": resource})

	snap, err := h.resetUC.Execute(r.Context(), resource)
	if err != nil {
		logger.Error("Reset filters use case failed", err, nil)
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}

	RespondWithJSON(w, http.StatusOK, toSnapshotResponse(snap))
}

// ChangePage обрабатывает PUT /api/v1/listings/{resource}/page
func (h *ListingsHandler) ChangePage(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ChangePage"})

	resource, ok := resourceFromRequest(r)
	if !ok {
		WriteJSONError(w, http.StatusNotFound, "unknown listing resource")
		return
	}

	var req ChangePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"resource": resource,
		"page":     req.Page,
	})
	handlerLogger.Info("Processing page change", nil)

	snap, err := h.changePageUC.Execute(r.Context(), resource, req.Page)
	if err != nil {
		handlerLogger.Error("Change page use case failed", err, nil)
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}

	RespondWithJSON(w, http.StatusOK, toSnapshotResponse(snap))
}

// GetDetails обрабатывает GET /api/v1/listings/{resource}/{itemID}
func (h *ListingsHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetDetails"})

	resource, ok := resourceFromRequest(r)
	if !ok {
		WriteJSONError(w, http.StatusNotFound, "unknown listing resource")
		return
	}

	itemID, err := strconv.ParseInt(chi.URLParam(r, "itemID"), 10, 64)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid item ID")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"resource": resource,
		"item_id":  itemID,
	})
	handlerLogger.Info("Processing request for listing details", nil)

	card, err := h.detailsUC.Execute(r.Context(), resource, itemID)
	if err != nil {
		handlerLogger.Error("Get listing details use case failed", err, nil)
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}

	RespondWithJSON(w, http.StatusOK, toCardResponse(*card))
}
