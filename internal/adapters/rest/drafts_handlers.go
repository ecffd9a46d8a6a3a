package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"
	"marketplace-client/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

// Лимит на один загружаемый файл при парсинге multipart-формы.
const maxUploadSize = 8 << 20

// DraftsHandler - хендлеры черновиков многошаговых форм.
type DraftsHandler struct {
	draftsUC usecases_port.ManageDraftsUseCasePort
}

// NewDraftsHandler - конструктор.
func NewDraftsHandler(draftsUC usecases_port.ManageDraftsUseCasePort) *DraftsHandler {
	return &DraftsHandler{draftsUC: draftsUC}
}

func draftKindFromString(raw string) (domain.DraftKind, bool) {
	switch domain.DraftKind(raw) {
	case domain.DraftLandAd, domain.DraftAuctionAd,
		domain.DraftLandRequest, domain.DraftMarketingRequest:
		return domain.DraftKind(raw), true
	default:
		return "", false
	}
}

// Create обрабатывает POST /api/v1/drafts
func (h *DraftsHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateDraft"})

	var req CreateDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	kind, ok := draftKindFromString(req.Kind)
	if !ok {
		WriteJSONError(w, http.StatusBadRequest, "Unknown form kind")
		return
	}

	logger.Info("Creating form draft", port.Fields{"kind": kind})

	draft, err := h.draftsUC.Create(r.Context(), kind)
	if err != nil {
		logger.Error("Create draft use case failed", err, nil)
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}

	RespondWithJSON(w, http.StatusCreated, toDraftResponse(draft))
}

// Get обрабатывает GET /api/v1/drafts/{draftID}
func (h *DraftsHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetDraft"})

	draft, err := h.draftsUC.Get(r.Context(), chi.URLParam(r, "draftID"))
	if err != nil {
		logger.Warn("Draft lookup failed", port.Fields{"error": err.Error()})
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}

	RespondWithJSON(w, http.StatusOK, toDraftResponse(draft))
}

// UpdateField обрабатывает PUT /api/v1/drafts/{draftID}/fields
func (h *DraftsHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateDraftField"})

	var req UpdateDraftFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Field == "" {
		WriteJSONError(w, http.StatusBadRequest, "Field name is required")
		return
	}

	draftID := chi.URLParam(r, "draftID")
	logger.Info("Updating draft field", port.Fields{"draft_id": draftID, "field": req.Field})

	draft, err := h.draftsUC.UpdateField(r.Context(), draftID, req.Field, req.Value)
	if err != nil {
		logger.Error("Update draft field use case failed", err, nil)
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}

	RespondWithJSON(w, http.StatusOK, toDraftResponse(draft))
}

// Advance обрабатывает POST /api/v1/drafts/{draftID}/advance
func (h *DraftsHandler) Advance(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, "AdvanceDraft", h.draftsUC.Advance)
}

// Back обрабатывает POST /api/v1/drafts/{draftID}/back
func (h *DraftsHandler) Back(w http.ResponseWriter, r *http.Request) {
	h.step(w, r, "BackDraft", h.draftsUC.Back)
}

func (h *DraftsHandler) step(w http.ResponseWriter, r *http.Request, name string,
	move func(ctx context.Context, id string) (*domain.FormDraft, error)) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": name})

	draftID := chi.URLParam(r, "draftID")
	logger.Info("Moving draft wizard step", port.Fields{"draft_id": draftID})

	draft, err := move(r.Context(), draftID)
	if err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			logger.Warn("Step blocked by validation", port.Fields{"draft_id": draftID})
			WriteValidationErrors(w, verrs)
			return
		}
		logger.Error("Draft step use case failed", err, nil)
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}

	RespondWithJSON(w, http.StatusOK, toDraftResponse(draft))
}

// AddAttachment обрабатывает POST /api/v1/drafts/{draftID}/attachments
// Файл приходит в multipart-поле "file".
func (h *DraftsHandler) AddAttachment(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "AddDraftAttachment"})

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "File part is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	draftID := chi.URLParam(r, "draftID")
	handlerLogger := logger.WithFields(port.Fields{
		"draft_id":  draftID,
		"file_name": header.Filename,
		"size":      len(data),
	})
	handlerLogger.Info("Attaching file to draft", nil)

	draft, err := h.draftsUC.AddAttachment(r.Context(), draftID, header.Filename, data)
	if err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			handlerLogger.Warn("Attachment rejected by client-side checks", nil)
			WriteValidationErrors(w, verrs)
			return
		}
		handlerLogger.Error("Add attachment use case failed", err, nil)
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}

	RespondWithJSON(w, http.StatusOK, toDraftResponse(draft))
}

// Cancel обрабатывает DELETE /api/v1/drafts/{draftID}
func (h *DraftsHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CancelDraft"})

	draftID := chi.URLParam(r, "draftID")
	logger.Info("Cancelling draft", port.Fields{"draft_id": draftID})

	if err := h.draftsUC.Cancel(r.Context(), draftID); err != nil {
		logger.Warn("Cancel draft failed", port.Fields{"error": err.Error()})
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Draft cancelled"})
}

// Submit обрабатывает POST /api/v1/drafts/{draftID}/submit
func (h *DraftsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SubmitDraft"})

	var req SubmitDraftRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	draftID := chi.URLParam(r, "draftID")
	handlerLogger := logger.WithFields(port.Fields{"draft_id": draftID, "force": req.Force})
	handlerLogger.Info("Submitting draft", nil)

	if err := h.draftsUC.Submit(r.Context(), draftID, req.Force); err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			handlerLogger.Warn("Submission blocked by validation", nil)
			WriteValidationErrors(w, verrs)
			return
		}
		if errors.Is(err, domain.ErrPossibleDuplicate) {
			handlerLogger.Warn("Submission looks like a duplicate ad", nil)
			WriteJSONError(w, http.StatusConflict, err.Error())
			return
		}
		handlerLogger.Error("Submit draft use case failed", err, nil)
		WriteJSONError(w, statusForError(err), err.Error())
		return
	}

	RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Submitted"})
}
