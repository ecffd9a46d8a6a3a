package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"

	"github.com/google/uuid"
)

// ManageDraftsUseCase владеет черновиками многошаговых форм. Черновики живут
// только в памяти: создаются при открытии формы, уничтожаются при успешной
// отправке или явной отмене. Валидация выполняется на клиенте и никогда не
// уходит в сеть.
type ManageDraftsUseCase struct {
	api       port.MarketplaceAPIPort
	store     port.LocalStorePort
	validator port.DraftValidatorPort
	checker   port.AttachmentCheckerPort

	mu     sync.Mutex
	drafts map[string]*domain.FormDraft
}

func NewManageDraftsUseCase(api port.MarketplaceAPIPort, store port.LocalStorePort, validator port.DraftValidatorPort, checker port.AttachmentCheckerPort) (*ManageDraftsUseCase, error) {
	if validator == nil || checker == nil {
		return nil, fmt.Errorf("draft validator and attachment checker are required")
	}
	return &ManageDraftsUseCase{
		api:       api,
		store:     store,
		validator: validator,
		checker:   checker,
		drafts:    make(map[string]*domain.FormDraft),
	}, nil
}

func (uc *ManageDraftsUseCase) Create(ctx context.Context, kind domain.DraftKind) (*domain.FormDraft, error) {
	if _, ok := domain.StepsForKind(kind); !ok {
		return nil, fmt.Errorf("unknown draft kind: %q", kind)
	}

	draft := &domain.FormDraft{
		ID:          uuid.New().String(),
		Kind:        kind,
		Fields:      make(map[string]any),
		CurrentStep: 1,
		CreatedAt:   time.Now().UTC(),
	}

	uc.mu.Lock()
	uc.drafts[draft.ID] = draft
	uc.mu.Unlock()

	contextkeys.LoggerFromContext(ctx).Info("Draft created", port.Fields{
		"draft_id": draft.ID,
		"kind":     kind,
	})
	return cloneDraft(draft), nil
}

func (uc *ManageDraftsUseCase) Get(ctx context.Context, id string) (*domain.FormDraft, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	draft, ok := uc.drafts[id]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	return cloneDraft(draft), nil
}

func (uc *ManageDraftsUseCase) UpdateField(ctx context.Context, id, field string, value any) (*domain.FormDraft, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	draft, ok := uc.drafts[id]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	draft.Fields[field] = value
	draft.Touched = true
	return cloneDraft(draft), nil
}

// Advance переводит мастер на следующий шаг. Перед переходом уже заполненные
// поля прогоняются через схему, чтобы пользователь получил ранний сигнал об
// ошибке, не дожидаясь отправки.
func (uc *ManageDraftsUseCase) Advance(ctx context.Context, id string) (*domain.FormDraft, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	draft, ok := uc.drafts[id]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}

	if errs := uc.validator.Validate(draft.Kind, draft.Fields); len(errs) > 0 {
		filled := filterToFilledFields(errs, draft.Fields)
		if len(filled) > 0 {
			return nil, filled
		}
	}

	steps, _ := domain.StepsForKind(draft.Kind)
	if draft.CurrentStep < steps {
		draft.CurrentStep++
		draft.Touched = true
	}
	return cloneDraft(draft), nil
}

func (uc *ManageDraftsUseCase) Back(ctx context.Context, id string) (*domain.FormDraft, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	draft, ok := uc.drafts[id]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	if draft.CurrentStep > 1 {
		draft.CurrentStep--
	}
	return cloneDraft(draft), nil
}

// maxExtraImages - клиентский предел изображений сверх главного фото
// (первое прикрепленное изображение считается главным).
const maxExtraImages = 10

func (uc *ManageDraftsUseCase) AddAttachment(ctx context.Context, id, fileName string, data []byte) (*domain.FormDraft, error) {
	att, err := uc.checker.Check(ctx, fileName, data)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	draft, ok := uc.drafts[id]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}

	if att.Hash != "" && draft.HasAttachmentHash(att.Hash) {
		return nil, domain.ValidationErrors{{
			Field:   "attachments",
			Message: "duplicate image: an identical image is already attached",
		}}
	}
	if isImageMIME(att.MIMEType) && draft.AdditionalImageCount() >= maxExtraImages {
		return nil, domain.ValidationErrors{{
			Field:   "attachments",
			Message: fmt.Sprintf("too many images: one main image plus at most %d additional images are allowed", maxExtraImages),
		}}
	}

	draft.Attachments = append(draft.Attachments, att)
	draft.Touched = true

	contextkeys.LoggerFromContext(ctx).Debug("Attachment accepted", port.Fields{
		"draft_id":  id,
		"file_name": att.FileName,
		"mime_type": att.MIMEType,
		"size":      att.Size,
	})
	return cloneDraft(draft), nil
}

func (uc *ManageDraftsUseCase) Cancel(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if _, ok := uc.drafts[id]; !ok {
		return domain.ErrDraftNotFound
	}
	delete(uc.drafts, id)
	contextkeys.LoggerFromContext(ctx).Info("Draft cancelled", port.Fields{"draft_id": id})
	return nil
}

func (uc *ManageDraftsUseCase) Submit(ctx context.Context, id string, force bool) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "SubmitDraft", "draft_id": id})
	ucLogger.Info("Use case started", nil)

	uc.mu.Lock()
	draft, ok := uc.drafts[id]
	if !ok {
		uc.mu.Unlock()
		return domain.ErrDraftNotFound
	}
	snapshot := cloneDraft(draft)
	uc.mu.Unlock()

	// Полная клиентская валидация: до сети ошибки не доходят.
	if errs := uc.validator.Validate(snapshot.Kind, snapshot.Fields); len(errs) > 0 {
		ucLogger.Warn("Draft failed client-side validation", port.Fields{"violations": len(errs)})
		return errs
	}

	fingerprint := uc.adFingerprint(snapshot)
	if fingerprint != "" && !force {
		seen, err := uc.fingerprintSeen(ctx, fingerprint)
		if err != nil {
			ucLogger.Warn("Failed to check ad fingerprint", port.Fields{"error": err.Error()})
		} else if seen {
			ucLogger.Warn("Draft matches a previously submitted ad", nil)
			return domain.ErrPossibleDuplicate
		}
	}

	if err := uc.api.SubmitDraft(ctx, snapshot); err != nil {
		ucLogger.Error("Draft submission failed", err, nil)
		return err
	}

	if fingerprint != "" {
		if err := uc.rememberFingerprint(ctx, fingerprint); err != nil {
			ucLogger.Warn("Failed to remember ad fingerprint", port.Fields{"error": err.Error()})
		}
	}

	// Успешная отправка уничтожает черновик.
	uc.mu.Lock()
	delete(uc.drafts, id)
	uc.mu.Unlock()

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

// adFingerprint строит отпечаток объявления о земле, если в черновике есть
// координаты. Для остальных видов форм отпечаток не считается.
func (uc *ManageDraftsUseCase) adFingerprint(draft *domain.FormDraft) string {
	if draft.Kind != domain.DraftLandAd {
		return ""
	}
	lat := floatField(draft.Fields, "latitude")
	lng := floatField(draft.Fields, "longitude")
	if lat == nil || lng == nil {
		return ""
	}
	landType, _ := draft.Fields["land_type"].(string)
	return domain.BuildAdFingerprint(*lat, *lng, landType, floatField(draft.Fields, "total_area"))
}

func (uc *ManageDraftsUseCase) fingerprintSeen(ctx context.Context, fingerprint string) (bool, error) {
	raw, _, err := uc.store.Get(ctx, domain.StorageKeyAdFingerprints)
	if err != nil {
		return false, err
	}
	if raw == "" {
		return false, nil
	}
	var prints []string
	if err := json.Unmarshal([]byte(raw), &prints); err != nil {
		return false, nil
	}
	for _, p := range prints {
		if p == fingerprint {
			return true, nil
		}
	}
	return false, nil
}

func (uc *ManageDraftsUseCase) rememberFingerprint(ctx context.Context, fingerprint string) error {
	raw, _, err := uc.store.Get(ctx, domain.StorageKeyAdFingerprints)
	if err != nil {
		return err
	}
	var prints []string
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &prints)
	}
	prints = append(prints, fingerprint)
	payload, err := json.Marshal(prints)
	if err != nil {
		return err
	}
	return uc.store.Set(ctx, domain.StorageKeyAdFingerprints, string(payload))
}

func cloneDraft(d *domain.FormDraft) *domain.FormDraft {
	out := *d
	out.Fields = make(map[string]any, len(d.Fields))
	for k, v := range d.Fields {
		out.Fields[k] = v
	}
	out.Attachments = append([]domain.Attachment(nil), d.Attachments...)
	return &out
}

// filterToFilledFields оставляет только ошибки по полям, которые пользователь
// уже заполнил: ругаться на еще не достигнутые шаги мастера рано.
func filterToFilledFields(errs domain.ValidationErrors, fields map[string]any) domain.ValidationErrors {
	var out domain.ValidationErrors
	for _, fe := range errs {
		if v, ok := fields[fe.Field]; ok && v != nil && v != "" {
			out = append(out, fe)
		}
	}
	return out
}

func isImageMIME(mime string) bool {
	return len(mime) >= 6 && mime[:6] == "image/"
}

// floatField достает числовое поле формы: значение могло прийти как число
// JSON или как строка из текстового поля.
func floatField(fields map[string]any, name string) *float64 {
	switch v := fields[name].(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return &f
		}
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return &f
		}
	}
	return nil
}
