package usecase

import (
	"context"
	"sync"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"
)

// debouncedFilterFields - поля свободного текста, правки которых сводятся
// в один запрос после тихого периода.
var debouncedFilterFields = map[string]bool{
	"search":  true,
	"keyword": true,
}

// UpdateFilterUseCase изменяет одно поле фильтра ресурса. Для полей
// свободного текста перезагрузка листинга откладывается (debounce),
// для остальных выполняется немедленно и синхронно.
type UpdateFilterUseCase struct {
	browse *BrowseListingsUseCase
	state  *ListingsState
	logger port.LoggerPort

	quiet      func() *SearchDebouncer
	mu         sync.Mutex
	debouncers map[domain.ListingResource]*SearchDebouncer
}

func NewUpdateFilterUseCase(browse *BrowseListingsUseCase, state *ListingsState, newDebouncer func() *SearchDebouncer, logger port.LoggerPort) *UpdateFilterUseCase {
	return &UpdateFilterUseCase{
		browse:     browse,
		state:      state,
		logger:     logger,
		quiet:      newDebouncer,
		debouncers: make(map[domain.ListingResource]*SearchDebouncer),
	}
}

func (uc *UpdateFilterUseCase) Execute(ctx context.Context, resource domain.ListingResource, field, value string) (domain.ListingsSnapshot, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "UpdateFilter",
		"resource": resource,
		"field":    field,
	})
	ucLogger.Debug("Use case started", nil)

	filters := uc.state.SetField(resource, field, value)

	if debouncedFilterFields[field] {
		// Запрос уйдет после тихого периода; до этого отдаем текущее
		// состояние (предыдущая страница остается видимой).
		uc.debouncer(resource).Trigger(func() {
			bgCtx := contextkeys.ContextWithLogger(context.Background(), uc.logger)
			if _, err := uc.browse.Execute(bgCtx, resource, filters, 1); err != nil {
				uc.logger.Warn("Debounced listings refresh failed", port.Fields{
					"resource": resource,
					"error":    err.Error(),
				})
			}
		})
		return uc.browse.Snapshot(ctx, resource), nil
	}

	return uc.browse.Execute(ctx, resource, filters, 1)
}

func (uc *UpdateFilterUseCase) debouncer(resource domain.ListingResource) *SearchDebouncer {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	d, ok := uc.debouncers[resource]
	if !ok {
		d = uc.quiet()
		uc.debouncers[resource] = d
	}
	return d
}
