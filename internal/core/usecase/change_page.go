package usecase

import (
	"context"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"
)

// ChangePageUseCase переводит листинг на страницу n. Номер страницы
// ограничивается диапазоном [1, lastPage] последнего известного результата.
type ChangePageUseCase struct {
	browse *BrowseListingsUseCase
	state  *ListingsState
}

func NewChangePageUseCase(browse *BrowseListingsUseCase, state *ListingsState) *ChangePageUseCase {
	return &ChangePageUseCase{browse: browse, state: state}
}

func (uc *ChangePageUseCase) Execute(ctx context.Context, resource domain.ListingResource, page int) (domain.ListingsSnapshot, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	logger.WithFields(port.Fields{
		"use_case": "ChangePage",
		"resource": resource,
		"page":     page,
	}).Debug("Use case started", nil)

	filters, clamped := uc.state.SetPage(resource, page)
	return uc.browse.Execute(ctx, resource, filters, clamped)
}
