package usecase

import (
	"context"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"
)

// ResetFiltersUseCase возвращает фильтры ресурса к пустым значениям,
// страницу к 1 и сразу перезагружает листинг.
type ResetFiltersUseCase struct {
	browse *BrowseListingsUseCase
	state  *ListingsState
}

func NewResetFiltersUseCase(browse *BrowseListingsUseCase, state *ListingsState) *ResetFiltersUseCase {
	return &ResetFiltersUseCase{browse: browse, state: state}
}

func (uc *ResetFiltersUseCase) Execute(ctx context.Context, resource domain.ListingResource) (domain.ListingsSnapshot, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	logger.WithFields(port.Fields{"use_case": "ResetFilters", "resource": resource}).Info("Use case started", nil)

	filters := uc.state.ResetFilters(resource)
	return uc.browse.Execute(ctx, resource, filters, 1)
}
