package usecase

import (
	"context"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"
)

// GetListingDetailsUseCase возвращает один элемент листинга с наложенным
// локальным флагом избранного.
type GetListingDetailsUseCase struct {
	api       port.MarketplaceAPIPort
	favorites *FavoritesState
}

func NewGetListingDetailsUseCase(api port.MarketplaceAPIPort, favorites *FavoritesState) *GetListingDetailsUseCase {
	return &GetListingDetailsUseCase{api: api, favorites: favorites}
}

func (uc *GetListingDetailsUseCase) Execute(ctx context.Context, resource domain.ListingResource, id int64) (*domain.ListingCard, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetListingDetails",
		"resource": resource,
		"item_id":  id,
	})
	ucLogger.Debug("Use case started", nil)

	card, err := uc.api.FetchListingDetails(ctx, resource, id)
	if err != nil {
		ucLogger.Error("Failed to fetch listing details", err, nil)
		return nil, err
	}

	if kind := domain.FavoriteKindForResource(resource); kind != "" {
		merged := uc.favorites.Overlay(ctx, kind, []domain.ListingCard{*card})
		card = &merged[0]
	}
	return card, nil
}
