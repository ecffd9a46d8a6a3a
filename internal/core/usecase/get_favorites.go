package usecase

import (
	"context"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"
)

// GetFavoritesUseCase возвращает страницу серверного списка избранного.
// Успешный ответ сервера - повод примирить локальный набор: серверные ID
// считаются подтвержденными и записываются в локальное хранилище.
type GetFavoritesUseCase struct {
	api       port.MarketplaceAPIPort
	store     port.LocalStorePort
	favorites *FavoritesState
}

func NewGetFavoritesUseCase(api port.MarketplaceAPIPort, store port.LocalStorePort, favorites *FavoritesState) *GetFavoritesUseCase {
	return &GetFavoritesUseCase{api: api, store: store, favorites: favorites}
}

func (uc *GetFavoritesUseCase) Execute(ctx context.Context, kind domain.ItemKind, page int) (*domain.Page, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetFavorites",
		"kind":     kind,
		"page":     page,
	})
	ucLogger.Info("Use case started", nil)

	token, _, err := uc.store.Get(ctx, domain.StorageKeyToken)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, domain.ErrAuthRequired
	}

	result, err := uc.api.FetchFavorites(ctx, kind, page)
	if err != nil {
		ucLogger.Error("Failed to fetch favorites from server", err, nil)
		return nil, err
	}
	result.NormalizeBounds()

	// Примирение: элементы, которые сервер вернул как избранные,
	// добавляются в локальный набор (только на первой странице полного
	// списка набор достоверен, поэтому дальше только дополняем).
	ids := make([]int64, 0, len(result.Items))
	for i := range result.Items {
		result.Items[i].IsFavorite = true
		ids = append(ids, result.Items[i].ID)
	}
	if _, err := uc.favorites.Mutate(ctx, kind, func(s domain.FavoriteSet) {
		for _, id := range ids {
			s.Add(id)
		}
	}); err != nil {
		ucLogger.Warn("Failed to reconcile local favorites", port.Fields{"error": err.Error()})
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"total": result.Total})
	return result, nil
}
