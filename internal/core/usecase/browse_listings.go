package usecase

import (
	"context"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"
)

// BrowseListingsUseCase - конвейер "фильтры -> запрос -> кэш результата".
// Держит для каждого ресурса последнюю успешную страницу (она остается
// видимой, пока грузится новая) и гарантирует, что результат устаревшего
// запроса никогда не перезапишет более новое состояние.
type BrowseListingsUseCase struct {
	api       port.MarketplaceAPIPort
	state     *ListingsState
	favorites *FavoritesState
}

func NewBrowseListingsUseCase(api port.MarketplaceAPIPort, state *ListingsState, favorites *FavoritesState) *BrowseListingsUseCase {
	return &BrowseListingsUseCase{api: api, state: state, favorites: favorites}
}

func (uc *BrowseListingsUseCase) Execute(ctx context.Context, resource domain.ListingResource, filters domain.FilterSet, page int) (domain.ListingsSnapshot, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "BrowseListings",
		"resource": resource,
		"page":     page,
	})

	// Применяем фильтры к состоянию ресурса (смена региона сбрасывает город)
	// и строим минимальный запрос: пустые значения не сериализуются.
	applied := uc.state.ApplyFilters(resource, filters)
	uc.state.SetPage(resource, page)
	_, page = uc.state.CurrentFilters(resource)
	query := domain.NormalizeFilters(applied, page)

	seq := uc.state.BeginRequest(resource)
	ucLogger.Debug("Issuing listings fetch", port.Fields{"seq": seq, "params": len(query)})

	result, err := uc.api.FetchListings(ctx, resource, query)
	if err != nil {
		if !uc.state.CommitError(resource, seq, err.Error()) {
			ucLogger.Debug("Discarding stale error result", port.Fields{"seq": seq})
			return uc.snapshot(ctx, resource), nil
		}
		ucLogger.Error("Listings fetch failed", err, nil)
		// Ошибка retryable: предыдущая страница сохранена, вызывающая
		// сторона показывает сообщение и может повторить ту же операцию.
		return uc.snapshot(ctx, resource), err
	}

	if !uc.state.CommitSuccess(resource, seq, result) {
		ucLogger.Debug("Discarding stale success result", port.Fields{"seq": seq})
		return uc.snapshot(ctx, resource), nil
	}

	ucLogger.Info("Listings page committed", port.Fields{
		"total":         result.Total,
		"items_on_page": len(result.Items),
		"last_page":     result.LastPage,
	})
	return uc.snapshot(ctx, resource), nil
}

func (uc *BrowseListingsUseCase) Snapshot(ctx context.Context, resource domain.ListingResource) domain.ListingsSnapshot {
	return uc.snapshot(ctx, resource)
}

// snapshot возвращает видимое состояние с наложенным избранным.
func (uc *BrowseListingsUseCase) snapshot(ctx context.Context, resource domain.ListingResource) domain.ListingsSnapshot {
	snap := uc.state.Snapshot(resource)
	kind := domain.FavoriteKindForResource(resource)
	snap.Items = uc.favorites.Overlay(ctx, kind, snap.Items)
	return snap
}
