package usecase

import (
	"context"
	"errors"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"
)

// ToggleFavoriteUseCase переключает избранное для элемента.
//
// Без токена операция не доходит до сети: вызывающая сторона получает
// ErrAuthRequired и обязана перенаправить на аутентификацию. При сетевой
// ошибке выполняется локальное переключение без подтверждения сервера -
// осознанная best-effort деградация: локальное и серверное состояния могут
// расходиться до следующего успешного переключения или перезагрузки страницы.
type ToggleFavoriteUseCase struct {
	api       port.MarketplaceAPIPort
	store     port.LocalStorePort
	favorites *FavoritesState
}

func NewToggleFavoriteUseCase(api port.MarketplaceAPIPort, store port.LocalStorePort, favorites *FavoritesState) *ToggleFavoriteUseCase {
	return &ToggleFavoriteUseCase{api: api, store: store, favorites: favorites}
}

func (uc *ToggleFavoriteUseCase) Execute(ctx context.Context, kind domain.ItemKind, id int64) (bool, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ToggleFavorite",
		"kind":     kind,
		"item_id":  id,
	})
	ucLogger.Info("Use case started", nil)

	token, _, err := uc.store.Get(ctx, domain.StorageKeyToken)
	if err != nil {
		ucLogger.Error("Failed to read token from local store", err, nil)
		return false, err
	}
	if token == "" {
		ucLogger.Warn("Toggle rejected: no auth token", nil)
		return false, domain.ErrAuthRequired
	}

	action, err := uc.api.ToggleFavorite(ctx, kind, id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			// Токен уже очищен адаптером; локальный набор не трогаем.
			ucLogger.Warn("Toggle rejected: session expired", nil)
			return false, err
		}

		// Сетевая ошибка: переключаем только локально.
		ucLogger.Warn("Server toggle failed, falling back to local toggle", port.Fields{"error": err.Error()})
		set, mErr := uc.favorites.Mutate(ctx, kind, func(s domain.FavoriteSet) {
			if s.Has(id) {
				s.Remove(id)
			} else {
				s.Add(id)
			}
		})
		if mErr != nil {
			return false, mErr
		}
		return set.Has(id), nil
	}

	set, err := uc.favorites.Mutate(ctx, kind, func(s domain.FavoriteSet) {
		switch action {
		case port.FavoriteAdded:
			s.Add(id)
		case port.FavoriteRemoved:
			s.Remove(id)
		}
	})
	if err != nil {
		return false, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"action": action})
	return set.Has(id), nil
}
