package usecases_port

import (
	"context"
	"marketplace-client/internal/core/domain"
)

// ToggleFavoriteUseCasePort - переключение избранного для элемента.
// Без токена возвращает domain.ErrAuthRequired, не трогая сеть.
// Возвращает итоговое состояние членства (true - в избранном).
type ToggleFavoriteUseCasePort interface {
	Execute(ctx context.Context, kind domain.ItemKind, id int64) (bool, error)
}

// GetFavoritesUseCasePort - страница серверного списка избранного пользователя.
type GetFavoritesUseCasePort interface {
	Execute(ctx context.Context, kind domain.ItemKind, page int) (*domain.Page, error)
}
