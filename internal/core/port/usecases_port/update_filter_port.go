package usecases_port

import (
	"context"
	"marketplace-client/internal/core/domain"
)

// UpdateFilterUseCasePort - изменение одного поля фильтра ресурса.
// Для полей свободного текста перезагрузка откладывается на тихий период
// (debounce), для остальных выполняется сразу.
type UpdateFilterUseCasePort interface {
	Execute(ctx context.Context, resource domain.ListingResource, field, value string) (domain.ListingsSnapshot, error)
}

// ResetFiltersUseCasePort - сброс всех фильтров ресурса к пустым значениям
// и страницы к 1, с немедленной перезагрузкой.
type ResetFiltersUseCasePort interface {
	Execute(ctx context.Context, resource domain.ListingResource) (domain.ListingsSnapshot, error)
}

// ChangePageUseCasePort - переход на страницу n (с ограничением диапазона)
// и немедленная перезагрузка.
type ChangePageUseCasePort interface {
	Execute(ctx context.Context, resource domain.ListingResource, page int) (domain.ListingsSnapshot, error)
}
