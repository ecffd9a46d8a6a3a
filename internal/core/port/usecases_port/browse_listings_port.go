package usecases_port

import (
	"context"
	"marketplace-client/internal/core/domain"
)

// BrowseListingsUseCasePort - загрузка страницы листинга для (ресурс, фильтры,
// страница). Гарантирует last-request-wins: зафиксирован может быть только
// результат самого последнего выданного запроса по ресурсу.
type BrowseListingsUseCasePort interface {
	Execute(ctx context.Context, resource domain.ListingResource, filters domain.FilterSet, page int) (domain.ListingsSnapshot, error)

	// Snapshot возвращает текущее видимое состояние без сетевого вызова.
	Snapshot(ctx context.Context, resource domain.ListingResource) domain.ListingsSnapshot
}
