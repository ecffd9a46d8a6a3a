package usecases_port

import (
	"context"
	"marketplace-client/internal/core/domain"
)

// PollNotificationsUseCasePort - уведомления, доставляемые опросом.
type PollNotificationsUseCasePort interface {
	// Refresh выполняет один опрос удаленного API.
	Refresh(ctx context.Context) error

	// Snapshot возвращает последний успешно полученный список и текст
	// последней ошибки опроса (пустой, если ее не было).
	Snapshot(ctx context.Context) ([]domain.Notification, string)
}

// GetListingDetailsUseCasePort - один элемент листинга с наложенным
// флагом избранного.
type GetListingDetailsUseCasePort interface {
	Execute(ctx context.Context, resource domain.ListingResource, id int64) (*domain.ListingCard, error)
}
