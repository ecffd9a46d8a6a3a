package port

import (
	"context"
	"marketplace-client/internal/core/domain"
)

// FavoriteAction - подтвержденное сервером действие после переключения избранного.
type FavoriteAction string

const (
	FavoriteAdded   FavoriteAction = "added"
	FavoriteRemoved FavoriteAction = "removed"
)

// RegisterInput - данные регистрации нового пользователя.
type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
	UserType string
}

// MarketplaceAPIPort - контракт удаленного REST API маркетплейса.
// Адаптер обязан изолировать ядро от различий в форме JSON-конвертов
// конкретных эндпоинтов и возвращать единый результат.
//
// Любой ответ 401 при наличии токена означает истекшую сессию: адаптер
// очищает сохраненный токен и возвращает domain.ErrSessionExpired.
type MarketplaceAPIPort interface {
	// FetchListings выполняет запрос листинга для ресурса и
	// нормализованного запроса.
	FetchListings(ctx context.Context, resource domain.ListingResource, query []domain.QueryParam) (*domain.Page, error)

	// FetchListingDetails возвращает один элемент по ID.
	FetchListingDetails(ctx context.Context, resource domain.ListingResource, id int64) (*domain.ListingCard, error)

	// ToggleFavorite переключает избранное на сервере.
	ToggleFavorite(ctx context.Context, kind domain.ItemKind, id int64) (FavoriteAction, error)

	// FetchFavorites возвращает серверный список избранного пользователя.
	FetchFavorites(ctx context.Context, kind domain.ItemKind, page int) (*domain.Page, error)

	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Register(ctx context.Context, input RegisterInput) error
	VerifyEmail(ctx context.Context, email, code string) (*domain.Session, error)
	ResendCode(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	Logout(ctx context.Context) error

	// FetchNotifications возвращает уведомления пользователя (доставка опросом).
	FetchNotifications(ctx context.Context) ([]domain.Notification, error)

	// SubmitDraft отправляет заполненную форму как multipart-запрос
	// (поля + вложения) на эндпоинт соответствующего вида формы.
	SubmitDraft(ctx context.Context, draft *domain.FormDraft) error
}
