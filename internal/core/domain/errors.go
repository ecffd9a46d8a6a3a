package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Ключи локального хранилища. Хранилище строковое, значения избранного -
// JSON-массивы ID.
const (
	StorageKeyToken             = "token"
	StorageKeyUserType          = "user_type"
	StorageKeyPropertyFavorites = "propertyFavorites"
	StorageKeyAuctionFavorites  = "auctionFavorites"
	StorageKeyAdFingerprints    = "submittedFingerprints"
)

// Ошибки, которые могут быть возвращены из Use Cases.
var (
	// ErrSessionExpired - сервер ответил 401 при наличии токена;
	// токен в локальном хранилище уже очищен.
	ErrSessionExpired = errors.New("session expired")

	// ErrAuthRequired - операция требует токен, а его нет.
	// Вызывающая сторона обязана перенаправить на аутентификацию.
	ErrAuthRequired = errors.New("authentication required")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDraftNotFound      = errors.New("draft not found")
	ErrListingNotFound    = errors.New("listing not found")

	// ErrPossibleDuplicate - отпечаток объявления совпал с ранее
	// отправленным; повторная отправка требует явного подтверждения.
	ErrPossibleDuplicate = errors.New("possible duplicate ad")
)

// FieldError - одна ошибка клиентской валидации, привязанная к полю формы.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors - набор ошибок валидации. Никогда не уходит в сеть,
// разрешается локально рядом с формой.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationErrors распаковывает ошибку валидации из цепочки ошибок.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
