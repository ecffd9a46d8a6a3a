package usecases_port

import (
	"context"
	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"
)

// LoginUserUseCasePort - вход по email/паролю. При успехе токен и тип
// пользователя записываются в локальное хранилище.
type LoginUserUseCasePort interface {
	Execute(ctx context.Context, email, password string) (*domain.Session, error)
}

// RegisterUserUseCasePort - регистрация. Сессия не создается: пользователь
// должен подтвердить email кодом.
type RegisterUserUseCasePort interface {
	Execute(ctx context.Context, input port.RegisterInput) error
}

// VerifyEmailUseCasePort - подтверждение email кодом; при успехе создает
// сессию, как и вход.
type VerifyEmailUseCasePort interface {
	Execute(ctx context.Context, email, code string) (*domain.Session, error)
}

type ResendCodeUseCasePort interface {
	Execute(ctx context.Context, email string) error
}

type ForgotPasswordUseCasePort interface {
	Execute(ctx context.Context, email string) error
}

// LogoutUserUseCasePort - выход: локальные ключи сессии очищаются всегда,
// серверный вызов best-effort.
type LogoutUserUseCasePort interface {
	Execute(ctx context.Context) error
}
