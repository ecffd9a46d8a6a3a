package usecase

import (
	"context"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"
)

// VerifyEmailUseCase подтверждает email кодом; при успехе сервер возвращает
// сессию, которая сохраняется так же, как при входе.
type VerifyEmailUseCase struct {
	api   port.MarketplaceAPIPort
	store port.LocalStorePort
}

func NewVerifyEmailUseCase(api port.MarketplaceAPIPort, store port.LocalStorePort) *VerifyEmailUseCase {
	return &VerifyEmailUseCase{api: api, store: store}
}

func (uc *VerifyEmailUseCase) Execute(ctx context.Context, email, code string) (*domain.Session, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "VerifyEmail", "email": email})
	ucLogger.Info("Use case started", nil)

	session, err := uc.api.VerifyEmail(ctx, email, code)
	if err != nil {
		ucLogger.Warn("Email verification failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	if err := persistSession(ctx, uc.store, session); err != nil {
		ucLogger.Error("Failed to persist session", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return session, nil
}

// ResendCodeUseCase повторно отправляет код подтверждения.
type ResendCodeUseCase struct {
	api port.MarketplaceAPIPort
}

func NewResendCodeUseCase(api port.MarketplaceAPIPort) *ResendCodeUseCase {
	return &ResendCodeUseCase{api: api}
}

func (uc *ResendCodeUseCase) Execute(ctx context.Context, email string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	logger.WithFields(port.Fields{"use_case": "ResendCode", "email": email}).Info("Use case started", nil)
	return uc.api.ResendCode(ctx, email)
}

// ForgotPasswordUseCase инициирует восстановление пароля.
type ForgotPasswordUseCase struct {
	api port.MarketplaceAPIPort
}

func NewForgotPasswordUseCase(api port.MarketplaceAPIPort) *ForgotPasswordUseCase {
	return &ForgotPasswordUseCase{api: api}
}

func (uc *ForgotPasswordUseCase) Execute(ctx context.Context, email string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	logger.WithFields(port.Fields{"use_case": "ForgotPassword", "email": email}).Info("Use case started", nil)
	return uc.api.ForgotPassword(ctx, email)
}
