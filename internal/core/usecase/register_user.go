package usecase

import (
	"context"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/port"
)

// RegisterUserUseCase - регистрация нового пользователя. Сессия появится
// только после подтверждения email кодом (VerifyEmailUseCase).
type RegisterUserUseCase struct {
	api port.MarketplaceAPIPort
}

func NewRegisterUserUseCase(api port.MarketplaceAPIPort) *RegisterUserUseCase {
	return &RegisterUserUseCase{api: api}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, input port.RegisterInput) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "RegisterUser",
		"email":     input.Email,
		"user_type": input.UserType,
	})
	ucLogger.Info("Use case started", nil)

	if err := uc.api.Register(ctx, input); err != nil {
		ucLogger.Warn("Registration failed", port.Fields{"error": err.Error()})
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
