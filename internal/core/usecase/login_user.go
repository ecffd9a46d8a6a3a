package usecase

import (
	"context"
	"fmt"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"
)

// LoginUserUseCase выполняет вход и сохраняет сессию в локальное хранилище.
// Токен и тип пользователя - единственные ключи сессии; пишутся при входе,
// очищаются при выходе или на 401.
type LoginUserUseCase struct {
	api   port.MarketplaceAPIPort
	store port.LocalStorePort
}

func NewLoginUserUseCase(api port.MarketplaceAPIPort, store port.LocalStorePort) *LoginUserUseCase {
	return &LoginUserUseCase{api: api, store: store}
}

func (uc *LoginUserUseCase) Execute(ctx context.Context, email, password string) (*domain.Session, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "LoginUser",
		"email":    email,
	})
	ucLogger.Info("Use case started", nil)

	session, err := uc.api.Login(ctx, email, password)
	if err != nil {
		ucLogger.Warn("Login failed", port.Fields{"error": err.Error()})
		return nil, err
	}

	if err := persistSession(ctx, uc.store, session); err != nil {
		ucLogger.Error("Failed to persist session", err, nil)
		return nil, err
	}

	ucLogger.Info("User logged in successfully", port.Fields{"user_type": session.UserType})
	return session, nil
}

// persistSession записывает ключи сессии в локальное хранилище.
func persistSession(ctx context.Context, store port.LocalStorePort, session *domain.Session) error {
	if session == nil || session.Token == "" {
		return fmt.Errorf("server returned empty session token")
	}
	if err := store.Set(ctx, domain.StorageKeyToken, session.Token); err != nil {
		return err
	}
	return store.Set(ctx, domain.StorageKeyUserType, session.UserType)
}
