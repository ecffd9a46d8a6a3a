package usecase

import (
	"context"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"
)

// LogoutUserUseCase завершает сессию. Локальные ключи сессии очищаются
// всегда; серверный вызов best-effort - его ошибка не мешает выходу.
type LogoutUserUseCase struct {
	api   port.MarketplaceAPIPort
	store port.LocalStorePort
}

func NewLogoutUserUseCase(api port.MarketplaceAPIPort, store port.LocalStorePort) *LogoutUserUseCase {
	return &LogoutUserUseCase{api: api, store: store}
}

func (uc *LogoutUserUseCase) Execute(ctx context.Context) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "LogoutUser"})
	ucLogger.Info("Use case started", nil)

	if err := uc.api.Logout(ctx); err != nil {
		ucLogger.Warn("Server logout failed, clearing local session anyway", port.Fields{"error": err.Error()})
	}

	if err := uc.store.Delete(ctx, domain.StorageKeyToken); err != nil {
		ucLogger.Error("Failed to clear token", err, nil)
		return err
	}
	if err := uc.store.Delete(ctx, domain.StorageKeyUserType); err != nil {
		ucLogger.Error("Failed to clear user type", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
