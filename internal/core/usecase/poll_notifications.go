package usecase

import (
	"context"
	"sync"
	"time"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"
)

// PollNotificationsUseCase опрашивает уведомления с фиксированным интервалом
// (push не используется). Последний успешный список остается видимым при
// ошибке опроса - она только записывается в снапшот.
type PollNotificationsUseCase struct {
	api      port.MarketplaceAPIPort
	store    port.LocalStorePort
	interval time.Duration
	logger   port.LoggerPort

	mu      sync.Mutex
	items   []domain.Notification
	lastErr string
}

func NewPollNotificationsUseCase(api port.MarketplaceAPIPort, store port.LocalStorePort, interval time.Duration, logger port.LoggerPort) *PollNotificationsUseCase {
	if interval <= 0 {
		interval = 60 * time.Second
	}
	return &PollNotificationsUseCase{
		api:      api,
		store:    store,
		interval: interval,
		logger:   logger,
	}
}

// Run запускает цикл опроса до отмены контекста.
func (uc *PollNotificationsUseCase) Run(ctx context.Context) {
	ticker := time.NewTicker(uc.interval)
	defer ticker.Stop()

	uc.logger.Info("Notifications poller started", port.Fields{"interval": uc.interval.String()})
	for {
		select {
		case <-ctx.Done():
			uc.logger.Info("Notifications poller stopped", nil)
			return
		case <-ticker.C:
			pollCtx := contextkeys.ContextWithLogger(ctx, uc.logger)
			if err := uc.Refresh(pollCtx); err != nil {
				uc.logger.Warn("Notifications poll failed", port.Fields{"error": err.Error()})
			}
		}
	}
}

// Refresh выполняет один опрос. Без токена опрос пропускается молча:
// уведомления есть только у аутентифицированного пользователя.
func (uc *PollNotificationsUseCase) Refresh(ctx context.Context) error {
	token, _, err := uc.store.Get(ctx, domain.StorageKeyToken)
	if err != nil {
		return err
	}
	if token == "" {
		uc.mu.Lock()
		uc.items = nil
		uc.lastErr = ""
		uc.mu.Unlock()
		return nil
	}

	items, err := uc.api.FetchNotifications(ctx)
	if err != nil {
		uc.mu.Lock()
		uc.lastErr = err.Error()
		uc.mu.Unlock()
		return err
	}

	uc.mu.Lock()
	uc.items = items
	uc.lastErr = ""
	uc.mu.Unlock()
	return nil
}

func (uc *PollNotificationsUseCase) Snapshot(ctx context.Context) ([]domain.Notification, string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return append([]domain.Notification(nil), uc.items...), uc.lastErr
}
