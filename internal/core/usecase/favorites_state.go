package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"
)

// FavoritesState - локально отслеживаемые наборы избранного по видам
// элементов. Источник истины - долговременное локальное хранилище: чтение
// идет из него при каждом обращении, запись выполняется сразу после каждого
// переключения (не более одной записи на toggle).
type FavoritesState struct {
	store port.LocalStorePort
	mu    sync.Mutex
}

func NewFavoritesState(store port.LocalStorePort) (*FavoritesState, error) {
	if store == nil {
		return nil, fmt.Errorf("local store cannot be nil")
	}
	return &FavoritesState{store: store}, nil
}

// CurrentSet читает набор избранного из хранилища. Испорченное значение
// трактуется как пустой набор: терять весь набор из-за него нельзя.
func (f *FavoritesState) CurrentSet(ctx context.Context, kind domain.ItemKind) (domain.FavoriteSet, error) {
	key, err := domain.FavoritesStorageKey(kind)
	if err != nil {
		return nil, err
	}

	raw, _, err := f.store.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read favorites from local store: %w", err)
	}

	set, err := domain.ParseFavoriteSet(raw)
	if err != nil {
		logger := contextkeys.LoggerFromContext(ctx)
		logger.Warn("Malformed favorites payload in local store, starting empty", port.Fields{
			"key":   key,
			"error": err.Error(),
		})
		return make(domain.FavoriteSet), nil
	}
	return set, nil
}

// Persist записывает набор в хранилище.
func (f *FavoritesState) Persist(ctx context.Context, kind domain.ItemKind, set domain.FavoriteSet) error {
	key, err := domain.FavoritesStorageKey(kind)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	if err := f.store.Set(ctx, key, string(payload)); err != nil {
		return fmt.Errorf("failed to persist favorites: %w", err)
	}
	return nil
}

// Mutate атомарно применяет изменение к набору и сохраняет его.
// Возвращает итоговое членство id.
func (f *FavoritesState) Mutate(ctx context.Context, kind domain.ItemKind, mutate func(domain.FavoriteSet)) (domain.FavoriteSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	set, err := f.CurrentSet(ctx, kind)
	if err != nil {
		return nil, err
	}
	mutate(set)
	if err := f.Persist(ctx, kind, set); err != nil {
		return nil, err
	}
	return set, nil
}

// Overlay накладывает локальный набор избранного на элементы листинга.
// Серверный is_favorite не затирается: локальная отметка только добавляет.
func (f *FavoritesState) Overlay(ctx context.Context, kind domain.ItemKind, items []domain.ListingCard) []domain.ListingCard {
	if kind == "" || len(items) == 0 {
		return items
	}

	set, err := f.CurrentSet(ctx, kind)
	if err != nil {
		// Наложение best-effort: листинг важнее локальной отметки.
		logger := contextkeys.LoggerFromContext(ctx)
		logger.Warn("Failed to load favorites for overlay", port.Fields{"error": err.Error()})
		return items
	}

	for i := range items {
		if set.Has(items[i].ID) {
			items[i].IsFavorite = true
		}
	}
	return items
}
