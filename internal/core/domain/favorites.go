package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// FavoriteSet - множество ID элементов, отмеченных как избранные,
// для одного вида элементов.
type FavoriteSet map[int64]struct{}

func (s FavoriteSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

func (s FavoriteSet) Add(id int64) {
	s[id] = struct{}{}
}

func (s FavoriteSet) Remove(id int64) {
	delete(s, id)
}

// MarshalJSON сериализует множество как отсортированный массив ID -
// именно в таком виде оно хранится в локальном хранилище.
func (s FavoriteSet) MarshalJSON() ([]byte, error) {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return json.Marshal(ids)
}

// ParseFavoriteSet восстанавливает множество из JSON-массива ID.
// Пустая строка трактуется как пустое множество.
func ParseFavoriteSet(raw string) (FavoriteSet, error) {
	set := make(FavoriteSet)
	if raw == "" {
		return set, nil
	}
	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("malformed favorite IDs payload: %w", err)
	}
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// FavoritesStorageKey возвращает ключ локального хранилища для вида элементов.
func FavoritesStorageKey(kind ItemKind) (string, error) {
	switch kind {
	case KindProperties:
		return StorageKeyPropertyFavorites, nil
	case KindAuctions:
		return StorageKeyAuctionFavorites, nil
	default:
		return "", fmt.Errorf("unknown favorite kind: %q", kind)
	}
}
