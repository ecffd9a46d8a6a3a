package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteSet(t *testing.T) {
	t.Run("round trip through storage payload", func(t *testing.T) {
		set := make(FavoriteSet)
		set.Add(7)
		set.Add(3)
		set.Add(42)

		payload, err := json.Marshal(set)
		require.NoError(t, err)
		// Отсортированный массив - именно так набор лежит в хранилище
		assert.Equal(t, "[3,7,42]", string(payload))

		parsed, err := ParseFavoriteSet(string(payload))
		require.NoError(t, err)
		assert.True(t, parsed.Has(3))
		assert.True(t, parsed.Has(7))
		assert.True(t, parsed.Has(42))
		assert.False(t, parsed.Has(1))
	})

	t.Run("empty payload is an empty set", func(t *testing.T) {
		set, err := ParseFavoriteSet("")
		require.NoError(t, err)
		assert.Empty(t, set)
	})

	t.Run("malformed payload is an error", func(t *testing.T) {
		_, err := ParseFavoriteSet(`{"not":"an array"}`)
		assert.Error(t, err)
	})

	t.Run("remove is idempotent", func(t *testing.T) {
		set := make(FavoriteSet)
		set.Add(1)
		set.Remove(1)
		set.Remove(1)
		assert.False(t, set.Has(1))
	})
}

func TestFavoritesStorageKey(t *testing.T) {
	key, err := FavoritesStorageKey(KindProperties)
	require.NoError(t, err)
	assert.Equal(t, StorageKeyPropertyFavorites, key)

	key, err = FavoritesStorageKey(KindAuctions)
	require.NoError(t, err)
	assert.Equal(t, StorageKeyAuctionFavorites, key)

	_, err = FavoritesStorageKey("unknown")
	assert.Error(t, err)
}

func TestPageNormalizeBounds(t *testing.T) {
	p := &Page{CurrentPage: 9, LastPage: 0, Total: -1}
	p.NormalizeBounds()

	assert.Equal(t, 1, p.LastPage)
	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, 0, p.Total)
}
