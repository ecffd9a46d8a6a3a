package localstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key reports absence", func(t *testing.T) {
		store := newTestStore(t)

		value, ok, err := store.Get(ctx, "token")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, value)
	})

	t.Run("set then get", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.Set(ctx, "token", "jwt-abc"))

		value, ok, err := store.Get(ctx, "token")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "jwt-abc", value)
	})

	t.Run("set overwrites existing value", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.Set(ctx, "propertyFavorites", "[1]"))
		require.NoError(t, store.Set(ctx, "propertyFavorites", "[1,2]"))

		value, _, err := store.Get(ctx, "propertyFavorites")
		require.NoError(t, err)
		assert.Equal(t, "[1,2]", value)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.Set(ctx, "token", "jwt"))
		require.NoError(t, store.Delete(ctx, "token"))
		require.NoError(t, store.Delete(ctx, "token"))

		_, ok, err := store.Get(ctx, "token")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("empty path is rejected", func(t *testing.T) {
		_, err := NewSQLiteStore("")
		assert.Error(t, err)
	})

	t.Run("empty string value round-trips", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.Set(ctx, "user_type", ""))

		value, ok, err := store.Get(ctx, "user_type")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, value)
	})
}
