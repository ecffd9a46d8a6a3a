package usecase

import (
	"context"
	"fmt"
	"testing"

	"marketplace-client/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginUser_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("successful login persists session keys", func(t *testing.T) {
		api := &fakeAPI{
			login: func(email, password string) (*domain.Session, error) {
				return &domain.Session{Token: "jwt-token", UserType: "company"}, nil
			},
		}
		store := newMemoryStore()
		uc := NewLoginUserUseCase(api, store)

		session, err := uc.Execute(ctx, "user@example.com", "secret")

		require.NoError(t, err)
		assert.Equal(t, "jwt-token", session.Token)

		token, _, _ := store.Get(ctx, domain.StorageKeyToken)
		userType, _, _ := store.Get(ctx, domain.StorageKeyUserType)
		assert.Equal(t, "jwt-token", token)
		assert.Equal(t, "company", userType)
	})

	t.Run("failed login writes nothing", func(t *testing.T) {
		api := &fakeAPI{
			login: func(email, password string) (*domain.Session, error) {
				return nil, domain.ErrInvalidCredentials
			},
		}
		store := newMemoryStore()
		uc := NewLoginUserUseCase(api, store)

		_, err := uc.Execute(ctx, "user@example.com", "wrong")

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		_, ok, _ := store.Get(ctx, domain.StorageKeyToken)
		assert.False(t, ok)
	})

	t.Run("empty token from server is an error", func(t *testing.T) {
		api := &fakeAPI{
			login: func(email, password string) (*domain.Session, error) {
				return &domain.Session{}, nil
			},
		}
		uc := NewLoginUserUseCase(api, newMemoryStore())

		_, err := uc.Execute(ctx, "user@example.com", "secret")
		assert.Error(t, err)
	})
}

func TestLogoutUser_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("clears local session even when server call fails", func(t *testing.T) {
		api := &fakeAPI{}
		store := newMemoryStore()
		require.NoError(t, store.Set(ctx, domain.StorageKeyToken, "t"))
		require.NoError(t, store.Set(ctx, domain.StorageKeyUserType, "seller"))

		uc := NewLogoutUserUseCase(&failingLogoutAPI{fakeAPI: api}, store)
		require.NoError(t, uc.Execute(ctx))

		_, hasToken, _ := store.Get(ctx, domain.StorageKeyToken)
		_, hasType, _ := store.Get(ctx, domain.StorageKeyUserType)
		assert.False(t, hasToken)
		assert.False(t, hasType)
	})
}

// failingLogoutAPI - вариант fakeAPI с падающим Logout.
type failingLogoutAPI struct {
	*fakeAPI
}

func (f *failingLogoutAPI) Logout(ctx context.Context) error {
	return fmt.Errorf("server unreachable")
}

func TestPollNotifications(t *testing.T) {
	ctx := context.Background()

	t.Run("no token clears items silently", func(t *testing.T) {
		api := &fakeAPI{}
		uc := NewPollNotificationsUseCase(api, newMemoryStore(), 0, noopTestLogger())

		require.NoError(t, uc.Refresh(ctx))

		items, lastErr := uc.Snapshot(ctx)
		assert.Empty(t, items)
		assert.Empty(t, lastErr)
		assert.Equal(t, 0, api.callCount())
	})

	t.Run("poll error keeps last successful list", func(t *testing.T) {
		failing := false
		api := &fakeAPI{
			fetchNotifications: func() ([]domain.Notification, error) {
				if failing {
					return nil, fmt.Errorf("poll failed")
				}
				return []domain.Notification{{ID: 1, Title: "offer received"}}, nil
			},
		}
		store := newMemoryStore()
		require.NoError(t, store.Set(ctx, domain.StorageKeyToken, "t"))
		uc := NewPollNotificationsUseCase(api, store, 0, noopTestLogger())

		require.NoError(t, uc.Refresh(ctx))

		failing = true
		require.Error(t, uc.Refresh(ctx))

		items, lastErr := uc.Snapshot(ctx)
		require.Len(t, items, 1)
		assert.Equal(t, "offer received", items[0].Title)
		assert.Contains(t, lastErr, "poll failed")
	})
}
