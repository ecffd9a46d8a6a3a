package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marketplace-client/internal/core/domain"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBrowse - заглушка BrowseListingsUseCasePort.
type fakeBrowse struct {
	snap domain.ListingsSnapshot
}

func (f *fakeBrowse) Execute(ctx context.Context, resource domain.ListingResource, filters domain.FilterSet, page int) (domain.ListingsSnapshot, error) {
	return f.snap, nil
}

func (f *fakeBrowse) Snapshot(ctx context.Context, resource domain.ListingResource) domain.ListingsSnapshot {
	return f.snap
}

// fakeUpdateFilter - заглушка UpdateFilterUseCasePort.
type fakeUpdateFilter struct {
	snap    domain.ListingsSnapshot
	lastErr error
	field   string
	value   string
}

func (f *fakeUpdateFilter) Execute(ctx context.Context, resource domain.ListingResource, field, value string) (domain.ListingsSnapshot, error) {
	f.field, f.value = field, value
	return f.snap, f.lastErr
}

// fakeToggle - заглушка ToggleFavoriteUseCasePort.
type fakeToggle struct {
	result bool
	err    error
}

func (f *fakeToggle) Execute(ctx context.Context, kind domain.ItemKind, id int64) (bool, error) {
	return f.result, f.err
}

func newTestRouter(listings *ListingsHandler, favorites *FavoritesHandler) *chi.Mux {
	r := chi.NewRouter()
	if listings != nil {
		r.Get("/api/v1/listings/{resource}", listings.GetSnapshot)
		r.Put("/api/v1/listings/{resource}/filters", listings.UpdateFilter)
	}
	if favorites != nil {
		r.Post("/api/v1/favorites/toggle", favorites.Toggle)
	}
	return r
}

func TestListingsHandler(t *testing.T) {
	price := 1250000.0
	snap := domain.ListingsSnapshot{
		Items: []domain.ListingCard{
			{ID: 1, Title: "أرض سكنية", Price: &price, Status: "active", IsFavorite: true},
		},
		Filters:     domain.FilterSet{"region": "منطقة الرياض"},
		CurrentPage: 1,
		LastPage:    3,
		Total:       25,
	}

	t.Run("snapshot is rendered with formatted fields", func(t *testing.T) {
		browse := &fakeBrowse{snap: snap}
		h := NewListingsHandler(browse, &fakeUpdateFilter{snap: snap}, nil, nil, nil)
		router := newTestRouter(h, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/listings/lands", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp SnapshotResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "1,250,000 SAR", resp.Data[0].FormattedPrice)
		assert.Equal(t, "badge-success", resp.Data[0].StatusBadge)
		assert.True(t, resp.Data[0].IsFavorite)
		assert.Equal(t, 3, resp.LastPage)
	})

	t.Run("unknown resource is 404", func(t *testing.T) {
		h := NewListingsHandler(&fakeBrowse{}, &fakeUpdateFilter{}, nil, nil, nil)
		router := newTestRouter(h, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/listings/castles", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("filter update requires field name", func(t *testing.T) {
		h := NewListingsHandler(&fakeBrowse{}, &fakeUpdateFilter{}, nil, nil, nil)
		router := newTestRouter(h, nil)

		req := httptest.NewRequest(http.MethodPut, "/api/v1/listings/lands/filters",
			strings.NewReader(`{"value": "x"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("filter update reaches the use case", func(t *testing.T) {
		update := &fakeUpdateFilter{snap: snap}
		h := NewListingsHandler(&fakeBrowse{snap: snap}, update, nil, nil, nil)
		router := newTestRouter(h, nil)

		req := httptest.NewRequest(http.MethodPut, "/api/v1/listings/lands/filters",
			strings.NewReader(`{"field": "region", "value": "منطقة الرياض"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "region", update.field)
		assert.Equal(t, "منطقة الرياض", update.value)
	})
}

func TestFavoritesHandler_Toggle(t *testing.T) {
	t.Run("no session becomes 401", func(t *testing.T) {
		h := NewFavoritesHandler(&fakeToggle{err: domain.ErrAuthRequired}, nil)
		router := newTestRouter(nil, h)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/favorites/toggle",
			strings.NewReader(`{"type": "properties", "id": 5}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown type is 400", func(t *testing.T) {
		h := NewFavoritesHandler(&fakeToggle{}, nil)
		router := newTestRouter(nil, h)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/favorites/toggle",
			strings.NewReader(`{"type": "paintings", "id": 5}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("successful toggle reports membership", func(t *testing.T) {
		h := NewFavoritesHandler(&fakeToggle{result: true}, nil)
		router := newTestRouter(nil, h)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/favorites/toggle",
			strings.NewReader(`{"type": "auctions", "id": 5}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp ToggleFavoriteResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.IsFavorite)
	})
}
