package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"marketplace-client/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBrowseFixture(t *testing.T, api *fakeAPI) (*BrowseListingsUseCase, *ListingsState, *memoryStore) {
	t.Helper()
	store := newMemoryStore()
	favorites, err := NewFavoritesState(store)
	require.NoError(t, err)
	state := NewListingsState()
	return NewBrowseListingsUseCase(api, state, favorites), state, store
}

func TestBrowseListings_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("successful fetch commits page", func(t *testing.T) {
		api := &fakeAPI{
			fetchListings: func(resource domain.ListingResource, query []domain.QueryParam) (*domain.Page, error) {
				return makePage(1, 2, 3), nil
			},
		}
		uc, _, _ := newBrowseFixture(t, api)

		snap, err := uc.Execute(ctx, domain.ResourceLands, domain.FilterSet{"region": "r1"}, 1)

		require.NoError(t, err)
		assert.Len(t, snap.Items, 3)
		assert.Equal(t, 3, snap.Total)
		assert.False(t, snap.IsLoading)
		assert.Empty(t, snap.Error)
	})

	t.Run("error keeps previous page visible", func(t *testing.T) {
		failing := false
		api := &fakeAPI{
			fetchListings: func(resource domain.ListingResource, query []domain.QueryParam) (*domain.Page, error) {
				if failing {
					return nil, fmt.Errorf("connection refused")
				}
				return makePage(10, 20), nil
			},
		}
		uc, _, _ := newBrowseFixture(t, api)

		_, err := uc.Execute(ctx, domain.ResourceLands, nil, 1)
		require.NoError(t, err)

		failing = true
		snap, err := uc.Execute(ctx, domain.ResourceLands, nil, 1)

		require.Error(t, err)
		// Предыдущая успешная страница не потеряна, ошибка видна в снапшоте
		assert.Len(t, snap.Items, 2)
		assert.Contains(t, snap.Error, "connection refused")
	})

	t.Run("stale response never overwrites newer one", func(t *testing.T) {
		firstEntered := make(chan struct{})
		releaseFirst := make(chan struct{})
		var callNo int
		var mu sync.Mutex

		api := &fakeAPI{}
		api.fetchListings = func(resource domain.ListingResource, query []domain.QueryParam) (*domain.Page, error) {
			mu.Lock()
			callNo++
			no := callNo
			mu.Unlock()

			if no == 1 {
				close(firstEntered)
				<-releaseFirst
				return makePage(111), nil // устаревший ответ
			}
			return makePage(222), nil
		}
		uc, _, _ := newBrowseFixture(t, api)

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = uc.Execute(ctx, domain.ResourceLands, domain.FilterSet{"search": "old"}, 1)
		}()

		<-firstEntered
		_, err := uc.Execute(ctx, domain.ResourceLands, domain.FilterSet{"search": "new"}, 1)
		require.NoError(t, err)

		close(releaseFirst)
		wg.Wait()

		snap := uc.Snapshot(ctx, domain.ResourceLands)
		require.Len(t, snap.Items, 1)
		assert.Equal(t, int64(222), snap.Items[0].ID)
	})

	t.Run("favorites overlay marks locally favorited items", func(t *testing.T) {
		api := &fakeAPI{
			fetchListings: func(resource domain.ListingResource, query []domain.QueryParam) (*domain.Page, error) {
				return makePage(5, 6), nil
			},
		}
		uc, _, store := newBrowseFixture(t, api)
		require.NoError(t, store.Set(ctx, domain.StorageKeyPropertyFavorites, "[6]"))

		snap, err := uc.Execute(ctx, domain.ResourceLands, nil, 1)

		require.NoError(t, err)
		assert.False(t, snap.Items[0].IsFavorite)
		assert.True(t, snap.Items[1].IsFavorite)
	})

	t.Run("empty filter values are not sent to the API", func(t *testing.T) {
		var gotQuery []domain.QueryParam
		api := &fakeAPI{
			fetchListings: func(resource domain.ListingResource, query []domain.QueryParam) (*domain.Page, error) {
				gotQuery = query
				return makePage(), nil
			},
		}
		uc, _, _ := newBrowseFixture(t, api)

		_, err := uc.Execute(ctx, domain.ResourceLands, domain.FilterSet{
			"region":   "منطقة الرياض",
			"city":     "",
			"min_area": "not-a-number",
		}, 1)

		require.NoError(t, err)
		require.Len(t, gotQuery, 2)
		assert.Equal(t, "region", gotQuery[0].Key)
		assert.Equal(t, "page", gotQuery[1].Key)
	})
}

func TestListingsState_ChangePageClamping(t *testing.T) {
	ctx := context.Background()
	api := &fakeAPI{
		fetchListings: func(resource domain.ListingResource, query []domain.QueryParam) (*domain.Page, error) {
			return &domain.Page{Items: makePage(1).Items, CurrentPage: 1, LastPage: 4, PerPage: 10, Total: 40}, nil
		},
	}
	uc, state, _ := newBrowseFixture(t, api)
	changePage := NewChangePageUseCase(uc, state)

	_, err := uc.Execute(ctx, domain.ResourceAuctions, nil, 1)
	require.NoError(t, err)

	_, err = changePage.Execute(ctx, domain.ResourceAuctions, 99)
	require.NoError(t, err)

	// Страница ограничена известным lastPage
	_, page := state.CurrentFilters(domain.ResourceAuctions)
	assert.Equal(t, 4, page)
}

func TestListingsState_ApplyFiltersRegionFirst(t *testing.T) {
	state := NewListingsState()

	state.ApplyFilters(domain.ResourceLands, domain.FilterSet{
		"region": "منطقة الرياض",
		"city":   "الرياض",
	})

	// Смена региона вместе с городом в одной пачке: город относится к
	// новому региону и не должен теряться при сбросе независимо от
	// порядка обхода map.
	for i := 0; i < 20; i++ {
		filters := state.ApplyFilters(domain.ResourceLands, domain.FilterSet{
			"region": "منطقة مكة المكرمة",
			"city":   "جدة",
		})
		require.Equal(t, "منطقة مكة المكرمة", filters["region"])
		require.Equal(t, "جدة", filters["city"])

		filters = state.ApplyFilters(domain.ResourceLands, domain.FilterSet{
			"region": "منطقة الرياض",
			"city":   "الرياض",
		})
		require.Equal(t, "الرياض", filters["city"])
	}
}

func TestSearchDebouncer(t *testing.T) {
	t.Run("rapid triggers collapse into one call", func(t *testing.T) {
		d := NewSearchDebouncer(30 * time.Millisecond)
		var mu sync.Mutex
		calls := 0

		for i := 0; i < 5; i++ {
			d.Trigger(func() {
				mu.Lock()
				calls++
				mu.Unlock()
			})
			time.Sleep(5 * time.Millisecond)
		}

		assert.Eventually(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return calls == 1
		}, time.Second, 10*time.Millisecond)

		// Новых вызовов после тихого периода нет
		time.Sleep(60 * time.Millisecond)
		mu.Lock()
		assert.Equal(t, 1, calls)
		mu.Unlock()
	})

	t.Run("cancel drops the pending call", func(t *testing.T) {
		d := NewSearchDebouncer(20 * time.Millisecond)
		var mu sync.Mutex
		calls := 0

		d.Trigger(func() {
			mu.Lock()
			calls++
			mu.Unlock()
		})
		d.Cancel()

		time.Sleep(50 * time.Millisecond)
		mu.Lock()
		assert.Equal(t, 0, calls)
		mu.Unlock()
	})
}
