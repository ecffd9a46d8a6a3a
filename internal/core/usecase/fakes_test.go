package usecase

import (
	"context"
	"fmt"
	"sync"

	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"
)

// memoryStore - простое in-memory хранилище для тестов.
type memoryStore struct {
	mu     sync.Mutex
	values map[string]string
	failed bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: make(map[string]string)}
}

func (m *memoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failed {
		return "", false, fmt.Errorf("store unavailable")
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failed {
		return fmt.Errorf("store unavailable")
	}
	m.values[key] = value
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// fakeAPI - управляемая из теста реализация MarketplaceAPIPort.
// Незаданные хуки считают вызов неожиданным.
type fakeAPI struct {
	mu    sync.Mutex
	calls int

	fetchListings      func(resource domain.ListingResource, query []domain.QueryParam) (*domain.Page, error)
	fetchDetails       func(resource domain.ListingResource, id int64) (*domain.ListingCard, error)
	toggleFavorite     func(kind domain.ItemKind, id int64) (port.FavoriteAction, error)
	fetchFavorites     func(kind domain.ItemKind, page int) (*domain.Page, error)
	login              func(email, password string) (*domain.Session, error)
	fetchNotifications func() ([]domain.Notification, error)
	submitDraft        func(draft *domain.FormDraft) error
}

func (f *fakeAPI) bump() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.calls
}

func (f *fakeAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeAPI) FetchListings(ctx context.Context, resource domain.ListingResource, query []domain.QueryParam) (*domain.Page, error) {
	f.bump()
	if f.fetchListings == nil {
		return nil, fmt.Errorf("unexpected FetchListings call")
	}
	return f.fetchListings(resource, query)
}

func (f *fakeAPI) FetchListingDetails(ctx context.Context, resource domain.ListingResource, id int64) (*domain.ListingCard, error) {
	f.bump()
	if f.fetchDetails == nil {
		return nil, fmt.Errorf("unexpected FetchListingDetails call")
	}
	return f.fetchDetails(resource, id)
}

func (f *fakeAPI) ToggleFavorite(ctx context.Context, kind domain.ItemKind, id int64) (port.FavoriteAction, error) {
	f.bump()
	if f.toggleFavorite == nil {
		return "", fmt.Errorf("unexpected ToggleFavorite call")
	}
	return f.toggleFavorite(kind, id)
}

func (f *fakeAPI) FetchFavorites(ctx context.Context, kind domain.ItemKind, page int) (*domain.Page, error) {
	f.bump()
	if f.fetchFavorites == nil {
		return nil, fmt.Errorf("unexpected FetchFavorites call")
	}
	return f.fetchFavorites(kind, page)
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	f.bump()
	if f.login == nil {
		return nil, fmt.Errorf("unexpected Login call")
	}
	return f.login(email, password)
}

func (f *fakeAPI) Register(ctx context.Context, input port.RegisterInput) error {
	f.bump()
	return nil
}

func (f *fakeAPI) VerifyEmail(ctx context.Context, email, code string) (*domain.Session, error) {
	f.bump()
	return &domain.Session{Token: "verified-token", UserType: "seller"}, nil
}

func (f *fakeAPI) ResendCode(ctx context.Context, email string) error {
	f.bump()
	return nil
}

func (f *fakeAPI) ForgotPassword(ctx context.Context, email string) error {
	f.bump()
	return nil
}

func (f *fakeAPI) Logout(ctx context.Context) error {
	f.bump()
	return nil
}

func (f *fakeAPI) FetchNotifications(ctx context.Context) ([]domain.Notification, error) {
	f.bump()
	if f.fetchNotifications == nil {
		return nil, fmt.Errorf("unexpected FetchNotifications call")
	}
	return f.fetchNotifications()
}

func (f *fakeAPI) SubmitDraft(ctx context.Context, draft *domain.FormDraft) error {
	f.bump()
	if f.submitDraft == nil {
		return fmt.Errorf("unexpected SubmitDraft call")
	}
	return f.submitDraft(draft)
}

// testLogger - логгер-заглушка для тестов.
type testLogger struct{}

func noopTestLogger() port.LoggerPort { return testLogger{} }

func (testLogger) Debug(msg string, fields port.Fields)            {}
func (testLogger) Info(msg string, fields port.Fields)             {}
func (testLogger) Warn(msg string, fields port.Fields)             {}
func (testLogger) Error(msg string, err error, fields port.Fields) {}
func (testLogger) WithFields(fields port.Fields) port.LoggerPort   { return testLogger{} }

// makePage - страница с простыми карточками для тестов.
func makePage(ids ...int64) *domain.Page {
	page := &domain.Page{
		CurrentPage: 1,
		LastPage:    1,
		PerPage:     len(ids),
		Total:       len(ids),
	}
	for _, id := range ids {
		page.Items = append(page.Items, domain.ListingCard{
			ID:    id,
			Title: fmt.Sprintf("land #%d", id),
		})
	}
	return page
}
