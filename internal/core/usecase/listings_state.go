package usecase

import (
	"sync"

	"marketplace-client/internal/core/domain"
)

// resourceState - состояние конвейера одного ресурса листинга.
// Машина состояний: Idle -> Loading -> {Success, Error}.
type resourceState struct {
	filters *domain.FilterState

	// seq - номер последнего выданного запроса. Фиксируется только
	// результат запроса с актуальным номером (last-request-wins).
	seq     uint64
	loading bool

	// page - последняя успешная страница. Во время загрузки остается
	// видимой (stale-while-revalidate), при ошибке сохраняется.
	page    *domain.Page
	lastErr string
}

// ListingsState - общее состояние всех ресурсов листинга. Одна точка
// синхронизации для фильтров и кэша результатов; использующие его use cases
// не держат собственного состояния.
type ListingsState struct {
	mu        sync.Mutex
	resources map[domain.ListingResource]*resourceState
}

func NewListingsState() *ListingsState {
	return &ListingsState{
		resources: make(map[domain.ListingResource]*resourceState),
	}
}

// state возвращает состояние ресурса, создавая его лениво. Вызывается под mu.
func (s *ListingsState) state(resource domain.ListingResource) *resourceState {
	rs, ok := s.resources[resource]
	if !ok {
		rs = &resourceState{filters: domain.NewFilterState()}
		s.resources[resource] = rs
	}
	return rs
}

// ApplyFilters записывает переданные значения фильтров в состояние ресурса
// (через SetField, чтобы сработал сброс города при смене региона) и
// возвращает актуальную копию. Регион применяется первым: иначе порядок
// обхода map решал бы, переживет ли город из той же пачки сброс региона.
func (s *ListingsState) ApplyFilters(resource domain.ListingResource, filters domain.FilterSet) domain.FilterSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs := s.state(resource)
	if region, ok := filters["region"]; ok {
		rs.filters.SetField("region", region)
	}
	for name, value := range filters {
		if name == "region" {
			continue
		}
		rs.filters.SetField(name, value)
	}
	return rs.filters.Fields()
}

// SetField изменяет одно поле фильтра и возвращает актуальную копию фильтров.
func (s *ListingsState) SetField(resource domain.ListingResource, name, value string) domain.FilterSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs := s.state(resource)
	rs.filters.SetField(name, value)
	return rs.filters.Fields()
}

// ResetFilters сбрасывает фильтры и страницу ресурса.
func (s *ListingsState) ResetFilters(resource domain.ListingResource) domain.FilterSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs := s.state(resource)
	rs.filters.Reset()
	return rs.filters.Fields()
}

// SetPage устанавливает страницу, ограничивая ее известным lastPage.
func (s *ListingsState) SetPage(resource domain.ListingResource, page int) (domain.FilterSet, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs := s.state(resource)
	lastPage := 1
	if rs.page != nil {
		lastPage = rs.page.LastPage
	}
	rs.filters.SetPage(page, lastPage)
	return rs.filters.Fields(), rs.filters.Page()
}

// CurrentFilters возвращает копию фильтров и текущую страницу ресурса.
func (s *ListingsState) CurrentFilters(resource domain.ListingResource) (domain.FilterSet, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs := s.state(resource)
	return rs.filters.Fields(), rs.filters.Page()
}

// BeginRequest выдает новый номер запроса и переводит ресурс в Loading.
// Предыдущая успешная страница остается видимой до фиксации нового результата.
func (s *ListingsState) BeginRequest(resource domain.ListingResource) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs := s.state(resource)
	rs.seq++
	rs.loading = true
	return rs.seq
}

// CommitSuccess фиксирует успешный результат, если запрос все еще актуален.
// Результат устаревшего запроса отбрасывается.
func (s *ListingsState) CommitSuccess(resource domain.ListingResource, seq uint64, page *domain.Page) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs := s.state(resource)
	if seq != rs.seq {
		return false
	}
	page.NormalizeBounds()
	rs.page = page
	rs.lastErr = ""
	rs.loading = false
	return true
}

// CommitError фиксирует ошибку, если запрос все еще актуален.
// Предыдущая успешная страница при этом сохраняется.
func (s *ListingsState) CommitError(resource domain.ListingResource, seq uint64, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs := s.state(resource)
	if seq != rs.seq {
		return false
	}
	rs.lastErr = msg
	rs.loading = false
	return true
}

// Snapshot возвращает видимое состояние ресурса для рендера.
func (s *ListingsState) Snapshot(resource domain.ListingResource) domain.ListingsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs := s.state(resource)
	snap := domain.ListingsSnapshot{
		Filters:     rs.filters.Fields(),
		CurrentPage: rs.filters.Page(),
		LastPage:    1,
		IsLoading:   rs.loading,
		Error:       rs.lastErr,
	}
	if rs.page != nil {
		snap.Items = append([]domain.ListingCard(nil), rs.page.Items...)
		snap.CurrentPage = rs.page.CurrentPage
		snap.LastPage = rs.page.LastPage
		snap.PerPage = rs.page.PerPage
		snap.Total = rs.page.Total
	}
	return snap
}
