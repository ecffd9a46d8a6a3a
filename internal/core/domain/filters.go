package domain

import (
	"sort"
	"strconv"
)

// ListingResource - идентификатор ресурса листинга на стороне маркетплейса.
type ListingResource string

const (
	ResourceLands        ListingResource = "lands"
	ResourceAuctions     ListingResource = "auctions"
	ResourceLandRequests ListingResource = "land-requests"
)

// FilterSet - текущий набор значений фильтров для одного ресурса.
// Ключи зависят от ресурса (region/city/land_type для земель,
// search/date_from/date_to для аукционов и т.д.).
type FilterSet map[string]string

// numericFilterFields - поля, значения которых должны быть числами.
// Некорректное числовое значение трактуется как отсутствующее.
var numericFilterFields = map[string]bool{
	"min_area":  true,
	"max_area":  true,
	"min_price": true,
	"max_price": true,
	"area_min":  true,
	"area_max":  true,
}

// FilterState хранит авторитетное состояние фильтров и текущую страницу
// для одного ресурса. Чистое in-memory состояние, без ошибок.
type FilterState struct {
	fields FilterSet
	page   int
}

func NewFilterState() *FilterState {
	return &FilterState{
		fields: make(FilterSet),
		page:   1,
	}
}

// SetField обновляет одно поле фильтра.
// Инвариант: город обязан принадлежать выбранному региону, поэтому
// смена региона сбрасывает город.
func (s *FilterState) SetField(name, value string) {
	if name == "region" && s.fields["region"] != value {
		s.fields["city"] = ""
	}
	s.fields[name] = value
	s.page = 1
}

// Reset возвращает все поля к пустым значениям и страницу к 1.
func (s *FilterState) Reset() {
	s.fields = make(FilterSet)
	s.page = 1
}

// SetPage устанавливает текущую страницу, ограничивая ее диапазоном [1, lastPage].
func (s *FilterState) SetPage(n, lastPage int) {
	if lastPage < 1 {
		lastPage = 1
	}
	if n < 1 {
		n = 1
	}
	if n > lastPage {
		n = lastPage
	}
	s.page = n
}

func (s *FilterState) Page() int {
	return s.page
}

// Fields возвращает копию текущих значений фильтров.
func (s *FilterState) Fields() FilterSet {
	out := make(FilterSet, len(s.fields))
	for k, v := range s.fields {
		out[k] = v
	}
	return out
}

// QueryParam - одна пара ключ/значение исходящего запроса.
type QueryParam struct {
	Key   string
	Value string
}

// NormalizeFilters строит минимальное представление запроса из FilterSet:
// пустые значения никогда не сериализуются, числовые поля включаются только
// если они действительно парсятся как число. Параметр page присутствует всегда.
// Порядок пар детерминирован (ключи отсортированы, page - последним).
func NormalizeFilters(filters FilterSet, page int) []QueryParam {
	if page < 1 {
		page = 1
	}

	keys := make([]string, 0, len(filters))
	for k := range filters {
		if k == "" || filters[k] == "" {
			continue
		}
		if numericFilterFields[k] {
			if _, err := strconv.ParseFloat(filters[k], 64); err != nil {
				continue
			}
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	params := make([]QueryParam, 0, len(keys)+1)
	for _, k := range keys {
		params = append(params, QueryParam{Key: k, Value: filters[k]})
	}
	params = append(params, QueryParam{Key: "page", Value: strconv.Itoa(page)})
	return params
}
