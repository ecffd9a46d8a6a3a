package domain

import "time"

// ItemKind - вид элемента для избранного.
type ItemKind string

const (
	KindProperties ItemKind = "properties"
	KindAuctions   ItemKind = "auctions"
)

// FavoriteKindForResource возвращает вид избранного для ресурса листинга.
// Для заявок на покупку избранное не поддерживается - возвращается пустой вид.
func FavoriteKindForResource(resource ListingResource) ItemKind {
	switch resource {
	case ResourceLands:
		return KindProperties
	case ResourceAuctions:
		return KindAuctions
	default:
		return ""
	}
}

// ListingCard - один элемент листинга. Ядро объекта принадлежит серверу,
// клиент только накладывает производный флаг IsFavorite.
type ListingCard struct {
	ID       int64
	Title    string
	Region   string
	City     string
	LandType string
	Purpose  string
	Status   string
	Address  string
	Company  string

	Price *float64
	Area  *float64

	Images    []string
	CreatedAt time.Time

	IsFavorite bool
}

// Page - одна выбранная партия элементов плюс метаданные пагинации.
// Инварианты: LastPage >= 1 даже при Total == 0, CurrentPage в [1, LastPage].
type Page struct {
	Items       []ListingCard
	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int
}

// NormalizeBounds приводит метаданные страницы к инвариантам.
func (p *Page) NormalizeBounds() {
	if p.LastPage < 1 {
		p.LastPage = 1
	}
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	if p.CurrentPage > p.LastPage {
		p.CurrentPage = p.LastPage
	}
	if p.Total < 0 {
		p.Total = 0
	}
}

// ListingsSnapshot - видимое состояние коллекции листинга для рендера:
// элементы с наложенным избранным, метаданные пагинации, флаг загрузки и
// текст последней ошибки (пустой, если ее нет).
type ListingsSnapshot struct {
	Items       []ListingCard
	Filters     FilterSet
	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int
	IsLoading   bool
	Error       string
}

// Notification - одно уведомление пользователя (доставка только опросом).
type Notification struct {
	ID        int64
	Title     string
	Body      string
	CreatedAt time.Time
	Read      bool
}

// Session - результат успешной аутентификации. Токен - непрозрачная строка.
type Session struct {
	Token    string
	UserType string
}
