package marketapi

import (
	"encoding/json"
	"time"

	"marketplace-client/internal/core/domain"
)

// listingItemResponse - элемент листинга в том виде, в каком его отдают
// эндпоинты маркетплейса. Поля-числа могут приходить и строками - сервер
// непоследователен, поэтому цена и площадь разбираются отдельно.
type listingItemResponse struct {
	ID         int64       `json:"id"`
	Title      string      `json:"title"`
	Region     string      `json:"region"`
	City       string      `json:"city"`
	LandType   string      `json:"land_type"`
	Purpose    string      `json:"purpose"`
	Status     string      `json:"status"`
	Address    string      `json:"address"`
	Company    string      `json:"company"`
	Price      json.Number `json:"price"`
	Area       json.Number `json:"total_area"`
	Images     []string    `json:"images"`
	CreatedAt  string      `json:"created_at"`
	IsFavorite bool        `json:"is_favorite"`
}

// toDomain маппит DTO ответа в доменную модель. Это важный шаг, который
// изолирует ядро от деталей API.
func (r listingItemResponse) toDomain() domain.ListingCard {
	card := domain.ListingCard{
		ID:         r.ID,
		Title:      r.Title,
		Region:     r.Region,
		City:       r.City,
		LandType:   r.LandType,
		Purpose:    r.Purpose,
		Status:     r.Status,
		Address:    r.Address,
		Company:    r.Company,
		Images:     r.Images,
		IsFavorite: r.IsFavorite,
	}
	if f, err := r.Price.Float64(); err == nil && r.Price.String() != "" {
		card.Price = &f
	}
	if f, err := r.Area.Float64(); err == nil && r.Area.String() != "" {
		card.Area = &f
	}
	if t, err := time.Parse(time.RFC3339, r.CreatedAt); err == nil {
		card.CreatedAt = t
	}
	return card
}

// paginationResponse - общий блок пагинации (используется землями и заявками).
type paginationResponse struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`

	// links присутствует только у заявок на покупку; флаги наличия
	// соседних страниц нам не нужны, пагинация выводится из last_page.
	Links *paginationLinks `json:"links,omitempty"`
}

type paginationLinks struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

// landsEnvelope - конверт эндпоинта земель: пагинация вложена в data.
type landsEnvelope struct {
	Status bool `json:"status"`
	Data   struct {
		Items      []listingItemResponse `json:"items"`
		Pagination paginationResponse    `json:"pagination"`
	} `json:"data"`
}

// auctionsEnvelope - конверт эндпоинта аукционов: пагинация на верхнем уровне.
type auctionsEnvelope struct {
	Data        []listingItemResponse `json:"data"`
	CurrentPage int                   `json:"current_page"`
	LastPage    int                   `json:"last_page"`
	PerPage     int                   `json:"per_page"`
	Total       int                   `json:"total"`
}

// requestsEnvelope - конверт эндпоинта заявок: отдельный объект pagination с links.
type requestsEnvelope struct {
	Data       []listingItemResponse `json:"data"`
	Pagination paginationResponse    `json:"pagination"`
}

type detailsEnvelope struct {
	Status bool                `json:"status"`
	Data   listingItemResponse `json:"data"`
}

type toggleFavoriteResponse struct {
	Status bool   `json:"status"`
	Action string `json:"action"`
}

type sessionResponse struct {
	Token    string `json:"token"`
	UserType string `json:"user_type"`
	Message  string `json:"message"`
}

type notificationResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
	ReadAt    string `json:"read_at"`
}

func (r notificationResponse) toDomain() domain.Notification {
	n := domain.Notification{
		ID:    r.ID,
		Title: r.Title,
		Body:  r.Body,
		Read:  r.ReadAt != "",
	}
	if t, err := time.Parse(time.RFC3339, r.CreatedAt); err == nil {
		n.CreatedAt = t
	}
	return n
}
