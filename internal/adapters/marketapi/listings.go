package marketapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"
)

// listingEndpoints - пути эндпоинтов листинга по ресурсам.
var listingEndpoints = map[domain.ListingResource]string{
	domain.ResourceLands:        "/api/lands",
	domain.ResourceAuctions:     "/api/auctions",
	domain.ResourceLandRequests: "/api/land-requests",
}

// FetchListings выполняет запрос листинга и нормализует конверт ответа.
// Каждый эндпоинт заворачивает пагинацию по-своему: земли - внутри
// data.pagination, аукционы - на верхнем уровне, заявки - в отдельном
// объекте pagination с links. Наружу всегда уходит единый domain.Page.
func (c *Client) FetchListings(ctx context.Context, resource domain.ListingResource, query []domain.QueryParam) (*domain.Page, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "MarketplaceApiClient",
		"method":    "FetchListings",
		"resource":  resource,
	})

	endpoint, ok := listingEndpoints[resource]
	if !ok {
		return nil, fmt.Errorf("unknown listing resource: %q", resource)
	}

	url := c.baseURL + endpoint
	if qs := buildQuery(query); qs != "" {
		url += "?" + qs
	}
	clientLogger.Debug("Sending request to marketplace API", port.Fields{"url": url})

	resp, err := c.doRequest(ctx, http.MethodGet, url, nil, "")
	if err != nil {
		clientLogger.Error("Failed to perform request to marketplace API", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := readError(resp)
		clientLogger.Error("Received error response from marketplace API", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	var page *domain.Page
	switch resource {
	case domain.ResourceLands:
		var env landsEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			clientLogger.Error("Failed to decode lands envelope", err, nil)
			return nil, fmt.Errorf("unexpected lands response shape: %w", err)
		}
		page = &domain.Page{
			Items:       mapItems(env.Data.Items),
			CurrentPage: env.Data.Pagination.CurrentPage,
			LastPage:    env.Data.Pagination.LastPage,
			PerPage:     env.Data.Pagination.PerPage,
			Total:       env.Data.Pagination.Total,
		}

	case domain.ResourceAuctions:
		var env auctionsEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			clientLogger.Error("Failed to decode auctions envelope", err, nil)
			return nil, fmt.Errorf("unexpected auctions response shape: %w", err)
		}
		page = &domain.Page{
			Items:       mapItems(env.Data),
			CurrentPage: env.CurrentPage,
			LastPage:    env.LastPage,
			PerPage:     env.PerPage,
			Total:       env.Total,
		}

	case domain.ResourceLandRequests:
		var env requestsEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			clientLogger.Error("Failed to decode land requests envelope", err, nil)
			return nil, fmt.Errorf("unexpected land requests response shape: %w", err)
		}
		page = &domain.Page{
			Items:       mapItems(env.Data),
			CurrentPage: env.Pagination.CurrentPage,
			LastPage:    env.Pagination.LastPage,
			PerPage:     env.Pagination.PerPage,
			Total:       env.Pagination.Total,
		}
	}

	page.NormalizeBounds()
	clientLogger.Info("Successfully received and decoded response", port.Fields{
		"items_on_page": len(page.Items),
		"total":         page.Total,
	})
	return page, nil
}

// FetchListingDetails возвращает один элемент по ID.
func (c *Client) FetchListingDetails(ctx context.Context, resource domain.ListingResource, id int64) (*domain.ListingCard, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "MarketplaceApiClient",
		"method":    "FetchListingDetails",
		"resource":  resource,
		"item_id":   id,
	})

	endpoint, ok := listingEndpoints[resource]
	if !ok {
		return nil, fmt.Errorf("unknown listing resource: %q", resource)
	}

	url := fmt.Sprintf("%s%s/%d", c.baseURL, endpoint, id)
	clientLogger.Debug("Sending request to marketplace API", port.Fields{"url": url})

	resp, err := c.doRequest(ctx, http.MethodGet, url, nil, "")
	if err != nil {
		clientLogger.Error("Failed to perform request to marketplace API", err, nil)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrListingNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := readError(resp)
		clientLogger.Error("Received error response from marketplace API", err, port.Fields{"status_code": resp.StatusCode})
		return nil, err
	}

	var env detailsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		clientLogger.Error("Failed to decode details envelope", err, nil)
		return nil, fmt.Errorf("unexpected details response shape: %w", err)
	}

	card := env.Data.toDomain()
	return &card, nil
}

func mapItems(items []listingItemResponse) []domain.ListingCard {
	out := make([]domain.ListingCard, len(items))
	for i, item := range items {
		out[i] = item.toDomain()
	}
	return out
}
