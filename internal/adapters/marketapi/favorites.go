package marketapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"
)

// ToggleFavorite переключает избранное на сервере и возвращает
// подтвержденное действие (added/removed).
func (c *Client) ToggleFavorite(ctx context.Context, kind domain.ItemKind, id int64) (port.FavoriteAction, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "MarketplaceApiClient",
		"method":    "ToggleFavorite",
		"kind":      kind,
		"item_id":   id,
	})

	payload, err := json.Marshal(map[string]any{
		"type": string(kind),
		"id":   id,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode toggle payload: %w", err)
	}

	url := c.baseURL + "/api/favorites/toggle"
	clientLogger.Debug("Sending request to marketplace API", port.Fields{"url": url})

	resp, err := c.doRequest(ctx, http.MethodPost, url, bytes.NewReader(payload), "application/json")
	if err != nil {
		clientLogger.Error("Failed to perform request to marketplace API", err, nil)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := readError(resp)
		clientLogger.Error("Received error response from marketplace API", err, port.Fields{"status_code": resp.StatusCode})
		return "", err
	}

	var result toggleFavoriteResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		clientLogger.Error("Failed to decode toggle response", err, nil)
		return "", fmt.Errorf("unexpected toggle response shape: %w", err)
	}

	switch result.Action {
	case "added":
		return port.FavoriteAdded, nil
	case "removed":
		return port.FavoriteRemoved, nil
	default:
		return "", fmt.Errorf("unexpected toggle action: %q", result.Action)
	}
}

// FetchFavorites возвращает страницу серверного списка избранного.
// Конверт совпадает с конвертом аукционов (верхнеуровневая пагинация).
func (c *Client) FetchFavorites(ctx context.Context, kind domain.ItemKind, page int) (*domain.Page, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "MarketplaceApiClient",
		"method":    "FetchFavorites",
		"kind":      kind,
	})

	url := fmt.Sprintf("%s/api/favorites?type=%s&page=%d", c.baseURL, kind, page)
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

	var env auctionsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		clientLogger.Error("Failed to decode favorites envelope", err, nil)
		return nil, fmt.Errorf("unexpected favorites response shape: %w", err)
	}

	result := &domain.Page{
		Items:       mapItems(env.Data),
		CurrentPage: env.CurrentPage,
		LastPage:    env.LastPage,
		PerPage:     env.PerPage,
		Total:       env.Total,
	}
	result.NormalizeBounds()
	return result, nil
}
