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

// FetchNotifications возвращает уведомления пользователя.
func (c *Client) FetchNotifications(ctx context.Context) ([]domain.Notification, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "MarketplaceApiClient",
		"method":    "FetchNotifications",
	})

	url := c.baseURL + "/api/notifications"
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

	var env struct {
		Data []notificationResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		clientLogger.Error("Failed to decode notifications envelope", err, nil)
		return nil, fmt.Errorf("unexpected notifications response shape: %w", err)
	}

	result := make([]domain.Notification, len(env.Data))
	for i, dto := range env.Data {
		result[i] = dto.toDomain()
	}
	clientLogger.Info("Successfully received and decoded response", port.Fields{"notifications_count": len(result)})
	return result, nil
}
