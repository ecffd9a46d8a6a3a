package marketapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"
)

// Client - адаптер удаленного REST API маркетплейса. Токен читается из
// локального хранилища в момент вызова, а не кэшируется: хранилище -
// единственный источник истины для сессии.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      port.LocalStorePort
}

func NewClient(baseURL string, store port.LocalStorePort) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		store: store,
	}
}

// doRequest - внутренний хелпер для выполнения запросов.
// Если в хранилище есть токен, он прикладывается как bearer-заголовок;
// ответ 401 при приложенном токене означает истекшую сессию: токен и тип
// пользователя очищаются, возвращается domain.ErrSessionExpired.
func (c *Client) doRequest(ctx context.Context, method, url string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	token, _, err := c.store.Get(ctx, domain.StorageKeyToken)
	if err != nil {
		return nil, fmt.Errorf("failed to read token from local store: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	// 401 от auth-эндпоинтов означает неверные данные запроса, а не
	// истекшую сессию, и не должен трогать уже сохраненный токен.
	if resp.StatusCode == http.StatusUnauthorized && token != "" && !isAuthEndpoint(url) {
		resp.Body.Close()
		c.expireSession(ctx)
		return nil, domain.ErrSessionExpired
	}

	return resp, nil
}

func isAuthEndpoint(url string) bool {
	return strings.Contains(url, "/api/auth/")
}

// expireSession очищает ключи сессии в локальном хранилище.
func (c *Client) expireSession(ctx context.Context) {
	logger := contextkeys.LoggerFromContext(ctx)
	logger.Warn("Received 401 with a stored token, clearing session", nil)

	if err := c.store.Delete(ctx, domain.StorageKeyToken); err != nil {
		logger.Error("Failed to clear token after 401", err, nil)
	}
	if err := c.store.Delete(ctx, domain.StorageKeyUserType); err != nil {
		logger.Error("Failed to clear user type after 401", err, nil)
	}
}

// readError строит ошибку из неуспешного ответа, включая тело.
func readError(resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("marketplace API returned non-success status code %d: %s", resp.StatusCode, string(bodyBytes))
}

// buildQuery собирает query-строку из нормализованных пар.
func buildQuery(query []domain.QueryParam) string {
	if len(query) == 0 {
		return ""
	}
	parts := make([]string, len(query))
	for i, p := range query {
		parts[i] = url.QueryEscape(p.Key) + "=" + url.QueryEscape(p.Value)
	}
	return strings.Join(parts, "&")
}
