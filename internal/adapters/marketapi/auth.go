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

// postJSON - хелпер для auth-эндпоинтов: JSON-тело, JSON-ответ.
func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request payload: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body), "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusUnprocessableEntity {
		// Неверные учетные данные / код подтверждения: auth-эндпоинты
		// исключены из перехвата истекшей сессии в doRequest.
		return fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, readMessage(resp))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return readError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("unexpected auth response shape: %w", err)
		}
	}
	return nil
}

// readMessage достает человекочитаемое message из тела ошибки.
func readMessage(resp *http.Response) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Message == "" {
		return resp.Status
	}
	return payload.Message
}

func (c *Client) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	logger.WithFields(port.Fields{
		"component": "MarketplaceApiClient",
		"method":    "Login",
	}).Debug("Sending login request", nil)

	var result sessionResponse
	err := c.postJSON(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &domain.Session{Token: result.Token, UserType: result.UserType}, nil
}

func (c *Client) Register(ctx context.Context, input port.RegisterInput) error {
	logger := contextkeys.LoggerFromContext(ctx)
	logger.WithFields(port.Fields{
		"component": "MarketplaceApiClient",
		"method":    "Register",
	}).Debug("Sending register request", nil)

	return c.postJSON(ctx, "/api/auth/register", map[string]string{
		"name":      input.Name,
		"email":     input.Email,
		"phone":     input.Phone,
		"password":  input.Password,
		"user_type": input.UserType,
	}, nil)
}

func (c *Client) VerifyEmail(ctx context.Context, email, code string) (*domain.Session, error) {
	var result sessionResponse
	err := c.postJSON(ctx, "/api/auth/verify-email", map[string]string{
		"email": email,
		"code":  code,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &domain.Session{Token: result.Token, UserType: result.UserType}, nil
}

func (c *Client) ResendCode(ctx context.Context, email string) error {
	return c.postJSON(ctx, "/api/auth/resend-code", map[string]string{"email": email}, nil)
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.postJSON(ctx, "/api/auth/forgot-password", map[string]string{"email": email}, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.postJSON(ctx, "/api/auth/logout", map[string]string{}, nil)
}
