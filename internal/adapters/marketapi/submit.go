package marketapi

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"marketplace-client/internal/contextkeys"
	"marketplace-client/internal/core/domain"
	"marketplace-client/internal/core/port"
)

// draftEndpoints - эндпоинты отправки форм по видам черновиков.
var draftEndpoints = map[domain.DraftKind]string{
	domain.DraftLandAd:           "/api/lands",
	domain.DraftAuctionAd:        "/api/auctions",
	domain.DraftLandRequest:      "/api/land-requests",
	domain.DraftMarketingRequest: "/api/marketing-requests",
}

// SubmitDraft отправляет заполненную форму как multipart/form-data:
// поля формы плюс вложения (images[]).
func (c *Client) SubmitDraft(ctx context.Context, draft *domain.FormDraft) error {
	logger := contextkeys.LoggerFromContext(ctx)
	clientLogger := logger.WithFields(port.Fields{
		"component": "MarketplaceApiClient",
		"method":    "SubmitDraft",
		"kind":      draft.Kind,
	})

	endpoint, ok := draftEndpoints[draft.Kind]
	if !ok {
		return fmt.Errorf("unknown draft kind: %q", draft.Kind)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range draft.Fields {
		if value == nil {
			continue
		}
		if err := writer.WriteField(name, fmt.Sprintf("%v", value)); err != nil {
			return fmt.Errorf("failed to write form field %q: %w", name, err)
		}
	}

	for i, att := range draft.Attachments {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images[]"; filename=%q`, att.FileName))
		header.Set("Content-Type", att.MIMEType)
		part, err := writer.CreatePart(header)
		if err != nil {
			return fmt.Errorf("failed to create attachment part %d: %w", i, err)
		}
		if _, err := part.Write(att.Data); err != nil {
			return fmt.Errorf("failed to write attachment %d: %w", i, err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	url := c.baseURL + endpoint
	clientLogger.Debug("Sending request to marketplace API", port.Fields{
		"url":         url,
		"attachments": len(draft.Attachments),
	})

	resp, err := c.doRequest(ctx, http.MethodPost, url, &buf, writer.FormDataContentType())
	if err != nil {
		clientLogger.Error("Failed to perform request to marketplace API", err, nil)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := readError(resp)
		clientLogger.Error("Received error response from marketplace API", err, port.Fields{"status_code": resp.StatusCode})
		return err
	}

	clientLogger.Info("Draft submitted successfully", nil)
	return nil
}
