package square

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nbulatovi/ElectriciansNow/paysheet/models"
)

// DefaultBaseURL is the production payments endpoint base.
const DefaultBaseURL = "https://connect.squareup.com"

// Client submits preauthorization requests to the payments API. It never
// returns a Go error: every outcome, including transport failure, is mapped
// into a models.PreauthResult so the orchestrator has a closed set of
// terminal states to forward.
type Client struct {
	Base        string
	HTTP        *http.Client
	accessToken string
	locationID  string

	// newKey generates the idempotency key for Preauthorize. One fresh key
	// per logical attempt; a fixed key would make the processor collapse
	// distinct transactions into one.
	newKey func() string
}

func New(base, accessToken, locationID string, hc *http.Client) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		Base:        strings.TrimRight(base, "/"),
		HTTP:        hc,
		accessToken: accessToken,
		locationID:  locationID,
		newKey:      uuid.NewString,
	}
}

type amountMoney struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type paymentRequest struct {
	IdempotencyKey string      `json:"idempotency_key"`
	AmountMoney    amountMoney `json:"amount_money"`
	Autocomplete   bool        `json:"autocomplete"`
	SourceID       string      `json:"source_id"`
	LocationID     string      `json:"location_id"`
}

// Preauthorize places a hold for amountCents against the given single-use
// token, under a fresh idempotency key.
func (c *Client) Preauthorize(ctx context.Context, token models.Token, amountCents int64, currency string) models.PreauthResult {
	return c.PreauthorizeWithKey(ctx, token, amountCents, currency, c.newKey())
}

// PreauthorizeWithKey is the retry extension point: a caller that re-submits
// the same logical attempt must reuse its original idempotency key. No retry
// happens inside this call.
func (c *Client) PreauthorizeWithKey(ctx context.Context, token models.Token, amountCents int64, currency, idempotencyKey string) models.PreauthResult {
	if c.accessToken == "" {
		return models.ConfigurationError("processor access token is not configured")
	}
	if c.locationID == "" {
		return models.ConfigurationError("processor location id is not configured")
	}

	body := paymentRequest{
		IdempotencyKey: idempotencyKey,
		AmountMoney:    amountMoney{Amount: amountCents, Currency: currency},
		Autocomplete:   false, // hold only; capture is a separate concern
		SourceID:       string(token),
		LocationID:     c.locationID,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return models.TransportError(fmt.Sprintf("encoding payment request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+"/v2/payments", bytes.NewReader(b))
	if err != nil {
		return models.TransportError(fmt.Sprintf("building payment request: %v", err))
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return models.TransportError(fmt.Sprintf("posting payment: %v", err))
	}
	defer resp.Body.Close()

	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return models.TransportError(fmt.Sprintf("status=%d: decoding payment response: %v", resp.StatusCode, err))
	}

	if resp.StatusCode/100 == 2 {
		return mapPayment(raw, resp.StatusCode)
	}
	return mapError(raw, resp.StatusCode)
}

// mapPayment normalizes a 2xx payment body.
func mapPayment(raw map[string]any, statusCode int) models.PreauthResult {
	payment, ok := raw["payment"].(map[string]any)
	if !ok {
		return models.TransportError(fmt.Sprintf("status=%d: response has no payment object", statusCode))
	}
	status, _ := payment["status"].(string)
	reference, _ := payment["id"].(string)

	switch strings.ToUpper(status) {
	case "APPROVED", "PENDING", "COMPLETED":
		return models.Authorized(reference, raw)
	case "DECLINED", "FAILED", "CANCELED":
		return models.Declined(declineReason(raw, status))
	default:
		return models.TransportError(fmt.Sprintf("status=%d: unrecognized payment status %q", statusCode, status))
	}
}

// mapError normalizes a non-2xx body. A parseable decline becomes Declined;
// a credential problem becomes ConfigurationError; everything else is a
// transport failure.
func mapError(raw map[string]any, statusCode int) models.PreauthResult {
	category, code, detail := firstError(raw)
	if category == "" {
		return models.TransportError(fmt.Sprintf("status=%d: no parseable error body", statusCode))
	}
	switch category {
	case "PAYMENT_METHOD_ERROR":
		if detail == "" {
			detail = code
		}
		return models.Declined(detail)
	case "AUTHENTICATION_ERROR":
		return models.ConfigurationError(fmt.Sprintf("processor rejected credentials: %s", code))
	default:
		return models.TransportError(fmt.Sprintf("status=%d: %s %s: %s", statusCode, category, code, detail))
	}
}

func declineReason(raw map[string]any, fallback string) string {
	if _, code, detail := firstError(raw); detail != "" {
		return detail
	} else if code != "" {
		return code
	}
	return fallback
}

func firstError(raw map[string]any) (category, code, detail string) {
	errs, ok := raw["errors"].([]any)
	if !ok || len(errs) == 0 {
		return "", "", ""
	}
	first, ok := errs[0].(map[string]any)
	if !ok {
		return "", "", ""
	}
	category, _ = first["category"].(string)
	code, _ = first["code"].(string)
	detail, _ = first["detail"].(string)
	return category, code, detail
}
