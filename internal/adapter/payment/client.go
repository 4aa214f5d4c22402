package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	domainErrors "github.com/cyna-app/commerce/internal/domain/errors"
	"github.com/cyna-app/commerce/internal/domain/model"
)

// ErrIntentNotFound indicates the provider doesn't know the payment reference.
var ErrIntentNotFound = errors.New("payment intent not found")

// TooManyRequestsError represents rate limiting signal from the provider.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// CreateIntentRequest describes a new payment intent to open at checkout.
// Amount is the tax-inclusive total in minor units.
type CreateIntentRequest struct {
	Amount   int64
	Currency string
	Metadata model.Metadata
}

// RefundRequest asks the provider to return money for an intent. A nil
// Amount means a full refund.
type RefundRequest struct {
	PaymentRef string
	Amount     *int64
	Reason     string
}

// Gateway exposes operations against the payment provider. The provider is
// the system of record for payment state; everything returned here is a
// snapshot.
type Gateway interface {
	CreateIntent(ctx context.Context, req CreateIntentRequest) (*model.PaymentIntent, error)
	FetchIntent(ctx context.Context, ref string) (*model.PaymentIntent, error)
	Refund(ctx context.Context, req RefundRequest) (*model.Refund, error)
}

// HTTPClient implements Gateway via the provider's HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// intentPayload mirrors the provider's payment intent JSON.
type intentPayload struct {
	ID            string                `json:"id"`
	Status        string                `json:"status"`
	Amount        int64                 `json:"amount"`
	Currency      string                `json:"currency"`
	Metadata      map[string]string     `json:"metadata,omitempty"`
	PaymentMethod *paymentMethodPayload `json:"payment_method,omitempty"`
}

type paymentMethodPayload struct {
	Type     string `json:"type"`
	Brand    string `json:"brand,omitempty"`
	LastFour string `json:"last_four,omitempty"`
	Label    string `json:"label,omitempty"`
}

type refundPayload struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount int64  `json:"amount"`
}

// NewHTTPClient creates an HTTP provider client with default timeout.
func NewHTTPClient(baseURL, apiKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse payment provider url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("payment provider url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreateIntent opens a payment intent for a checkout session.
func (c *HTTPClient) CreateIntent(ctx context.Context, req CreateIntentRequest) (*model.PaymentIntent, error) {
	meta, err := req.Metadata.Encode()
	if err != nil {
		return nil, err
	}
	var metaMap map[string]string
	if err := json.Unmarshal(meta, &metaMap); err != nil {
		return nil, err
	}

	body, err := json.Marshal(struct {
		Amount   int64             `json:"amount"`
		Currency string            `json:"currency"`
		Metadata map[string]string `json:"metadata,omitempty"`
	}{Amount: req.Amount, Currency: req.Currency, Metadata: metaMap})
	if err != nil {
		return nil, err
	}

	return c.doIntent(ctx, http.MethodPost, "/v1/payment_intents", body)
}

// FetchIntent queries the provider for the current payment state.
func (c *HTTPClient) FetchIntent(ctx context.Context, ref string) (*model.PaymentIntent, error) {
	return c.doIntent(ctx, http.MethodGet, path.Join("/v1/payment_intents", ref), nil)
}

// Refund asks the provider to refund an intent, fully or partially.
func (c *HTTPClient) Refund(ctx context.Context, req RefundRequest) (*model.Refund, error) {
	reason := req.Reason
	if reason == "" {
		reason = "requested_by_customer"
	}
	body, err := json.Marshal(struct {
		PaymentIntent string `json:"payment_intent"`
		Amount        *int64 `json:"amount,omitempty"`
		Reason        string `json:"reason"`
	}{PaymentIntent: req.PaymentRef, Amount: req.Amount, Reason: reason})
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodPost, "/v1/refunds", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := c.readResponse(resp)
	if err != nil {
		return nil, err
	}

	var data refundPayload
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &model.Refund{Ref: data.ID, Status: data.Status, Amount: data.Amount}, nil
}

func (c *HTTPClient) doIntent(ctx context.Context, method, endpoint string, body []byte) (*model.PaymentIntent, error) {
	resp, err := c.do(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := c.readResponse(resp)
	if err != nil {
		return nil, err
	}

	var data intentPayload
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}

	intent := &model.PaymentIntent{
		Ref:      data.ID,
		Status:   model.OrderStatus(data.Status),
		Amount:   data.Amount,
		Currency: data.Currency,
	}
	for key, val := range data.Metadata {
		intent.Metadata.Annotate(key, val)
	}
	if pm := data.PaymentMethod; pm != nil {
		intent.PaymentMethod = &model.PaymentMethod{Type: pm.Type, Brand: pm.Brand, LastFour: pm.LastFour, Label: pm.Label}
	}
	return intent, nil
}

func (c *HTTPClient) do(ctx context.Context, method, endpoint string, body []byte) (*http.Response, error) {
	target := *c.baseURL
	target.Path = path.Join(target.Path, endpoint)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrUpstreamUnavailable, err)
	}
	return resp, nil
}

// readResponse maps provider status codes onto domain errors and returns the
// raw body for 2xx responses.
func (c *HTTPClient) readResponse(resp *http.Response) ([]byte, error) {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return io.ReadAll(resp.Body)
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrIntentNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("payment provider request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrUpstreamUnavailable, resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
