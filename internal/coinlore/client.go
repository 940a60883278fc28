// Package coinlore wraps the read-only CoinLore REST API: the paginated
// ticker list, single-ticker lookup, the global market snapshot, and the
// per-coin markets passthrough.
//
// The client is intentionally thin: one GET and one JSON decode per call,
// no retries, no backoff, and no distinction between transient and permanent
// failures. Non-2xx statuses and decode failures surface uniformly as a
// *RequestError; a present-but-empty single-ticker response surfaces as
// ErrNotFound. Timeouts are whatever the injected http.Client enforces.
package coinlore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/coinlens/coinlens/internal/metrics"
	"github.com/coinlens/coinlens/internal/models"
)

// DefaultPageSize is the ticker page size the upstream API documents.
const DefaultPageSize = 50

// ErrNotFound reports that the requested entity is absent from an otherwise
// successful response.
var ErrNotFound = errors.New("cryptocurrency not found")

// RequestError describes a failed API request: transport error, non-2xx
// status, or undecodable body. Status is zero when the request never
// completed. RequestID is the X-Request-ID the request carried.
type RequestError struct {
	URL       string
	Status    int
	RequestID string
	Err       error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("coinlore: request %s failed with status %d (request_id=%s)", e.URL, e.Status, e.RequestID)
	}
	return fmt.Sprintf("coinlore: request %s failed: %v (request_id=%s)", e.URL, e.Err, e.RequestID)
}

func (e *RequestError) Unwrap() error { return e.Err }

// Client provides access to the CoinLore API
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
}

// NewClient creates a new CoinLore client. The timeout applies to every
// request made through the internal http.Client.
func NewClient(baseURL string, timeout time.Duration, log *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// tickersEnvelope is the {"data": [...]} wrapper of the list endpoint.
type tickersEnvelope struct {
	Data []models.RawTicker `json:"data"`
}

// ListTickers retrieves one page of the ranked ticker list starting at the
// given offset. The page is returned as the server provides it: no
// completeness or overlap checks are applied client-side.
func (c *Client) ListTickers(ctx context.Context, start, limit int) ([]models.Cryptocurrency, error) {
	q := url.Values{}
	q.Set("start", strconv.Itoa(start))
	q.Set("limit", strconv.Itoa(limit))

	var envelope tickersEnvelope
	if err := c.getJSON(ctx, "tickers", "/tickers/", q, &envelope); err != nil {
		return nil, err
	}

	coins := make([]models.Cryptocurrency, 0, len(envelope.Data))
	for _, raw := range envelope.Data {
		coins = append(coins, models.NewCryptocurrency(raw))
	}
	return coins, nil
}

// GetTicker retrieves a single cryptocurrency by its CoinLore ID.
// Returns ErrNotFound (wrapped) when the response array is empty.
func (c *Client) GetTicker(ctx context.Context, id string) (models.Cryptocurrency, error) {
	q := url.Values{}
	q.Set("id", id)

	var raw []models.RawTicker
	if err := c.getJSON(ctx, "ticker", "/ticker/", q, &raw); err != nil {
		return models.Cryptocurrency{}, err
	}

	if len(raw) == 0 {
		return models.Cryptocurrency{}, fmt.Errorf("ticker %s: %w", id, ErrNotFound)
	}

	return models.NewCryptocurrency(raw[0]), nil
}

// GetGlobal retrieves the global market snapshot (first element of the
// response array).
func (c *Client) GetGlobal(ctx context.Context) (models.GlobalData, error) {
	var raw []models.RawGlobal
	if err := c.getJSON(ctx, "global", "/global/", nil, &raw); err != nil {
		return models.GlobalData{}, err
	}

	if len(raw) == 0 {
		return models.GlobalData{}, fmt.Errorf("global snapshot: %w", ErrNotFound)
	}

	return models.NewGlobalData(raw[0]), nil
}

// GetCoinMarkets retrieves the raw markets array for a coin. The payload is
// passed through undecoded; callers own its interpretation.
func (c *Client) GetCoinMarkets(ctx context.Context, id string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("id", id)

	var raw json.RawMessage
	if err := c.getJSON(ctx, "coin_markets", "/coin/markets/", q, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// getJSON performs one GET against path and decodes the body into out.
// Every request carries a fresh X-Request-ID for log correlation.
func (c *Client) getJSON(ctx context.Context, operation, path string, query url.Values, out any) error {
	requestURL := c.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}
	requestID := uuid.New().String()

	start := time.Now()
	outcome := "error"
	defer func() {
		metrics.APIRequests.WithLabelValues(operation, outcome).Inc()
		metrics.APIRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return &RequestError{URL: requestURL, RequestID: requestID, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	c.log.WithFields(logrus.Fields{
		"operation":  operation,
		"url":        requestURL,
		"request_id": requestID,
	}).Debug("coinlore request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RequestError{URL: requestURL, RequestID: requestID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{URL: requestURL, Status: resp.StatusCode, RequestID: requestID, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		// Decode failures are reported the same way as transport failures.
		return &RequestError{URL: requestURL, Status: resp.StatusCode, RequestID: requestID, Err: fmt.Errorf("failed to decode response: %w", err)}
	}

	outcome = "ok"
	return nil
}
