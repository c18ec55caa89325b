// pkg/stockclient/client.go

// Package stockclient looks up live stock through the picking API's stock endpoint.
package stockclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ammerola/picking-be/internal/core/domain"
)

// DefaultPath is the stock route served by both the API and the serverless function
const DefaultPath = "/.netlify/functions/stock"

// Stock is the normalized view shown next to a scanned line
type Stock struct {
	Name    string  `json:"name"`
	Qty     float64 `json:"qty"`
	SafeQty float64 `json:"safe_qty"`
}

// Client calls the stock endpoint
type Client struct {
	baseURL    string
	path       string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithPath overrides the stock route, e.g. "/api/v1/stock"
func WithPath(p string) Option {
	return func(c *Client) { c.path = p }
}

// WithLogger sets the logger used for non-200 responses
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the API at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		path:       DefaultPath,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup returns the stock for barcode. A blank barcode or a non-200 answer
// yields (nil, nil): callers treat both as "no data". Only transport and
// decoding failures are errors.
func (c *Client) Lookup(ctx context.Context, barcode string) (*Stock, error) {
	code := strings.TrimSpace(barcode)
	if code == "" {
		return nil, nil
	}

	endpoint := c.baseURL + c.path + "?" + url.Values{"barcode": {code}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stock request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "stock lookup returned no data",
			slog.String("barcode", code),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)))
		return nil, nil
	}

	var record map[string]any
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("decoding stock response: %w", err)
	}

	item, ok := pick(domain.Item(record), code)
	if !ok {
		return nil, nil
	}
	return &Stock{
		Name:    item.Name(),
		Qty:     domain.FirstDefined(item, domain.QuantityKeys, 0),
		SafeQty: domain.FirstDefined(item, domain.SafeStockKeys, 0),
	}, nil
}

// pick accepts either a single item or a listing page carrying "items"
func pick(record domain.Item, code string) (domain.Item, bool) {
	raw, isPage := record["items"].([]any)
	if !isPage {
		return record, true
	}
	for _, v := range raw {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		if item := domain.Item(m); item.MatchesBarcode(code) {
			return item, true
		}
	}
	return nil, false
}
