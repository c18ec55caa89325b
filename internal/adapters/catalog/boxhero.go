// internal/adapters/catalog/boxhero.go
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ammerola/picking-be/internal/core/domain"
	"github.com/ammerola/picking-be/internal/core/ports"
)

const (
	DefaultBaseURL = "https://rest.boxhero-app.com"
	itemsPath      = "/v1/items"
	teamIDHeader   = "X-BoxHero-Team-ID"

	// Only the head of an error body is kept for logs.
	maxErrorBody = 512
)

// Client reads the BoxHero item listing
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ ports.CatalogClient = (*Client)(nil)

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a BoxHero client. An empty baseURL selects the public API.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With(slog.String("component", "boxhero_client")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPage performs GET /v1/items?limit=N[&cursor=C]
func (c *Client) FetchPage(ctx context.Context, req ports.PageRequest) (*domain.CatalogPage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(req.Limit))
	if req.Cursor != "" {
		query.Set("cursor", req.Cursor)
	}
	endpoint := c.baseURL + itemsPath + "?" + query.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	httpReq.Header.Set(teamIDHeader, req.TeamID)
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "catalog page fetched",
		slog.Int("status", resp.StatusCode),
		slog.Bool("has_cursor", req.Cursor != ""),
		slog.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &ports.CatalogStatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog response: %w", err)
	}
	return decodePage(data)
}

// decodePage keeps numbers as json.Number so items are forwarded byte-faithfully
func decodePage(data []byte) (*domain.CatalogPage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var page domain.CatalogPage
	if err := dec.Decode(&page); err != nil {
		return nil, fmt.Errorf("decode catalog page: %w", err)
	}
	return &page, nil
}
