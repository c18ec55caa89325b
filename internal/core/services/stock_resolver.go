// internal/core/services/stock_resolver.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ammerola/picking-be/internal/core/domain"
	"github.com/ammerola/picking-be/internal/core/ports"
)

const (
	DefaultPageDelay = 300 * time.Millisecond
	DefaultPageLimit = 100
	DefaultMaxPages  = 50
)

// ResolverConfig tunes the catalog scan
type ResolverConfig struct {
	PageDelay time.Duration
	PageLimit int
	// The scan stops once more than MaxPages pages were fetched.
	MaxPages int
}

// DefaultResolverConfig is 300ms between pages, 100 items per page, cap after 50 pages
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		PageDelay: DefaultPageDelay,
		PageLimit: DefaultPageLimit,
		MaxPages:  DefaultMaxPages,
	}
}

// StockResolver finds a catalog item by barcode. The catalog has no search,
// so the resolver walks the full listing page by page until the first match.
type StockResolver struct {
	catalog ports.CatalogClient
	creds   ports.CredentialProvider
	clock   Clock
	limiter *rate.Limiter
	cfg     ResolverConfig
	logger  *slog.Logger
}

// ResolverOption customizes a StockResolver
type ResolverOption func(*StockResolver)

// WithClock replaces the wall clock
func WithClock(c Clock) ResolverOption {
	return func(r *StockResolver) { r.clock = c }
}

// WithSharedLimiter bounds the aggregate request rate of every resolver sharing l
func WithSharedLimiter(l *rate.Limiter) ResolverOption {
	return func(r *StockResolver) { r.limiter = l }
}

// NewStockResolver creates a new resolver
func NewStockResolver(catalog ports.CatalogClient, creds ports.CredentialProvider, cfg ResolverConfig, logger *slog.Logger, opts ...ResolverOption) *StockResolver {
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = DefaultPageLimit
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	if cfg.PageDelay < 0 {
		cfg.PageDelay = 0
	}

	r := &StockResolver{
		catalog: catalog,
		creds:   creds,
		clock:   RealClock(),
		cfg:     cfg,
		logger:  logger.With(slog.String("service", "stock_resolver")),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve scans the catalog for barcode. Every failure is a *domain.LookupError.
func (r *StockResolver) Resolve(ctx context.Context, barcode string) (*domain.LookupResult, error) {
	code := strings.TrimSpace(barcode)
	if code == "" {
		return nil, &domain.LookupError{Kind: domain.LookupMissingInput}
	}

	token, teamID, err := r.creds.BoxHeroCredentials(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to load catalog credentials",
			slog.String("error_kind", string(domain.LookupUnexpected)),
			slog.String("error", err.Error()))
		return nil, &domain.LookupError{Kind: domain.LookupUnexpected, Err: fmt.Errorf("load catalog credentials: %w", err)}
	}
	if token == "" || teamID == "" {
		r.logger.ErrorContext(ctx, "catalog credentials are not configured",
			slog.String("error_kind", string(domain.LookupConfigurationError)),
			slog.String("missing", missingCredentials(token, teamID)))
		return nil, &domain.LookupError{Kind: domain.LookupConfigurationError}
	}

	var (
		cursor    string
		hasMore   = true
		pageCount int
		started   = r.clock.Now()
	)

	r.logger.DebugContext(ctx, "catalog scan started", slog.String("barcode", code))

	for hasMore {
		if err := r.wait(ctx); err != nil {
			return nil, &domain.LookupError{Kind: domain.LookupUnexpected, ScannedPages: pageCount, Err: err}
		}
		pageCount++

		page, err := r.catalog.FetchPage(ctx, ports.PageRequest{
			Token:  token,
			TeamID: teamID,
			Cursor: cursor,
			Limit:  r.cfg.PageLimit,
		})
		if err != nil {
			var statusErr *ports.CatalogStatusError
			if !errors.As(err, &statusErr) {
				return nil, &domain.LookupError{Kind: domain.LookupUnexpected, ScannedPages: pageCount, Err: err}
			}
			if statusErr.IsAuth() {
				r.logger.ErrorContext(ctx, "catalog rejected credentials",
					slog.String("error_kind", string(domain.LookupAuthenticationFailed)),
					slog.Int("status", statusErr.StatusCode),
					slog.Int("page", pageCount))
				return nil, &domain.LookupError{Kind: domain.LookupAuthenticationFailed, ScannedPages: pageCount, Err: err}
			}
			return nil, r.notFound(ctx, code, pageCount, domain.ReasonUpstreamStatus, err)
		}

		for _, item := range page.Items {
			if item.MatchesBarcode(code) {
				r.logger.InfoContext(ctx, "catalog item found",
					slog.String("barcode", code),
					slog.String("name", item.Name()),
					slog.Int("page", pageCount),
					slog.Duration("elapsed_ms", r.clock.Now().Sub(started)))
				return &domain.LookupResult{Item: item, ScannedPages: pageCount}, nil
			}
		}

		cursor = page.NextCursor()
		hasMore = page.HasMore

		if pageCount > r.cfg.MaxPages {
			if hasMore {
				return nil, r.notFound(ctx, code, pageCount, domain.ReasonPageCap, nil)
			}
			break
		}
	}

	return nil, r.notFound(ctx, code, pageCount, domain.ReasonExhausted, nil)
}

func (r *StockResolver) wait(ctx context.Context) error {
	if err := r.clock.Sleep(ctx, r.cfg.PageDelay); err != nil {
		return fmt.Errorf("waiting before catalog fetch: %w", err)
	}
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for catalog rate limit: %w", err)
		}
	}
	return nil
}

// notFound keeps the 404 contract but records whether the catalog was actually exhausted
func (r *StockResolver) notFound(ctx context.Context, code string, pages int, reason domain.NotFoundReason, cause error) error {
	attrs := []any{
		slog.String("barcode", code),
		slog.Int("scanned_pages", pages),
		slog.String("reason", string(reason)),
	}
	if reason == domain.ReasonExhausted {
		r.logger.InfoContext(ctx, "barcode not in catalog", attrs...)
	} else {
		if cause != nil {
			attrs = append(attrs, slog.String("cause", cause.Error()))
		}
		r.logger.WarnContext(ctx, "catalog scan cut short", append(attrs, slog.Bool("degraded", true))...)
	}
	return &domain.LookupError{Kind: domain.LookupNotFound, ScannedPages: pages, Reason: reason, Err: cause}
}

func missingCredentials(token, teamID string) string {
	switch {
	case token == "" && teamID == "":
		return "BOXHERO_TOKEN,BOXHERO_TEAM_ID"
	case token == "":
		return "BOXHERO_TOKEN"
	case teamID == "":
		return "BOXHERO_TEAM_ID"
	}
	return ""
}
