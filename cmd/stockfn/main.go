// cmd/stockfn/main.go
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"golang.org/x/time/rate"

	"github.com/ammerola/picking-be/internal/adapters/catalog"
	"github.com/ammerola/picking-be/internal/core/services"
	"github.com/ammerola/picking-be/internal/pkg/config"
	"github.com/ammerola/picking-be/internal/pkg/logger"
)

// The function only talks to BoxHero. Deploy it with APP_ENV=lambda so the
// production checks for the database and HTTP server do not apply.
func main() {
	slogger := logger.SetupLogger("info", "json")

	cfg, err := config.Load(slogger.Logger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)

	creds, err := cfg.BoxHeroCredentials(context.Background(), slogger.Logger)
	if err != nil {
		slogger.Error("failed to initialize catalog credentials", slog.String("error", err.Error()))
		os.Exit(1)
	}

	resolver := services.NewStockResolver(
		catalog.NewClient(cfg.BoxHero.BaseURL, cfg.BoxHero.RequestTimeout, slogger.Logger),
		creds,
		services.ResolverConfig{
			PageDelay: cfg.BoxHero.PageDelay,
			PageLimit: cfg.BoxHero.PageLimit,
			MaxPages:  cfg.BoxHero.MaxPages,
		},
		slogger.Logger,
		services.WithSharedLimiter(rate.NewLimiter(rate.Limit(cfg.BoxHero.RatePerSecond), cfg.BoxHero.RateBurst)),
	)

	fn := &stockFunction{
		service: services.NewStockService(resolver, nil, nil, slogger.Logger),
		logger:  slogger.Logger,
	}
	lambda.Start(fn.Handle)
}
