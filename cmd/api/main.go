// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/ammerola/picking-be/internal/adapters/catalog"
	"github.com/ammerola/picking-be/internal/adapters/db"
	redis_a "github.com/ammerola/picking-be/internal/adapters/redis_adapter"
	"github.com/ammerola/picking-be/internal/adapters/storage"
	"github.com/ammerola/picking-be/internal/core/ports"
	"github.com/ammerola/picking-be/internal/core/services"
	"github.com/ammerola/picking-be/internal/handlers"
	"github.com/ammerola/picking-be/internal/handlers/middleware"
	"github.com/ammerola/picking-be/internal/pkg/config"
	"github.com/ammerola/picking-be/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	slogger := logger.SetupLogger("info", "json")

	cfg, err := config.Load(slogger.Logger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("starting picking api",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("environment", cfg.App.Environment),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if cfg.Database.AutoMigrate {
		if err := runMigrations(ctx, cfg, slogger.Logger); err != nil {
			slogger.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	deps, err := initializeDependencies(ctx, cfg, slogger.Logger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	server := setupHTTPServer(ctx, cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

		// Open memo streams hold their request context until cancelled
		stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}
		slogger.Info("server shutdown complete")
	}
}

type dependencies struct {
	database       ports.Database
	redisClient    *redis.Client
	asynqClient    *asynq.Client
	asynqInspector *asynq.Inspector
	router         *handlers.Router
}

func (d *dependencies) cleanup() {
	if d.asynqInspector != nil {
		d.asynqInspector.Close()
	}
	if d.asynqClient != nil {
		d.asynqClient.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.database != nil {
		d.database.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	logger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)
	database, err := db.NewDatabase(ctx, db.ConfigFrom(cfg.Database), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	redisClient := redis.NewClient(&redis.Options{
		Addr:            cfg.GetRedisAddress(),
		Password:        cfg.Redis.Password,
		DB:              cfg.Redis.DB,
		MaxRetries:      cfg.Redis.MaxRetries,
		MinRetryBackoff: cfg.Redis.MinRetryBackoff,
		MaxRetryBackoff: cfg.Redis.MaxRetryBackoff,
		DialTimeout:     cfg.Redis.DialTimeout,
		ReadTimeout:     cfg.Redis.ReadTimeout,
		WriteTimeout:    cfg.Redis.WriteTimeout,
		PoolSize:        cfg.Redis.PoolSize,
		MinIdleConns:    cfg.Redis.MinIdleConns,
		PoolTimeout:     cfg.Redis.PoolTimeout,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		deps.cleanup()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	deps.redisClient = redisClient

	cache := redis_a.NewCache(redisClient, cfg.Redis.TTL, logger)

	asynqOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}
	deps.asynqClient = asynq.NewClient(asynqOpt)
	deps.asynqInspector = asynq.NewInspector(asynqOpt)

	files, err := storage.New(ctx, cfg, logger)
	if err != nil {
		deps.cleanup()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	creds, err := cfg.BoxHeroCredentials(ctx, logger)
	if err != nil {
		deps.cleanup()
		return nil, fmt.Errorf("failed to initialize catalog credentials: %w", err)
	}

	// One limiter for every in-flight scan in this process
	limiter := rate.NewLimiter(rate.Limit(cfg.BoxHero.RatePerSecond), cfg.BoxHero.RateBurst)
	resolver := services.NewStockResolver(
		catalog.NewClient(cfg.BoxHero.BaseURL, cfg.BoxHero.RequestTimeout, logger),
		creds,
		services.ResolverConfig{
			PageDelay: cfg.BoxHero.PageDelay,
			PageLimit: cfg.BoxHero.PageLimit,
			MaxPages:  cfg.BoxHero.MaxPages,
		},
		logger,
		services.WithSharedLimiter(limiter),
	)

	var stockCache ports.StockCache
	if cfg.BoxHero.CacheSnapshots {
		stockCache = redis_a.NewStockCache(cache, logger)
	}

	clock := services.RealClock()
	memoService := services.NewMemoService(
		db.NewMemoRepository(database, logger),
		redis_a.NewReadMarks(redisClient),
		redis_a.NewMemoBroadcaster(redisClient, logger),
		cache,
		clock,
		logger,
	)
	orderService := services.NewOrderService(db.NewOrderRepository(database, logger), memoService, clock, logger,
		services.WithDownloadMarks(redis_a.NewDownloadMarks(redisClient)))
	stockService := services.NewStockService(resolver, stockCache, clock, logger)

	var verifier *middleware.TokenVerifier
	if cfg.Security.AuthEnabled {
		verifier = middleware.NewTokenVerifier(cfg.Security.JWTSecret, cfg.Security.JWTIssuer)
	}

	maxUpload := int64(cfg.Storage.MaxUploadMB) << 20
	deps.router = &handlers.Router{
		Stock:  handlers.NewStockHandler(stockService, logger),
		Orders: handlers.NewOrderHandler(orderService, logger),
		Import: handlers.NewImportHandler(files, cache, deps.asynqClient, deps.asynqInspector, cfg.Storage.UploadPrefix, maxUpload, logger),
		Export: handlers.NewExportHandler(orderService, logger),
		Memos:  handlers.NewMemoHandler(memoService, logger),
		Health: handlers.NewHealthHandler(database, cache, deps.asynqInspector, creds, cfg, logger),
		Auth:   middleware.Auth(verifier, logger),
	}

	logger.Info("all dependencies initialized",
		slog.Bool("auth_enabled", cfg.Security.AuthEnabled),
		slog.String("storage_driver", cfg.Storage.Driver),
		slog.Bool("boxhero_secret", cfg.BoxHero.SecretName != ""),
	)
	return deps, nil
}

func setupHTTPServer(ctx context.Context, cfg *config.Config, deps *dependencies, l *logger.Logger) *http.Server {
	mux := http.NewServeMux()
	deps.router.Register(mux)

	mws := []func(http.Handler) http.Handler{
		middleware.Recovery(l.Logger),
		middleware.RequestID(cfg.Security.RequestIDHeader),
		middleware.Logger(l),
	}
	if len(cfg.Security.AllowedOrigins) > 0 {
		mws = append(mws, middleware.CORS(cfg.Security.AllowedOrigins))
	}
	if cfg.Security.SecureHeaders {
		mws = append(mws, middleware.SecureHeaders)
	}
	if cfg.Security.RateLimitRequests > 0 {
		limiter := middleware.NewRateLimiter(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration)
		go limiter.Sweep(ctx, cfg.Security.RateLimitDuration)
		mws = append(mws, limiter.Middleware)
	}

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        middleware.Chain(mux, mws...),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(l.Handler(), slog.LevelError),
		BaseContext:    func(net.Listener) context.Context { return ctx },
	}
}

func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("running database migrations")

	return db.RunMigrationsWithRetry(ctx, &db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		TableName:   "schema_migrations",
		SchemaName:  "public",
	}, logger, 3)
}
