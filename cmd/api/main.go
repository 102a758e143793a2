// Package main is the entrypoint for the fundhive API server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/fundhive/fundhive/internal/auth"
	"github.com/fundhive/fundhive/internal/cache"
	"github.com/fundhive/fundhive/internal/config"
	"github.com/fundhive/fundhive/internal/database"
	"github.com/fundhive/fundhive/internal/handler"
	"github.com/fundhive/fundhive/internal/metrics"
	"github.com/fundhive/fundhive/internal/middleware"
	"github.com/fundhive/fundhive/internal/repository"
	"github.com/fundhive/fundhive/internal/server"
	"github.com/fundhive/fundhive/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", "error", sanitizeError(err, cfg.DatabaseURL, cfg.RedisURL))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.MigrateOnStart {
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	repo, err := repository.New(ctx, cfg.DatabaseURL, repository.PoolConfig{})
	if err != nil {
		logger.Error("failed to connect to database",
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		return err
	}
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL, cache.PoolConfig{PoolSize: cfg.RedisPoolSize})
	if err != nil {
		repo.Close()
		logger.Error("failed to connect to Redis",
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		return err
	}
	logger.Info("connected to Redis")

	// Metrics
	var (
		recorder       metrics.Recorder = metrics.NewNoop()
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		recorder = metrics.NewPrometheus(registry)
		metricsHandler = metrics.Handler(registry)
	}

	// Services
	paging := service.Paging{DefaultSize: cfg.DefaultPageSize, MaxSize: cfg.MaxPageSize}
	hasher := auth.NewPasswordHasher(cfg.PasswordHashTime, cfg.PasswordHashMemory, cfg.PasswordHashThreads)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	services := handler.Services{
		Projects:       service.NewProjectService(repo, cacheClient, paging, recorder, logger),
		Ledger:         service.NewLedgerService(repo, recorder, logger),
		Categories:     service.NewCategoryService(repo, cacheClient, cfg.CategoryCacheTTL, recorder, logger),
		Users:          service.NewUserService(repo, hasher, tokens, recorder, logger),
		Events:         service.NewEventService(repo, paging, logger),
		Collaborations: service.NewCollaborationService(repo, paging, logger),
		Admin:          service.NewAdminService(repo, cacheClient, recorder, logger),
	}

	authLimiter := middleware.NewIPRateLimiter(middleware.IPRateLimiterConfig{
		Logger:        logger,
		RatePerMinute: cfg.AuthRatePerMinute,
		Burst:         cfg.AuthBurst,
	})

	router := handler.NewRouter(handler.RouterDeps{
		Config: handler.RouterConfig{
			IsDevelopment:      cfg.IsDevelopment(),
			CORSAllowedOrigins: cfg.AllowedOrigins(),
			MaxRequestBodySize: cfg.MaxRequestBodySize,
			RateLimitEnabled:   cfg.RateLimitEnabled,
			MutationsPerMinute: cfg.RateLimitBackingPerMinute,
			MutationsBurst:     cfg.RateLimitBackingBurst,
		},
		Services:       services,
		Logger:         logger,
		Metrics:        recorder,
		Tokens:         tokens,
		UserLimiter:    cacheClient,
		AuthLimiter:    authLimiter,
		Health:         handler.NewHealthHandler(repo, cacheClient),
		MetricsHandler: metricsHandler,
	})

	srv := server.New(router, server.Options{
		Port:            cfg.AppPort,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)

	// Registered first, closed last.
	srv.OnShutdown("postgres", func(ctx context.Context) error {
		repo.Close()
		return nil
	})
	srv.OnShutdown("redis", func(ctx context.Context) error {
		return cacheClient.Close()
	})
	srv.OnShutdown("auth-rate-limiter", func(ctx context.Context) error {
		authLimiter.Stop()
		return nil
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"metrics_enabled", cfg.MetricsEnabled,
	)

	return srv.Run(ctx)
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h).With("service", "fundhive")
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s&]+`)

// redactURL drops the password from a connection URL.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			username = "redacted"
		}
		parsed.User = url.User(username)
	}

	return parsed.String()
}

// sanitizeError removes connection secrets from an error message.
func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
