// Package main is the entry point for the API server.
// It loads configuration, wires the rate table, exchange provider,
// calculator and optional history store, and serves the HTTP API.
package main

import (
	"context"
	"database/sql"
	stdlog "log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"casacalc/internal/config"
	"casacalc/internal/handlers"
	"casacalc/internal/logger"
	"casacalc/internal/middleware"
	"casacalc/internal/ratetable"
	"casacalc/internal/repositories"
	"casacalc/internal/repositories/cache"
	"casacalc/internal/routes"
	"casacalc/internal/services/auth"
	"casacalc/internal/services/calculator"
	"casacalc/internal/services/exchange"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	rateSnapshotTTL = 24 * time.Hour
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Load environment variables
	config.LoadEnv()
	cfg := config.Load()

	log, closeLogs, err := logger.New(logger.Config{
		Level:         cfg.LogLevel,
		Format:        cfg.LogFormat,
		FluentEnabled: cfg.Fluent.Enabled,
		FluentHost:    cfg.Fluent.Host,
		FluentPort:    cfg.Fluent.Port,
		FluentTag:     cfg.Fluent.Tag,
	})
	if err != nil {
		stdlog.Fatalf("Failed to configure logging: %v", err)
	}
	slog.SetDefault(log)

	err = run(cfg, log)
	if cerr := closeLogs(); cerr != nil {
		stdlog.Printf("Failed to flush logs: %v", cerr)
	}
	if err != nil {
		stdlog.Fatal(err)
	}
}

func run(cfg config.AppConfig, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	table, err := ratetable.Load(cfg.RateTablePath)
	if err != nil {
		return err
	}
	log.Info("rate table loaded", "version", table.Version, "path", cfg.RateTablePath)

	checks := map[string]handlers.HealthCheck{}
	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn("failed to release resource", "error", err)
			}
		}
	}()

	// Exchange rates, shared through Redis when configured
	var store exchange.SnapshotStore = exchange.NewMemoryStore()
	var cacheService *cache.CacheService
	if cfg.RateCacheBackend == "redis" {
		cacheService = cache.NewCacheService(cache.NewRedisClient(cfg.Redis), rateSnapshotTTL)
		if err := cacheService.HealthCheck(ctx); err != nil {
			log.Warn("redis unreachable at startup", "error", err)
		}
		store = cache.NewRateSnapshotStore(cacheService)
		checks["redis"] = cacheService.HealthCheck
		closers = append(closers, cacheService.Close)
	}
	provider := exchange.NewProvider(
		exchange.NewFrankfurterSource(cfg.Rates.APIURL, cfg.Rates.FetchTimeout),
		store,
		exchange.Config{RefreshInterval: cfg.Rates.RefreshInterval},
		log,
		exchange.NewLogMetricsCollector(log),
	)

	// Calculation history is optional
	var history calculator.HistoryRepository
	var db *gorm.DB
	if cfg.HistoryEnabled {
		db, err = repositories.InitDB(cfg.DB, log)
		if err != nil {
			return err
		}
		history = repositories.NewCalculationRepository(db)
		checks["database"] = func(ctx context.Context) error { return repositories.Ping(ctx, db) }
		closers = append(closers, func() error { return repositories.CloseDB(db) })
	}
	if db != nil || cacheService != nil {
		go logPoolStats(ctx, db, cacheService, log)
	}

	calc := calculator.NewService(calculator.NewEngine(table), provider, history, log)
	authService := auth.NewService(auth.Config{
		PasswordHash: cfg.AdminPasswordHash,
		JWTSecret:    cfg.JWTSecret,
		TokenTTL:     cfg.AdminTokenTTL,
	}, log)
	if cfg.AdminPasswordHash == "" || cfg.JWTSecret == "" {
		log.Warn("admin endpoints disabled: ADMIN_PASSWORD_HASH and JWT_SECRET must both be set")
	}

	app := fiber.New(fiber.Config{
		AppName:               "casacalc",
		DisableStartupMessage: config.IsProduction(),
	})
	routes.SetupMiddleware(app, routes.MiddlewareConfig{
		CORSOrigins: strings.Join(cfg.CORSOrigins, ","),
		AccessLog:   true,
		LoginLimit:  5,
	})
	routes.SetupRoutes(app, routes.Handlers{
		Calculator: handlers.NewCalculatorHandler(calc, log),
		Rates:      handlers.NewRatesHandler(provider, table, log),
		Admin:      handlers.NewAdminHandler(authService, cfg.AdminTokenTTL, log),
		Health:     handlers.NewHealthHandler(checks),
		Auth:       middleware.NewAuthMiddleware(authService, log),
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "port", cfg.Port)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	return app.ShutdownWithTimeout(shutdownTimeout)
}

// logPoolStats periodically reports connection pool usage of the database
// and Redis clients. Either may be nil.
func logPoolStats(ctx context.Context, db *gorm.DB, cacheService *cache.CacheService, log *slog.Logger) {
	var sqlDB *sql.DB
	if db != nil {
		if d, err := db.DB(); err == nil {
			sqlDB = d
		}
	}

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if sqlDB != nil {
				stats := sqlDB.Stats()
				log.Debug("db stats",
					"open", stats.OpenConnections,
					"idle", stats.Idle,
					"in_use", stats.InUse,
					"wait_count", stats.WaitCount,
					"wait_duration", stats.WaitDuration,
				)
			}
			if cacheService != nil {
				stats := cacheService.GetStats()
				log.Debug("redis stats",
					"hits", stats.Hits,
					"misses", stats.Misses,
					"timeouts", stats.Timeouts,
					"total_conns", stats.TotalConns,
					"idle_conns", stats.IdleConns,
					"stale_conns", stats.StaleConns,
				)
			}
		}
	}
}
