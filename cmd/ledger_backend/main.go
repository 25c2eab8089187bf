package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	portsrepo "github.com/SscSPs/exchange_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/exchange_ledger/internal/core/services"
	"github.com/SscSPs/exchange_ledger/internal/handlers"
	"github.com/SscSPs/exchange_ledger/internal/middleware"
	"github.com/SscSPs/exchange_ledger/internal/platform/config"
	"github.com/SscSPs/exchange_ledger/internal/platform/identity"
	"github.com/SscSPs/exchange_ledger/internal/repositories/database/pebbledb"
	"github.com/SscSPs/exchange_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/exchange_ledger/internal/repositories/ledger"
	"github.com/SscSPs/exchange_ledger/pkg/database"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run owns every resource opened during startup so that deferred cleanup
// runs on any failure.
func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	ctx := context.Background()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open %s ledger store: %w", cfg.LedgerBackend, err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("Error closing ledger store", slog.String("error", cerr.Error()))
		}
	}()
	logger.Info("Ledger store ready", slog.String("backend", cfg.LedgerBackend))

	decoder, err := identity.NewDecoder(cfg.OwnerEncoding)
	if err != nil {
		return fmt.Errorf("failed to build owner decoder: %w", err)
	}

	serviceContainer := services.NewServiceContainer(store, ledger.NewRepositoryProvider, identity.NewEd25519Verifier(), decoder)
	if err := serviceContainer.Dispatcher.Bootstrap(ctx); err != nil {
		return fmt.Errorf("failed to bootstrap ledger: %w", err)
	}

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("failed to build rate limiter: %w", err)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(cfg)))

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		return fmt.Errorf("server failed to run: %w", err)
	}
	return nil
}

// openStore opens the configured backend. The postgres backend migrates its
// schema before use.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.LedgerStore, error) {
	switch cfg.LedgerBackend {
	case config.BackendMemory:
		return pebbledb.OpenInMemory()
	case config.BackendPebble:
		return pebbledb.Open(cfg.PebbleDir)
	case config.BackendPostgres:
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return nil, err
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, err
		}
		return pgsql.NewLedgerStore(pool), nil
	default:
		return nil, fmt.Errorf("unknown ledger backend %q", cfg.LedgerBackend)
	}
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	c.MaxAge = 12 * time.Hour
	if len(cfg.CORSAllowedOrigins) == 0 || (len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return c
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
