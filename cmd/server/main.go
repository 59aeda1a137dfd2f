package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/reclaimhq/dormant/internal/account"
	"github.com/reclaimhq/dormant/internal/auth"
	"github.com/reclaimhq/dormant/internal/config"
	"github.com/reclaimhq/dormant/internal/logging"
	"github.com/reclaimhq/dormant/internal/store"
	"github.com/reclaimhq/dormant/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
		"auth_enabled", cfg.Auth.Enabled,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()

	accountStore, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open account store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	service := account.NewService(accountStore)
	authService := auth.NewService(&cfg.Auth)
	server := web.NewServer(service, authService, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}

// openStore builds the configured account store. The returned cleanup
// releases any underlying connections.
func openStore(ctx context.Context, cfg *config.Config) (account.Store, func(), error) {
	if cfg.Database.Driver == "memory" {
		slog.Warn("using in-memory store; data will not survive a restart")
		return store.NewMemory(), func() {}, nil
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	pg := store.NewPostgres(pool)
	if err := pg.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	slog.Info("connected to database")
	return pg, pool.Close, nil
}
