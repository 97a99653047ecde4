package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/maxviazov/productivity-hub/internal/config"
	"github.com/maxviazov/productivity-hub/internal/handler"
	"github.com/maxviazov/productivity-hub/internal/logger"
	"github.com/maxviazov/productivity-hub/internal/repository"
	"github.com/maxviazov/productivity-hub/internal/repository/postgres"
	redisrepo "github.com/maxviazov/productivity-hub/internal/repository/redis"
	"github.com/maxviazov/productivity-hub/internal/service"
)

func main() {
	// .env is optional; real deployments inject env directly
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("⚠️ .env could not be loaded: %v", err)
	}

	cfgPath := os.Getenv("APP_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	// Load application config
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Logger inherits app identity unless configured explicitly
	if cfg.Logger.ServiceName == "" {
		cfg.Logger.ServiceName = cfg.App.Name
	}
	if cfg.Logger.ServiceVersion == "" {
		cfg.Logger.ServiceVersion = cfg.App.Version
	}
	if cfg.Logger.Env == "" {
		cfg.Logger.Env = cfg.App.Env
	}
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}
	appLogger.Info().Msg("✅ Logger initialized successfully")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Postgres connection failed")
	}
	defer pg.Close()

	if cfg.Postgres.AutoMigrate {
		if err := postgres.Migrate(ctx, pg.Pool()); err != nil {
			appLogger.Fatal().Err(err).Msg("❌ Schema migration failed")
		}
		appLogger.Info().Msg("Schema is up to date")
	}

	rdb, err := redisrepo.New(ctx, cfg.Redis, &appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Redis connection failed")
	}
	defer rdb.Close()

	sessionRepo := postgres.NewSessionRepository(pg.Pool())
	legacyStore := redisrepo.NewLegacyStore(rdb)

	// Legacy sessions move before any request can depend on them.
	var migrations handler.MigrationReporter
	if cfg.Migration.Enabled {
		migrator := service.NewSessionMigrator(legacyStore, sessionRepo, appLogger)
		migrator.Migrate(ctx)
		migrations = migrator
	}

	engine := handler.NewEngine(appLogger, cfg.App.Env)
	handler.Register(engine,
		[]handler.ReadinessCheck{
			{Name: "postgres", Pinger: postgres.NewPinger(pg.Pool())},
			{Name: "redis", Pinger: legacyStore},
		},
		service.NewSessionService(sessionRepo, appLogger),
		migrations,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info().Str("addr", srv.Addr).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		appLogger.Info().Msg("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			appLogger.Error().Err(err).Msg("http server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.App.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}
	appLogger.Info().Msg("👋 Service stopped")
}
