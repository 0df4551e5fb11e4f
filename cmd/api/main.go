package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pratik-mahalle/spendlens/internal/api/handlers"
	"github.com/pratik-mahalle/spendlens/internal/api/middleware"
	"github.com/pratik-mahalle/spendlens/internal/api/router"
	"github.com/pratik-mahalle/spendlens/internal/config"
	"github.com/pratik-mahalle/spendlens/internal/pkg/crypto"
	"github.com/pratik-mahalle/spendlens/internal/pkg/logger"
	"github.com/pratik-mahalle/spendlens/internal/pkg/validator"
	"github.com/pratik-mahalle/spendlens/internal/providers"
	"github.com/pratik-mahalle/spendlens/internal/repository/postgres"
	"github.com/pratik-mahalle/spendlens/internal/services"
	"github.com/pratik-mahalle/spendlens/internal/worker"
	"github.com/pratik-mahalle/spendlens/migrations"
)

// @title SpendLens API
// @version 1.0
// @description Multi-cloud cost aggregation, resource correlation and savings recommendations.
// @BasePath /api/v1
// @securityDefinitions.apikey UserID
// @in header
// @name X-User-ID
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.OutputPath,
	})

	if err := run(cfg, log); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.New(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	log.With("driver", cfg.Database.Driver).Info("Connected to database")

	applied, err := postgres.RunMigrations(ctx, db, migrations.GetFS(), log)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Infof("Database ready (%d migrations applied)", applied)

	sealer, err := crypto.NewSealer(cfg.CredentialsKey(), cfg.Security.CredentialsSalt)
	if err != nil {
		return fmt.Errorf("failed to initialize credential sealer: %w", err)
	}

	// Repositories
	providerRepo := postgres.NewProviderRepository(db, sealer)
	costRepo := postgres.NewCostRepository(db)
	resourceRepo := postgres.NewResourceRepository(db)

	// Backends and services
	backends := providers.NewBackends(providers.Options{
		LocalDataDir: cfg.Providers.LocalDataDir,
		LiveEnabled:  cfg.Providers.LiveEnabled,
	}, log)

	correlationPolicy, recommendationPolicy := services.PoliciesFromConfig(cfg.Policy)

	providerService := services.NewProviderService(
		providerRepo, costRepo, resourceRepo, backends, cfg.Providers.CallTimeout, log,
	)
	syncService := services.NewSyncService(
		providerService,
		providerRepo,
		costRepo,
		resourceRepo,
		backends,
		services.NewCorrelationEngine(correlationPolicy),
		services.NewRecommendationEngine(recommendationPolicy),
		cfg.Providers.CallTimeout,
		log,
	)

	// HTTP
	limiter := middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst)
	go limiter.RunCleanup(ctx, 5*time.Minute)

	h := &router.Handlers{
		Health:         handlers.NewHealthHandler(db, log),
		Provider:       handlers.NewProviderHandler(providerService, log),
		Sync:           handlers.NewSyncHandler(syncService, validator.New(), cfg.Sync.LookbackDays, log),
		Cost:           handlers.NewCostHandler(syncService, log),
		Resource:       handlers.NewResourceHandler(syncService, log),
		Recommendation: handlers.NewRecommendationHandler(syncService, log),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, limiter, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	if cfg.Sync.Enabled {
		scheduler := worker.NewSyncScheduler(providerRepo, syncService, cfg.Sync.Schedule, cfg.Sync.LookbackDays, log)
		if err := scheduler.Start(ctx); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		log.With("addr", srv.Addr).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info("Server stopped")
	return nil
}
