package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/kailas-cloud/facetdex/internal/catalog"
	"github.com/kailas-cloud/facetdex/internal/domain/entity"
	"github.com/kailas-cloud/facetdex/internal/metrics"
	recordrepo "github.com/kailas-cloud/facetdex/internal/repository/record"
	chiTransport "github.com/kailas-cloud/facetdex/internal/transport/chi"
	choicesuc "github.com/kailas-cloud/facetdex/internal/usecase/choices"
	healthuc "github.com/kailas-cloud/facetdex/internal/usecase/health"
	listinguc "github.com/kailas-cloud/facetdex/internal/usecase/listing"
	questionnaireuc "github.com/kailas-cloud/facetdex/internal/usecase/questionnaire"
	"github.com/kailas-cloud/facetdex/internal/version"
)

func runServe(ctx context.Context, opts *options) error {
	cfg, logger, err := opts.load()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting facetdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", opts.resolveEnv()),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("Connected to database")

	// Registered explicitly, no init().
	metrics.RegisterHTTPMetrics()
	metrics.RegisterFacetMetrics()

	repo := recordrepo.New(store)
	listingSvc := listinguc.New(repo, metrics.FacetObserver{}, cfg.Listing.MaxPageSize)
	choicesSvc := choicesuc.New(repo, listingSvc)
	recordSvc := questionnaireuc.New(repo)
	healthSvc := healthuc.New(store, healthuc.WithCheck("catalog", checkCatalog))

	server := chiTransport.NewServer(listingSvc, choicesSvc, recordSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins: cfg.HTTP.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-sigCtx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}

// checkCatalog fails when a questionnaire type has no registry.
func checkCatalog(context.Context) error {
	for _, t := range entity.All() {
		if _, err := catalog.Registry(t); err != nil {
			return err
		}
	}
	return nil
}
