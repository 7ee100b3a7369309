// Shoprec - LLM-Assisted Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shoprec

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tomtom215/shoprec/internal/api"
	"github.com/tomtom215/shoprec/internal/catalog"
	"github.com/tomtom215/shoprec/internal/config"
	"github.com/tomtom215/shoprec/internal/events"
	"github.com/tomtom215/shoprec/internal/logging"
	"github.com/tomtom215/shoprec/internal/recommend"
	"github.com/tomtom215/shoprec/internal/supervisor"
	"github.com/tomtom215/shoprec/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// eventBufferSize is the per-subscriber output buffer of the event bus.
const eventBufferSize = 256

func main() {
	// A missing .env file is normal outside development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(loggingConfig(cfg))
	logger := logging.Logger()

	logger.Info().
		Str("version", version).
		Str("model", cfg.LLM.Model).
		Bool("cache_enabled", cfg.Cache.Enabled).
		Str("cache_backend", cfg.Cache.Backend).
		Str("catalog", cfg.Catalog.DataPath).
		Msg("Starting shoprec")

	if cfg.LLM.APIKey == "" {
		logger.Warn().Msg("No LLM API key configured; recommendation requests will fail upstream")
	}
	if cfg.HasWildcardCORS() {
		logger.Warn().Msg("CORS allows any origin; set CORS_ORIGINS for production deployments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	products, err := catalog.Load(cfg.Catalog.DataPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load product catalog")
	}
	logger.Info().Int("products", products.Len()).Msg("Catalog loaded")

	store, err := openCache(cfg, logging.WithComponent("cache"))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open recommendation cache")
	}
	if store != nil {
		defer func() {
			if err := store.Close(); err != nil {
				logger.Error().Err(err).Msg("Error closing cache")
			}
		}()
	}

	bus := events.NewBus(eventBufferSize, logging.WithComponent("events"))
	defer func() {
		if err := bus.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing event bus")
		}
	}()

	eventRouter, err := events.NewRouter(events.DefaultRouterConfig(), logging.WithComponent("events"))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create event router")
	}
	events.NewRecorder(logging.WithComponent("events")).Register(eventRouter, bus.Subscriber())

	completer := newCompleter(cfg, logging.WithComponent("llm"))

	deps := recommend.Deps{Completer: completer, Events: bus}
	if store != nil {
		deps.Cache = store
	}
	orch, err := recommend.NewOrchestrator(ctx, cfg.RecommendConfig(), deps, logging.WithComponent("recommend"))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create recommendation orchestrator")
	}

	handler, err := api.NewHandler(orch, products, api.HandlerOptions{
		Version:      version,
		CacheBackend: cfg.Cache.Backend,
		Circuit:      completer,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create API handler")
	}

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           api.NewRouter(handler, api.NewMiddleware(middlewareConfig(cfg))),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if store != nil {
		tree.AddCacheService(services.NewCacheSweepService(orch, cfg.Cache.SweepInterval, logging.WithComponent("supervisor")))
	}
	tree.AddEventsService(services.NewEventRouterService(eventRouter, logging.WithComponent("supervisor")))
	tree.AddAPIService(services.NewHTTPServerService(server, server.Addr, cfg.Server.ShutdownTimeout, logging.WithComponent("supervisor")))

	logger.Info().Msg("Starting supervisor tree")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logger.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logger.Info().Msg("Shoprec stopped")
}
