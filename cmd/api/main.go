package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/staybook/backend/internal/adapters/cache"
	"github.com/staybook/backend/internal/adapters/events"
	"github.com/staybook/backend/internal/adapters/memory"
	"github.com/staybook/backend/internal/api/handlers"
	"github.com/staybook/backend/internal/api/middleware"
	"github.com/staybook/backend/internal/api/routes"
	"github.com/staybook/backend/internal/application/services"
	"github.com/staybook/backend/internal/domain/providers"
	"github.com/staybook/backend/internal/infrastructure/clients/redis"
	"github.com/staybook/backend/internal/infrastructure/observability"
	"github.com/staybook/backend/pkg/config"
	"github.com/staybook/backend/pkg/retry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Warn().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Redis backs the response cache and the event bus. The service runs
	// fine without it.
	var (
		cacheProvider providers.CacheProvider
		eventBus      providers.EventBus
	)
	if cfg.Redis.Enabled {
		var redisClient *redis.Client
		err := retry.Do(ctx, retry.DefaultConfig(), func() error {
			var connErr error
			redisClient, connErr = redis.NewClient(&cfg.Redis)
			return connErr
		})
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, continuing without cache and events")
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewRedisAdapter(redisClient)
			eventBus = events.NewRedisEventBus(redisClient)
			defer eventBus.Close()
		}
	}

	store := memory.NewStore()
	facade := services.NewFacade(store, eventBus)

	if cacheProvider != nil && eventBus != nil {
		invalidation := services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := invalidation.Start(); err != nil {
			log.Warn().Err(err).Msg("failed to start cache invalidation service")
		} else {
			defer invalidation.Stop()
		}
	}

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
	}

	router := routes.NewRouter(
		handlers.NewUserHandler(facade),
		handlers.NewPlaceHandler(facade),
		handlers.NewReviewHandler(facade),
		handlers.NewAmenityHandler(facade),
		cacheMiddleware,
		metrics,
	)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
