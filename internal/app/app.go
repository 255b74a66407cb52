// Package app provides application-level coordination and dependency injection.
// It orchestrates the initialization of all bot components, manages their
// lifecycles, and provides a clean application structure following dependency
// inversion principles.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/sean-rowe/weather-bot/internal/adapters/primary/discord"
	"github.com/sean-rowe/weather-bot/internal/adapters/secondary/cached"
	"github.com/sean-rowe/weather-bot/internal/adapters/secondary/geotime"
	"github.com/sean-rowe/weather-bot/internal/adapters/secondary/nominatim"
	"github.com/sean-rowe/weather-bot/internal/adapters/secondary/openmeteo"
	"github.com/sean-rowe/weather-bot/internal/config"
	"github.com/sean-rowe/weather-bot/internal/core/ports"
	"github.com/sean-rowe/weather-bot/internal/core/services"
	"github.com/sean-rowe/weather-bot/internal/infrastructure/cache"
	"github.com/sean-rowe/weather-bot/internal/infrastructure/circuitbreaker"
	"github.com/sean-rowe/weather-bot/internal/localization"
	"github.com/sean-rowe/weather-bot/internal/observability"
	"github.com/sean-rowe/weather-bot/internal/version"
)

// App manages the application lifecycle and dependencies.
type App struct {
	cfg       *config.Config
	logger    *zap.Logger
	metrics   *observability.Metrics
	bot       *discord.Bot
	opsServer *http.Server
}

// New creates a new application instance.
//
// Returns:
//   - *App: Configured application instance
//   - error: Logger initialization error
func New() (*App, error) {
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return &App{
		cfg:     config.Load(),
		logger:  logger,
		metrics: observability.NewMetrics(),
	}, nil
}

// Start initializes and starts all application components: the provider
// adapters, the command services, the gateway connection, and the
// operational HTTP server.
func (a *App) Start(ctx context.Context) error {
	if a.cfg.Discord.Token == "" {
		return errors.New("DISCORD_TOKEN is not set")
	}

	cacheService := a.initCache()

	httpClient := &http.Client{
		Timeout: a.cfg.Providers.HTTPTimeout,
	}

	breakers := circuitbreaker.NewManager(a.logger)
	breakerConfig := circuitbreaker.Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
	}

	geocoder := cached.NewGeocoder(
		nominatim.NewClient(
			a.cfg.Providers.GeocodingBaseURL,
			nominatim.Options{
				Language: a.cfg.Providers.GeocodingLanguage,
				Viewbox:  a.cfg.Providers.GeocodingViewbox,
				Limit:    a.cfg.Providers.GeocodingLimit,
			},
			httpClient,
			breakers.GetBreaker("nominatim", breakerConfig),
			a.logger,
		),
		cacheService,
		a.cfg.Cache.GeocodeTTL,
		a.metrics,
		a.logger,
	)

	forecast := cached.NewForecast(
		openmeteo.NewForecastClient(
			a.cfg.Providers.ForecastBaseURL,
			httpClient,
			breakers.GetBreaker("open-meteo-forecast", breakerConfig),
			a.logger,
		),
		cacheService,
		a.cfg.Cache.ForecastTTL,
		a.metrics,
		a.logger,
	)

	archive := openmeteo.NewArchiveClient(
		a.cfg.Providers.ArchiveBaseURL,
		httpClient,
		breakers.GetBreaker("open-meteo-archive", breakerConfig),
		a.logger,
	)

	catalog := localization.NewCatalog(a.cfg.Localization.Language, a.logger)

	selector := services.NewSelector(catalog, services.SelectorConfig{
		Timeout:        a.cfg.Selection.Timeout,
		MaxOptionWidth: a.cfg.Selection.MaxOptionWidth,
		OnOutcome:      a.metrics.RecordSelection,
	}, a.logger)

	temperature := services.NewTemperatureService(
		geocoder,
		forecast,
		archive,
		geotime.NewResolver(),
		selector,
		catalog,
		a.cfg.Localization.DefaultTimezone,
		a.logger,
	)

	accounts := services.NewAccountService(catalog, a.logger)
	messenger := discord.NewMessenger(a.logger)

	bot, err := discord.NewBot(
		discord.Config{
			Token:        a.cfg.Discord.Token,
			AppID:        a.cfg.Discord.AppID,
			TestGuildIDs: a.cfg.Discord.TestGuildIDs,
		},
		temperature,
		accounts,
		messenger,
		catalog,
		a.metrics,
		a.logger,
	)
	if err != nil {
		return err
	}

	if err := bot.Start(ctx); err != nil {
		return err
	}

	a.bot = bot

	a.opsServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", a.cfg.Server.Port),
		Handler:      a.setupRouter(),
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	go func() {
		a.logger.Info("starting operational HTTP server", zap.String("port", a.cfg.Server.Port))

		if err := a.opsServer.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				a.logger.Fatal("failed to start operational server", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop gracefully shuts down all application components.
func (a *App) Stop() {
	a.logger.Info("shutting down application...")

	if a.bot != nil {
		if err := a.bot.Stop(); err != nil {
			a.logger.Error("failed to close gateway session", zap.Error(err))
		}
	}

	if a.opsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := a.opsServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("failed to shutdown operational server gracefully", zap.Error(err))
		}
	}

	if err := a.logger.Sync(); err != nil {
		// Sync can fail on some platforms, ignore the error
		_ = err
	}
}

// WaitForShutdown blocks until the process receives a shutdown signal.
func (a *App) WaitForShutdown() {
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	a.logger.Info("shutdown signal received")
}

// initCache initializes the Redis-based or memory-based cache. A failed
// Redis connection degrades to the in-memory cache instead of failing
// startup.
func (a *App) initCache() ports.CacheService {
	memoryCache := func() ports.CacheService {
		return cache.NewMemoryCache(a.cfg.Cache.GeocodeTTL, a.cfg.Cache.CleanupInterval, a.logger)
	}

	if !a.cfg.Redis.Enabled {
		a.logger.Info("Redis disabled, using in-memory cache")

		return memoryCache()
	}

	redisCache, err := cache.NewRedisCache(cache.RedisConfig{
		Addr:         a.cfg.Redis.Addr,
		Password:     a.cfg.Redis.Password,
		DB:           a.cfg.Redis.DB,
		PoolSize:     a.cfg.Redis.PoolSize,
		MinIdleConns: a.cfg.Redis.MinIdleConns,
		MaxRetries:   a.cfg.Redis.MaxRetries,
		DialTimeout:  a.cfg.Redis.DialTimeout,
		ReadTimeout:  a.cfg.Redis.ReadTimeout,
		WriteTimeout: a.cfg.Redis.WriteTimeout,
	}, a.logger)

	if err != nil {
		a.logger.Warn("Redis connection failed, falling back to in-memory cache", zap.Error(err))

		return memoryCache()
	}

	a.logger.Info("Redis connected successfully")

	return redisCache
}

// setupRouter creates the operational HTTP router: health, version, and
// metrics. The bot itself serves no user traffic over HTTP.
func (a *App) setupRouter() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods("GET")

	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(version.Get()); err != nil {
			a.logger.Error("failed to encode version info", zap.Error(err))
		}
	}).Methods("GET")

	router.Handle("/metrics", a.metrics.Handler()).Methods("GET")

	return router
}
