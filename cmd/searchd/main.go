package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Ayupanchal18/Renters-sub007/internal/common/config"
	"github.com/Ayupanchal18/Renters-sub007/internal/common/database"
	"github.com/Ayupanchal18/Renters-sub007/internal/common/logger"
	"github.com/Ayupanchal18/Renters-sub007/internal/common/observability"
	"github.com/Ayupanchal18/Renters-sub007/internal/listings"
	"github.com/Ayupanchal18/Renters-sub007/internal/location"
	"github.com/Ayupanchal18/Renters-sub007/internal/search"
	"github.com/Ayupanchal18/Renters-sub007/internal/server"
	"github.com/Ayupanchal18/Renters-sub007/internal/store"
)

// retryWithBackoff retries an operation with exponential backoff. Used for
// external connections that may not be up yet at process start.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting search service",
		zap.String("source", cfg.Search.Source),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// Redis is needed for candidate and geocode caching; skipped entirely
	// when caching is off.
	var redisClient *database.RedisClient
	if cfg.Search.CacheEnabled {
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redisClient.Close()
		zapLog.Info("redis connected")
	}

	source, cleanup, err := buildSource(ctx, cfg, zapLog, log)
	if err != nil {
		zapLog.Fatal("listing source init failed", zap.Error(err))
	}
	if cleanup != nil {
		defer cleanup()
	}

	if cfg.Search.CacheEnabled && redisClient != nil {
		source = listings.NewCachedSource(
			source,
			redisClient.Client,
			config.GetDuration(cfg.Search.CacheTTL),
			log,
		)
	}

	locService := buildLocationService(cfg, redisClient, log)

	engine := search.NewEngine(log)
	st := store.New(source, engine, nil, cfg.Search.Source, log).WithObservability(obs)

	if err := st.Refresh(ctx); err != nil {
		zapLog.Warn("initial candidate load failed, will retry on first request", zap.Error(err))
	} else {
		zapLog.Info("candidates loaded", zap.Int("count", st.Result().TotalCount))
	}

	srv := server.New(cfg.Server, st, locService, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zapLog.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			zapLog.Error("http server failed", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Warn("http shutdown incomplete", zap.Error(err))
	}
	zapLog.Info("search service stopped")
}

// buildSource wires the configured listing source. The returned cleanup
// closes whatever connection the source holds.
func buildSource(ctx context.Context, cfg *config.Config, zapLog *zap.Logger, log logger.Logger) (listings.Source, func(), error) {
	switch cfg.Search.Source {
	case "postgres":
		var pg *database.PostgresClient
		err := retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			return nil, nil, err
		}
		zapLog.Info("postgres connected")
		src := listings.NewPostgresSource(pg.DB, cfg.Search.CandidateLimit, log)
		return src, func() { pg.Close() }, nil

	case "elasticsearch":
		var es *database.ElasticsearchClient
		err := retryWithBackoff(func() error {
			var err error
			es, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return es.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			return nil, nil, err
		}
		zapLog.Info("elasticsearch connected")
		src := listings.NewElasticSource(es.Client, cfg.Database.Elasticsearch.Index, cfg.Search.CandidateLimit, log)
		return src, nil, nil

	default:
		if cfg.Search.ListingsFile != "" {
			src, err := listings.NewMemorySourceFromFile(cfg.Search.ListingsFile, log)
			if err != nil {
				return nil, nil, err
			}
			return src, nil, nil
		}
		return listings.NewMemorySource(nil, log), nil, nil
	}
}

// buildLocationService assembles the position lookup plus the
// reverse-geocoding provider chain. Returns nil when no providers are
// configured, which disables /api/locate.
func buildLocationService(cfg *config.Config, redisClient *database.RedisClient, log logger.Logger) *location.Service {
	if len(cfg.Geocoding.Providers) == 0 {
		return nil
	}

	timeout := config.GetDuration(cfg.Geocoding.Timeout)

	providers := make([]location.Provider, 0, len(cfg.Geocoding.Providers))
	for _, pc := range cfg.Geocoding.Providers {
		switch pc.Name {
		case "nominatim":
			providers = append(providers, location.NewNominatimProvider(pc.BaseURL, timeout))
		case "bigdatacloud":
			providers = append(providers, location.NewBigDataCloudProvider(pc.BaseURL, timeout))
		default:
			log.Warn("unknown geocode provider, skipping", map[string]interface{}{"name": pc.Name})
		}
	}
	if len(providers) == 0 {
		return nil
	}

	var cache *location.Cache
	if redisClient != nil {
		cache = location.NewCache(redisClient.Client, config.GetDuration(cfg.Geocoding.CacheTTL), log)
	}

	resolver := location.NewResolver(providers, cache, log)
	positions := location.NewIPPositionProvider(
		cfg.Geocoding.IPLookup.BaseURL,
		config.GetDuration(cfg.Geocoding.IPLookup.Timeout),
	)

	return location.NewService(positions, resolver, log)
}
