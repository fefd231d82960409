package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/dinkanimations/squadbets/internal/config"
	"github.com/dinkanimations/squadbets/internal/domain/season"
	"github.com/dinkanimations/squadbets/internal/infrastructure/repository/cache"
	"github.com/dinkanimations/squadbets/internal/infrastructure/repository/memory"
	"github.com/dinkanimations/squadbets/internal/infrastructure/repository/postgres"
	"github.com/dinkanimations/squadbets/internal/infrastructure/repository/redis"
	"github.com/dinkanimations/squadbets/internal/infrastructure/repository/resilient"
	"github.com/dinkanimations/squadbets/internal/infrastructure/repository/sqlite"
	"github.com/dinkanimations/squadbets/internal/platform/logging"
	"github.com/dinkanimations/squadbets/internal/platform/resilience"
)

// newStore opens the configured backend. Remote backends sit behind a
// circuit breaker, and the optional read cache wraps whatever comes out.
func newStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (season.Store, func() error, error) {
	var (
		store  season.Store
		closer = func() error { return nil }
		remote bool
	)

	switch cfg.StoreBackend {
	case config.StoreMemory:
		store = memory.NewKVStore(nil)
	case config.StorePostgres:
		db, err := openPostgres(ctx, cfg.DBURL, cfg.DBDisablePreparedBinary)
		if err != nil {
			return nil, nil, err
		}
		store = postgres.NewKVStore(db, cfg.StoreNamespace)
		closer = db.Close
		remote = true
	case config.StoreRedis:
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open redis: %w", err)
		}
		store = redis.NewKVStore(client, cfg.RedisKeyPrefix, cfg.StoreNamespace)
		closer = client.Close
		remote = true
	case config.StoreSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite: %w", err)
		}
		store = sqlite.NewKVStore(db, cfg.StoreNamespace)
		closer = db.Close
	default:
		return nil, nil, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}

	if remote {
		breaker := resilience.NewCircuitBreakerFromConfig(resilience.CircuitBreakerConfig{
			Enabled:          cfg.StoreCircuitEnabled,
			FailureThreshold: cfg.StoreCircuitFailureCount,
			OpenTimeout:      cfg.StoreCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StoreCircuitHalfOpenMaxReq,
		}).OnStateChange(func(from, to resilience.CircuitState) {
			logger.Warn("season store circuit changed",
				"backend", cfg.StoreBackend,
				"from", string(from),
				"to", string(to),
			)
		})
		store = resilient.NewKVStore(store, breaker)
	}
	if cfg.CacheEnabled {
		store = cache.NewKVStore(store, cfg.CacheTTL)
	}

	logger.Info("season store ready",
		"backend", cfg.StoreBackend,
		"namespace", strings.TrimSpace(cfg.StoreNamespace),
		"circuit_breaker", remote && cfg.StoreCircuitEnabled,
		"cache", cfg.CacheEnabled,
	)
	return store, closer, nil
}
