// Package container wires the application together with samber/do. Each
// Package function registers the providers for one concern; entrypoints pick
// the subset they need.
package container

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/rategate/internal/ratelimit"
	"github.com/serroba/rategate/internal/stats"
	"github.com/serroba/rategate/internal/store"
	"go.uber.org/zap"
)

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		opts := do.MustInvoke[*Options](i)
		if opts.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// RedisPackage provides the shared Redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		opts := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{
			Addr: opts.RedisAddr,
		}), nil
	})
}

// PostgresPackage provides the pgx pool for the deny-event store. The pool
// is only built when something invokes it, so processes without a DSN never
// touch Postgres.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		opts := do.MustInvoke[*Options](i)

		return pgxpool.New(context.Background(), opts.PostgresDSN)
	})
}

// RateLimitPackage provides the limiter core: config from the environment,
// the system clock, the window store matching the configured strategy, the
// limiter over them, and the janitor sweeping once per window.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (ratelimit.Config, error) {
		return LimiterConfigFromEnv(), nil
	})

	do.Provide(injector, func(_ *do.Injector) (ratelimit.Clock, error) {
		return ratelimit.SystemClock{}, nil
	})

	do.Provide(injector, func(i *do.Injector) (ratelimit.WindowStore, error) {
		cfg := do.MustInvoke[ratelimit.Config](i)

		if cfg.Strategy == ratelimit.StrategyExact {
			return store.NewExactWindowStore(cfg), nil
		}

		return store.NewShardedWindowStore(cfg), nil
	})

	do.Provide(injector, func(i *do.Injector) (ratelimit.Limiter, error) {
		return ratelimit.NewSlidingWindowLimiter(
			do.MustInvoke[ratelimit.WindowStore](i),
			do.MustInvoke[ratelimit.Clock](i),
		), nil
	})

	do.Provide(injector, func(i *do.Injector) (*ratelimit.Janitor, error) {
		cfg := do.MustInvoke[ratelimit.Config](i)

		return ratelimit.NewJanitor(
			do.MustInvoke[ratelimit.WindowStore](i),
			do.MustInvoke[ratelimit.Clock](i),
			cfg.Window,
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
}

// StatsPackage provides the decision stats sink.
func StatsPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (stats.Store, error) {
		opts := do.MustInvoke[*Options](i)

		if opts.StatsBackend == "redis" {
			return store.NewRedisStatsStore(do.MustInvoke[*redis.Client](i)), nil
		}

		return store.NewMemoryStatsStore(), nil
	})
}
