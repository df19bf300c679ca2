// Package bootstrap wires optional infrastructure (redis, postgres)
// from configuration, falling back to in-memory implementations so the
// server always starts.
package bootstrap

import (
	"context"
	"crypto/tls"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/championmethod/funnel-platform/internal/checkout"
	appconfig "github.com/championmethod/funnel-platform/internal/config"
	"github.com/championmethod/funnel-platform/internal/leads"
	"github.com/championmethod/funnel-platform/internal/qualification"
	"github.com/championmethod/funnel-platform/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		return nil
	}
	return client
}

// BuildDatabasePool connects to postgres, or returns nil when no
// DATABASE_URL is configured or the database is unreachable.
func BuildDatabasePool(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) *pgxpool.Pool {
	if cfg == nil || strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Warn("database not available", "error", err)
		return nil
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Warn("database not reachable", "error", err)
		pool.Close()
		return nil
	}
	return pool
}

// BuildOrderRepository returns a postgres-backed repository when a
// pool exists, otherwise in-memory.
func BuildOrderRepository(pool *pgxpool.Pool, logger *logging.Logger) checkout.OrderRepository {
	if pool != nil {
		return checkout.NewPostgresOrderRepository(pool)
	}
	if logger != nil {
		logger.Warn("orders using in-memory repository, data will not survive restarts")
	}
	return checkout.NewInMemoryOrderRepository()
}

// BuildLeadRepository returns a postgres-backed repository when a pool
// exists, otherwise in-memory.
func BuildLeadRepository(pool *pgxpool.Pool, logger *logging.Logger) leads.Repository {
	if pool != nil {
		return leads.NewPostgresRepository(pool)
	}
	if logger != nil {
		logger.Warn("leads using in-memory repository, data will not survive restarts")
	}
	return leads.NewInMemoryRepository()
}

// BuildSessionStore returns a redis-backed store when redis is
// available, otherwise in-memory.
func BuildSessionStore(redisClient *redis.Client, cfg *appconfig.Config) qualification.SessionStore {
	if redisClient != nil {
		return qualification.NewRedisSessionStore(redisClient, cfg.QualificationTTL)
	}
	return qualification.NewInMemorySessionStore()
}
