package leadsync

import (
	"context"
	"database/sql"
	"time"

	"go-crm-leads/internal/config"
	"go-crm-leads/internal/database"
	"go-crm-leads/pkg/distlock"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	scheduledLockKey = "lead-sync:scheduled"
	scheduledLockTTL = 15 * time.Minute
)

// RunGuard keeps scheduled runs from overlapping across instances. It uses
// Redis when configured, a Postgres advisory lock on the postgres store, and
// does nothing otherwise.
type RunGuard struct {
	redis  *redis.Client
	db     *sql.DB
	ttl    time.Duration
	logger *zap.Logger
}

func NewRunGuard(cfg *config.Config, rdb *redis.Client, pg *database.PostgresDB, logger *zap.Logger) *RunGuard {
	g := &RunGuard{redis: rdb, ttl: scheduledLockTTL, logger: logger.Named("run_guard")}
	if cfg.UsesPostgres() && pg != nil {
		g.db = pg.DB
	}
	return g
}

// Do runs fn unless another holder has the key. A lock backend error is
// logged and fn runs anyway.
func (g *RunGuard) Do(ctx context.Context, key string, fn func(ctx context.Context)) bool {
	if g == nil {
		fn(ctx)
		return true
	}
	lock := distlock.New(g.redis, g.db, key, g.ttl)
	if lock == nil {
		fn(ctx)
		return true
	}

	ok, err := lock.Acquire(ctx)
	if err != nil {
		g.logger.Warn("Run guard unavailable, running unguarded", zap.String("key", key), zap.Error(err))
		fn(ctx)
		return true
	}
	if !ok {
		g.logger.Info("Run guard held elsewhere, skipping", zap.String("key", key))
		return false
	}
	defer func() {
		if err := lock.Release(context.Background()); err != nil {
			g.logger.Warn("Failed to release run guard", zap.String("key", key), zap.Error(err))
		}
	}()

	fn(ctx)
	return true
}
