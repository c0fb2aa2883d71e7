package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/killallgit/podcast-gateway/internal/database"
	"github.com/killallgit/podcast-gateway/pkg/config"
)

// Store backends
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQL    = "sql"
)

// OpenStore builds the Store selected by rate_limiting.store.
func OpenStore(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.RateLimiting.Store {
	case StoreMemory, "":
		return NewMemoryStore(time.Minute), nil

	case StoreRedis:
		rc := cfg.RateLimiting.Redis
		rdb, err := DialRedis(ctx, rc.Addr, rc.Password, rc.DB)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(rdb, WithRedisPrefix(rc.Prefix)), nil

	case StoreSQL:
		db, err := database.Initialize(cfg.Database.Path, cfg.Database.Verbose)
		if err != nil {
			return nil, err
		}
		if err := Migrate(db.DB); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate rate limit table: %w", err)
		}
		s := NewSQLStore(db.DB, time.Minute)
		s.onClose = db.Close
		return s, nil

	default:
		return nil, fmt.Errorf("unknown rate limit store %q", cfg.RateLimiting.Store)
	}
}
