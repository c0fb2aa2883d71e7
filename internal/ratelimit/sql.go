package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/killallgit/podcast-gateway/pkg/logger"
)

// WindowRecord is one fixed window persisted by SQLStore
type WindowRecord struct {
	Bucket    string    `gorm:"primaryKey;size:255"`
	Count     int       `gorm:"not null"`
	ResetAt   time.Time `gorm:"not null;index"`
	UpdatedAt time.Time
}

// TableName overrides the gorm table name
func (WindowRecord) TableName() string {
	return "rate_limit_windows"
}

// SQLStore keeps counters in a SQL table through gorm. Expired rows are
// pruned periodically.
type SQLStore struct {
	db   *gorm.DB
	log  zerolog.Logger
	now  func() time.Time
	mu   sync.Mutex
	done chan struct{}
	once sync.Once

	onClose func() error
}

// Migrate creates or updates the rate_limit_windows table
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&WindowRecord{})
}

// NewSQLStore creates a store over db. The table must exist (see Migrate).
// A pruneInterval of zero disables background pruning.
func NewSQLStore(db *gorm.DB, pruneInterval time.Duration) *SQLStore {
	s := &SQLStore{
		db:   db,
		log:  logger.Component("ratelimit"),
		now:  func() time.Time { return time.Now().UTC() },
		done: make(chan struct{}),
	}
	if pruneInterval > 0 {
		go s.pruneLoop(pruneInterval)
	}
	return s
}

// Increment implements Store.
func (s *SQLStore) Increment(ctx context.Context, key string, length time.Duration) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var rec WindowRecord

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("bucket = ?", key).Limit(1).Find(&rec)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			rec = WindowRecord{Bucket: key, Count: 1, ResetAt: now.Add(length)}
			return tx.Create(&rec).Error
		}

		if !now.Before(rec.ResetAt) {
			rec.Count = 1
			rec.ResetAt = now.Add(length)
		} else {
			rec.Count++
		}
		return tx.Model(&WindowRecord{}).
			Where("bucket = ?", key).
			Updates(map[string]interface{}{"count": rec.Count, "reset_at": rec.ResetAt}).Error
	})
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("sql increment %s: %w", key, err)
	}

	return rec.Count, rec.ResetAt, nil
}

// Reset implements Store.
func (s *SQLStore) Reset(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.WithContext(ctx).Where("bucket = ?", key).Delete(&WindowRecord{}).Error
}

// Prune deletes expired windows and returns how many were removed.
func (s *SQLStore) Prune(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.db.WithContext(ctx).Where("reset_at <= ?", s.now()).Delete(&WindowRecord{})
	return res.RowsAffected, res.Error
}

// Ping implements Pinger.
func (s *SQLStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close implements Store. It stops the pruning goroutine. The database is
// closed only when the store opened it (see OpenStore).
func (s *SQLStore) Close() error {
	s.once.Do(func() { close(s.done) })
	if s.onClose != nil {
		return s.onClose()
	}
	return nil
}

func (s *SQLStore) pruneLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.pruneOnce()
		case <-s.done:
			return
		}
	}
}

func (s *SQLStore) pruneOnce() {
	removed, err := s.Prune(context.Background())
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to prune expired rate limit windows")
		return
	}
	if removed > 0 {
		s.log.Debug().Int64("removed", removed).Msg("Pruned expired rate limit windows")
	}
}
