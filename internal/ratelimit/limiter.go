// Package ratelimit provides fixed-window, per-client rate limiting for the
// gateway. Counters live behind a Store so several policies, and several
// gateway instances, can share one backend.
package ratelimit

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/killallgit/podcast-gateway/pkg/logger"
)

// Store keeps fixed-window hit counters. Implementations must be safe for
// concurrent use.
type Store interface {
	// Increment records one hit for key. The first hit opens a window of the
	// given length; hits after the window has expired open a new one. It
	// returns the hit count within the current window and when it ends.
	Increment(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)

	// Reset discards the window for key.
	Reset(ctx context.Context, key string) error

	// Close releases background goroutines and connections.
	Close() error
}

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Info contains rate limit state for populating response headers.
type Info struct {
	Limit     int
	Remaining int
	Window    time.Duration
	ResetAt   time.Time
}

// RetryAfter returns the whole seconds until the window resets, at least 1.
func (i Info) RetryAfter(now time.Time) int {
	secs := int(math.Ceil(i.ResetAt.Sub(now).Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}

// Limiter applies policies against a Store
type Limiter struct {
	store      Store
	now        func() time.Time
	log        zerolog.Logger
	rejections metric.Int64Counter
}

// NewLimiter creates a limiter over store
func NewLimiter(store Store) *Limiter {
	l := &Limiter{
		store: store,
		now:   time.Now,
		log:   logger.Component("ratelimit"),
	}

	rejections, err := otel.Meter("podcast-gateway/ratelimit").Int64Counter(
		"gateway.ratelimit.rejections",
		metric.WithDescription("Number of requests rejected by a rate limit policy"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		l.log.Warn().Err(err).Msg("Failed to create rejection counter")
	}
	l.rejections = rejections

	return l
}

// Allow counts one hit for client under policy and reports whether it is
// within the policy's limit.
func (l *Limiter) Allow(ctx context.Context, policy Policy, client string) (bool, Info, error) {
	count, resetAt, err := l.store.Increment(ctx, policyKey(policy.Name, client), policy.Window)
	if err != nil {
		return true, Info{}, fmt.Errorf("rate limit store: %w", err)
	}

	remaining := policy.Max - count
	if remaining < 0 {
		remaining = 0
	}

	info := Info{
		Limit:     policy.Max,
		Remaining: remaining,
		Window:    policy.Window,
		ResetAt:   resetAt,
	}

	allowed := count <= policy.Max
	if !allowed && l.rejections != nil {
		l.rejections.Add(ctx, 1, metric.WithAttributes(attribute.String("policy", policy.Name)))
	}
	return allowed, info, nil
}

// Reset clears the counter of client under policy.
func (l *Limiter) Reset(ctx context.Context, policy Policy, client string) error {
	return l.store.Reset(ctx, policyKey(policy.Name, client))
}

// Ping checks the store's backend. Stores without one always succeed.
func (l *Limiter) Ping(ctx context.Context) error {
	if p, ok := l.store.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close closes the underlying store
func (l *Limiter) Close() error {
	return l.store.Close()
}

func policyKey(policy, client string) string {
	return policy + ":" + client
}
