package security

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/Phishman81/ferienhaus-belegungsplan/internal/config"
)

// Decision is the outcome of a rate-limit check.  When Allowed is false,
// RetryIn holds the time until the oldest counted attempt leaves the
// window, i.e. the earliest moment a retry can succeed.
type Decision struct {
	Allowed bool
	RetryIn time.Duration
}

// RateLimiter enforces a sliding-window cap on booking submissions per
// identifier.  Attempt timestamps are persisted through an AttemptStore;
// entries older than the window are pruned lazily on every call and the
// pruned map is written back even on read-only checks, which self-heals
// stale data at the cost of CanAttempt not being side-effect free.
//
// Storage failures fail open: if the store cannot be read or written the
// caller is allowed through.  Availability wins over strict quota
// enforcement here.
type RateLimiter struct {
	limit  int
	window time.Duration
	store  AttemptStore
	now    func() time.Time // injectable for tests
}

// NewRateLimiter builds a limiter from config.  The limit is clamped to at
// least one attempt and the window to a non-negative duration.
func NewRateLimiter(cfg config.RateLimitConfig, store AttemptStore) *RateLimiter {
	limit := cfg.Limit
	if limit < 1 {
		limit = 1
	}
	window := cfg.Window
	if window < 0 {
		window = 0
	}
	return &RateLimiter{limit: limit, window: window, store: store, now: time.Now}
}

// CanAttempt reports whether the identifier may submit right now.  The
// persisted record is pruned, written back, and compared against the limit.
func (l *RateLimiter) CanAttempt(ctx context.Context, identifier string) Decision {
	key := normalizeIdentifier(identifier)
	now := l.now().UnixMilli()

	attempts := l.load(ctx)
	history := l.prune(attempts[key], now)
	attempts[key] = history
	l.save(ctx, attempts)

	if len(history) >= l.limit {
		retry := l.window - time.Duration(now-history[0])*time.Millisecond
		if retry < 0 {
			retry = 0
		}
		return Decision{Allowed: false, RetryIn: retry}
	}
	return Decision{Allowed: true}
}

// RecordAttempt appends the current timestamp to the identifier's history.
// The stored list is truncated to the most recent `limit` entries.
func (l *RateLimiter) RecordAttempt(ctx context.Context, identifier string) {
	key := normalizeIdentifier(identifier)
	now := l.now().UnixMilli()

	attempts := l.load(ctx)
	history := append(l.prune(attempts[key], now), now)
	if len(history) > l.limit {
		history = history[len(history)-l.limit:]
	}
	attempts[key] = history
	l.save(ctx, attempts)
}

// prune drops timestamps that have left the sliding window.
func (l *RateLimiter) prune(history []int64, now int64) []int64 {
	out := make([]int64, 0, len(history))
	for _, ts := range history {
		if now-ts < l.window.Milliseconds() {
			out = append(out, ts)
		}
	}
	return out
}

func (l *RateLimiter) load(ctx context.Context) map[string][]int64 {
	attempts, err := l.store.Load(ctx)
	if err != nil {
		log.Printf("rate limiter: store unavailable, failing open: %v", err)
		return map[string][]int64{}
	}
	return attempts
}

func (l *RateLimiter) save(ctx context.Context, attempts map[string][]int64) {
	if err := l.store.Save(ctx, attempts); err != nil {
		log.Printf("rate limiter: store write failed: %v", err)
	}
}

// normalizeIdentifier trims and lowercases the identifier.  Blank
// identifiers share a single "anonymous" bucket; the submission flow runs
// behind the auth gate so this path only matters for direct library use.
func normalizeIdentifier(identifier string) string {
	id := strings.ToLower(strings.TrimSpace(identifier))
	if id == "" {
		return "anonymous"
	}
	return id
}
