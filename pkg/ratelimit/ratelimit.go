package ratelimit

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// UnknownIdentifier is the shared bucket used when a caller cannot be
// identified. Absent identifiers must not crash the check.
const UnknownIdentifier = "unknown"

type Config struct {
	Window      time.Duration
	MaxRequests int
}

type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Store keeps per-identifier request timestamps within a trailing window.
//
// Record appends ts for the identifier after evicting entries at or older
// than ts-window, and reports the post-eviction count (including ts) and
// the oldest timestamp still in the window. The attempt is recorded even
// when the caller ends up rejecting it, so sustained over-limit traffic
// keeps recomputing RetryAfter from the most recent burst.
type Store interface {
	Record(ctx context.Context, identifier string, ts time.Time, window time.Duration) (count int64, oldest time.Time, err error)
}

type Limiter struct {
	config Config
	store  Store
	logger *logrus.Logger
	now    func() time.Time
}

type Opts struct {
	TimeProvider func() time.Time
}

func NewLimiter(config Config, store Store, logger *logrus.Logger, opts *Opts) *Limiter {
	now := time.Now
	if opts != nil && opts.TimeProvider != nil {
		now = opts.TimeProvider
	}

	return &Limiter{
		config: config,
		store:  store,
		logger: logger,
		now:    now,
	}
}

func (l *Limiter) Config() Config {
	return l.config
}

// Check admits or rejects a request from identifier. Store failures never
// propagate: the limiter fails open and reports a full window.
func (l *Limiter) Check(ctx context.Context, identifier string) Result {
	if identifier == "" {
		identifier = UnknownIdentifier
	}

	now := l.now()

	count, oldest, err := l.store.Record(ctx, identifier, now, l.config.Window)
	if err != nil {
		l.logger.WithError(err).WithField("identifier", identifier).
			Error("rate limit store unavailable, admitting request")
		return Result{Allowed: true, Remaining: l.config.MaxRequests - 1}
	}

	if count <= int64(l.config.MaxRequests) {
		return Result{
			Allowed:   true,
			Remaining: l.config.MaxRequests - int(count),
		}
	}

	retryAfter := l.config.Window - now.Sub(oldest)
	if retryAfter <= 0 {
		retryAfter = time.Millisecond
	}
	if retryAfter > l.config.Window {
		retryAfter = l.config.Window
	}

	return Result{
		Allowed:    false,
		Remaining:  0,
		RetryAfter: retryAfter,
	}
}
