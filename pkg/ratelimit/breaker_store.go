package ratelimit

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
)

type recordResult struct {
	count  int64
	oldest time.Time
}

// BreakerStore wraps a Store with a circuit breaker so a dead backend
// stops adding per-request latency. Trip errors surface as ordinary store
// errors, which the limiter treats as fail-open.
type BreakerStore struct {
	inner   Store
	breaker *gobreaker.CircuitBreaker
}

func NewBreakerStore(inner Store) *BreakerStore {
	return &BreakerStore{
		inner: inner,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "ratelimit-store",
			MaxRequests: 1,
			Timeout:     10 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

func (s *BreakerStore) Record(ctx context.Context, identifier string, ts time.Time, window time.Duration) (int64, time.Time, error) {
	v, err := s.breaker.Execute(func() (interface{}, error) {
		count, oldest, err := s.inner.Record(ctx, identifier, ts, window)
		if err != nil {
			return nil, err
		}
		return recordResult{count: count, oldest: oldest}, nil
	})
	if err != nil {
		return 0, time.Time{}, err
	}

	res, ok := v.(recordResult)
	if !ok {
		return 0, time.Time{}, gobreaker.ErrOpenState
	}
	return res.count, res.oldest, nil
}
