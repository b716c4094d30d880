package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const redisKeyPattern = "ratelimit:%s"

// RedisStore keeps per-identifier windows in a redis sorted set scored by
// unix milliseconds, so the window is shared by every process pointing at
// the same redis.
type RedisStore struct {
	client       redis.UniversalClient
	uuidProvider func() uuid.UUID
}

type RedisStoreOpts struct {
	UUIDProvider func() uuid.UUID
}

func NewRedisStore(client redis.UniversalClient, opts *RedisStoreOpts) *RedisStore {
	uuidProvider := uuid.New
	if opts != nil && opts.UUIDProvider != nil {
		uuidProvider = opts.UUIDProvider
	}

	return &RedisStore{
		client:       client,
		uuidProvider: uuidProvider,
	}
}

func (s *RedisStore) Record(ctx context.Context, identifier string, ts time.Time, window time.Duration) (int64, time.Time, error) {
	key := fmt.Sprintf(redisKeyPattern, identifier)

	nowMs := ts.UnixMilli()
	windowStartMs := nowMs - window.Milliseconds()

	// Members carry a uuid so simultaneous requests with equal scores do
	// not collapse into a single sorted-set entry.
	member := fmt.Sprintf("%d:%s", nowMs, s.uuidProvider().String())

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStartMs, 10))
	pipe.ZAdd(ctx, key, &redis.Z{
		Score:  float64(nowMs),
		Member: member,
	})
	pipe.Expire(ctx, key, window)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to execute rate limit pipeline: %w", err)
	}

	count, err := s.client.ZCard(ctx, key).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to count window for %s: %w", identifier, err)
	}

	entries, err := s.client.ZRangeWithScores(ctx, key, 0, 0).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to read oldest entry for %s: %w", identifier, err)
	}

	oldest := ts
	if len(entries) > 0 {
		oldest = time.UnixMilli(int64(entries[0].Score))
	}

	return count, oldest, nil
}
