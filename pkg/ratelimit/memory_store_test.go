package ratelimit_test

import (
	"context"
	"testing"
	"time"
	"unsafe"

	"github.com/orgpulse/orgpulse/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CountsWithinWindow(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	t0 := time.UnixMilli(1_700_000_000_000)

	count, oldest, err := store.Record(context.Background(), "ip-a", t0, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, t0, oldest)

	count, oldest, err = store.Record(context.Background(), "ip-a", t0.Add(time.Second), time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Equal(t, t0, oldest)
}

func TestMemoryStore_EvictsExpiredEntries(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	t0 := time.UnixMilli(1_700_000_000_000)

	_, _, err := store.Record(context.Background(), "ip-a", t0, time.Minute)
	require.NoError(t, err)

	// An entry sitting exactly on the window boundary is already expired.
	count, oldest, err := store.Record(context.Background(), "ip-a", t0.Add(time.Minute), time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, t0.Add(time.Minute), oldest)
}

// Identifiers arriving through fiber alias fasthttp's request buffer,
// which gets recycled between requests. The store must not key its map
// on memory that can change underneath it.
func TestMemoryStore_CopiesIdentifierBeforeKeying(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	t0 := time.UnixMilli(1_700_000_000_000)

	buf := []byte("caller-a")
	volatile := unsafe.String(unsafe.SliceData(buf), len(buf))

	for i := 0; i < 3; i++ {
		_, _, err := store.Record(context.Background(), volatile, t0, time.Minute)
		require.NoError(t, err)
	}

	// Simulate the transport reusing the buffer for the next caller.
	copy(buf, "caller-b")

	count, _, err := store.Record(context.Background(), "caller-b", t0, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, _, err = store.Record(context.Background(), "caller-a", t0, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestMemoryStore_TracksIdentifiersSeparately(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	t0 := time.UnixMilli(1_700_000_000_000)

	_, _, err := store.Record(context.Background(), "ip-a", t0, time.Minute)
	require.NoError(t, err)
	count, _, err := store.Record(context.Background(), "ip-b", t0, time.Minute)
	require.NoError(t, err)

	assert.Equal(t, int64(1), count)
	assert.Equal(t, 2, store.Len())
}
