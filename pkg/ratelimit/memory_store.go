package ratelimit

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps timestamp lists per identifier in process-local
// memory. State is not shared across processes and does not survive
// restarts. Eviction is lazy, on the next Record for the same identifier.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string][]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string][]int64),
	}
}

func (s *MemoryStore) Record(ctx context.Context, identifier string, ts time.Time, window time.Duration) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	nowMs := ts.UnixMilli()
	windowStartMs := nowMs - window.Milliseconds()

	timestamps, tracked := s.entries[identifier]

	// Timestamps are appended in order, so the kept suffix starts at the
	// first entry strictly inside the window.
	keepFrom := 0
	for keepFrom < len(timestamps) && timestamps[keepFrom] <= windowStartMs {
		keepFrom++
	}
	timestamps = append(timestamps[keepFrom:], nowMs)

	// The identifier may alias a transport buffer that gets reused after
	// the request, so the first insert stores its own copy of the key.
	if !tracked {
		identifier = strings.Clone(identifier)
	}
	s.entries[identifier] = timestamps

	oldest := time.UnixMilli(timestamps[0])
	return int64(len(timestamps)), oldest, nil
}

// Len reports the number of tracked identifiers.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
