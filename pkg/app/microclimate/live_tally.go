package microclimate

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	draftapp "github.com/orgpulse/orgpulse/pkg/app/draft"
	"github.com/sirupsen/logrus"
)

// LiveTally aggregates the rapid reaction stream of a live microclimate
// session. Every reaction bumps an in-memory counter; persistence of the
// running tally is coalesced through the draft autosaver so a burst of
// reactions becomes a single snapshot write.
type LiveTally struct {
	mu        sync.Mutex
	autosaver *draftapp.Autosaver
	logger    *logrus.Logger
	tallies   map[uuid.UUID]map[string]int64
}

func NewLiveTally(autosaver *draftapp.Autosaver, logger *logrus.Logger) *LiveTally {
	return &LiveTally{
		autosaver: autosaver,
		logger:    logger,
		tallies:   make(map[uuid.UUID]map[string]int64),
	}
}

// React records one reaction against the session's tally draft and
// schedules a debounced snapshot save.
func (t *LiveTally) React(ctx context.Context, tallyDraftID uuid.UUID, reaction string) error {
	if reaction == "" {
		return fmt.Errorf("reaction is required")
	}

	snapshot, err := t.bump(tallyDraftID, reaction)
	if err != nil {
		return err
	}

	coordinator, err := t.autosaver.Coordinator(ctx, tallyDraftID)
	if err != nil {
		return err
	}

	coordinator.Save(snapshot)
	return nil
}

// Flush forces the current tally snapshot to persistence, bypassing the
// debounce delay. Used when a session closes.
func (t *LiveTally) Flush(ctx context.Context, tallyDraftID uuid.UUID) error {
	t.mu.Lock()
	counts, ok := t.tallies[tallyDraftID]
	if !ok {
		t.mu.Unlock()
		return nil
	}
	snapshot, err := json.Marshal(counts)
	t.mu.Unlock()
	if err != nil {
		return err
	}

	coordinator, err := t.autosaver.Coordinator(ctx, tallyDraftID)
	if err != nil {
		return err
	}

	coordinator.ForceSave(snapshot)
	return nil
}

// Counts returns a copy of the session's current tally.
func (t *LiveTally) Counts(tallyDraftID uuid.UUID) map[string]int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	counts := make(map[string]int64, len(t.tallies[tallyDraftID]))
	for reaction, n := range t.tallies[tallyDraftID] {
		counts[reaction] = n
	}
	return counts
}

func (t *LiveTally) bump(tallyDraftID uuid.UUID, reaction string) (json.RawMessage, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	counts, ok := t.tallies[tallyDraftID]
	if !ok {
		counts = make(map[string]int64)
		t.tallies[tallyDraftID] = counts
	}
	counts[reaction]++

	return json.Marshal(counts)
}
