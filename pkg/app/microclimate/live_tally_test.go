package microclimate_test

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	draftapp "github.com/orgpulse/orgpulse/pkg/app/draft"
	microclimateapp "github.com/orgpulse/orgpulse/pkg/app/microclimate"
	"github.com/orgpulse/orgpulse/pkg/domain/draft"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tallyDraftRepoMock struct {
	mu       sync.Mutex
	version  int64
	payloads []string
}

func (m *tallyDraftRepoMock) Save(ctx context.Context, d *draft.Draft) error { return nil }

func (m *tallyDraftRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*draft.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &draft.Draft{ID: id, Version: m.version, Kind: draft.KindMicroclimate}, nil
}

func (m *tallyDraftRepoMock) CompareAndSave(ctx context.Context, id uuid.UUID, expectedVersion int64, payload json.RawMessage) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.version = expectedVersion + 1
	m.payloads = append(m.payloads, string(payload))
	return m.version, nil
}

func (m *tallyDraftRepoMock) saved() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.payloads...)
}

type tallyFinderMock struct{}

func (tallyFinderMock) Find(ctx context.Context, id uuid.UUID) (*draft.Draft, error) { return nil, nil }
func (tallyFinderMock) Invalidate(ctx context.Context, id uuid.UUID)                 {}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func waitForSaves(t *testing.T, repo *tallyDraftRepoMock, n int) []string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if saved := repo.saved(); len(saved) >= n {
			return saved
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d saves, got %d", n, len(repo.saved()))
	return nil
}

func TestLiveTally_ReactionBurstCoalescesIntoOneSnapshot(t *testing.T) {
	repo := &tallyDraftRepoMock{version: 1}
	autosaver := draftapp.NewAutosaver(repo, tallyFinderMock{}, quietLogger(), 20*time.Millisecond)
	tally := microclimateapp.NewLiveTally(autosaver, quietLogger())
	tallyID := uuid.New()

	require.NoError(t, tally.React(context.Background(), tallyID, "up"))
	require.NoError(t, tally.React(context.Background(), tallyID, "up"))
	require.NoError(t, tally.React(context.Background(), tallyID, "meh"))

	saved := waitForSaves(t, repo, 1)
	assert.JSONEq(t, `{"up":2,"meh":1}`, saved[len(saved)-1])

	counts := tally.Counts(tallyID)
	assert.Equal(t, int64(2), counts["up"])
	assert.Equal(t, int64(1), counts["meh"])
}

func TestLiveTally_FlushPersistsImmediately(t *testing.T) {
	repo := &tallyDraftRepoMock{version: 1}
	autosaver := draftapp.NewAutosaver(repo, tallyFinderMock{}, quietLogger(), time.Hour)
	tally := microclimateapp.NewLiveTally(autosaver, quietLogger())
	tallyID := uuid.New()

	require.NoError(t, tally.React(context.Background(), tallyID, "up"))
	require.NoError(t, tally.Flush(context.Background(), tallyID))

	saved := waitForSaves(t, repo, 1)
	assert.JSONEq(t, `{"up":1}`, saved[0])
}

func TestLiveTally_RejectsEmptyReaction(t *testing.T) {
	repo := &tallyDraftRepoMock{version: 1}
	autosaver := draftapp.NewAutosaver(repo, tallyFinderMock{}, quietLogger(), time.Hour)
	tally := microclimateapp.NewLiveTally(autosaver, quietLogger())

	assert.Error(t, tally.React(context.Background(), uuid.New(), ""))
}

func TestLiveTally_FlushWithoutReactionsIsNoOp(t *testing.T) {
	repo := &tallyDraftRepoMock{version: 1}
	autosaver := draftapp.NewAutosaver(repo, tallyFinderMock{}, quietLogger(), time.Hour)
	tally := microclimateapp.NewLiveTally(autosaver, quietLogger())

	require.NoError(t, tally.Flush(context.Background(), uuid.New()))
	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, repo.saved())
}
