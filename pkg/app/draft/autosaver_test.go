package draft_test

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	draftapp "github.com/orgpulse/orgpulse/pkg/app/draft"
	"github.com/orgpulse/orgpulse/pkg/autosave"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"github.com/orgpulse/orgpulse/pkg/domain/draft"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type conflictingRepoMock struct {
	currentVersion int64
}

func (m *conflictingRepoMock) Save(ctx context.Context, d *draft.Draft) error { return nil }

func (m *conflictingRepoMock) FindByID(ctx context.Context, id uuid.UUID) (*draft.Draft, error) {
	return &draft.Draft{ID: id, Version: 1}, nil
}

func (m *conflictingRepoMock) CompareAndSave(ctx context.Context, id uuid.UUID, expectedVersion int64, payload json.RawMessage) (int64, error) {
	return 0, domain.NewVersionConflictError("draft", id, m.currentVersion, expectedVersion)
}

type noopFinder struct{}

func (noopFinder) Find(ctx context.Context, id uuid.UUID) (*draft.Draft, error) { return nil, nil }
func (noopFinder) Invalidate(ctx context.Context, id uuid.UUID)                 {}

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestAutosaver_HandsOutOneCoordinatorPerDraft(t *testing.T) {
	autosaver := draftapp.NewAutosaver(&conflictingRepoMock{}, noopFinder{}, discardLogger(), time.Hour)
	id := uuid.New()

	first, err := autosaver.Coordinator(context.Background(), id)
	require.NoError(t, err)
	second, err := autosaver.Coordinator(context.Background(), id)
	require.NoError(t, err)
	assert.Same(t, first, second)

	other, err := autosaver.Coordinator(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotSame(t, first, other)
}

func TestAutosaver_SeedsCoordinatorFromStoredVersion(t *testing.T) {
	autosaver := draftapp.NewAutosaver(&conflictingRepoMock{}, noopFinder{}, discardLogger(), time.Hour)

	c, err := autosaver.Coordinator(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.Snapshot().Version)
}

func TestAutosaver_RepositoryConflictReachesCoordinator(t *testing.T) {
	autosaver := draftapp.NewAutosaver(&conflictingRepoMock{currentVersion: 8}, noopFinder{}, discardLogger(), 10*time.Millisecond)

	c, err := autosaver.Coordinator(context.Background(), uuid.New())
	require.NoError(t, err)

	c.Save([]byte(`{"edit":1}`))

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.Snapshot().HasConflict() {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.True(t, c.Snapshot().HasConflict())

	c.ResetVersion(8)
	assert.Equal(t, autosave.StatusIdle, c.Snapshot().Status)
	assert.Equal(t, int64(8), c.Snapshot().Version)
}

func TestAutosaver_ReleaseForgetsCoordinator(t *testing.T) {
	autosaver := draftapp.NewAutosaver(&conflictingRepoMock{}, noopFinder{}, discardLogger(), time.Hour)
	id := uuid.New()

	first, err := autosaver.Coordinator(context.Background(), id)
	require.NoError(t, err)

	autosaver.Release(id)

	second, err := autosaver.Coordinator(context.Background(), id)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}
