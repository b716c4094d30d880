package autosave_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/orgpulse/orgpulse/pkg/autosave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type persistCall struct {
	version int64
	payload string
}

// persistRecorder is a controllable PersistFunc for driving the state
// machine from tests.
type persistRecorder struct {
	mu    sync.Mutex
	calls []persistCall
	errs  []error
	gate  chan struct{}
}

func (r *persistRecorder) fn(ctx context.Context, draftID string, version int64, payload json.RawMessage) (int64, error) {
	if r.gate != nil {
		<-r.gate
	}

	r.mu.Lock()
	r.calls = append(r.calls, persistCall{version: version, payload: string(payload)})
	var err error
	if len(r.errs) > 0 {
		err = r.errs[0]
		r.errs = r.errs[1:]
	}
	r.mu.Unlock()

	if err != nil {
		return 0, err
	}
	return version + 1, nil
}

func (r *persistRecorder) snapshot() []persistCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]persistCall(nil), r.calls...)
}

func waitSignal(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for callback")
	}
}

func TestCoordinator_DebouncePersistsOnlyLatestPayload(t *testing.T) {
	recorder := &persistRecorder{}
	saved := make(chan struct{}, 1)

	c := autosave.NewCoordinator("d1", 1, recorder.fn, autosave.Config{
		DebounceInterval: 20 * time.Millisecond,
		OnSuccess:        func(int64) { saved <- struct{}{} },
	}, nil)
	defer c.Close()

	c.Save([]byte(`{"step":1}`))
	c.Save([]byte(`{"step":2}`))
	c.Save([]byte(`{"step":3}`))

	waitSignal(t, saved)

	calls := recorder.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, int64(1), calls[0].version)
	assert.Equal(t, `{"step":3}`, calls[0].payload)

	state := c.Snapshot()
	assert.Equal(t, autosave.StatusSaved, state.Status)
	assert.Equal(t, int64(2), state.Version)
	assert.Equal(t, int64(1), state.SaveCount)
	assert.False(t, state.LastSavedAt.IsZero())
}

func TestCoordinator_ForceSaveBypassesDebounce(t *testing.T) {
	recorder := &persistRecorder{}
	saved := make(chan struct{}, 1)

	c := autosave.NewCoordinator("d1", 1, recorder.fn, autosave.Config{
		DebounceInterval: time.Hour,
		OnSuccess:        func(int64) { saved <- struct{}{} },
	}, nil)
	defer c.Close()

	c.ForceSave([]byte(`{"final":true}`))

	waitSignal(t, saved)
	require.Len(t, recorder.snapshot(), 1)
}

func TestCoordinator_QueuesLatestPayloadWhileInFlight(t *testing.T) {
	gate := make(chan struct{})
	recorder := &persistRecorder{gate: gate}
	saved := make(chan struct{}, 2)

	c := autosave.NewCoordinator("d1", 1, recorder.fn, autosave.Config{
		DebounceInterval: 10 * time.Millisecond,
		OnSuccess:        func(int64) { saved <- struct{}{} },
	}, nil)
	defer c.Close()

	c.ForceSave([]byte(`{"step":1}`))

	// Queue edits behind the in-flight save; only the newest survives.
	c.Save([]byte(`{"step":2}`))
	c.Save([]byte(`{"step":3}`))
	time.Sleep(50 * time.Millisecond)

	gate <- struct{}{}
	waitSignal(t, saved)
	gate <- struct{}{}
	waitSignal(t, saved)

	calls := recorder.snapshot()
	require.Len(t, calls, 2)
	assert.Equal(t, persistCall{version: 1, payload: `{"step":1}`}, calls[0])
	assert.Equal(t, persistCall{version: 2, payload: `{"step":3}`}, calls[1])
}

func TestCoordinator_ConflictHoldsPayloadUntilReset(t *testing.T) {
	recorder := &persistRecorder{errs: []error{&autosave.ConflictError{AuthorityVersion: 7}}}
	conflicted := make(chan struct{}, 1)
	var authorityVersion int64

	c := autosave.NewCoordinator("d1", 3, recorder.fn, autosave.Config{
		DebounceInterval: 10 * time.Millisecond,
		OnConflict: func(v int64) {
			authorityVersion = v
			conflicted <- struct{}{}
		},
	}, nil)
	defer c.Close()

	c.Save([]byte(`{"mine":true}`))
	waitSignal(t, conflicted)

	assert.Equal(t, int64(7), authorityVersion)
	assert.True(t, c.Snapshot().HasConflict())
	assert.Equal(t, `{"mine":true}`, string(c.ConflictPayload()))

	// Saves while conflicted are held, not sent.
	c.Save([]byte(`{"more":true}`))
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, recorder.snapshot(), 1)

	c.ResetVersion(7)

	state := c.Snapshot()
	assert.Equal(t, autosave.StatusIdle, state.Status)
	assert.Equal(t, int64(7), state.Version)
	assert.Nil(t, c.ConflictPayload())

	// A fresh save after reset goes out with the accepted version.
	saved := make(chan struct{}, 1)
	recorder2 := &persistRecorder{}
	c2 := autosave.NewCoordinator("d1", 3, recorder2.fn, autosave.Config{
		DebounceInterval: 10 * time.Millisecond,
		OnSuccess:        func(int64) { saved <- struct{}{} },
	}, nil)
	defer c2.Close()
	c2.ResetVersion(7)
	c2.Save([]byte(`{"rebased":true}`))
	waitSignal(t, saved)
	calls := recorder2.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, int64(7), calls[0].version)
}

func TestCoordinator_RetryReusesPayloadAndVersion(t *testing.T) {
	recorder := &persistRecorder{errs: []error{errors.New("network blip")}}
	failed := make(chan struct{}, 1)
	saved := make(chan struct{}, 1)

	c := autosave.NewCoordinator("d1", 4, recorder.fn, autosave.Config{
		DebounceInterval: 10 * time.Millisecond,
		OnSuccess:        func(int64) { saved <- struct{}{} },
		OnError:          func(error) { failed <- struct{}{} },
	}, nil)
	defer c.Close()

	c.Save([]byte(`{"attempt":1}`))
	waitSignal(t, failed)
	assert.True(t, c.Snapshot().HasError())

	c.Retry()
	waitSignal(t, saved)

	calls := recorder.snapshot()
	require.Len(t, calls, 2)
	assert.Equal(t, calls[0], calls[1])

	state := c.Snapshot()
	assert.Equal(t, autosave.StatusSaved, state.Status)
	assert.Equal(t, int64(5), state.Version)
}

// A fresh edit after a failed save supersedes the failed payload: the
// debounce issues the newer content instead of waiting for an explicit
// Retry of stale data.
func TestCoordinator_NewEditAfterErrorSupersedesFailedPayload(t *testing.T) {
	recorder := &persistRecorder{errs: []error{errors.New("network blip")}}
	failed := make(chan struct{}, 1)
	saved := make(chan struct{}, 1)

	c := autosave.NewCoordinator("d1", 1, recorder.fn, autosave.Config{
		DebounceInterval: 10 * time.Millisecond,
		OnSuccess:        func(int64) { saved <- struct{}{} },
		OnError:          func(error) { failed <- struct{}{} },
	}, nil)
	defer c.Close()

	c.Save([]byte(`{"rev":"a"}`))
	waitSignal(t, failed)
	require.True(t, c.Snapshot().HasError())

	c.Save([]byte(`{"rev":"b"}`))
	waitSignal(t, saved)

	calls := recorder.snapshot()
	require.Len(t, calls, 2)
	assert.Equal(t, `{"rev":"b"}`, calls[1].payload)
	assert.Equal(t, int64(1), calls[1].version)

	state := c.Snapshot()
	assert.Equal(t, autosave.StatusSaved, state.Status)
	assert.Equal(t, int64(2), state.Version)
}

func TestCoordinator_RetryIsNoOpOutsideErrorState(t *testing.T) {
	recorder := &persistRecorder{}

	c := autosave.NewCoordinator("d1", 1, recorder.fn, autosave.Config{
		DebounceInterval: 10 * time.Millisecond,
	}, nil)
	defer c.Close()

	c.Retry()
	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, recorder.snapshot())
}

func TestCoordinator_PanickingPersistBecomesError(t *testing.T) {
	failed := make(chan error, 1)

	c := autosave.NewCoordinator("d1", 1,
		func(ctx context.Context, draftID string, version int64, payload json.RawMessage) (int64, error) {
			panic("boom")
		},
		autosave.Config{
			DebounceInterval: 10 * time.Millisecond,
			OnError:          func(err error) { failed <- err },
		}, nil)
	defer c.Close()

	assert.NotPanics(t, func() {
		c.Save([]byte(`{}`))
	})

	select {
	case err := <-failed:
		assert.Contains(t, err.Error(), "persist panicked")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for error callback")
	}

	assert.True(t, c.Snapshot().HasError())
}

func TestCoordinator_CloseStopsPendingDebounce(t *testing.T) {
	recorder := &persistRecorder{}

	c := autosave.NewCoordinator("d1", 1, recorder.fn, autosave.Config{
		DebounceInterval: 20 * time.Millisecond,
	}, nil)

	c.Save([]byte(`{"abandoned":true}`))
	c.Close()

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, recorder.snapshot())
}
