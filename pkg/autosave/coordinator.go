package autosave

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

type Status string

const (
	StatusIdle     Status = "idle"
	StatusSaving   Status = "saving"
	StatusSaved    Status = "saved"
	StatusError    Status = "error"
	StatusConflict Status = "conflict"
)

// ConflictError is returned by a PersistFunc when the submitted version no
// longer matches the authority's stored version.
type ConflictError struct {
	AuthorityVersion int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("version conflict, authority is at version %d", e.AuthorityVersion)
}

// PersistFunc submits a payload stamped with the version the caller
// believes is current and returns the authority's new version. A stale
// version must surface as *ConflictError.
type PersistFunc func(ctx context.Context, draftID string, version int64, payload json.RawMessage) (int64, error)

type Config struct {
	DebounceInterval time.Duration
	OnSuccess        func(version int64)
	OnError          func(err error)
	OnConflict       func(authorityVersion int64)
}

// State is a point-in-time snapshot of a coordinator.
type State struct {
	Status      Status
	Version     int64
	SaveCount   int64
	LastSavedAt time.Time
}

func (s State) IsSaving() bool    { return s.Status == StatusSaving }
func (s State) HasError() bool    { return s.Status == StatusError }
func (s State) HasConflict() bool { return s.Status == StatusConflict }

// Coordinator batches rapid Save calls into infrequent persistence calls
// and surfaces version conflicts reported by the authority.
//
// Only one persistence call is in flight at a time. A payload saved while
// one is in flight is queued and sent as soon as the in-flight call
// resolves successfully; within a debounce window only the most recent
// payload is ever sent.
type Coordinator struct {
	mu sync.Mutex

	draftID string
	persist PersistFunc
	config  Config
	now     func() time.Time

	status      Status
	version     int64
	saveCount   int64
	lastSavedAt time.Time

	pending    json.RawMessage
	hasPending bool
	inFlight   bool

	lastAttempt     json.RawMessage
	conflictPayload json.RawMessage

	timer *time.Timer
}

type Opts struct {
	TimeProvider func() time.Time
}

func NewCoordinator(draftID string, initialVersion int64, persist PersistFunc, config Config, opts *Opts) *Coordinator {
	now := time.Now
	if opts != nil && opts.TimeProvider != nil {
		now = opts.TimeProvider
	}

	return &Coordinator{
		draftID: draftID,
		persist: persist,
		config:  config,
		now:     now,
		status:  StatusIdle,
		version: initialVersion,
	}
}

// Save records payload as the latest local edit and (re)starts the
// debounce timer. Earlier payloads queued within the same window are
// superseded, not sent. While in conflict the edit is held until the
// caller resolves via ResetVersion.
func (c *Coordinator) Save(payload json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = payload
	c.hasPending = true

	if c.status == StatusConflict {
		return
	}

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.config.DebounceInterval, c.debounceFired)
}

// ForceSave bypasses the debounce delay and attempts persistence
// immediately with the current version.
func (c *Coordinator) ForceSave(payload json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = payload
	c.hasPending = true

	if c.status == StatusConflict {
		return
	}

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.flushLocked()
}

// Retry re-attempts the payload that last resulted in error, without
// altering the version. It is a no-op outside the error state.
func (c *Coordinator) Retry() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status != StatusError || c.inFlight {
		return
	}

	c.status = StatusSaving
	c.inFlight = true
	go c.doPersist(c.lastAttempt, c.version)
}

// ResetVersion accepts the authority's version as the new local baseline
// and leaves the conflict state. The conflicting unsent payload is
// discarded; the caller must re-submit if the edit should still apply.
func (c *Coordinator) ResetVersion(v int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.version = v
	c.status = StatusIdle
	c.conflictPayload = nil
	c.pending = nil
	c.hasPending = false
}

// ConflictPayload returns the unsent payload preserved when the last save
// conflicted, so callers can show the user what was not applied.
func (c *Coordinator) ConflictPayload() json.RawMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conflictPayload
}

func (c *Coordinator) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State{
		Status:      c.status,
		Version:     c.version,
		SaveCount:   c.saveCount,
		LastSavedAt: c.lastSavedAt,
	}
}

// Close stops the debounce timer. An in-flight save still resolves.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Coordinator) debounceFired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushLocked()
}

// flushLocked issues the queued payload unless a save is already in
// flight, in which case the payload stays queued and is sent when the
// in-flight call resolves.
func (c *Coordinator) flushLocked() {
	if c.inFlight || !c.hasPending || c.status == StatusConflict {
		return
	}

	payload := c.pending
	c.pending = nil
	c.hasPending = false
	c.inFlight = true
	c.status = StatusSaving

	go c.doPersist(payload, c.version)
}

func (c *Coordinator) doPersist(payload json.RawMessage, version int64) {
	newVersion, err := c.callPersist(payload, version)

	c.mu.Lock()
	c.inFlight = false

	var notify func()
	switch {
	case err == nil:
		c.version = newVersion
		c.saveCount++
		c.lastSavedAt = c.now()
		c.status = StatusSaved
		if cb := c.config.OnSuccess; cb != nil {
			v := newVersion
			notify = func() { cb(v) }
		}
		c.flushLocked()

	default:
		if conflict, ok := asConflict(err); ok {
			c.status = StatusConflict
			c.conflictPayload = payload
			if cb := c.config.OnConflict; cb != nil {
				v := conflict.AuthorityVersion
				notify = func() { cb(v) }
			}
		} else {
			c.status = StatusError
			c.lastAttempt = payload
			if cb := c.config.OnError; cb != nil {
				e := err
				notify = func() { cb(e) }
			}
		}
	}
	c.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// callPersist shields the state machine from panicking persist functions.
func (c *Coordinator) callPersist(payload json.RawMessage, version int64) (newVersion int64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("persist panicked: %v", r)
		}
	}()
	return c.persist(context.Background(), c.draftID, version, payload)
}

func asConflict(err error) (*ConflictError, bool) {
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		return conflict, true
	}
	return nil, false
}
