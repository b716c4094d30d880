package draft

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/autosave"
	appdomain "github.com/orgpulse/orgpulse/pkg/domain"
	domain "github.com/orgpulse/orgpulse/pkg/domain/draft"
	"github.com/orgpulse/orgpulse/pkg/infra/prometheus"
	"github.com/sirupsen/logrus"
)

// Autosaver hands out one autosave coordinator per draft, wired to the
// repository's compare-and-save as the persistence authority. In-process
// producers of rapid edits (the microclimate live tally, bulk import jobs)
// go through it instead of hitting the repository on every edit.
type Autosaver struct {
	mu           sync.Mutex
	repo         domain.Repository
	finder       Finder
	logger       *logrus.Logger
	debounce     time.Duration
	coordinators map[uuid.UUID]*autosave.Coordinator
}

func NewAutosaver(repo domain.Repository, finder Finder, logger *logrus.Logger, debounce time.Duration) *Autosaver {
	return &Autosaver{
		repo:         repo,
		finder:       finder,
		logger:       logger,
		debounce:     debounce,
		coordinators: make(map[uuid.UUID]*autosave.Coordinator),
	}
}

// Coordinator returns the coordinator for a draft, creating it seeded with
// the draft's current stored version.
func (a *Autosaver) Coordinator(ctx context.Context, id uuid.UUID) (*autosave.Coordinator, error) {
	a.mu.Lock()
	if c, ok := a.coordinators[id]; ok {
		a.mu.Unlock()
		return c, nil
	}
	a.mu.Unlock()

	entity, err := a.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if c, ok := a.coordinators[id]; ok {
		return c, nil
	}

	c := autosave.NewCoordinator(id.String(), entity.Version, a.persistFunc(id), autosave.Config{
		DebounceInterval: a.debounce,
		OnSuccess: func(version int64) {
			prometheus.AutosaveOutcomes.WithLabelValues("saved").Inc()
			a.finder.Invalidate(context.Background(), id)
			a.logger.WithFields(logrus.Fields{
				"draft_id": id,
				"version":  version,
			}).Debug("draft autosaved")
		},
		OnError: func(err error) {
			prometheus.AutosaveOutcomes.WithLabelValues("error").Inc()
			a.logger.WithError(err).WithField("draft_id", id).Error("draft autosave failed")
		},
		OnConflict: func(authorityVersion int64) {
			prometheus.AutosaveOutcomes.WithLabelValues("conflict").Inc()
			a.logger.WithFields(logrus.Fields{
				"draft_id":          id,
				"authority_version": authorityVersion,
			}).Warn("draft autosave conflicted")
		},
	}, nil)

	a.coordinators[id] = c
	return c, nil
}

// Release closes and forgets a draft's coordinator.
func (a *Autosaver) Release(id uuid.UUID) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if c, ok := a.coordinators[id]; ok {
		c.Close()
		delete(a.coordinators, id)
	}
}

func (a *Autosaver) persistFunc(id uuid.UUID) autosave.PersistFunc {
	return func(ctx context.Context, draftID string, version int64, payload json.RawMessage) (int64, error) {
		newVersion, err := a.repo.CompareAndSave(ctx, id, version, payload)
		if err != nil {
			if conflict, ok := appdomain.AsVersionConflictError(err); ok {
				return 0, &autosave.ConflictError{AuthorityVersion: conflict.CurrentVersion}
			}
			return 0, err
		}
		return newVersion, nil
	}
}
