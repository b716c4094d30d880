package draft

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
)

type Repository interface {
	Save(ctx context.Context, draft *Draft) error
	FindByID(ctx context.Context, id uuid.UUID) (*Draft, error)

	// CompareAndSave persists payload iff expectedVersion matches the
	// stored version, returning the incremented version. A stale version
	// yields a *domain.VersionConflictError carrying the current one.
	CompareAndSave(ctx context.Context, id uuid.UUID, expectedVersion int64, payload json.RawMessage) (int64, error)
}
