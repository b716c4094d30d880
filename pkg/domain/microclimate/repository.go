package microclimate

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Save(ctx context.Context, microclimate *Microclimate) error
	FindByID(ctx context.Context, id uuid.UUID) (*Microclimate, error)
	CountLiveByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
}
