package survey

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Save(ctx context.Context, survey *Survey) error
	FindByID(ctx context.Context, id uuid.UUID) (*Survey, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]Survey, error)
	CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
}
