package company

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Save(ctx context.Context, company *Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	List(ctx context.Context) ([]Company, error)
}
