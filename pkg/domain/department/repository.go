package department

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Save(ctx context.Context, department *Department) error
	ListByCompany(ctx context.Context, companyID uuid.UUID) ([]Department, error)
}
