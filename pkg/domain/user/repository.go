package user

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	CompanyID    uuid.UUID
	DepartmentID uuid.UUID
	Role         string
	Search       string
	Page         int
	Limit        int
}

type Repository interface {
	Save(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, filter ListFilter) ([]User, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
