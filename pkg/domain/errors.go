package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrInvalidRole        = errors.New("invalid role, must be 'super_admin', 'company_admin' or 'employee'")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyExists = errors.New("email already registered")
)

type notFoundError struct {
	EntityType string
	ID         uuid.UUID
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s with ID '%s' not found", e.EntityType, e.ID.String())
}

func NewNotFoundError(entityType string, id uuid.UUID) error {
	return &notFoundError{
		EntityType: entityType,
		ID:         id,
	}
}

func IsNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var notFoundError *notFoundError
	return errors.As(err, &notFoundError)
}

// VersionConflictError is returned by compare-and-swap writes when the
// submitted version no longer matches the stored one. CurrentVersion
// carries the authority's version so callers can rebase.
type VersionConflictError struct {
	EntityType     string
	ID             uuid.UUID
	CurrentVersion int64
	AttemptVersion int64
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%s '%s' version conflict: submitted %d, current %d",
		e.EntityType, e.ID.String(), e.AttemptVersion, e.CurrentVersion)
}

func NewVersionConflictError(entityType string, id uuid.UUID, current, attempt int64) error {
	return &VersionConflictError{
		EntityType:     entityType,
		ID:             id,
		CurrentVersion: current,
		AttemptVersion: attempt,
	}
}

func AsVersionConflictError(err error) (*VersionConflictError, bool) {
	var conflictError *VersionConflictError
	if errors.As(err, &conflictError) {
		return conflictError, true
	}
	return nil, false
}
