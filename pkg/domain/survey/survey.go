package survey

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"gorm.io/gorm"
)

const (
	StatusDraft  = "draft"
	StatusActive = "active"
	StatusClosed = "closed"
)

type Survey struct {
	ID          uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID           `json:"company_id" gorm:"type:uuid;index"`
	AuthorID    uuid.UUID           `json:"author_id" gorm:"type:uuid"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      string              `json:"status"`
	Questions   domain.JSONDocument `json:"questions" gorm:"type:jsonb"`
	Anonymous   bool                `json:"anonymous"`
	ClosesAt    *time.Time          `json:"closes_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func (s *Survey) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	return s.Validate()
}

func (s *Survey) BeforeUpdate(tx *gorm.DB) error {
	s.UpdatedAt = time.Now()
	return s.Validate()
}

func (s *Survey) Validate() error {
	if s.Title == "" {
		return fmt.Errorf("title is required")
	}

	if s.CompanyID == uuid.Nil {
		return fmt.Errorf("company_id is required")
	}

	if s.Status == "" {
		s.Status = StatusDraft
	}

	switch s.Status {
	case StatusDraft, StatusActive, StatusClosed:
	default:
		return fmt.Errorf("invalid status %q", s.Status)
	}

	return nil
}

func (s *Survey) TableName() string {
	return "public.surveys"
}
