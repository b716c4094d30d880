package microclimate

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusLive   = "live"
	StatusClosed = "closed"
)

// Microclimate is a short-lived pulse session gathering rapid reactions.
type Microclimate struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `json:"company_id" gorm:"type:uuid;index"`
	HostID    uuid.UUID `json:"host_id" gorm:"type:uuid"`
	Question  string    `json:"question"`
	Status    string    `json:"status"`
	TallyID   uuid.UUID `json:"tally_id" gorm:"type:uuid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Microclimate) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	return m.Validate()
}

func (m *Microclimate) BeforeUpdate(tx *gorm.DB) error {
	m.UpdatedAt = time.Now()
	return m.Validate()
}

func (m *Microclimate) Validate() error {
	if m.Question == "" {
		return fmt.Errorf("question is required")
	}

	if m.CompanyID == uuid.Nil {
		return fmt.Errorf("company_id is required")
	}

	if m.Status == "" {
		m.Status = StatusLive
	}

	switch m.Status {
	case StatusLive, StatusClosed:
	default:
		return fmt.Errorf("invalid status %q", m.Status)
	}

	return nil
}

func (m *Microclimate) TableName() string {
	return "public.microclimates"
}
