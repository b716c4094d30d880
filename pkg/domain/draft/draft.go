package draft

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"gorm.io/gorm"
)

// Draft is the unit of in-progress, autosaved user input. Version is the
// optimistic-concurrency stamp: writes are accepted only when the submitted
// version matches the stored one, then Version increments by exactly one.
type Draft struct {
	ID          uuid.UUID           `json:"id" gorm:"type:uuid;primaryKey"`
	SurveyID    *uuid.UUID          `json:"survey_id,omitempty" gorm:"type:uuid;index"`
	CompanyID   uuid.UUID           `json:"company_id" gorm:"type:uuid;index"`
	AuthorID    uuid.UUID           `json:"author_id" gorm:"type:uuid;index"`
	Kind        string              `json:"kind"`
	Version     int64               `json:"version"`
	Payload     domain.JSONDocument `json:"payload" gorm:"type:jsonb"`
	SaveCount   int64               `json:"save_count"`
	LastSavedAt *time.Time          `json:"last_saved_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

const (
	KindSurvey       = "survey"
	KindMicroclimate = "microclimate"
)

func (d *Draft) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}

	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now

	if d.Version == 0 {
		d.Version = 1
	}

	return d.Validate()
}

func (d *Draft) BeforeUpdate(tx *gorm.DB) error {
	d.UpdatedAt = time.Now()
	return nil
}

func (d *Draft) Validate() error {
	if d.CompanyID == uuid.Nil {
		return fmt.Errorf("company_id is required")
	}

	if d.Kind == "" {
		d.Kind = KindSurvey
	}

	switch d.Kind {
	case KindSurvey, KindMicroclimate:
	default:
		return fmt.Errorf("invalid kind %q", d.Kind)
	}

	return nil
}

func (d *Draft) TableName() string {
	return "public.drafts"
}
