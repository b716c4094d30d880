package department

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Department struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `json:"company_id" gorm:"type:uuid;index"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Department) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}

	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now

	return d.Validate()
}

func (d *Department) BeforeUpdate(tx *gorm.DB) error {
	d.UpdatedAt = time.Now()
	return d.Validate()
}

func (d *Department) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("name is required")
	}

	if d.CompanyID == uuid.Nil {
		return fmt.Errorf("company_id is required")
	}

	return nil
}

func (d *Department) TableName() string {
	return "public.departments"
}
