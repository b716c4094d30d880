package company

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex"`
	Sector    string    `json:"sector"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	return c.Validate()
}

func (c *Company) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return c.Validate()
}

func (c *Company) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}

	if c.Status == "" {
		c.Status = "active"
	}

	return nil
}

func (c *Company) TableName() string {
	return "public.companies"
}
