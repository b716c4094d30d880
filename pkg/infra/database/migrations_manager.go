package database

import (
	"fmt"

	"github.com/orgpulse/orgpulse/pkg/domain/company"
	"github.com/orgpulse/orgpulse/pkg/domain/department"
	"github.com/orgpulse/orgpulse/pkg/domain/draft"
	"github.com/orgpulse/orgpulse/pkg/domain/microclimate"
	"github.com/orgpulse/orgpulse/pkg/domain/response"
	"github.com/orgpulse/orgpulse/pkg/domain/survey"
	"github.com/orgpulse/orgpulse/pkg/domain/user"
	"gorm.io/gorm"
)

type MigrationsManager struct {
	db *gorm.DB
}

func NewMigrationsManager(db *gorm.DB) *MigrationsManager {
	return &MigrationsManager{db: db}
}

// Apply migrates every domain model. AutoMigrate is additive and safe to
// run on every boot.
func (m *MigrationsManager) Apply() error {
	models := []interface{}{
		&company.Company{},
		&department.Department{},
		&user.User{},
		&survey.Survey{},
		&response.Response{},
		&draft.Draft{},
		&microclimate.Microclimate{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("auto-migrate %T: %w", model, err)
		}
	}

	return nil
}
