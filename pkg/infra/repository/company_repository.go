package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"github.com/orgpulse/orgpulse/pkg/domain/company"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) company.Repository {
	return &CompanyRepository{
		db: db,
	}
}

func (r *CompanyRepository) Save(ctx context.Context, entity *company.Company) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

func (r *CompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	var entity company.Company
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("company", id)
		}
		return nil, err
	}
	return &entity, nil
}

func (r *CompanyRepository) List(ctx context.Context) ([]company.Company, error) {
	var companies []company.Company
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}
