package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"github.com/orgpulse/orgpulse/pkg/domain/microclimate"
	"gorm.io/gorm"
)

type MicroclimateRepository struct {
	db *gorm.DB
}

func NewMicroclimateRepository(db *gorm.DB) microclimate.Repository {
	return &MicroclimateRepository{
		db: db,
	}
}

func (r *MicroclimateRepository) Save(ctx context.Context, entity *microclimate.Microclimate) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

func (r *MicroclimateRepository) FindByID(ctx context.Context, id uuid.UUID) (*microclimate.Microclimate, error) {
	var entity microclimate.Microclimate
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("microclimate", id)
		}
		return nil, err
	}
	return &entity, nil
}

func (r *MicroclimateRepository) CountLiveByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&microclimate.Microclimate{}).
		Where("company_id = ? AND status = ?", companyID, microclimate.StatusLive).
		Count(&count).Error
	return count, err
}
