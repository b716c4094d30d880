package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"github.com/orgpulse/orgpulse/pkg/domain/survey"
	"gorm.io/gorm"
)

type SurveyRepository struct {
	db *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) survey.Repository {
	return &SurveyRepository{
		db: db,
	}
}

func (r *SurveyRepository) Save(ctx context.Context, entity *survey.Survey) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

func (r *SurveyRepository) FindByID(ctx context.Context, id uuid.UUID) (*survey.Survey, error) {
	var entity survey.Survey
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("survey", id)
		}
		return nil, err
	}
	return &entity, nil
}

func (r *SurveyRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]survey.Survey, error) {
	var surveys []survey.Survey
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&surveys).Error
	if err != nil {
		return nil, err
	}
	return surveys, nil
}

func (r *SurveyRepository) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&survey.Survey{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	return count, err
}
