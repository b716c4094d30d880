package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/domain/response"
	"gorm.io/gorm"
)

type ResponseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) response.Repository {
	return &ResponseRepository{
		db: db,
	}
}

func (r *ResponseRepository) Save(ctx context.Context, entity *response.Response) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *ResponseRepository) ListBySurvey(ctx context.Context, surveyID uuid.UUID) ([]response.Response, error) {
	var responses []response.Response
	err := r.db.WithContext(ctx).
		Where("survey_id = ?", surveyID).
		Order("submitted_at ASC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *ResponseRepository) CountBySurvey(ctx context.Context, surveyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&response.Response{}).
		Where("survey_id = ?", surveyID).
		Count(&count).Error
	return count, err
}

func (r *ResponseRepository) CountByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&response.Response{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	return count, err
}
