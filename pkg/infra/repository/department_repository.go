package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/domain/department"
	"gorm.io/gorm"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) department.Repository {
	return &DepartmentRepository{
		db: db,
	}
}

func (r *DepartmentRepository) Save(ctx context.Context, entity *department.Department) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

func (r *DepartmentRepository) ListByCompany(ctx context.Context, companyID uuid.UUID) ([]department.Department, error) {
	var departments []department.Department
	query := r.db.WithContext(ctx).Order("name ASC")
	if companyID != uuid.Nil {
		query = query.Where("company_id = ?", companyID)
	}
	if err := query.Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}
