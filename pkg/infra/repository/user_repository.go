package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"github.com/orgpulse/orgpulse/pkg/domain/user"
	"gorm.io/gorm"
)

const defaultPageSize = 20

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) Save(ctx context.Context, entity *user.User) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var entity user.User
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("user", id)
		}
		return nil, err
	}
	return &entity, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var entity user.User
	if err := r.db.WithContext(ctx).First(&entity, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

func (r *UserRepository) List(ctx context.Context, filter user.ListFilter) ([]user.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&user.User{})

	if filter.CompanyID != uuid.Nil {
		query = query.Where("company_id = ?", filter.CompanyID)
	}
	if filter.DepartmentID != uuid.Nil {
		query = query.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var users []user.User
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&user.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("user", id)
	}
	return nil
}
