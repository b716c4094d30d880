package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/orgpulse/orgpulse/pkg/domain"
	"github.com/orgpulse/orgpulse/pkg/domain/draft"
	"gorm.io/gorm"
)

type DraftRepository struct {
	db *gorm.DB
}

func NewDraftRepository(db *gorm.DB) draft.Repository {
	return &DraftRepository{
		db: db,
	}
}

func (r *DraftRepository) Save(ctx context.Context, entity *draft.Draft) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

func (r *DraftRepository) FindByID(ctx context.Context, id uuid.UUID) (*draft.Draft, error) {
	var entity draft.Draft
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("draft", id)
		}
		return nil, err
	}
	return &entity, nil
}

// CompareAndSave is the authority side of the optimistic-concurrency
// contract: the write lands only when expectedVersion still matches, and
// the version then increments by exactly one.
func (r *DraftRepository) CompareAndSave(ctx context.Context, id uuid.UUID, expectedVersion int64, payload json.RawMessage) (int64, error) {
	now := time.Now()

	result := r.db.WithContext(ctx).
		Model(&draft.Draft{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		Updates(map[string]interface{}{
			"payload":       domain.JSONDocument(payload),
			"version":       gorm.Expr("version + 1"),
			"save_count":    gorm.Expr("save_count + 1"),
			"last_saved_at": now,
			"updated_at":    now,
		})
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected == 0 {
		current, err := r.FindByID(ctx, id)
		if err != nil {
			return 0, err
		}
		return 0, domain.NewVersionConflictError("draft", id, current.Version, expectedVersion)
	}

	return expectedVersion + 1, nil
}
