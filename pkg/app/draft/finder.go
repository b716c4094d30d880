package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	domain "github.com/orgpulse/orgpulse/pkg/domain/draft"
	"github.com/orgpulse/orgpulse/pkg/infra/cache"
	"github.com/sirupsen/logrus"
)

const (
	draftKeyPattern = "draft:%s"
	draftCacheTTL   = 5 * time.Minute
)

type Finder interface {
	Find(ctx context.Context, id uuid.UUID) (*domain.Draft, error)
	Invalidate(ctx context.Context, id uuid.UUID)
}

type finder struct {
	repo   domain.Repository
	cache  *cache.Cache
	logger *logrus.Logger
}

func NewFinder(repository domain.Repository, c *cache.Cache, logger *logrus.Logger) Finder {
	return &finder{
		repo:   repository,
		cache:  c,
		logger: logger,
	}
}

func (f *finder) Find(ctx context.Context, id uuid.UUID) (*domain.Draft, error) {
	key := fmt.Sprintf(draftKeyPattern, id.String())

	if cached, err := f.cache.Get(ctx, key); err == nil {
		var entity domain.Draft
		if err := json.Unmarshal([]byte(cached), &entity); err == nil {
			return &entity, nil
		}
		f.logger.WithField("draft_id", id).Warn("discarding unreadable cached draft")
	}

	entity, err := f.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(entity); err == nil {
		if err := f.cache.Set(ctx, key, string(data), draftCacheTTL); err != nil {
			f.logger.WithError(err).Debug("failed to cache draft")
		}
	}

	return entity, nil
}

func (f *finder) Invalidate(ctx context.Context, id uuid.UUID) {
	key := fmt.Sprintf(draftKeyPattern, id.String())
	if err := f.cache.Delete(ctx, key); err != nil {
		f.logger.WithError(err).Debug("failed to invalidate cached draft")
	}
}
