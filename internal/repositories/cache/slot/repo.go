package cacheslotrepo

import (
	"context"
	"time"

	"insightflow/internal/models"
	cacherepo "insightflow/internal/repositories/cache"
)

type repository struct {
	cache   cacherepo.Cache
	slotTTL time.Duration
}

// New returns a slot repository on top of cache. A zero slotTTL keeps slots
// until they are deleted.
func New(cache cacherepo.Cache, slotTTL time.Duration) *repository {
	return &repository{
		cache:   cache,
		slotTTL: slotTTL,
	}
}

func (r *repository) Get(ctx context.Context, key string) (string, error) {
	value, err := r.cache.Get(ctx, key).Result()
	if err != nil {
		return "", err
	}

	if value == "" {
		return "", models.ErrSlotNotFound
	}

	return value, nil
}

func (r *repository) Set(ctx context.Context, key string, value string) error {
	return r.cache.Set(ctx, key, value, r.slotTTL).Err()
}

func (r *repository) Del(ctx context.Context, keys ...string) error {
	return r.cache.Del(ctx, keys...).Err()
}
