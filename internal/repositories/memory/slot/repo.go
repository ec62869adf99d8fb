package memoryslotrepo

import (
	"context"
	"sync"

	"insightflow/internal/models"
)

type repository struct {
	mu    sync.RWMutex
	slots map[string]string
}

func New() *repository {
	return &repository{slots: make(map[string]string)}
}

func (r *repository) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.slots[key]
	if !ok {
		return "", models.ErrSlotNotFound
	}

	return value, nil
}

func (r *repository) Set(_ context.Context, key string, value string) error {
	r.mu.Lock()
	r.slots[key] = value
	r.mu.Unlock()
	return nil
}

func (r *repository) Del(_ context.Context, keys ...string) error {
	r.mu.Lock()
	for _, key := range keys {
		delete(r.slots, key)
	}
	r.mu.Unlock()
	return nil
}
