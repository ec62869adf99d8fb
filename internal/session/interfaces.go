package session

import "context"

// SlotRepository is the durable key/value storage behind a Store.
// Get returns models.ErrSlotNotFound for a key that was never set or was deleted.
type SlotRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Del(ctx context.Context, keys ...string) error
}
