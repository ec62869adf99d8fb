// Package cacherepo describes the key/value cache the redis session slot
// backend is built on.
package cacherepo

import (
	"context"
	"time"
)

// Cache stores string values under keys. A missing key is not an error:
// Get resolves it to the empty string.
type Cache interface {
	Get(ctx context.Context, key string) CacheResponse[string]
	Set(ctx context.Context, key string, value any, expiration time.Duration) CacheResponse[string]
	Del(ctx context.Context, keys ...string) CacheResponse[int64]
}

type CacheResponse[T any] interface {
	Err() error
	Result() (T, error)
}
