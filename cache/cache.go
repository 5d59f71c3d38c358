package cache

import (
	"context"
	"errors"
	"time"
)

// Cache is a best-effort byte store with per-entry TTL. Entries are immutable
// snapshots keyed by query parameters, so losing one only costs a re-fetch.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

var ErrCacheMiss = errors.New("cache miss")
