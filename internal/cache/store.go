package cache

import (
	"context"
	"time"
)

// Store holds raw payloads with an expiry.
type Store interface {
	// Get reports ok=false on a miss or an expired entry.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
