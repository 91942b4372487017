package gateway

import (
	"context"
	"time"
)

// CachedResponse is what we replay for a repeated Idempotency-Key.
type CachedResponse struct {
	StatusCode int
	Body       []byte
	Headers    map[string][]string
}

type IdempotencyRepository interface {
	// Get returns the cached response, or nil on a cache miss.
	Get(ctx context.Context, key string) (*CachedResponse, error)

	// Save stores the response with a TTL.
	Save(ctx context.Context, key string, response CachedResponse, ttl time.Duration) error
}
