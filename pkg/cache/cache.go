// Package cache defines the stores used to replay idempotent requests.
package cache

import (
	"context"
	"time"
)

// Response is a completed request result kept under its idempotency key.
type Response struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyStore keeps responses by key for a bounded time.
// Get returns nil, nil on a miss.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*Response, error)
	Set(ctx context.Context, key string, resp *Response, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
