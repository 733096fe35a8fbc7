// Package cache holds the memory and Redis idempotency stores.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ebank/ledger/pkg/cache"
	"github.com/redis/go-redis/v9"
)

// RedisStore implements IdempotencyStore on Redis with JSON values.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	logger *slog.Logger
}

// NewRedisStore creates a RedisStore from a redis URL such as
// redis://localhost:6379/0. Options, when given, adjust the parsed options.
func NewRedisStore(
	url, prefix string,
	logger *slog.Logger,
	opts ...func(*redis.Options),
) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	for _, o := range opts {
		o(opt)
	}
	return NewRedisStoreWithClient(redis.NewClient(opt), prefix, logger), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client redis.Cmdable, prefix string, logger *slog.Logger) *RedisStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisStore{client: client, prefix: prefix, logger: logger}
}

func (r *RedisStore) key(key string) string {
	return r.prefix + key
}

func (r *RedisStore) Get(ctx context.Context, key string) (*cache.Response, error) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		r.logger.Debug("Redis idempotency miss", "key", key)
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Redis idempotency get error", "key", key, "error", err)
		return nil, err
	}
	var resp cache.Response
	if err := json.Unmarshal(val, &resp); err != nil {
		r.logger.Error("Redis idempotency decode error", "key", key, "error", err)
		return nil, err
	}
	return &resp, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, resp *cache.Response, ttl time.Duration) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(key), data, ttl).Err(); err != nil {
		r.logger.Error("Redis idempotency set error", "key", key, "error", err)
		return err
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Close closes the underlying client when it owns a connection pool.
func (r *RedisStore) Close() error {
	if c, ok := r.client.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

var _ cache.IdempotencyStore = (*RedisStore)(nil)
