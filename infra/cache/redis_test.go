package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/ebank/ledger/pkg/cache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis keeps values in a map and implements only the commands RedisStore uses.
type fakeRedis struct {
	redis.Cmdable
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = string(value.([]byte))
	f.ttls[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(f.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRedisStore_RoundTripUsesPrefix(t *testing.T) {
	fake := newFakeRedis()
	s := NewRedisStoreWithClient(fake, "idem:", quietLogger())
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "abc", &cache.Response{Status: 201, Body: []byte("ok")}, time.Hour))
	assert.Contains(t, fake.data, "idem:abc")
	assert.Equal(t, time.Hour, fake.ttls["idem:abc"])

	got, err := s.Get(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 201, got.Status)
	assert.Equal(t, "ok", string(got.Body))

	require.NoError(t, s.Delete(ctx, "abc"))
	assert.NotContains(t, fake.data, "idem:abc")
}

func TestRedisStore_MissIsNotAnError(t *testing.T) {
	s := NewRedisStoreWithClient(newFakeRedis(), "idem:", quietLogger())
	got, err := s.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_PropagatesErrors(t *testing.T) {
	fake := newFakeRedis()
	fake.err = errors.New("connection refused")
	s := NewRedisStoreWithClient(fake, "idem:", quietLogger())

	_, err := s.Get(context.Background(), "k")
	assert.EqualError(t, err, "connection refused")
	assert.Error(t, s.Set(context.Background(), "k", &cache.Response{}, time.Minute))
}

func TestRedisStore_CorruptValue(t *testing.T) {
	fake := newFakeRedis()
	fake.data["idem:k"] = "not json"
	s := NewRedisStoreWithClient(fake, "idem:", quietLogger())
	_, err := s.Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestNewRedisStore_BadURL(t *testing.T) {
	_, err := NewRedisStore("://bad", "p:", nil)
	assert.Error(t, err)
}

func TestRedisStore_CloseWithoutPool(t *testing.T) {
	s := NewRedisStoreWithClient(newFakeRedis(), "idem:", quietLogger())
	assert.NoError(t, s.Close())
}
