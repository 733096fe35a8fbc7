package cache

import (
	"context"
	"testing"
	"time"

	"github.com/ebank/ledger/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k1", &cache.Response{Status: 201, ContentType: "application/json", Body: []byte(`{"a":1}`)}, time.Minute))

	got, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 201, got.Status)
	assert.JSONEq(t, `{"a":1}`, string(got.Body))

	got.Body[0] = 'x'
	again, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(again.Body))
}

func TestMemoryStore_MissAndExpiry(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	got, err := s.Get(ctx, "absent")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Set(ctx, "k", &cache.Response{Status: 200}, time.Second))
	now = now.Add(2 * time.Second)
	got, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)

	s.sweep()
	assert.Empty(t, s.entries)
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore(0)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "k", &cache.Response{Status: 200}, time.Minute))
	require.NoError(t, s.Delete(ctx, "k"))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	defer s.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Set(ctx, "k", &cache.Response{}, time.Minute), context.Canceled)
	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	s.Close()
}
