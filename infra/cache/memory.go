package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ebank/ledger/pkg/cache"
)

// MemoryStore is an in-process IdempotencyStore with per-entry expiry.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

type entry struct {
	resp      cache.Response
	expiresAt time.Time
}

// NewMemoryStore creates a MemoryStore and starts its sweeper.
func NewMemoryStore(sweepEvery time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if sweepEvery > 0 {
		go s.cleanup(sweepEvery)
	}
	return s
}

// Get returns a copy of the stored response, or nil when absent or expired.
func (s *MemoryStore) Get(ctx context.Context, key string) (*cache.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok || !s.now().Before(e.expiresAt) {
		return nil, nil
	}
	resp := e.resp
	resp.Body = append([]byte(nil), e.resp.Body...)
	return &resp, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, resp *cache.Response, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stored := *resp
	stored.Body = append([]byte(nil), resp.Body...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{resp: stored, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Close stops the sweeper.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *MemoryStore) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for key, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, key)
		}
	}
}

var _ cache.IdempotencyStore = (*MemoryStore)(nil)
