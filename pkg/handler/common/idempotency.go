package common

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ebank/ledger/pkg/eventbus"
	"golang.org/x/sync/singleflight"
)

// minPruneSize is the number of remembered keys below which expired entries
// are left in place.
const minPruneSize = 1024

// EventKey scopes the id of an identified event to one handler, so two
// handlers subscribed to the same event are deduplicated independently.
// Events without an id get an empty key and are never deduplicated.
func EventKey(handlerName string, e eventbus.Event) string {
	id, ok := e.(eventbus.Identified)
	if !ok || id.EventID() == "" {
		return ""
	}
	return handlerName + ":" + id.EventID()
}

// Deduper remembers, for a bounded window, which event keys were applied
// successfully.
type Deduper struct {
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	applied   map[string]time.Time
	nextPrune int

	inflight singleflight.Group
}

// NewDeduper creates a Deduper that forgets a key window after it was applied.
// A non-positive window keeps keys forever.
func NewDeduper(window time.Duration) *Deduper {
	return &Deduper{
		window:    window,
		now:       time.Now,
		applied:   make(map[string]time.Time),
		nextPrune: minPruneSize,
	}
}

// Applied reports whether key was applied within the window.
func (d *Deduper) Applied(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	at, ok := d.applied[key]
	if !ok {
		return false
	}
	if d.expired(at) {
		delete(d.applied, key)
		return false
	}
	return true
}

// Forget drops key so the next delivery is applied again.
func (d *Deduper) Forget(key string) {
	d.mu.Lock()
	delete(d.applied, key)
	d.mu.Unlock()
}

// Len returns the number of remembered keys, expired or not.
func (d *Deduper) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.applied)
}

func (d *Deduper) markApplied(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.applied[key] = d.now()
	if len(d.applied) < d.nextPrune {
		return
	}
	for k, at := range d.applied {
		if d.expired(at) {
			delete(d.applied, k)
		}
	}
	d.nextPrune = max(2*len(d.applied), minPruneSize)
}

func (d *Deduper) expired(at time.Time) bool {
	return d.window > 0 && d.now().Sub(at) >= d.window
}

// Once wraps handler so that a redelivered event is applied at most once per
// window. Concurrent deliveries of one event share a single execution. A
// failed execution is not remembered, so the next delivery retries it.
func Once(
	handlerName string,
	handler eventbus.HandlerFunc,
	d *Deduper,
	logger *slog.Logger,
) eventbus.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, e eventbus.Event) error {
		key := EventKey(handlerName, e)
		if key == "" {
			return handler(ctx, e)
		}
		log := logger.With("handler", handlerName, "event_type", e.Type(), "event_key", key)

		if d.Applied(key) {
			log.Info("🔁 [SKIP] Event already applied")
			return nil
		}
		_, err, shared := d.inflight.Do(key, func() (any, error) {
			if d.Applied(key) {
				return nil, nil
			}
			if err := handler(ctx, e); err != nil {
				return nil, err
			}
			d.markApplied(key)
			return nil, nil
		})
		if err != nil {
			log.Error("❌ [ERROR] Handler failed", "error", err, "shared", shared)
			return err
		}
		return nil
	}
}
