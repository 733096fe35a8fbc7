package middleware

import (
	"log/slog"
	"time"

	"github.com/ebank/ledger/pkg/cache"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/singleflight"
)

const (
	// IdempotencyKeyHeader names the client supplied key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// ReplayedHeader is set on responses served from the store.
	ReplayedHeader = "Idempotent-Replayed"
)

// Idempotency replays the stored response of a request whose
// Idempotency-Key was already handled on the same route. Concurrent requests
// with one key share a single execution. Server errors are not stored.
func Idempotency(store cache.IdempotencyStore, ttl time.Duration, logger *slog.Logger) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	var inflight singleflight.Group

	return func(c *fiber.Ctx) error {
		key := c.Get(IdempotencyKeyHeader)
		if key == "" || c.Method() != fiber.MethodPost {
			return c.Next()
		}
		scoped := c.Method() + " " + c.Path() + " " + key
		log := logger.With("idempotency_key", key, "path", c.Path())
		ctx := c.UserContext()

		handled := false
		v, err, _ := inflight.Do(scoped, func() (any, error) {
			stored, err := store.Get(ctx, scoped)
			if err != nil {
				log.Error("Idempotency lookup failed", "error", err)
			}
			if stored != nil {
				return stored, nil
			}

			handled = true
			if err := c.Next(); err != nil {
				return nil, err
			}
			resp := &cache.Response{
				Status:      c.Response().StatusCode(),
				ContentType: string(c.Response().Header.ContentType()),
				Body:        append([]byte(nil), c.Response().Body()...),
			}
			if resp.Status < fiber.StatusInternalServerError {
				if err := store.Set(ctx, scoped, resp, ttl); err != nil {
					log.Error("Idempotency store failed", "error", err)
				}
			}
			return resp, nil
		})
		if err != nil {
			return err
		}
		if handled {
			return nil
		}

		log.Info("🔁 Replaying stored response")
		resp := v.(*cache.Response)
		c.Set(ReplayedHeader, "true")
		if resp.ContentType != "" {
			c.Set(fiber.HeaderContentType, resp.ContentType)
		}
		return c.Status(resp.Status).Send(resp.Body)
	}
}
