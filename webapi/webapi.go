// Package webapi provides the HTTP API of the account ledger.
// It is organized into sub-packages:
// - account: account, operation and transfer endpoints
// - customer: customer management endpoints
// - middleware: JWT scopes and Idempotency-Key replay
// - common: response envelope and problem details
package webapi

import (
	"errors"
	"strings"
	"time"

	"github.com/ebank/ledger/pkg/app"
	accountweb "github.com/ebank/ledger/webapi/account"
	"github.com/ebank/ledger/webapi/common"
	customerweb "github.com/ebank/ledger/webapi/customer"
	"github.com/ebank/ledger/webapi/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"

	_ "github.com/ebank/ledger/docs"
)

const defaultIdempotencyTTL = 24 * time.Hour

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	cfg := a.Config

	fiberApp := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})
	fiberApp.Get("/swagger/*", swagger.New(swagger.Config{
		TryItOutEnabled:      true,
		PersistAuthorization: true,
	}))

	if cfg.RateLimit != nil && cfg.RateLimit.MaxRequests > 0 {
		// Uses X-Forwarded-For header when behind a proxy
		fiberApp.Use(limiter.New(limiter.Config{
			Max:          cfg.RateLimit.MaxRequests,
			Expiration:   cfg.RateLimit.Window,
			KeyGenerator: clientIP,
			LimitReached: func(c *fiber.Ctx) error {
				return common.ProblemDetailsJSON(
					c,
					"Too Many Requests",
					errors.New("rate limit exceeded"),
					fiber.StatusTooManyRequests,
				)
			},
		}))
	}
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New())

	// Health check endpoint
	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Ledger API is running! 🚀")
	})

	ttl := defaultIdempotencyTTL
	if cfg.Idempotency != nil && cfg.Idempotency.TTL > 0 {
		ttl = cfg.Idempotency.TTL
	}
	idempotency := middleware.Idempotency(a.Deps.Idempotency, ttl, a.Deps.Logger)

	accountweb.Routes(fiberApp, a.AccountService, cfg, idempotency)
	customerweb.Routes(fiberApp, a.CustomerService, a.AccountService, cfg)
	return fiberApp
}

func clientIP(c *fiber.Ctx) string {
	if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
		// Take the first IP in the chain
		if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
			return strings.TrimSpace(forwardedFor[:commaIndex])
		}
		return strings.TrimSpace(forwardedFor)
	}
	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.IP()
}
