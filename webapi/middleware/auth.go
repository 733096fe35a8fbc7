// Package middleware holds the fiber middleware guarding the ledger API.
package middleware

import (
	"errors"

	"github.com/ebank/ledger/pkg/config"
	"github.com/ebank/ledger/pkg/service/auth"
	"github.com/ebank/ledger/webapi/common"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const userLocal = "user"

// JwtProtected verifies the bearer token. With auth disabled it lets every
// request through.
func JwtProtected(cfg *config.Auth) fiber.Handler {
	if cfg == nil || !cfg.Enabled {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.Secret)},
		ContextKey:   userLocal,
		ErrorHandler: jwtError,
	})
}

// RequireScope rejects tokens that do not grant scope. It must run after
// JwtProtected.
func RequireScope(cfg *config.Auth, scope string) fiber.Handler {
	if cfg == nil || !cfg.Enabled {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return func(c *fiber.Ctx) error {
		token, _ := c.Locals(userLocal).(*jwt.Token)
		if !auth.HasScope(token, scope) {
			return common.ErrorResponseJSON(c, fiber.StatusForbidden, "Forbidden", "missing scope "+scope)
		}
		return c.Next()
	}
}

// Protected combines token verification and a scope check.
func Protected(cfg *config.Auth, scope string) []fiber.Handler {
	return []fiber.Handler{JwtProtected(cfg), RequireScope(cfg, scope)}
}

func jwtError(c *fiber.Ctx, err error) error {
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
		return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Bad Request", "Missing or malformed JWT")
	}
	return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid or expired JWT")
}
