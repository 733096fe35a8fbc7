// Package auth issues and inspects the scoped JWTs that guard the HTTP API.
package auth

import (
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/ebank/ledger/pkg/config"
	"github.com/ebank/ledger/pkg/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Scopes understood by the API.
const (
	ScopeUser  = "USER"
	ScopeAdmin = "ADMIN"
)

const scopeClaim = "scope"

// Service signs tokens with the configured HS256 secret.
type Service struct {
	cfg    *config.Auth
	logger *slog.Logger
	now    func() time.Time
}

func New(cfg *config.Auth, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cfg: cfg, logger: logger, now: time.Now}
}

// GenerateToken returns a signed token for subject carrying the given scopes
// as one space separated claim.
func (s *Service) GenerateToken(subject string, scopes ...string) (string, error) {
	log := s.logger.With("subject", subject, "scopes", scopes)
	log.Debug("GenerateToken called")
	if s.cfg.Secret == "" {
		log.Error("GenerateToken failed", "error", domain.ErrUnauthorized)
		return "", errors.New("auth: empty signing secret")
	}
	now := s.now()
	claims := jwt.MapClaims{
		"sub":      subject,
		scopeClaim: strings.Join(scopes, " "),
		"iat":      now.Unix(),
		"exp":      now.Add(s.cfg.Expiry).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		log.Error("GenerateToken failed", "error", err)
		return "", err
	}
	log.Info("GenerateToken successful")
	return signed, nil
}

// Scopes returns the scopes of a parsed token.
func Scopes(token *jwt.Token) ([]string, error) {
	if token == nil {
		return nil, domain.ErrUnauthorized
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	raw, _ := claims[scopeClaim].(string)
	return strings.Fields(raw), nil
}

// HasScope reports whether token grants scope. ADMIN implies USER.
func HasScope(token *jwt.Token, scope string) bool {
	scopes, err := Scopes(token)
	if err != nil {
		return false
	}
	if slices.Contains(scopes, scope) {
		return true
	}
	return scope == ScopeUser && slices.Contains(scopes, ScopeAdmin)
}
