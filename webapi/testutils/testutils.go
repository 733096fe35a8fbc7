// Package testutils builds an in-memory ledger API for handler tests.
package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	infracache "github.com/ebank/ledger/infra/cache"
	infraeventbus "github.com/ebank/ledger/infra/eventbus"
	"github.com/ebank/ledger/infra/memory"
	"github.com/ebank/ledger/pkg/app"
	"github.com/ebank/ledger/pkg/config"
	"github.com/ebank/ledger/pkg/service/auth"
	"github.com/ebank/ledger/webapi"
	"github.com/ebank/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// TestSecret signs tokens when a test enables auth.
const TestSecret = "test-secret"

// Config returns an in-memory configuration with auth disabled.
func Config() *config.App {
	return &config.App{
		Env:         "test",
		DB:          &config.DB{Driver: "memory"},
		Auth:        &config.Auth{Enabled: false, Secret: TestSecret, Expiry: time.Hour},
		RateLimit:   &config.RateLimit{MaxRequests: 0},
		Idempotency: &config.Idempotency{Backend: "memory", TTL: time.Hour},
		Kafka:       &config.Kafka{},
		Ledger:      &config.Ledger{DefaultCurrency: "MAD", TransferMode: config.TransferModeAtomic, PageSize: 5},
	}
}

// NewTestApp wires the services on a fresh memory store.
func NewTestApp(t *testing.T, cfg *config.App) (*fiber.App, *app.App) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := infracache.NewMemoryStore(0)
	deps := &app.Deps{
		Uow:         memory.NewStore(),
		EventBus:    infraeventbus.NewWithMemory(logger),
		Idempotency: store,
		Logger:      logger,
	}
	a := app.New(deps, cfg)
	return webapi.SetupApp(a), a
}

// Token returns a signed bearer token with the given scopes.
func Token(t *testing.T, cfg *config.App, scopes ...string) string {
	t.Helper()
	token, err := auth.New(cfg.Auth, slog.New(slog.NewTextHandler(io.Discard, nil))).
		GenerateToken("tester", scopes...)
	require.NoError(t, err)
	return token
}

// MakeRequest sends body (marshalled to JSON unless nil) to the app.
func MakeRequest(
	t *testing.T,
	app *fiber.App,
	method, path string,
	body any,
	headers map[string]string,
) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// Decode reads the success envelope and unmarshals its data into out.
func Decode(t *testing.T, resp *http.Response, out any) common.Response {
	t.Helper()
	defer resp.Body.Close() //nolint: errcheck
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env struct {
		common.Response
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	if out != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, out))
	}
	return env.Response
}

// Problem reads a problem details body.
func Problem(t *testing.T, resp *http.Response) common.ProblemDetails {
	t.Helper()
	defer resp.Body.Close() //nolint: errcheck
	var pd common.ProblemDetails
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}
