package initializer

import (
	"bytes"
	"io"
	"log/slog"
	"testing"
	"time"

	infracache "github.com/ebank/ledger/infra/cache"
	infraeventbus "github.com/ebank/ledger/infra/eventbus"
	"github.com/ebank/ledger/infra/memory"
	"github.com/ebank/ledger/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.App {
	return &config.App{
		Env:         "test",
		DB:          &config.DB{Driver: "memory"},
		Kafka:       &config.Kafka{Enabled: false},
		Idempotency: &config.Idempotency{Backend: "memory", TTL: time.Hour},
		Redis:       &config.Redis{URL: "redis://localhost:6379/0", KeyPrefix: "ledger:", PoolSize: 5},
		Ledger:      &config.Ledger{DefaultCurrency: "MAD", TransferMode: "atomic", PageSize: 5},
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBuild_MemoryBackends(t *testing.T) {
	deps, err := Build(memoryConfig(), discard())
	require.NoError(t, err)

	assert.IsType(t, &memory.Store{}, deps.Uow)
	assert.IsType(t, &infraeventbus.MemoryEventBus{}, deps.EventBus)
	assert.IsType(t, &infracache.MemoryStore{}, deps.Idempotency)
	require.NotNil(t, deps.Close)
	assert.NoError(t, deps.Close())
}

func TestBuild_KafkaAndRedis(t *testing.T) {
	cfg := memoryConfig()
	cfg.Kafka = &config.Kafka{Enabled: true, Brokers: "localhost:9092", Topic: "ledger.events"}
	cfg.Idempotency.Backend = "redis"

	deps, err := Build(cfg, discard())
	require.NoError(t, err)

	assert.IsType(t, &infraeventbus.KafkaEventBus{}, deps.EventBus)
	assert.IsType(t, &infracache.RedisStore{}, deps.Idempotency)
	assert.NoError(t, deps.Close())
}

func TestBuild_BadRedisURL(t *testing.T) {
	cfg := memoryConfig()
	cfg.Idempotency.Backend = "redis"
	cfg.Redis.URL = "://nope"

	_, err := Build(cfg, discard())
	assert.ErrorContains(t, err, "Redis idempotency store")
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := SetupLogger(&config.Log{Level: 0, Format: "json", Prefix: "[ledger]"}, &buf)
	logger.Info("Debit successful", "accountID", "acc-1")

	assert.Contains(t, buf.String(), "Debit successful")
	assert.Contains(t, buf.String(), "acc-1")
	assert.Same(t, logger, slog.Default())
}
