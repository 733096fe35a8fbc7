// Package initializer builds the application dependencies from configuration.
package initializer

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ebank/ledger/infra"
	infracache "github.com/ebank/ledger/infra/cache"
	infraeventbus "github.com/ebank/ledger/infra/eventbus"
	"github.com/ebank/ledger/infra/memory"
	infrarepository "github.com/ebank/ledger/infra/repository"
	"github.com/ebank/ledger/pkg/app"
	"github.com/ebank/ledger/pkg/cache"
	"github.com/ebank/ledger/pkg/config"
	"github.com/ebank/ledger/pkg/eventbus"
	"github.com/ebank/ledger/pkg/repository"
	"github.com/redis/go-redis/v9"
)

const memorySweepInterval = 5 * time.Minute

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	logger := SetupLogger(cfg.Log, os.Stdout)
	return Build(cfg, logger)
}

// Build wires the store, event bus and idempotency store selected by cfg.
func Build(cfg *config.App, logger *slog.Logger) (deps *app.Deps, err error) {
	var closers []func() error
	defer func() {
		if err != nil {
			for _, c := range closers {
				_ = c()
			}
		}
	}()

	deps = &app.Deps{Logger: logger}

	uow, closeDB, err := initUnitOfWork(cfg, logger)
	if err != nil {
		return nil, err
	}
	closers = append(closers, closeDB)
	deps.Uow = uow

	bus, closeBus, err := initEventBus(cfg, logger)
	if err != nil {
		return nil, err
	}
	closers = append(closers, closeBus)
	deps.EventBus = bus

	store, closeStore, err := initIdempotency(cfg, logger)
	if err != nil {
		return nil, err
	}
	closers = append(closers, closeStore)
	deps.Idempotency = store

	deps.Close = func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}
	return deps, nil
}

func noop() error { return nil }

func initUnitOfWork(cfg *config.App, logger *slog.Logger) (repository.UnitOfWork, func() error, error) {
	if cfg.DB.Driver == "memory" {
		logger.Info("Using in-memory ledger store")
		return memory.NewStore(), noop, nil
	}

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	if err := infra.RunMigrations(db, cfg.DB.MigrationsDir, logger); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("Using postgres ledger store")
	return infrarepository.NewUoW(db), sqlDB.Close, nil
}

func initEventBus(cfg *config.App, logger *slog.Logger) (eventbus.Bus, func() error, error) {
	if cfg.Kafka == nil || !cfg.Kafka.Enabled {
		return infraeventbus.NewWithMemory(logger), noop, nil
	}
	bus, err := infraeventbus.NewWithKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Kafka event bus: %w", err)
	}
	logger.Info("Publishing ledger events to Kafka", "topic", cfg.Kafka.Topic)
	return bus, bus.Close, nil
}

func initIdempotency(cfg *config.App, logger *slog.Logger) (cache.IdempotencyStore, func() error, error) {
	if cfg.Idempotency == nil || cfg.Idempotency.Backend != "redis" {
		store := infracache.NewMemoryStore(memorySweepInterval)
		return store, func() error { store.Close(); return nil }, nil
	}
	store, err := infracache.NewRedisStore(
		cfg.Redis.URL,
		cfg.Redis.KeyPrefix+"idempotency:",
		logger,
		func(o *redis.Options) {
			o.PoolSize = cfg.Redis.PoolSize
			o.DialTimeout = cfg.Redis.DialTimeout
			o.ReadTimeout = cfg.Redis.ReadTimeout
			o.WriteTimeout = cfg.Redis.WriteTimeout
		},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Redis idempotency store: %w", err)
	}
	logger.Info("Using Redis idempotency store", "prefix", cfg.Redis.KeyPrefix)
	return store, store.Close, nil
}
