package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	TransferModeAtomic       = "atomic"
	TransferModeCompensating = "compensating"
)

// Load reads the first env file found among envFilePath (searching parent
// directories), falling back to ./.env, then processes the environment.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()
	logger.Info("Loading environment variables")

	for _, path := range envFilePath {
		logger.Debug("Looking for environment file", "path", path)
		foundPath, err := FindEnvFile(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path, "error", err)
			continue
		}

		logger.Info("Loading environment from file", "path", foundPath)
		if err := godotenv.Load(foundPath); err != nil {
			logger.Error("Failed to load environment file", "path", foundPath, "error", err)
			continue
		}
		return loadFromEnv()
	}

	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found in current directory")
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Default().Info("App config loaded",
		"env", cfg.Env,
		"db_driver", cfg.DB.Driver,
		"db", maskValue(cfg.DB.Url),
		"auth_enabled", cfg.Auth.Enabled,
		"auth_secret", maskValue(cfg.Auth.Secret),
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"idempotency_backend", cfg.Idempotency.Backend,
		"kafka_enabled", cfg.Kafka.Enabled,
		"ledger_currency", cfg.Ledger.DefaultCurrency,
		"ledger_transfer_mode", cfg.Ledger.TransferMode,
	)
	return &cfg, nil
}

// Validate rejects combinations envconfig cannot express with tags.
func (cfg *App) Validate() error {
	switch cfg.DB.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("config: unsupported DATABASE_DRIVER %q", cfg.DB.Driver)
	}
	if cfg.DB.Driver == "postgres" && cfg.DB.Url == "" {
		return fmt.Errorf("config: DATABASE_URL is required for the postgres driver")
	}
	switch cfg.Ledger.TransferMode {
	case TransferModeAtomic, TransferModeCompensating:
	default:
		return fmt.Errorf("config: unsupported LEDGER_TRANSFER_MODE %q", cfg.Ledger.TransferMode)
	}
	if cfg.Ledger.PageSize <= 0 {
		return fmt.Errorf("config: LEDGER_PAGE_SIZE must be positive")
	}
	if len(strings.TrimSpace(cfg.Ledger.DefaultCurrency)) != 3 {
		return fmt.Errorf("config: LEDGER_DEFAULT_CURRENCY must be a 3-letter code")
	}
	if cfg.Auth.Enabled && cfg.Auth.Secret == "" {
		return fmt.Errorf("config: AUTH_SECRET is required when AUTH_ENABLED is true")
	}
	switch cfg.Idempotency.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("config: unsupported IDEMPOTENCY_BACKEND %q", cfg.Idempotency.Backend)
	}
	return nil
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
