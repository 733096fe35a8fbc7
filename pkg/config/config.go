package config

import (
	"time"
)

type DB struct {
	Driver        string `envconfig:"DRIVER" default:"postgres"`
	Url           string `envconfig:"URL"`
	MigrationsDir string `envconfig:"MIGRATIONS_DIR" default:"internal/migrations"`
	LogLevel      int    `envconfig:"LOG_LEVEL" default:"1"`
}

type Auth struct {
	Enabled bool          `envconfig:"ENABLED" default:"false"`
	Secret  string        `envconfig:"SECRET"`
	Expiry  time.Duration `envconfig:"EXPIRY" default:"24h"`
}

type Redis struct {
	URL          string        `envconfig:"URL" default:"redis://localhost:6379/0"`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:"ledger:"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Idempotency struct {
	Backend string        `envconfig:"BACKEND" default:"memory"`
	TTL     time.Duration `envconfig:"TTL" default:"24h"`
}

type Kafka struct {
	Enabled bool   `envconfig:"ENABLED" default:"false"`
	Brokers string `envconfig:"BROKERS" default:"localhost:9092"`
	Topic   string `envconfig:"TOPIC" default:"ledger.events"`
}

// Ledger holds the account ledger settings.
type Ledger struct {
	DefaultCurrency string `envconfig:"DEFAULT_CURRENCY" default:"MAD"`
	// TransferMode is "atomic" or "compensating".
	TransferMode string `envconfig:"TRANSFER_MODE" default:"atomic"`
	PageSize     int    `envconfig:"PAGE_SIZE" default:"5"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[ledger]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env         string       `envconfig:"APP_ENV" default:"development"`
	Server      *Server      `envconfig:"SERVER"`
	Log         *Log         `envconfig:"LOG"`
	DB          *DB          `envconfig:"DATABASE"`
	Auth        *Auth        `envconfig:"AUTH"`
	Redis       *Redis       `envconfig:"REDIS"`
	RateLimit   *RateLimit   `envconfig:"RATE_LIMIT"`
	Idempotency *Idempotency `envconfig:"IDEMPOTENCY"`
	Kafka       *Kafka       `envconfig:"KAFKA"`
	Ledger      *Ledger      `envconfig:"LEDGER"`
}
