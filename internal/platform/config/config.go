package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName  string   `env:"SERVICE_NAME, default=brandlink"`
	HTTPPort     string   `env:"HTTP_PORT, default=8080"`
	PostgresDSN  string   `env:"POSTGRES_DSN"`
	KafkaBrokers []string `env:"KAFKA_BROKERS, default=localhost:9092"`

	RateLimitPerSecond int `env:"RATE_LIMIT_PER_SECOND, default=50"`
	RateLimitBurst     int `env:"RATE_LIMIT_BURST, default=100"`

	WorkerPollInterval  time.Duration `env:"WORKER_POLL_INTERVAL, default=30s"`
	EnableExpirySweeper bool          `env:"ENABLE_EXPIRY_SWEEPER, default=true"`
	EnableOutboxRelay   bool          `env:"ENABLE_OUTBOX_RELAY, default=true"`
}

func Load(ctx context.Context) (Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config from environment: %w", err)
	}
	return cfg, nil
}
