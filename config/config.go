package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// ServerPort is the TCP port the HTTP server listens on.
	ServerPort int `env:"SERVER_PORT" envDefault:"8000"`

	// DatabaseURL is either a postgres:// DSN or a SQLite file path.
	DatabaseURL string `env:"DATABASE_URL" envDefault:"database/seazone.db"`

	// DatabaseKey is an auxiliary store credential carried for managed
	// database providers; core logic never reads it.
	DatabaseKey string `env:"DATABASE_KEY" envDefault:""`

	// RateLimit configuration
	RateLimit struct {
		Enabled bool    `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
		RPS     float64 `env:"RATE_LIMIT_RPS" envDefault:"10"`
		Burst   int     `env:"RATE_LIMIT_BURST" envDefault:"20"`
	}

	// Notifications configuration
	Notifications struct {
		TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN" envDefault:""`
		TelegramChatID   string `env:"TELEGRAM_CHAT_ID" envDefault:""`

		// Buffer size of the in-memory confirmation queue
		QueueSize int `env:"NOTIFY_QUEUE_SIZE" envDefault:"64"`

		// Number of concurrent delivery workers
		WorkerCount int `env:"NOTIFY_WORKER_COUNT" envDefault:"2"`

		// Maximum number of retries for failed deliveries
		MaxRetries int `env:"NOTIFY_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"NOTIFY_RETRY_DELAY" envDefault:"5"`
	}
}

func LoadConfig() (*Config, error) {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
