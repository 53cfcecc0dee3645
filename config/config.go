package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server configuration
	Server struct {
		Port int `env:"SERVER_PORT" envDefault:"5280"`
	}

	// ListingAPI points at the external listing provider
	ListingAPI struct {
		// Search endpoint (POST, JSON criteria payload)
		SearchURL string `env:"LISTING_SEARCH_URL" envDefault:"https://api.realyield.ae/v1/listings/search"`

		// Detail endpoint (POST, JSON {link} payload)
		DetailURL string `env:"LISTING_DETAIL_URL" envDefault:"https://api.realyield.ae/v1/listings/detail"`

		// Request timeout in seconds
		TimeoutSeconds int `env:"LISTING_TIMEOUT" envDefault:"10"`
	}

	// Database configuration
	Database struct {
		Path string `env:"DATABASE_PATH" envDefault:"database/realyield.db"`
	}

	// Telegram bot channel; polling stays off while the token is empty
	Telegram struct {
		BotToken string `env:"TELEGRAM_BOT_TOKEN"`

		// Long-poll window for getUpdates, in seconds
		PollTimeout int `env:"TELEGRAM_POLL_TIMEOUT" envDefault:"30"`
	}

	// Alerts re-run saved searches and push results over Telegram
	Alerts struct {
		IntervalHours int `env:"ALERTS_INTERVAL_HOURS" envDefault:"6"`
	}

	// DetailFetch controls the retry policy for the detail endpoint
	DetailFetch struct {
		// Total attempts before giving up
		MaxAttempts int `env:"DETAIL_MAX_ATTEMPTS" envDefault:"3"`

		// First wait between attempts, in milliseconds; doubles per retry
		BaseDelayMS int `env:"DETAIL_BASE_DELAY_MS" envDefault:"1000"`

		// Ceiling for a single wait, in milliseconds
		MaxDelayMS int `env:"DETAIL_MAX_DELAY_MS" envDefault:"5000"`
	}
}

func LoadConfig() (*Config, error) {
	// A local .env file is optional; deployments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
