package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds all configuration for the destinations module.
type Config struct {
	// MongoDB Configuration
	MongoDBURI   string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	DatabaseName string `env:"DATABASE_NAME" envDefault:"lovejourney"`

	// ConnectRetryDelay is how long the connector waits between connection
	// attempts. The connector retries forever; it never gives up.
	ConnectRetryDelay time.Duration `env:"CONNECT_RETRY_DELAY" envDefault:"5s"`

	// AdminSecret is the shared passphrase gating the destructive
	// clear/import operations.
	AdminSecret string `env:"ADMIN_SECRET,required"`
}

// LoadConfig loads configuration from environment variables and applies defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.New("failed to load destinations configuration from environment: " + err.Error())
	}

	if cfg.AdminSecret == "" {
		// Should be caught by `env:",required"`
		return nil, errors.New("admin_secret is required")
	}
	if cfg.ConnectRetryDelay <= 0 {
		cfg.ConnectRetryDelay = 5 * time.Second
	}

	return cfg, nil
}
