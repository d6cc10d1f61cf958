package app

import (
	"errors"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	ListingsPath     string        `envconfig:"LISTINGS_PATH" default:"data/listings.json"`
	ListingsWatch    bool          `envconfig:"LISTINGS_WATCH" default:"true"`
	ListingsDebounce time.Duration `envconfig:"LISTINGS_DEBOUNCE" default:"500ms"`

	SubmitURL string `envconfig:"SUBMIT_URL"`

	RateLimitPerMin int `envconfig:"RATE_LIMIT_PER_MIN" default:"120"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot express.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ListingsPath) == "" {
		return errors.New("listings path must be provided")
	}
	if c.RateLimitPerMin <= 0 {
		return errors.New("rate limit must be positive")
	}
	return nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
