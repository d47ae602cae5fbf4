package app

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the backoffice console.
type Config struct {
	AppEnv         string        `envconfig:"APP_ENV" default:"development"`
	AppAddr        string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	// AppWriteTimeout of zero keeps long-lived event streams open.
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"0"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// APIBaseURL points at the inventory backend REST API.
	APIBaseURL string `envconfig:"API_BASE_URL" default:"http://localhost:4000/api"`
	// WSBaseURL points at the backend push-notification service.
	WSBaseURL string `envconfig:"WS_BASE_URL" default:"ws://localhost:4000/ws"`
	// ClientOrigin is sent as the Origin header on backend calls.
	ClientOrigin string `envconfig:"CLIENT_ORIGIN" default:"http://localhost"`

	RedisAddr  string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"720h"`

	CSRFSecret string `envconfig:"CSRF_SECRET" required:"true"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.APIBaseURL == "" {
		return nil, errors.New("api base url must be provided")
	}
	if cfg.CSRFSecret == "" {
		return nil, errors.New("csrf secret must be provided")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
