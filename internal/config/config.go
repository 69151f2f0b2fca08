package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// Community reference dataset.
	DatasetPath string `envconfig:"DATASET_PATH" default:"data/communities.json"`

	// Forecast provider configuration.
	WeatherAPIKey  string        `envconfig:"WEATHER_API_KEY"`
	WeatherBaseURL string        `envconfig:"WEATHER_API_BASE_URL" default:"http://api.weatherapi.com/v1"`
	WeatherTimeout time.Duration `envconfig:"WEATHER_TIMEOUT" default:"10s"`
	ForecastDays   int           `envconfig:"FORECAST_DAYS" default:"3"`

	// Outbound alert mail service. Empty URL disables delivery.
	MailerURL     string        `envconfig:"MAILER_URL"`
	MailerTimeout time.Duration `envconfig:"MAILER_TIMEOUT" default:"5s"`

	// Alert broadcast configuration.
	KafkaBrokers     []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaAlertTopic  string   `envconfig:"KAFKA_ALERT_TOPIC" default:"flood-alerts"`
	BroadcastEnabled bool     `envconfig:"BROADCAST_ENABLED" default:"true"`
}

// MailerEnabled reports whether outbound alert delivery is configured.
func (c *Config) MailerEnabled() bool {
	return c.MailerURL != ""
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.WeatherAPIKey == "" {
		return nil, errors.New("WEATHER_API_KEY is required")
	}
	if cfg.ForecastDays < 1 || cfg.ForecastDays > 14 {
		return nil, fmt.Errorf("FORECAST_DAYS must be between 1 and 14, got %d", cfg.ForecastDays)
	}
	if cfg.WeatherTimeout <= 0 {
		return nil, errors.New("WEATHER_TIMEOUT must be positive")
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.BroadcastEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when BROADCAST_ENABLED is true")
		}
		if cfg.KafkaAlertTopic == "" {
			return nil, errors.New("KAFKA_ALERT_TOPIC is required when BROADCAST_ENABLED is true")
		}
	}

	return &cfg, nil
}
