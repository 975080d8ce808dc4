// Package config loads service settings with viper. Values come from
// defaults, an optional config file and environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the service settings.
type Config struct {
	AppPort         string        `mapstructure:"APP_PORT"`
	AppEnv          string        `mapstructure:"APP_ENV"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	LogFormat       string        `mapstructure:"LOG_FORMAT"` // "json" or "console"
	RabbitMQURL     string        `mapstructure:"RABBITMQ_URL"`
	RabbitExchange  string        `mapstructure:"RABBITMQ_EXCHANGE"`
	MetricsEnabled  bool          `mapstructure:"METRICS_ENABLED"`
	DisplayIDTries  int           `mapstructure:"DISPLAY_ID_ATTEMPTS"`
	AdminUsername   string        `mapstructure:"ADMIN_USERNAME"`
	AdminPassword   string        `mapstructure:"ADMIN_PASSWORD"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var keys = []string{
	"APP_PORT", "APP_ENV", "LOG_LEVEL", "LOG_FORMAT",
	"RABBITMQ_URL", "RABBITMQ_EXCHANGE", "METRICS_ENABLED",
	"DISPLAY_ID_ATTEMPTS", "ADMIN_USERNAME", "ADMIN_PASSWORD",
	"SHUTDOWN_TIMEOUT",
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("RABBITMQ_URL", "") // events disabled unless set
	v.SetDefault("RABBITMQ_EXCHANGE", "students")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("DISPLAY_ID_ATTEMPTS", 5)
	v.SetDefault("ADMIN_USERNAME", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
}

// Load reads configuration into a Config. configPath may be empty, in which
// case ./config.yaml is used if present.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	SetDefaults(v)
	for _, k := range keys {
		// BindEnv only errors when called without a key.
		_ = v.BindEnv(k)
	}
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.AppPort == "" {
		return errors.New("APP_PORT must not be empty")
	}
	if c.DisplayIDTries < 1 {
		return fmt.Errorf("DISPLAY_ID_ATTEMPTS must be positive, got %d", c.DisplayIDTries)
	}
	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		return errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	return nil
}

// EventsEnabled reports whether student events should be published.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}
