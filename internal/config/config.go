package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Report formats accepted by report_format.
const (
	ReportText = "text"
	ReportJSON = "json"
	ReportYAML = "yaml"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName               string        `mapstructure:"app_name"`
	Env                   string        `mapstructure:"app_env"`
	LogLevel              string        `mapstructure:"log_level"`
	BaseURL               string        `mapstructure:"base_url"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`
	ReportFormat          string        `mapstructure:"report_format"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "placeholder-checklist")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("base_url", "https://jsonplaceholder.typicode.com")
	v.SetDefault("request_timeout_seconds", 60)
	v.SetDefault("report_format", ReportText)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("invalid base_url (must not be empty)")
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	cfg.ReportFormat = strings.ToLower(strings.TrimSpace(cfg.ReportFormat))
	switch cfg.ReportFormat {
	case ReportText, ReportJSON, ReportYAML:
	default:
		return nil, fmt.Errorf("invalid report_format %q (expected text, json or yaml)", cfg.ReportFormat)
	}

	return &cfg, nil
}
