package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultUserAgent is the desktop Chrome agent sent when USER_AGENT is not
// overridden.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

const (
	FetchModeHTTP    = "http"
	FetchModeBrowser = "browser"
)

// Config holds the application configuration.
type Config struct {
	BaseURL     string `mapstructure:"BASE_URL"`
	PlantCSV    string `mapstructure:"PLANT_CSV"`
	WebpagesDir string `mapstructure:"WEBPAGES_DIR"`
	JSONsDir    string `mapstructure:"JSONS_DIR"`

	RequestDelayMS        int    `mapstructure:"REQUEST_DELAY_MS"`
	CooldownEvery         int    `mapstructure:"COOLDOWN_EVERY"`
	CooldownSeconds       int    `mapstructure:"COOLDOWN_SECONDS"`
	MaxRetries            int    `mapstructure:"MAX_RETRIES"`
	RequestTimeoutSeconds int    `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	FetchMode             string `mapstructure:"FETCH_MODE"`
	UserAgent             string `mapstructure:"USER_AGENT"`

	PostgresURL        string `mapstructure:"POSTGRES_URL"`
	RedisAddr          string `mapstructure:"REDIS_ADDR"`
	RedisPassword      string `mapstructure:"REDIS_PASSWORD"`
	RedisDB            int    `mapstructure:"REDIS_DB"`
	DeduplicationHours int    `mapstructure:"DEDUPLICATION_HOURS"`

	ServerPort          string `mapstructure:"SERVER_PORT"`
	PollIntervalSeconds int    `mapstructure:"POLL_INTERVAL_SECONDS"`
	LogLevel            string `mapstructure:"LOG_LEVEL"`
}

var defaults = map[string]any{
	"BASE_URL":                "https://cb.imsc.res.in",
	"PLANT_CSV":               "plant_options.csv",
	"WEBPAGES_DIR":            "impat_webpages",
	"JSONS_DIR":               "impat_jsons",
	"REQUEST_DELAY_MS":        1000,
	"COOLDOWN_EVERY":          50,
	"COOLDOWN_SECONDS":        60,
	"MAX_RETRIES":             3,
	"REQUEST_TIMEOUT_SECONDS": 30,
	"FETCH_MODE":              FetchModeHTTP,
	"USER_AGENT":              DefaultUserAgent,
	"POSTGRES_URL":            "",
	"REDIS_ADDR":              "",
	"REDIS_PASSWORD":          "",
	"REDIS_DB":                0,
	"DEDUPLICATION_HOURS":     48,
	"SERVER_PORT":             "8080",
	"POLL_INTERVAL_SECONDS":   5,
	"LOG_LEVEL":               "info",
}

// Load reads configuration from an optional env file and the environment.
// An empty path means ".env" in the working directory.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	// The env file is optional unless asked for by name.
	if err := v.ReadInConfig(); err != nil && explicit {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	var errs []error
	if c.BaseURL == "" {
		errs = append(errs, errors.New("BASE_URL is required"))
	}
	switch strings.ToLower(c.FetchMode) {
	case FetchModeHTTP, FetchModeBrowser:
		c.FetchMode = strings.ToLower(c.FetchMode)
	default:
		errs = append(errs, fmt.Errorf("FETCH_MODE must be %q or %q, got %q", FetchModeHTTP, FetchModeBrowser, c.FetchMode))
	}
	if c.MaxRetries < 1 {
		errs = append(errs, fmt.Errorf("MAX_RETRIES must be at least 1, got %d", c.MaxRetries))
	}
	if c.DeduplicationHours < 1 {
		errs = append(errs, fmt.Errorf("DEDUPLICATION_HOURS must be at least 1, got %d", c.DeduplicationHours))
	}
	if c.PollIntervalSeconds < 1 {
		errs = append(errs, fmt.Errorf("POLL_INTERVAL_SECONDS must be at least 1, got %d", c.PollIntervalSeconds))
	}
	if c.RequestDelayMS < 0 || c.CooldownEvery < 0 || c.CooldownSeconds < 0 {
		errs = append(errs, errors.New("pacing values must not be negative"))
	}
	return errors.Join(errs...)
}

func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelayMS) * time.Millisecond
}

func (c *Config) CooldownPeriod() time.Duration {
	return time.Duration(c.CooldownSeconds) * time.Second
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c *Config) DeduplicationWindow() time.Duration {
	return time.Duration(c.DeduplicationHours) * time.Hour
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}
