package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Watch   WatchConfig   `mapstructure:"watch"`
	Prefs   PrefsConfig   `mapstructure:"prefs"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds CoinLore API configuration
type APIConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	PageSize int           `mapstructure:"page_size"`
}

// WatchConfig holds the watch loop behavior configuration
type WatchConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	TopN            int           `mapstructure:"top_n"`
}

// PrefsConfig holds preference persistence configuration
type PrefsConfig struct {
	DBPath string `mapstructure:"db_path"`
}

// MetricsConfig holds the Prometheus endpoint configuration
type MetricsConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	ListenAddr string `mapstructure:"listen_addr"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
// A .env file in the working directory is applied first so that
// COINLENS_* variables defined there participate in the override.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()

	// Set config file
	v.SetConfigFile(path)

	// Set defaults
	setDefaults(v)

	// Enable environment variable override
	v.SetEnvPrefix("COINLENS")
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.base_url", "https://api.coinlore.net/api")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.page_size", 50)

	// Watch defaults
	v.SetDefault("watch.refresh_interval", "2m")
	v.SetDefault("watch.top_n", 15)

	// Prefs defaults
	v.SetDefault("prefs.db_path", "./data/coinlens.db")

	// Metrics defaults
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.listen_addr", ":9190")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	// Validate API config
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	if c.API.PageSize < 1 || c.API.PageSize > 100 {
		return fmt.Errorf("api.page_size must be between 1 and 100")
	}

	// Validate Watch config
	if c.Watch.RefreshInterval < 10*time.Second {
		return fmt.Errorf("watch.refresh_interval must be at least 10 seconds")
	}
	if c.Watch.TopN < 1 {
		return fmt.Errorf("watch.top_n must be at least 1")
	}

	// Validate Prefs config
	if c.Prefs.DBPath == "" {
		return fmt.Errorf("prefs.db_path is required")
	}

	// Validate Metrics config
	if c.Metrics.Enabled && c.Metrics.ListenAddr == "" {
		return fmt.Errorf("metrics.listen_addr is required when metrics are enabled")
	}

	// Validate Logging config
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}
