package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	TwelveLabs TwelveLabsConfig `mapstructure:"twelvelabs"`
	Cache      CacheConfig
	Cart       CartConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// TwelveLabsConfig holds video-understanding API configuration
type TwelveLabsConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	DefaultIndexID    string        `mapstructure:"default_index_id"`
	AnalyzeTimeout    time.Duration `mapstructure:"analyze_timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
}

// CacheConfig holds analysis cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// CartConfig holds cart persistence configuration
type CartConfig struct {
	StoragePath string `mapstructure:"storage_path"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/vidshop/")

	// Environment variable settings
	v.SetEnvPrefix("VIDSHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Video API defaults
	v.SetDefault("twelvelabs.base_url", "https://api.twelvelabs.io/v1.3")
	v.SetDefault("twelvelabs.analyze_timeout", "120s")
	v.SetDefault("twelvelabs.requests_per_minute", 60)

	// Cache defaults
	v.SetDefault("cache.ttl", "24h")

	// Cart defaults
	v.SetDefault("cart.storage_path", "data/cart.json")
}

// validate validates the configuration. The API key is deliberately not
// required here: a missing key degrades per-operation with a user-visible
// message instead of preventing startup.
func validate(config *Config) error {
	if config.TwelveLabs.BaseURL == "" {
		return fmt.Errorf("video API base URL is required (set VIDSHOP_TWELVELABS_BASE_URL)")
	}

	if config.TwelveLabs.AnalyzeTimeout < time.Second {
		return fmt.Errorf("analyze timeout must be at least 1s, got: %s", config.TwelveLabs.AnalyzeTimeout)
	}

	if config.Cache.TTL <= 0 {
		return fmt.Errorf("cache TTL must be positive, got: %s", config.Cache.TTL)
	}

	if config.Cart.StoragePath == "" {
		return fmt.Errorf("cart storage path is required")
	}

	return nil
}
