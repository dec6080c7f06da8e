package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("VIDSHOP_SERVER_PORT")
		os.Unsetenv("VIDSHOP_SERVER_ENVIRONMENT")
		os.Unsetenv("VIDSHOP_SERVER_ALLOWED_ORIGINS")
		os.Unsetenv("VIDSHOP_TWELVELABS_API_KEY")
		os.Unsetenv("VIDSHOP_TWELVELABS_BASE_URL")
		os.Unsetenv("VIDSHOP_TWELVELABS_DEFAULT_INDEX_ID")
		os.Unsetenv("VIDSHOP_TWELVELABS_ANALYZE_TIMEOUT")
		os.Unsetenv("VIDSHOP_TWELVELABS_REQUESTS_PER_MINUTE")
		os.Unsetenv("VIDSHOP_CACHE_TTL")
		os.Unsetenv("VIDSHOP_CART_STORAGE_PATH")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.TwelveLabs.BaseURL != "https://api.twelvelabs.io/v1.3" {
			t.Errorf("TwelveLabs.BaseURL = %s, want https://api.twelvelabs.io/v1.3", cfg.TwelveLabs.BaseURL)
		}
		if cfg.TwelveLabs.AnalyzeTimeout != 120*time.Second {
			t.Errorf("TwelveLabs.AnalyzeTimeout = %v, want 120s", cfg.TwelveLabs.AnalyzeTimeout)
		}
		if cfg.TwelveLabs.RequestsPerMinute != 60 {
			t.Errorf("TwelveLabs.RequestsPerMinute = %d, want 60", cfg.TwelveLabs.RequestsPerMinute)
		}
		if cfg.Cache.TTL != 24*time.Hour {
			t.Errorf("Cache.TTL = %v, want 24h", cfg.Cache.TTL)
		}
		if cfg.Cart.StoragePath != "data/cart.json" {
			t.Errorf("Cart.StoragePath = %s, want data/cart.json", cfg.Cart.StoragePath)
		}
	})

	t.Run("missing API key does not prevent startup", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.TwelveLabs.APIKey != "" {
			t.Errorf("TwelveLabs.APIKey = %s, want empty", cfg.TwelveLabs.APIKey)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("VIDSHOP_SERVER_PORT", "9090")
		os.Setenv("VIDSHOP_SERVER_ENVIRONMENT", "production")
		os.Setenv("VIDSHOP_TWELVELABS_API_KEY", "custom-api-key")
		os.Setenv("VIDSHOP_TWELVELABS_BASE_URL", "https://custom.api.com/v2")
		os.Setenv("VIDSHOP_TWELVELABS_DEFAULT_INDEX_ID", "index-42")
		os.Setenv("VIDSHOP_TWELVELABS_ANALYZE_TIMEOUT", "60s")
		os.Setenv("VIDSHOP_TWELVELABS_REQUESTS_PER_MINUTE", "30")
		os.Setenv("VIDSHOP_CACHE_TTL", "1h")
		os.Setenv("VIDSHOP_CART_STORAGE_PATH", "/tmp/cart.json")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.TwelveLabs.APIKey != "custom-api-key" {
			t.Errorf("TwelveLabs.APIKey = %s, want custom-api-key", cfg.TwelveLabs.APIKey)
		}
		if cfg.TwelveLabs.BaseURL != "https://custom.api.com/v2" {
			t.Errorf("TwelveLabs.BaseURL = %s, want https://custom.api.com/v2", cfg.TwelveLabs.BaseURL)
		}
		if cfg.TwelveLabs.DefaultIndexID != "index-42" {
			t.Errorf("TwelveLabs.DefaultIndexID = %s, want index-42", cfg.TwelveLabs.DefaultIndexID)
		}
		if cfg.TwelveLabs.AnalyzeTimeout != 60*time.Second {
			t.Errorf("TwelveLabs.AnalyzeTimeout = %v, want 60s", cfg.TwelveLabs.AnalyzeTimeout)
		}
		if cfg.TwelveLabs.RequestsPerMinute != 30 {
			t.Errorf("TwelveLabs.RequestsPerMinute = %d, want 30", cfg.TwelveLabs.RequestsPerMinute)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if cfg.Cart.StoragePath != "/tmp/cart.json" {
			t.Errorf("Cart.StoragePath = %s, want /tmp/cart.json", cfg.Cart.StoragePath)
		}
	})

	t.Run("fails validation for sub-second analyze timeout", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("VIDSHOP_TWELVELABS_ANALYZE_TIMEOUT", "500ms")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for sub-second analyze timeout")
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			TwelveLabs: TwelveLabsConfig{
				BaseURL:        "https://api.twelvelabs.io/v1.3",
				AnalyzeTimeout: 120 * time.Second,
			},
			Cache: CacheConfig{TTL: 24 * time.Hour},
			Cart:  CartConfig{StoragePath: "data/cart.json"},
		}
	}

	t.Run("validates successfully with all required fields", func(t *testing.T) {
		if err := validate(valid()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("allows empty API key", func(t *testing.T) {
		cfg := valid()
		cfg.TwelveLabs.APIKey = ""
		if err := validate(cfg); err != nil {
			t.Errorf("validate() error = %v, want nil for empty API key", err)
		}
	})

	t.Run("fails when base URL is empty", func(t *testing.T) {
		cfg := valid()
		cfg.TwelveLabs.BaseURL = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty base URL")
		}
	})

	t.Run("fails for sub-second analyze timeout", func(t *testing.T) {
		cfg := valid()
		cfg.TwelveLabs.AnalyzeTimeout = 500 * time.Millisecond
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for short analyze timeout")
		}
	})

	t.Run("fails for non-positive cache TTL", func(t *testing.T) {
		cfg := valid()
		cfg.Cache.TTL = 0
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for zero cache TTL")
		}
	})

	t.Run("fails for empty cart storage path", func(t *testing.T) {
		cfg := valid()
		cfg.Cart.StoragePath = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty storage path")
		}
	})
}
