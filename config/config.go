package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/gifbox/giphy"
)

// MaxLimit is the largest page size the API accepts for beta keys
const MaxLimit = 50

// EnvPrefix prefixes environment overrides, e.g. GIFBOX_GIPHY_API_KEY
const EnvPrefix = "GIFBOX"

// Load loads the configuration from file and environment. Without an
// explicit path a missing file is not an error.
func Load(configPath string, build Build) (*Config, error) {
	v := viper.New()

	setDefaults(v, build)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".gifbox"))
		}

		v.AddConfigPath("/etc/gifbox/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper, build Build) {
	baseURL := build.BaseURL
	if baseURL == "" {
		baseURL = giphy.DefaultBaseURL
	}

	// Giphy defaults
	v.SetDefault("giphy.api_key", build.APIKey)
	v.SetDefault("giphy.base_url", baseURL)
	v.SetDefault("giphy.timeout", giphy.DefaultTimeout)
	v.SetDefault("giphy.rate_limit", 0)
	v.SetDefault("giphy.rate_burst", 1)

	// Browse defaults
	v.SetDefault("browse.kind", string(giphy.KindGifs))
	v.SetDefault("browse.limit", giphy.DefaultLimit)
	v.SetDefault("browse.rating", string(giphy.DefaultRating))
	v.SetDefault("browse.debounce", "500ms")

	v.SetDefault("storage.path", "")

	v.SetDefault("filter.default", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	v.SetDefault("update.repository", "s0up4200/gifbox")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Giphy.APIKey == "" || cfg.Giphy.APIKey == "your-api-key-here" {
		return fmt.Errorf("giphy.api_key must be set to a valid API key")
	}

	if cfg.Giphy.BaseURL == "" {
		return fmt.Errorf("giphy.base_url is required")
	}

	if cfg.Giphy.Timeout <= 0 {
		return fmt.Errorf("giphy.timeout must be positive")
	}

	if cfg.Giphy.RateLimit < 0 {
		return fmt.Errorf("giphy.rate_limit must not be negative")
	}

	if _, err := giphy.ParseKind(cfg.Browse.Kind); err != nil {
		return fmt.Errorf("browse.kind: %w", err)
	}

	if _, err := giphy.ParseRating(cfg.Browse.Rating); err != nil {
		return fmt.Errorf("browse.rating: %w", err)
	}

	if cfg.Browse.Limit <= 0 || cfg.Browse.Limit > MaxLimit {
		return fmt.Errorf("browse.limit must be between 1 and %d, got %d", MaxLimit, cfg.Browse.Limit)
	}

	if cfg.Browse.Debounce < 0 {
		return fmt.Errorf("browse.debounce must not be negative")
	}

	for name, expr := range cfg.Filter.Presets {
		if strings.TrimSpace(expr) == "" {
			return fmt.Errorf("filter.presets.%s is empty", name)
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
