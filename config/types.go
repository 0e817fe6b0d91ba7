package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Giphy   GiphyConfig   `mapstructure:"giphy"`
	Browse  BrowseConfig  `mapstructure:"browse"`
	Storage StorageConfig `mapstructure:"storage"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
	Update  UpdateConfig  `mapstructure:"update"`
}

// GiphyConfig holds the API connection details
type GiphyConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"`
	RateBurst int           `mapstructure:"rate_burst"`
}

// BrowseConfig holds the defaults for listing commands
type BrowseConfig struct {
	Kind     string        `mapstructure:"kind"`
	Limit    int           `mapstructure:"limit"`
	Rating   string        `mapstructure:"rating"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// StorageConfig holds where favourites are kept. An empty path uses the
// XDG data directory.
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// FilterConfig holds named filter expressions
type FilterConfig struct {
	Default string            `mapstructure:"default"`
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// UpdateConfig holds the release source for self-update
type UpdateConfig struct {
	Repository string `mapstructure:"repository"`
}

// Build carries values injected at build time. They become defaults that
// the config file and environment can override.
type Build struct {
	APIKey  string
	BaseURL string
}
