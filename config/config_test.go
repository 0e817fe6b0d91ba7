package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Giphy: GiphyConfig{
			APIKey:  "valid-api-key",
			BaseURL: "https://api.giphy.com/v1",
			Timeout: 30 * time.Second,
		},
		Browse: BrowseConfig{
			Kind:   "gifs",
			Limit:  10,
			Rating: "g",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing api key",
			mutate:  func(c *Config) { c.Giphy.APIKey = "" },
			wantErr: "giphy.api_key",
		},
		{
			name:    "placeholder api key",
			mutate:  func(c *Config) { c.Giphy.APIKey = "your-api-key-here" },
			wantErr: "giphy.api_key",
		},
		{
			name:    "invalid kind",
			mutate:  func(c *Config) { c.Browse.Kind = "videos" },
			wantErr: "browse.kind",
		},
		{
			name:    "invalid rating",
			mutate:  func(c *Config) { c.Browse.Rating = "nc-17" },
			wantErr: "browse.rating",
		},
		{
			name:    "zero limit",
			mutate:  func(c *Config) { c.Browse.Limit = 0 },
			wantErr: "browse.limit",
		},
		{
			name:    "limit above maximum",
			mutate:  func(c *Config) { c.Browse.Limit = 51 },
			wantErr: "browse.limit",
		},
		{
			name:   "maximum limit",
			mutate: func(c *Config) { c.Browse.Limit = MaxLimit },
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Giphy.Timeout = 0 },
			wantErr: "giphy.timeout",
		},
		{
			name:    "empty preset",
			mutate:  func(c *Config) { c.Filter.Presets = map[string]string{"cats": " "} },
			wantErr: "filter.presets.cats",
		},
		{
			name:    "invalid level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: "invalid logging level",
		},
		{
			name:    "invalid format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
giphy:
  api_key: from-file
  timeout: 5s
  rate_limit: 2
browse:
  kind: stickers
  limit: 25
  rating: pg
  debounce: 250ms
filter:
  default: safe
  presets:
    safe: Rating == "g"
logging:
  level: debug
`), 0o600))

	cfg, err := Load(path, Build{})
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Giphy.APIKey)
	assert.Equal(t, "https://api.giphy.com/v1", cfg.Giphy.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Giphy.Timeout)
	assert.Equal(t, 2.0, cfg.Giphy.RateLimit)
	assert.Equal(t, "stickers", cfg.Browse.Kind)
	assert.Equal(t, 25, cfg.Browse.Limit)
	assert.Equal(t, "pg", cfg.Browse.Rating)
	assert.Equal(t, 250*time.Millisecond, cfg.Browse.Debounce)
	assert.Equal(t, "safe", cfg.Filter.Default)
	assert.Equal(t, map[string]string{"safe": `Rating == "g"`}, cfg.Filter.Presets)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "s0up4200/gifbox", cfg.Update.Repository)
}

func TestLoadBuildDefaultsAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("", Build{APIKey: "built-in", BaseURL: "https://proxy.example/v1"})
	require.NoError(t, err)
	assert.Equal(t, "built-in", cfg.Giphy.APIKey)
	assert.Equal(t, "https://proxy.example/v1", cfg.Giphy.BaseURL)
	assert.Equal(t, 500*time.Millisecond, cfg.Browse.Debounce)

	t.Setenv("GIFBOX_GIPHY_API_KEY", "from-env")
	t.Setenv("GIFBOX_BROWSE_LIMIT", "5")

	cfg, err = Load("", Build{APIKey: "built-in"})
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Giphy.APIKey)
	assert.Equal(t, 5, cfg.Browse.Limit)
}

func TestLoadErrors(t *testing.T) {
	t.Run("explicit file must exist", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), Build{APIKey: "k"})
		assert.ErrorContains(t, err, "error reading config")
	})

	t.Run("missing api key", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("HOME", t.TempDir())

		_, err := Load("", Build{})
		assert.ErrorContains(t, err, "giphy.api_key")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("giphy: [\n"), 0o600))

		_, err := Load(path, Build{APIKey: "k"})
		assert.Error(t, err)
	})
}
