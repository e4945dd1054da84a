// Package config loads and stores the mstctl configuration: the exchange API
// endpoint and key, the default agent identity, and UI preferences. Settings
// live in a TOML file under the user's config directory and can be
// overridden per invocation through MSTCTL_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	env "github.com/caarlos0/env/v11"
)

// Config is the ~/.config/mstctl/config.toml file.
type Config struct {
	API      APIConfig      `toml:"api"`
	Defaults DefaultsConfig `toml:"defaults"`
	UI       UIConfig       `toml:"ui"`
}

// APIConfig locates and authenticates against the exchange.
type APIConfig struct {
	URL            string `toml:"url" config:"api.url" desc:"Exchange API base URL" env:"MSTCTL_API_URL"`
	Key            string `toml:"key" config:"api.key" desc:"API key (mst_...)" env:"MSTCTL_API_KEY"`
	TimeoutSeconds int    `toml:"timeout_seconds" config:"api.timeout_seconds" desc:"Request timeout in seconds" min:"1" max:"600" env:"MSTCTL_API_TIMEOUT"`
}

// DefaultsConfig holds per-user defaults applied when flags are omitted.
type DefaultsConfig struct {
	AgentID string `toml:"agent_id" config:"defaults.agent_id" desc:"Agent id used for orders and pending actions" env:"MSTCTL_AGENT_ID"`
	Limit   int    `toml:"limit" config:"defaults.limit" desc:"Server-side fetch cap per listing" min:"1" max:"100" env:"MSTCTL_LIMIT"`
}

// UIConfig holds presentation preferences.
type UIConfig struct {
	PageSize int `toml:"page_size" config:"ui.page_size" desc:"Rows per page in listings" min:"1" max:"100" env:"MSTCTL_PAGE_SIZE"`
}

// Default returns a config with sensible defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			URL:            "https://api.moltstreet.com",
			TimeoutSeconds: 30,
		},
		Defaults: DefaultsConfig{
			Limit: 100,
		},
		UI: UIConfig{
			PageSize: 15,
		},
	}
}

// Path returns the config file location, honoring MSTCTL_CONFIG.
func Path() (string, error) {
	if p := os.Getenv("MSTCTL_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "mstctl", "config.toml"), nil
}

// Load reads the config file, fills in defaults for anything unset, and then
// applies environment overrides. A missing file is not an error; you get
// defaults plus environment.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment overrides: %w", err)
	}

	return cfg, nil
}

// Save writes the config file, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}

// Timeout returns the API timeout as a duration.
func (c *Config) Timeout() time.Duration {
	if c.API.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}
