// Package config loads the optional daf config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the user-tunable defaults. Flags override everything
// here; the zero value is fully usable.
type Config struct {
	// Source is the default data locator (path or URL) used when a
	// command is not given one.
	Source string `yaml:"source"`

	// Listen is the serve address, e.g. ":8080".
	Listen string `yaml:"listen"`

	// RegenerateDelayMS is the simulated model latency in
	// milliseconds. Zero means the built-in default.
	RegenerateDelayMS int `yaml:"regenerate_delay_ms"`

	// HighlightWindowMS is how long regenerated metrics stay
	// highlighted, in milliseconds. Zero means the built-in default.
	HighlightWindowMS int `yaml:"highlight_window_ms"`
}

// RegenerateDelay returns the configured delay, or fallback when unset.
func (c *Config) RegenerateDelay(fallback time.Duration) time.Duration {
	if c.RegenerateDelayMS <= 0 {
		return fallback
	}
	return time.Duration(c.RegenerateDelayMS) * time.Millisecond
}

// HighlightWindow returns the configured window, or fallback when unset.
func (c *Config) HighlightWindow(fallback time.Duration) time.Duration {
	if c.HighlightWindowMS <= 0 {
		return fallback
	}
	return time.Duration(c.HighlightWindowMS) * time.Millisecond
}

// DefaultPath returns the conventional config location, or "" when the
// user config dir cannot be resolved.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "daf", "config.yaml")
}

// Load reads the config at path. A missing file is not an error: the
// zero config comes back. A present but unparseable file is an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
