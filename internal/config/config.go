// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/glance/internal/history"
	"github.com/jmylchreest/glance/internal/render"
)

// Real-time signal numbers as seen by Go programs on Linux. glibc reserves
// the first two kernel real-time signals, so SIGRTMIN is 34.
const (
	SigRTMin = 34
	SigRTMax = 64
)

// Default signal offsets relative to SIGRTMIN.
const (
	DefaultMarkReadOffset = 0
	DefaultPreviousOffset = 2
	DefaultNextOffset     = 3
)

// Config is the configuration for glance.
// Loaded from ~/.config/glance/glance.toml
type Config struct {
	Format  FormatConfig  `toml:"format"`
	Signals SignalConfig  `toml:"signals"`
	History HistoryConfig `toml:"history"`
	Notify  NotifyConfig  `toml:"notify"`
}

// FormatConfig holds the three output templates. Each accepts {app},
// {summary}, {body}, {id} and {age}.
type FormatConfig struct {
	Read   string `toml:"read"`
	Unread string `toml:"unread"`
	Bar    string `toml:"bar"`
}

// SignalConfig holds trigger signal offsets relative to SIGRTMIN.
type SignalConfig struct {
	MarkRead int `toml:"mark_read"`
	Previous int `toml:"previous"`
	Next     int `toml:"next"`
}

// HistoryConfig holds history behavior settings.
type HistoryConfig struct {
	ReplaceMovesToEnd bool `toml:"replace_moves_to_end"` // Move replaced entries to most recent
}

// NotifyConfig controls notifications glance sends about itself.
type NotifyConfig struct {
	Internal    bool     `toml:"internal"`     // Report config reload failures in the history
	MinInterval Duration `toml:"min_interval"` // Minimum gap between identical reports
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Format: FormatConfig{
			Read:   render.DefaultReadFormat,
			Unread: render.DefaultUnreadFormat,
			Bar:    render.DefaultBarFormat,
		},
		Signals: SignalConfig{
			MarkRead: DefaultMarkReadOffset,
			Previous: DefaultPreviousOffset,
			Next:     DefaultNextOffset,
		},
		History: HistoryConfig{
			ReplaceMovesToEnd: false,
		},
		Notify: NotifyConfig{
			Internal:    true,
			MinInterval: Duration(5 * time.Second),
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "glance", "glance.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults, then overlay with file contents
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Templates().Validate(); err != nil {
		return err
	}

	offsets := map[string]int{
		"mark_read": c.Signals.MarkRead,
		"previous":  c.Signals.Previous,
		"next":      c.Signals.Next,
	}
	seen := make(map[int]string, len(offsets))
	for _, name := range []string{"mark_read", "previous", "next"} {
		off := offsets[name]
		if off < 0 || SigRTMin+off > SigRTMax {
			return fmt.Errorf("signal offset %s must be between 0 and %d, got %d", name, SigRTMax-SigRTMin, off)
		}
		if other, dup := seen[off]; dup {
			return fmt.Errorf("signal offset %d used by both %s and %s", off, other, name)
		}
		seen[off] = name
	}

	if c.Notify.MinInterval < 0 {
		return fmt.Errorf("notify min_interval must not be negative, got %s", c.Notify.MinInterval.Duration())
	}

	return nil
}

// Templates returns the configured template set.
func (c *Config) Templates() render.Templates {
	return render.Templates{
		Read:   render.Template(c.Format.Read),
		Unread: render.Template(c.Format.Unread),
		Bar:    render.Template(c.Format.Bar),
	}
}

// HistoryOptions returns the history store options.
func (c *Config) HistoryOptions() history.Options {
	return history.Options{ReplaceMovesToEnd: c.History.ReplaceMovesToEnd}
}
