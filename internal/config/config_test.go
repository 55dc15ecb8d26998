package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/glance/internal/render"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, render.DefaultReadFormat, cfg.Format.Read)
	assert.Equal(t, render.DefaultUnreadFormat, cfg.Format.Unread)
	assert.Equal(t, render.DefaultBarFormat, cfg.Format.Bar)
	assert.Equal(t, 0, cfg.Signals.MarkRead)
	assert.Equal(t, 2, cfg.Signals.Previous)
	assert.Equal(t, 3, cfg.Signals.Next)
	assert.False(t, cfg.History.ReplaceMovesToEnd)
	assert.True(t, cfg.Notify.Internal)
	assert.Equal(t, 5*time.Second, cfg.Notify.MinInterval.Duration())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/glance.toml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_ParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glance.toml")

	content := `
[format]
bar = "{app}: {summary}"

[signals]
next = 5

[history]
replace_moves_to_end = true

[notify]
min_interval = "30s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "{app}: {summary}", cfg.Format.Bar)
	assert.Equal(t, render.DefaultReadFormat, cfg.Format.Read, "unset keys keep defaults")
	assert.Equal(t, 5, cfg.Signals.Next)
	assert.Equal(t, 2, cfg.Signals.Previous)
	assert.True(t, cfg.History.ReplaceMovesToEnd)
	assert.Equal(t, 30*time.Second, cfg.Notify.MinInterval.Duration())
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glance.toml")
	require.NoError(t, os.WriteFile(path, []byte("[format\nbar = "), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glance.toml")
	require.NoError(t, os.WriteFile(path, []byte("[format]\nbar = \"\"\n"), 0644))

	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, render.ErrEmptyTemplate)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty unread", func(c *Config) { c.Format.Unread = "" }, true},
		{"negative offset", func(c *Config) { c.Signals.Next = -1 }, true},
		{"offset past SIGRTMAX", func(c *Config) { c.Signals.Next = 31 }, true},
		{"max offset", func(c *Config) { c.Signals.Next = 30 }, false},
		{"duplicate offsets", func(c *Config) { c.Signals.Previous = c.Signals.Next }, true},
		{"negative interval", func(c *Config) { c.Notify.MinInterval = Duration(-time.Second) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "glance.toml")

	cfg := DefaultConfig()
	cfg.Format.Bar = "{summary}"
	cfg.Signals.Next = 7
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfigPath_UsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/glance/glance.toml", ConfigPath())
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"5s", 5 * time.Second, false},
		{"1m30s", 90 * time.Second, false},
		{"2500", 2500 * time.Millisecond, false},
		{"soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d.Duration())
		})
	}
}

func TestTemplates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Format.Bar = "{app}"

	tmpl := cfg.Templates()
	assert.Equal(t, render.Template("{app}"), tmpl.Bar)
	assert.Equal(t, render.Template(render.DefaultReadFormat), tmpl.Read)
}

func TestHistoryOptions(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.HistoryOptions().ReplaceMovesToEnd)

	cfg.History.ReplaceMovesToEnd = true
	assert.True(t, cfg.HistoryOptions().ReplaceMovesToEnd)
}
