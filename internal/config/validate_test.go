package config

import (
	"testing"
	"time"

	"github.com/kartikahlawat/Taks-manager/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantKey string
		wantMsg string
	}{
		{"interval too short", func(c *Config) { c.Interval = 50 * time.Millisecond }, "interval", "at least 100ms"},
		{"read timeout longer than interval", func(c *Config) { c.ReadTimeout = 2 * time.Second }, "read_timeout", "not be longer than interval"},
		{"process timeout too short", func(c *Config) { c.ProcessTimeout = time.Millisecond }, "process_timeout", "at least 10ms"},
		{"process timeout too long", func(c *Config) { c.ProcessTimeout = 2 * time.Minute }, "process_timeout", "at most 1m"},
		{"history too small", func(c *Config) { c.HistorySize = 1 }, "history_size", "at least 2"},
		{"top too large", func(c *Config) { c.TopProcesses = 500 }, "top_processes", "at most 100"},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, "log.format", "text, json, sqlite"},
		{"path required when enabled", func(c *Config) { c.Log.Path = "" }, "log.path", "--no-log"},
		{"retry zero", func(c *Config) { c.Log.RetryEvery = 0 }, "log.retry_every", "at least 1"},
		{"unknown display", func(c *Config) { c.Display.Mode = "gui" }, "display.mode", "auto, tui, plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
			assert.Contains(t, err.Error(), "'"+tt.wantKey+"'")
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidate_PathOptionalWhenDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Log.Enabled = false
	cfg.Log.Path = ""

	assert.NoError(t, Validate(cfg))
}
