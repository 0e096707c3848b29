package config

import (
	"time"

	"github.com/kartikahlawat/Taks-manager/internal/monitor"
	"github.com/kartikahlawat/Taks-manager/internal/perflog"
)

// Display modes.
const (
	DisplayAuto  = "auto"
	DisplayTUI   = "tui"
	DisplayPlain = "plain"
)

// Config is the effective taskmanager configuration.
type Config struct {
	// Interval is the tick period.
	Interval time.Duration `mapstructure:"interval" validate:"min=100ms"`
	// ReadTimeout bounds each metric source call.
	ReadTimeout time.Duration `mapstructure:"read_timeout" validate:"min=10ms,ltefield=Interval"`
	// ProcessTimeout bounds the process table read.
	ProcessTimeout time.Duration `mapstructure:"process_timeout" validate:"min=10ms,max=1m"`
	// HistorySize is the number of points kept per metric.
	HistorySize int `mapstructure:"history_size" validate:"min=2,max=3600"`
	// TopProcesses is how many processes the table shows.
	TopProcesses int `mapstructure:"top_processes" validate:"min=1,max=100"`

	Log     LogConfig     `mapstructure:"log"`
	Display DisplayConfig `mapstructure:"display"`
}

// LogConfig controls the performance log.
type LogConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
	Format  string `mapstructure:"format" validate:"oneof=text json sqlite"`
	// RetryEvery is how many ticks to wait before retrying a failing log.
	RetryEvery int `mapstructure:"retry_every" validate:"min=1,max=3600"`
	QueueSize  int `mapstructure:"queue_size" validate:"min=1,max=100000"`
}

// DisplayConfig selects how the dashboard is shown.
type DisplayConfig struct {
	Mode string `mapstructure:"mode" validate:"oneof=auto tui plain"`
}

// DefaultConfig returns a config with all defaults applied.
func DefaultConfig() *Config {
	return &Config{
		Interval:       monitor.DefaultInterval,
		ReadTimeout:    monitor.DefaultReadTimeout,
		ProcessTimeout: monitor.DefaultProcessTimeout,
		HistorySize:    monitor.DefaultHistorySize,
		TopProcesses:   monitor.DefaultTopProcesses,
		Log: LogConfig{
			Enabled:    true,
			Path:       perflog.DefaultPath,
			Format:     perflog.FormatNameText,
			RetryEvery: perflog.DefaultRetryEvery,
			QueueSize:  perflog.DefaultQueueSize,
		},
		Display: DisplayConfig{
			Mode: DisplayAuto,
		},
	}
}
