package config

import (
	"gopkg.in/yaml.v3"
)

// printable mirrors Config with durations as strings, so the YAML output can
// be read back as a config file.
type printable struct {
	Interval       string       `yaml:"interval"`
	ReadTimeout    string       `yaml:"read_timeout"`
	ProcessTimeout string       `yaml:"process_timeout"`
	HistorySize    int          `yaml:"history_size"`
	TopProcesses   int          `yaml:"top_processes"`
	Log            printableLog `yaml:"log"`
	Display        struct {
		Mode string `yaml:"mode"`
	} `yaml:"display"`
}

type printableLog struct {
	Enabled    bool   `yaml:"enabled"`
	Path       string `yaml:"path"`
	Format     string `yaml:"format"`
	RetryEvery int    `yaml:"retry_every"`
	QueueSize  int    `yaml:"queue_size"`
}

// YAML renders the effective config in config file format.
func (c *Config) YAML() ([]byte, error) {
	p := printable{
		Interval:       c.Interval.String(),
		ReadTimeout:    c.ReadTimeout.String(),
		ProcessTimeout: c.ProcessTimeout.String(),
		HistorySize:    c.HistorySize,
		TopProcesses:   c.TopProcesses,
		Log: printableLog{
			Enabled:    c.Log.Enabled,
			Path:       c.Log.Path,
			Format:     c.Log.Format,
			RetryEvery: c.Log.RetryEvery,
			QueueSize:  c.Log.QueueSize,
		},
	}
	p.Display.Mode = c.Display.Mode
	return yaml.Marshal(p)
}
