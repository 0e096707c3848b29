package monitor

import (
	"math"
	"time"

	"github.com/kartikahlawat/Taks-manager/internal/source"
)

// Metric is a reading that may be unavailable for this tick.
type Metric struct {
	Value float64
	Valid bool
}

// Unavailable is the zero Metric.
var Unavailable = Metric{}

// Available wraps a successfully read value.
func Available(v float64) Metric {
	return Metric{Value: v, Valid: true}
}

// OrNaN returns the value, or NaN when unavailable.
func (m Metric) OrNaN() float64 {
	if !m.Valid {
		return math.NaN()
	}
	return m.Value
}

// Sample is one tick's worth of host metrics. Rates are bytes per second.
type Sample struct {
	Time          time.Time
	CPUPercent    Metric
	MemoryUsed    Metric
	MemoryTotal   Metric
	DiskReadRate  Metric
	DiskWriteRate Metric
	NetSentRate   Metric
	NetRecvRate   Metric
	Battery       *source.Battery // nil when absent or unreadable
}

// MemoryPercent is used/total as a percentage.
func (s Sample) MemoryPercent() Metric {
	if !s.MemoryUsed.Valid || !s.MemoryTotal.Valid || s.MemoryTotal.Value <= 0 {
		return Unavailable
	}
	return Available(s.MemoryUsed.Value / s.MemoryTotal.Value * 100)
}

// AnyValid reports whether at least one metric was read.
func (s Sample) AnyValid() bool {
	for _, m := range []Metric{s.CPUPercent, s.MemoryUsed, s.DiskReadRate, s.DiskWriteRate, s.NetSentRate, s.NetRecvRate} {
		if m.Valid {
			return true
		}
	}
	return s.Battery != nil
}

// ProcessInfo is one ranked row of the process table.
type ProcessInfo struct {
	PID           int32
	Name          string
	CPUPercent    float64
	MemoryPercent float64
	Command       string
	// Restricted is set when the process could not be inspected.
	Restricted bool
}

// LogStatus describes the performance log for display.
type LogStatus struct {
	Enabled   bool
	Healthy   bool
	Path      string
	Format    string
	Written   uint64
	Dropped   uint64
	LastError string
}
