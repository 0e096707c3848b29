// Package source reads raw host telemetry: CPU utilization, memory, cumulative
// disk and network byte counters, the process table, battery and static
// system information.
//
// Source is the seam between the monitor and the operating system. Host is
// the gopsutil-backed implementation; tests use the fake in the testing
// subpackage.
package source

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrProcessGone is attached to a Process that exited while it was being read.
	ErrProcessGone = errors.New("process no longer exists")
	// ErrAccessDenied is attached to a Process the current user may not inspect.
	ErrAccessDenied = errors.New("access denied")
)

// Source provides the raw readings the monitor samples each tick.
// Every method may block; implementations should honor ctx cancellation.
type Source interface {
	// CPUPercent returns whole-machine utilization since the previous call, 0-100.
	CPUPercent(ctx context.Context) (float64, error)
	Memory(ctx context.Context) (Memory, error)
	// DiskCounters returns cumulative bytes read and written across all disks.
	DiskCounters(ctx context.Context) (IOCounters, error)
	// NetCounters returns cumulative bytes sent and received across all interfaces.
	NetCounters(ctx context.Context) (NetCounters, error)
	// Processes lists every process. A record that could not be read carries Err.
	Processes(ctx context.Context) ([]Process, error)
	// Battery returns nil with a nil error when the host has no battery.
	Battery(ctx context.Context) (*Battery, error)
	SystemInfo(ctx context.Context) (SystemInfo, error)
}

// Memory is the virtual memory usage in bytes.
type Memory struct {
	Used  uint64
	Total uint64
}

// IOCounters are cumulative disk byte counters.
type IOCounters struct {
	ReadBytes  uint64
	WriteBytes uint64
}

// NetCounters are cumulative network byte counters.
type NetCounters struct {
	BytesSent uint64
	BytesRecv uint64
}

// Process is one row of the process table.
type Process struct {
	PID  int32
	Name string
	// CPUTime is cumulative user+system CPU seconds.
	CPUTime       float64
	MemoryPercent float32
	Cmdline       []string
	// Err is ErrAccessDenied, ErrProcessGone or another read failure.
	Err error
}

// Battery is the charge state of the primary battery.
type Battery struct {
	Percent  float64
	Charging bool
}

// SystemInfo describes the host. It is read once at startup.
type SystemInfo struct {
	Hostname string
	OS       string
	Platform string
	Release  string
	Kernel   string
	Arch     string
	CPUModel string
	Cores    int
	BootTime time.Time
}
