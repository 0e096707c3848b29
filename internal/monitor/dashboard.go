package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/kartikahlawat/Taks-manager/internal/source"
	"github.com/kartikahlawat/Taks-manager/internal/util"
)

// Frame is everything the renderer needs for one tick.
type Frame struct {
	Sample    Sample
	History   map[string][]float64
	Capacity  int
	Processes []ProcessInfo
	// ProcessesOK is false when the process table could not be read this tick.
	ProcessesOK bool
	System      source.SystemInfo
	SystemOK    bool
	Log         LogStatus
	Tick        uint64
	Interval    time.Duration
}

// GraphKind selects how a graph is scaled.
type GraphKind int

const (
	// GraphPercent is plotted on a fixed 0-100 scale.
	GraphPercent GraphKind = iota
	// GraphRate is scaled to the series maximum.
	GraphRate
)

// Field is a label/value pair.
type Field struct {
	Label string
	Value string
}

// Graph is a history series to plot. NaN points are gaps.
type Graph struct {
	Label    string
	Kind     GraphKind
	Points   []float64
	Capacity int
}

// Panel is one metric section of the dashboard.
type Panel struct {
	Title   string
	Summary string
	// Gauge drives a bar for percentage panels; unavailable for rate panels.
	Gauge  Metric
	Fields []Field
	Graphs []Graph
}

// ProcessRow is a formatted process table row.
type ProcessRow struct {
	PID        string
	Name       string
	CPU        string
	Memory     string
	Command    string
	Restricted bool
}

// ProcessTable is the top-K process listing.
type ProcessTable struct {
	Columns   []string
	Rows      []ProcessRow
	Available bool
}

// Dashboard is a declarative description of the screen. Displays decide how
// to lay it out; the same Frame always produces the same Dashboard.
type Dashboard struct {
	Title     string
	Time      time.Time
	Tick      uint64
	Panels    []Panel
	Processes ProcessTable
	System    []Field
	Log       Field
	LogOK     bool
}

// ProcessColumns are the process table headers.
var ProcessColumns = []string{"PID", "NAME", "CPU%", "MEM%", "COMMAND"}

// Renderer converts frames to dashboards.
type Renderer struct {
	// Title is shown in the dashboard header.
	Title string
}

// Draw builds the dashboard for f. It has no side effects.
func (r Renderer) Draw(f Frame) Dashboard {
	title := r.Title
	if title == "" {
		title = "taskmanager"
	}

	d := Dashboard{
		Title: title,
		Time:  f.Sample.Time,
		Tick:  f.Tick,
		Panels: []Panel{
			cpuPanel(f),
			memoryPanel(f),
			diskPanel(f),
			networkPanel(f),
		},
		Processes: processTable(f),
		System:    systemFields(f),
	}
	d.Log, d.LogOK = logField(f.Log)
	return d
}

func cpuPanel(f Frame) Panel {
	s := f.Sample
	p := Panel{
		Title:   "CPU",
		Summary: formatPercent(s.CPUPercent),
		Gauge:   s.CPUPercent,
		Fields:  []Field{{Label: "Usage", Value: formatPercent(s.CPUPercent)}},
		Graphs:  []Graph{graph(f, "Usage", MetricCPU, GraphPercent)},
	}
	if f.SystemOK && f.System.Cores > 0 {
		p.Fields = append(p.Fields, Field{Label: "Cores", Value: fmt.Sprintf("%d", f.System.Cores)})
	}
	return p
}

func memoryPanel(f Frame) Panel {
	s := f.Sample
	pct := s.MemoryPercent()

	used := NotAvailable
	if s.MemoryUsed.Valid && s.MemoryTotal.Valid {
		used = fmt.Sprintf("%s / %s",
			FormatBytes(uint64(s.MemoryUsed.Value)),
			FormatBytes(uint64(s.MemoryTotal.Value)))
	}

	return Panel{
		Title:   "Memory",
		Summary: formatPercent(pct),
		Gauge:   pct,
		Fields: []Field{
			{Label: "Used", Value: used},
			{Label: "Usage", Value: formatPercent(pct)},
		},
		Graphs: []Graph{graph(f, "Usage", MetricMemory, GraphPercent)},
	}
}

func diskPanel(f Frame) Panel {
	s := f.Sample
	return Panel{
		Title:   "Disk I/O",
		Summary: ratePair("R", s.DiskReadRate, "W", s.DiskWriteRate),
		Fields: []Field{
			{Label: "Read", Value: formatRateMetric(s.DiskReadRate)},
			{Label: "Write", Value: formatRateMetric(s.DiskWriteRate)},
		},
		Graphs: []Graph{
			graph(f, "Read", MetricDiskRead, GraphRate),
			graph(f, "Write", MetricDiskWrite, GraphRate),
		},
	}
}

func networkPanel(f Frame) Panel {
	s := f.Sample
	return Panel{
		Title:   "Network",
		Summary: ratePair("↑", s.NetSentRate, "↓", s.NetRecvRate),
		Fields: []Field{
			{Label: "Sent", Value: formatRateMetric(s.NetSentRate)},
			{Label: "Received", Value: formatRateMetric(s.NetRecvRate)},
		},
		Graphs: []Graph{
			graph(f, "Sent", MetricNetSent, GraphRate),
			graph(f, "Received", MetricNetRecv, GraphRate),
		},
	}
}

func ratePair(aLabel string, a Metric, bLabel string, b Metric) string {
	return fmt.Sprintf("%s %s  %s %s", aLabel, formatRateMetric(a), bLabel, formatRateMetric(b))
}

func graph(f Frame, label, name string, kind GraphKind) Graph {
	points := f.History[name]
	return Graph{
		Label:    label,
		Kind:     kind,
		Points:   append([]float64(nil), points...),
		Capacity: f.Capacity,
	}
}

func processTable(f Frame) ProcessTable {
	t := ProcessTable{
		Columns:   append([]string(nil), ProcessColumns...),
		Available: f.ProcessesOK,
	}
	for _, p := range f.Processes {
		row := ProcessRow{
			PID:        fmt.Sprintf("%d", p.PID),
			Name:       p.Name,
			CPU:        fmt.Sprintf("%.1f", p.CPUPercent),
			Memory:     fmt.Sprintf("%.1f", p.MemoryPercent),
			Command:    p.Command,
			Restricted: p.Restricted,
		}
		if p.Restricted {
			row.CPU, row.Memory = "-", "-"
			if row.Name == "" {
				row.Name = "?"
			}
			row.Command = "(access denied)"
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func systemFields(f Frame) []Field {
	if !f.SystemOK {
		return []Field{{Label: "System", Value: NotAvailable}}
	}
	si := f.System

	osName := strings.TrimSpace(si.Platform + " " + si.Release)
	if osName == "" {
		osName = si.OS
	}
	cpuModel := si.CPUModel
	if cpuModel == "" {
		cpuModel = NotAvailable
	}

	fields := []Field{
		{Label: "Host", Value: si.Hostname},
		{Label: "OS", Value: osName},
		{Label: "Kernel", Value: si.Kernel},
		{Label: "Arch", Value: si.Arch},
		{Label: "CPU", Value: fmt.Sprintf("%s (%d cores)", cpuModel, si.Cores)},
	}

	uptime := NotAvailable
	if !si.BootTime.IsZero() && !f.Sample.Time.IsZero() {
		uptime = FormatUptime(f.Sample.Time.Sub(si.BootTime))
	}
	fields = append(fields, Field{Label: "Uptime", Value: uptime})
	fields = append(fields, Field{Label: "Battery", Value: batteryText(f.Sample.Battery)})
	return fields
}

func batteryText(b *source.Battery) string {
	if b == nil {
		return NotAvailable
	}
	state := "Discharging"
	if b.Charging {
		state = "Charging"
	}
	return fmt.Sprintf("%.1f%% (%s)", b.Percent, state)
}

func logField(ls LogStatus) (Field, bool) {
	switch {
	case !ls.Enabled:
		return Field{Label: "Log", Value: "disabled"}, true
	case !ls.Healthy:
		msg := "write failed, retrying"
		if ls.LastError != "" {
			msg += ": " + ls.LastError
		}
		return Field{Label: "Log", Value: msg}, false
	case ls.Dropped > 0:
		return Field{Label: "Log", Value: fmt.Sprintf("%s (%s dropped)", ls.Path, util.CountOf(ls.Dropped, "line", "lines"))}, true
	default:
		return Field{Label: "Log", Value: ls.Path}, true
	}
}
