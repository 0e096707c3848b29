package perflog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/kartikahlawat/Taks-manager/internal/monitor"
)

// TimestampLayout is the timestamp format of the text log.
const TimestampLayout = "2006-01-02 15:04:05"

// Formatter renders one sample as a single line without the trailing newline.
type Formatter func(monitor.Sample) ([]byte, error)

// FormatText renders the fixed human-readable line.
func FormatText(s monitor.Sample) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] CPU: %s, Memory: %s, Disk Read: %s, Disk Write: %s, Network Sent: %s, Network Received: %s",
		s.Time.Format(TimestampLayout),
		percentText(s.CPUPercent),
		memoryText(s),
		rateText(s.DiskReadRate),
		rateText(s.DiskWriteRate),
		rateText(s.NetSentRate),
		rateText(s.NetRecvRate),
	)
	if s.Battery != nil {
		fmt.Fprintf(&b, ", Battery: %.1f%%", s.Battery.Percent)
	}

	return []byte(b.String()), nil
}

func percentText(m monitor.Metric) string {
	if !m.Valid {
		return monitor.NotAvailable
	}
	return fmt.Sprintf("%.1f%%", m.Value)
}

func memoryText(s monitor.Sample) string {
	if !s.MemoryUsed.Valid || !s.MemoryTotal.Valid {
		return monitor.NotAvailable
	}
	return monitor.FormatBytesPrecise(s.MemoryUsed.Value) + "/" + monitor.FormatBytesPrecise(s.MemoryTotal.Value)
}

func rateText(m monitor.Metric) string {
	if !m.Valid {
		return monitor.NotAvailable
	}
	return monitor.FormatBytesPrecise(m.Value) + "/s"
}

// jsonRecord is the shape of one JSON log line. Unavailable values are null.
type jsonRecord struct {
	Time            time.Time `json:"time"`
	CPUPercent      *float64  `json:"cpu_percent"`
	MemoryUsed      *float64  `json:"memory_used_bytes"`
	MemoryTotal     *float64  `json:"memory_total_bytes"`
	DiskReadRate    *float64  `json:"disk_read_bytes_per_sec"`
	DiskWriteRate   *float64  `json:"disk_write_bytes_per_sec"`
	NetSentRate     *float64  `json:"net_sent_bytes_per_sec"`
	NetRecvRate     *float64  `json:"net_recv_bytes_per_sec"`
	BatteryPercent  *float64  `json:"battery_percent,omitempty"`
	BatteryCharging *bool     `json:"battery_charging,omitempty"`
}

// FormatJSON renders the sample as one JSON object.
func FormatJSON(s monitor.Sample) ([]byte, error) {
	rec := jsonRecord{
		Time:          s.Time.UTC(),
		CPUPercent:    valuePtr(s.CPUPercent),
		MemoryUsed:    valuePtr(s.MemoryUsed),
		MemoryTotal:   valuePtr(s.MemoryTotal),
		DiskReadRate:  valuePtr(s.DiskReadRate),
		DiskWriteRate: valuePtr(s.DiskWriteRate),
		NetSentRate:   valuePtr(s.NetSentRate),
		NetRecvRate:   valuePtr(s.NetRecvRate),
	}
	if s.Battery != nil {
		pct, charging := s.Battery.Percent, s.Battery.Charging
		rec.BatteryPercent = &pct
		rec.BatteryCharging = &charging
	}
	return json.Marshal(rec)
}

func valuePtr(m monitor.Metric) *float64 {
	if !m.Valid {
		return nil
	}
	v := m.Value
	return &v
}
