package monitor

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/kartikahlawat/Taks-manager/internal/source"
)

// DefaultTopProcesses is how many processes are shown by default.
const DefaultTopProcesses = 10

// maxCommandArgs is how many leading command-line arguments are shown.
const maxCommandArgs = 2

// ProcessSnapshot is the per-pid cumulative CPU time captured on the previous tick.
type ProcessSnapshot struct {
	Time    time.Time
	Entries map[int32]ProcessEntry
}

// ProcessEntry is what the snapshot remembers about one pid. The name acts as
// a soft identity check so a recycled pid starts over at zero.
type ProcessEntry struct {
	Name    string
	CPUTime float64
}

// Rank computes per-process CPU usage against prev and returns the topK rows
// sorted by CPU descending then pid ascending, plus the snapshot to use on the
// next tick. CPU percent is normalized to the whole machine (0-100).
//
// Processes that vanished mid-read are dropped. Processes that could not be
// inspected are kept with zeroed usage and marked Restricted.
func Rank(current []source.Process, prev ProcessSnapshot, now time.Time, topK, cores int) ([]ProcessInfo, ProcessSnapshot) {
	if cores < 1 {
		cores = 1
	}

	wall := 0.0
	if !prev.Time.IsZero() {
		wall = now.Sub(prev.Time).Seconds()
	}

	next := ProcessSnapshot{
		Time:    now,
		Entries: make(map[int32]ProcessEntry, len(current)),
	}
	rows := make([]ProcessInfo, 0, len(current))

	for _, p := range current {
		if p.Err != nil {
			if errors.Is(p.Err, source.ErrAccessDenied) {
				rows = append(rows, ProcessInfo{
					PID:        p.PID,
					Name:       p.Name,
					Restricted: true,
				})
			}
			continue
		}

		next.Entries[p.PID] = ProcessEntry{Name: p.Name, CPUTime: p.CPUTime}

		rows = append(rows, ProcessInfo{
			PID:           p.PID,
			Name:          p.Name,
			CPUPercent:    cpuPercent(prev.Entries, p, wall, cores),
			MemoryPercent: float64(p.MemoryPercent),
			Command:       commandLine(p.Cmdline, p.Name),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CPUPercent != rows[j].CPUPercent {
			return rows[i].CPUPercent > rows[j].CPUPercent
		}
		return rows[i].PID < rows[j].PID
	})

	if topK > 0 && len(rows) > topK {
		rows = rows[:topK]
	}

	return rows, next
}

func cpuPercent(prev map[int32]ProcessEntry, p source.Process, wall float64, cores int) float64 {
	if wall <= 0 {
		return 0
	}
	entry, ok := prev[p.PID]
	if !ok || entry.Name != p.Name {
		return 0
	}
	delta := p.CPUTime - entry.CPUTime
	if delta <= 0 {
		return 0
	}
	return clamp(delta/wall*100/float64(cores), 0, 100)
}

// commandLine shows the first arguments of the command line, falling back to the name.
func commandLine(args []string, name string) string {
	if len(args) == 0 {
		return name
	}
	if len(args) > maxCommandArgs {
		args = args[:maxCommandArgs]
	}
	return strings.Join(args, " ")
}

// Ranker carries the process snapshot between ticks.
type Ranker struct {
	topK  int
	cores int
	prev  ProcessSnapshot
}

// NewRanker creates a ranker returning topK rows for a host with the given core count.
func NewRanker(topK, cores int) *Ranker {
	if topK <= 0 {
		topK = DefaultTopProcesses
	}
	return &Ranker{topK: topK, cores: cores}
}

// SetCores updates the core count used for normalization.
func (r *Ranker) SetCores(cores int) {
	r.cores = cores
}

// Update ranks procs read at now and replaces the stored snapshot.
func (r *Ranker) Update(procs []source.Process, now time.Time) []ProcessInfo {
	rows, next := Rank(procs, r.prev, now, r.topK, r.cores)
	r.prev = next
	return rows
}
