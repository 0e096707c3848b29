package ui

import (
	"testing"

	"github.com/kartikahlawat/Taks-manager/internal/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProcessTable() monitor.ProcessTable {
	return monitor.ProcessTable{
		Columns:   monitor.ProcessColumns,
		Available: true,
		Rows: []monitor.ProcessRow{
			{PID: "42", Name: "postgres", CPU: "50.0", Memory: "3.2", Command: "postgres -D"},
			{PID: "1", Name: "init", CPU: "-", Memory: "-", Command: "(access denied)", Restricted: true},
		},
	}
}

func TestProcessColumns(t *testing.T) {
	cols := processColumns(monitor.ProcessColumns, 100)
	require.Len(t, cols, 5)

	assert.Equal(t, "PID", cols[0].Title)
	assert.Equal(t, pidWidth, cols[0].Width)
	assert.Equal(t, nameWidth, cols[1].Width)

	total := 0
	for _, c := range cols {
		total += c.Width + tableCellPadding
	}
	assert.Equal(t, 100, total)
}

func TestProcessColumns_NarrowKeepsMinimumCommand(t *testing.T) {
	cols := processColumns(monitor.ProcessColumns, 20)
	assert.Equal(t, minCommandWidth, cols[4].Width)
}

func TestRenderProcessTable(t *testing.T) {
	out := RenderProcessTable(sampleProcessTable(), 80)

	assert.Contains(t, out, "PID")
	assert.Contains(t, out, "COMMAND")
	assert.Contains(t, out, "postgres")
	assert.Contains(t, out, "50.0")
	assert.Contains(t, out, "(access denied)")
}

func TestRenderProcessTable_Unavailable(t *testing.T) {
	out := RenderProcessTable(monitor.ProcessTable{Columns: monitor.ProcessColumns}, 80)
	assert.Contains(t, out, "Process list unavailable")
}

func TestRenderProcessTable_Empty(t *testing.T) {
	out := RenderProcessTable(monitor.ProcessTable{Columns: monitor.ProcessColumns, Available: true}, 80)
	assert.Equal(t, "No processes", out)
}
