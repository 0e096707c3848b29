package ui

import (
	"fmt"

	"github.com/kartikahlawat/Taks-manager/internal/monitor"
)

// RenderHeader renders the dashboard title line with the sample time and
// the performance log state.
func RenderHeader(d monitor.Dashboard) string {
	title := TitleStyle.Render(d.Title)

	when := "waiting for first sample"
	if !d.Time.IsZero() {
		when = d.Time.Format("2006-01-02 15:04:05")
	}
	stats := LabelStyle.Render(fmt.Sprintf(" | %s | tick %d", when, d.Tick))

	return HeaderStyle.Render(title+stats) + " " + renderLogField(d.Log, d.LogOK)
}

func renderLogField(f monitor.Field, ok bool) string {
	if f.Label == "" {
		return ""
	}
	if !ok {
		return ErrorTextStyle.Render(SymbolFail + " " + f.Label + ": " + f.Value)
	}
	return MutedStyle.Render(f.Label + ": " + f.Value)
}
