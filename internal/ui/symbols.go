package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓" // Healthy
	SymbolFail    = "✗" // Failed
	SymbolWarning = "⚠" // Degraded
	SymbolLocked  = "⊘" // Access denied
)
