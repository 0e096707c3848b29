package perflog

import (
	"fmt"

	"github.com/kartikahlawat/Taks-manager/internal/errors"
	"github.com/kartikahlawat/Taks-manager/internal/monitor"
)

// Log formats.
const (
	FormatNameText   = "text"
	FormatNameJSON   = "json"
	FormatNameSQLite = "sqlite"
)

// Sink persists samples. It is only ever called from one goroutine.
// A failed Write must leave the sink able to retry later.
type Sink interface {
	Write(monitor.Sample) error
	// Flush pushes buffered data to the operating system.
	Flush() error
	// Close flushes, syncs to stable storage and releases the sink.
	Close() error
}

// NewSink builds the sink for a format name. Nothing is opened until the first write.
func NewSink(format, path string) (Sink, error) {
	switch format {
	case "", FormatNameText:
		return NewFileSink(path, FormatText), nil
	case FormatNameJSON:
		return NewFileSink(path, FormatJSON), nil
	case FormatNameSQLite:
		return NewSQLiteSink(path), nil
	default:
		return nil, errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown log format '%s'", format),
			"Use one of: text, json, sqlite.")
	}
}
