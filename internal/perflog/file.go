package perflog

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/kartikahlawat/Taks-manager/internal/monitor"
)

// FileSink appends one formatted line per sample to a file.
// The file is opened lazily and reopened after a failure.
type FileSink struct {
	path   string
	format Formatter
	file   *os.File
	w      *bufio.Writer
}

// NewFileSink creates a sink appending to path.
func NewFileSink(path string, format Formatter) *FileSink {
	if format == nil {
		format = FormatText
	}
	return &FileSink{path: path, format: format}
}

// Path returns the log file path.
func (s *FileSink) Path() string {
	return s.path
}

func (s *FileSink) open() error {
	if s.file != nil {
		return nil
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	s.file = f
	s.w = bufio.NewWriter(f)
	return nil
}

// Write appends one line and flushes it.
func (s *FileSink) Write(sample monitor.Sample) error {
	line, err := s.format(sample)
	if err != nil {
		return err
	}
	if err := s.open(); err != nil {
		return err
	}

	if _, err := s.w.Write(line); err != nil {
		s.reset()
		return err
	}
	if err := s.w.WriteByte('\n'); err != nil {
		s.reset()
		return err
	}
	if err := s.w.Flush(); err != nil {
		s.reset()
		return err
	}
	return nil
}

// Flush writes any buffered data to the file.
func (s *FileSink) Flush() error {
	if s.w == nil {
		return nil
	}
	return s.w.Flush()
}

// Close flushes, syncs and closes the file.
func (s *FileSink) Close() error {
	if s.file == nil {
		return nil
	}
	var firstErr error
	if err := s.w.Flush(); err != nil {
		firstErr = err
	}
	if err := s.file.Sync(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := s.file.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	s.file, s.w = nil, nil
	return firstErr
}

// reset drops the handle so the next write reopens the file.
func (s *FileSink) reset() {
	if s.file != nil {
		_ = s.file.Close()
	}
	s.file, s.w = nil, nil
}
