package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodesAreDistinct(t *testing.T) {
	codes := []string{ErrConfig, ErrSource, ErrRead, ErrSink, ErrRender}

	seen := make(map[string]bool)
	for _, code := range codes {
		require.NotEmpty(t, code)
		assert.False(t, seen[code], "code %q used twice", code)
		seen[code] = true
	}
}

func TestError_SinkOutage(t *testing.T) {
	cause := &os.PathError{Op: "open", Path: "/var/log/perf.log", Err: fs.ErrPermission}
	err := WrapWithCode(cause, ErrSink,
		"Couldn't write performance log /var/log/perf.log",
		"Check that the directory is writable or pass --log-file.")

	want := "✗ Couldn't write performance log /var/log/perf.log\n" +
		"\n  open /var/log/perf.log: permission denied\n" +
		"\n  Check that the directory is writable or pass --log-file.\n"
	assert.Equal(t, want, err.Error())
	assert.ErrorIs(t, err, fs.ErrPermission)
}

func TestError_DeniedProcessReadHasNoSuggestion(t *testing.T) {
	cause := errors.New("open /proc/1/cmdline: permission denied")
	err := Wrap(cause, "Couldn't read processes")

	assert.Equal(t, ErrRead, err.Code, "Wrap is for per-tick read failures")
	assert.Empty(t, err.Suggestion)
	assert.Equal(t, "✗ Couldn't read processes\n\n  open /proc/1/cmdline: permission denied\n", err.Error())
	assert.Same(t, cause, err.Unwrap())
}

func TestError_ConfigWithoutCause(t *testing.T) {
	err := New(ErrConfig, "Invalid value for 'log.format': xml", "log.format must be one of: text, json, sqlite.")

	assert.Nil(t, err.Unwrap())
	assert.Equal(t,
		"✗ Invalid value for 'log.format': xml\n\n  log.format must be one of: text, json, sqlite.\n",
		err.Error())
}

func TestIsCode(t *testing.T) {
	startup := WrapWithCode(errors.New("every read failed"), ErrSource,
		"Couldn't read any system metrics", "")

	tests := []struct {
		name string
		err  error
		code string
		want bool
	}{
		{"direct match", startup, ErrSource, true},
		{"wrapped with fmt.Errorf", fmt.Errorf("starting: %w", startup), ErrSource, true},
		{"different code", startup, ErrRead, false},
		{"plain error", errors.New("terminal gone"), ErrRender, false},
		{"nil", nil, ErrConfig, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCode(tt.err, tt.code))
		})
	}
}

func TestErrorsAsFindsStructuredError(t *testing.T) {
	render := WrapWithCode(errors.New("program exited"), ErrRender, "Couldn't draw the dashboard", "")
	chained := fmt.Errorf("tick 12: %w", render)

	var tmErr *Error
	require.True(t, errors.As(chained, &tmErr))
	assert.Equal(t, ErrRender, tmErr.Code)
	assert.Equal(t, "Couldn't draw the dashboard", tmErr.Message)
}
