package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/zerr"
	"go.trai.ch/zmkbuild/internal/adapters/logger"
)

// newTestLogger creates a logger with an injected bytes.Buffer for isolated testing.
// It also sets NO_COLOR=1 to ensure deterministic output without ANSI escape codes.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg, ok := logger.New().(*logger.Logger)
	require.True(t, ok)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Info(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Info("some message")

	g := goldie.New(t)
	g.Assert(t, "info_basic", buf.Bytes())
}

func TestLogger_Warn(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Warn("Source file not found")

	g := goldie.New(t)
	g.Assert(t, "warn_basic", buf.Bytes())
}

func TestLogger_Error(t *testing.T) {
	t.Run("joined chain", func(t *testing.T) {
		lg, buf := newTestLogger(t)
		err := errors.Join(
			errors.New("build failed"),
			zerr.Wrap(errors.New("exit status 2"), "command failed"),
		)
		lg.Error(err)

		g := goldie.New(t)
		g.Assert(t, "error_chain", buf.Bytes())
	})

	t.Run("nil error is ignored", func(t *testing.T) {
		lg, buf := newTestLogger(t)
		lg.Error(nil)
		assert.Empty(t, buf.String())
	})

	t.Run("metadata is rendered", func(t *testing.T) {
		lg, buf := newTestLogger(t)
		lg.Error(zerr.With(zerr.New("board is required"), "shield", "corne_left"))
		assert.Contains(t, buf.String(), "Error: board is required")
		assert.Contains(t, buf.String(), "shield=corne_left")
	})
}

func TestFormatErrorEntries(t *testing.T) {
	entries := logger.CollectErrorEntries(errors.New("first\nsecond"))
	require.Len(t, entries, 1)

	assert.Equal(t, "Error: first\n       second", logger.FormatErrorEntries(entries))
}
