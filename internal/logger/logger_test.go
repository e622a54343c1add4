package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":  zapcore.DebugLevel,
		"info":   zapcore.InfoLevel,
		" WARN ": zapcore.WarnLevel,
		"error":  zapcore.ErrorLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestSetup_File writes through the global logger into a file destination.
// Not parallel: Setup replaces the global logger.
//
//nolint:paralleltest // Mutates the global logger.
func TestSetup_File(t *testing.T) {
	previous := Logger()
	previousLevel := Level()

	t.Cleanup(func() {
		SetLogger(previous)
		SetLevel(previousLevel)
	})

	path := filepath.Join(t.TempDir(), "timer.log")

	closeLog, err := Setup("debug", path)
	require.NoError(t, err)

	Logger().Debugw("Alarm rang", "phrase", "timer's up!")
	require.NoError(t, closeLog())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(contents), "Alarm rang")
	require.Contains(t, string(contents), "DEBUG")

	_, err = Setup("loud", "off")
	require.ErrorIs(t, err, errUnknownLevel)
}

// TestWithLevel lowers the level of a single logger below the shared one.
func TestWithLevel(t *testing.T) {
	t.Parallel()

	l := NewWithOutput(zapcore.InfoLevel, zapcore.AddSync(os.Stderr))
	require.False(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))

	verbose := l.WithOptions(WithLevel(zapcore.DebugLevel))
	require.True(t, verbose.Desugar().Core().Enabled(zapcore.DebugLevel))
}
