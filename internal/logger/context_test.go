package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestFromContext_FallsBackToGlobal ensures a bare context yields the global logger.
func TestFromContext_FallsBackToGlobal(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))
}

// TestContextHelpers verifies names and key-value pairs reach the log entry.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core).Sugar())

	ctx = WithName(ctx, "engine")
	ctx = WithKV(ctx, "state", "IDLE")
	ctx = WithFields(ctx, zap.Int("remaining", 5))

	InfoKV(ctx, "Transition", "to", "RUNNING")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "engine", entries[0].LoggerName)
	require.Equal(t, "Transition", entries[0].Message)

	fields := entries[0].ContextMap()
	require.Equal(t, "IDLE", fields["state"])
	require.Equal(t, int64(5), fields["remaining"])
	require.Equal(t, "RUNNING", fields["to"])
}
