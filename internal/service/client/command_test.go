package client

import (
	"context"
	"fmt"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "github.com/oshokin/analog-timer/internal/pb/v1"
)

// TestParseDelta accepts Go durations and plain seconds.
func TestParseDelta(t *testing.T) {
	t.Parallel()

	cases := map[string]int64{
		"30":     30,
		"-15":    -15,
		"30s":    30,
		"1m":     60,
		"-1m30s": -90,
		"1h":     3600,
		"1500ms": 1,
	}

	for raw, want := range cases {
		got, err := ParseDelta(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got, raw)
	}

	_, err := ParseDelta("")
	require.ErrorIs(t, err, errArgumentRequired)

	_, err = ParseDelta("soon")
	require.ErrorIs(t, err, errBadDelta)
}

// TestParseLimit converts clock values and rejects empty input.
func TestParseLimit(t *testing.T) {
	t.Parallel()

	limit, err := parseLimit("1:02:03")
	require.NoError(t, err)
	require.Equal(t, &pb.Limit{Hours: 1, Minutes: 2, Seconds: 3}, limit)

	limit, err = parseLimit("90")
	require.NoError(t, err)
	require.Equal(t, &pb.Limit{Seconds: 59}, limit)

	_, err = parseLimit(" ")
	require.ErrorIs(t, err, errArgumentRequired)

	_, err = parseLimit("a:b")
	require.Error(t, err)
}

// TestFormatSnapshot renders state, display, limit and timestamp.
func TestFormatSnapshot(t *testing.T) {
	t.Parallel()

	require.Equal(t, "<nil snapshot>", FormatSnapshot(nil))

	line := FormatSnapshot(&pb.SnapshotResponse{
		State:        "RUNNING",
		Display:      "00:04:59",
		LimitSeconds: 300,
		Timestamp:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.Equal(t, "RUNNING  00:04:59 (limit 00:05:00) at 2026-01-02T03:04:05Z", line)

	line = FormatSnapshot(&pb.SnapshotResponse{State: "IDLE", Display: "00:00:00"})
	require.Contains(t, line, "<unknown>")
}

// TestRetry_WaitsForHost retries Unavailable errors only when asked to.
func TestRetry_WaitsForHost(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		unavailable := fmt.Errorf("get snapshot: %w", status.Error(codes.Unavailable, "connection refused"))

		calls := 0
		call := func(context.Context) error {
			calls++
			if calls < 3 {
				return unavailable
			}

			return nil
		}

		require.ErrorIs(t, retry(context.Background(), false, call), unavailable)
		require.Equal(t, 1, calls)

		calls = 0
		start := time.Now()

		require.NoError(t, retry(context.Background(), true, call))
		require.Equal(t, 3, calls)
		require.Equal(t, 2*defaultRetryInterval, time.Since(start))

		invalid := status.Error(codes.InvalidArgument, "bad")
		err := retry(context.Background(), true, func(context.Context) error { return invalid })
		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}
