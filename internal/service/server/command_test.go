package server

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/analog-timer/internal/config"
	"github.com/oshokin/analog-timer/internal/domain/timer"
)

// TestResolveAddress verifies override precedence, disabling and validation.
func TestResolveAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		configured string
		override   string
		want       string
		wantErr    bool
	}{
		{name: "configured", configured: "127.0.0.1:50761", want: "127.0.0.1:50761"},
		{name: "override wins", configured: "127.0.0.1:50761", override: ":9090", want: ":9090"},
		{name: "empty disables", want: ""},
		{name: "off disables", configured: "127.0.0.1:50761", override: "OFF", want: ""},
		{name: "missing port", configured: "localhost", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveAddress(tt.configured, tt.override)
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

// TestInitialLimit checks parsing of the --limit flag.
func TestInitialLimit(t *testing.T) {
	t.Parallel()

	limit, err := initialLimit("")
	require.NoError(t, err)
	require.Nil(t, limit)

	limit, err = initialLimit("1:30")
	require.NoError(t, err)
	require.Equal(t, &timer.Fields{Minutes: 1, Seconds: 30}, limit)

	limit, err = initialLimit("00:75:00")
	require.NoError(t, err)
	require.Equal(t, &timer.Fields{Minutes: 59}, limit)

	_, err = initialLimit("soon")
	require.Error(t, err)
}

// TestLogDestination keeps logs off the terminal while the UI runs.
func TestLogDestination(t *testing.T) {
	t.Parallel()

	require.Equal(t, "timer.log", logDestination("timer.log", false))
	require.Equal(t, "-", logDestination("", true))
	require.Equal(t, "off", logDestination("", false))
}

// TestRun_HeadlessNeedsListener rejects a headless host with nothing to serve.
func TestRun_HeadlessNeedsListener(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, config.Save(cfgPath, &config.Config{}))

	err := Run(context.Background(), &Options{
		ConfigPath: cfgPath,
		Headless:   true,
	})
	require.ErrorIs(t, err, ErrNothingToRun)

	err = Run(context.Background(), &Options{
		ConfigPath: cfgPath,
		Headless:   true,
		Limit:      "1:2:3:4",
	})
	require.Error(t, err)
}
