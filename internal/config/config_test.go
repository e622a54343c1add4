package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks format validations and defaults.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(nil))

	// Bad address.
	settings := &Config{ListenAddress: "no-port"}
	require.Error(t, Validate(settings))

	// Bad upstream.
	settings = &Config{WebUpstream: "not a url"}
	require.Error(t, Validate(settings))

	// Bad preset.
	settings = &Config{QuickAdd: []time.Duration{1500 * time.Millisecond}}
	require.ErrorIs(t, Validate(settings), errBadQuickAdd)

	// Too fast.
	settings = &Config{TickInterval: time.Millisecond}
	require.ErrorIs(t, Validate(settings), errIntervalTooShort)

	// Defaults are filled.
	settings = &Config{WebAddress: "127.0.0.1:0"}
	require.NoError(t, Validate(settings))
	require.Equal(t, DefaultTimeout, settings.Timeout)
	require.Equal(t, DefaultTickInterval, settings.TickInterval)
	require.Equal(t, DefaultAlarmInterval, settings.AlarmInterval)
	require.Equal(t, DefaultPhrase, settings.Phrase)
	require.Equal(t, []time.Duration{30 * time.Second, time.Minute}, settings.QuickAdd)
	require.Empty(t, settings.ListenAddress)
}

// TestLoad_MissingFileYieldsDefaults ensures a fresh install works without settings.
func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultListenAddress, cfg.ListenAddress)
	require.Equal(t, DefaultAlarmInterval, cfg.AlarmInterval)
}

// TestLoad_ParsesDurations reads human-written durations.
func TestLoad_ParsesDurations(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	contents := []byte("listen_addr: 127.0.0.1:6000\nalarm_interval: 3s\nquick_add: [10s, 5m]\nphrase: tea is ready\n")
	require.NoError(t, os.WriteFile(path, contents, DefaultFilePermissions))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 3*time.Second, cfg.AlarmInterval)
	require.Equal(t, []time.Duration{10 * time.Second, 5 * time.Minute}, cfg.QuickAdd)
	require.Equal(t, "tea is ready", cfg.Phrase)

	require.NoError(t, os.WriteFile(path, []byte("listen_addr: [oops"), DefaultFilePermissions))

	_, err = Load(path)
	require.Error(t, err)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	settings := &Config{
		ListenAddress: "127.0.0.1:50051",
		WebAddress:    "127.0.0.1:8080",
		WebUpstream:   "https://timer.example.com/",
		AlarmInterval: 4 * time.Second,
	}

	require.NoError(t, Save(path, settings))
	require.Error(t, Save(path, nil))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings.ListenAddress, loaded.ListenAddress)
	require.Equal(t, settings.WebAddress, loaded.WebAddress)
	require.Equal(t, settings.WebUpstream, loaded.WebUpstream)
	require.Equal(t, settings.AlarmInterval, loaded.AlarmInterval)

	// File exists.
	_, err = os.Stat(path)
	require.NoError(t, err)
}
