package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by analog-timer and timerctl.
type Config struct {
	// ListenAddress is the gRPC control API address; empty disables the API.
	// timerctl dials the same address.
	ListenAddress string `yaml:"listen_addr"`
	// WebAddress is the offline web shell address; empty disables the shell.
	WebAddress string `yaml:"web_addr"`
	// WebUpstream is where shell requests that miss the cache are forwarded.
	WebUpstream string `yaml:"web_upstream"`
	// CacheDir holds the versioned shell asset cache.
	CacheDir string `yaml:"cache_dir"`
	// Timeout bounds network operations and RPC calls.
	Timeout time.Duration `yaml:"timeout"`
	// TickInterval is the countdown cadence.
	TickInterval time.Duration `yaml:"tick_interval"`
	// AlarmInterval is the cadence of repeated notifications while finished.
	AlarmInterval time.Duration `yaml:"alarm_interval"`
	// Phrase is spoken by every notification.
	Phrase string `yaml:"phrase"`
	// SpeechCommand overrides speech engine detection, e.g. "espeak -p 60".
	SpeechCommand string `yaml:"speech_command"`
	// PlayerCommand overrides audio player detection, e.g. "aplay -q".
	PlayerCommand string `yaml:"player_command"`
	// QuickAdd lists the add-time presets offered by the UI.
	QuickAdd []time.Duration `yaml:"quick_add"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// LogFile receives logs while the terminal UI owns the screen; "off" discards them.
	LogFile string `yaml:"log_file"`
}

const (
	// DefaultConfigFilename is the default filename for timer settings.
	DefaultConfigFilename = "analog-timer.yaml"

	// DefaultListenAddress is where the control API listens by default.
	DefaultListenAddress = "127.0.0.1:50761"

	// DefaultCacheDir is the default shell asset cache location.
	DefaultCacheDir = "analog-timer-cache"

	// DefaultTimeout is the default duration for network operations.
	DefaultTimeout = 5 * time.Second

	// DefaultTickInterval is the countdown cadence.
	DefaultTickInterval = time.Second

	// DefaultAlarmInterval is close to the length of one tone plus phrase.
	DefaultAlarmInterval = 2500 * time.Millisecond

	// DefaultPhrase is spoken when the countdown finishes.
	DefaultPhrase = "timer's up!"

	// DefaultLogLevel is the level used when none is configured.
	DefaultLogLevel = "info"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600

	// DefaultDirPermissions is used for the cache directories.
	DefaultDirPermissions = 0o755
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errBadQuickAdd is returned for a zero add-time preset.
	errBadQuickAdd = errors.New("quick add presets must be non-zero whole seconds")
	// errIntervalTooShort is returned for cadences below the minimum.
	errIntervalTooShort = errors.New("interval is too short")
)

// minInterval keeps the drivers from spinning.
const minInterval = 10 * time.Millisecond

// Default returns the settings used when no configuration file exists.
func Default() *Config {
	cfg := &Config{ListenAddress: DefaultListenAddress}

	//nolint:errcheck // Defaults always validate.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates it.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings and fills defaults for empty fields.
//
//nolint:cyclop // A flat list of independent checks.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	for _, address := range []string{settings.ListenAddress, settings.WebAddress} {
		if address == "" {
			continue
		}

		if _, _, err := net.SplitHostPort(address); err != nil {
			return fmt.Errorf("invalid address %q: %w", address, err)
		}
	}

	if settings.WebUpstream != "" {
		if _, err := url.ParseRequestURI(settings.WebUpstream); err != nil {
			return fmt.Errorf("invalid web upstream URI: %w", err)
		}
	}

	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	if settings.TickInterval == 0 {
		settings.TickInterval = DefaultTickInterval
	}

	if settings.AlarmInterval == 0 {
		settings.AlarmInterval = DefaultAlarmInterval
	}

	if settings.TickInterval < minInterval || settings.AlarmInterval < minInterval {
		return fmt.Errorf("tick %s, alarm %s: %w", settings.TickInterval, settings.AlarmInterval, errIntervalTooShort)
	}

	if settings.Phrase == "" {
		settings.Phrase = DefaultPhrase
	}

	if settings.CacheDir == "" {
		settings.CacheDir = DefaultCacheDir
	}

	if settings.LogLevel == "" {
		settings.LogLevel = DefaultLogLevel
	}

	if len(settings.QuickAdd) == 0 {
		settings.QuickAdd = []time.Duration{30 * time.Second, time.Minute}
	}

	for _, preset := range settings.QuickAdd {
		if preset == 0 || preset%time.Second != 0 {
			return fmt.Errorf("preset %s: %w", preset, errBadQuickAdd)
		}
	}

	return nil
}
