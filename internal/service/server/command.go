package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/oshokin/analog-timer/internal/config"
	"github.com/oshokin/analog-timer/internal/domain/timer"
	"github.com/oshokin/analog-timer/internal/logger"
	"github.com/oshokin/analog-timer/internal/service/engine"
	"github.com/oshokin/analog-timer/internal/service/sound"
	"github.com/oshokin/analog-timer/internal/tui"
)

// Options controls the analog-timer host process.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress overrides the control API address; "off" disables the API.
	ListenAddress string
	// WebAddress overrides the web shell address; "off" disables the shell.
	WebAddress string
	// Limit is the initial limit as HH:MM:SS, MM:SS or SS.
	Limit string
	// Headless runs without the terminal UI until the context is canceled.
	Headless bool
	// SetupLogger points the global logger at the configured destination.
	SetupLogger bool
	// Debug logs at debug level regardless of log_level.
	Debug bool
}

// disabledAddress turns a listener off from the command line.
const disabledAddress = "off"

// ErrNothingToRun is returned for a headless host without any listener.
var ErrNothingToRun = errors.New("headless host needs the control API or the web shell")

// Run hosts the timer engine with the configured surfaces and blocks until
// the context is canceled, the UI quits or a listener fails.
func Run(ctx context.Context, opts *Options) error {
	// Load configuration first to get server settings.
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	listenAddress, err := resolveAddress(settings.ListenAddress, opts.ListenAddress)
	if err != nil {
		return fmt.Errorf("resolve listen address: %w", err)
	}

	webAddress, err := resolveAddress(settings.WebAddress, opts.WebAddress)
	if err != nil {
		return fmt.Errorf("resolve web address: %w", err)
	}

	limit, err := initialLimit(opts.Limit)
	if err != nil {
		return err
	}

	headless := opts.Headless
	if !headless && !term.IsTerminal(int(os.Stdout.Fd())) {
		headless = true
	}

	if headless && listenAddress == "" && webAddress == "" {
		return ErrNothingToRun
	}

	if opts.SetupLogger {
		closeLog, setupErr := logger.Setup(settings.LogLevel, logDestination(settings.LogFile, headless))
		if setupErr != nil {
			return fmt.Errorf("setup logger: %w", setupErr)
		}

		defer func() { _ = closeLog() }()
	}

	if opts.Debug {
		ctx = logger.ToContext(ctx, logger.FromContext(ctx).WithOptions(logger.WithLevel(zapcore.DebugLevel)))
	}

	ctx = logger.WithName(ctx, "analog-timer")

	tone := sound.NewToneGenerator(settings.PlayerCommand)
	defer func() { _ = tone.Close() }()

	timerEngine := engine.New(engine.Options{
		TickInterval:  settings.TickInterval,
		AlarmInterval: settings.AlarmInterval,
		Phrase:        settings.Phrase,
		Tone:          tone,
		Speech:        sound.NewSpeaker(settings.SpeechCommand),
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return timerEngine.Run(groupCtx)
	})

	if limit != nil {
		if _, err = timerEngine.Dispatch(groupCtx, timer.Command{Action: timer.ActionSetLimit, Limit: *limit}); err != nil {
			cancel()

			return errors.Join(fmt.Errorf("set initial limit: %w", err), group.Wait())
		}
	}

	if listenAddress != "" {
		lis, listenErr := listen(groupCtx, listenAddress)
		if listenErr != nil {
			cancel()

			return errors.Join(listenErr, group.Wait())
		}

		group.Go(func() error {
			return serveGRPC(groupCtx, lis, timerEngine)
		})
	}

	if webAddress != "" {
		lis, listenErr := listen(groupCtx, webAddress)
		if listenErr != nil {
			cancel()

			return errors.Join(listenErr, group.Wait())
		}

		group.Go(func() error {
			return serveWeb(groupCtx, lis, settings, timerEngine)
		})
	}

	if headless {
		logger.InfoKV(ctx, "Timer host running headless", "listen_address", listenAddress, "web_address", webAddress)
	} else {
		group.Go(func() error {
			// Quitting the UI stops the whole host.
			defer cancel()

			return tui.Run(groupCtx, timerEngine, tui.Options{
				QuickAdd: settings.QuickAdd,
				Listen:   listenAddress,
				Web:      webAddress,
			})
		})
	}

	if err = group.Wait(); err != nil {
		return err
	}

	logger.Info(ctx, "Timer host stopped")

	return nil
}

// resolveAddress picks the listen address: the override wins over the
// configured one and "off" disables the listener.
func resolveAddress(configured, override string) (string, error) {
	address := configured
	if override != "" {
		address = override
	}

	address = strings.TrimSpace(address)
	if address == "" || strings.EqualFold(address, disabledAddress) {
		return "", nil
	}

	if _, _, err := net.SplitHostPort(address); err != nil {
		return "", fmt.Errorf("invalid address format %q: %w", address, err)
	}

	return address, nil
}

// initialLimit parses the --limit flag; empty means no initial limit.
func initialLimit(raw string) (*timer.Fields, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil //nolint:nilnil // No limit requested.
	}

	fields, err := timer.ParseClock(raw)
	if err != nil {
		return nil, fmt.Errorf("initial limit: %w", err)
	}

	return &fields, nil
}

// logDestination keeps the terminal free while the UI owns it.
func logDestination(logFile string, headless bool) string {
	switch {
	case logFile != "":
		return logFile
	case headless:
		return "-"
	default:
		return "off"
	}
}

func listen(ctx context.Context, address string) (net.Listener, error) {
	lc := net.ListenConfig{}

	lis, err := lc.Listen(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", address, err)
	}

	return lis, nil
}
