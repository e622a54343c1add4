package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/analog-timer/internal/config"
	"github.com/oshokin/analog-timer/internal/service/server"
	"github.com/oshokin/analog-timer/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// listenAddress overrides the control API address.
	listenAddress string
	// webAddress overrides the web shell address.
	webAddress string
	// limit is the initial countdown limit.
	limit string
	// debug logs sound capability failures and every command.
	debug bool

	// rootCmd runs the timer with the terminal UI.
	rootCmd = &cobra.Command{
		Use:   "analog-timer",
		Short: "Run the analog countdown timer in the terminal.",
		Long: `Runs the countdown timer with an analog clock face in the terminal.

The same process serves the gRPC control API used by timerctl and, when
web_addr is configured, the offline web shell. Both addresses come from the
configuration file and can be overridden with flags; "off" disables one.
Without a terminal the timer runs headless.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(false)
		},
	}

	// serveCmd runs the same host without the terminal UI.
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the timer headless with the control API and web shell.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(true)
		},
	}
)

func run(headless bool) error {
	// Setup graceful shutdown handling.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	return server.Run(ctx, &server.Options{
		ConfigPath:    configPath,
		ListenAddress: listenAddress,
		WebAddress:    webAddress,
		Limit:         limit,
		Headless:      headless,
		SetupLogger:   true,
		Debug:         debug,
	})
}

// Execute runs the analog-timer CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVarP(&listenAddress, "listen", "l", "", `control API address, "off" to disable`)
	flags.StringVarP(&webAddress, "web", "w", "", `web shell address, "off" to disable`)
	flags.StringVar(&limit, "limit", "", "initial limit as HH:MM:SS, MM:SS or SS")

	// Hidden debug flag to log below log_level.
	flags.BoolVarP(&debug, "debug", "d", false, "log at debug level")

	err := flags.MarkHidden("debug")
	if err != nil {
		panic(err)
	}

	rootCmd.AddCommand(serveCmd)
}
