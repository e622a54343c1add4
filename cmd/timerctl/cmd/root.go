package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/analog-timer/internal/config"
	"github.com/oshokin/analog-timer/internal/service/client"
	"github.com/oshokin/analog-timer/internal/version"
)

var (
	// cfgPath stores the configuration file path.
	cfgPath string
	// address overrides the host address from the configuration.
	address string
	// wait keeps retrying until the host answers.
	wait bool

	// rootCmd represents the base command for controlling a running timer.
	rootCmd = &cobra.Command{
		Use:   "timerctl",
		Short: "Control a running analog-timer.",
		Long: `Sends commands to a running analog-timer over its gRPC control API.

The host address is read from listen_addr in the configuration file unless
--address is given. Every command prints the resulting snapshot.`,
		SilenceUsage: true,
	}
)

// actionCommand builds a subcommand that sends one timer action.
func actionCommand(use, short, action string, args cobra.PositionalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			var argument string
			if len(args) > 0 {
				argument = args[0]
			}

			return client.Run(ctx, &client.Options{
				ConfigPath: cfgPath,
				Address:    address,
				Action:     action,
				Argument:   argument,
				Wait:       wait,
				Out:        cmd.OutOrStdout(),
			})
		},
	}
}

// Execute runs the timerctl CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVarP(&address, "address", "a", "", "timer host address, overrides listen_addr")
	flags.BoolVarP(&wait, "wait", "W", false, "retry until the timer host is reachable")

	rootCmd.AddCommand(
		actionCommand("status", "Print the current timer state.", client.ActionStatus, cobra.NoArgs),
		actionCommand("start", "Start or resume the countdown.", "start", cobra.NoArgs),
		actionCommand("pause", "Pause the countdown.", "pause", cobra.NoArgs),
		actionCommand("stop", "Stop the countdown and keep the limit.", "stop", cobra.NoArgs),
		actionCommand("reset", "Stop the countdown and clear the limit.", "reset", cobra.NoArgs),
		actionCommand("ack", "Dismiss a finished countdown.", "acknowledge", cobra.NoArgs),
		actionCommand("add <duration>", "Add time, e.g. 30s or 90 (-- -1m subtracts); snoozes a finished timer.", "add",
			cobra.ExactArgs(1)),
		actionCommand("set <HH:MM:SS>", "Set the limit while idle.", "set", cobra.ExactArgs(1)),
		actionCommand("watch", "Print every state change until interrupted.", client.ActionWatch, cobra.NoArgs),
	)
}
