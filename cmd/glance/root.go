// Package main provides the CLI entrypoint for glance.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

var (
	globalOpts struct {
		verbose    bool
		configPath string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "glance",
	Short: "Notification daemon that renders to a Waybar custom module",
	Long: `glance is a minimal freedesktop notification daemon.

It claims org.freedesktop.Notifications on the session bus, keeps an
in-memory history and writes one JSON line per change to stdout in the
format Waybar's custom modules expect. Real-time signals (or the
"glance trigger" command) move a cursor through the history.

Running glance without a subcommand starts the daemon.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDaemon(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if logger == nil {
			setupLogger()
		}
		logger.Error("glance failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/glance/glance.toml)")

	addDaemonFlags(rootCmd)
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelInfo
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	// Log to stderr; stdout belongs to Waybar
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler).With("version", version)
	slog.SetDefault(logger)
}
