// Package main provides the CLI entrypoint for staxbar.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/staxbar/internal/config"
	"github.com/jmylchreest/staxbar/internal/dbus"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
	}
	logger *slog.Logger

	// client is the shared connection to the staxbard daemon
	client *dbus.Client
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "staxbar",
	Short: "Status bar message stack control",
	Long: `staxbar controls the staxbard status bar daemon over the session bus.

Producers register a context for themselves, push status messages onto the
stack, and pop or remove them when done. The bar always shows the most
recently pushed message.

Running staxbar without a subcommand launches the interactive stack monitor.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		client, err = dbus.NewClient()
		if err != nil {
			return fmt.Errorf("failed to connect to session bus: %w", err)
		}

		return nil
	},
	// Default to the monitor TUI when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/staxbar/config.toml)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// resolveContext turns a context argument into a context id. Numeric
// arguments are taken as ids directly; anything else is registered as a
// context description with the daemon.
func resolveContext(arg string) (uint32, error) {
	if id, err := strconv.ParseUint(arg, 10, 32); err == nil {
		if id == 0 {
			return 0, fmt.Errorf("context id 0 is never assigned")
		}
		return uint32(id), nil
	}
	return client.ContextID(arg)
}
