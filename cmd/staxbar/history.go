package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/staxbar/internal/config"
	"github.com/jmylchreest/staxbar/internal/journal"
	"github.com/jmylchreest/staxbar/internal/output"
)

var historyOpts struct {
	format  string
	limit   int
	noTime  bool
	noIndex bool
	clear   bool
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the message event journal",
	Long: `Show pushed and popped events recorded by the daemon, oldest first.

The journal is written by staxbard; this command only reads it, so it works
whether or not the daemon is currently running.

Examples:
  # Last 20 events, human readable
  staxbar history -n 20

  # Full journal as JSON
  staxbar history --format json

  # Wipe the journal
  staxbar history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVarP(&historyOpts.format, "format", "f", "",
		"Output format (plain, json, yaml; default from config)")
	historyCmd.Flags().IntVarP(&historyOpts.limit, "limit", "n", -1,
		"Maximum number of events to show, most recent kept (0=unlimited)")
	historyCmd.Flags().BoolVar(&historyOpts.noTime, "no-time", false,
		"Omit relative timestamps in plain output")
	historyCmd.Flags().BoolVar(&historyOpts.noIndex, "no-index", false,
		"Omit event indexes in plain output")
	historyCmd.Flags().BoolVar(&historyOpts.clear, "clear", false,
		"Clear the journal instead of printing it")
}

func runHistory(cmd *cobra.Command, args []string) error {
	j, err := journal.Open(config.JournalPath())
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() { _ = j.Close() }()

	if historyOpts.clear {
		if err := j.Clear(); err != nil {
			return fmt.Errorf("failed to clear journal: %w", err)
		}
		fmt.Fprintln(os.Stderr, "journal cleared")
		return nil
	}

	events, err := j.Load()
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}

	limit := historyOpts.limit
	if limit < 0 {
		limit = cfg.History.Limit
	}
	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}

	format := historyOpts.format
	if format == "" {
		format = cfg.Output.Format
	}

	opts := output.DefaultFormatterOptions()
	opts.ShowTime = !historyOpts.noTime
	opts.ShowIndex = !historyOpts.noIndex

	formatter, err := output.NewFormatter(output.FormatType(format), opts)
	if err != nil {
		return err
	}

	return formatter.Format(os.Stdout, events)
}
