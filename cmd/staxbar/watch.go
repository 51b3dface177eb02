package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/staxbar/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Launch the interactive stack monitor",
	Long: `Launch an interactive terminal view of the message stack. The view
updates live as producers push and pop messages, and the selected message
can be popped or removed directly.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	return tui.Run(client)
}
