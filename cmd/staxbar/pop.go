package main

import (
	"github.com/spf13/cobra"
)

var popCmd = &cobra.Command{
	Use:   "pop <context>",
	Short: "Pop the most recent message of a context",
	Long: `Remove the most recently pushed message belonging to a context. Other
contexts' messages are untouched, even if they sit above it on the stack.

Popping a context with no messages on the stack is a no-op.

Examples:
  staxbar pop "ci build"
  staxbar pop 3`,
	Args: cobra.ExactArgs(1),
	RunE: runPop,
}

func init() {
	rootCmd.AddCommand(popCmd)
}

func runPop(cmd *cobra.Command, args []string) error {
	contextID, err := resolveContext(args[0])
	if err != nil {
		return err
	}
	return client.Pop(contextID)
}
