package main

import (
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear <context>",
	Short: "Remove every message of a context",
	Long: `Remove all messages belonging to a context in one pass. The bar only
updates once, when the topmost message belongs to the cleared context.

Examples:
  staxbar clear "ci build"`,
	Args: cobra.ExactArgs(1),
	RunE: runClear,
}

func init() {
	rootCmd.AddCommand(clearCmd)
}

func runClear(cmd *cobra.Command, args []string) error {
	contextID, err := resolveContext(args[0])
	if err != nil {
		return err
	}
	return client.RemoveAll(contextID)
}
