package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var contextCmd = &cobra.Command{
	Use:   "context <description>",
	Short: "Resolve a context description to its numeric id",
	Long: `Resolve a context description to its numeric id, registering it with
the daemon if it has not been seen before.

The same description always resolves to the same id for the lifetime of the
daemon, so scripts may call this repeatedly or just use the description
directly with push and pop.

Examples:
  # Register (or look up) a context for a build script
  staxbar context "ci build"

  # Use the id in later calls
  CTX=$(staxbar context "ci build")
  staxbar push "$CTX" "compiling..."`,
	Args: cobra.ExactArgs(1),
	RunE: runContext,
}

func init() {
	rootCmd.AddCommand(contextCmd)
}

func runContext(cmd *cobra.Command, args []string) error {
	id, err := client.ContextID(args[0])
	if err != nil {
		return err
	}

	fmt.Println(id)
	return nil
}
