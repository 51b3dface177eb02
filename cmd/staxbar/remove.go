package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <context> <message-id>",
	Short: "Remove a specific message from the stack",
	Long: `Remove the message matching both the context and the message id, no
matter where it sits on the stack. Both identifiers are required; message
id 0 is rejected.

If the message is somewhere below the top, the bar does not change.

Examples:
  MSG=$(staxbar push "ci build" "compiling...")
  staxbar remove "ci build" "$MSG"`,
	Args: cobra.ExactArgs(2),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	contextID, err := resolveContext(args[0])
	if err != nil {
		return err
	}

	messageID, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid message id %q: %w", args[1], err)
	}
	if messageID == 0 {
		return fmt.Errorf("message id 0 is never assigned")
	}

	return client.Remove(contextID, uint32(messageID))
}
