package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pushCmd = &cobra.Command{
	Use:   "push <context> <text>",
	Short: "Push a message onto the stack",
	Long: `Push a message onto the stack under a context. The context may be a
description string or a numeric id from 'staxbar context'.

The pushed message becomes the visible text on the bar. The printed message
id can be used with 'staxbar remove' to take down exactly this message
later, regardless of what was pushed on top of it in the meantime.

An empty text is a valid message; it blanks the bar while still occupying a
stack slot.

Examples:
  staxbar push "ci build" "compiling staxbar..."
  staxbar push 3 "42% done"`,
	Args: cobra.ExactArgs(2),
	RunE: runPush,
}

func init() {
	rootCmd.AddCommand(pushCmd)
}

func runPush(cmd *cobra.Command, args []string) error {
	contextID, err := resolveContext(args[0])
	if err != nil {
		return err
	}

	messageID, err := client.Push(contextID, args[1])
	if err != nil {
		return err
	}

	fmt.Println(messageID)
	return nil
}
