package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statusOpts struct {
	waybar bool
}

// WaybarStatus represents the Waybar custom module JSON format.
type WaybarStatus struct {
	Text    string `json:"text"`
	Alt     string `json:"alt,omitempty"`
	Tooltip string `json:"tooltip,omitempty"`
	Class   string `json:"class,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current top of the stack",
	Long: `Show what the bar is currently displaying: the topmost message, its
context, and the stack depth.

With --waybar the output is Waybar's custom module JSON format:

  "custom/staxbar": {
    "exec": "staxbar status --waybar",
    "interval": 5,
    "return-type": "json"
  }`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusOpts.waybar, "waybar", false,
		"Output Waybar custom module JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	messages, err := client.Messages()
	if err != nil {
		return err
	}

	if statusOpts.waybar {
		status := WaybarStatus{Class: "empty"}
		if len(messages) > 0 {
			top := messages[0]
			status.Text = top.Text
			status.Alt = fmt.Sprintf("context-%d", top.ContextID)
			status.Tooltip = fmt.Sprintf("%d message(s) on stack", len(messages))
			status.Class = "active"
		}
		return json.NewEncoder(os.Stdout).Encode(status)
	}

	if len(messages) == 0 {
		fmt.Println("stack empty")
		return nil
	}

	top := messages[0]
	fmt.Printf("%q (context %d, message %d, %d on stack)\n",
		top.Text, top.ContextID, top.MessageID, len(messages))
	return nil
}
