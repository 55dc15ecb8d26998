package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/glance/internal/dbus"
)

var dismissCmd = &cobra.Command{
	Use:   "dismiss [id]",
	Short: "Remove a notification from the history",
	Long: `Remove a notification through CloseNotification.

Without an ID (or with ID 0) the notification currently shown on the bar is
removed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDismiss,
}

func init() {
	rootCmd.AddCommand(dismissCmd)
}

func runDismiss(cmd *cobra.Command, args []string) error {
	var id uint32
	if len(args) == 1 {
		parsed, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid notification id %q: %w", args[0], err)
		}
		id = uint32(parsed)
	}

	return withClient(func(ctx context.Context, client *dbus.Client) error {
		return client.CloseNotification(ctx, id)
	})
}
