package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/glance/internal/dbus"
)

var sendOpts struct {
	appName  string
	icon     string
	replaces uint32
	timeout  int32
	quiet    bool
}

var sendCmd = &cobra.Command{
	Use:   "send <summary> [body]",
	Short: "Send a notification",
	Long: `Send a notification to whichever daemon owns org.freedesktop.Notifications.

Prints the assigned ID so it can be passed to --replaces or "glance dismiss".

Examples:
  glance send "Build finished" "all tests passed"
  id=$(glance send -a backup "Backup" "50%")
  glance send -a backup -r "$id" "Backup" "100%"`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringVarP(&sendOpts.appName, "app-name", "a", "glance",
		"Application name")
	sendCmd.Flags().StringVarP(&sendOpts.icon, "icon", "i", "",
		"Application icon")
	sendCmd.Flags().Uint32VarP(&sendOpts.replaces, "replaces", "r", 0,
		"ID of a notification to replace")
	sendCmd.Flags().Int32VarP(&sendOpts.timeout, "expire-time", "t", -1,
		"Expiration timeout in milliseconds (-1 for server default)")
	sendCmd.Flags().BoolVarP(&sendOpts.quiet, "quiet", "q", false,
		"Do not print the notification ID")
}

func runSend(cmd *cobra.Command, args []string) error {
	n := &dbus.DBusNotification{
		AppName:       sendOpts.appName,
		ReplacesID:    sendOpts.replaces,
		AppIcon:       sendOpts.icon,
		Summary:       args[0],
		ExpireTimeout: sendOpts.timeout,
	}
	if len(args) > 1 {
		n.Body = args[1]
	}

	return withClient(func(ctx context.Context, client *dbus.Client) error {
		id, err := client.Notify(ctx, n)
		if err != nil {
			return err
		}
		if !sendOpts.quiet {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	})
}
