package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/glance/internal/dbus"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the running notification server's identity",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	return withClient(func(ctx context.Context, client *dbus.Client) error {
		info, err := client.GetServerInformation(ctx)
		if err != nil {
			return err
		}
		caps, err := client.GetCapabilities(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Name:         %s\n", info.Name)
		fmt.Fprintf(out, "Vendor:       %s\n", info.Vendor)
		fmt.Fprintf(out, "Version:      %s\n", info.Version)
		fmt.Fprintf(out, "Spec version: %s\n", info.SpecVersion)
		fmt.Fprintf(out, "Capabilities: %s\n", strings.Join(caps, ", "))
		return nil
	})
}
