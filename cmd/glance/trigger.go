package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/glance/internal/dbus"
	"github.com/jmylchreest/glance/internal/history"
)

var triggerCmd = &cobra.Command{
	Use:       "trigger <read|previous|next>",
	Short:     "Move the history cursor",
	Long:      `Run a cursor transition on the daemon over D-Bus. Equivalent to sending the matching real-time signal.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: triggerNames(),
	RunE:      runTrigger,
}

func init() {
	rootCmd.AddCommand(triggerCmd)
}

func triggerNames() []string {
	names := make([]string, 0, len(history.Triggers))
	for _, t := range history.Triggers {
		names = append(names, t.String())
	}
	return names
}

func runTrigger(cmd *cobra.Command, args []string) error {
	// Validate locally for a friendlier error than the D-Bus one
	t, err := history.ParseTrigger(strings.TrimSpace(args[0]))
	if err != nil {
		return err
	}

	return withClient(func(ctx context.Context, client *dbus.Client) error {
		return client.Trigger(ctx, t.String())
	})
}
