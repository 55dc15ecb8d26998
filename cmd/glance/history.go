package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/glance/internal/dbus"
)

var historyOpts struct {
	output string
	unread bool
}

// historyItem is the CLI view of a history entry.
type historyItem struct {
	ID         uint32    `json:"id" yaml:"id"`
	Key        string    `json:"key" yaml:"key"`
	AppName    string    `json:"app_name" yaml:"app_name"`
	Summary    string    `json:"summary" yaml:"summary"`
	Body       string    `json:"body,omitempty" yaml:"body,omitempty"`
	Read       bool      `json:"read" yaml:"read"`
	Visible    bool      `json:"visible,omitempty" yaml:"visible,omitempty"`
	ReceivedAt time.Time `json:"received_at" yaml:"received_at"`
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the daemon's notification history",
	Long: `List the running daemon's notification history, oldest first.

Output formats:
  plain  Aligned columns; the shown notification is marked with '>'
  json   JSON array
  yaml   YAML sequence`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVarP(&historyOpts.output, "output", "o", "plain",
		"Output format (plain, json, yaml)")
	historyCmd.Flags().BoolVar(&historyOpts.unread, "unread", false,
		"Only list unread notifications")
}

func runHistory(cmd *cobra.Command, args []string) error {
	return withClient(func(ctx context.Context, client *dbus.Client) error {
		entries, err := client.History(ctx)
		if err != nil {
			return err
		}
		items := toHistoryItems(entries, historyOpts.unread)
		return writeHistory(cmd.OutOrStdout(), items, historyOpts.output, time.Now())
	})
}

func toHistoryItems(entries []dbus.HistoryEntry, unreadOnly bool) []historyItem {
	items := make([]historyItem, 0, len(entries))
	for _, e := range entries {
		if unreadOnly && e.Read {
			continue
		}
		item := historyItem{
			ID:      e.ID,
			Key:     e.Key,
			AppName: e.AppName,
			Summary: e.Summary,
			Body:    e.Body,
			Read:    e.Read,
			Visible: e.Visible,
		}
		if e.ReceivedAt != 0 {
			item.ReceivedAt = time.Unix(e.ReceivedAt, 0)
		}
		items = append(items, item)
	}
	return items
}

func writeHistory(w io.Writer, items []historyItem, format string, now time.Time) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return err
		}
		return enc.Close()

	case "plain", "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "\tID\tAPP\tSTATE\tAGE\tSUMMARY")
		for _, item := range items {
			marker := ""
			if item.Visible {
				marker = ">"
			}
			state := "unread"
			if item.Read {
				state = "read"
			}
			age := "-"
			if !item.ReceivedAt.IsZero() {
				age = humanize.RelTime(item.ReceivedAt, now, "ago", "from now")
			}
			fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\n", marker, item.ID, item.AppName, state, age, item.Summary)
		}
		return tw.Flush()

	default:
		return fmt.Errorf("unknown output format %q (want plain, json or yaml)", format)
	}
}
