package main

import (
	"context"
	"time"

	"github.com/jmylchreest/glance/internal/dbus"
)

// clientTimeout bounds every call a client subcommand makes to the daemon.
const clientTimeout = 5 * time.Second

// withClient connects to the session bus and runs fn with a bounded context.
func withClient(fn func(ctx context.Context, client *dbus.Client) error) error {
	client, err := dbus.NewClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), clientTimeout)
	defer cancel()

	return fn(ctx, client)
}
