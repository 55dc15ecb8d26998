package dbus

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

// Client talks to a running notification server and its control interface.
type Client struct {
	conn    *dbus.Conn
	notify  dbus.BusObject
	control dbus.BusObject
}

// NewClient connects to the session bus.
func NewClient() (*Client, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return NewClientOn(conn), nil
}

// NewClientOn creates a Client on an existing connection.
func NewClientOn(conn *dbus.Conn) *Client {
	return &Client{
		conn:    conn,
		notify:  conn.Object(DBusBusName, DBusPath),
		control: conn.Object(DBusBusName, ControlPath),
	}
}

// Notify sends a notification and returns its ID.
func (c *Client) Notify(ctx context.Context, n *DBusNotification) (uint32, error) {
	actions := n.Actions
	if actions == nil {
		actions = []string{}
	}
	hints := n.Hints
	if hints == nil {
		hints = map[string]dbus.Variant{}
	}

	var id uint32
	err := c.notify.CallWithContext(ctx, DBusInterface+".Notify", 0,
		n.AppName, n.ReplacesID, n.AppIcon, n.Summary, n.Body, actions, hints, n.ExpireTimeout,
	).Store(&id)
	if err != nil {
		return 0, fmt.Errorf("notify: %w", err)
	}
	return id, nil
}

// CloseNotification closes the notification with the given ID. ID 0 closes
// the one currently shown on the bar.
func (c *Client) CloseNotification(ctx context.Context, id uint32) error {
	if err := c.notify.CallWithContext(ctx, DBusInterface+".CloseNotification", 0, id).Err; err != nil {
		return fmt.Errorf("close notification: %w", err)
	}
	return nil
}

// GetCapabilities returns the server capabilities.
func (c *Client) GetCapabilities(ctx context.Context) ([]string, error) {
	var caps []string
	if err := c.notify.CallWithContext(ctx, DBusInterface+".GetCapabilities", 0).Store(&caps); err != nil {
		return nil, fmt.Errorf("get capabilities: %w", err)
	}
	return caps, nil
}

// GetServerInformation returns the server identity.
func (c *Client) GetServerInformation(ctx context.Context) (ServerInfo, error) {
	var info ServerInfo
	err := c.notify.CallWithContext(ctx, DBusInterface+".GetServerInformation", 0).
		Store(&info.Name, &info.Vendor, &info.Version, &info.SpecVersion)
	if err != nil {
		return ServerInfo{}, fmt.Errorf("get server information: %w", err)
	}
	return info, nil
}

// Trigger runs a cursor transition on the daemon.
func (c *Client) Trigger(ctx context.Context, name string) error {
	if err := c.control.CallWithContext(ctx, ControlInterface+".Trigger", 0, name).Err; err != nil {
		return fmt.Errorf("trigger %s: %w", name, err)
	}
	return nil
}

// History returns the daemon's history in insertion order.
func (c *Client) History(ctx context.Context) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	if err := c.control.CallWithContext(ctx, ControlInterface+".History", 0).Store(&entries); err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return entries, nil
}
