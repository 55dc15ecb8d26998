package dbus

import (
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

const (
	// ControlInterface is the glance control interface name.
	ControlInterface = "io.github.jmylchreest.Glance1"
	// ControlPath is the control object path.
	ControlPath = "/io/github/jmylchreest/Glance1"
)

// ControlHandler serves the control interface.
type ControlHandler interface {
	// Trigger runs the named cursor transition.
	Trigger(name string) error
	// History returns the history in insertion order.
	History() ([]HistoryEntry, error)
}

// Control exposes cursor triggers and the history snapshot over D-Bus, as
// an alternative to real-time signals.
type Control struct {
	handler ControlHandler
	logger  *slog.Logger
}

// NewControl creates a Control backed by handler.
func NewControl(handler ControlHandler, logger *slog.Logger) *Control {
	if logger == nil {
		logger = slog.Default()
	}
	return &Control{handler: handler, logger: logger}
}

// Trigger runs a cursor transition by name.
// D-Bus method: Trigger(s) -> nothing
func (c *Control) Trigger(name string) *dbus.Error {
	c.logger.Debug("Trigger called", "name", name)
	if err := c.handler.Trigger(name); err != nil {
		c.logger.Warn("trigger failed", "name", name, "error", err)
		return toDBusError(err, ErrorControlFailed)
	}
	return nil
}

// History returns every history entry in insertion order.
// D-Bus method: History() -> a(ussssbxb)
func (c *Control) History() ([]HistoryEntry, *dbus.Error) {
	c.logger.Debug("History called")
	entries, err := c.handler.History()
	if err != nil {
		return nil, toDBusError(err, ErrorControlFailed)
	}
	return entries, nil
}

func (c *Control) export(conn *dbus.Conn) error {
	if err := conn.Export(c, ControlPath, ControlInterface); err != nil {
		return fmt.Errorf("failed to export control object: %w", err)
	}

	node := &introspect.Node{
		Name: ControlPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name: ControlInterface,
				Methods: []introspect.Method{
					{
						Name: "Trigger",
						Args: []introspect.Arg{
							{Name: "name", Type: "s", Direction: "in"},
						},
					},
					{
						Name: "History",
						Args: []introspect.Arg{
							{Name: "entries", Type: "a(ussssbxb)", Direction: "out"},
						},
					},
				},
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), ControlPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export control introspectable: %w", err)
	}
	return nil
}
