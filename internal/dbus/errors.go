package dbus

import (
	"errors"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/glance/internal/history"
)

// D-Bus error names returned to callers.
const (
	ErrorNoVisible      = DBusInterface + ".Error.NoVisible"
	ErrorFailed         = DBusInterface + ".Error.Failed"
	ErrorUnknownTrigger = ControlInterface + ".Error.UnknownTrigger"
	ErrorControlFailed  = ControlInterface + ".Error.Failed"
)

var (
	// ErrNameTaken is returned by Start when another process owns the bus name.
	ErrNameTaken = errors.New("bus name already taken")
	// ErrNotConnected is returned when emitting without a bus connection.
	ErrNotConnected = errors.New("not connected to D-Bus")
	// ErrAlreadyRunning is returned by Start on a running server.
	ErrAlreadyRunning = errors.New("server already running")
)

// toDBusError maps a handler error to a D-Bus error reply. Errors without a
// dedicated name are reported under fallback.
func toDBusError(err error, fallback string) *dbus.Error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, history.ErrNoVisible):
		return dbus.NewError(ErrorNoVisible, []interface{}{err.Error()})
	case errors.Is(err, history.ErrUnknownTrigger):
		return dbus.NewError(ErrorUnknownTrigger, []interface{}{err.Error()})
	default:
		return dbus.NewError(fallback, []interface{}{err.Error()})
	}
}
