// Package dbus implements the org.freedesktop.Notifications D-Bus interface.
// It provides a server that receives notifications from applications and
// exposes methods for GetCapabilities, Notify, CloseNotification, and
// GetServerInformation per the freedesktop.org notification specification,
// a small control interface used by the glance CLI, and a client for both.
package dbus
