package dbus

import (
	"fmt"
)

// EmitNotificationClosed emits the NotificationClosed signal.
func (s *NotificationServer) EmitNotificationClosed(id uint32, reason CloseReason) error {
	if s.conn == nil {
		return ErrNotConnected
	}

	err := s.conn.Emit(DBusPath, DBusInterface+".NotificationClosed", id, uint32(reason))
	if err != nil {
		return fmt.Errorf("failed to emit NotificationClosed signal: %w", err)
	}

	s.logger.Debug("emitted NotificationClosed signal", "id", id, "reason", reason.String())
	return nil
}
