package dbus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

const (
	// DBusInterface is the notification interface name.
	DBusInterface = "org.freedesktop.Notifications"
	// DBusPath is the notification object path.
	DBusPath = "/org/freedesktop/Notifications"
	// DBusBusName is the bus name to claim.
	DBusBusName = "org.freedesktop.Notifications"
)

// NotifyHandler is called when a new notification is received. It returns
// the ID assigned to the notification.
type NotifyHandler func(notification *DBusNotification) (uint32, error)

// CloseHandler is called when CloseNotification is requested. It returns the
// ID of the removed notification, or 0 when nothing was removed.
type CloseHandler func(id uint32) (uint32, error)

// NotificationServer implements the org.freedesktop.Notifications D-Bus interface.
type NotificationServer struct {
	conn   *dbus.Conn
	logger *slog.Logger

	// Handlers
	notifyHandler NotifyHandler
	closeHandler  CloseHandler
	control       *Control

	mu         sync.RWMutex
	serverInfo ServerInfo
	running    bool
}

// NewNotificationServer creates a new NotificationServer.
func NewNotificationServer(logger *slog.Logger) *NotificationServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationServer{
		logger:     logger,
		serverInfo: DefaultServerInfo(),
	}
}

// SetNotifyHandler sets the handler called when a notification is received.
func (s *NotificationServer) SetNotifyHandler(handler NotifyHandler) {
	s.notifyHandler = handler
}

// SetCloseHandler sets the handler called when CloseNotification is requested.
func (s *NotificationServer) SetCloseHandler(handler CloseHandler) {
	s.closeHandler = handler
}

// SetControlHandler enables the control interface, served by handler.
func (s *NotificationServer) SetControlHandler(handler ControlHandler) {
	s.control = NewControl(handler, s.logger)
}

// SetServerInfo sets the server information returned by GetServerInformation.
func (s *NotificationServer) SetServerInfo(info ServerInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serverInfo = info
}

// Start connects to the session bus and exports the notification service.
func (s *NotificationServer) Start() error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return s.StartOn(conn)
}

// StartOn exports the notification service on an existing connection and
// claims the well-known bus name.
func (s *NotificationServer) StartOn(conn *dbus.Conn) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.mu.Unlock()

	s.conn = conn

	// Export the notification server object
	if err := conn.Export(s, DBusPath, DBusInterface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	// Export introspection data
	node := &introspect.Node{
		Name: DBusPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    DBusInterface,
				Methods: notificationMethods(),
				Signals: notificationSignals(),
			},
		},
	}
	if err := conn.Export(introspect.NewIntrospectable(node), DBusPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	if s.control != nil {
		if err := s.control.export(conn); err != nil {
			return err
		}
	}

	// Request the bus name
	reply, err := conn.RequestName(DBusBusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("%s: %w", DBusBusName, ErrNameTaken)
	}

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	s.logger.Info("D-Bus notification server started", "interface", DBusInterface, "path", DBusPath)
	return nil
}

// Stop releases the bus name.
func (s *NotificationServer) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if s.conn != nil {
		if _, err := s.conn.ReleaseName(DBusBusName); err != nil {
			s.logger.Warn("failed to release bus name", "error", err)
		}
		// Don't close the connection as it's shared (SessionBus)
	}

	s.logger.Info("D-Bus notification server stopped")
	return nil
}

// GetCapabilities returns the list of capabilities supported by this server.
// D-Bus method: GetCapabilities() -> as
func (s *NotificationServer) GetCapabilities() ([]string, *dbus.Error) {
	s.logger.Debug("GetCapabilities called")
	return ServerCapabilities, nil
}

// GetServerInformation returns information about the notification server.
// D-Bus method: GetServerInformation() -> (ssss)
func (s *NotificationServer) GetServerInformation() (string, string, string, string, *dbus.Error) {
	s.logger.Debug("GetServerInformation called")
	s.mu.RLock()
	info := s.serverInfo
	s.mu.RUnlock()
	return info.Name, info.Vendor, info.Version, info.SpecVersion, nil
}

// Notify handles incoming notification requests.
// D-Bus method: Notify(susssasa{sv}i) -> u
func (s *NotificationServer) Notify(
	appName string,
	replacesID uint32,
	appIcon string,
	summary string,
	body string,
	actions []string,
	hints map[string]dbus.Variant,
	expireTimeout int32,
) (uint32, *dbus.Error) {
	s.logger.Debug("Notify called",
		"app_name", appName,
		"replaces_id", replacesID,
		"summary", summary,
	)

	notification := &DBusNotification{
		AppName:       appName,
		ReplacesID:    replacesID,
		AppIcon:       appIcon,
		Summary:       summary,
		Body:          body,
		Actions:       actions,
		Hints:         hints,
		ExpireTimeout: expireTimeout,
	}

	if s.notifyHandler == nil {
		return 0, dbus.NewError(ErrorFailed, []interface{}{"no notify handler"})
	}

	id, err := s.notifyHandler(notification)
	if err != nil {
		s.logger.Error("failed to handle notification", "app_name", appName, "error", err)
		return 0, toDBusError(err, ErrorFailed)
	}
	return id, nil
}

// CloseNotification closes a notification by ID. ID 0 closes the
// notification currently shown on the bar.
// D-Bus method: CloseNotification(u) -> nothing
func (s *NotificationServer) CloseNotification(id uint32) *dbus.Error {
	s.logger.Debug("CloseNotification called", "id", id)

	if s.closeHandler == nil {
		return nil
	}

	closed, err := s.closeHandler(id)
	if err != nil {
		s.logger.Error("failed to close notification", "id", id, "error", err)
		return toDBusError(err, ErrorFailed)
	}

	if closed != 0 {
		if err := s.EmitNotificationClosed(closed, CloseReasonClosed); err != nil {
			s.logger.Warn("failed to emit NotificationClosed signal", "id", closed, "error", err)
		}
	}
	return nil
}

// notificationMethods returns the D-Bus method introspection data.
func notificationMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "GetCapabilities",
			Args: []introspect.Arg{
				{Name: "capabilities", Type: "as", Direction: "out"},
			},
		},
		{
			Name: "GetServerInformation",
			Args: []introspect.Arg{
				{Name: "name", Type: "s", Direction: "out"},
				{Name: "vendor", Type: "s", Direction: "out"},
				{Name: "version", Type: "s", Direction: "out"},
				{Name: "spec_version", Type: "s", Direction: "out"},
			},
		},
		{
			Name: "Notify",
			Args: []introspect.Arg{
				{Name: "app_name", Type: "s", Direction: "in"},
				{Name: "replaces_id", Type: "u", Direction: "in"},
				{Name: "app_icon", Type: "s", Direction: "in"},
				{Name: "summary", Type: "s", Direction: "in"},
				{Name: "body", Type: "s", Direction: "in"},
				{Name: "actions", Type: "as", Direction: "in"},
				{Name: "hints", Type: "a{sv}", Direction: "in"},
				{Name: "expire_timeout", Type: "i", Direction: "in"},
				{Name: "id", Type: "u", Direction: "out"},
			},
		},
		{
			Name: "CloseNotification",
			Args: []introspect.Arg{
				{Name: "id", Type: "u", Direction: "in"},
			},
		},
	}
}

// notificationSignals returns the D-Bus signal introspection data.
func notificationSignals() []introspect.Signal {
	return []introspect.Signal{
		{
			Name: "NotificationClosed",
			Args: []introspect.Arg{
				{Name: "id", Type: "u"},
				{Name: "reason", Type: "u"},
			},
		},
	}
}
