package dbus

import (
	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/glance/internal/model"
)

// CloseReason represents the reason for closing a notification.
// These values are defined by the freedesktop.org notification specification.
type CloseReason uint32

const (
	// CloseReasonExpired indicates the notification expired (timeout reached).
	CloseReasonExpired CloseReason = 1
	// CloseReasonDismissed indicates the user dismissed the notification.
	CloseReasonDismissed CloseReason = 2
	// CloseReasonClosed indicates the notification was closed via CloseNotification.
	CloseReasonClosed CloseReason = 3
	// CloseReasonUndefined is reserved by the notification protocol.
	CloseReasonUndefined CloseReason = 4
)

// String returns the string representation of the close reason.
func (r CloseReason) String() string {
	switch r {
	case CloseReasonExpired:
		return "expired"
	case CloseReasonDismissed:
		return "dismissed"
	case CloseReasonClosed:
		return "closed"
	case CloseReasonUndefined:
		return "undefined"
	default:
		return "unknown"
	}
}

// DBusNotification represents an incoming D-Bus Notify call.
// It contains the raw parameters from the org.freedesktop.Notifications.Notify method.
type DBusNotification struct {
	AppName       string
	ReplacesID    uint32
	AppIcon       string
	Summary       string
	Body          string
	Actions       []string // Alternating key, label pairs
	Hints         map[string]dbus.Variant
	ExpireTimeout int32 // -1 = server default, 0 = never expire
}

// Action represents a notification action with key and label.
type Action struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ParsedActions converts the D-Bus action array to structured form.
// D-Bus actions are passed as alternating key/label pairs.
func (n *DBusNotification) ParsedActions() []Action {
	actions := make([]Action, 0, len(n.Actions)/2)
	for i := 0; i+1 < len(n.Actions); i += 2 {
		actions = append(actions, Action{
			Key:   n.Actions[i],
			Label: n.Actions[i+1],
		})
	}
	return actions
}

// Urgency extracts the urgency hint from the notification.
// Returns 1 (normal) if not specified. It is only used for logging.
func (n *DBusNotification) Urgency() int {
	if v, ok := n.Hints["urgency"]; ok {
		if b, ok := v.Value().(byte); ok {
			return int(b)
		}
	}
	return 1
}

// ServerCapabilities lists the capabilities advertised by glance.
var ServerCapabilities = []string{
	"body",    // Support body text
	"actions", // Accept actions (never invoked)
}

// ServerInfo contains information about the notification server.
type ServerInfo struct {
	Name        string // "Glance"
	Vendor      string // "Glance"
	Version     string // Build version
	SpecVersion string // "1.3"
}

// DefaultServerInfo returns the default server information.
func DefaultServerInfo() ServerInfo {
	return ServerInfo{
		Name:        "Glance",
		Vendor:      "Glance",
		Version:     "dev", // Will be replaced by build-time version
		SpecVersion: "1.3",
	}
}

// HistoryEntry is the wire form of a history entry returned by the control
// interface. D-Bus signature (ussssbxb).
type HistoryEntry struct {
	ID         uint32
	Key        string
	AppName    string
	Summary    string
	Body       string
	Read       bool
	ReceivedAt int64 // Unix seconds
	Visible    bool
}

// NewHistoryEntry converts a model notification to its wire form.
func NewHistoryEntry(n model.Notification, visible bool) HistoryEntry {
	var receivedAt int64
	if !n.ReceivedAt.IsZero() {
		receivedAt = n.ReceivedAt.Unix()
	}
	return HistoryEntry{
		ID:         n.ID,
		Key:        n.Key,
		AppName:    n.AppName,
		Summary:    n.Summary,
		Body:       n.Body,
		Read:       n.Read,
		ReceivedAt: receivedAt,
		Visible:    visible,
	}
}
