package dbus

import (
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/glance/internal/model"
)

func TestCloseReasonString(t *testing.T) {
	tests := []struct {
		reason   CloseReason
		expected string
	}{
		{CloseReasonExpired, "expired"},
		{CloseReasonDismissed, "dismissed"},
		{CloseReasonClosed, "closed"},
		{CloseReasonUndefined, "undefined"},
		{CloseReason(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.reason.String())
		})
	}
}

func TestParsedActions(t *testing.T) {
	tests := []struct {
		name     string
		actions  []string
		expected []Action
	}{
		{
			name:     "empty",
			actions:  nil,
			expected: []Action{},
		},
		{
			name:     "single action",
			actions:  []string{"default", "Open"},
			expected: []Action{{Key: "default", Label: "Open"}},
		},
		{
			name:     "odd number (incomplete pair ignored)",
			actions:  []string{"default", "Open", "orphan"},
			expected: []Action{{Key: "default", Label: "Open"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &DBusNotification{Actions: tt.actions}
			assert.Equal(t, tt.expected, n.ParsedActions())
		})
	}
}

func TestUrgency(t *testing.T) {
	tests := []struct {
		name     string
		hints    map[string]dbus.Variant
		expected int
	}{
		{"no hint", nil, 1},
		{"low", map[string]dbus.Variant{"urgency": dbus.MakeVariant(byte(0))}, 0},
		{"critical", map[string]dbus.Variant{"urgency": dbus.MakeVariant(byte(2))}, 2},
		{"wrong type returns normal", map[string]dbus.Variant{"urgency": dbus.MakeVariant("high")}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &DBusNotification{Hints: tt.hints}
			assert.Equal(t, tt.expected, n.Urgency())
		})
	}
}

func TestDefaultServerInfo(t *testing.T) {
	info := DefaultServerInfo()
	assert.Equal(t, "Glance", info.Name)
	assert.Equal(t, "Glance", info.Vendor)
	assert.Equal(t, "1.3", info.SpecVersion)
}

func TestServerCapabilities(t *testing.T) {
	assert.Equal(t, []string{"body", "actions"}, ServerCapabilities)
}

func TestNewHistoryEntry(t *testing.T) {
	received := time.Unix(1700000000, 0)
	n := model.Notification{
		ID:         4,
		Key:        "01HXYZ",
		AppName:    "mail",
		Summary:    "New mail",
		Body:       "hello",
		Read:       true,
		ReceivedAt: received,
	}

	entry := NewHistoryEntry(n, true)
	assert.Equal(t, HistoryEntry{
		ID:         4,
		Key:        "01HXYZ",
		AppName:    "mail",
		Summary:    "New mail",
		Body:       "hello",
		Read:       true,
		ReceivedAt: 1700000000,
		Visible:    true,
	}, entry)

	assert.Zero(t, NewHistoryEntry(model.Notification{}, false).ReceivedAt)
}

func TestHistoryEntrySignature(t *testing.T) {
	sig := dbus.SignatureOf([]HistoryEntry{})
	assert.Equal(t, "a(ussssbxb)", sig.String())
}
