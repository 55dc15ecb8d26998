// Package model defines the core data structures for glance.
package model

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Notification is a single history entry.
type Notification struct {
	// ID is the freedesktop notification ID handed back to the sender.
	ID uint32 `json:"id" yaml:"id"`

	// Key is a ULID assigned on receipt. It is stable across replacements
	// of the same ID only if the caller copies it over.
	Key string `json:"key" yaml:"key"`

	AppName string `json:"app_name" yaml:"app_name"`
	AppIcon string `json:"app_icon,omitempty" yaml:"app_icon,omitempty"`
	Summary string `json:"summary" yaml:"summary"`
	Body    string `json:"body" yaml:"body"`

	ReceivedAt time.Time `json:"received_at" yaml:"received_at"`

	// Read starts false and only ever transitions to true.
	Read bool `json:"read" yaml:"read"`
}

// NewNotification creates a new unread notification with a fresh ULID key.
func NewNotification(appName, summary, body string, now time.Time) (*Notification, error) {
	key, err := GenerateKey(now)
	if err != nil {
		return nil, err
	}

	return &Notification{
		Key:        key,
		AppName:    appName,
		Summary:    summary,
		Body:       body,
		ReceivedAt: now,
	}, nil
}

// GenerateKey generates a new ULID for the given time.
func GenerateKey(t time.Time) (string, error) {
	id, err := ulid.New(ulid.Timestamp(t), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to generate ULID: %w", err)
	}
	return id.String(), nil
}

// MarkRead sets the read flag. It reports whether the flag changed.
func (n *Notification) MarkRead() bool {
	if n.Read {
		return false
	}
	n.Read = true
	return true
}

// String returns a short human-readable description for logs and plain output.
func (n *Notification) String() string {
	return fmt.Sprintf("[%s] %s: %s", n.AppName, n.Summary, n.Body)
}
