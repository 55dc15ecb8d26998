// Package daemon provides the main orchestration for glance.
// It owns the notification history, serializes D-Bus calls and real-time
// signals through a single event loop, and renders the bar after every
// state change.
package daemon
