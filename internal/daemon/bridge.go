package daemon

import (
	"context"

	"github.com/jmylchreest/glance/internal/dbus"
	"github.com/jmylchreest/glance/internal/history"
	"github.com/jmylchreest/glance/internal/render"
)

// Bridge routes transport calls onto the Loop and into the Service. It
// provides the handlers the D-Bus server expects.
type Bridge struct {
	ctx     context.Context
	loop    *Loop
	service *Service
}

// NewBridge creates a Bridge. ctx bounds how long callers wait for the loop.
func NewBridge(ctx context.Context, loop *Loop, service *Service) *Bridge {
	return &Bridge{ctx: ctx, loop: loop, service: service}
}

// Notify is a dbus.NotifyHandler.
func (b *Bridge) Notify(n *dbus.DBusNotification) (uint32, error) {
	var (
		id  uint32
		err error
	)
	if lerr := b.loop.Do(b.ctx, func() { id, err = b.service.Notify(n) }); lerr != nil {
		return 0, lerr
	}
	return id, err
}

// Close is a dbus.CloseHandler.
func (b *Bridge) Close(id uint32) (uint32, error) {
	var (
		removed uint32
		err     error
	)
	if lerr := b.loop.Do(b.ctx, func() { removed, err = b.service.Close(id) }); lerr != nil {
		return 0, lerr
	}
	return removed, err
}

// Trigger implements dbus.ControlHandler.
func (b *Bridge) Trigger(name string) error {
	t, err := history.ParseTrigger(name)
	if err != nil {
		return err
	}
	return b.Apply(t)
}

// Apply runs a parsed trigger on the loop.
func (b *Bridge) Apply(t history.Trigger) error {
	return b.loop.Do(b.ctx, func() { b.service.Trigger(t) })
}

// History implements dbus.ControlHandler.
func (b *Bridge) History() ([]dbus.HistoryEntry, error) {
	var entries []dbus.HistoryEntry
	if err := b.loop.Do(b.ctx, func() { entries = b.service.History() }); err != nil {
		return nil, err
	}
	return entries, nil
}

// SetTemplates swaps templates on the loop.
func (b *Bridge) SetTemplates(templates render.Templates) error {
	var err error
	if lerr := b.loop.Do(b.ctx, func() { err = b.service.SetTemplates(templates) }); lerr != nil {
		return lerr
	}
	return err
}

// SetHistoryOptions updates history options on the loop.
func (b *Bridge) SetHistoryOptions(opts history.Options) error {
	return b.loop.Do(b.ctx, func() { b.service.SetHistoryOptions(opts) })
}
