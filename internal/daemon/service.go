package daemon

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jmylchreest/glance/internal/dbus"
	"github.com/jmylchreest/glance/internal/history"
	"github.com/jmylchreest/glance/internal/model"
	"github.com/jmylchreest/glance/internal/render"
)

// ServiceOptions configures a Service.
type ServiceOptions struct {
	Templates  render.Templates
	History    history.Options
	ServerInfo dbus.ServerInfo
	Output     io.Writer        // Defaults to os.Stdout
	Logger     *slog.Logger     // Defaults to slog.Default()
	Clock      func() time.Time // Defaults to time.Now
}

// Service applies protocol calls and cursor triggers to the history and
// renders the result. It is not safe for concurrent use; run every call
// through a Loop.
type Service struct {
	store    *history.Store
	renderer *render.Renderer
	emitter  *render.Emitter
	info     dbus.ServerInfo
	logger   *slog.Logger
	clock    func() time.Time
}

// NewService creates a Service with an empty history.
func NewService(opts ServiceOptions) *Service {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	renderer := render.NewRenderer(opts.Templates)
	renderer.SetClock(opts.Clock)

	return &Service{
		store:    history.NewStore(opts.History),
		renderer: renderer,
		emitter:  render.NewEmitter(opts.Output),
		info:     opts.ServerInfo,
		logger:   opts.Logger,
		clock:    opts.Clock,
	}
}

// Store returns the underlying history store.
func (s *Service) Store() *history.Store {
	return s.store
}

// Notify records a notification, shows it on the bar and renders the "new"
// variant. It returns the notification ID.
func (s *Service) Notify(req *dbus.DBusNotification) (uint32, error) {
	n, err := model.NewNotification(req.AppName, req.Summary, req.Body, s.clock())
	if err != nil {
		return 0, fmt.Errorf("failed to create notification: %w", err)
	}
	n.AppIcon = req.AppIcon

	id, idx := s.store.Upsert(req.ReplacesID, *n)
	if err := s.store.SetCursor(idx); err != nil {
		return 0, fmt.Errorf("failed to show notification %d: %w", id, err)
	}

	s.logger.Info("notification received",
		"id", id,
		"key", n.Key,
		"app", req.AppName,
		"replaces_id", req.ReplacesID,
		"urgency", req.Urgency(),
		"actions", len(req.ParsedActions()),
	)

	s.render(render.VariantNew)
	return id, nil
}

// Close removes the notification with the given ID, or the visible one when
// id is 0, and re-renders. Closing an absent ID is a silent no-op. It
// returns the removed ID, or 0 when nothing was removed.
//
// Closing the visible notification while none is shown fails with
// history.ErrNoVisible and leaves state and output untouched.
func (s *Service) Close(id uint32) (uint32, error) {
	var removed uint32
	if id == 0 {
		visible, err := s.store.RemoveVisible()
		if err != nil {
			return 0, fmt.Errorf("close visible notification: %w", err)
		}
		removed = visible
	} else if s.store.Remove(id) {
		removed = id
	}

	if removed != 0 {
		s.logger.Info("notification closed", "id", removed, "remaining", s.store.Len())
	} else {
		s.logger.Debug("close of unknown notification ignored", "id", id)
	}

	s.render(render.VariantPlain)
	return removed, nil
}

// Trigger applies a cursor transition and renders if it changed the view.
func (s *Service) Trigger(t history.Trigger) {
	if !s.store.Apply(t) {
		s.logger.Debug("trigger ignored on empty history", "trigger", t.String())
		return
	}

	cursor, ok := s.store.Cursor()
	s.logger.Debug("trigger applied", "trigger", t.String(), "cursor", cursor, "visible", ok)
	s.render(render.VariantPlain)
}

// Capabilities returns the advertised notification capabilities.
func (s *Service) Capabilities() []string {
	return dbus.ServerCapabilities
}

// ServerInformation returns the server identity.
func (s *Service) ServerInformation() dbus.ServerInfo {
	return s.info
}

// History returns the wire form of every entry in insertion order.
func (s *Service) History() []dbus.HistoryEntry {
	cursor, ok := s.store.Cursor()
	entries := s.store.Entries()
	result := make([]dbus.HistoryEntry, len(entries))
	for i, n := range entries {
		result[i] = dbus.NewHistoryEntry(n, ok && i == cursor)
	}
	return result
}

// SetTemplates swaps the template set and re-renders the current view.
func (s *Service) SetTemplates(templates render.Templates) error {
	if err := templates.Validate(); err != nil {
		return err
	}
	s.renderer.SetTemplates(templates)
	s.render(render.VariantPlain)
	return nil
}

// SetHistoryOptions updates history behavior for future calls.
func (s *Service) SetHistoryOptions(opts history.Options) {
	s.store.SetOptions(opts)
}

// RenderInitial emits the current view so the bar has something to show
// before the first notification arrives.
func (s *Service) RenderInitial() {
	s.render(render.VariantPlain)
}

func (s *Service) render(variant render.Variant) {
	cursor, ok := s.store.Cursor()
	view := s.renderer.Render(s.store.Entries(), cursor, ok)
	if err := s.emitter.Emit(view, variant); err != nil {
		s.logger.Warn("failed to write status", "variant", variant.String(), "error", err)
	}
}
