package daemon

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jmylchreest/glance/internal/dbus"
)

// internalAppName is the app name on notifications glance sends itself.
const internalAppName = "glance"

// InternalNotifier reports glance's own events (such as a broken config
// reload) as notifications in the history. Identical keys are rate limited.
type InternalNotifier struct {
	mu     sync.Mutex
	logger *slog.Logger

	// Handler for creating notifications
	notifyHandler func(notification *dbus.DBusNotification) (uint32, error)

	limiters    map[string]*rate.Limiter // key -> limiter
	minInterval time.Duration

	enabled bool
}

// NewInternalNotifier creates a new InternalNotifier.
func NewInternalNotifier(logger *slog.Logger) *InternalNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &InternalNotifier{
		logger:      logger,
		limiters:    make(map[string]*rate.Limiter),
		minInterval: 5 * time.Second,
		enabled:     true,
	}
}

// SetNotifyHandler sets the function to call when creating a notification.
// This should be the same handler used for D-Bus notifications.
func (n *InternalNotifier) SetNotifyHandler(handler func(notification *dbus.DBusNotification) (uint32, error)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notifyHandler = handler
}

// SetEnabled enables or disables internal notifications.
func (n *InternalNotifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// SetMinInterval sets the minimum interval between duplicate notifications.
// Existing limiters are reset.
func (n *InternalNotifier) SetMinInterval(interval time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.minInterval = interval
	n.limiters = make(map[string]*rate.Limiter)
}

// Notify sends an internal notification unless the same key fired within
// the minimum interval. It reports whether a notification was sent.
func (n *InternalNotifier) Notify(key, summary, body string) bool {
	n.mu.Lock()
	if !n.enabled {
		n.mu.Unlock()
		return false
	}
	handler := n.notifyHandler
	if handler == nil {
		n.mu.Unlock()
		n.logger.Debug("internal notification skipped: no handler", "summary", summary)
		return false
	}

	limiter, ok := n.limiters[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(n.minInterval), 1)
		n.limiters[key] = limiter
	}
	allowed := limiter.Allow()
	n.mu.Unlock()

	if !allowed {
		n.logger.Debug("internal notification rate-limited", "key", key, "summary", summary)
		return false
	}

	notification := &dbus.DBusNotification{
		AppName:       internalAppName,
		AppIcon:       "dialog-warning",
		Summary:       summary,
		Body:          body,
		ExpireTimeout: -1,
	}

	n.logger.Debug("sending internal notification", "key", key, "summary", summary)

	// Called without the lock held: the handler blocks on the event loop.
	if _, err := handler(notification); err != nil {
		n.logger.Warn("failed to send internal notification", "key", key, "error", err)
		return false
	}
	return true
}

// NotifyConfigError sends a notification about a config reload failure.
func (n *InternalNotifier) NotifyConfigError(err error) bool {
	return n.Notify(
		"config-error",
		"Configuration Error",
		"Failed to reload configuration: "+err.Error(),
	)
}

// NotifyTemplateError sends a notification about rejected templates.
func (n *InternalNotifier) NotifyTemplateError(err error) bool {
	return n.Notify(
		"template-error",
		"Template Error",
		"Keeping previous templates: "+err.Error(),
	)
}
