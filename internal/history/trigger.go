package history

import (
	"fmt"
	"strings"
)

// Trigger names one of the cursor transitions driven from outside the daemon.
type Trigger int

const (
	// TriggerMarkRead marks the visible entry read.
	TriggerMarkRead Trigger = iota
	// TriggerPrevious moves the cursor back.
	TriggerPrevious
	// TriggerNext moves the cursor forward.
	TriggerNext
)

// Triggers lists every trigger in a stable order.
var Triggers = []Trigger{TriggerMarkRead, TriggerPrevious, TriggerNext}

// String returns the string representation of the trigger.
func (t Trigger) String() string {
	switch t {
	case TriggerMarkRead:
		return "read"
	case TriggerPrevious:
		return "previous"
	case TriggerNext:
		return "next"
	default:
		return "unknown"
	}
}

// ParseTrigger parses a trigger name. "prev" and "mark-read" are accepted
// as aliases.
func ParseTrigger(name string) (Trigger, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "read", "mark-read", "mark_read":
		return TriggerMarkRead, nil
	case "previous", "prev":
		return TriggerPrevious, nil
	case "next":
		return TriggerNext, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownTrigger, name)
	}
}

// Apply runs the transition for t and reports whether a render is needed.
func (s *Store) Apply(t Trigger) bool {
	switch t {
	case TriggerMarkRead:
		return s.MarkCurrentRead()
	case TriggerPrevious:
		return s.Previous()
	case TriggerNext:
		return s.Next()
	default:
		return false
	}
}
