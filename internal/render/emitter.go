package render

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
)

// ClassNotify marks the render that follows a new notification so the bar
// can animate it.
const ClassNotify = "notify"

// Variant selects the output record flavor.
type Variant int

const (
	// VariantPlain is a regular re-render.
	VariantPlain Variant = iota
	// VariantNew follows a newly received or replaced notification.
	VariantNew
)

// String returns the string representation of the variant.
func (v Variant) String() string {
	switch v {
	case VariantPlain:
		return "plain"
	case VariantNew:
		return "new"
	default:
		return "unknown"
	}
}

// WaybarStatus is the Waybar custom module JSON record.
type WaybarStatus struct {
	Text    string `json:"text"`
	Tooltip string `json:"tooltip"`
	Class   string `json:"class,omitempty"`
}

// Emitter writes one JSON line per render and flushes it immediately.
type Emitter struct {
	w   *bufio.Writer
	enc *json.Encoder
}

// NewEmitter creates an Emitter writing to w.
func NewEmitter(w io.Writer) *Emitter {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	// Templates carry Pango markup; keep it readable on the wire.
	enc.SetEscapeHTML(false)
	return &Emitter{w: bw, enc: enc}
}

// Emit writes the view as a single newline-terminated JSON object.
func (e *Emitter) Emit(view View, variant Variant) error {
	status := WaybarStatus{
		Text:    view.Text,
		Tooltip: view.Tooltip,
	}
	if variant == VariantNew {
		status.Class = ClassNotify
	}

	if err := e.enc.Encode(status); err != nil {
		return fmt.Errorf("failed to encode status: %w", err)
	}
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush status: %w", err)
	}
	return nil
}
