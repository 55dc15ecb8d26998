package render

import (
	"strings"
	"time"

	"github.com/jmylchreest/glance/internal/model"
)

// View is the projection of the history shown by the status bar.
type View struct {
	Text    string
	Tooltip string
}

// Renderer turns history entries into a View.
type Renderer struct {
	templates Templates
	now       func() time.Time
}

// NewRenderer creates a Renderer using the given templates.
func NewRenderer(templates Templates) *Renderer {
	return &Renderer{
		templates: templates,
		now:       time.Now,
	}
}

// SetClock overrides the time source used for {age}.
func (r *Renderer) SetClock(now func() time.Time) {
	r.now = now
}

// SetTemplates swaps the template set.
func (r *Renderer) SetTemplates(templates Templates) {
	r.templates = templates
}

// Templates returns the current template set.
func (r *Renderer) Templates() Templates {
	return r.templates
}

// Render builds the view for entries in insertion order. The tooltip lists
// the most recently inserted entry first. The bar text is empty unless
// hasCursor is set, in which case it shows entries[cursor].
func (r *Renderer) Render(entries []model.Notification, cursor int, hasCursor bool) View {
	now := r.now()

	lines := make([]string, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		n := &entries[i]
		if n.Read {
			lines = append(lines, r.templates.Read.Format(n, now))
		} else {
			lines = append(lines, r.templates.Unread.Format(n, now))
		}
	}

	var text string
	if hasCursor && cursor >= 0 && cursor < len(entries) {
		text = r.templates.Bar.Format(&entries[cursor], now)
	}

	return View{
		Text:    text,
		Tooltip: strings.Join(lines, "\n"),
	}
}
