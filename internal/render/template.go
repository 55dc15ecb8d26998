// Package render projects the notification history into the bar text and
// tooltip shown by the status bar, and writes them as JSON lines.
package render

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/glance/internal/model"
)

// Placeholders recognized in templates.
const (
	PlaceholderApp     = "{app}"
	PlaceholderSummary = "{summary}"
	PlaceholderBody    = "{body}"
	PlaceholderID      = "{id}"
	PlaceholderAge     = "{age}"
)

// Default templates. The bar shows the plain entry, the tooltip lists entries
// as Pango markup with unread ones highlighted.
const (
	DefaultBarFormat    = "[{app}] <b>{summary}</b>: {body}"
	DefaultUnreadFormat = "<span color='#00d69e' size='xx-large'><b>• [{app}] <b>{summary}</b>: {body}</b></span>"
	DefaultReadFormat   = "<span size='xx-large'><b>•</b> [{app}] <b>{summary}</b>: {body}</span>"
)

var (
	// ErrEmptyTemplate is returned by Validate when a template is blank.
	ErrEmptyTemplate = errors.New("template is empty")
)

// Template is a literal string with placeholder tokens. Substitution is a
// single pass over the template, so placeholder text inside substituted
// values is left as is. Nothing is escaped.
type Template string

// Format substitutes n into the template. now is used for {age}.
func (t Template) Format(n *model.Notification, now time.Time) string {
	age := ""
	if !n.ReceivedAt.IsZero() {
		age = humanize.RelTime(n.ReceivedAt, now, "ago", "from now")
	}

	r := strings.NewReplacer(
		PlaceholderApp, n.AppName,
		PlaceholderSummary, n.Summary,
		PlaceholderBody, n.Body,
		PlaceholderID, strconv.FormatUint(uint64(n.ID), 10),
		PlaceholderAge, age,
	)
	return r.Replace(string(t))
}

// Templates is the set of templates used for a render.
type Templates struct {
	Read   Template
	Unread Template
	Bar    Template
}

// DefaultTemplates returns the built-in template set.
func DefaultTemplates() Templates {
	return Templates{
		Read:   DefaultReadFormat,
		Unread: DefaultUnreadFormat,
		Bar:    DefaultBarFormat,
	}
}

// Validate checks that every template is set.
func (t Templates) Validate() error {
	checks := []struct {
		name string
		tmpl Template
	}{
		{"read", t.Read},
		{"unread", t.Unread},
		{"bar", t.Bar},
	}
	for _, c := range checks {
		if strings.TrimSpace(string(c.tmpl)) == "" {
			return fmt.Errorf("%s format: %w", c.name, ErrEmptyTemplate)
		}
	}
	return nil
}
