// Package tooltip models the single shared tooltip overlay: which term it
// shows, whether it is visible, and where it is placed.
package tooltip

import (
	"html"
	"sync"
	"time"

	"github.com/ZaguanLabs/sarf/glossary"
)

// HideDelay is how long HideSoon waits, so the pointer can travel from the
// target into the tooltip.
const HideDelay = 160 * time.Millisecond

// Glossary is the lookup the overlay needs.
type Glossary interface {
	Lookup(term string) (glossary.Entry, bool)
}

// stopper is the part of *time.Timer the overlay uses.
type stopper interface {
	Stop() bool
}

// Overlay is the one tooltip instance. Showing a term replaces whatever was
// shown before. Safe for concurrent use; the delayed hide runs on a timer
// goroutine.
type Overlay struct {
	mu        sync.Mutex
	glossary  Glossary
	active    string
	content   string
	visible   bool
	hideTimer stopper
	delay     time.Duration
	afterFunc func(time.Duration, func()) stopper
}

// NewOverlay creates a hidden overlay backed by g.
func NewOverlay(g Glossary) *Overlay {
	return &Overlay{
		glossary: g,
		delay:    HideDelay,
		afterFunc: func(d time.Duration, f func()) stopper {
			return time.AfterFunc(d, f)
		},
	}
}

// Show displays the tooltip for term. Terms without glossary data leave the
// overlay unchanged and report false.
func (o *Overlay) Show(term string) bool {
	if o.glossary == nil {
		return false
	}
	entry, ok := o.glossary.Lookup(term)
	if !ok {
		return false
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.cancelHideLocked()
	o.active = term
	o.content = Content(term, entry)
	o.visible = true
	return true
}

// Hide hides the tooltip immediately.
func (o *Overlay) Hide() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cancelHideLocked()
	o.hideLocked()
}

// HideSoon hides the tooltip after HideDelay unless Show is called first.
// A second HideSoon restarts the delay.
func (o *Overlay) HideSoon() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.cancelHideLocked()

	var t stopper
	t = o.afterFunc(o.delay, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if o.hideTimer != t {
			return
		}
		o.hideTimer = nil
		o.hideLocked()
	})
	o.hideTimer = t
}

// Toggle hides a visible tooltip, whatever it shows, or shows term.
// It reports whether the tooltip is visible afterwards.
func (o *Overlay) Toggle(term string) bool {
	o.mu.Lock()
	visible := o.visible
	o.mu.Unlock()

	if visible {
		o.Hide()
		return false
	}
	return o.Show(term)
}

// Visible reports whether the tooltip is shown.
func (o *Overlay) Visible() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

// Active returns the term currently shown, or "" when hidden.
func (o *Overlay) Active() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.visible {
		return ""
	}
	return o.active
}

// Content returns the HTML currently shown.
func (o *Overlay) Content() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.content
}

// AriaHidden returns the value for the overlay's aria-hidden attribute.
func (o *Overlay) AriaHidden() string {
	if o.Visible() {
		return "false"
	}
	return "true"
}

func (o *Overlay) hideLocked() {
	o.visible = false
	o.active = ""
}

func (o *Overlay) cancelHideLocked() {
	if o.hideTimer != nil {
		o.hideTimer.Stop()
		o.hideTimer = nil
	}
}

// Content renders the tooltip body for term: the term in bold, the English
// gloss in parentheses, then the description.
func Content(term string, e glossary.Entry) string {
	return "<strong>" + html.EscapeString(term) + "</strong> (" + html.EscapeString(e.En) + ")<br>" + html.EscapeString(e.Desc)
}
