// Package overlay sequences a transient surface's open/close lifecycle.
//
// A controller moves through Closed → Opening → Open → Closing → Closed.
// Open and close requests are honored only from the resting phases; during
// a transition they are idempotent no-ops. The animation itself belongs to
// the widget: it calls FinishOpen/FinishClose when the enter/exit
// transition has visually settled, and consumers observe Closed only after
// that settle.
package overlay

import (
	"github.com/charmbracelet/velvet/event"
	"github.com/charmbracelet/velvet/selection"
)

// Phase is the controller's lifecycle phase.
type Phase int

const (
	Closed Phase = iota
	Opening
	Open
	Closing
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case Closed:
		return "closed"
	case Opening:
		return "opening"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return "unknown"
	}
}

// Reason describes why an overlay is closing.
type Reason string

const (
	// ReasonSelection closes the overlay because an item was confirmed.
	ReasonSelection Reason = "selection"
	// ReasonEscape closes without selecting, via the escape key.
	ReasonEscape Reason = "escape"
	// ReasonDismiss closes without selecting, via focus loss or an outside
	// click.
	ReasonDismiss Reason = "dismiss"
)

// Selecting reports whether the reason carries a selection.
func (r Reason) Selecting() bool { return r == ReasonSelection }

// Controller manages one overlay's lifecycle over a selection registry.
type Controller struct {
	phase  Phase
	reg    *selection.Registry
	stream *event.Stream

	closeReason Reason
}

// NewController creates a controller in the Closed phase. The stream may be
// nil when no one cares about lifecycle notifications.
func NewController(reg *selection.Registry, stream *event.Stream) *Controller {
	return &Controller{reg: reg, stream: stream}
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase { return c.phase }

// Visible reports whether the overlay should be rendered at all, which is
// every phase except Closed (a closing overlay still shows its exit
// animation).
func (c *Controller) Visible() bool { return c.phase != Closed }

// AnnouncementsEnabled reports whether typeahead live announcements should
// fire. They are suppressed from the moment the overlay starts opening
// until it has fully closed, because announcements during open interaction
// are redundant with explicit focus movement.
func (c *Controller) AnnouncementsEnabled() bool { return c.phase == Closed }

// CloseReason returns the reason given to the most recent close request.
func (c *Controller) CloseReason() Reason { return c.closeReason }

// RequestOpen starts the open transition. Accepted only from Closed;
// anything else is a no-op and returns false.
//
// Before the overlay becomes visually active, any stale focus highlight is
// cleared and the canonical selection (if present) becomes the active item,
// so assistive focus lands on it.
func (c *Controller) RequestOpen() bool {
	if c.phase != Closed {
		return false
	}
	c.phase = Opening

	_, _, hasSelection := c.reg.Selected()
	for _, it := range c.reg.Items() {
		if it.Active() && (!hasSelection || !it.Selected()) {
			it.SetActive(false)
		}
	}
	if sel, _, ok := c.reg.Selected(); ok {
		sel.SetActive(true)
	}

	c.publish(event.Event{Type: event.Opening, Index: -1})
	return true
}

// FinishOpen marks the enter transition as settled. Accepted only from
// Opening.
func (c *Controller) FinishOpen() bool {
	if c.phase != Opening {
		return false
	}
	c.phase = Open
	c.publish(event.Event{Type: event.Opened, Index: -1})
	return true
}

// RequestClose starts the close transition with the given reason. Accepted
// only from Open; anything else is a no-op and returns false.
func (c *Controller) RequestClose(reason Reason) bool {
	if c.phase != Open {
		return false
	}
	c.phase = Closing
	c.closeReason = reason
	c.publish(event.Event{Type: event.Closing, Index: -1, Reason: string(reason)})
	return true
}

// FinishClose marks the exit transition as settled. Accepted only from
// Closing. Only after this do consumers observe Closed, and only from here
// are live announcements re-enabled.
func (c *Controller) FinishClose() bool {
	if c.phase != Closing {
		return false
	}
	c.phase = Closed
	c.publish(event.Event{Type: event.Closed, Index: -1, Reason: string(c.closeReason)})
	return true
}

func (c *Controller) publish(ev event.Event) {
	if c.stream != nil {
		c.stream.Publish(ev)
	}
}
