// Package platformtest provides a scripted event loop, a fake window and a
// manual clock for driving the application without a display.
package platformtest

import (
	"time"

	"github.com/Faultbox/rad-engine/pkg/platform"
)

// Clock is a manually advanced clock.
type Clock struct {
	now time.Time
}

// NewClock returns a clock starting at a fixed instant.
func NewClock() *Clock {
	return &Clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// Window is a fake window that records redraw requests.
type Window struct {
	Width, Height int
	Name          string

	// RedrawRequests counts calls to RequestRedraw.
	RedrawRequests int
	pending        bool
}

// NewWindow returns a window of the given options.
func NewWindow(opts platform.WindowOptions) *Window {
	return &Window{Width: opts.Width, Height: opts.Height, Name: opts.Title}
}

func (w *Window) Size() (int, int) { return w.Width, w.Height }
func (w *Window) Title() string    { return w.Name }

func (w *Window) RequestRedraw() {
	w.RedrawRequests++
	w.pending = true
}

// takeRedraw reports and clears a pending redraw.
func (w *Window) takeRedraw() bool {
	p := w.pending
	w.pending = false
	return p
}

// Loop is a scripted platform.EventLoop.
//
// Run first delivers Script in order. It then simulates idle time: each
// iteration sends AboutToWait, delivers a pending redraw, and advances
// Clock by Tick, until Duration of simulated time has passed. Finally it
// sends CloseRequested if CloseAtEnd is set. Redraws requested while the
// script runs are delivered after the event that requested them.
type Loop struct {
	Window *Window
	Clock  *Clock

	Script     []platform.Event
	Tick       time.Duration
	Duration   time.Duration
	CloseAtEnd bool

	// Err is returned from Run after the script, simulating a fatal
	// windowing error.
	Err error

	// Delivered records every event passed to the handler.
	Delivered []platform.Event
	// Flows records the control flow after each delivered event.
	Flows []platform.ControlFlow
}

// NewLoop returns a loop over a fresh window and clock with a 1ms tick.
func NewLoop(opts platform.WindowOptions) *Loop {
	return &Loop{
		Window: NewWindow(opts),
		Clock:  NewClock(),
		Tick:   time.Millisecond,
	}
}

// Run implements platform.EventLoop.
func (l *Loop) Run(handler platform.Handler) error {
	ctl := &platform.Control{}

	deliver := func(ev platform.Event) bool {
		if ev.Kind == platform.EventResized && l.Window != nil {
			l.Window.Width, l.Window.Height = ev.Width, ev.Height
		}
		handler(ev, ctl)
		l.Delivered = append(l.Delivered, ev)
		l.Flows = append(l.Flows, ctl.Flow())
		return ctl.Exiting()
	}
	redraw := func() bool {
		if l.Window != nil && l.Window.takeRedraw() {
			return deliver(platform.Event{Kind: platform.EventRedrawRequested})
		}
		return false
	}

	for _, ev := range l.Script {
		if deliver(ev) || redraw() {
			return nil
		}
	}
	if l.Err != nil {
		return l.Err
	}

	if l.Tick > 0 && l.Clock != nil {
		end := l.Clock.Now().Add(l.Duration)
		for l.Clock.Now().Before(end) {
			if deliver(platform.Event{Kind: platform.EventAboutToWait}) || redraw() {
				return nil
			}
			l.Clock.Advance(l.Tick)
		}
	}

	if l.CloseAtEnd {
		deliver(platform.Event{Kind: platform.EventCloseRequested})
	}
	return nil
}

// Count returns how many delivered events had kind k.
func (l *Loop) Count(k platform.EventKind) int {
	n := 0
	for _, ev := range l.Delivered {
		if ev.Kind == k {
			n++
		}
	}
	return n
}

var (
	_ platform.EventLoop = (*Loop)(nil)
	_ platform.Window    = (*Window)(nil)
	_ platform.Clock     = (*Clock)(nil)
)
