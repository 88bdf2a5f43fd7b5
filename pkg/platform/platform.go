// Package platform defines the windowing contract the application driver
// runs on: a window, an event loop and the events it delivers.
//
// The SDL implementation lives in internal/engine/window; platformtest
// provides a scripted loop with a fake clock.
package platform

import "time"

// EventKind identifies an Event.
type EventKind int

const (
	// EventResized reports a new drawable size in Width and Height.
	EventResized EventKind = iota
	// EventCloseRequested is sent when the user asks to close the window.
	EventCloseRequested
	// EventRedrawRequested is sent once after Window.RequestRedraw.
	EventRedrawRequested
	// EventAboutToWait is sent when the loop has drained pending events.
	EventAboutToWait
	// EventKeyboardInput carries Key and Action.
	EventKeyboardInput
	// EventMouseMoved carries X and Y in window coordinates.
	EventMouseMoved
	// EventMouseInput carries Button and Action.
	EventMouseInput
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventResized:
		return "Resized"
	case EventCloseRequested:
		return "CloseRequested"
	case EventRedrawRequested:
		return "RedrawRequested"
	case EventAboutToWait:
		return "AboutToWait"
	case EventKeyboardInput:
		return "KeyboardInput"
	case EventMouseMoved:
		return "MouseMoved"
	case EventMouseInput:
		return "MouseInput"
	default:
		return "Unknown"
	}
}

// Event is a window or input event. Only the fields for Kind are set.
type Event struct {
	Kind   EventKind
	Width  int
	Height int
	Key    Key
	Action InputAction
	Button MouseButton
	X, Y   float64
}

// Resized returns a resize event.
func Resized(width, height int) Event {
	return Event{Kind: EventResized, Width: width, Height: height}
}

// KeyboardInput returns a key event.
func KeyboardInput(key Key, action InputAction) Event {
	return Event{Kind: EventKeyboardInput, Key: key, Action: action}
}

// ControlFlow tells the event loop what to do after the current event.
type ControlFlow int

const (
	// Wait blocks until the next event arrives.
	Wait ControlFlow = iota
	// Poll keeps the loop spinning, sending AboutToWait continuously.
	Poll
	// Exit stops the loop; Run returns nil.
	Exit
)

// String returns the control flow name.
func (c ControlFlow) String() string {
	switch c {
	case Wait:
		return "Wait"
	case Poll:
		return "Poll"
	case Exit:
		return "Exit"
	default:
		return "Unknown"
	}
}

// Control is passed to the handler with every event. Once Exit is set it
// cannot be undone.
type Control struct {
	flow ControlFlow
}

// Flow returns the current control flow.
func (c *Control) Flow() ControlFlow {
	return c.flow
}

// SetPoll switches the loop to polling.
func (c *Control) SetPoll() {
	if c.flow != Exit {
		c.flow = Poll
	}
}

// SetWait switches the loop to waiting for events.
func (c *Control) SetWait() {
	if c.flow != Exit {
		c.flow = Wait
	}
}

// Exit stops the loop after the current event.
func (c *Control) Exit() {
	c.flow = Exit
}

// Exiting reports whether Exit was requested.
func (c *Control) Exiting() bool {
	return c.flow == Exit
}

// Handler receives every event the loop delivers.
type Handler func(ev Event, ctl *Control)

// Window is the application's main window.
type Window interface {
	// Size returns the drawable size in pixels.
	Size() (width, height int)
	Title() string
	// RequestRedraw schedules one EventRedrawRequested. Repeated requests
	// before delivery coalesce.
	RequestRedraw()
}

// EventLoop delivers events on the calling goroutine until the handler
// exits or a fatal error occurs.
type EventLoop interface {
	Run(handler Handler) error
}

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time { return time.Now() }

// WindowOptions configure the main window.
type WindowOptions struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// DefaultWindowOptions is a 480x480 windowed test window.
func DefaultWindowOptions() WindowOptions {
	return WindowOptions{
		Title:  "Rad Engine Test",
		Width:  480,
		Height: 480,
	}
}
