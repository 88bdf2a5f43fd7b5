package rad

import (
	"time"

	"github.com/Faultbox/rad-engine/pkg/platform"
)

// WindowResource mirrors the main window. It is updated on every resize.
type WindowResource struct {
	Width  int
	Height int
	Title  string
}

// Time is updated at the start of every frame, before Update runs.
type Time struct {
	// Delta is the time since the previous frame; zero on the first frame.
	Delta time.Duration
	// Elapsed is the time since the event loop started.
	Elapsed time.Duration
	// Frame counts frames started, starting at 1.
	Frame uint64
}

// DeltaSeconds returns Delta in seconds.
func (t Time) DeltaSeconds() float32 {
	return float32(t.Delta.Seconds())
}

// Input is the keyboard and mouse state. Just* queries report changes
// since the previous frame.
type Input struct {
	pressed      map[platform.Key]bool
	justPressed  map[platform.Key]bool
	justReleased map[platform.Key]bool
	buttons      map[platform.MouseButton]bool

	MouseX, MouseY float64
}

// NewInput returns an empty input state.
func NewInput() Input {
	return Input{
		pressed:      make(map[platform.Key]bool),
		justPressed:  make(map[platform.Key]bool),
		justReleased: make(map[platform.Key]bool),
		buttons:      make(map[platform.MouseButton]bool),
	}
}

// Pressed reports whether key is held down.
func (in *Input) Pressed(key platform.Key) bool { return in.pressed[key] }

// JustPressed reports whether key went down during this frame.
func (in *Input) JustPressed(key platform.Key) bool { return in.justPressed[key] }

// JustReleased reports whether key went up during this frame.
func (in *Input) JustReleased(key platform.Key) bool { return in.justReleased[key] }

// ButtonPressed reports whether a mouse button is held down.
func (in *Input) ButtonPressed(b platform.MouseButton) bool { return in.buttons[b] }

func (in *Input) applyKey(key platform.Key, action platform.InputAction) {
	switch action {
	case platform.Press:
		if !in.pressed[key] {
			in.justPressed[key] = true
		}
		in.pressed[key] = true
	case platform.Release:
		delete(in.pressed, key)
		in.justReleased[key] = true
	}
}

func (in *Input) applyButton(b platform.MouseButton, action platform.InputAction) {
	if action == platform.Press {
		in.buttons[b] = true
	} else {
		delete(in.buttons, b)
	}
}

// endFrame clears per-frame changes.
func (in *Input) endFrame() {
	clear(in.justPressed)
	clear(in.justReleased)
}
