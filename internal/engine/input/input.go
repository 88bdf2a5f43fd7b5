// Package input translates SDL2 events into platform events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/rad-engine/pkg/platform"
)

var namedKeys = map[sdl.Keycode]platform.Key{
	sdl.K_SPACE:        platform.KeySpace,
	sdl.K_QUOTE:        platform.KeyApostrophe,
	sdl.K_COMMA:        platform.KeyComma,
	sdl.K_MINUS:        platform.KeyMinus,
	sdl.K_PERIOD:       platform.KeyPeriod,
	sdl.K_SLASH:        platform.KeySlash,
	sdl.K_SEMICOLON:    platform.KeySemicolon,
	sdl.K_EQUALS:       platform.KeyEqual,
	sdl.K_LEFTBRACKET:  platform.KeyLeftBracket,
	sdl.K_RIGHTBRACKET: platform.KeyRightBracket,
	sdl.K_BACKSLASH:    platform.KeyBackslash,
	sdl.K_ESCAPE:       platform.KeyEscape,
	sdl.K_RETURN:       platform.KeyEnter,
	sdl.K_KP_ENTER:     platform.KeyEnter,
	sdl.K_TAB:          platform.KeyTab,
	sdl.K_BACKSPACE:    platform.KeyBackspace,
	sdl.K_UP:           platform.KeyUp,
	sdl.K_DOWN:         platform.KeyDown,
	sdl.K_LEFT:         platform.KeyLeft,
	sdl.K_RIGHT:        platform.KeyRight,
	sdl.K_CAPSLOCK:     platform.KeyCapsLock,
	sdl.K_NUMLOCKCLEAR: platform.KeyNumLock,
	sdl.K_LSHIFT:       platform.KeyLeftShift,
	sdl.K_LCTRL:        platform.KeyLeftControl,
	sdl.K_LALT:         platform.KeyLeftAlt,
	sdl.K_RSHIFT:       platform.KeyRightShift,
	sdl.K_RCTRL:        platform.KeyRightControl,
	sdl.K_RALT:         platform.KeyRightAlt,
}

var functionKeys = [...]sdl.Keycode{
	sdl.K_F1, sdl.K_F2, sdl.K_F3, sdl.K_F4, sdl.K_F5, sdl.K_F6,
	sdl.K_F7, sdl.K_F8, sdl.K_F9, sdl.K_F10, sdl.K_F11, sdl.K_F12,
	sdl.K_F13, sdl.K_F14, sdl.K_F15, sdl.K_F16, sdl.K_F17, sdl.K_F18,
	sdl.K_F19, sdl.K_F20, sdl.K_F21, sdl.K_F22, sdl.K_F23, sdl.K_F24,
}

var keypadKeys = [...]sdl.Keycode{
	sdl.K_KP_0, sdl.K_KP_1, sdl.K_KP_2, sdl.K_KP_3, sdl.K_KP_4,
	sdl.K_KP_5, sdl.K_KP_6, sdl.K_KP_7, sdl.K_KP_8, sdl.K_KP_9,
}

func init() {
	for i, k := range functionKeys {
		namedKeys[k] = platform.Function(i + 1)
	}
	for i, k := range keypadKeys {
		namedKeys[k] = platform.Numpad(i)
	}
}

// Key maps an SDL keycode to a platform key.
func Key(sym sdl.Keycode) platform.Key {
	switch {
	case sym >= sdl.K_a && sym <= sdl.K_z:
		return platform.Letter(rune(sym))
	case sym >= sdl.K_0 && sym <= sdl.K_9:
		return platform.Digit(int(sym - sdl.K_0))
	}
	if k, ok := namedKeys[sym]; ok {
		return k
	}
	return platform.KeyUnknown
}

// Button maps an SDL mouse button to a platform button.
func Button(b uint8) platform.MouseButton {
	switch b {
	case sdl.BUTTON_LEFT:
		return platform.MouseLeft
	case sdl.BUTTON_MIDDLE:
		return platform.MouseMiddle
	case sdl.BUTTON_RIGHT:
		return platform.MouseRight
	default:
		return platform.MouseOther
	}
}

// Translate converts an SDL event. ok is false for events the engine does
// not handle.
func Translate(event sdl.Event) (ev platform.Event, ok bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return platform.Event{Kind: platform.EventCloseRequested}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_SIZE_CHANGED:
			return platform.Resized(int(e.Data1), int(e.Data2)), true
		case sdl.WINDOWEVENT_CLOSE:
			return platform.Event{Kind: platform.EventCloseRequested}, true
		case sdl.WINDOWEVENT_EXPOSED:
			return platform.Event{Kind: platform.EventRedrawRequested}, true
		}

	case *sdl.KeyboardEvent:
		action := platform.Release
		if e.Type == sdl.KEYDOWN {
			action = platform.Press
			if e.Repeat != 0 {
				action = platform.Repeat
			}
		}
		return platform.KeyboardInput(Key(e.Keysym.Sym), action), true

	case *sdl.MouseMotionEvent:
		return platform.Event{
			Kind: platform.EventMouseMoved,
			X:    float64(e.X),
			Y:    float64(e.Y),
		}, true

	case *sdl.MouseButtonEvent:
		action := platform.Release
		if e.Type == sdl.MOUSEBUTTONDOWN {
			action = platform.Press
		}
		return platform.Event{
			Kind:   platform.EventMouseInput,
			Button: Button(e.Button),
			Action: action,
		}, true
	}

	return platform.Event{}, false
}
