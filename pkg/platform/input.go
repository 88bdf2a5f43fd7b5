package platform

import "fmt"

// InputAction is the state change of a key or button.
type InputAction int

const (
	Press InputAction = iota
	Release
	Repeat
)

// String returns the action name.
func (a InputAction) String() string {
	switch a {
	case Press:
		return "Press"
	case Release:
		return "Release"
	case Repeat:
		return "Repeat"
	default:
		return "Unknown"
	}
}

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
	MouseOther
)

// String returns the button name.
func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "Left"
	case MouseMiddle:
		return "Middle"
	case MouseRight:
		return "Right"
	default:
		return "Other"
	}
}

// Key is a layout-independent key identifier.
type Key int

// Named keys.
const (
	KeyUnknown Key = iota
	KeySpace
	KeyApostrophe
	KeyComma
	KeyMinus
	KeyPeriod
	KeySlash
	KeySemicolon
	KeyEqual
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyCapsLock
	KeyNumLock
	KeyLeftShift
	KeyLeftControl
	KeyLeftAlt
	KeyRightShift
	KeyRightControl
	KeyRightAlt
	keyNamedEnd
)

// Ranged keys. Use Letter, Digit, Function and Numpad to build them.
const (
	KeyA       = keyNamedEnd
	KeyZ       = KeyA + 25
	Key0       = KeyZ + 1
	Key9       = Key0 + 9
	KeyF1      = Key9 + 1
	KeyF24     = KeyF1 + 23
	KeyNumpad0 = KeyF24 + 1
	KeyNumpad9 = KeyNumpad0 + 9
)

var keyNames = [...]string{
	KeyUnknown:      "Unknown",
	KeySpace:        "Space",
	KeyApostrophe:   "Apostrophe",
	KeyComma:        "Comma",
	KeyMinus:        "Minus",
	KeyPeriod:       "Period",
	KeySlash:        "Slash",
	KeySemicolon:    "Semicolon",
	KeyEqual:        "Equal",
	KeyLeftBracket:  "LeftBracket",
	KeyRightBracket: "RightBracket",
	KeyBackslash:    "Backslash",
	KeyEscape:       "Escape",
	KeyEnter:        "Enter",
	KeyTab:          "Tab",
	KeyBackspace:    "Backspace",
	KeyUp:           "Up",
	KeyDown:         "Down",
	KeyLeft:         "Left",
	KeyRight:        "Right",
	KeyCapsLock:     "CapsLock",
	KeyNumLock:      "NumLock",
	KeyLeftShift:    "LeftShift",
	KeyLeftControl:  "LeftControl",
	KeyLeftAlt:      "LeftAlt",
	KeyRightShift:   "RightShift",
	KeyRightControl: "RightControl",
	KeyRightAlt:     "RightAlt",
}

// Letter returns the key for an ASCII letter, either case.
func Letter(r rune) Key {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + Key(r-'a')
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A')
	default:
		return KeyUnknown
	}
}

// Digit returns the key for a top-row digit 0-9.
func Digit(n int) Key {
	if n < 0 || n > 9 {
		return KeyUnknown
	}
	return Key0 + Key(n)
}

// Function returns the key for F1-F24.
func Function(n int) Key {
	if n < 1 || n > 24 {
		return KeyUnknown
	}
	return KeyF1 + Key(n-1)
}

// Numpad returns the key for keypad digit 0-9.
func Numpad(n int) Key {
	if n < 0 || n > 9 {
		return KeyUnknown
	}
	return KeyNumpad0 + Key(n)
}

// String returns the key name.
func (k Key) String() string {
	switch {
	case k >= 0 && k < keyNamedEnd:
		return keyNames[k]
	case k >= KeyA && k <= KeyZ:
		return string(rune('A' + int(k-KeyA)))
	case k >= Key0 && k <= Key9:
		return string(rune('0' + int(k-Key0)))
	case k >= KeyF1 && k <= KeyF24:
		return fmt.Sprintf("F%d", int(k-KeyF1)+1)
	case k >= KeyNumpad0 && k <= KeyNumpad9:
		return fmt.Sprintf("Numpad%d", int(k-KeyNumpad0))
	default:
		return "Unknown"
	}
}
