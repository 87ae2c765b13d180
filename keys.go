package speedy

import "fmt"

// KeyCode identifies a physical key independently of the platform.
// Platform packages translate their native codes into KeyCode; keys that
// have no equivalent are reported as KeyUnknown.
type KeyCode uint16

// Key codes.
const (
	// KeyUnknown is the fallback for native keys with no canonical mapping.
	KeyUnknown KeyCode = iota

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyF21
	KeyF22
	KeyF23
	KeyF24

	KeyPrintScreen
	KeyScrollLock
	KeyPauseBreak

	KeyInsert
	KeyHome
	KeyDelete
	KeyEnd
	KeyPageDown
	KeyPageUp

	KeyLeft
	KeyUp
	KeyRight
	KeyDown

	KeyBackspace
	KeyReturn
	KeySpace
	KeyTab
	KeyCapsLock
	KeyNumLock
	KeyMenu

	KeyNumpad0
	KeyNumpad1
	KeyNumpad2
	KeyNumpad3
	KeyNumpad4
	KeyNumpad5
	KeyNumpad6
	KeyNumpad7
	KeyNumpad8
	KeyNumpad9
	KeyNumpadAdd
	KeyNumpadSubtract
	KeyNumpadMultiply
	KeyNumpadDivide
	KeyNumpadDecimal
	KeyNumpadComma
	KeyNumpadEnter
	KeyNumpadEquals

	KeyApostrophe
	KeyBackslash
	KeyComma
	KeyEquals
	KeyGrave
	KeyLeftBracket
	KeyRightBracket
	KeyMinus
	KeyPeriod
	KeySemicolon
	KeySlash
	KeyWorld1
	KeyWorld2

	KeyLeftAlt
	KeyLeftControl
	KeyLeftShift
	KeyLeftSuper
	KeyRightAlt
	KeyRightControl
	KeyRightShift
	KeyRightSuper

	KeyMute
	KeyVolumeDown
	KeyVolumeUp
	KeyPlayPause
	KeyNextTrack
	KeyPrevTrack
	KeyMediaStop

	keyCodeCount
)

var keyNames = [...]string{
	KeyUnknown: "Unknown",
	Key0:       "0", Key1: "1", Key2: "2", Key3: "3", Key4: "4",
	Key5: "5", Key6: "6", Key7: "7", Key8: "8", Key9: "9",
	KeyA: "A", KeyB: "B", KeyC: "C", KeyD: "D", KeyE: "E", KeyF: "F", KeyG: "G",
	KeyH: "H", KeyI: "I", KeyJ: "J", KeyK: "K", KeyL: "L", KeyM: "M", KeyN: "N",
	KeyO: "O", KeyP: "P", KeyQ: "Q", KeyR: "R", KeyS: "S", KeyT: "T", KeyU: "U",
	KeyV: "V", KeyW: "W", KeyX: "X", KeyY: "Y", KeyZ: "Z",
	KeyEscape: "Escape",
	KeyF1:     "F1", KeyF2: "F2", KeyF3: "F3", KeyF4: "F4", KeyF5: "F5", KeyF6: "F6",
	KeyF7: "F7", KeyF8: "F8", KeyF9: "F9", KeyF10: "F10", KeyF11: "F11", KeyF12: "F12",
	KeyF13: "F13", KeyF14: "F14", KeyF15: "F15", KeyF16: "F16", KeyF17: "F17", KeyF18: "F18",
	KeyF19: "F19", KeyF20: "F20", KeyF21: "F21", KeyF22: "F22", KeyF23: "F23", KeyF24: "F24",
	KeyPrintScreen: "PrintScreen", KeyScrollLock: "ScrollLock", KeyPauseBreak: "PauseBreak",
	KeyInsert: "Insert", KeyHome: "Home", KeyDelete: "Delete", KeyEnd: "End",
	KeyPageDown: "PageDown", KeyPageUp: "PageUp",
	KeyLeft: "Left", KeyUp: "Up", KeyRight: "Right", KeyDown: "Down",
	KeyBackspace: "Backspace", KeyReturn: "Return", KeySpace: "Space", KeyTab: "Tab",
	KeyCapsLock: "CapsLock", KeyNumLock: "NumLock", KeyMenu: "Menu",
	KeyNumpad0: "Numpad0", KeyNumpad1: "Numpad1", KeyNumpad2: "Numpad2", KeyNumpad3: "Numpad3",
	KeyNumpad4: "Numpad4", KeyNumpad5: "Numpad5", KeyNumpad6: "Numpad6", KeyNumpad7: "Numpad7",
	KeyNumpad8: "Numpad8", KeyNumpad9: "Numpad9",
	KeyNumpadAdd: "NumpadAdd", KeyNumpadSubtract: "NumpadSubtract",
	KeyNumpadMultiply: "NumpadMultiply", KeyNumpadDivide: "NumpadDivide",
	KeyNumpadDecimal: "NumpadDecimal", KeyNumpadComma: "NumpadComma",
	KeyNumpadEnter: "NumpadEnter", KeyNumpadEquals: "NumpadEquals",
	KeyApostrophe: "Apostrophe", KeyBackslash: "Backslash", KeyComma: "Comma",
	KeyEquals: "Equals", KeyGrave: "Grave", KeyLeftBracket: "LeftBracket",
	KeyRightBracket: "RightBracket", KeyMinus: "Minus", KeyPeriod: "Period",
	KeySemicolon: "Semicolon", KeySlash: "Slash", KeyWorld1: "World1", KeyWorld2: "World2",
	KeyLeftAlt: "LeftAlt", KeyLeftControl: "LeftControl", KeyLeftShift: "LeftShift",
	KeyLeftSuper: "LeftSuper", KeyRightAlt: "RightAlt", KeyRightControl: "RightControl",
	KeyRightShift: "RightShift", KeyRightSuper: "RightSuper",
	KeyMute: "Mute", KeyVolumeDown: "VolumeDown", KeyVolumeUp: "VolumeUp",
	KeyPlayPause: "PlayPause", KeyNextTrack: "NextTrack", KeyPrevTrack: "PrevTrack",
	KeyMediaStop: "MediaStop",
}

// String returns the key name.
func (k KeyCode) String() string {
	if int(k) < len(keyNames) && keyNames[k] != "" {
		return keyNames[k]
	}
	return fmt.Sprintf("KeyCode(%d)", uint16(k))
}

// MouseButton identifies a mouse button.
type MouseButton struct {
	kind  mouseButtonKind
	index uint16
}

type mouseButtonKind uint8

const (
	mouseLeft mouseButtonKind = iota
	mouseMiddle
	mouseRight
	mouseOther
)

// Standard mouse buttons.
var (
	MouseButtonLeft   = MouseButton{kind: mouseLeft}
	MouseButtonMiddle = MouseButton{kind: mouseMiddle}
	MouseButtonRight  = MouseButton{kind: mouseRight}
)

// MouseButtonOther returns the additional button with the given
// platform index.
func MouseButtonOther(index uint16) MouseButton {
	return MouseButton{kind: mouseOther, index: index}
}

// IsOther reports whether b is a non-standard button.
func (b MouseButton) IsOther() bool {
	return b.kind == mouseOther
}

// Index returns the platform index of a non-standard button, or 0.
func (b MouseButton) Index() uint16 {
	return b.index
}

// String returns the button name.
func (b MouseButton) String() string {
	switch b.kind {
	case mouseLeft:
		return "Left"
	case mouseMiddle:
		return "Middle"
	case mouseRight:
		return "Right"
	default:
		return fmt.Sprintf("Other(%d)", b.index)
	}
}

// ModifiersState holds the state of the keyboard modifier keys.
type ModifiersState struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	// Logo is the Windows key, Command key or Super key.
	Logo bool
}

// MouseScrollDistance is the distance scrolled by a mouse wheel or
// trackpad. Exactly one of Lines or Pixels is set, depending on the
// device.
type MouseScrollDistance struct {
	// Lines is the scroll amount in lines, set for notched wheels.
	Lines Vec3
	// Pixels is the scroll amount in logical pixels, set for precise
	// devices such as trackpads.
	Pixels Vec3
	// Precise is true when Pixels holds the value.
	Precise bool
}
