// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glfw

import (
	glfwlib "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/speedy"
)

var keyTable = map[glfwlib.Key]speedy.KeyCode{
	glfwlib.Key0: speedy.Key0,
	glfwlib.Key1: speedy.Key1,
	glfwlib.Key2: speedy.Key2,
	glfwlib.Key3: speedy.Key3,
	glfwlib.Key4: speedy.Key4,
	glfwlib.Key5: speedy.Key5,
	glfwlib.Key6: speedy.Key6,
	glfwlib.Key7: speedy.Key7,
	glfwlib.Key8: speedy.Key8,
	glfwlib.Key9: speedy.Key9,

	glfwlib.KeyA: speedy.KeyA,
	glfwlib.KeyB: speedy.KeyB,
	glfwlib.KeyC: speedy.KeyC,
	glfwlib.KeyD: speedy.KeyD,
	glfwlib.KeyE: speedy.KeyE,
	glfwlib.KeyF: speedy.KeyF,
	glfwlib.KeyG: speedy.KeyG,
	glfwlib.KeyH: speedy.KeyH,
	glfwlib.KeyI: speedy.KeyI,
	glfwlib.KeyJ: speedy.KeyJ,
	glfwlib.KeyK: speedy.KeyK,
	glfwlib.KeyL: speedy.KeyL,
	glfwlib.KeyM: speedy.KeyM,
	glfwlib.KeyN: speedy.KeyN,
	glfwlib.KeyO: speedy.KeyO,
	glfwlib.KeyP: speedy.KeyP,
	glfwlib.KeyQ: speedy.KeyQ,
	glfwlib.KeyR: speedy.KeyR,
	glfwlib.KeyS: speedy.KeyS,
	glfwlib.KeyT: speedy.KeyT,
	glfwlib.KeyU: speedy.KeyU,
	glfwlib.KeyV: speedy.KeyV,
	glfwlib.KeyW: speedy.KeyW,
	glfwlib.KeyX: speedy.KeyX,
	glfwlib.KeyY: speedy.KeyY,
	glfwlib.KeyZ: speedy.KeyZ,

	glfwlib.KeyEscape: speedy.KeyEscape,
	glfwlib.KeyF1:     speedy.KeyF1,
	glfwlib.KeyF2:     speedy.KeyF2,
	glfwlib.KeyF3:     speedy.KeyF3,
	glfwlib.KeyF4:     speedy.KeyF4,
	glfwlib.KeyF5:     speedy.KeyF5,
	glfwlib.KeyF6:     speedy.KeyF6,
	glfwlib.KeyF7:     speedy.KeyF7,
	glfwlib.KeyF8:     speedy.KeyF8,
	glfwlib.KeyF9:     speedy.KeyF9,
	glfwlib.KeyF10:    speedy.KeyF10,
	glfwlib.KeyF11:    speedy.KeyF11,
	glfwlib.KeyF12:    speedy.KeyF12,
	glfwlib.KeyF13:    speedy.KeyF13,
	glfwlib.KeyF14:    speedy.KeyF14,
	glfwlib.KeyF15:    speedy.KeyF15,
	glfwlib.KeyF16:    speedy.KeyF16,
	glfwlib.KeyF17:    speedy.KeyF17,
	glfwlib.KeyF18:    speedy.KeyF18,
	glfwlib.KeyF19:    speedy.KeyF19,
	glfwlib.KeyF20:    speedy.KeyF20,
	glfwlib.KeyF21:    speedy.KeyF21,
	glfwlib.KeyF22:    speedy.KeyF22,
	glfwlib.KeyF23:    speedy.KeyF23,
	glfwlib.KeyF24:    speedy.KeyF24,

	glfwlib.KeyPrintScreen: speedy.KeyPrintScreen,
	glfwlib.KeyScrollLock:  speedy.KeyScrollLock,
	glfwlib.KeyPause:       speedy.KeyPauseBreak,
	glfwlib.KeyInsert:      speedy.KeyInsert,
	glfwlib.KeyHome:        speedy.KeyHome,
	glfwlib.KeyDelete:      speedy.KeyDelete,
	glfwlib.KeyEnd:         speedy.KeyEnd,
	glfwlib.KeyPageDown:    speedy.KeyPageDown,
	glfwlib.KeyPageUp:      speedy.KeyPageUp,
	glfwlib.KeyLeft:        speedy.KeyLeft,
	glfwlib.KeyUp:          speedy.KeyUp,
	glfwlib.KeyRight:       speedy.KeyRight,
	glfwlib.KeyDown:        speedy.KeyDown,
	glfwlib.KeyBackspace:   speedy.KeyBackspace,
	glfwlib.KeyEnter:       speedy.KeyReturn,
	glfwlib.KeySpace:       speedy.KeySpace,
	glfwlib.KeyTab:         speedy.KeyTab,
	glfwlib.KeyCapsLock:    speedy.KeyCapsLock,
	glfwlib.KeyNumLock:     speedy.KeyNumLock,
	glfwlib.KeyMenu:        speedy.KeyMenu,

	glfwlib.KeyKP0:        speedy.KeyNumpad0,
	glfwlib.KeyKP1:        speedy.KeyNumpad1,
	glfwlib.KeyKP2:        speedy.KeyNumpad2,
	glfwlib.KeyKP3:        speedy.KeyNumpad3,
	glfwlib.KeyKP4:        speedy.KeyNumpad4,
	glfwlib.KeyKP5:        speedy.KeyNumpad5,
	glfwlib.KeyKP6:        speedy.KeyNumpad6,
	glfwlib.KeyKP7:        speedy.KeyNumpad7,
	glfwlib.KeyKP8:        speedy.KeyNumpad8,
	glfwlib.KeyKP9:        speedy.KeyNumpad9,
	glfwlib.KeyKPAdd:      speedy.KeyNumpadAdd,
	glfwlib.KeyKPSubtract: speedy.KeyNumpadSubtract,
	glfwlib.KeyKPMultiply: speedy.KeyNumpadMultiply,
	glfwlib.KeyKPDivide:   speedy.KeyNumpadDivide,
	glfwlib.KeyKPDecimal:  speedy.KeyNumpadDecimal,
	glfwlib.KeyKPEnter:    speedy.KeyNumpadEnter,
	glfwlib.KeyKPEqual:    speedy.KeyNumpadEquals,

	glfwlib.KeyApostrophe:   speedy.KeyApostrophe,
	glfwlib.KeyBackslash:    speedy.KeyBackslash,
	glfwlib.KeyComma:        speedy.KeyComma,
	glfwlib.KeyEqual:        speedy.KeyEquals,
	glfwlib.KeyGraveAccent:  speedy.KeyGrave,
	glfwlib.KeyLeftBracket:  speedy.KeyLeftBracket,
	glfwlib.KeyRightBracket: speedy.KeyRightBracket,
	glfwlib.KeyMinus:        speedy.KeyMinus,
	glfwlib.KeyPeriod:       speedy.KeyPeriod,
	glfwlib.KeySemicolon:    speedy.KeySemicolon,
	glfwlib.KeySlash:        speedy.KeySlash,
	glfwlib.KeyWorld1:       speedy.KeyWorld1,
	glfwlib.KeyWorld2:       speedy.KeyWorld2,

	glfwlib.KeyLeftAlt:      speedy.KeyLeftAlt,
	glfwlib.KeyLeftControl:  speedy.KeyLeftControl,
	glfwlib.KeyLeftShift:    speedy.KeyLeftShift,
	glfwlib.KeyLeftSuper:    speedy.KeyLeftSuper,
	glfwlib.KeyRightAlt:     speedy.KeyRightAlt,
	glfwlib.KeyRightControl: speedy.KeyRightControl,
	glfwlib.KeyRightShift:   speedy.KeyRightShift,
	glfwlib.KeyRightSuper:   speedy.KeyRightSuper,
}

// translateKey maps a GLFW key to a speedy key code. Keys without an
// equivalent, such as F25, map to KeyUnknown.
func translateKey(k glfwlib.Key) speedy.KeyCode {
	if code, ok := keyTable[k]; ok {
		return code
	}
	return speedy.KeyUnknown
}

// translateButton maps a GLFW mouse button. Buttons past the third are
// reported as other buttons numbered from 3.
func translateButton(b glfwlib.MouseButton) speedy.MouseButton {
	switch b {
	case glfwlib.MouseButtonLeft:
		return speedy.MouseButtonLeft
	case glfwlib.MouseButtonRight:
		return speedy.MouseButtonRight
	case glfwlib.MouseButtonMiddle:
		return speedy.MouseButtonMiddle
	default:
		return speedy.MouseButtonOther(uint16(b))
	}
}

// translateMods maps a GLFW modifier bit set.
func translateMods(m glfwlib.ModifierKey) speedy.ModifiersState {
	return speedy.ModifiersState{
		Ctrl:  m&glfwlib.ModControl != 0,
		Alt:   m&glfwlib.ModAlt != 0,
		Shift: m&glfwlib.ModShift != 0,
		Logo:  m&glfwlib.ModSuper != 0,
	}
}

// modifiersFrom returns the modifier state given the pressed state of
// each key. Either side of a modifier pair sets the modifier.
func modifiersFrom(pressed func(glfwlib.Key) bool) speedy.ModifiersState {
	return speedy.ModifiersState{
		Ctrl:  pressed(glfwlib.KeyLeftControl) || pressed(glfwlib.KeyRightControl),
		Alt:   pressed(glfwlib.KeyLeftAlt) || pressed(glfwlib.KeyRightAlt),
		Shift: pressed(glfwlib.KeyLeftShift) || pressed(glfwlib.KeyRightShift),
		Logo:  pressed(glfwlib.KeyLeftSuper) || pressed(glfwlib.KeyRightSuper),
	}
}

// isModifier reports whether k is one of the modifier keys.
func isModifier(k glfwlib.Key) bool {
	switch k {
	case glfwlib.KeyLeftControl, glfwlib.KeyRightControl,
		glfwlib.KeyLeftAlt, glfwlib.KeyRightAlt,
		glfwlib.KeyLeftShift, glfwlib.KeyRightShift,
		glfwlib.KeyLeftSuper, glfwlib.KeyRightSuper:
		return true
	}
	return false
}

// cursorPosition converts a cursor position in screen coordinates to
// framebuffer pixels.
func cursorPosition(x, y, ratio float64) speedy.Vec2 {
	return speedy.Vec2{X: float32(x * ratio), Y: float32(y * ratio)}
}
