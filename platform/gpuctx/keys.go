// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuctx

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/speedy"
)

var keyTable = map[gpucontext.Key]speedy.KeyCode{
	gpucontext.KeyA: speedy.KeyA,
	gpucontext.KeyB: speedy.KeyB,
	gpucontext.KeyC: speedy.KeyC,
	gpucontext.KeyD: speedy.KeyD,
	gpucontext.KeyE: speedy.KeyE,
	gpucontext.KeyF: speedy.KeyF,
	gpucontext.KeyG: speedy.KeyG,
	gpucontext.KeyH: speedy.KeyH,
	gpucontext.KeyI: speedy.KeyI,
	gpucontext.KeyJ: speedy.KeyJ,
	gpucontext.KeyK: speedy.KeyK,
	gpucontext.KeyL: speedy.KeyL,
	gpucontext.KeyM: speedy.KeyM,
	gpucontext.KeyN: speedy.KeyN,
	gpucontext.KeyO: speedy.KeyO,
	gpucontext.KeyP: speedy.KeyP,
	gpucontext.KeyQ: speedy.KeyQ,
	gpucontext.KeyR: speedy.KeyR,
	gpucontext.KeyS: speedy.KeyS,
	gpucontext.KeyT: speedy.KeyT,
	gpucontext.KeyU: speedy.KeyU,
	gpucontext.KeyV: speedy.KeyV,
	gpucontext.KeyW: speedy.KeyW,
	gpucontext.KeyX: speedy.KeyX,
	gpucontext.KeyY: speedy.KeyY,
	gpucontext.KeyZ: speedy.KeyZ,

	gpucontext.Key0: speedy.Key0,
	gpucontext.Key1: speedy.Key1,
	gpucontext.Key2: speedy.Key2,
	gpucontext.Key3: speedy.Key3,
	gpucontext.Key4: speedy.Key4,
	gpucontext.Key5: speedy.Key5,
	gpucontext.Key6: speedy.Key6,
	gpucontext.Key7: speedy.Key7,
	gpucontext.Key8: speedy.Key8,
	gpucontext.Key9: speedy.Key9,

	gpucontext.KeyF1:  speedy.KeyF1,
	gpucontext.KeyF2:  speedy.KeyF2,
	gpucontext.KeyF3:  speedy.KeyF3,
	gpucontext.KeyF4:  speedy.KeyF4,
	gpucontext.KeyF5:  speedy.KeyF5,
	gpucontext.KeyF6:  speedy.KeyF6,
	gpucontext.KeyF7:  speedy.KeyF7,
	gpucontext.KeyF8:  speedy.KeyF8,
	gpucontext.KeyF9:  speedy.KeyF9,
	gpucontext.KeyF10: speedy.KeyF10,
	gpucontext.KeyF11: speedy.KeyF11,
	gpucontext.KeyF12: speedy.KeyF12,

	gpucontext.KeyEscape:    speedy.KeyEscape,
	gpucontext.KeyTab:       speedy.KeyTab,
	gpucontext.KeyBackspace: speedy.KeyBackspace,
	gpucontext.KeyEnter:     speedy.KeyReturn,
	gpucontext.KeySpace:     speedy.KeySpace,
	gpucontext.KeyInsert:    speedy.KeyInsert,
	gpucontext.KeyDelete:    speedy.KeyDelete,
	gpucontext.KeyHome:      speedy.KeyHome,
	gpucontext.KeyEnd:       speedy.KeyEnd,
	gpucontext.KeyPageUp:    speedy.KeyPageUp,
	gpucontext.KeyPageDown:  speedy.KeyPageDown,
	gpucontext.KeyLeft:      speedy.KeyLeft,
	gpucontext.KeyRight:     speedy.KeyRight,
	gpucontext.KeyUp:        speedy.KeyUp,
	gpucontext.KeyDown:      speedy.KeyDown,

	gpucontext.KeyLeftShift:    speedy.KeyLeftShift,
	gpucontext.KeyRightShift:   speedy.KeyRightShift,
	gpucontext.KeyLeftControl:  speedy.KeyLeftControl,
	gpucontext.KeyRightControl: speedy.KeyRightControl,
	gpucontext.KeyLeftAlt:      speedy.KeyLeftAlt,
	gpucontext.KeyRightAlt:     speedy.KeyRightAlt,
	gpucontext.KeyLeftSuper:    speedy.KeyLeftSuper,
	gpucontext.KeyRightSuper:   speedy.KeyRightSuper,

	gpucontext.KeyMinus:        speedy.KeyMinus,
	gpucontext.KeyEqual:        speedy.KeyEquals,
	gpucontext.KeyLeftBracket:  speedy.KeyLeftBracket,
	gpucontext.KeyRightBracket: speedy.KeyRightBracket,
	gpucontext.KeyBackslash:    speedy.KeyBackslash,
	gpucontext.KeySemicolon:    speedy.KeySemicolon,
	gpucontext.KeyApostrophe:   speedy.KeyApostrophe,
	gpucontext.KeyGrave:        speedy.KeyGrave,
	gpucontext.KeyComma:        speedy.KeyComma,
	gpucontext.KeyPeriod:       speedy.KeyPeriod,
	gpucontext.KeySlash:        speedy.KeySlash,

	gpucontext.KeyNumpad0:        speedy.KeyNumpad0,
	gpucontext.KeyNumpad1:        speedy.KeyNumpad1,
	gpucontext.KeyNumpad2:        speedy.KeyNumpad2,
	gpucontext.KeyNumpad3:        speedy.KeyNumpad3,
	gpucontext.KeyNumpad4:        speedy.KeyNumpad4,
	gpucontext.KeyNumpad5:        speedy.KeyNumpad5,
	gpucontext.KeyNumpad6:        speedy.KeyNumpad6,
	gpucontext.KeyNumpad7:        speedy.KeyNumpad7,
	gpucontext.KeyNumpad8:        speedy.KeyNumpad8,
	gpucontext.KeyNumpad9:        speedy.KeyNumpad9,
	gpucontext.KeyNumpadDecimal:  speedy.KeyNumpadDecimal,
	gpucontext.KeyNumpadDivide:   speedy.KeyNumpadDivide,
	gpucontext.KeyNumpadMultiply: speedy.KeyNumpadMultiply,
	gpucontext.KeyNumpadSubtract: speedy.KeyNumpadSubtract,
	gpucontext.KeyNumpadAdd:      speedy.KeyNumpadAdd,
	gpucontext.KeyNumpadEnter:    speedy.KeyNumpadEnter,

	gpucontext.KeyCapsLock:    speedy.KeyCapsLock,
	gpucontext.KeyScrollLock:  speedy.KeyScrollLock,
	gpucontext.KeyNumLock:     speedy.KeyNumLock,
	gpucontext.KeyPrintScreen: speedy.KeyPrintScreen,
	gpucontext.KeyPause:       speedy.KeyPauseBreak,
}

// translateKey maps a host key to a speedy key code, or KeyUnknown.
func translateKey(k gpucontext.Key) speedy.KeyCode {
	if code, ok := keyTable[k]; ok {
		return code
	}
	return speedy.KeyUnknown
}

func translateMods(m gpucontext.Modifiers) speedy.ModifiersState {
	return speedy.ModifiersState{
		Ctrl:  m.HasControl(),
		Alt:   m.HasAlt(),
		Shift: m.HasShift(),
		Logo:  m.HasSuper(),
	}
}

func translateButton(b gpucontext.MouseButton) speedy.MouseButton {
	switch b {
	case gpucontext.MouseButtonLeft:
		return speedy.MouseButtonLeft
	case gpucontext.MouseButtonRight:
		return speedy.MouseButtonRight
	case gpucontext.MouseButtonMiddle:
		return speedy.MouseButtonMiddle
	default:
		return speedy.MouseButtonOther(uint16(b))
	}
}
