// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package web provides a speedy.Platform for browsers, drawing into an HTML
// canvas element with the software backend. It is only functional when
// built for js/wasm:
//
//	GOOS=js GOARCH=wasm go build -o app.wasm
//
// The page must contain a canvas, by default with the id "speedy". Keys are
// identified by KeyboardEvent.code, so they follow the physical layout.
package web

import (
	"fmt"

	"github.com/gogpu/speedy"
)

var keyTable = func() map[string]speedy.KeyCode {
	m := map[string]speedy.KeyCode{
		"Escape":      speedy.KeyEscape,
		"PrintScreen": speedy.KeyPrintScreen,
		"ScrollLock":  speedy.KeyScrollLock,
		"Pause":       speedy.KeyPauseBreak,
		"Insert":      speedy.KeyInsert,
		"Home":        speedy.KeyHome,
		"Delete":      speedy.KeyDelete,
		"End":         speedy.KeyEnd,
		"PageDown":    speedy.KeyPageDown,
		"PageUp":      speedy.KeyPageUp,
		"ArrowLeft":   speedy.KeyLeft,
		"ArrowUp":     speedy.KeyUp,
		"ArrowRight":  speedy.KeyRight,
		"ArrowDown":   speedy.KeyDown,
		"Backspace":   speedy.KeyBackspace,
		"Enter":       speedy.KeyReturn,
		"Space":       speedy.KeySpace,
		"Tab":         speedy.KeyTab,
		"CapsLock":    speedy.KeyCapsLock,
		"NumLock":     speedy.KeyNumLock,
		"ContextMenu": speedy.KeyMenu,

		"NumpadAdd":      speedy.KeyNumpadAdd,
		"NumpadSubtract": speedy.KeyNumpadSubtract,
		"NumpadMultiply": speedy.KeyNumpadMultiply,
		"NumpadDivide":   speedy.KeyNumpadDivide,
		"NumpadDecimal":  speedy.KeyNumpadDecimal,
		"NumpadComma":    speedy.KeyNumpadComma,
		"NumpadEnter":    speedy.KeyNumpadEnter,
		"NumpadEqual":    speedy.KeyNumpadEquals,

		"Quote":        speedy.KeyApostrophe,
		"Backslash":    speedy.KeyBackslash,
		"Comma":        speedy.KeyComma,
		"Equal":        speedy.KeyEquals,
		"Backquote":    speedy.KeyGrave,
		"BracketLeft":  speedy.KeyLeftBracket,
		"BracketRight": speedy.KeyRightBracket,
		"Minus":        speedy.KeyMinus,
		"Period":       speedy.KeyPeriod,
		"Semicolon":    speedy.KeySemicolon,
		"Slash":        speedy.KeySlash,

		"AltLeft":      speedy.KeyLeftAlt,
		"ControlLeft":  speedy.KeyLeftControl,
		"ShiftLeft":    speedy.KeyLeftShift,
		"MetaLeft":     speedy.KeyLeftSuper,
		"AltRight":     speedy.KeyRightAlt,
		"ControlRight": speedy.KeyRightControl,
		"ShiftRight":   speedy.KeyRightShift,
		"MetaRight":    speedy.KeyRightSuper,

		"AudioVolumeMute":    speedy.KeyMute,
		"AudioVolumeDown":    speedy.KeyVolumeDown,
		"AudioVolumeUp":      speedy.KeyVolumeUp,
		"MediaPlayPause":     speedy.KeyPlayPause,
		"MediaTrackNext":     speedy.KeyNextTrack,
		"MediaTrackPrevious": speedy.KeyPrevTrack,
		"MediaStop":          speedy.KeyMediaStop,
	}
	for i := range 26 {
		m[fmt.Sprintf("Key%c", 'A'+i)] = speedy.KeyA + speedy.KeyCode(i)
	}
	for i := range 10 {
		m[fmt.Sprintf("Digit%d", i)] = speedy.Key0 + speedy.KeyCode(i)
		m[fmt.Sprintf("Numpad%d", i)] = speedy.KeyNumpad0 + speedy.KeyCode(i)
	}
	for i := range 24 {
		m[fmt.Sprintf("F%d", i+1)] = speedy.KeyF1 + speedy.KeyCode(i)
	}
	return m
}()

// translateKey maps a KeyboardEvent.code value to a speedy key code, or
// KeyUnknown.
func translateKey(code string) speedy.KeyCode {
	if k, ok := keyTable[code]; ok {
		return k
	}
	return speedy.KeyUnknown
}

// translateButton maps a MouseEvent.button value.
func translateButton(button int) speedy.MouseButton {
	switch button {
	case 0:
		return speedy.MouseButtonLeft
	case 1:
		return speedy.MouseButtonMiddle
	case 2:
		return speedy.MouseButtonRight
	default:
		return speedy.MouseButtonOther(uint16(button))
	}
}

// WheelEvent.deltaMode values.
const (
	deltaPixel = 0
	deltaLine  = 1
	deltaPage  = 2
)

// wheelEvent converts a WheelEvent. Browser deltas grow downwards and pixel
// deltas are in CSS pixels.
func wheelEvent(mode int, dx, dy, ratio float64) speedy.RawMouseWheel {
	d := speedy.Vec3{X: dx, Y: -dy}
	switch mode {
	case deltaPixel:
		d.X *= ratio
		d.Y *= ratio
		return speedy.RawMouseWheel{Delta: d, Precise: true}
	case deltaPage:
		const linesPerPage = 20
		d.X *= linesPerPage
		d.Y *= linesPerPage
	}
	return speedy.RawMouseWheel{Delta: d}
}

// cssToPixels converts a position in CSS pixels to canvas pixels.
func cssToPixels(x, y, ratio float64) speedy.Vec2 {
	return speedy.Vec2{X: float32(x * ratio), Y: float32(y * ratio)}
}

// printable returns the character typed by a KeyboardEvent.key value, or
// false for named keys such as "Enter".
func printable(key string) (rune, bool) {
	var r rune
	n := 0
	for _, c := range key {
		r = c
		n++
	}
	return r, n == 1
}
