package speedy

import "math"

// windowState is the durable state of a window. It is owned by the loop
// goroutine and mutated by the adapter and the WindowHelper.
type windowState struct {
	sizePixels    UVec2
	scale         float64
	redrawPending bool
	terminate     bool
	fullscreen    bool
	cursorGrabbed bool

	// deferred holds status events queued by helper actions, delivered at
	// the start of the next tick.
	deferred []Event
}

// logicalSize converts the physical size to logical pixels.
func (s *windowState) logicalSize() UVec2 {
	return UVec2{
		X: uint32(math.Round(float64(s.sizePixels.X) / s.scale)),
		Y: uint32(math.Round(float64(s.sizePixels.Y) / s.scale)),
	}
}

// eventAdapter turns raw platform events into canonical events, applying
// DPI correction. It keeps no state of its own.
type eventAdapter struct {
	state *windowState
}

// translate appends the canonical events for raw to out. Some raw events
// only update window state and produce nothing.
func (a eventAdapter) translate(raw RawEvent, out []Event) []Event {
	s := a.state
	switch ev := raw.(type) {
	case RawResized:
		s.sizePixels = ev.SizePixels
		s.redrawPending = true
		return append(out, ResizeEvent{Size: s.logicalSize(), SizePixels: ev.SizePixels})

	case RawScaleFactorChanged:
		if ev.ScaleFactor <= 0 || ev.ScaleFactor == s.scale {
			return out
		}
		s.scale = ev.ScaleFactor
		s.redrawPending = true
		return append(out, ScaleFactorChangedEvent{ScaleFactor: ev.ScaleFactor})

	case RawMouseMoved:
		return append(out, MouseMoveEvent{Position: a.logical(ev.PositionPixels)})

	case RawMouseButton:
		if ev.Pressed {
			return append(out, MouseButtonDownEvent{Button: ev.Button})
		}
		return append(out, MouseButtonUpEvent{Button: ev.Button})

	case RawMouseWheel:
		d := MouseScrollDistance{Precise: ev.Precise}
		if ev.Precise {
			d.Pixels = Vec3{X: ev.Delta.X / s.scale, Y: ev.Delta.Y / s.scale, Z: ev.Delta.Z / s.scale}
		} else {
			d.Lines = ev.Delta
		}
		return append(out, MouseWheelScrollEvent{Distance: d})

	case RawKey:
		if ev.Pressed {
			return append(out, KeyDownEvent{Key: ev.Key, Scancode: ev.Scancode})
		}
		return append(out, KeyUpEvent{Key: ev.Key, Scancode: ev.Scancode})

	case RawChar:
		return append(out, KeyboardCharEvent{Char: ev.Char})

	case RawModifiers:
		return append(out, KeyboardModifiersChangedEvent{State: ev.State})

	case RawRedrawRequested:
		s.redrawPending = true
		return out

	case RawCloseRequested:
		return append(out, CloseRequestedEvent{})
	}
	return out
}

func (a eventAdapter) logical(p Vec2) Vec2 {
	return p.Div(float32(a.state.scale))
}
