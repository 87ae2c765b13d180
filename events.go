package speedy

// Event is a canonical window event. The set of variants is closed; use a
// type switch to inspect one.
type Event interface {
	isEvent()
}

// StartupInfo describes the window when the event loop starts.
type StartupInfo struct {
	ViewportSizePixels UVec2
	ScaleFactor        float64
}

// StartEvent is delivered once, before any other event.
type StartEvent struct {
	Info StartupInfo
}

// ResizeEvent reports a new window size. Size is in logical pixels,
// SizePixels divided by the scale factor and rounded.
type ResizeEvent struct {
	Size       UVec2
	SizePixels UVec2
}

// ScaleFactorChangedEvent reports a new DPI scale factor.
type ScaleFactorChangedEvent struct {
	ScaleFactor float64
}

// DrawEvent asks the handler to draw a frame.
type DrawEvent struct{}

// UserEvent carries a payload sent through a UserEventSender.
type UserEvent[U any] struct {
	Payload U
}

// MouseMoveEvent reports the cursor position in logical pixels.
type MouseMoveEvent struct {
	Position Vec2
}

// MouseButtonDownEvent reports a mouse button press.
type MouseButtonDownEvent struct {
	Button MouseButton
}

// MouseButtonUpEvent reports a mouse button release.
type MouseButtonUpEvent struct {
	Button MouseButton
}

// MouseWheelScrollEvent reports a scroll.
type MouseWheelScrollEvent struct {
	Distance MouseScrollDistance
}

// KeyDownEvent reports a key press. Scancode is the platform scancode,
// useful for keys reported as KeyUnknown.
type KeyDownEvent struct {
	Key      KeyCode
	Scancode uint32
}

// KeyUpEvent reports a key release.
type KeyUpEvent struct {
	Key      KeyCode
	Scancode uint32
}

// KeyboardCharEvent reports a typed character.
type KeyboardCharEvent struct {
	Char rune
}

// KeyboardModifiersChangedEvent reports the new modifier state.
type KeyboardModifiersChangedEvent struct {
	State ModifiersState
}

// MouseGrabStatusChangedEvent reports whether the cursor is grabbed.
type MouseGrabStatusChangedEvent struct {
	Grabbed bool
}

// FullscreenStatusChangedEvent reports whether the window is fullscreen.
type FullscreenStatusChangedEvent struct {
	Fullscreen bool
}

// CloseRequestedEvent reports that the user asked to close the window.
// The loop terminates after the current tick.
type CloseRequestedEvent struct{}

func (StartEvent) isEvent()                    {}
func (ResizeEvent) isEvent()                   {}
func (ScaleFactorChangedEvent) isEvent()       {}
func (DrawEvent) isEvent()                     {}
func (UserEvent[U]) isEvent()                  {}
func (MouseMoveEvent) isEvent()                {}
func (MouseButtonDownEvent) isEvent()          {}
func (MouseButtonUpEvent) isEvent()            {}
func (MouseWheelScrollEvent) isEvent()         {}
func (KeyDownEvent) isEvent()                  {}
func (KeyUpEvent) isEvent()                    {}
func (KeyboardCharEvent) isEvent()             {}
func (KeyboardModifiersChangedEvent) isEvent() {}
func (MouseGrabStatusChangedEvent) isEvent()   {}
func (FullscreenStatusChangedEvent) isEvent()  {}
func (CloseRequestedEvent) isEvent()           {}
