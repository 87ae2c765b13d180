package speedy

// NoUserEvent is the user event type for windows that never receive user
// events.
type NoUserEvent = struct{}

// Handler receives the events of a Window. All methods are called on the
// loop goroutine with the window's helper.
//
// Embed BaseHandler to get no-op implementations and override only the
// events of interest:
//
//	type app struct {
//		speedy.BaseHandler[speedy.NoUserEvent]
//	}
//
//	func (app) OnDraw(h *speedy.WindowHelper[speedy.NoUserEvent], g *speedy.Graphics) {
//		g.ClearScreen(speedy.ColorWhite)
//	}
type Handler[U any] interface {
	// OnStart is called once, before any other method.
	OnStart(h *WindowHelper[U], info StartupInfo)
	// OnUserEvent is called for each event sent through a UserEventSender.
	OnUserEvent(h *WindowHelper[U], ev U)
	// OnResize is called with the new size in logical pixels. A redraw is
	// requested automatically.
	OnResize(h *WindowHelper[U], size UVec2)
	OnScaleFactorChanged(h *WindowHelper[U], scale float64)
	// OnDraw is called when a redraw is pending. g is valid only for the
	// duration of the call.
	OnDraw(h *WindowHelper[U], g *Graphics)
	// OnMouseMove is called with the cursor position in logical pixels.
	OnMouseMove(h *WindowHelper[U], position Vec2)
	OnMouseButtonDown(h *WindowHelper[U], button MouseButton)
	OnMouseButtonUp(h *WindowHelper[U], button MouseButton)
	OnMouseWheelScroll(h *WindowHelper[U], distance MouseScrollDistance)
	OnKeyDown(h *WindowHelper[U], key KeyCode, scancode uint32)
	OnKeyUp(h *WindowHelper[U], key KeyCode, scancode uint32)
	OnKeyboardChar(h *WindowHelper[U], char rune)
	OnKeyboardModifiersChanged(h *WindowHelper[U], state ModifiersState)
	OnMouseGrabStatusChanged(h *WindowHelper[U], grabbed bool)
	OnFullscreenStatusChanged(h *WindowHelper[U], fullscreen bool)
}

// BaseHandler implements every Handler method as a no-op.
type BaseHandler[U any] struct{}

func (BaseHandler[U]) OnStart(*WindowHelper[U], StartupInfo) {}
func (BaseHandler[U]) OnUserEvent(*WindowHelper[U], U) {}
func (BaseHandler[U]) OnResize(*WindowHelper[U], UVec2) {}
func (BaseHandler[U]) OnScaleFactorChanged(*WindowHelper[U], float64) {}
func (BaseHandler[U]) OnDraw(*WindowHelper[U], *Graphics) {}
func (BaseHandler[U]) OnMouseMove(*WindowHelper[U], Vec2) {}
func (BaseHandler[U]) OnMouseButtonDown(*WindowHelper[U], MouseButton) {}
func (BaseHandler[U]) OnMouseButtonUp(*WindowHelper[U], MouseButton) {}
func (BaseHandler[U]) OnMouseWheelScroll(*WindowHelper[U], MouseScrollDistance) {}
func (BaseHandler[U]) OnKeyDown(*WindowHelper[U], KeyCode, uint32) {}
func (BaseHandler[U]) OnKeyUp(*WindowHelper[U], KeyCode, uint32) {}
func (BaseHandler[U]) OnKeyboardChar(*WindowHelper[U], rune) {}
func (BaseHandler[U]) OnKeyboardModifiersChanged(*WindowHelper[U], ModifiersState) {}
func (BaseHandler[U]) OnMouseGrabStatusChanged(*WindowHelper[U], bool) {}
func (BaseHandler[U]) OnFullscreenStatusChanged(*WindowHelper[U], bool) {}

// dispatch delivers one canonical event to h. DrawEvent needs a frame and
// is handled by the loop instead.
func dispatch[U any](h Handler[U], helper *WindowHelper[U], ev Event) {
	switch e := ev.(type) {
	case StartEvent:
		h.OnStart(helper, e.Info)
	case UserEvent[U]:
		h.OnUserEvent(helper, e.Payload)
	case ResizeEvent:
		h.OnResize(helper, e.Size)
	case ScaleFactorChangedEvent:
		h.OnScaleFactorChanged(helper, e.ScaleFactor)
	case MouseMoveEvent:
		h.OnMouseMove(helper, e.Position)
	case MouseButtonDownEvent:
		h.OnMouseButtonDown(helper, e.Button)
	case MouseButtonUpEvent:
		h.OnMouseButtonUp(helper, e.Button)
	case MouseWheelScrollEvent:
		h.OnMouseWheelScroll(helper, e.Distance)
	case KeyDownEvent:
		h.OnKeyDown(helper, e.Key, e.Scancode)
	case KeyUpEvent:
		h.OnKeyUp(helper, e.Key, e.Scancode)
	case KeyboardCharEvent:
		h.OnKeyboardChar(helper, e.Char)
	case KeyboardModifiersChangedEvent:
		h.OnKeyboardModifiersChanged(helper, e.State)
	case MouseGrabStatusChangedEvent:
		h.OnMouseGrabStatusChanged(helper, e.Grabbed)
	case FullscreenStatusChangedEvent:
		h.OnFullscreenStatusChanged(helper, e.Fullscreen)
	case CloseRequestedEvent:
		helper.TerminateLoop()
	}
}
