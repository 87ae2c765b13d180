package speedy

import (
	"fmt"
	"sync/atomic"
)

// WindowActionError is returned when the platform rejects a window action.
// The window state is left unchanged.
type WindowActionError struct {
	Action string
	Cause  error
}

func (e *WindowActionError) Error() string {
	if e.Cause == nil {
		return "speedy: window action " + e.Action + " failed"
	}
	return "speedy: window action " + e.Action + " failed: " + e.Cause.Error()
}

func (e *WindowActionError) Unwrap() error {
	return e.Cause
}

// WindowHelper controls the window from inside Handler callbacks. It is
// the only way to change window state, and must only be used on the loop
// goroutine.
type WindowHelper[U any] struct {
	platform  Platform
	state     *windowState
	lifecycle *atomic.Int32 // Window.state, nil outside Run
	queue     *userEventQueue[U]
	renderer  *Renderer
}

// RequestRedraw schedules a call to Handler.OnDraw. Calling it more than
// once before the draw has no further effect.
func (h *WindowHelper[U]) RequestRedraw() {
	h.state.redrawPending = true
}

// SizePixels returns the window size in physical pixels.
func (h *WindowHelper[U]) SizePixels() UVec2 {
	return h.state.sizePixels
}

// Size returns the window size in logical pixels.
func (h *WindowHelper[U]) Size() UVec2 {
	return h.state.logicalSize()
}

// ScaleFactor returns the DPI scale factor.
func (h *WindowHelper[U]) ScaleFactor() float64 {
	return h.state.scale
}

// IsFullscreen reports whether the window is fullscreen.
func (h *WindowHelper[U]) IsFullscreen() bool {
	return h.state.fullscreen
}

// IsCursorGrabbed reports whether the cursor is grabbed.
func (h *WindowHelper[U]) IsCursorGrabbed() bool {
	return h.state.cursorGrabbed
}

// SetSizePixels asks the platform to resize the window. A ResizeEvent
// follows once the platform applies it.
func (h *WindowHelper[U]) SetSizePixels(size UVec2) error {
	if size.X == 0 || size.Y == 0 {
		return &WindowActionError{Action: "set size", Cause: fmt.Errorf("invalid size %dx%d", size.X, size.Y)}
	}
	return h.action("set size", h.platform.SetSizePixels(size))
}

// SetPositionPixels moves the window.
func (h *WindowHelper[U]) SetPositionPixels(pos IVec2) error {
	return h.action("set position", h.platform.SetPositionPixels(pos))
}

// SetFullscreenMode switches between windowed and fullscreen. On success
// a FullscreenStatusChangedEvent is delivered on the next tick.
func (h *WindowHelper[U]) SetFullscreenMode(mode WindowFullscreenMode) error {
	if err := h.action("set fullscreen mode", h.platform.SetFullscreenMode(mode)); err != nil {
		return err
	}
	fullscreen := mode == WindowFullscreenModeFullscreenBorderless
	if fullscreen != h.state.fullscreen {
		h.state.fullscreen = fullscreen
		h.state.deferred = append(h.state.deferred, FullscreenStatusChangedEvent{Fullscreen: fullscreen})
	}
	return nil
}

// SetCursorVisible shows or hides the cursor over the window.
func (h *WindowHelper[U]) SetCursorVisible(visible bool) error {
	return h.action("set cursor visible", h.platform.SetCursorVisible(visible))
}

// SetCursorGrab confines the cursor to the window. On success a
// MouseGrabStatusChangedEvent is delivered on the next tick.
func (h *WindowHelper[U]) SetCursorGrab(grabbed bool) error {
	if err := h.action("set cursor grab", h.platform.SetCursorGrab(grabbed)); err != nil {
		return err
	}
	if grabbed != h.state.cursorGrabbed {
		h.state.cursorGrabbed = grabbed
		h.state.deferred = append(h.state.deferred, MouseGrabStatusChangedEvent{Grabbed: grabbed})
	}
	return nil
}

// SetResizable sets whether the user can resize the window.
func (h *WindowHelper[U]) SetResizable(resizable bool) error {
	return h.action("set resizable", h.platform.SetResizable(resizable))
}

// SetTitle changes the window title.
func (h *WindowHelper[U]) SetTitle(title string) error {
	return h.action("set title", h.platform.SetTitle(title))
}

// SetIconFromRGBAPixels sets the window icon. data must hold exactly
// size.X*size.Y RGBA pixels.
func (h *WindowHelper[U]) SetIconFromRGBAPixels(data []byte, size UVec2) error {
	if size.X == 0 || size.Y == 0 {
		return &WindowActionError{Action: "set icon", Cause: fmt.Errorf("invalid icon size %dx%d", size.X, size.Y)}
	}
	if want := int(size.X) * int(size.Y) * 4; len(data) != want {
		return &WindowActionError{Action: "set icon", Cause: fmt.Errorf("%d bytes for %dx%d icon, want %d", len(data), size.X, size.Y, want)}
	}
	return h.action("set icon", h.platform.SetIcon(size, data))
}

// TerminateLoop stops the event loop once the current tick completes.
// Window.State reports WindowTerminationRequested from this call on.
func (h *WindowHelper[U]) TerminateLoop() {
	h.state.terminate = true
	if h.lifecycle != nil {
		h.lifecycle.CompareAndSwap(int32(WindowRunning), int32(WindowTerminationRequested))
	}
}

// CreateUserEventSender returns a sender for posting events to this loop
// from other goroutines.
func (h *WindowHelper[U]) CreateUserEventSender() UserEventSender[U] {
	return UserEventSender[U]{q: h.queue}
}

// Renderer returns the renderer drawing the window, for creating images
// outside OnDraw.
func (h *WindowHelper[U]) Renderer() *Renderer {
	return h.renderer
}

func (h *WindowHelper[U]) action(name string, err error) error {
	if err == nil {
		return nil
	}
	Logger().Warn("speedy: window action rejected", "action", name, "err", err)
	return &WindowActionError{Action: name, Cause: err}
}
