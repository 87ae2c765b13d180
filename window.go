package speedy

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrWindowAlreadyRun is returned when Run is called more than once.
var ErrWindowAlreadyRun = errors.New("speedy: window event loop already run")

// WindowState is the lifecycle state of a Window's event loop.
type WindowState int32

const (
	// WindowCreated is the state before Run.
	WindowCreated WindowState = iota
	// WindowRunning is the state while the loop processes ticks.
	WindowRunning
	// WindowTerminationRequested is the state after TerminateLoop, until
	// the current tick completes.
	WindowTerminationRequested
	// WindowStopped is the final state. The loop cannot be resumed.
	WindowStopped
)

// String returns the state name.
func (s WindowState) String() string {
	switch s {
	case WindowCreated:
		return "Created"
	case WindowRunning:
		return "Running"
	case WindowTerminationRequested:
		return "TerminationRequested"
	case WindowStopped:
		return "Stopped"
	default:
		return fmt.Sprintf("WindowState(%d)", int32(s))
	}
}

// Window is a native window with an event loop. U is the type of the user
// events sent with a UserEventSender; use NoUserEvent if there are none.
type Window[U any] struct {
	platform Platform
	opts     windowOptions
	queue    *userEventQueue[U]
	state    atomic.Int32
}

// NewWindowCentered creates a window of the given size in physical pixels,
// centered on the primary monitor.
func NewWindowCentered[U any](title string, size UVec2) (*Window[U], error) {
	return NewWindowWithOptions[U](title, WithSize(size), WithCentered())
}

// NewWindowFullscreenBorderless creates a window covering the primary
// monitor.
func NewWindowFullscreenBorderless[U any](title string) (*Window[U], error) {
	return NewWindowWithOptions[U](title, WithFullscreenBorderless())
}

// NewWindowWithOptions creates a window on the platform selected by the
// options, or on the highest priority registered platform.
func NewWindowWithOptions[U any](title string, opts ...WindowOption) (*Window[U], error) {
	o := defaultWindowOptions(title)
	for _, opt := range opts {
		opt(&o)
	}

	p := o.instance
	if p == nil {
		var err error
		p, err = newPlatform(o.platformName, o.platform)
		if err != nil {
			return nil, fmt.Errorf("speedy: create window: %w", err)
		}
	}
	Logger().Info("speedy: window created", "platform", p.Name(), "title", title)

	return &Window[U]{
		platform: p,
		opts:     o,
		queue:    newUserEventQueue[U](),
	}, nil
}

// State returns the current lifecycle state. Safe for concurrent use.
func (w *Window[U]) State() WindowState {
	return WindowState(w.state.Load())
}

// CreateUserEventSender returns a sender for posting events to the loop
// from other goroutines. Events sent before Run are delivered on the first
// tick.
func (w *Window[U]) CreateUserEventSender() UserEventSender[U] {
	return UserEventSender[U]{q: w.queue}
}

// Run starts the event loop and blocks until it terminates, either through
// WindowHelper.TerminateLoop or because the user closed the window.
//
// Each tick dispatches platform input, then user events, then draws if a
// redraw is pending, then checks for termination. The first frame is drawn
// on the first tick.
//
// On platforms that require it, Run must be called from the main
// goroutine.
func (w *Window[U]) Run(h Handler[U]) error {
	if !w.state.CompareAndSwap(int32(WindowCreated), int32(WindowRunning)) {
		return ErrWindowAlreadyRun
	}
	defer w.state.Store(int32(WindowStopped))
	defer w.queue.close()
	defer w.platform.Close()

	info, backend, err := w.platform.Start()
	if err != nil {
		return fmt.Errorf("speedy: start %s platform: %w", w.platform.Name(), err)
	}
	if info.ScaleFactor <= 0 {
		info.ScaleFactor = 1
	}

	renderer, err := NewRenderer(backend, info.ViewportSizePixels, info.ScaleFactor, w.opts.renderer...)
	if err != nil {
		if backend != nil {
			_ = backend.Close()
		}
		return err
	}
	defer renderer.Close()

	ws := &windowState{sizePixels: info.ViewportSizePixels, scale: info.ScaleFactor}
	l := &loop[U]{
		handler:  h,
		platform: w.platform,
		renderer: renderer,
		state:    ws,
		adapter:  eventAdapter{state: ws},
		queue:    w.queue,
		helper: &WindowHelper[U]{
			platform:  w.platform,
			state:     ws,
			lifecycle: &w.state,
			queue:     w.queue,
			renderer:  renderer,
		},
	}
	w.queue.setWake(w.platform.Wake)

	Logger().Info("speedy: event loop started", "platform", w.platform.Name(), "backend", backend.Name(),
		"width", info.ViewportSizePixels.X, "height", info.ViewportSizePixels.Y, "scale", info.ScaleFactor)

	l.handle(StartEvent{Info: info})
	ws.redrawPending = true

	for !ws.terminate {
		l.tick()
	}
	w.queue.close()
	Logger().Info("speedy: event loop stopped", "ticks", l.ticks)
	return nil
}

// loop holds the per-run state of the event loop.
type loop[U any] struct {
	handler  Handler[U]
	platform Platform
	renderer *Renderer
	state    *windowState
	adapter  eventAdapter
	queue    *userEventQueue[U]
	helper   *WindowHelper[U]

	raw    []RawEvent
	events []Event
	ticks  uint64
}

// tick runs one iteration: deferred status events, platform input, user
// events, then the draw if one is pending.
func (l *loop[U]) tick() {
	l.ticks++
	s := l.state

	l.events = append(l.events[:0], s.deferred...)
	s.deferred = s.deferred[:0]

	wait := !s.redrawPending && len(l.events) == 0 && l.queue.len() == 0
	l.raw = l.platform.PollEvents(l.raw[:0], wait)
	for _, raw := range l.raw {
		l.events = l.adapter.translate(raw, l.events)
	}

	for _, ev := range l.events {
		l.handle(ev)
	}

	l.queue.drain(func(ev U) {
		l.handle(UserEvent[U]{Payload: ev})
	})

	if s.redrawPending {
		l.handle(DrawEvent{})
	}
}

// handle applies the loop's side of ev, then passes it to the handler.
// DrawEvent is consumed here since the loop owns the frame.
func (l *loop[U]) handle(ev Event) {
	switch e := ev.(type) {
	case ResizeEvent:
		if err := l.renderer.SetViewportSizePixels(e.SizePixels); err != nil {
			Logger().Warn("speedy: resize failed", "err", err)
		}
	case ScaleFactorChangedEvent:
		if err := l.renderer.SetScaleFactor(e.ScaleFactor); err != nil {
			Logger().Warn("speedy: scale factor change failed", "err", err)
		}
	case DrawEvent:
		l.state.redrawPending = false
		err := l.renderer.DrawFrame(func(g *Graphics) {
			l.handler.OnDraw(l.helper, g)
		})
		if err != nil {
			Logger().Warn("speedy: frame failed", "err", err)
		}
		return
	}
	dispatch(l.handler, l.helper, ev)
}
