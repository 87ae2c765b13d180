package speedy

import (
	"errors"
	"slices"
	"sync"
	"testing"
)

// fakePlatform replays one slice of raw events per PollEvents call. When
// the script runs out it reports a close request.
type fakePlatform struct {
	info    StartupInfo
	backend *recordingBackend
	script  [][]RawEvent
	polls   int
	waits   []bool

	rejectWith error
	icons      int
	closed     bool
	wakes      int
	mu         sync.Mutex
}

func newFakePlatform(script ...[]RawEvent) *fakePlatform {
	return &fakePlatform{
		info:    StartupInfo{ViewportSizePixels: UVec2{X: 640, Y: 480}, ScaleFactor: 1},
		backend: newRecordingBackend(),
		script:  script,
	}
}

func (p *fakePlatform) Name() string { return "fake" }

func (p *fakePlatform) Start() (StartupInfo, Backend, error) {
	return p.info, p.backend, nil
}

func (p *fakePlatform) PollEvents(buf []RawEvent, wait bool) []RawEvent {
	p.waits = append(p.waits, wait)
	if p.polls >= len(p.script) {
		p.polls++
		return append(buf, RawCloseRequested{})
	}
	buf = append(buf, p.script[p.polls]...)
	p.polls++
	return buf
}

func (p *fakePlatform) Wake() {
	p.mu.Lock()
	p.wakes++
	p.mu.Unlock()
}

func (p *fakePlatform) SetTitle(string) error { return p.rejectWith }
func (p *fakePlatform) SetSizePixels(UVec2) error { return p.rejectWith }
func (p *fakePlatform) SetPositionPixels(IVec2) error { return p.rejectWith }
func (p *fakePlatform) SetFullscreenMode(WindowFullscreenMode) error { return p.rejectWith }
func (p *fakePlatform) SetCursorVisible(bool) error { return p.rejectWith }
func (p *fakePlatform) SetCursorGrab(bool) error { return p.rejectWith }
func (p *fakePlatform) SetResizable(bool) error { return p.rejectWith }

func (p *fakePlatform) SetIcon(UVec2, []byte) error {
	p.icons++
	return p.rejectWith
}

func (p *fakePlatform) Close() error {
	p.closed = true
	return nil
}

// recordingHandler records every callback as a string.
type recordingHandler[U any] struct {
	BaseHandler[U]
	log []string

	onDraw  func(h *WindowHelper[U], g *Graphics)
	onKey   func(h *WindowHelper[U], key KeyCode)
	onUser  func(h *WindowHelper[U], ev U)
	onStart func(h *WindowHelper[U])
}

func (r *recordingHandler[U]) OnStart(h *WindowHelper[U], info StartupInfo) {
	r.log = append(r.log, "start")
	if r.onStart != nil {
		r.onStart(h)
	}
}

func (r *recordingHandler[U]) OnDraw(h *WindowHelper[U], g *Graphics) {
	r.log = append(r.log, "draw")
	if r.onDraw != nil {
		r.onDraw(h, g)
	}
}

func (r *recordingHandler[U]) OnResize(h *WindowHelper[U], size UVec2) {
	r.log = append(r.log, "resize")
}

func (r *recordingHandler[U]) OnKeyDown(h *WindowHelper[U], key KeyCode, _ uint32) {
	r.log = append(r.log, "key:"+key.String())
	if r.onKey != nil {
		r.onKey(h, key)
	}
}

func (r *recordingHandler[U]) OnUserEvent(h *WindowHelper[U], ev U) {
	r.log = append(r.log, "user")
	if r.onUser != nil {
		r.onUser(h, ev)
	}
}

func (r *recordingHandler[U]) OnMouseGrabStatusChanged(h *WindowHelper[U], grabbed bool) {
	r.log = append(r.log, "grab")
}

func newTestWindow[U any](t *testing.T, p *fakePlatform) *Window[U] {
	t.Helper()
	w, err := NewWindowWithOptions[U]("test", WithPlatformInstance(p))
	if err != nil {
		t.Fatalf("NewWindowWithOptions() error = %v", err)
	}
	return w
}

func TestAdapterResize(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		size  UVec2
		want  UVec2
	}{
		{"unscaled", 1, UVec2{X: 800, Y: 600}, UVec2{X: 800, Y: 600}},
		{"hidpi", 2, UVec2{X: 800, Y: 600}, UVec2{X: 400, Y: 300}},
		{"fractional rounds", 1.5, UVec2{X: 1001, Y: 500}, UVec2{X: 667, Y: 333}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &windowState{scale: tt.scale}
			events := eventAdapter{state: s}.translate(RawResized{SizePixels: tt.size}, nil)
			if len(events) != 1 {
				t.Fatalf("events = %v, want 1", events)
			}
			ev, ok := events[0].(ResizeEvent)
			if !ok {
				t.Fatalf("event = %T, want ResizeEvent", events[0])
			}
			if ev.Size != tt.want || ev.SizePixels != tt.size {
				t.Errorf("ResizeEvent = %+v, want logical %v physical %v", ev, tt.want, tt.size)
			}
			if !s.redrawPending {
				t.Error("redrawPending = false after resize, want true")
			}
			if s.sizePixels != tt.size {
				t.Errorf("sizePixels = %v, want %v", s.sizePixels, tt.size)
			}
		})
	}
}

func TestAdapterTranslate(t *testing.T) {
	s := &windowState{scale: 2}
	a := eventAdapter{state: s}

	tests := []struct {
		name string
		raw  RawEvent
		want []Event
	}{
		{"mouse move", RawMouseMoved{PositionPixels: Vec2{X: 10, Y: 20}}, []Event{MouseMoveEvent{Position: Vec2{X: 5, Y: 10}}}},
		{"button down", RawMouseButton{Button: MouseButtonLeft, Pressed: true}, []Event{MouseButtonDownEvent{Button: MouseButtonLeft}}},
		{"button up", RawMouseButton{Button: MouseButtonOther(4)}, []Event{MouseButtonUpEvent{Button: MouseButtonOther(4)}}},
		{"key down", RawKey{Key: KeyA, Scancode: 30, Pressed: true}, []Event{KeyDownEvent{Key: KeyA, Scancode: 30}}},
		{"key up", RawKey{Key: KeyUnknown, Scancode: 99}, []Event{KeyUpEvent{Key: KeyUnknown, Scancode: 99}}},
		{"char", RawChar{Char: 'é'}, []Event{KeyboardCharEvent{Char: 'é'}}},
		{"modifiers", RawModifiers{State: ModifiersState{Ctrl: true}}, []Event{KeyboardModifiersChangedEvent{State: ModifiersState{Ctrl: true}}}},
		{"wheel lines", RawMouseWheel{Delta: Vec3{Y: -1}}, []Event{MouseWheelScrollEvent{Distance: MouseScrollDistance{Lines: Vec3{Y: -1}}}}},
		{"wheel pixels", RawMouseWheel{Delta: Vec3{X: 4}, Precise: true}, []Event{MouseWheelScrollEvent{Distance: MouseScrollDistance{Pixels: Vec3{X: 2}, Precise: true}}}},
		{"close", RawCloseRequested{}, []Event{CloseRequestedEvent{}}},
		{"redraw", RawRedrawRequested{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.translate(tt.raw, nil)
			if !slices.Equal(got, tt.want) {
				t.Errorf("translate(%+v) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
	if !s.redrawPending {
		t.Error("redrawPending = false after RawRedrawRequested, want true")
	}
}

func TestAdapterScaleFactorChanged(t *testing.T) {
	s := &windowState{scale: 1, sizePixels: UVec2{X: 100, Y: 100}}
	a := eventAdapter{state: s}
	if got := a.translate(RawScaleFactorChanged{ScaleFactor: 1}, nil); len(got) != 0 {
		t.Errorf("unchanged scale produced %v", got)
	}
	got := a.translate(RawScaleFactorChanged{ScaleFactor: 2}, nil)
	if len(got) != 1 || got[0] != (ScaleFactorChangedEvent{ScaleFactor: 2}) {
		t.Errorf("events = %v, want ScaleFactorChangedEvent{2}", got)
	}
	if s.logicalSize() != (UVec2{X: 50, Y: 50}) {
		t.Errorf("logicalSize() = %v, want 50x50", s.logicalSize())
	}
}

func TestRunDispatchOrder(t *testing.T) {
	p := newFakePlatform(
		[]RawEvent{RawKey{Key: KeyA, Pressed: true}},
		[]RawEvent{RawResized{SizePixels: UVec2{X: 320, Y: 240}}},
		nil,
	)
	w := newTestWindow[NoUserEvent](t, p)
	h := &recordingHandler[NoUserEvent]{}
	if err := w.Run(h); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []string{"start", "key:A", "draw", "resize", "draw"}
	if !slices.Equal(h.log, want) {
		t.Errorf("log = %v, want %v", h.log, want)
	}
	if w.State() != WindowStopped {
		t.Errorf("State() = %v, want Stopped", w.State())
	}
	if !p.closed || !p.backend.closed {
		t.Error("platform and backend must be closed after Run")
	}
	if p.backend.viewport != (UVec2{X: 320, Y: 240}) {
		t.Errorf("backend viewport = %v, want 320x240", p.backend.viewport)
	}
	// Only the first tick has a redraw pending before polling.
	if wantWaits := []bool{false, true, true, true}; !slices.Equal(p.waits, wantWaits) {
		t.Errorf("waits = %v, want %v", p.waits, wantWaits)
	}
}

func TestRunTerminatesAtTickBoundary(t *testing.T) {
	p := newFakePlatform(
		[]RawEvent{RawKey{Key: KeyA, Pressed: true}},
		[]RawEvent{RawKey{Key: KeyQ, Pressed: true}, RawKey{Key: KeyB, Pressed: true}},
		[]RawEvent{RawKey{Key: KeyC, Pressed: true}},
	)
	w := newTestWindow[int](t, p)
	sender := w.CreateUserEventSender()

	h := &recordingHandler[int]{}
	h.onKey = func(helper *WindowHelper[int], key KeyCode) {
		if key == KeyQ {
			helper.TerminateLoop()
			helper.RequestRedraw()
			if err := sender.SendEvent(1); err != nil {
				t.Errorf("SendEvent() during tick error = %v", err)
			}
		}
	}
	if err := w.Run(h); err != nil {
		t.Fatal(err)
	}

	// Tick 2 runs to completion: remaining input, user events and the draw.
	want := []string{"start", "key:A", "draw", "key:Q", "key:B", "user", "draw"}
	if !slices.Equal(h.log, want) {
		t.Errorf("log = %v, want %v", h.log, want)
	}
	if p.polls != 2 {
		t.Errorf("polls = %d, want 2", p.polls)
	}

	err := sender.SendEvent(2)
	var sendErr *EventLoopSendError[int]
	if !errors.As(err, &sendErr) || sendErr.Event != 2 || !errors.Is(err, ErrEventLoopStopped) {
		t.Errorf("SendEvent() after stop error = %v, want *EventLoopSendError carrying 2", err)
	}
}

func TestTerminateLoopUpdatesState(t *testing.T) {
	p := newFakePlatform([]RawEvent{RawKey{Key: KeyQ, Pressed: true}})
	w := newTestWindow[NoUserEvent](t, p)

	var states []WindowState
	h := &recordingHandler[NoUserEvent]{}
	h.onStart = func(*WindowHelper[NoUserEvent]) {
		states = append(states, w.State())
	}
	h.onKey = func(helper *WindowHelper[NoUserEvent], _ KeyCode) {
		states = append(states, w.State())
		helper.TerminateLoop()
		states = append(states, w.State())
		helper.TerminateLoop()
		states = append(states, w.State())
	}
	h.onDraw = func(*WindowHelper[NoUserEvent], *Graphics) {
		states = append(states, w.State())
	}
	if err := w.Run(h); err != nil {
		t.Fatal(err)
	}

	want := []WindowState{
		WindowRunning,
		WindowRunning,
		WindowTerminationRequested,
		WindowTerminationRequested,
		WindowTerminationRequested,
	}
	if !slices.Equal(states, want) {
		t.Errorf("states = %v, want %v", states, want)
	}
	if w.State() != WindowStopped {
		t.Errorf("State() after Run = %v, want Stopped", w.State())
	}
}

func TestLoopHandlesEveryEventKind(t *testing.T) {
	r, err := NewRenderer(newRecordingBackend(), UVec2{X: 8, Y: 8}, 1)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	defer r.Close()

	ws := &windowState{sizePixels: UVec2{X: 8, Y: 8}, scale: 1, redrawPending: true}
	h := &recordingHandler[string]{}
	var payloads []string
	h.onUser = func(_ *WindowHelper[string], ev string) { payloads = append(payloads, ev) }
	l := &loop[string]{
		handler:  h,
		renderer: r,
		state:    ws,
		helper:   &WindowHelper[string]{state: ws, renderer: r},
	}

	for _, ev := range []Event{
		StartEvent{Info: StartupInfo{ViewportSizePixels: UVec2{X: 8, Y: 8}, ScaleFactor: 1}},
		UserEvent[string]{Payload: "ping"},
		ResizeEvent{Size: UVec2{X: 4, Y: 4}, SizePixels: UVec2{X: 4, Y: 4}},
		DrawEvent{},
	} {
		l.handle(ev)
	}

	if want := []string{"start", "user", "resize", "draw"}; !slices.Equal(h.log, want) {
		t.Errorf("log = %v, want %v", h.log, want)
	}
	if !slices.Equal(payloads, []string{"ping"}) {
		t.Errorf("payloads = %v, want [ping]", payloads)
	}
	if ws.redrawPending {
		t.Error("redrawPending still set after DrawEvent")
	}
	if r.viewport != (UVec2{X: 4, Y: 4}) {
		t.Errorf("renderer viewport = %v, want 4x4", r.viewport)
	}
}

func TestRunTwice(t *testing.T) {
	w := newTestWindow[NoUserEvent](t, newFakePlatform())
	if err := w.Run(&recordingHandler[NoUserEvent]{}); err != nil {
		t.Fatal(err)
	}
	if err := w.Run(&recordingHandler[NoUserEvent]{}); !errors.Is(err, ErrWindowAlreadyRun) {
		t.Errorf("second Run() error = %v, want %v", err, ErrWindowAlreadyRun)
	}
}

func TestRunDrawsThroughRenderer(t *testing.T) {
	p := newFakePlatform()
	p.info.ScaleFactor = 2
	w := newTestWindow[NoUserEvent](t, p)
	h := &recordingHandler[NoUserEvent]{}
	h.onDraw = func(helper *WindowHelper[NoUserEvent], g *Graphics) {
		g.ClearScreen(ColorWhite)
		g.DrawRectangle(NewRect(Vec2{}, Vec2{X: 10, Y: 10}), ColorRed)
		if got := g.ViewportSize(); got != (Vec2{X: 320, Y: 240}) {
			t.Errorf("ViewportSize() = %v, want logical 320x240", got)
		}
	}
	if err := w.Run(h); err != nil {
		t.Fatal(err)
	}
	got := p.backend.ops("begin", "clear", "draw", "present")
	if want := []string{"begin", "clear", "draw", "present"}; !slices.Equal(got, want) {
		t.Errorf("ops = %v, want %v", got, want)
	}
}

func TestUserEventsSentBeforeRun(t *testing.T) {
	p := newFakePlatform()
	w := newTestWindow[string](t, p)
	s := w.CreateUserEventSender()
	for _, ev := range []string{"a", "b", "c"} {
		if err := s.SendEvent(ev); err != nil {
			t.Fatal(err)
		}
	}

	var got []string
	h := &recordingHandler[string]{}
	h.onUser = func(_ *WindowHelper[string], ev string) { got = append(got, ev) }
	if err := w.Run(h); err != nil {
		t.Fatal(err)
	}
	if want := []string{"a", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("user events = %v, want %v", got, want)
	}
}

func TestUserEventQueueDrainSnapshot(t *testing.T) {
	q := newUserEventQueue[int]()
	_ = q.send(1)
	_ = q.send(2)

	var first []int
	n := q.drain(func(ev int) {
		first = append(first, ev)
		if ev == 1 {
			_ = q.send(3)
		}
	})
	if n != 2 || !slices.Equal(first, []int{1, 2}) {
		t.Errorf("first drain = %v (%d), want [1 2]", first, n)
	}

	var second []int
	q.drain(func(ev int) { second = append(second, ev) })
	if !slices.Equal(second, []int{3}) {
		t.Errorf("second drain = %v, want [3]", second)
	}
	if n := q.drain(func(int) {}); n != 0 {
		t.Errorf("empty drain = %d, want 0", n)
	}
}

func TestUserEventQueueTwoProducers(t *testing.T) {
	type msg struct {
		producer int
		seq      int
	}
	const perProducer = 5000

	q := newUserEventQueue[msg]()
	var wg sync.WaitGroup
	for p := range 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := UserEventSender[msg]{q: q}
			for i := range perProducer {
				if err := s.SendEvent(msg{producer: p, seq: i}); err != nil {
					t.Errorf("SendEvent() error = %v", err)
					return
				}
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	next := [2]int{}
	total := 0
	drainAll := func() {
		q.drain(func(m msg) {
			if m.seq != next[m.producer] {
				t.Errorf("producer %d: got seq %d, want %d", m.producer, m.seq, next[m.producer])
			}
			next[m.producer] = m.seq + 1
			total++
		})
	}

	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}
		drainAll()
	}
	drainAll()

	if total != 2*perProducer {
		t.Errorf("drained %d events, want %d", total, 2*perProducer)
	}
	if next != [2]int{perProducer, perProducer} {
		t.Errorf("last seq = %v, want both %d", next, perProducer)
	}
}

func TestUserEventSenderWakesPlatform(t *testing.T) {
	p := newFakePlatform()
	q := newUserEventQueue[int]()
	q.setWake(p.Wake)
	_ = UserEventSender[int]{q: q}.SendEvent(1)
	if p.wakes != 1 {
		t.Errorf("wakes = %d, want 1", p.wakes)
	}
}

func TestZeroSenderFails(t *testing.T) {
	var s UserEventSender[int]
	if err := s.SendEvent(1); !errors.Is(err, ErrEventLoopStopped) {
		t.Errorf("SendEvent() on zero sender error = %v, want %v", err, ErrEventLoopStopped)
	}
}

func TestHelperActions(t *testing.T) {
	rejected := errors.New("rejected by platform")

	tests := []struct {
		name   string
		reject error
		act    func(h *WindowHelper[NoUserEvent]) error
	}{
		{"title", rejected, func(h *WindowHelper[NoUserEvent]) error { return h.SetTitle("x") }},
		{"size", rejected, func(h *WindowHelper[NoUserEvent]) error { return h.SetSizePixels(UVec2{X: 1, Y: 1}) }},
		{"zero size", nil, func(h *WindowHelper[NoUserEvent]) error { return h.SetSizePixels(UVec2{}) }},
		{"position", rejected, func(h *WindowHelper[NoUserEvent]) error { return h.SetPositionPixels(IVec2{}) }},
		{"cursor", rejected, func(h *WindowHelper[NoUserEvent]) error { return h.SetCursorVisible(false) }},
		{"resizable", rejected, func(h *WindowHelper[NoUserEvent]) error { return h.SetResizable(false) }},
		{"icon size", nil, func(h *WindowHelper[NoUserEvent]) error { return h.SetIconFromRGBAPixels(make([]byte, 15), UVec2{X: 2, Y: 2}) }},
		{"icon empty", nil, func(h *WindowHelper[NoUserEvent]) error { return h.SetIconFromRGBAPixels(nil, UVec2{}) }},
		{"icon rejected", rejected, func(h *WindowHelper[NoUserEvent]) error { return h.SetIconFromRGBAPixels(make([]byte, 16), UVec2{X: 2, Y: 2}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newFakePlatform()
			p.rejectWith = tt.reject
			h := &WindowHelper[NoUserEvent]{platform: p, state: &windowState{scale: 1}}
			err := tt.act(h)
			var wae *WindowActionError
			if !errors.As(err, &wae) {
				t.Fatalf("error = %v, want *WindowActionError", err)
			}
			if tt.reject != nil && !errors.Is(err, tt.reject) {
				t.Errorf("error = %v, want wrapped %v", err, tt.reject)
			}
		})
	}
}

func TestHelperIconValidatedBeforePlatform(t *testing.T) {
	p := newFakePlatform()
	h := &WindowHelper[NoUserEvent]{platform: p, state: &windowState{scale: 1}}
	_ = h.SetIconFromRGBAPixels(make([]byte, 3), UVec2{X: 1, Y: 1})
	if p.icons != 0 {
		t.Errorf("platform SetIcon calls = %d, want 0", p.icons)
	}
	if err := h.SetIconFromRGBAPixels(make([]byte, 4), UVec2{X: 1, Y: 1}); err != nil {
		t.Errorf("valid icon error = %v", err)
	}
}

func TestHelperStatusChanges(t *testing.T) {
	p := newFakePlatform()
	s := &windowState{scale: 1}
	h := &WindowHelper[NoUserEvent]{platform: p, state: s}

	p.rejectWith = errors.New("no grab")
	if err := h.SetCursorGrab(true); err == nil {
		t.Fatal("SetCursorGrab() error = nil, want rejection")
	}
	if s.cursorGrabbed || len(s.deferred) != 0 {
		t.Error("rejected grab changed window state")
	}

	p.rejectWith = nil
	if err := h.SetCursorGrab(true); err != nil {
		t.Fatal(err)
	}
	if err := h.SetFullscreenMode(WindowFullscreenModeFullscreenBorderless); err != nil {
		t.Fatal(err)
	}
	want := []Event{MouseGrabStatusChangedEvent{Grabbed: true}, FullscreenStatusChangedEvent{Fullscreen: true}}
	if !slices.Equal(s.deferred, want) {
		t.Errorf("deferred = %v, want %v", s.deferred, want)
	}
	if !h.IsCursorGrabbed() || !h.IsFullscreen() {
		t.Error("status not recorded")
	}

	// Setting the same state again queues nothing.
	_ = h.SetCursorGrab(true)
	if len(s.deferred) != 2 {
		t.Errorf("len(deferred) = %d, want 2", len(s.deferred))
	}
}

func TestStatusEventDeliveredNextTick(t *testing.T) {
	p := newFakePlatform(
		[]RawEvent{RawKey{Key: KeyG, Pressed: true}},
		nil,
	)
	w := newTestWindow[NoUserEvent](t, p)
	h := &recordingHandler[NoUserEvent]{}
	h.onKey = func(helper *WindowHelper[NoUserEvent], key KeyCode) {
		if err := helper.SetCursorGrab(true); err != nil {
			t.Errorf("SetCursorGrab() error = %v", err)
		}
	}
	if err := w.Run(h); err != nil {
		t.Fatal(err)
	}
	want := []string{"start", "key:G", "draw", "grab"}
	if !slices.Equal(h.log, want) {
		t.Errorf("log = %v, want %v", h.log, want)
	}
}

func TestBaseHandlerIsHandler(t *testing.T) {
	var h Handler[int] = BaseHandler[int]{}
	helper := &WindowHelper[int]{state: &windowState{scale: 1}}
	for _, ev := range []Event{
		StartEvent{}, UserEvent[int]{Payload: 1}, ResizeEvent{}, ScaleFactorChangedEvent{},
		MouseMoveEvent{}, MouseButtonDownEvent{}, MouseButtonUpEvent{}, MouseWheelScrollEvent{},
		KeyDownEvent{}, KeyUpEvent{}, KeyboardCharEvent{}, KeyboardModifiersChangedEvent{},
		MouseGrabStatusChangedEvent{}, FullscreenStatusChangedEvent{},
	} {
		dispatch(h, helper, ev)
	}
	if helper.state.terminate {
		t.Error("terminate set by no-op handler")
	}
	dispatch(h, helper, CloseRequestedEvent{})
	if !helper.state.terminate {
		t.Error("CloseRequestedEvent did not terminate the loop")
	}
}

func TestPlatformRegistry(t *testing.T) {
	factory := func(p *fakePlatform) PlatformFactory {
		return func(PlatformConfig) (Platform, error) { return p, nil }
	}
	low, high := newFakePlatform(), newFakePlatform()
	RegisterPlatform("test-low", -100, factory(low))
	RegisterPlatform("test-high", 1000, factory(high))
	t.Cleanup(func() {
		UnregisterPlatform("test-low")
		UnregisterPlatform("test-high")
	})

	names := Platforms()
	if len(names) < 2 || names[0] != "test-high" || names[len(names)-1] != "test-low" {
		t.Errorf("Platforms() = %v, want test-high first and test-low last", names)
	}

	got, err := newPlatform("", PlatformConfig{})
	if err != nil || got != high {
		t.Errorf("default platform = %v, %v, want the highest priority one", got, err)
	}
	got, err = newPlatform("test-low", PlatformConfig{})
	if err != nil || got != low {
		t.Errorf("named platform = %v, %v, want test-low", got, err)
	}

	_, err = NewWindowWithOptions[NoUserEvent]("x", WithPlatform("missing"))
	var nf *PlatformNotFoundError
	if !errors.As(err, &nf) || nf.Name != "missing" {
		t.Errorf("error = %v, want *PlatformNotFoundError for missing", err)
	}
}

func TestWindowStateString(t *testing.T) {
	tests := []struct {
		s    WindowState
		want string
	}{
		{WindowCreated, "Created"},
		{WindowRunning, "Running"},
		{WindowTerminationRequested, "TerminationRequested"},
		{WindowStopped, "Stopped"},
		{WindowState(9), "WindowState(9)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
