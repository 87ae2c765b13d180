// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build js && wasm

package web

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"syscall/js"

	"github.com/gogpu/speedy"
	"github.com/gogpu/speedy/backend/software"
)

// Name is the registered platform name.
const Name = "web"

// DefaultCanvasID is the id of the canvas element used by default.
const DefaultCanvasID = "speedy"

// Errors returned by the web platform.
var (
	// ErrNoCanvas is returned by Start when the canvas element is missing.
	ErrNoCanvas = errors.New("web: canvas element not found")

	// ErrClosed is returned by window actions after Close.
	ErrClosed = errors.New("web: platform closed")
)

func init() {
	speedy.RegisterPlatform(Name, 10, func(cfg speedy.PlatformConfig) (speedy.Platform, error) {
		return New(cfg), nil
	})
}

// Option configures a Platform.
type Option func(*Platform)

// WithCanvasID selects the canvas element by id.
func WithCanvasID(id string) Option {
	return func(p *Platform) {
		p.canvasID = id
	}
}

type listener struct {
	target js.Value
	event  string
	fn     js.Func
}

// Platform draws into an HTML canvas.
type Platform struct {
	cfg      speedy.PlatformConfig
	canvasID string

	window, document, canvas, ctx js.Value
	backend                       *software.Backend
	listeners                     []listener

	wake chan struct{}

	mu        sync.Mutex
	pending   []speedy.RawEvent
	ratio     float64
	size      speedy.UVec2
	modifiers speedy.ModifiersState
	closed    bool
}

// New returns a platform for cfg. The canvas is looked up by Start.
func New(cfg speedy.PlatformConfig, opts ...Option) *Platform {
	p := &Platform{
		cfg:      cfg,
		canvasID: DefaultCanvasID,
		wake:     make(chan struct{}, 1),
		ratio:    1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns "web".
func (p *Platform) Name() string { return Name }

// Start attaches to the canvas and creates a software backend sized to it.
func (p *Platform) Start() (speedy.StartupInfo, speedy.Backend, error) {
	p.window = js.Global()
	p.document = p.window.Get("document")
	p.canvas = p.document.Call("getElementById", p.canvasID)
	if p.canvas.IsNull() || p.canvas.IsUndefined() {
		return speedy.StartupInfo{}, nil, fmt.Errorf("%w: #%s", ErrNoCanvas, p.canvasID)
	}
	p.ctx = p.canvas.Call("getContext", "2d")

	if p.cfg.Title != "" {
		p.document.Set("title", p.cfg.Title)
	}
	if s := p.cfg.Size; s.X > 0 && s.Y > 0 {
		p.setCSSSize(s, p.devicePixelRatio())
	}
	p.ratio = p.devicePixelRatio()
	p.size = p.measure(p.ratio)

	info := speedy.StartupInfo{ViewportSizePixels: p.size, ScaleFactor: p.ratio}
	p.backend = software.New(p.size, p.ratio)
	p.listen()
	speedy.Logger().Info("web: canvas attached", "id", p.canvasID, "size", p.size, "scale", p.ratio)
	return info, &canvasPresenter{Backend: p.backend, p: p}, nil
}

func (p *Platform) devicePixelRatio() float64 {
	r := p.window.Get("devicePixelRatio")
	if r.Type() != js.TypeNumber || r.Float() <= 0 {
		return 1
	}
	return r.Float()
}

// measure sizes the canvas backing store to its CSS size in device pixels.
func (p *Platform) measure(ratio float64) speedy.UVec2 {
	w := p.canvas.Get("clientWidth").Float()
	h := p.canvas.Get("clientHeight").Float()
	size := speedy.UVec2{X: uint32(math.Round(w * ratio)), Y: uint32(math.Round(h * ratio))}
	p.canvas.Set("width", size.X)
	p.canvas.Set("height", size.Y)
	return size
}

func (p *Platform) setCSSSize(size speedy.UVec2, ratio float64) {
	style := p.canvas.Get("style")
	style.Set("width", fmt.Sprintf("%gpx", float64(size.X)/ratio))
	style.Set("height", fmt.Sprintf("%gpx", float64(size.Y)/ratio))
}

func (p *Platform) on(target js.Value, event string, fn func(e js.Value)) {
	f := js.FuncOf(func(_ js.Value, args []js.Value) any {
		fn(args[0])
		return nil
	})
	target.Call("addEventListener", event, f)
	p.listeners = append(p.listeners, listener{target: target, event: event, fn: f})
}

func (p *Platform) listen() {
	c := p.canvas
	c.Set("tabIndex", 0)
	c.Call("focus")

	p.on(c, "mousemove", func(e js.Value) {
		p.push(speedy.RawMouseMoved{PositionPixels: p.eventPos(e)})
	})
	p.on(c, "mousedown", func(e js.Value) {
		p.push(speedy.RawMouseMoved{PositionPixels: p.eventPos(e)},
			speedy.RawMouseButton{Button: translateButton(e.Get("button").Int()), Pressed: true})
		e.Call("preventDefault")
	})
	p.on(p.window, "mouseup", func(e js.Value) {
		p.push(speedy.RawMouseButton{Button: translateButton(e.Get("button").Int())})
	})
	p.on(c, "contextmenu", func(e js.Value) {
		e.Call("preventDefault")
	})
	p.on(c, "wheel", func(e js.Value) {
		p.push(wheelEvent(e.Get("deltaMode").Int(), e.Get("deltaX").Float(), e.Get("deltaY").Float(), p.ratio))
		e.Call("preventDefault")
	})
	p.on(c, "keydown", func(e js.Value) {
		p.key(e, true)
		e.Call("preventDefault")
	})
	p.on(c, "keyup", func(e js.Value) {
		p.key(e, false)
		e.Call("preventDefault")
	})
	p.on(p.window, "resize", func(js.Value) {
		p.resize()
	})
	p.on(p.window, "pagehide", func(js.Value) {
		p.push(speedy.RawCloseRequested{})
	})
}

func (p *Platform) eventPos(e js.Value) speedy.Vec2 {
	return cssToPixels(e.Get("offsetX").Float(), e.Get("offsetY").Float(), p.ratio)
}

func (p *Platform) key(e js.Value, pressed bool) {
	m := speedy.ModifiersState{
		Ctrl:  e.Get("ctrlKey").Bool(),
		Alt:   e.Get("altKey").Bool(),
		Shift: e.Get("shiftKey").Bool(),
		Logo:  e.Get("metaKey").Bool(),
	}
	var events []speedy.RawEvent
	p.mu.Lock()
	if m != p.modifiers {
		p.modifiers = m
		events = append(events, speedy.RawModifiers{State: m})
	}
	p.mu.Unlock()

	events = append(events, speedy.RawKey{
		Key:      translateKey(e.Get("code").String()),
		Scancode: uint32(e.Get("keyCode").Int()),
		Pressed:  pressed,
	})
	if pressed && !m.Ctrl && !m.Logo {
		if r, ok := printable(e.Get("key").String()); ok {
			events = append(events, speedy.RawChar{Char: r})
		}
	}
	p.push(events...)
}

func (p *Platform) resize() {
	ratio := p.devicePixelRatio()
	size := p.measure(ratio)
	var events []speedy.RawEvent
	if ratio != p.ratio {
		p.ratio = ratio
		events = append(events, speedy.RawScaleFactorChanged{ScaleFactor: ratio})
	}
	if size != p.size {
		p.size = size
		events = append(events, speedy.RawResized{SizePixels: size})
	}
	p.push(events...)
}

func (p *Platform) push(events ...speedy.RawEvent) {
	if len(events) == 0 {
		return
	}
	p.mu.Lock()
	if !p.closed {
		p.pending = append(p.pending, events...)
	}
	p.mu.Unlock()
	p.Wake()
}

// PollEvents appends queued browser events to buf. Blocking yields to the
// browser event loop until a listener fires or Wake is called.
func (p *Platform) PollEvents(buf []speedy.RawEvent, wait bool) []speedy.RawEvent {
	p.mu.Lock()
	if wait && len(p.pending) == 0 && !p.closed {
		p.mu.Unlock()
		<-p.wake
		p.mu.Lock()
	}
	buf = append(buf, p.pending...)
	clear(p.pending)
	p.pending = p.pending[:0]
	p.mu.Unlock()
	return buf
}

// Wake unblocks a waiting PollEvents. Safe for concurrent use.
func (p *Platform) Wake() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *Platform) check() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	return nil
}

func (p *Platform) SetTitle(title string) error {
	if err := p.check(); err != nil {
		return err
	}
	p.document.Set("title", title)
	return nil
}

// SetSizePixels sets the CSS size of the canvas. The resize event follows
// from the browser.
func (p *Platform) SetSizePixels(size speedy.UVec2) error {
	if err := p.check(); err != nil {
		return err
	}
	p.setCSSSize(size, p.ratio)
	p.resize()
	return nil
}

func (p *Platform) SetPositionPixels(speedy.IVec2) error {
	return fmt.Errorf("web: set position: %w", errors.ErrUnsupported)
}

func (p *Platform) SetFullscreenMode(mode speedy.WindowFullscreenMode) error {
	if err := p.check(); err != nil {
		return err
	}
	if mode == speedy.WindowFullscreenModeFullscreenBorderless {
		p.canvas.Call("requestFullscreen")
	} else if !p.document.Get("fullscreenElement").IsNull() {
		p.document.Call("exitFullscreen")
	}
	return nil
}

func (p *Platform) SetCursorVisible(visible bool) error {
	if err := p.check(); err != nil {
		return err
	}
	cursor := "none"
	if visible {
		cursor = ""
	}
	p.canvas.Get("style").Set("cursor", cursor)
	return nil
}

// SetCursorGrab requests pointer lock. Browsers only grant it during a
// user gesture.
func (p *Platform) SetCursorGrab(grabbed bool) error {
	if err := p.check(); err != nil {
		return err
	}
	if grabbed {
		p.canvas.Call("requestPointerLock")
	} else {
		p.document.Call("exitPointerLock")
	}
	return nil
}

func (p *Platform) SetResizable(bool) error {
	return fmt.Errorf("web: set resizable: %w", errors.ErrUnsupported)
}

// SetIcon replaces the page favicon.
func (p *Platform) SetIcon(size speedy.UVec2, rgba []byte) error {
	if err := p.check(); err != nil {
		return err
	}
	if want := int(size.X) * int(size.Y) * 4; size.X == 0 || size.Y == 0 || len(rgba) != want {
		return fmt.Errorf("web: icon data is %d bytes, want %d", len(rgba), want)
	}
	tmp := p.document.Call("createElement", "canvas")
	tmp.Set("width", size.X)
	tmp.Set("height", size.Y)
	putPixels(tmp.Call("getContext", "2d"), rgba, size)

	link := p.document.Call("querySelector", "link[rel~='icon']")
	if link.IsNull() {
		link = p.document.Call("createElement", "link")
		link.Set("rel", "icon")
		p.document.Get("head").Call("appendChild", link)
	}
	link.Set("href", tmp.Call("toDataURL", "image/png"))
	return nil
}

// Close removes the event listeners.
func (p *Platform) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.pending = nil
	p.mu.Unlock()

	for _, l := range p.listeners {
		l.target.Call("removeEventListener", l.event, l.fn)
		l.fn.Release()
	}
	p.listeners = nil
	p.Wake()
	return nil
}

func putPixels(ctx js.Value, rgba []byte, size speedy.UVec2) {
	arr := js.Global().Get("Uint8ClampedArray").New(len(rgba))
	js.CopyBytesToJS(arr, rgba)
	img := js.Global().Get("ImageData").New(arr, size.X, size.Y)
	ctx.Call("putImageData", img, 0, 0)
}

// canvasPresenter copies each presented frame to the canvas.
type canvasPresenter struct {
	*software.Backend
	p *Platform
}

func (c *canvasPresenter) Present() error {
	if err := c.Backend.Present(); err != nil {
		return err
	}
	frame, err := c.Backend.Capture()
	if err != nil {
		return err
	}
	if frame.Size.X == 0 || frame.Size.Y == 0 {
		return nil
	}
	putPixels(c.p.ctx, frame.Data, frame.Size)
	return nil
}
