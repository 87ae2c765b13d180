// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpuctx adapts a gpucontext host, such as a gogpu application
// window, to a speedy.Platform.
//
// The host keeps ownership of the window and its loop. Input arrives through
// the host's gpucontext.EventSource callbacks and is queued for the speedy
// loop, which runs on its own goroutine:
//
//	p := gpuctx.New(app)
//	w, err := speedy.NewWindowWithOptions[speedy.NoUserEvent]("", speedy.WithPlatformInstance(p))
//	go w.Run(handler)
//
// Frames are drawn offscreen. If the host implements
// gpucontext.TextureDrawer, each presented frame is uploaded to a host
// texture and drawn at the window origin. Hosts exposing their hal device
// get the wgpu backend on that device, others get the software rasterizer.
package gpuctx

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/speedy"
	"github.com/gogpu/speedy/backend"
	_ "github.com/gogpu/speedy/backend/software"
	"github.com/gogpu/speedy/backend/wgpu"
)

// Name is the platform name.
const Name = "gpuctx"

// ErrClosed is returned by window actions after Close.
var ErrClosed = errors.New("gpuctx: platform closed")

// Host is the window the platform draws into.
type Host interface {
	gpucontext.EventSource
	gpucontext.WindowProvider
}

// Option configures a Platform.
type Option func(*Platform)

// WithBackendName opens the named backend from the registry instead of
// choosing one from the host.
func WithBackendName(name string) Option {
	return func(p *Platform) {
		p.backendName = name
	}
}

// Platform is a speedy.Platform driven by a gpucontext host.
type Platform struct {
	host        Host
	backendName string
	backend     speedy.Backend

	wake chan struct{}

	mu        sync.Mutex
	pending   []speedy.RawEvent
	scale     float64
	modifiers speedy.ModifiersState
	closed    bool
}

// New returns a platform for host and registers its event callbacks.
func New(host Host, opts ...Option) *Platform {
	p := &Platform{
		host:  host,
		wake:  make(chan struct{}, 1),
		scale: scaleOf(host),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.listen()
	return p
}

func scaleOf(host Host) float64 {
	s := host.ScaleFactor()
	if s <= 0 || math.IsNaN(s) {
		return 1
	}
	return s
}

// Name returns "gpuctx".
func (p *Platform) Name() string { return Name }

// Start opens the backend at the host's physical size.
func (p *Platform) Start() (speedy.StartupInfo, speedy.Backend, error) {
	p.mu.Lock()
	scale := p.scale
	p.mu.Unlock()
	w, h := p.host.Size()
	info := speedy.StartupInfo{
		ViewportSizePixels: physical(w, h, scale),
		ScaleFactor:        scale,
	}

	b, err := p.openBackend(info)
	if err != nil {
		return info, nil, err
	}
	if drawer, ok := p.host.(gpucontext.TextureDrawer); ok {
		b = newPresenter(b, drawer, p.host)
	}
	p.backend = b
	speedy.Logger().Info("gpuctx: started",
		"backend", b.Name(), "size", info.ViewportSizePixels, "scale", scale)
	return info, b, nil
}

func (p *Platform) openBackend(info speedy.StartupInfo) (speedy.Backend, error) {
	if p.backendName == "" {
		b, err := wgpu.NewFromProvider(p.host, info.ViewportSizePixels, info.ScaleFactor)
		if err == nil {
			return b, nil
		}
		speedy.Logger().Debug("gpuctx: host device unavailable", "err", err)
		p.backendName = backend.BackendSoftware
	}
	b, err := backend.Open(p.backendName, backend.Config{
		Size:  info.ViewportSizePixels,
		Scale: info.ScaleFactor,
	})
	if err != nil {
		return nil, fmt.Errorf("gpuctx: open backend: %w", err)
	}
	return b, nil
}

// listen registers callbacks on the host.
func (p *Platform) listen() {
	host := p.host
	host.OnResize(func(w, h int) {
		p.mu.Lock()
		defer p.mu.Unlock()
		if s := scaleOf(p.host); s != p.scale {
			p.scale = s
			p.pushLocked(speedy.RawScaleFactorChanged{ScaleFactor: s})
		}
		p.pushLocked(speedy.RawResized{SizePixels: physical(w, h, p.scale)})
	})
	host.OnMouseMove(func(x, y float64) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.pushLocked(speedy.RawMouseMoved{PositionPixels: position(x, y, p.scale)})
	})
	host.OnMousePress(func(b gpucontext.MouseButton, x, y float64) {
		p.mouseButton(b, x, y, true)
	})
	host.OnMouseRelease(func(b gpucontext.MouseButton, x, y float64) {
		p.mouseButton(b, x, y, false)
	})
	if src, ok := host.(gpucontext.ScrollEventSource); ok {
		src.OnScrollEvent(func(ev gpucontext.ScrollEvent) {
			p.mu.Lock()
			defer p.mu.Unlock()
			p.pushLocked(scrollEvent(ev, p.scale))
		})
	} else {
		host.OnScroll(func(dx, dy float64) {
			p.push(speedy.RawMouseWheel{Delta: speedy.Vec3{X: dx, Y: -dy}})
		})
	}
	host.OnKeyPress(func(k gpucontext.Key, mods gpucontext.Modifiers) {
		p.key(k, mods, true)
	})
	host.OnKeyRelease(func(k gpucontext.Key, mods gpucontext.Modifiers) {
		p.key(k, mods, false)
	})
	host.OnTextInput(func(text string) {
		p.mu.Lock()
		defer p.mu.Unlock()
		for _, r := range text {
			p.pushLocked(speedy.RawChar{Char: r})
		}
	})
}

func (p *Platform) mouseButton(b gpucontext.MouseButton, x, y float64, pressed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushLocked(speedy.RawMouseMoved{PositionPixels: position(x, y, p.scale)})
	p.pushLocked(speedy.RawMouseButton{Button: translateButton(b), Pressed: pressed})
}

func (p *Platform) key(k gpucontext.Key, mods gpucontext.Modifiers, pressed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if m := translateMods(mods); m != p.modifiers {
		p.modifiers = m
		p.pushLocked(speedy.RawModifiers{State: m})
	}
	p.pushLocked(speedy.RawKey{Key: translateKey(k), Scancode: uint32(k), Pressed: pressed})
}

// scrollEvent converts a host scroll. Host deltas grow downwards, speedy
// deltas upwards. Pixel deltas are scaled to physical pixels.
func scrollEvent(ev gpucontext.ScrollEvent, scale float64) speedy.RawMouseWheel {
	d := speedy.Vec3{X: ev.DeltaX, Y: -ev.DeltaY}
	switch ev.DeltaMode {
	case gpucontext.ScrollDeltaPixel:
		d.X *= scale
		d.Y *= scale
		return speedy.RawMouseWheel{Delta: d, Precise: true}
	case gpucontext.ScrollDeltaPage:
		const linesPerPage = 20
		d.X *= linesPerPage
		d.Y *= linesPerPage
	}
	return speedy.RawMouseWheel{Delta: d}
}

// position converts a host cursor position in logical pixels to physical
// pixels.
func position(x, y, scale float64) speedy.Vec2 {
	return speedy.Vec2{X: float32(x * scale), Y: float32(y * scale)}
}

func physical(w, h int, scale float64) speedy.UVec2 {
	return speedy.UVec2{
		X: uint32(math.Round(float64(max(w, 0)) * scale)),
		Y: uint32(math.Round(float64(max(h, 0)) * scale)),
	}
}

func (p *Platform) push(ev speedy.RawEvent) {
	p.mu.Lock()
	p.pushLocked(ev)
	p.mu.Unlock()
}

func (p *Platform) pushLocked(ev speedy.RawEvent) {
	if p.closed {
		return
	}
	p.pending = append(p.pending, ev)
	p.Wake()
}

// PollEvents appends queued host events to buf. When wait is set and none
// are queued it blocks until the host delivers one or Wake is called.
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

// RequestClose queues a close request, as a host close button would.
func (p *Platform) RequestClose() {
	p.push(speedy.RawCloseRequested{})
}

// unsupported is returned for window actions the host does not expose.
func (p *Platform) unsupported(action string) error {
	if p.isClosed() {
		return ErrClosed
	}
	return fmt.Errorf("gpuctx: %s: %w", action, errors.ErrUnsupported)
}

func (p *Platform) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *Platform) SetTitle(string) error { return p.unsupported("set title") }
func (p *Platform) SetSizePixels(speedy.UVec2) error { return p.unsupported("set size") }
func (p *Platform) SetPositionPixels(speedy.IVec2) error { return p.unsupported("set position") }
func (p *Platform) SetCursorGrab(bool) error { return p.unsupported("grab cursor") }
func (p *Platform) SetResizable(bool) error { return p.unsupported("set resizable") }
func (p *Platform) SetIcon(speedy.UVec2, []byte) error { return p.unsupported("set icon") }

// SetFullscreenMode requires a host implementing gpucontext.WindowChrome.
func (p *Platform) SetFullscreenMode(mode speedy.WindowFullscreenMode) error {
	chrome, ok := p.host.(gpucontext.WindowChrome)
	if !ok || p.isClosed() {
		return p.unsupported("set fullscreen")
	}
	chrome.SetFullscreen(mode == speedy.WindowFullscreenModeFullscreenBorderless)
	return nil
}

// SetCursorVisible requires a host implementing gpucontext.PlatformProvider.
func (p *Platform) SetCursorVisible(visible bool) error {
	pp, ok := p.host.(gpucontext.PlatformProvider)
	if !ok || p.isClosed() {
		return p.unsupported("set cursor visibility")
	}
	if visible {
		pp.SetCursor(gpucontext.CursorDefault)
	} else {
		pp.SetCursor(gpucontext.CursorNone)
	}
	return nil
}

// Close stops event delivery. The host window stays open.
func (p *Platform) Close() error {
	p.mu.Lock()
	p.closed = true
	p.pending = nil
	p.mu.Unlock()
	p.Wake()
	return nil
}
