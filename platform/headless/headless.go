// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package headless provides a speedy.Platform without a window.
//
// Input is scripted with Push, and frames are drawn by a backend from the
// backend registry, the software rasterizer by default. Window actions are
// recorded and can be inspected with State. It is meant for tests, servers
// rendering images, and CI machines without a display.
//
// Importing the package registers the platform under the name "headless"
// with the lowest priority, so any real platform is preferred.
package headless

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/speedy"
	"github.com/gogpu/speedy/backend"
	_ "github.com/gogpu/speedy/backend/software"
)

// Name is the registered platform name.
const Name = "headless"

// DefaultSize is the viewport size used when the configuration gives none.
var DefaultSize = speedy.UVec2{X: 800, Y: 600}

// ErrClosed is returned by window actions after Close.
var ErrClosed = errors.New("headless: platform closed")

func init() {
	speedy.RegisterPlatform(Name, -10, func(cfg speedy.PlatformConfig) (speedy.Platform, error) {
		return New(cfg), nil
	})
}

// Option configures a Platform.
type Option func(*Platform)

// WithScaleFactor sets the scale factor reported at startup.
func WithScaleFactor(scale float64) Option {
	return func(p *Platform) {
		p.scale = scale
	}
}

// WithBackendName selects the backend opened by Start.
func WithBackendName(name string) Option {
	return func(p *Platform) {
		p.backendName = name
	}
}

// WithBackend makes Start return b instead of opening a backend.
func WithBackend(b speedy.Backend) Option {
	return func(p *Platform) {
		p.backend = b
	}
}

// WithActionError makes every window action fail with err.
func WithActionError(err error) Option {
	return func(p *Platform) {
		p.actionErr = err
	}
}

// State is a snapshot of the simulated window.
type State struct {
	Title         string
	SizePixels    speedy.UVec2
	Position      *speedy.IVec2
	Fullscreen    bool
	CursorVisible bool
	CursorGrabbed bool
	Resizable     bool
	IconSize      speedy.UVec2
	Closed        bool
}

// Platform is a windowless speedy.Platform.
type Platform struct {
	scale       float64
	backendName string
	backend     speedy.Backend
	actionErr   error

	wake chan struct{}

	mu      sync.Mutex
	pending []speedy.RawEvent
	state   State
}

// New creates a platform for cfg.
func New(cfg speedy.PlatformConfig, opts ...Option) *Platform {
	size := cfg.Size
	if size.X == 0 || size.Y == 0 {
		size = DefaultSize
	}
	p := &Platform{
		scale:       1,
		backendName: backend.BackendSoftware,
		wake:        make(chan struct{}, 1),
		state: State{
			Title:         cfg.Title,
			SizePixels:    size,
			Position:      cfg.Position,
			Fullscreen:    cfg.Fullscreen,
			CursorVisible: true,
			Resizable:     cfg.Resizable,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns "headless".
func (p *Platform) Name() string { return Name }

// Start opens the backend.
func (p *Platform) Start() (speedy.StartupInfo, speedy.Backend, error) {
	p.mu.Lock()
	size := p.state.SizePixels
	p.mu.Unlock()

	info := speedy.StartupInfo{ViewportSizePixels: size, ScaleFactor: p.scale}
	if p.backend != nil {
		return info, p.backend, nil
	}
	b, err := backend.Open(p.backendName, backend.Config{Size: size, Scale: p.scale})
	if err != nil {
		return info, nil, fmt.Errorf("headless: open backend: %w", err)
	}
	p.backend = b
	return info, b, nil
}

// Backend returns the backend opened by Start, or nil before Start.
func (p *Platform) Backend() speedy.Backend {
	return p.backend
}

// Push queues raw events for the next PollEvents. Safe for concurrent use.
func (p *Platform) Push(events ...speedy.RawEvent) {
	p.mu.Lock()
	p.pending = append(p.pending, events...)
	p.mu.Unlock()
	p.Wake()
}

// PollEvents appends the pushed events to buf. When wait is set and none
// are pending it blocks until Push or Wake.
func (p *Platform) PollEvents(buf []speedy.RawEvent, wait bool) []speedy.RawEvent {
	p.mu.Lock()
	if wait && len(p.pending) == 0 {
		p.mu.Unlock()
		<-p.wake
		p.mu.Lock()
	}
	buf = append(buf, p.pending...)
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

// State returns a snapshot of the simulated window.
func (p *Platform) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// apply runs fn on the window state unless actions are set to fail or
// the platform is closed.
func (p *Platform) apply(fn func(s *State)) error {
	if p.actionErr != nil {
		return p.actionErr
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state.Closed {
		return ErrClosed
	}
	fn(&p.state)
	return nil
}

// SetTitle records the title.
func (p *Platform) SetTitle(title string) error {
	return p.apply(func(s *State) { s.Title = title })
}

// SetSizePixels resizes the simulated window and queues the resulting
// resize event.
func (p *Platform) SetSizePixels(size speedy.UVec2) error {
	err := p.apply(func(s *State) {
		s.SizePixels = size
		p.pending = append(p.pending, speedy.RawResized{SizePixels: size})
	})
	if err == nil {
		p.Wake()
	}
	return err
}

// SetPositionPixels records the position.
func (p *Platform) SetPositionPixels(pos speedy.IVec2) error {
	return p.apply(func(s *State) { s.Position = &pos })
}

// SetFullscreenMode records the mode.
func (p *Platform) SetFullscreenMode(mode speedy.WindowFullscreenMode) error {
	return p.apply(func(s *State) {
		s.Fullscreen = mode == speedy.WindowFullscreenModeFullscreenBorderless
	})
}

// SetCursorVisible records cursor visibility.
func (p *Platform) SetCursorVisible(visible bool) error {
	return p.apply(func(s *State) { s.CursorVisible = visible })
}

// SetCursorGrab records the cursor grab.
func (p *Platform) SetCursorGrab(grabbed bool) error {
	return p.apply(func(s *State) { s.CursorGrabbed = grabbed })
}

// SetResizable records resizability.
func (p *Platform) SetResizable(resizable bool) error {
	return p.apply(func(s *State) { s.Resizable = resizable })
}

// SetIcon records the icon size.
func (p *Platform) SetIcon(size speedy.UVec2, rgba []byte) error {
	if want := int(size.X) * int(size.Y) * 4; len(rgba) != want {
		return fmt.Errorf("headless: icon data is %d bytes, want %d", len(rgba), want)
	}
	return p.apply(func(s *State) { s.IconSize = size })
}

// Close marks the window closed. The backend is closed by the renderer.
func (p *Platform) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state.Closed = true
	return nil
}
