// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuctx

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/speedy"
	"github.com/gogpu/speedy/backend"
)

// fakeHost records the callbacks registered by the platform.
type fakeHost struct {
	gpucontext.NullEventSource

	w, h  int
	scale float64

	resize  func(int, int)
	move    func(float64, float64)
	press   func(gpucontext.MouseButton, float64, float64)
	release func(gpucontext.MouseButton, float64, float64)
	scroll  func(float64, float64)
	keyDown func(gpucontext.Key, gpucontext.Modifiers)
	keyUp   func(gpucontext.Key, gpucontext.Modifiers)
	text    func(string)
	redraws int
}

func (f *fakeHost) OnResize(fn func(int, int)) { f.resize = fn }
func (f *fakeHost) OnMouseMove(fn func(float64, float64)) { f.move = fn }
func (f *fakeHost) OnMousePress(fn func(gpucontext.MouseButton, float64, float64)) { f.press = fn }
func (f *fakeHost) OnMouseRelease(fn func(gpucontext.MouseButton, float64, float64)) { f.release = fn }
func (f *fakeHost) OnScroll(fn func(float64, float64)) { f.scroll = fn }
func (f *fakeHost) OnKeyPress(fn func(gpucontext.Key, gpucontext.Modifiers)) { f.keyDown = fn }
func (f *fakeHost) OnKeyRelease(fn func(gpucontext.Key, gpucontext.Modifiers)) { f.keyUp = fn }
func (f *fakeHost) OnTextInput(fn func(string)) { f.text = fn }

func (f *fakeHost) Size() (int, int) { return f.w, f.h }
func (f *fakeHost) ScaleFactor() float64 { return f.scale }
func (f *fakeHost) RequestRedraw() { f.redraws++ }

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		in   gpucontext.Key
		want speedy.KeyCode
	}{
		{gpucontext.KeyA, speedy.KeyA},
		{gpucontext.Key9, speedy.Key9},
		{gpucontext.KeyEnter, speedy.KeyReturn},
		{gpucontext.KeyEqual, speedy.KeyEquals},
		{gpucontext.KeyPause, speedy.KeyPauseBreak},
		{gpucontext.KeyNumpadEnter, speedy.KeyNumpadEnter},
		{gpucontext.KeyRightSuper, speedy.KeyRightSuper},
		{gpucontext.KeyUnknown, speedy.KeyUnknown},
		{gpucontext.KeyPause + 1, speedy.KeyUnknown},
	}
	for _, tt := range tests {
		if got := translateKey(tt.in); got != tt.want {
			t.Errorf("translateKey(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestKeyTableCoversHostKeys(t *testing.T) {
	seen := make(map[speedy.KeyCode]bool)
	for k := gpucontext.KeyA; k <= gpucontext.KeyPause; k++ {
		code := translateKey(k)
		if code == speedy.KeyUnknown {
			t.Errorf("host key %d is unmapped", k)
		}
		if seen[code] {
			t.Errorf("host key %d maps to duplicate %v", k, code)
		}
		seen[code] = true
	}
}

func TestTranslateButtonAndMods(t *testing.T) {
	buttons := []struct {
		in   gpucontext.MouseButton
		want speedy.MouseButton
	}{
		{gpucontext.MouseButtonLeft, speedy.MouseButtonLeft},
		{gpucontext.MouseButtonRight, speedy.MouseButtonRight},
		{gpucontext.MouseButtonMiddle, speedy.MouseButtonMiddle},
		{gpucontext.MouseButton5, speedy.MouseButtonOther(4)},
	}
	for _, tt := range buttons {
		if got := translateButton(tt.in); got != tt.want {
			t.Errorf("translateButton(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}

	got := translateMods(gpucontext.ModShift | gpucontext.ModSuper | gpucontext.ModNumLock)
	if want := (speedy.ModifiersState{Shift: true, Logo: true}); got != want {
		t.Errorf("translateMods = %+v, want %+v", got, want)
	}
}

func TestScrollEvent(t *testing.T) {
	tests := []struct {
		in   gpucontext.ScrollEvent
		want speedy.RawMouseWheel
	}{
		{
			gpucontext.ScrollEvent{DeltaY: 3, DeltaMode: gpucontext.ScrollDeltaLine},
			speedy.RawMouseWheel{Delta: speedy.Vec3{Y: -3}},
		},
		{
			gpucontext.ScrollEvent{DeltaX: 2, DeltaY: -8, DeltaMode: gpucontext.ScrollDeltaPixel},
			speedy.RawMouseWheel{Delta: speedy.Vec3{X: 4, Y: 16}, Precise: true},
		},
		{
			gpucontext.ScrollEvent{DeltaY: 1, DeltaMode: gpucontext.ScrollDeltaPage},
			speedy.RawMouseWheel{Delta: speedy.Vec3{Y: -20}},
		},
	}
	for _, tt := range tests {
		if got := scrollEvent(tt.in, 2); got != tt.want {
			t.Errorf("scrollEvent(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestPosition(t *testing.T) {
	tests := []struct {
		x, y, scale float64
		want        speedy.Vec2
	}{
		{10, 5, 1, speedy.Vec2{X: 10, Y: 5}},
		{1.5, 2.25, 2, speedy.Vec2{X: 3, Y: 4.5}},
		{3, 7, 1.5, speedy.Vec2{X: 4.5, Y: 10.5}},
	}
	for _, tt := range tests {
		if got := position(tt.x, tt.y, tt.scale); got != tt.want {
			t.Errorf("position(%g, %g, %g) = %v, want %v", tt.x, tt.y, tt.scale, got, tt.want)
		}
	}
}

func TestHostEvents(t *testing.T) {
	host := &fakeHost{w: 100, h: 50, scale: 2}
	p := New(host)

	host.move(10, 5)
	host.press(gpucontext.MouseButtonLeft, 1, 2)
	host.keyDown(gpucontext.KeyA, gpucontext.ModControl)
	host.keyUp(gpucontext.KeyA, gpucontext.ModControl)
	host.text("hé")
	host.scroll(0, 1)
	host.scale = 1
	host.resize(30, 20)

	got := p.PollEvents(nil, false)
	ctrl := speedy.ModifiersState{Ctrl: true}
	want := []speedy.RawEvent{
		speedy.RawMouseMoved{PositionPixels: speedy.Vec2{X: 20, Y: 10}},
		speedy.RawMouseMoved{PositionPixels: speedy.Vec2{X: 2, Y: 4}},
		speedy.RawMouseButton{Button: speedy.MouseButtonLeft, Pressed: true},
		speedy.RawModifiers{State: ctrl},
		speedy.RawKey{Key: speedy.KeyA, Scancode: uint32(gpucontext.KeyA), Pressed: true},
		speedy.RawKey{Key: speedy.KeyA, Scancode: uint32(gpucontext.KeyA)},
		speedy.RawChar{Char: 'h'},
		speedy.RawChar{Char: 'é'},
		speedy.RawMouseWheel{Delta: speedy.Vec3{Y: -1}},
		speedy.RawScaleFactorChanged{ScaleFactor: 1},
		speedy.RawResized{SizePixels: speedy.UVec2{X: 30, Y: 20}},
	}
	if !slices.Equal(got, want) {
		t.Errorf("PollEvents =\n%v\nwant\n%v", got, want)
	}

	_ = p.Close()
	host.text("x")
	if got := p.PollEvents(nil, true); len(got) != 0 {
		t.Errorf("PollEvents after Close = %v, want none", got)
	}
}

func TestUnsupportedActions(t *testing.T) {
	p := New(&fakeHost{scale: 1})
	actions := map[string]func() error{
		"SetTitle":          func() error { return p.SetTitle("x") },
		"SetSizePixels":     func() error { return p.SetSizePixels(speedy.UVec2{X: 1, Y: 1}) },
		"SetFullscreenMode": func() error { return p.SetFullscreenMode(speedy.WindowFullscreenModeWindowed) },
		"SetCursorVisible":  func() error { return p.SetCursorVisible(false) },
	}
	for name, f := range actions {
		if err := f(); !errors.Is(err, errors.ErrUnsupported) {
			t.Errorf("%s() = %v, want %v", name, err, errors.ErrUnsupported)
		}
	}
	_ = p.Close()
	if err := p.SetTitle("x"); !errors.Is(err, ErrClosed) {
		t.Errorf("SetTitle after Close = %v, want %v", err, ErrClosed)
	}
}

// chromeHost adds fullscreen and cursor control.
type chromeHost struct {
	fakeHost
	gpucontext.NullWindowChrome
	gpucontext.NullPlatformProvider

	fullscreen bool
	cursor     gpucontext.CursorShape
}

func (c *chromeHost) SetFullscreen(v bool) { c.fullscreen = v }
func (c *chromeHost) SetCursor(shape gpucontext.CursorShape) { c.cursor = shape }

func TestChromeActions(t *testing.T) {
	host := &chromeHost{fakeHost: fakeHost{scale: 1}}
	p := New(host)
	if err := p.SetFullscreenMode(speedy.WindowFullscreenModeFullscreenBorderless); err != nil {
		t.Fatalf("SetFullscreenMode: %v", err)
	}
	if !host.fullscreen {
		t.Error("host not fullscreen")
	}
	if err := p.SetCursorVisible(false); err != nil {
		t.Fatalf("SetCursorVisible: %v", err)
	}
	if host.cursor != gpucontext.CursorNone {
		t.Errorf("cursor = %v, want %v", host.cursor, gpucontext.CursorNone)
	}
}

type fakeTexture struct {
	w, h      int
	data      []byte
	updates   int
	destroyed bool
}

func (t *fakeTexture) Width() int { return t.w }
func (t *fakeTexture) Height() int { return t.h }
func (t *fakeTexture) Destroy() { t.destroyed = true }

func (t *fakeTexture) UpdateData(data []byte) error {
	t.data = append(t.data[:0], data...)
	t.updates++
	return nil
}

// drawerHost presents frames into fake textures.
type drawerHost struct {
	fakeHost
	created []*fakeTexture
	drawn   int
}

func (d *drawerHost) TextureCreator() gpucontext.TextureCreator { return d }

func (d *drawerHost) NewTextureFromRGBA(w, h int, data []byte) (gpucontext.Texture, error) {
	t := &fakeTexture{w: w, h: h, data: append([]byte(nil), data...)}
	d.created = append(d.created, t)
	return t, nil
}

func (d *drawerHost) DrawTexture(gpucontext.Texture, float32, float32) error {
	d.drawn++
	return nil
}

type twoFrames struct {
	speedy.BaseHandler[speedy.NoUserEvent]
	frames int
}

func (f *twoFrames) OnDraw(h *speedy.WindowHelper[speedy.NoUserEvent], g *speedy.Graphics) {
	f.frames++
	g.ClearScreen(speedy.ColorBlue)
	if f.frames == 2 {
		h.TerminateLoop()
		return
	}
	h.RequestRedraw()
}

func TestRunPresentsToHost(t *testing.T) {
	host := &drawerHost{fakeHost: fakeHost{w: 3, h: 2, scale: 2}}
	p := New(host)
	w, err := speedy.NewWindowWithOptions[speedy.NoUserEvent]("", speedy.WithPlatformInstance(p))
	if err != nil {
		t.Fatalf("NewWindowWithOptions: %v", err)
	}
	if err := w.Run(&twoFrames{}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(host.created) != 1 {
		t.Fatalf("created %d textures, want 1", len(host.created))
	}
	tex := host.created[0]
	if tex.w != 6 || tex.h != 4 {
		t.Errorf("texture size = %dx%d, want 6x4", tex.w, tex.h)
	}
	if tex.updates != 1 {
		t.Errorf("texture updates = %d, want 1", tex.updates)
	}
	if got := tex.data[:4]; !slices.Equal(got, []byte{0, 0, 255, 255}) {
		t.Errorf("first pixel = %v, want opaque blue", got)
	}
	if host.drawn != 2 || host.redraws != 2 {
		t.Errorf("drawn = %d, redraws = %d, want 2 and 2", host.drawn, host.redraws)
	}
	if p.backend.Name() != backend.BackendSoftware {
		t.Errorf("backend = %q, want %q", p.backend.Name(), backend.BackendSoftware)
	}
}
