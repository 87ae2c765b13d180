// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glfw provides a desktop speedy.Platform built on GLFW 3.3, drawing
// with the OpenGL backend.
//
// GLFW must be driven from the main OS thread. Importing this package locks
// the main goroutine to it, so Window.Run must be called from main:
//
//	import _ "github.com/gogpu/speedy/platform/glfw"
//
//	func main() {
//		w, err := speedy.NewWindowCentered[speedy.NoUserEvent]("demo", speedy.UVec2{X: 640, Y: 480})
//		...
//		err = w.Run(handler)
//	}
package glfw

import (
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync/atomic"

	glfwlib "github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/speedy"
	"github.com/gogpu/speedy/backend/opengl"
)

// Name is the registered platform name.
const Name = "glfw"

// ErrNotStarted is returned by window actions before Start or after Close.
var ErrNotStarted = errors.New("glfw: window not open")

func init() {
	runtime.LockOSThread()
	speedy.RegisterPlatform(Name, 10, func(cfg speedy.PlatformConfig) (speedy.Platform, error) {
		return New(cfg), nil
	})
}

// Platform is a GLFW window with an OpenGL 3.3 core context.
type Platform struct {
	cfg     speedy.PlatformConfig
	win     *glfwlib.Window
	backend *opengl.Backend
	live    atomic.Bool

	pending   []speedy.RawEvent
	modifiers speedy.ModifiersState

	// Windowed placement saved while fullscreen.
	windowedPos  [2]int
	windowedSize [2]int
	fullscreen   bool
}

// New returns a platform for cfg. The window is created by Start.
func New(cfg speedy.PlatformConfig) *Platform {
	return &Platform{cfg: cfg}
}

// Name returns "glfw".
func (p *Platform) Name() string { return Name }

// Start initializes GLFW, opens the window, and creates the OpenGL backend.
func (p *Platform) Start() (info speedy.StartupInfo, b speedy.Backend, err error) {
	err = guard(func() error {
		if err := glfwlib.Init(); err != nil {
			return fmt.Errorf("glfw: init: %w", err)
		}
		if err := p.createWindow(); err != nil {
			glfwlib.Terminate()
			return err
		}
		return nil
	})
	if err != nil {
		return info, nil, err
	}

	fw, fh := p.win.GetFramebufferSize()
	sx, _ := p.win.GetContentScale()
	info = speedy.StartupInfo{
		ViewportSizePixels: speedy.UVec2{X: uint32(fw), Y: uint32(fh)},
		ScaleFactor:        float64(sx),
	}
	if info.ScaleFactor <= 0 {
		info.ScaleFactor = 1
	}

	p.backend, err = opengl.New(info.ViewportSizePixels, info.ScaleFactor, p.win.SwapBuffers)
	if err != nil {
		p.destroy()
		return info, nil, err
	}
	p.live.Store(true)
	speedy.Logger().Info("glfw: window opened",
		"size", info.ViewportSizePixels, "scale", info.ScaleFactor)
	return info, p.backend, nil
}

func (p *Platform) createWindow() error {
	cfg := p.cfg
	glfwlib.DefaultWindowHints()
	glfwlib.WindowHint(glfwlib.ContextVersionMajor, 3)
	glfwlib.WindowHint(glfwlib.ContextVersionMinor, 3)
	glfwlib.WindowHint(glfwlib.OpenGLProfile, glfwlib.OpenGLCoreProfile)
	glfwlib.WindowHint(glfwlib.OpenGLForwardCompatible, glfwlib.True)
	glfwlib.WindowHint(glfwlib.ScaleToMonitor, glfwlib.True)
	glfwlib.WindowHint(glfwlib.Resizable, hint(cfg.Resizable))
	glfwlib.WindowHint(glfwlib.Decorated, hint(cfg.Decorations))
	glfwlib.WindowHint(glfwlib.TransparentFramebuffer, hint(cfg.Transparent))
	glfwlib.WindowHint(glfwlib.Floating, hint(cfg.AlwaysOnTop))
	glfwlib.WindowHint(glfwlib.Maximized, hint(cfg.Maximized))
	glfwlib.WindowHint(glfwlib.Samples, int(cfg.Multisampling))
	glfwlib.WindowHint(glfwlib.Visible, glfwlib.False)

	w, h := int(cfg.Size.X), int(cfg.Size.Y)
	if w == 0 || h == 0 {
		w, h = 800, 600
	}
	var monitor *glfwlib.Monitor
	if cfg.Fullscreen {
		monitor = glfwlib.GetPrimaryMonitor()
		if mode := monitor.GetVideoMode(); mode != nil {
			w, h = mode.Width, mode.Height
		}
	}
	win, err := glfwlib.CreateWindow(w, h, cfg.Title, monitor, nil)
	if err != nil {
		return fmt.Errorf("glfw: create window: %w", err)
	}
	p.win = win
	p.fullscreen = cfg.Fullscreen
	p.windowedSize = [2]int{w, h}

	// Sizes are requested in physical pixels, GLFW takes screen units.
	if ratio := p.pixelRatio(); ratio != 1 && monitor == nil {
		win.SetSize(int(float64(w)/ratio), int(float64(h)/ratio))
	}
	switch {
	case monitor != nil:
	case cfg.Position != nil:
		ratio := p.pixelRatio()
		win.SetPos(int(float64(cfg.Position.X)/ratio), int(float64(cfg.Position.Y)/ratio))
	case cfg.Centered:
		p.center()
	}

	win.MakeContextCurrent()
	if cfg.VSync {
		glfwlib.SwapInterval(1)
	} else {
		glfwlib.SwapInterval(0)
	}
	p.installCallbacks()
	win.Show()
	return nil
}

func (p *Platform) center() {
	mode := glfwlib.GetPrimaryMonitor().GetVideoMode()
	if mode == nil {
		return
	}
	ww, wh := p.win.GetSize()
	p.win.SetPos((mode.Width-ww)/2, (mode.Height-wh)/2)
}

func (p *Platform) installCallbacks() {
	w := p.win
	w.SetFramebufferSizeCallback(func(_ *glfwlib.Window, width, height int) {
		p.push(speedy.RawResized{SizePixels: speedy.UVec2{X: uint32(width), Y: uint32(height)}})
	})
	w.SetContentScaleCallback(func(_ *glfwlib.Window, x, _ float32) {
		p.push(speedy.RawScaleFactorChanged{ScaleFactor: float64(x)})
	})
	w.SetCursorPosCallback(func(_ *glfwlib.Window, x, y float64) {
		p.push(speedy.RawMouseMoved{PositionPixels: cursorPosition(x, y, p.pixelRatio())})
	})
	w.SetMouseButtonCallback(func(_ *glfwlib.Window, button glfwlib.MouseButton, action glfwlib.Action, mods glfwlib.ModifierKey) {
		p.syncModifiers(translateMods(mods))
		p.push(speedy.RawMouseButton{Button: translateButton(button), Pressed: action == glfwlib.Press})
	})
	w.SetScrollCallback(func(_ *glfwlib.Window, x, y float64) {
		p.push(speedy.RawMouseWheel{Delta: speedy.Vec3{X: x, Y: y}})
	})
	w.SetKeyCallback(func(win *glfwlib.Window, key glfwlib.Key, scancode int, action glfwlib.Action, mods glfwlib.ModifierKey) {
		if isModifier(key) {
			p.syncModifiers(modifiersFrom(func(k glfwlib.Key) bool {
				return win.GetKey(k) != glfwlib.Release
			}))
		} else {
			p.syncModifiers(translateMods(mods))
		}
		p.push(speedy.RawKey{
			Key:      translateKey(key),
			Scancode: uint32(scancode),
			Pressed:  action != glfwlib.Release,
		})
	})
	w.SetCharCallback(func(_ *glfwlib.Window, char rune) {
		p.push(speedy.RawChar{Char: char})
	})
	w.SetRefreshCallback(func(_ *glfwlib.Window) {
		p.push(speedy.RawRedrawRequested{})
	})
	w.SetCloseCallback(func(win *glfwlib.Window) {
		// The loop decides whether to close.
		win.SetShouldClose(false)
		p.push(speedy.RawCloseRequested{})
	})
}

func (p *Platform) push(ev speedy.RawEvent) {
	p.pending = append(p.pending, ev)
}

func (p *Platform) syncModifiers(m speedy.ModifiersState) {
	if m == p.modifiers {
		return
	}
	p.modifiers = m
	p.push(speedy.RawModifiers{State: m})
}

// pixelRatio is the number of framebuffer pixels per screen unit. It is
// 1 except on systems such as macOS that scale in the compositor.
func (p *Platform) pixelRatio() float64 {
	ww, _ := p.win.GetSize()
	fw, _ := p.win.GetFramebufferSize()
	if ww == 0 || fw == 0 {
		return 1
	}
	return float64(fw) / float64(ww)
}

// PollEvents processes native events. Callbacks run on this goroutine and
// queue raw events, which are then appended to buf.
func (p *Platform) PollEvents(buf []speedy.RawEvent, wait bool) []speedy.RawEvent {
	if !p.live.Load() {
		return buf
	}
	if wait && len(p.pending) == 0 {
		glfwlib.WaitEvents()
	} else {
		glfwlib.PollEvents()
	}
	buf = append(buf, p.pending...)
	clear(p.pending)
	p.pending = p.pending[:0]
	return buf
}

// Wake posts an empty event to the GLFW queue. Safe for concurrent use.
func (p *Platform) Wake() {
	if p.live.Load() {
		glfwlib.PostEmptyEvent()
	}
}

func (p *Platform) SetTitle(title string) error {
	return p.do(func() { p.win.SetTitle(title) })
}

func (p *Platform) SetSizePixels(size speedy.UVec2) error {
	return p.do(func() {
		ratio := p.pixelRatio()
		p.win.SetSize(int(float64(size.X)/ratio), int(float64(size.Y)/ratio))
	})
}

func (p *Platform) SetPositionPixels(pos speedy.IVec2) error {
	return p.do(func() {
		ratio := p.pixelRatio()
		p.win.SetPos(int(float64(pos.X)/ratio), int(float64(pos.Y)/ratio))
	})
}

func (p *Platform) SetFullscreenMode(mode speedy.WindowFullscreenMode) error {
	return p.do(func() {
		full := mode == speedy.WindowFullscreenModeFullscreenBorderless
		if full == p.fullscreen {
			return
		}
		if full {
			monitor := glfwlib.GetPrimaryMonitor()
			vm := monitor.GetVideoMode()
			x, y := p.win.GetPos()
			w, h := p.win.GetSize()
			p.windowedPos, p.windowedSize = [2]int{x, y}, [2]int{w, h}
			p.win.SetMonitor(monitor, 0, 0, vm.Width, vm.Height, vm.RefreshRate)
		} else {
			p.win.SetMonitor(nil, p.windowedPos[0], p.windowedPos[1],
				p.windowedSize[0], p.windowedSize[1], 0)
		}
		p.fullscreen = full
	})
}

func (p *Platform) SetCursorVisible(visible bool) error {
	return p.do(func() {
		if visible {
			p.win.SetInputMode(glfwlib.CursorMode, glfwlib.CursorNormal)
		} else {
			p.win.SetInputMode(glfwlib.CursorMode, glfwlib.CursorHidden)
		}
	})
}

// SetCursorGrab confines and hides the cursor. GLFW reports unbounded
// relative motion while grabbed.
func (p *Platform) SetCursorGrab(grabbed bool) error {
	return p.do(func() {
		if grabbed {
			p.win.SetInputMode(glfwlib.CursorMode, glfwlib.CursorDisabled)
		} else {
			p.win.SetInputMode(glfwlib.CursorMode, glfwlib.CursorNormal)
		}
	})
}

func (p *Platform) SetResizable(resizable bool) error {
	return p.do(func() { p.win.SetAttrib(glfwlib.Resizable, hint(resizable)) })
}

func (p *Platform) SetIcon(size speedy.UVec2, rgba []byte) error {
	icon, err := iconImage(size, rgba)
	if err != nil {
		return err
	}
	return p.do(func() { p.win.SetIcon([]image.Image{icon}) })
}

// Close destroys the window and terminates GLFW. The backend must be
// closed first, while its context is alive.
func (p *Platform) Close() error {
	if !p.live.Swap(false) {
		return nil
	}
	p.destroy()
	return nil
}

func (p *Platform) destroy() {
	if p.win != nil {
		p.win.Destroy()
		p.win = nil
	}
	glfwlib.Terminate()
}

// do runs a window action, turning GLFW panics into errors.
func (p *Platform) do(f func()) error {
	if !p.live.Load() {
		return ErrNotStarted
	}
	return guard(func() error {
		f()
		return nil
	})
}

// guard calls f and recovers the panics the GLFW bindings raise for
// errors reported by the C library.
func guard(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("glfw: %w", e)
				return
			}
			err = fmt.Errorf("glfw: %v", r)
		}
	}()
	return f()
}

func hint(b bool) int {
	if b {
		return glfwlib.True
	}
	return glfwlib.False
}

// iconImage wraps tightly packed RGBA pixels in an image.
func iconImage(size speedy.UVec2, rgba []byte) (*image.NRGBA, error) {
	want := int(size.X) * int(size.Y) * 4
	if size.X == 0 || size.Y == 0 || len(rgba) != want {
		return nil, fmt.Errorf("glfw: icon data is %d bytes, want %d for %dx%d",
			len(rgba), want, size.X, size.Y)
	}
	return &image.NRGBA{
		Pix:    rgba,
		Stride: int(size.X) * 4,
		Rect:   image.Rect(0, 0, int(size.X), int(size.Y)),
	}, nil
}
