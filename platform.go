package speedy

import (
	"errors"
	"sort"
	"sync"
)

// Platform is a native window and event source. Implementations live under
// platform/ and register themselves with RegisterPlatform from init().
//
// All methods except Wake are called from the loop goroutine.
type Platform interface {
	// Name returns the registered name of the platform.
	Name() string

	// Start opens the window and creates the backend that draws into it.
	Start() (StartupInfo, Backend, error)

	// PollEvents appends pending native events to buf and returns it. If
	// wait is true and no event is pending, it blocks until one arrives or
	// Wake is called.
	PollEvents(buf []RawEvent, wait bool) []RawEvent

	// Wake interrupts a blocking PollEvents. Safe for concurrent use.
	Wake()

	SetTitle(title string) error
	SetSizePixels(size UVec2) error
	SetPositionPixels(pos IVec2) error
	SetFullscreenMode(mode WindowFullscreenMode) error
	SetCursorVisible(visible bool) error
	SetCursorGrab(grabbed bool) error
	SetResizable(resizable bool) error
	// SetIcon sets the window icon from tightly packed RGBA pixels.
	SetIcon(size UVec2, rgba []byte) error

	// Close destroys the window.
	Close() error
}

// WindowFullscreenMode selects windowed or fullscreen display.
type WindowFullscreenMode uint8

const (
	// WindowFullscreenModeWindowed is a regular window.
	WindowFullscreenModeWindowed WindowFullscreenMode = iota
	// WindowFullscreenModeFullscreenBorderless covers the monitor without
	// changing its video mode.
	WindowFullscreenModeFullscreenBorderless
)

// PlatformConfig is the window configuration handed to a platform factory.
type PlatformConfig struct {
	Title string
	// Size is the initial size in physical pixels.
	Size UVec2
	// Position is the initial position in physical pixels. When nil the
	// platform decides, centering the window if Centered is set.
	Position      *IVec2
	Centered      bool
	Fullscreen    bool
	Resizable     bool
	VSync         bool
	Decorations   bool
	Transparent   bool
	AlwaysOnTop   bool
	Maximized     bool
	Multisampling uint16
}

// RawEvent is a native event after platform decoding and before DPI
// correction. Positions and sizes are in physical pixels.
type RawEvent interface {
	isRawEvent()
}

// Raw events produced by platforms.
type (
	RawResized struct {
		SizePixels UVec2
	}
	RawScaleFactorChanged struct {
		ScaleFactor float64
	}
	RawMouseMoved struct {
		PositionPixels Vec2
	}
	RawMouseButton struct {
		Button  MouseButton
		Pressed bool
	}
	// RawMouseWheel holds line deltas, or pixel deltas when Precise is set.
	RawMouseWheel struct {
		Delta   Vec3
		Precise bool
	}
	RawKey struct {
		Key      KeyCode
		Scancode uint32
		Pressed  bool
	}
	RawChar struct {
		Char rune
	}
	RawModifiers struct {
		State ModifiersState
	}
	RawRedrawRequested struct{}
	RawCloseRequested  struct{}
)

func (RawResized) isRawEvent()            {}
func (RawScaleFactorChanged) isRawEvent() {}
func (RawMouseMoved) isRawEvent()         {}
func (RawMouseButton) isRawEvent()        {}
func (RawMouseWheel) isRawEvent()         {}
func (RawKey) isRawEvent()                {}
func (RawChar) isRawEvent()               {}
func (RawModifiers) isRawEvent()          {}
func (RawRedrawRequested) isRawEvent()    {}
func (RawCloseRequested) isRawEvent()     {}

// PlatformFactory creates a platform for a window configuration.
type PlatformFactory func(cfg PlatformConfig) (Platform, error)

// Errors.
var (
	// ErrNoPlatform is returned when no platform is registered. Import a
	// platform package, for example:
	//
	//	import _ "github.com/gogpu/speedy/platform/glfw"
	ErrNoPlatform = errors.New("speedy: no platform registered")
)

// PlatformNotFoundError is returned when a named platform is not
// registered.
type PlatformNotFoundError struct {
	Name string
}

func (e *PlatformNotFoundError) Error() string {
	return "speedy: platform not found: " + e.Name
}

type platformEntry struct {
	name     string
	priority int
	factory  PlatformFactory
}

var (
	platformsMu sync.RWMutex
	platforms   = make(map[string]platformEntry)
)

// RegisterPlatform registers a platform factory. Higher priorities are
// preferred when no platform is named. Registering an existing name
// replaces it.
func RegisterPlatform(name string, priority int, factory PlatformFactory) {
	platformsMu.Lock()
	defer platformsMu.Unlock()
	platforms[name] = platformEntry{name: name, priority: priority, factory: factory}
}

// UnregisterPlatform removes a platform from the registry.
func UnregisterPlatform(name string) {
	platformsMu.Lock()
	defer platformsMu.Unlock()
	delete(platforms, name)
}

// Platforms returns the registered platform names, highest priority
// first.
func Platforms() []string {
	platformsMu.RLock()
	defer platformsMu.RUnlock()

	entries := make([]platformEntry, 0, len(platforms))
	for _, e := range platforms {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority > entries[j].priority
		}
		return entries[i].name < entries[j].name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	return names
}

// DefaultPlatform returns the name of the highest priority platform.
func DefaultPlatform() (string, error) {
	names := Platforms()
	if len(names) == 0 {
		return "", ErrNoPlatform
	}
	return names[0], nil
}

// newPlatform creates the named platform, or the default one when name is
// empty.
func newPlatform(name string, cfg PlatformConfig) (Platform, error) {
	if name == "" {
		var err error
		if name, err = DefaultPlatform(); err != nil {
			return nil, err
		}
	}

	platformsMu.RLock()
	e, ok := platforms[name]
	platformsMu.RUnlock()
	if !ok {
		return nil, &PlatformNotFoundError{Name: name}
	}
	return e.factory(cfg)
}
