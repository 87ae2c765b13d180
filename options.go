package speedy

// WindowOption configures a Window during creation.
//
// Example:
//
//	w, err := speedy.NewWindowWithOptions[speedy.NoUserEvent]("Demo",
//		speedy.WithSize(speedy.UVec2{X: 1280, Y: 720}),
//		speedy.WithVSync(false),
//	)
type WindowOption func(*windowOptions)

// windowOptions holds the configuration collected from WindowOptions.
type windowOptions struct {
	platform     PlatformConfig
	platformName string
	instance     Platform
	renderer     []RendererOption
}

// defaultWindowOptions returns the defaults: a 640x480 resizable window
// with decorations, vsync and 16x multisampling.
func defaultWindowOptions(title string) windowOptions {
	return windowOptions{
		platform: PlatformConfig{
			Title:         title,
			Size:          UVec2{X: 640, Y: 480},
			Centered:      true,
			Resizable:     true,
			VSync:         true,
			Decorations:   true,
			Multisampling: 16,
		},
	}
}

// WithSize sets the initial window size in physical pixels.
func WithSize(size UVec2) WindowOption {
	return func(o *windowOptions) {
		o.platform.Size = size
	}
}

// WithPosition places the window at the given position in physical pixels.
func WithPosition(pos IVec2) WindowOption {
	return func(o *windowOptions) {
		p := pos
		o.platform.Position = &p
		o.platform.Centered = false
	}
}

// WithCentered centers the window on the primary monitor.
func WithCentered() WindowOption {
	return func(o *windowOptions) {
		o.platform.Position = nil
		o.platform.Centered = true
	}
}

// WithFullscreenBorderless makes the window cover the primary monitor.
func WithFullscreenBorderless() WindowOption {
	return func(o *windowOptions) {
		o.platform.Fullscreen = true
	}
}

// WithResizable sets whether the user can resize the window.
func WithResizable(resizable bool) WindowOption {
	return func(o *windowOptions) {
		o.platform.Resizable = resizable
	}
}

// WithVSync enables or disables vertical sync.
func WithVSync(vsync bool) WindowOption {
	return func(o *windowOptions) {
		o.platform.VSync = vsync
	}
}

// WithMultisampling sets the number of MSAA samples. Zero disables it.
func WithMultisampling(samples uint16) WindowOption {
	return func(o *windowOptions) {
		o.platform.Multisampling = samples
	}
}

// WithDecorations sets whether the window has a title bar and border.
func WithDecorations(decorations bool) WindowOption {
	return func(o *windowOptions) {
		o.platform.Decorations = decorations
	}
}

// WithTransparent requests a transparent window background.
func WithTransparent(transparent bool) WindowOption {
	return func(o *windowOptions) {
		o.platform.Transparent = transparent
	}
}

// WithAlwaysOnTop keeps the window above other windows.
func WithAlwaysOnTop(onTop bool) WindowOption {
	return func(o *windowOptions) {
		o.platform.AlwaysOnTop = onTop
	}
}

// WithMaximized opens the window maximized.
func WithMaximized(maximized bool) WindowOption {
	return func(o *windowOptions) {
		o.platform.Maximized = maximized
	}
}

// WithPlatform selects a registered platform by name instead of the
// highest priority one.
func WithPlatform(name string) WindowOption {
	return func(o *windowOptions) {
		o.platformName = name
	}
}

// WithPlatformInstance uses an already created platform. It takes
// precedence over WithPlatform.
func WithPlatformInstance(p Platform) WindowOption {
	return func(o *windowOptions) {
		o.instance = p
	}
}

// WithRendererOptions passes options to the window's Renderer.
func WithRendererOptions(opts ...RendererOption) WindowOption {
	return func(o *windowOptions) {
		o.renderer = append(o.renderer, opts...)
	}
}

// RendererOption configures a Renderer.
type RendererOption func(*rendererConfig)

type rendererConfig struct {
	roundedCornerSegments int
}

func defaultRendererConfig() rendererConfig {
	return rendererConfig{roundedCornerSegments: DefaultRoundedCornerSegments}
}

// WithRoundedCornerSegments sets the number of triangles per rounded
// rectangle corner. Values below 1 are ignored.
func WithRoundedCornerSegments(n int) RendererOption {
	return func(c *rendererConfig) {
		if n >= 1 {
			c.roundedCornerSegments = n
		}
	}
}
