// Package speedy provides an immediate-mode 2D drawing surface with a
// window and event shell on top of it.
//
// # Overview
//
// speedy draws triangles, quads, rectangles, lines, circles, images and
// text. Drawing calls are batched by render state (bound texture and clip
// rectangle) and flushed to a GPU backend once per state change or at the
// end of a frame. The window shell normalizes platform events (desktop
// window managers, browser canvases, host applications) into a single
// callback interface.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/speedy"
//	    _ "github.com/gogpu/speedy/platform/glfw"
//	)
//
//	type app struct {
//	    speedy.BaseHandler[speedy.NoUserEvent]
//	}
//
//	func (app) OnDraw(h *speedy.WindowHelper[speedy.NoUserEvent], g *speedy.Graphics) {
//	    g.ClearScreen(speedy.ColorWhite)
//	    g.DrawCircle(speedy.Vec2{X: 100, Y: 100}, 75, speedy.ColorBlue)
//	    h.RequestRedraw()
//	}
//
//	func main() {
//	    w, err := speedy.NewWindowCentered[speedy.NoUserEvent]("Hello", speedy.UVec2{X: 640, Y: 480})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    log.Fatal(w.Run(app{}))
//	}
//
// # Coordinate System
//
// All drawing and event coordinates are logical pixels:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - physical pixels = logical pixels * scale factor
//
// # Architecture
//
// The library is organized into:
//   - Public API: Window, WindowHelper, Handler, Graphics, Renderer
//   - Backends: backend/software (CPU), backend/wgpu (gogpu/wgpu HAL), backend/opengl (OpenGL 3.3)
//   - Platforms: platform/glfw, platform/web, platform/gpuctx, platform/headless
//   - Collaborators: font (text layout), imagedecode (image files)
//
// # Threading
//
// Drawing and event dispatch run on the goroutine that called Window.Run.
// The only value safe to share with other goroutines is UserEventSender.
package speedy

// Version is the current version of the library.
const Version = "0.4.0"
