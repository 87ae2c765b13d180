package speedy

import (
	"errors"
	"fmt"

	"github.com/gogpu/speedy/imagedecode"
)

var (
	// ErrRendererClosed is returned by operations on a closed Renderer.
	ErrRendererClosed = errors.New("speedy: renderer closed")

	// ErrFrameInProgress is returned when DrawFrame is called from inside
	// a draw callback.
	ErrFrameInProgress = errors.New("speedy: frame already in progress")
)

// Renderer draws frames on a Backend. It owns the batcher, the images and
// the glyph atlas, and lends a Graphics to the draw callback of each frame.
//
// Window creates one Renderer for its platform; use NewRenderer directly to
// draw on a backend without a window. A Renderer must be used from a single
// goroutine.
type Renderer struct {
	backend  Backend
	batcher  *batcher
	images   *imageRegistry
	atlas    *glyphAtlas
	graphics Graphics

	viewport UVec2
	scale    float64
	segments int

	closed bool
	stats  BatchStats
}

// NewRenderer creates a Renderer drawing on b, with a viewport of the given
// size in physical pixels and DPI scale factor.
func NewRenderer(b Backend, viewport UVec2, scale float64, opts ...RendererOption) (*Renderer, error) {
	if b == nil {
		return nil, ErrBackendNotAvailable
	}
	cfg := defaultRendererConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if scale <= 0 {
		scale = 1
	}

	r := &Renderer{
		backend:  b,
		batcher:  newBatcher(b),
		images:   newImageRegistry(b),
		atlas:    newGlyphAtlas(b),
		viewport: viewport,
		scale:    scale,
		segments: cfg.roundedCornerSegments,
	}
	r.graphics.r = r

	if err := b.SetViewport(viewport, scale); err != nil {
		return nil, fmt.Errorf("speedy: set viewport on %s backend: %w", b.Name(), err)
	}
	Logger().Info("speedy: renderer created", "backend", b.Name(),
		"width", viewport.X, "height", viewport.Y, "scale", scale)
	return r, nil
}

// Backend returns the backend the renderer draws on.
func (r *Renderer) Backend() Backend {
	return r.backend
}

// ViewportSizePixels returns the viewport size in physical pixels.
func (r *Renderer) ViewportSizePixels() UVec2 {
	return r.viewport
}

// ScaleFactor returns the DPI scale factor.
func (r *Renderer) ScaleFactor() float64 {
	return r.scale
}

// SetViewportSizePixels resizes the viewport.
func (r *Renderer) SetViewportSizePixels(size UVec2) error {
	if r.closed {
		return ErrRendererClosed
	}
	if size == r.viewport {
		return nil
	}
	if err := r.backend.SetViewport(size, r.scale); err != nil {
		return fmt.Errorf("speedy: resize viewport: %w", err)
	}
	r.viewport = size
	return nil
}

// SetScaleFactor changes the DPI scale factor. Values <= 0 are ignored.
func (r *Renderer) SetScaleFactor(scale float64) error {
	if r.closed {
		return ErrRendererClosed
	}
	if scale <= 0 || scale == r.scale {
		return nil
	}
	if err := r.backend.SetViewport(r.viewport, scale); err != nil {
		return fmt.Errorf("speedy: set scale factor: %w", err)
	}
	r.scale = scale
	return nil
}

// LastFrameStats returns the batch statistics of the last frame.
func (r *Renderer) LastFrameStats() BatchStats {
	return r.stats
}

// projection returns the pixel-perfect projection for the current viewport.
func (r *Renderer) projection() Mat4 {
	return PixelPerfectProjection(r.viewport, r.scale)
}

// DrawFrame opens a frame, calls fn with the frame's Graphics, then flushes
// all pending geometry and presents. The Graphics must not be used after fn
// returns.
func (r *Renderer) DrawFrame(fn func(g *Graphics)) error {
	if r.closed {
		return ErrRendererClosed
	}
	if r.graphics.inFrame {
		return ErrFrameInProgress
	}
	if err := r.beginFrame(); err != nil {
		return err
	}
	fn(&r.graphics)
	return r.endFrame()
}

func (r *Renderer) beginFrame() error {
	r.batcher.reset()
	if err := r.backend.BeginFrame(); err != nil {
		return fmt.Errorf("speedy: begin frame: %w", err)
	}
	r.backend.SetProjection(r.projection())
	r.graphics.begin()
	return nil
}

func (r *Renderer) endFrame() error {
	r.graphics.end()
	r.batcher.flush()
	r.backend.SetProjection(r.projection())
	presentErr := r.backend.Present()

	r.stats = r.batcher.stats
	Logger().Debug("speedy: frame flushed",
		"batches", r.stats.Batches, "triangles", r.stats.Triangles)

	if r.batcher.err != nil {
		return fmt.Errorf("speedy: draw batch: %w", r.batcher.err)
	}
	if presentErr != nil {
		return fmt.Errorf("speedy: present: %w", presentErr)
	}
	return nil
}

// CreateImageFromRawPixels uploads packed pixels as a new image.
func (r *Renderer) CreateImageFromRawPixels(format ImageDataType, smoothing ImageSmoothingMode, size UVec2, data []byte) (*ImageHandle, error) {
	return r.images.createFromRawPixels(format, smoothing, size, data)
}

// CreateImageFromFileBytes decodes an encoded image and uploads it.
func (r *Renderer) CreateImageFromFileBytes(hint imagedecode.Format, smoothing ImageSmoothingMode, data []byte) (*ImageHandle, error) {
	return r.images.createFromFileBytes(hint, smoothing, data)
}

// CreateImageFromFilePath reads, decodes and uploads an image file.
func (r *Renderer) CreateImageFromFilePath(hint imagedecode.Format, smoothing ImageSmoothingMode, path string) (*ImageHandle, error) {
	return r.images.createFromFilePath(path, hint, smoothing)
}

// Close destroys all images and the glyph atlas, then closes the backend.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.images.close()
	r.atlas.close()
	return r.backend.Close()
}
