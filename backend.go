package speedy

import (
	"errors"
	"image"
)

// ErrBackendNotAvailable is returned when a GPU backend cannot be created
// on this system.
var ErrBackendNotAvailable = errors.New("speedy: backend not available")

// TextureID identifies a texture owned by a Backend. Zero means no texture;
// backends sample an opaque white texel for it.
type TextureID uint32

// TextureDescriptor describes a texture to create. Pixel data is always
// tightly packed RGBA8, straight alpha.
type TextureDescriptor struct {
	Size      UVec2
	Smoothing ImageSmoothingMode
}

// Backend is the GPU capability consumed by the Renderer. All methods are
// called from the loop goroutine.
//
// A frame is driven as BeginFrame, SetProjection, any number of Clear and
// Draw calls, SetProjection again, then Present. Backends may defer the
// recorded work until Present or Capture. Implementations live under
// backend/.
type Backend interface {
	// Name returns a short identifier such as "software" or "wgpu".
	Name() string

	// CreateTexture allocates a texture and uploads rgba, which holds
	// desc.Size.X*desc.Size.Y*4 bytes.
	CreateTexture(desc TextureDescriptor, rgba []byte) (TextureID, error)

	// UpdateTexture replaces the pixels of region with rgba.
	UpdateTexture(id TextureID, region image.Rectangle, rgba []byte) error

	// DestroyTexture releases a texture. Unknown ids are ignored.
	DestroyTexture(id TextureID)

	// SetViewport resizes the render target to size physical pixels.
	SetViewport(size UVec2, scale float64) error

	// BeginFrame starts recording a frame.
	BeginFrame() error

	// SetProjection sets the matrix applied to vertex positions. The last
	// value set before Present applies to the whole frame.
	SetProjection(m Mat4)

	// Clear fills the whole viewport with c.
	Clear(c Color)

	// Draw records one batch. The backend must not retain b after returning.
	Draw(b *Batch) error

	// Present executes the recorded frame and displays it.
	Present() error

	// Capture executes the work recorded so far without presenting and
	// reads back the render target as RGBA. Outside a frame it reads back
	// the last presented image.
	Capture() (*RawBitmapData, error)

	// Close releases all GPU resources.
	Close() error
}
