// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software implements speedy.Backend on the CPU.
//
// Triangles are rasterized at pixel centers without anti-aliasing, using a
// top-left fill rule so that triangles sharing an edge never cover the same
// pixel twice. Blending matches the GPU backends:
//
//	rgb = src.rgb*src.a + dst.rgb*(1-src.a)
//	a   = src.a + dst.a*(1-src.a)
//
// The backend needs no window and is registered with the backend package
// under the name "software".
package software

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/speedy"
	"github.com/gogpu/speedy/backend"
)

// Errors returned by the software backend.
var (
	// ErrClosed is returned by operations on a closed backend.
	ErrClosed = errors.New("software: backend closed")

	// ErrUnknownTexture is returned for texture IDs that were never created
	// or have been destroyed.
	ErrUnknownTexture = errors.New("software: unknown texture")
)

func init() {
	backend.Register(backend.BackendSoftware, 0, func(cfg backend.Config) (speedy.Backend, error) {
		return New(cfg.Size, cfg.ScaleFactor()), nil
	})
}

type texture struct {
	size      speedy.UVec2
	pix       []byte
	smoothing speedy.ImageSmoothingMode
}

// Backend is a CPU rasterizer drawing into an RGBA framebuffer.
//
// Backend is not safe for concurrent use, except for Frame which may be
// called from any goroutine.
type Backend struct {
	size  speedy.UVec2
	scale float64

	target   *image.NRGBA
	front    frontBuffer
	textures map[speedy.TextureID]*texture
	nextID   speedy.TextureID
	proj     speedy.Mat4
	closed   bool
}

// New creates a backend with a framebuffer of the given physical size.
func New(size speedy.UVec2, scale float64) *Backend {
	if scale <= 0 {
		scale = 1
	}
	return &Backend{
		size:     size,
		scale:    scale,
		target:   image.NewNRGBA(image.Rect(0, 0, int(size.X), int(size.Y))),
		textures: make(map[speedy.TextureID]*texture),
		proj:     speedy.PixelPerfectProjection(size, scale),
	}
}

// Name returns "software".
func (b *Backend) Name() string { return backend.BackendSoftware }

// CreateTexture stores a copy of rgba.
func (b *Backend) CreateTexture(desc speedy.TextureDescriptor, rgba []byte) (speedy.TextureID, error) {
	if b.closed {
		return 0, ErrClosed
	}
	want := int(desc.Size.X) * int(desc.Size.Y) * 4
	if len(rgba) != want {
		return 0, fmt.Errorf("software: texture data is %d bytes, want %d", len(rgba), want)
	}
	b.nextID++
	pix := make([]byte, want)
	copy(pix, rgba)
	b.textures[b.nextID] = &texture{size: desc.Size, pix: pix, smoothing: desc.Smoothing}
	return b.nextID, nil
}

// UpdateTexture overwrites region of a texture with rgba.
func (b *Backend) UpdateTexture(id speedy.TextureID, region image.Rectangle, rgba []byte) error {
	t, ok := b.textures[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTexture, id)
	}
	bounds := image.Rect(0, 0, int(t.size.X), int(t.size.Y))
	if region.Empty() || !region.In(bounds) {
		return fmt.Errorf("software: region %v outside texture %v", region, bounds)
	}
	w := region.Dx()
	if len(rgba) != w*region.Dy()*4 {
		return fmt.Errorf("software: region data is %d bytes, want %d", len(rgba), w*region.Dy()*4)
	}
	stride := int(t.size.X) * 4
	for y := 0; y < region.Dy(); y++ {
		dst := (region.Min.Y+y)*stride + region.Min.X*4
		copy(t.pix[dst:dst+w*4], rgba[y*w*4:(y+1)*w*4])
	}
	return nil
}

// DestroyTexture frees a texture. Unknown IDs are ignored.
func (b *Backend) DestroyTexture(id speedy.TextureID) {
	delete(b.textures, id)
}

// SetViewport resizes the framebuffer. Contents are discarded when the size
// changes.
func (b *Backend) SetViewport(size speedy.UVec2, scale float64) error {
	if b.closed {
		return ErrClosed
	}
	if size != b.size {
		b.target = image.NewNRGBA(image.Rect(0, 0, int(size.X), int(size.Y)))
	}
	b.size, b.scale = size, scale
	return nil
}

// BeginFrame starts a frame. The framebuffer keeps the previous contents.
func (b *Backend) BeginFrame() error {
	if b.closed {
		return ErrClosed
	}
	return nil
}

// SetProjection sets the matrix applied to subsequent draws.
func (b *Backend) SetProjection(m speedy.Mat4) {
	b.proj = m
}

// Clear fills the whole framebuffer with c, ignoring any clip.
func (b *Backend) Clear(c speedy.Color) {
	n := c.NRGBA()
	px := [4]byte{n.R, n.G, n.B, n.A}
	for i := 0; i < len(b.target.Pix); i += 4 {
		copy(b.target.Pix[i:i+4], px[:])
	}
}

// Draw rasterizes a batch immediately.
func (b *Backend) Draw(batch *speedy.Batch) error {
	if b.closed {
		return ErrClosed
	}
	var tex *texture
	if batch.Texture != 0 {
		t, ok := b.textures[batch.Texture]
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownTexture, batch.Texture)
		}
		tex = t
	}

	r := rasterizer{
		target: b.target,
		bounds: b.target.Rect,
		tex:    tex,
	}
	if batch.Clip != nil {
		clip := image.Rect(int(batch.Clip.TopLeft.X), int(batch.Clip.TopLeft.Y),
			int(batch.Clip.BottomRight.X), int(batch.Clip.BottomRight.Y))
		r.bounds = r.bounds.Intersect(clip)
		if r.bounds.Empty() {
			return nil
		}
	}

	w, h := float64(b.size.X), float64(b.size.Y)
	var tri [3]fragmentVertex
	for i := 0; i+2 < len(batch.Indices); i += 3 {
		for k := range 3 {
			v := batch.Vertices[batch.Indices[i+k]]
			ndc := b.proj.TransformPoint(v.Position)
			tri[k] = fragmentVertex{
				x:      (float64(ndc.X) + 1) * 0.5 * w,
				y:      (1 - float64(ndc.Y)) * 0.5 * h,
				vertex: v,
			}
		}
		r.triangle(tri)
	}
	return nil
}

// Present publishes the framebuffer so that Frame returns it.
func (b *Backend) Present() error {
	if b.closed {
		return ErrClosed
	}
	b.front.store(b.target)
	return nil
}

// Capture returns a copy of the framebuffer as tightly packed RGBA.
func (b *Backend) Capture() (*speedy.RawBitmapData, error) {
	if b.closed {
		return nil, ErrClosed
	}
	data := make([]byte, len(b.target.Pix))
	copy(data, b.target.Pix)
	return &speedy.RawBitmapData{Data: data, Size: b.size, Format: speedy.ImageDataTypeRGBA}, nil
}

// Frame returns a copy of the most recently presented frame, or nil if
// nothing has been presented yet.
func (b *Backend) Frame() *image.NRGBA {
	return b.front.load()
}

// Frames returns the number of frames presented.
func (b *Backend) Frames() uint64 {
	return b.front.count()
}

// Close frees all textures.
func (b *Backend) Close() error {
	b.closed = true
	clear(b.textures)
	return nil
}
