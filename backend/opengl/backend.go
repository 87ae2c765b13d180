// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package opengl

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/speedy"
)

// Errors returned by the OpenGL backend.
var (
	// ErrClosed is returned by operations on a closed backend.
	ErrClosed = errors.New("opengl: backend closed")

	// ErrUnknownTexture is returned for texture IDs that were never created
	// or have been destroyed.
	ErrUnknownTexture = errors.New("opengl: unknown texture")
)

// Name is the backend name.
const Name = "opengl"

type texture struct {
	handle uint32
	size   speedy.UVec2
}

// Backend draws batches with OpenGL into an offscreen framebuffer.
//
// Backend must only be used on the goroutine owning the GL context.
type Backend struct {
	swap func()

	size  speedy.UVec2
	scale float64
	proj  speedy.Mat4

	program  uint32
	vao      uint32
	vbo, ibo uint32
	fbo      uint32
	color    uint32

	white    uint32
	textures map[speedy.TextureID]*texture
	nextID   speedy.TextureID

	floats []float32
	closed bool
}

// New creates a backend on the current GL context. swap is called by
// Present after the frame has been copied to the default framebuffer; it
// may be nil for offscreen use.
func New(size speedy.UVec2, scale float64, swap func()) (*Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("opengl: init: %w", err)
	}
	if scale <= 0 {
		scale = 1
	}
	b := &Backend{
		swap:     swap,
		size:     size,
		scale:    scale,
		proj:     speedy.PixelPerfectProjection(size, scale),
		textures: make(map[speedy.TextureID]*texture),
	}

	program, err := linkProgram()
	if err != nil {
		return nil, err
	}
	b.program = program

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.GenBuffers(1, &b.ibo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ibo)

	const stride = floatsPerVertex * 4
	attribs := []struct {
		size   int32
		offset uintptr
	}{
		{2, 0},  // position
		{4, 8},  // color
		{2, 24}, // tex_coord
		{2, 32}, // circle_coord
		{1, 40}, // circle_mix
	}
	for i, a := range attribs {
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointerWithOffset(uint32(i), a.size, gl.FLOAT, false, stride, a.offset)
	}

	b.white = newGLTexture(1, 1, speedy.ImageSmoothingNearestNeighbor, []byte{255, 255, 255, 255})
	b.createFramebuffer()
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		b.release()
		return nil, fmt.Errorf("opengl: framebuffer incomplete: 0x%x", status)
	}

	gl.Enable(gl.BLEND)
	gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.SCISSOR_TEST)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)

	speedy.Logger().Info("opengl: context ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return b, nil
}

// Name returns "opengl".
func (b *Backend) Name() string { return Name }

func newGLTexture(w, h int32, smoothing speedy.ImageSmoothingMode, rgba []byte) uint32 {
	var handle uint32
	gl.GenTextures(1, &handle)
	gl.BindTexture(gl.TEXTURE_2D, handle)
	filter := int32(gl.NEAREST)
	if smoothing == speedy.ImageSmoothingLinear {
		filter = gl.LINEAR
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
	return handle
}

// createFramebuffer allocates the offscreen target and leaves it bound.
func (b *Backend) createFramebuffer() {
	w, h := int32(max(b.size.X, 1)), int32(max(b.size.Y, 1))
	gl.GenTextures(1, &b.color)
	gl.BindTexture(gl.TEXTURE_2D, b.color)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	gl.GenFramebuffers(1, &b.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, b.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, b.color, 0)
	gl.Viewport(0, 0, w, h)
}

func (b *Backend) deleteFramebuffer() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.DeleteFramebuffers(1, &b.fbo)
	gl.DeleteTextures(1, &b.color)
	b.fbo, b.color = 0, 0
}

// CreateTexture uploads rgba into a new texture.
func (b *Backend) CreateTexture(desc speedy.TextureDescriptor, rgba []byte) (speedy.TextureID, error) {
	if b.closed {
		return 0, ErrClosed
	}
	want := int(desc.Size.X) * int(desc.Size.Y) * 4
	if len(rgba) != want || want == 0 {
		return 0, fmt.Errorf("opengl: texture data is %d bytes, want %d", len(rgba), want)
	}
	handle := newGLTexture(int32(desc.Size.X), int32(desc.Size.Y), desc.Smoothing, rgba)
	b.nextID++
	b.textures[b.nextID] = &texture{handle: handle, size: desc.Size}
	return b.nextID, nil
}

// UpdateTexture overwrites region of a texture with rgba.
func (b *Backend) UpdateTexture(id speedy.TextureID, region image.Rectangle, rgba []byte) error {
	if b.closed {
		return ErrClosed
	}
	t, ok := b.textures[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTexture, id)
	}
	bounds := image.Rect(0, 0, int(t.size.X), int(t.size.Y))
	if region.Empty() || !region.In(bounds) {
		return fmt.Errorf("opengl: region %v outside texture %v", region, bounds)
	}
	if want := region.Dx() * region.Dy() * 4; len(rgba) != want {
		return fmt.Errorf("opengl: region data is %d bytes, want %d", len(rgba), want)
	}
	gl.BindTexture(gl.TEXTURE_2D, t.handle)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, int32(region.Min.X), int32(region.Min.Y),
		int32(region.Dx()), int32(region.Dy()), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
	return nil
}

// DestroyTexture deletes a texture. Draws already issued are unaffected.
func (b *Backend) DestroyTexture(id speedy.TextureID) {
	t, ok := b.textures[id]
	if !ok {
		return
	}
	delete(b.textures, id)
	gl.DeleteTextures(1, &t.handle)
}

// SetViewport resizes the offscreen target. Contents are discarded when
// the size changes.
func (b *Backend) SetViewport(size speedy.UVec2, scale float64) error {
	if b.closed {
		return ErrClosed
	}
	b.scale = scale
	if size == b.size {
		return nil
	}
	b.deleteFramebuffer()
	b.size = size
	b.createFramebuffer()
	return nil
}

// BeginFrame binds the offscreen target.
func (b *Backend) BeginFrame() error {
	if b.closed {
		return ErrClosed
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, b.fbo)
	gl.Viewport(0, 0, int32(b.size.X), int32(b.size.Y))
	gl.UseProgram(b.program)
	gl.BindVertexArray(b.vao)
	return nil
}

// SetProjection sets the matrix applied to subsequent draws.
func (b *Backend) SetProjection(m speedy.Mat4) {
	b.proj = m
}

// Clear fills the whole target with c, ignoring the scissor.
func (b *Backend) Clear(c speedy.Color) {
	gl.Disable(gl.SCISSOR_TEST)
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Enable(gl.SCISSOR_TEST)
}

// Draw uploads and draws a batch.
func (b *Backend) Draw(batch *speedy.Batch) error {
	if b.closed {
		return ErrClosed
	}
	if len(batch.Indices) == 0 {
		return nil
	}
	handle := b.white
	if batch.Texture != 0 {
		t, ok := b.textures[batch.Texture]
		if !ok {
			return fmt.Errorf("%w: %d", ErrUnknownTexture, batch.Texture)
		}
		handle = t.handle
	}

	full := image.Rect(0, 0, int(b.size.X), int(b.size.Y))
	scissor := full
	if c := batch.Clip; c != nil {
		scissor = image.Rect(int(c.TopLeft.X), int(c.TopLeft.Y), int(c.BottomRight.X), int(c.BottomRight.Y)).Intersect(full)
		if scissor.Empty() {
			return nil
		}
	}
	gl.Scissor(scissorRect(scissor, int(b.size.Y)))

	b.floats = appendVertices(b.floats[:0], batch.Vertices, b.proj)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(b.floats)*4, gl.Ptr(b.floats), gl.STREAM_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ibo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(batch.Indices)*4, gl.Ptr(batch.Indices), gl.STREAM_DRAW)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, handle)
	gl.DrawElements(gl.TRIANGLES, int32(len(batch.Indices)), gl.UNSIGNED_INT, gl.PtrOffset(0))
	return nil
}

// Present copies the target to the default framebuffer and swaps.
func (b *Backend) Present() error {
	if b.closed {
		return ErrClosed
	}
	w, h := int32(b.size.X), int32(b.size.Y)
	gl.Disable(gl.SCISSOR_TEST)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, b.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, w, h, 0, 0, w, h, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.Enable(gl.SCISSOR_TEST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, b.fbo)
	if b.swap != nil {
		b.swap()
	}
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("opengl: present: error 0x%x", code)
	}
	return nil
}

// Capture reads back the offscreen target.
func (b *Backend) Capture() (*speedy.RawBitmapData, error) {
	if b.closed {
		return nil, ErrClosed
	}
	w, h := int(b.size.X), int(b.size.Y)
	data := make([]byte, w*h*4)
	if len(data) > 0 {
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, b.fbo)
		gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(data))
		flipRows(data, w*4)
	}
	return &speedy.RawBitmapData{Data: data, Size: b.size, Format: speedy.ImageDataTypeRGBA}, nil
}

// Close deletes all GL objects. The context itself belongs to the
// platform.
func (b *Backend) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.release()
	return nil
}

func (b *Backend) release() {
	for id, t := range b.textures {
		gl.DeleteTextures(1, &t.handle)
		delete(b.textures, id)
	}
	gl.DeleteTextures(1, &b.white)
	b.deleteFramebuffer()
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteBuffers(1, &b.ibo)
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteProgram(b.program)
}
