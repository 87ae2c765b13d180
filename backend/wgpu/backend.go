// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"
	"image"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/speedy"
	"github.com/gogpu/speedy/backend"
	"github.com/gogpu/wgpu/hal"
)

// Errors returned by the wgpu backend.
var (
	// ErrClosed is returned by operations on a closed backend.
	ErrClosed = errors.New("wgpu: backend closed")

	// ErrUnknownTexture is returned for texture IDs that were never created
	// or have been destroyed.
	ErrUnknownTexture = errors.New("wgpu: unknown texture")
)

// Name is the name the backend registers under.
const Name = backend.BackendWGPU

func init() {
	backend.Register(Name, 10, func(cfg backend.Config) (speedy.Backend, error) {
		return New(Config{Size: cfg.Size, Scale: cfg.Scale})
	})
}

// texture is a sampled GPU texture with its bind group.
type texture struct {
	tex   hal.Texture
	view  hal.TextureView
	group hal.BindGroup
	size  speedy.UVec2
}

// drawOp is one recorded batch: a range of the frame's index buffer.
type drawOp struct {
	texture    speedy.TextureID
	clip       image.Rectangle
	clipped    bool
	firstIndex uint32
	indexCount uint32
	baseVertex int32
}

// Backend renders batches with a hal device into an offscreen texture.
//
// Backend is not safe for concurrent use.
type Backend struct {
	dev  *gpuDevice
	pipe *batchPipeline

	size  speedy.UVec2
	scale float64

	target     hal.Texture
	targetView hal.TextureView

	white    *texture
	textures map[speedy.TextureID]*texture
	nextID   speedy.TextureID
	doomed   []speedy.TextureID

	// Recorded frame.
	proj       speedy.Mat4
	verts      []speedy.Vertex
	indices    []uint32
	ops        []drawOp
	clearColor *speedy.Color

	vbuf, ibuf     hal.Buffer
	vcap, icap     uint64
	vbytes, ibytes []byte

	frames uint64
	closed bool
}

// New opens a device on the first usable hal backend and creates a
// backend drawing into a target of cfg.Size physical pixels.
func New(cfg Config) (*Backend, error) {
	dev, err := openDevice(cfg.Backends)
	if err != nil {
		return nil, err
	}
	b, err := newBackend(dev, cfg.Size, cfg.Scale)
	if err != nil {
		dev.destroy()
		return nil, err
	}
	speedy.Logger().Info("wgpu: device opened",
		"backend", dev.variant.String(),
		"adapter", dev.info.Name,
		"driver", dev.info.Driver)
	return b, nil
}

// NewFromDevice creates a backend on a device owned by the caller. Close
// releases the backend's resources but leaves the device open.
func NewFromDevice(device hal.Device, queue hal.Queue, size speedy.UVec2, scale float64) (*Backend, error) {
	if device == nil || queue == nil {
		return nil, fmt.Errorf("wgpu: nil device or queue")
	}
	return newBackend(&gpuDevice{device: device, queue: queue}, size, scale)
}

// NewFromProvider creates a backend on the device of a host application.
// The provider must implement HalDevice() any and HalQueue() any, returning
// a hal.Device and hal.Queue.
func NewFromProvider(provider any, size speedy.UVec2, scale float64) (*Backend, error) {
	dev, err := deviceFromProvider(provider)
	if err != nil {
		return nil, err
	}
	return newBackend(dev, size, scale)
}

func newBackend(dev *gpuDevice, size speedy.UVec2, scale float64) (*Backend, error) {
	if scale <= 0 {
		scale = 1
	}
	pipe, err := newBatchPipeline(dev.device, dev.variant)
	if err != nil {
		return nil, err
	}
	b := &Backend{
		dev:      dev,
		pipe:     pipe,
		size:     size,
		scale:    scale,
		textures: make(map[speedy.TextureID]*texture),
		proj:     speedy.PixelPerfectProjection(size, scale),
	}
	if err := b.createTarget(); err != nil {
		b.release()
		return nil, err
	}
	b.white, err = b.newTexture(speedy.TextureDescriptor{Size: speedy.UVec2{X: 1, Y: 1}},
		[]byte{255, 255, 255, 255})
	if err != nil {
		b.release()
		return nil, fmt.Errorf("wgpu: create white texture: %w", err)
	}
	return b, nil
}

// Name returns "wgpu".
func (b *Backend) Name() string { return Name }

// AdapterInfo describes the adapter the backend renders with. It is zero
// for devices passed in by the host.
func (b *Backend) AdapterInfo() gputypes.AdapterInfo { return b.dev.info }

// createTarget allocates the render target. A zero size is clamped to one
// pixel; nothing is drawn or read back at zero size.
func (b *Backend) createTarget() error {
	w, h := max(b.size.X, 1), max(b.size.Y, 1)
	tex, err := b.dev.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "speedy_target",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        targetFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create render target: %w", err)
	}
	view, err := b.dev.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "speedy_target_view",
		Format:        targetFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		b.dev.device.DestroyTexture(tex)
		return fmt.Errorf("wgpu: create render target view: %w", err)
	}
	b.target, b.targetView = tex, view
	return nil
}

func (b *Backend) destroyTarget() {
	if b.targetView != nil {
		b.dev.device.DestroyTextureView(b.targetView)
		b.targetView = nil
	}
	if b.target != nil {
		b.dev.device.DestroyTexture(b.target)
		b.target = nil
	}
}

// newTexture creates a sampled texture and uploads rgba into it.
func (b *Backend) newTexture(desc speedy.TextureDescriptor, rgba []byte) (*texture, error) {
	want := int(desc.Size.X) * int(desc.Size.Y) * 4
	if len(rgba) != want {
		return nil, fmt.Errorf("wgpu: texture data is %d bytes, want %d", len(rgba), want)
	}
	if want == 0 {
		return nil, fmt.Errorf("wgpu: empty texture %dx%d", desc.Size.X, desc.Size.Y)
	}

	d := b.dev.device
	tex, err := d.CreateTexture(&hal.TextureDescriptor{
		Label:         "speedy_image",
		Size:          hal.Extent3D{Width: desc.Size.X, Height: desc.Size.Y, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture: %w", err)
	}
	view, err := d.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "speedy_image_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		d.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create texture view: %w", err)
	}
	group, err := b.pipe.bindGroup(view, desc.Smoothing)
	if err != nil {
		d.DestroyTextureView(view)
		d.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: %w", err)
	}

	t := &texture{tex: tex, view: view, group: group, size: desc.Size}
	if err := b.write(t, image.Rect(0, 0, int(desc.Size.X), int(desc.Size.Y)), rgba); err != nil {
		b.destroyTexture(t)
		return nil, err
	}
	return t, nil
}

func (b *Backend) write(t *texture, region image.Rectangle, rgba []byte) error {
	w, h := uint32(region.Dx()), uint32(region.Dy())
	err := b.dev.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture: t.tex,
			Origin:  hal.Origin3D{X: uint32(region.Min.X), Y: uint32(region.Min.Y)},
			Aspect:  gputypes.TextureAspectAll,
		},
		rgba,
		&hal.ImageDataLayout{BytesPerRow: w * 4, RowsPerImage: h},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("wgpu: upload texture: %w", err)
	}
	return nil
}

func (b *Backend) destroyTexture(t *texture) {
	d := b.dev.device
	d.DestroyBindGroup(t.group)
	d.DestroyTextureView(t.view)
	d.DestroyTexture(t.tex)
}

// CreateTexture uploads rgba into a new texture.
func (b *Backend) CreateTexture(desc speedy.TextureDescriptor, rgba []byte) (speedy.TextureID, error) {
	if b.closed {
		return 0, ErrClosed
	}
	t, err := b.newTexture(desc, rgba)
	if err != nil {
		return 0, err
	}
	b.nextID++
	b.textures[b.nextID] = t
	return b.nextID, nil
}

// UpdateTexture overwrites region of a texture with rgba.
func (b *Backend) UpdateTexture(id speedy.TextureID, region image.Rectangle, rgba []byte) error {
	if b.closed {
		return ErrClosed
	}
	t, ok := b.textures[id]
	if !ok || slices.Contains(b.doomed, id) {
		return fmt.Errorf("%w: %d", ErrUnknownTexture, id)
	}
	bounds := image.Rect(0, 0, int(t.size.X), int(t.size.Y))
	if region.Empty() || !region.In(bounds) {
		return fmt.Errorf("wgpu: region %v outside texture %v", region, bounds)
	}
	if want := region.Dx() * region.Dy() * 4; len(rgba) != want {
		return fmt.Errorf("wgpu: region data is %d bytes, want %d", len(rgba), want)
	}
	return b.write(t, region, rgba)
}

// DestroyTexture frees a texture. A texture referenced by recorded draws
// stays alive until they have executed. Unknown IDs are ignored.
func (b *Backend) DestroyTexture(id speedy.TextureID) {
	t, ok := b.textures[id]
	if !ok || slices.Contains(b.doomed, id) {
		return
	}
	for _, op := range b.ops {
		if op.texture == id {
			b.doomed = append(b.doomed, id)
			return
		}
	}
	delete(b.textures, id)
	b.destroyTexture(t)
}

// SetViewport resizes the render target. Contents are discarded when the
// size changes.
func (b *Backend) SetViewport(size speedy.UVec2, scale float64) error {
	if b.closed {
		return ErrClosed
	}
	b.scale = scale
	if size == b.size {
		return nil
	}
	b.destroyTarget()
	b.size = size
	return b.createTarget()
}

// BeginFrame starts recording a frame.
func (b *Backend) BeginFrame() error {
	if b.closed {
		return ErrClosed
	}
	b.reset()
	return nil
}

// SetProjection sets the projection used when the frame is executed.
func (b *Backend) SetProjection(m speedy.Mat4) {
	b.proj = m
}

// Clear drops everything recorded so far and clears the target to c when
// the frame executes.
func (b *Backend) Clear(c speedy.Color) {
	b.verts = b.verts[:0]
	b.indices = b.indices[:0]
	b.ops = b.ops[:0]
	b.clearColor = &c
}

// Draw records a batch.
func (b *Backend) Draw(batch *speedy.Batch) error {
	if b.closed {
		return ErrClosed
	}
	if len(batch.Indices) == 0 {
		return nil
	}
	if batch.Texture != 0 {
		if _, ok := b.textures[batch.Texture]; !ok || slices.Contains(b.doomed, batch.Texture) {
			return fmt.Errorf("%w: %d", ErrUnknownTexture, batch.Texture)
		}
	}

	op := drawOp{
		texture:    batch.Texture,
		firstIndex: uint32(len(b.indices)),
		indexCount: uint32(len(batch.Indices)),
		baseVertex: int32(len(b.verts)),
	}
	if batch.Clip != nil {
		op.clipped = true
		op.clip = image.Rect(int(batch.Clip.TopLeft.X), int(batch.Clip.TopLeft.Y),
			int(batch.Clip.BottomRight.X), int(batch.Clip.BottomRight.Y))
	}
	b.verts = append(b.verts, batch.Vertices...)
	b.indices = append(b.indices, batch.Indices...)
	b.ops = append(b.ops, op)
	return nil
}

// Present executes the recorded frame.
func (b *Backend) Present() error {
	if b.closed {
		return ErrClosed
	}
	if err := b.flush(); err != nil {
		return err
	}
	b.frames++
	return nil
}

// Frames returns the number of frames presented.
func (b *Backend) Frames() uint64 { return b.frames }

// Capture executes the recorded work and reads back the render target.
func (b *Backend) Capture() (*speedy.RawBitmapData, error) {
	if b.closed {
		return nil, ErrClosed
	}
	if err := b.flush(); err != nil {
		return nil, err
	}
	data, err := b.readback()
	if err != nil {
		return nil, err
	}
	return &speedy.RawBitmapData{Data: data, Size: b.size, Format: speedy.ImageDataTypeRGBA}, nil
}

// Close releases all GPU resources, and the device if New opened it.
func (b *Backend) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.release()
	b.dev.destroy()
	return nil
}

func (b *Backend) release() {
	for id, t := range b.textures {
		b.destroyTexture(t)
		delete(b.textures, id)
	}
	b.doomed = nil
	if b.white != nil {
		b.destroyTexture(b.white)
		b.white = nil
	}
	if b.vbuf != nil {
		b.dev.device.DestroyBuffer(b.vbuf)
		b.vbuf, b.vcap = nil, 0
	}
	if b.ibuf != nil {
		b.dev.device.DestroyBuffer(b.ibuf)
		b.ibuf, b.icap = nil, 0
	}
	b.destroyTarget()
	b.pipe.destroy()
}

// reset drops the recorded frame and frees textures destroyed during it.
func (b *Backend) reset() {
	b.verts = b.verts[:0]
	b.indices = b.indices[:0]
	b.ops = b.ops[:0]
	b.clearColor = nil
	for _, id := range b.doomed {
		if t, ok := b.textures[id]; ok {
			delete(b.textures, id)
			b.destroyTexture(t)
		}
	}
	b.doomed = b.doomed[:0]
}
