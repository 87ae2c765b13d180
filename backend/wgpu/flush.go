// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// copyPitchAlignment is the row alignment required for texture to buffer
// copies.
const copyPitchAlignment = 256

// flush executes the recorded draws in one render pass and waits for the
// GPU. It is a no-op when nothing has been recorded.
func (b *Backend) flush() error {
	if len(b.ops) == 0 && b.clearColor == nil {
		return nil
	}
	defer b.reset()
	if b.size.X == 0 || b.size.Y == 0 {
		return nil
	}

	if len(b.ops) > 0 {
		if err := b.upload(); err != nil {
			return err
		}
	}

	encoder, err := b.dev.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "speedy_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("speedy_frame"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	attachment := hal.RenderPassColorAttachment{
		View:    b.targetView,
		LoadOp:  gputypes.LoadOpLoad,
		StoreOp: gputypes.StoreOpStore,
	}
	if c := b.clearColor; c != nil {
		attachment.LoadOp = gputypes.LoadOpClear
		attachment.ClearValue = c.GPU()
	}
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label:            "speedy_batch_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{attachment},
	})
	if len(b.ops) > 0 {
		b.recordDraws(rp)
	}
	rp.End()

	cmd, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer b.dev.device.FreeCommandBuffer(cmd)

	if _, err := b.dev.queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	if err := b.dev.device.WaitIdle(); err != nil {
		return fmt.Errorf("wgpu: wait for GPU: %w", err)
	}
	return nil
}

// upload encodes the recorded vertices with the final projection and
// writes them and the indices to the GPU, growing the buffers as needed.
func (b *Backend) upload() error {
	b.vbytes = appendVertices(b.vbytes[:0], b.verts, b.proj)
	b.ibytes = appendIndices(b.ibytes[:0], b.indices)

	var err error
	b.vbuf, b.vcap, err = b.ensureBuffer(b.vbuf, b.vcap, len(b.vbytes),
		"speedy_vertices", gputypes.BufferUsageVertex)
	if err != nil {
		return err
	}
	b.ibuf, b.icap, err = b.ensureBuffer(b.ibuf, b.icap, len(b.ibytes),
		"speedy_indices", gputypes.BufferUsageIndex)
	if err != nil {
		return err
	}
	if err := b.dev.queue.WriteBuffer(b.vbuf, 0, b.vbytes); err != nil {
		return fmt.Errorf("wgpu: write vertices: %w", err)
	}
	if err := b.dev.queue.WriteBuffer(b.ibuf, 0, b.ibytes); err != nil {
		return fmt.Errorf("wgpu: write indices: %w", err)
	}
	return nil
}

// ensureBuffer returns buf if it holds need bytes, or a replacement at
// least twice its capacity.
func (b *Backend) ensureBuffer(buf hal.Buffer, capacity uint64, need int, label string,
	usage gputypes.BufferUsage) (hal.Buffer, uint64, error) {
	if buf != nil && uint64(need) <= capacity {
		return buf, capacity, nil
	}
	size := max(uint64(need), 2*capacity, 4096)
	next, err := b.dev.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return buf, capacity, fmt.Errorf("wgpu: create %s buffer: %w", label, err)
	}
	if buf != nil {
		b.dev.device.DestroyBuffer(buf)
	}
	return next, size, nil
}

// recordDraws issues one indexed draw per op. Ops clipped to nothing are
// skipped.
func (b *Backend) recordDraws(rp hal.RenderPassEncoder) {
	w, h := b.size.X, b.size.Y
	full := image.Rect(0, 0, int(w), int(h))

	rp.SetPipeline(b.pipe.pipeline)
	rp.SetViewport(0, 0, float32(w), float32(h), 0, 1)
	rp.SetVertexBuffer(0, b.vbuf, 0)
	rp.SetIndexBuffer(b.ibuf, gputypes.IndexFormatUint32, 0)

	for _, op := range b.ops {
		scissor := full
		if op.clipped {
			scissor = op.clip.Intersect(full)
			if scissor.Empty() {
				continue
			}
		}
		rp.SetScissorRect(uint32(scissor.Min.X), uint32(scissor.Min.Y),
			uint32(scissor.Dx()), uint32(scissor.Dy()))

		t := b.white
		if op.texture != 0 {
			t = b.textures[op.texture]
		}
		rp.SetBindGroup(0, t.group, nil)
		rp.DrawIndexed(op.indexCount, 1, op.firstIndex, op.baseVertex, 0)
	}
}

// readback copies the render target to a staging buffer and returns it
// as tightly packed RGBA rows.
func (b *Backend) readback() ([]byte, error) {
	w, h := b.size.X, b.size.Y
	rowBytes := w * 4
	if w == 0 || h == 0 {
		return []byte{}, nil
	}
	alignedRow := (rowBytes + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	size := uint64(alignedRow) * uint64(h)

	d := b.dev.device
	staging, err := d.CreateBuffer(&hal.BufferDescriptor{
		Label: "speedy_capture_staging",
		Size:  size,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create staging buffer: %w", err)
	}
	defer d.DestroyBuffer(staging)

	encoder, err := d.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "speedy_capture_encoder"})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("speedy_capture"); err != nil {
		return nil, fmt.Errorf("wgpu: begin encoding: %w", err)
	}
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: b.target,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(b.target, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{BytesPerRow: alignedRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: b.target, Aspect: gputypes.TextureAspectAll},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: b.target,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})
	cmd, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer d.FreeCommandBuffer(cmd)

	if _, err := b.dev.queue.Submit([]hal.CommandBuffer{cmd}); err != nil {
		return nil, fmt.Errorf("wgpu: submit: %w", err)
	}
	if err := d.WaitIdle(); err != nil {
		return nil, fmt.Errorf("wgpu: wait for GPU: %w", err)
	}

	mapping, err := d.MapBuffer(staging, 0, size)
	if err != nil {
		return nil, fmt.Errorf("wgpu: map staging buffer: %w", err)
	}
	src := unsafe.Slice((*byte)(mapping.Ptr), size)
	out := make([]byte, int(rowBytes)*int(h))
	for y := range int(h) {
		copy(out[y*int(rowBytes):(y+1)*int(rowBytes)], src[y*int(alignedRow):])
	}
	if err := d.UnmapBuffer(staging); err != nil {
		return nil, fmt.Errorf("wgpu: unmap staging buffer: %w", err)
	}
	return out, nil
}
