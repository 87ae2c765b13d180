// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/speedy"
)

// vertexStride is the size of one encoded vertex:
//
//	position     vec2<f32>  offset 0
//	color        vec4<f32>  offset 8
//	tex_coord    vec2<f32>  offset 24
//	circle_coord vec2<f32>  offset 32
//	circle_mix   f32        offset 40
const vertexStride = 44

// batchVertexLayout matches VertexInput in batch.wgsl.
func batchVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x4, Offset: 8, ShaderLocation: 1},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
				{Format: gputypes.VertexFormatFloat32x2, Offset: 32, ShaderLocation: 3},
				{Format: gputypes.VertexFormatFloat32, Offset: 40, ShaderLocation: 4},
			},
		},
	}
}

// appendVertices encodes verts after transforming their positions by proj
// and returns the extended buffer.
func appendVertices(dst []byte, verts []speedy.Vertex, proj speedy.Mat4) []byte {
	var buf [vertexStride]byte
	for _, v := range verts {
		p := proj.TransformPoint(v.Position)
		putFloats(buf[:],
			p.X, p.Y,
			v.Color.R, v.Color.G, v.Color.B, v.Color.A,
			v.TexCoord.X, v.TexCoord.Y,
			v.CircleCoord.X, v.CircleCoord.Y,
			v.CircleMix,
		)
		dst = append(dst, buf[:]...)
	}
	return dst
}

func putFloats(dst []byte, fs ...float32) {
	for i, f := range fs {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(f))
	}
}

// appendIndices encodes indices as little-endian uint32.
func appendIndices(dst []byte, indices []uint32) []byte {
	for _, i := range indices {
		dst = binary.LittleEndian.AppendUint32(dst, i)
	}
	return dst
}
