// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package opengl

import (
	"image"

	"github.com/gogpu/speedy"
)

// floatsPerVertex is the number of float32 values in one vertex:
// position(2) color(4) tex_coord(2) circle_coord(2) circle_mix(1).
const floatsPerVertex = 11

// appendVertices appends verts with positions transformed by proj.
func appendVertices(dst []float32, verts []speedy.Vertex, proj speedy.Mat4) []float32 {
	for _, v := range verts {
		p := proj.TransformPoint(v.Position)
		dst = append(dst,
			p.X, p.Y,
			v.Color.R, v.Color.G, v.Color.B, v.Color.A,
			v.TexCoord.X, v.TexCoord.Y,
			v.CircleCoord.X, v.CircleCoord.Y,
			v.CircleMix,
		)
	}
	return dst
}

// scissorRect converts a rectangle with a top-left origin to glScissor
// arguments for a framebuffer of the given height.
func scissorRect(r image.Rectangle, height int) (x, y, w, h int32) {
	return int32(r.Min.X), int32(height - r.Max.Y), int32(r.Dx()), int32(r.Dy())
}

// flipRows reverses the row order of pix in place. glReadPixels returns
// the bottom row first.
func flipRows(pix []byte, stride int) {
	tmp := make([]byte, stride)
	for top, bottom := 0, len(pix)/stride-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pix[top*stride : (top+1)*stride]
		b := pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}
