// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"image"
	"math"

	"github.com/gogpu/speedy"
)

// fragmentVertex is a vertex with its position in physical pixels.
type fragmentVertex struct {
	x, y   float64
	vertex speedy.Vertex
}

// rasterizer fills triangles into target, limited to bounds.
type rasterizer struct {
	target *image.NRGBA
	bounds image.Rectangle
	tex    *texture
}

func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// topLeft reports whether a pixel center lying exactly on the edge a->b
// belongs to the triangle. Each shared edge is walked in opposite
// directions by its two triangles, so exactly one of them owns it.
func topLeft(a, b fragmentVertex) bool {
	dx, dy := b.x-a.x, b.y-a.y
	return dy > 0 || (dy == 0 && dx < 0)
}

func inside(w float64, owns bool) bool {
	return w > 0 || (w == 0 && owns)
}

func (r *rasterizer) triangle(t [3]fragmentVertex) {
	area := edge(t[0].x, t[0].y, t[1].x, t[1].y, t[2].x, t[2].y)
	if area == 0 || math.IsNaN(area) {
		return
	}
	if area < 0 {
		t[1], t[2] = t[2], t[1]
		area = -area
	}

	minX := math.Floor(min(t[0].x, t[1].x, t[2].x))
	minY := math.Floor(min(t[0].y, t[1].y, t[2].y))
	maxX := math.Ceil(max(t[0].x, t[1].x, t[2].x))
	maxY := math.Ceil(max(t[0].y, t[1].y, t[2].y))
	box := image.Rect(int(minX), int(minY), int(maxX), int(maxY)).Intersect(r.bounds)
	if box.Empty() {
		return
	}

	own0 := topLeft(t[1], t[2])
	own1 := topLeft(t[2], t[0])
	own2 := topLeft(t[0], t[1])

	for y := box.Min.Y; y < box.Max.Y; y++ {
		py := float64(y) + 0.5
		for x := box.Min.X; x < box.Max.X; x++ {
			px := float64(x) + 0.5
			w0 := edge(t[1].x, t[1].y, t[2].x, t[2].y, px, py)
			w1 := edge(t[2].x, t[2].y, t[0].x, t[0].y, px, py)
			w2 := edge(t[0].x, t[0].y, t[1].x, t[1].y, px, py)
			if !inside(w0, own0) || !inside(w1, own1) || !inside(w2, own2) {
				continue
			}
			r.shade(x, y, t, float32(w0/area), float32(w1/area), float32(w2/area))
		}
	}
}

// shade computes the fragment color at barycentric (b0, b1, b2) and blends
// it into the target.
func (r *rasterizer) shade(x, y int, t [3]fragmentVertex, b0, b1, b2 float32) {
	v0, v1, v2 := &t[0].vertex, &t[1].vertex, &t[2].vertex

	mix := v0.CircleMix*b0 + v1.CircleMix*b1 + v2.CircleMix*b2
	if mix > 0 {
		cx := v0.CircleCoord.X*b0 + v1.CircleCoord.X*b1 + v2.CircleCoord.X*b2
		cy := v0.CircleCoord.Y*b0 + v1.CircleCoord.Y*b1 + v2.CircleCoord.Y*b2
		if cx*cx+cy*cy > 1 {
			return
		}
	}

	c := speedy.Color{
		R: v0.Color.R*b0 + v1.Color.R*b1 + v2.Color.R*b2,
		G: v0.Color.G*b0 + v1.Color.G*b1 + v2.Color.G*b2,
		B: v0.Color.B*b0 + v1.Color.B*b1 + v2.Color.B*b2,
		A: v0.Color.A*b0 + v1.Color.A*b1 + v2.Color.A*b2,
	}
	if r.tex != nil {
		u := v0.TexCoord.X*b0 + v1.TexCoord.X*b1 + v2.TexCoord.X*b2
		v := v0.TexCoord.Y*b0 + v1.TexCoord.Y*b1 + v2.TexCoord.Y*b2
		c = c.Mul(r.tex.sample(u, v))
	}
	blend(r.target.Pix[r.target.PixOffset(x, y):], c)
}

// blend composites c over the pixel at dst[0:4].
func blend(dst []byte, c speedy.Color) {
	sa := clamp(c.A)
	if sa <= 0 {
		return
	}
	inv := 1 - sa
	dst[0] = toByte(clamp(c.R)*sa + float32(dst[0])/255*inv)
	dst[1] = toByte(clamp(c.G)*sa + float32(dst[1])/255*inv)
	dst[2] = toByte(clamp(c.B)*sa + float32(dst[2])/255*inv)
	dst[3] = toByte(sa + float32(dst[3])/255*inv)
}

// sample reads the texture at normalized coordinates with clamp-to-edge
// addressing.
func (t *texture) sample(u, v float32) speedy.Color {
	w, h := int(t.size.X), int(t.size.Y)
	if w == 0 || h == 0 {
		return speedy.Color{}
	}
	fx := float64(u) * float64(w)
	fy := float64(v) * float64(h)

	if t.smoothing == speedy.ImageSmoothingNearestNeighbor {
		return t.texel(int(math.Floor(fx)), int(math.Floor(fy)))
	}

	fx -= 0.5
	fy -= 0.5
	x0, y0 := math.Floor(fx), math.Floor(fy)
	tx, ty := float32(fx-x0), float32(fy-y0)
	ix, iy := int(x0), int(y0)

	c00 := t.texel(ix, iy)
	c10 := t.texel(ix+1, iy)
	c01 := t.texel(ix, iy+1)
	c11 := t.texel(ix+1, iy+1)
	return lerpColor(lerpColor(c00, c10, tx), lerpColor(c01, c11, tx), ty)
}

func (t *texture) texel(x, y int) speedy.Color {
	x = max(0, min(x, int(t.size.X)-1))
	y = max(0, min(y, int(t.size.Y)-1))
	i := (y*int(t.size.X) + x) * 4
	p := t.pix[i : i+4]
	return speedy.RGBA8(p[0], p[1], p[2], p[3])
}

func lerpColor(a, b speedy.Color, t float32) speedy.Color {
	return speedy.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

func clamp(x float32) float32 {
	if x < 0 || x != x {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func toByte(x float32) uint8 {
	return uint8(clamp(x)*255 + 0.5)
}
