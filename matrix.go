package speedy

import (
	"encoding/binary"
	"math"
)

// Mat4 is a 4x4 matrix in column-major order, as expected by GPU uniform
// buffers:
//
//	| m[0] m[4] m[8]  m[12] |
//	| m[1] m[5] m[9]  m[13] |
//	| m[2] m[6] m[10] m[14] |
//	| m[3] m[7] m[11] m[15] |
type Mat4 [16]float32

// Identity4 returns the identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Ortho creates an orthographic projection mapping the box
// [left,right]x[bottom,top]x[near,far] onto normalized device coordinates.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	rl := right - left
	tb := top - bottom
	fn := far - near
	return Mat4{
		2 / rl, 0, 0, 0,
		0, 2 / tb, 0, 0,
		0, 0, -2 / fn, 0,
		-(right + left) / rl, -(top + bottom) / tb, -(far + near) / fn, 1,
	}
}

// PixelPerfectProjection returns the projection used at the end of every
// frame: origin at the top-left, y pointing down, one logical pixel equal
// to scale physical pixels.
func PixelPerfectProjection(viewport UVec2, scale float64) Mat4 {
	if scale <= 0 {
		scale = 1
	}
	w := float32(float64(viewport.X) / scale)
	h := float32(float64(viewport.Y) / scale)
	return Ortho(0, w, h, 0, -1, 1)
}

// TransformPoint applies m to the point (x, y, 0, 1) and returns the
// resulting x and y after perspective division.
func (m Mat4) TransformPoint(p Vec2) Vec2 {
	x := m[0]*p.X + m[4]*p.Y + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[13]
	w := m[3]*p.X + m[7]*p.Y + m[15]
	if w != 0 && w != 1 {
		x /= w
		y /= w
	}
	return Vec2{X: x, Y: y}
}

// Bytes encodes m as 64 little-endian bytes for uniform upload.
func (m Mat4) Bytes() []byte {
	out := make([]byte, 64)
	for i, v := range m {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}
