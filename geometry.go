package speedy

import (
	"image"
	"math"
)

// Vec2 is a 2D vector or point in logical pixels.
type Vec2 struct {
	X, Y float32
}

// Vec2Zero is the origin.
var Vec2Zero = Vec2{}

// NewVec2 creates a vector from its components.
func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Mul returns v scaled by s.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Div returns v divided by s.
func (v Vec2) Div(s float32) Vec2 {
	return Vec2{X: v.X / s, Y: v.Y / s}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float32 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product of v and o.
func (v Vec2) Cross(o Vec2) float32 {
	return v.X*o.Y - v.Y*o.X
}

// MagnitudeSquared returns the squared length of v.
func (v Vec2) MagnitudeSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Magnitude returns the length of v.
func (v Vec2) Magnitude() float32 {
	return float32(math.Sqrt(float64(v.MagnitudeSquared())))
}

// Normalize returns the unit vector in the direction of v.
// The second result is false if v has zero length.
func (v Vec2) Normalize() (Vec2, bool) {
	m := v.Magnitude()
	if m == 0 || math.IsNaN(float64(m)) {
		return Vec2{}, false
	}
	return v.Div(m), true
}

// Rotate90Clockwise rotates v by 90 degrees clockwise in screen space
// (y axis pointing down).
func (v Vec2) Rotate90Clockwise() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// Rotate90Anticlockwise rotates v by 90 degrees anticlockwise in screen
// space (y axis pointing down).
func (v Vec2) Rotate90Anticlockwise() Vec2 {
	return Vec2{X: v.Y, Y: -v.X}
}

// Round rounds both components to the nearest integer.
func (v Vec2) Round() Vec2 {
	return Vec2{X: float32(math.Round(float64(v.X))), Y: float32(math.Round(float64(v.Y)))}
}

// Lerp linearly interpolates between v and o.
func (v Vec2) Lerp(o Vec2, t float32) Vec2 {
	return Vec2{X: v.X + (o.X-v.X)*t, Y: v.Y + (o.Y-v.Y)*t}
}

// Vec3 is a 3D vector, used for scroll amounts. Z is set by devices with a
// third axis.
type Vec3 struct {
	X, Y, Z float64
}

// UVec2 is an unsigned integer 2D vector, usually a size in pixels.
type UVec2 struct {
	X, Y uint32
}

// NewUVec2 creates a vector from its components.
func NewUVec2(x, y uint32) UVec2 {
	return UVec2{X: x, Y: y}
}

// Vec2 converts v to a float vector.
func (v UVec2) Vec2() Vec2 {
	return Vec2{X: float32(v.X), Y: float32(v.Y)}
}

// IVec2 is a signed integer 2D vector.
type IVec2 struct {
	X, Y int32
}

// NewIVec2 creates a vector from its components.
func NewIVec2(x, y int32) IVec2 {
	return IVec2{X: x, Y: y}
}

// Vec2 converts v to a float vector.
func (v IVec2) Vec2() Vec2 {
	return Vec2{X: float32(v.X), Y: float32(v.Y)}
}

// Rect is an axis-aligned rectangle. TopLeft is inclusive and
// BottomRight exclusive.
type Rect struct {
	TopLeft, BottomRight Vec2
}

// NewRect creates a rectangle from two corners.
func NewRect(topLeft, bottomRight Vec2) Rect {
	return Rect{TopLeft: topLeft, BottomRight: bottomRight}
}

// RectFromSize creates a rectangle from its top-left corner and size.
func RectFromSize(topLeft, size Vec2) Rect {
	return Rect{TopLeft: topLeft, BottomRight: topLeft.Add(size)}
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() float32 { return r.TopLeft.X }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float32 { return r.TopLeft.Y }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float32 { return r.BottomRight.X }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float32 { return r.BottomRight.Y }

// TopRight returns the top-right corner.
func (r Rect) TopRight() Vec2 { return Vec2{X: r.BottomRight.X, Y: r.TopLeft.Y} }

// BottomLeft returns the bottom-left corner.
func (r Rect) BottomLeft() Vec2 { return Vec2{X: r.TopLeft.X, Y: r.BottomRight.Y} }

// Width returns the width of the rectangle.
func (r Rect) Width() float32 { return r.BottomRight.X - r.TopLeft.X }

// Height returns the height of the rectangle.
func (r Rect) Height() float32 { return r.BottomRight.Y - r.TopLeft.Y }

// Size returns the width and height as a vector.
func (r Rect) Size() Vec2 { return r.BottomRight.Sub(r.TopLeft) }

// IsZeroArea reports whether the rectangle covers no area.
func (r Rect) IsZeroArea() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.TopLeft.X && p.X < r.BottomRight.X &&
		p.Y >= r.TopLeft.Y && p.Y < r.BottomRight.Y
}

// Translate returns the rectangle moved by offset.
func (r Rect) Translate(offset Vec2) Rect {
	return Rect{TopLeft: r.TopLeft.Add(offset), BottomRight: r.BottomRight.Add(offset)}
}

// Intersect returns the overlapping area of r and o.
// The second result is false if they do not overlap.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	out := Rect{
		TopLeft: Vec2{
			X: max(r.TopLeft.X, o.TopLeft.X),
			Y: max(r.TopLeft.Y, o.TopLeft.Y),
		},
		BottomRight: Vec2{
			X: min(r.BottomRight.X, o.BottomRight.X),
			Y: min(r.BottomRight.Y, o.BottomRight.Y),
		},
	}
	if out.IsZeroArea() {
		return Rect{}, false
	}
	return out, true
}

// IRect is an integer rectangle, used for clipping.
type IRect struct {
	TopLeft, BottomRight IVec2
}

// NewIRect creates an integer rectangle from two corners.
func NewIRect(topLeft, bottomRight IVec2) IRect {
	return IRect{TopLeft: topLeft, BottomRight: bottomRight}
}

// Width returns the width of the rectangle.
func (r IRect) Width() int32 { return r.BottomRight.X - r.TopLeft.X }

// Height returns the height of the rectangle.
func (r IRect) Height() int32 { return r.BottomRight.Y - r.TopLeft.Y }

// Rect converts r to a float rectangle.
func (r IRect) Rect() Rect {
	return Rect{TopLeft: r.TopLeft.Vec2(), BottomRight: r.BottomRight.Vec2()}
}

// Scaled converts a rectangle in logical pixels to physical pixels,
// clamped to a viewport of the given physical size. The result may be
// empty, and is empty when the corners are inverted.
func (r IRect) Scaled(scale float64, viewport UVec2) image.Rectangle {
	out := image.Rectangle{
		Min: image.Pt(int(math.Floor(float64(r.TopLeft.X)*scale)), int(math.Floor(float64(r.TopLeft.Y)*scale))),
		Max: image.Pt(int(math.Ceil(float64(r.BottomRight.X)*scale)), int(math.Ceil(float64(r.BottomRight.Y)*scale))),
	}
	return out.Intersect(image.Rect(0, 0, int(viewport.X), int(viewport.Y)))
}

// RoundedRect is a rectangle with circular corners of a single radius.
type RoundedRect struct {
	Rect
	Radius float32
}

// NewRoundedRect creates a rounded rectangle.
func NewRoundedRect(rect Rect, radius float32) RoundedRect {
	return RoundedRect{Rect: rect, Radius: radius}
}
