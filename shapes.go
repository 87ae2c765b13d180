package speedy

import "math"

// DefaultRoundedCornerSegments is the number of triangles used for each
// corner of a rounded rectangle.
const DefaultRoundedCornerSegments = 20

// roundedRectTriangles tessellates rr into clockwise triangles: three
// rectangles forming a cross, plus one triangle fan per corner centered on
// the corner's arc center. The radius is clamped to half the shorter side.
func roundedRectTriangles(rr RoundedRect, segments int, out [][3]Vec2) [][3]Vec2 {
	r := rr.Rect
	if r.IsZeroArea() {
		return out
	}
	radius := max(0, min(rr.Radius, r.Width()/2, r.Height()/2))
	if radius == 0 || segments <= 0 {
		return appendQuad(out, r.TopLeft, r.TopRight(), r.BottomRight, r.BottomLeft())
	}

	l, t, ri, b := r.Left(), r.Top(), r.Right(), r.Bottom()

	// Vertical band spanning the full height.
	out = appendQuad(out, Vec2{X: l + radius, Y: t}, Vec2{X: ri - radius, Y: t},
		Vec2{X: ri - radius, Y: b}, Vec2{X: l + radius, Y: b})
	// Left and right bands between the corners.
	if b-t > 2*radius {
		out = appendQuad(out, Vec2{X: l, Y: t + radius}, Vec2{X: l + radius, Y: t + radius},
			Vec2{X: l + radius, Y: b - radius}, Vec2{X: l, Y: b - radius})
		out = appendQuad(out, Vec2{X: ri - radius, Y: t + radius}, Vec2{X: ri, Y: t + radius},
			Vec2{X: ri, Y: b - radius}, Vec2{X: ri - radius, Y: b - radius})
	}

	corners := [4]struct {
		center Vec2
		start  float64
	}{
		{Vec2{X: ri - radius, Y: t + radius}, -math.Pi / 2}, // top right
		{Vec2{X: ri - radius, Y: b - radius}, 0},            // bottom right
		{Vec2{X: l + radius, Y: b - radius}, math.Pi / 2},   // bottom left
		{Vec2{X: l + radius, Y: t + radius}, math.Pi},       // top left
	}
	for _, c := range corners {
		out = appendArcFan(out, c.center, radius, c.start, math.Pi/2, segments)
	}
	return out
}

// appendArcFan appends a fan of segments triangles covering the arc of the
// given sweep starting at angle start. With y pointing down, increasing the
// angle turns clockwise on screen.
func appendArcFan(out [][3]Vec2, center Vec2, radius float32, start, sweep float64, segments int) [][3]Vec2 {
	prev := arcPoint(center, radius, start)
	for i := 1; i <= segments; i++ {
		next := arcPoint(center, radius, start+sweep*float64(i)/float64(segments))
		out = append(out, [3]Vec2{center, prev, next})
		prev = next
	}
	return out
}

func arcPoint(center Vec2, radius float32, angle float64) Vec2 {
	return Vec2{
		X: center.X + radius*float32(math.Cos(angle)),
		Y: center.Y + radius*float32(math.Sin(angle)),
	}
}

// appendQuad splits a clockwise quad along the 0-2 diagonal.
func appendQuad(out [][3]Vec2, a, b, c, d Vec2) [][3]Vec2 {
	return append(out, [3]Vec2{a, b, c}, [3]Vec2{c, d, a})
}

// Polygon is a simple polygon pre-triangulated for drawing. Build it once
// with NewPolygon and draw it every frame.
type Polygon struct {
	triangles [][3]Vec2
}

// NewPolygon triangulates a simple polygon given by its vertices, in
// either winding order. Self-intersecting input produces a best-effort
// triangulation.
func NewPolygon(vertices []Vec2) *Polygon {
	return &Polygon{triangles: triangulate(vertices)}
}

// Triangles returns the clockwise triangles of the polygon.
func (p *Polygon) Triangles() [][3]Vec2 {
	return p.triangles
}

// triangulate runs ear clipping over the polygon. Output triangles are
// clockwise on screen.
func triangulate(vertices []Vec2) [][3]Vec2 {
	n := len(vertices)
	if n < 3 {
		return nil
	}

	idx := make([]int, n)
	if signedArea(vertices) >= 0 {
		for i := range idx {
			idx[i] = i
		}
	} else {
		for i := range idx {
			idx[i] = n - 1 - i
		}
	}

	out := make([][3]Vec2, 0, n-2)
	for len(idx) > 3 {
		ear := -1
		for i := range idx {
			if isEar(vertices, idx, i) {
				ear = i
				break
			}
		}
		if ear < 0 {
			// No ear: degenerate or self-intersecting input.
			ear = 0
		}
		prev := idx[(ear+len(idx)-1)%len(idx)]
		next := idx[(ear+1)%len(idx)]
		out = append(out, [3]Vec2{vertices[prev], vertices[idx[ear]], vertices[next]})
		idx = append(idx[:ear], idx[ear+1:]...)
	}
	return append(out, [3]Vec2{vertices[idx[0]], vertices[idx[1]], vertices[idx[2]]})
}

// signedArea is positive for polygons that are clockwise on a y-down
// screen.
func signedArea(v []Vec2) float32 {
	var a float32
	for i := range v {
		j := (i + 1) % len(v)
		a += v[i].Cross(v[j])
	}
	return a / 2
}

func isEar(v []Vec2, idx []int, i int) bool {
	n := len(idx)
	a := v[idx[(i+n-1)%n]]
	b := v[idx[i]]
	c := v[idx[(i+1)%n]]
	if b.Sub(a).Cross(c.Sub(b)) <= 0 {
		return false
	}
	for j := range idx {
		if j == i || j == (i+n-1)%n || j == (i+1)%n {
			continue
		}
		p := v[idx[j]]
		if p == a || p == b || p == c {
			continue
		}
		if pointInTriangle(p, a, b, c) {
			return false
		}
	}
	return true
}

func pointInTriangle(p, a, b, c Vec2) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	return d1 >= 0 && d2 >= 0 && d3 >= 0
}
