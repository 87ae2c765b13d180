package speedy

import "github.com/gogpu/speedy/imagedecode"

// Graphics is the drawing surface lent to the draw callback for the
// duration of one frame. It must not be retained: every drawing call made
// outside the frame it was lent for is silently ignored.
//
// Positions are in logical pixels with the origin at the top-left corner.
// Triangles and quads must be given in clockwise order.
type Graphics struct {
	r       *Renderer
	inFrame bool

	clip      *IRect // logical
	physClip  *IRect // physical, nil when clip is nil
	clipEmpty bool

	tris [][3]Vec2
}

// fullUV is the texture coordinate rectangle of a whole image.
var fullUV = NewRect(Vec2{}, Vec2{X: 1, Y: 1})

func (g *Graphics) begin() {
	g.inFrame = true
	g.clip = nil
	g.physClip = nil
	g.clipEmpty = false
}

func (g *Graphics) end() {
	g.inFrame = false
}

// ClearScreen fills the whole window with c. Shapes drawn earlier in the
// frame and not yet sent to the backend are dropped. The clip rectangle
// does not apply.
func (g *Graphics) ClearScreen(c Color) {
	if !g.inFrame {
		return
	}
	g.r.batcher.discard()
	g.r.backend.Clear(c)
}

// SetClip restricts drawing to rect, in logical window pixels.
// A nil rect disables clipping.
func (g *Graphics) SetClip(rect *IRect) {
	if !g.inFrame {
		return
	}
	if rect == nil {
		g.clip, g.physClip, g.clipEmpty = nil, nil, false
		return
	}
	c := *rect
	g.clip = &c
	g.updatePhysicalClip()
}

// Clip returns the active clip rectangle, or nil.
func (g *Graphics) Clip() *IRect {
	return copyClip(g.clip)
}

func (g *Graphics) updatePhysicalClip() {
	if g.clip == nil {
		return
	}
	pr := g.clip.Scaled(g.r.scale, g.r.viewport)
	g.clipEmpty = pr.Empty()
	g.physClip = &IRect{
		TopLeft:     IVec2{X: int32(pr.Min.X), Y: int32(pr.Min.Y)},
		BottomRight: IVec2{X: int32(pr.Max.X), Y: int32(pr.Max.Y)},
	}
}

// SetRoundedCornerSegments sets the number of triangles per corner used
// by DrawRoundedRectangle. Values below 1 are ignored.
func (g *Graphics) SetRoundedCornerSegments(n int) {
	if n >= 1 {
		g.r.segments = n
	}
}

// ViewportSize returns the size of the drawing area in logical pixels.
func (g *Graphics) ViewportSize() Vec2 {
	return g.r.viewport.Vec2().Div(float32(g.r.scale))
}

func (g *Graphics) submit(tri [3]Vertex, texture TextureID) {
	if !g.inFrame || g.clipEmpty {
		return
	}
	g.r.batcher.submit(tri, texture, g.physClip)
}

func solidVertex(p Vec2, c Color) Vertex {
	return Vertex{Position: p, Color: c}
}

// DrawTriangle draws a triangle of a single color.
func (g *Graphics) DrawTriangle(positions [3]Vec2, c Color) {
	g.DrawTriangleThreeColor(positions, [3]Color{c, c, c})
}

// DrawTriangleThreeColor draws a triangle with one color per vertex,
// interpolated across the surface.
func (g *Graphics) DrawTriangleThreeColor(positions [3]Vec2, colors [3]Color) {
	g.submit([3]Vertex{
		solidVertex(positions[0], colors[0]),
		solidVertex(positions[1], colors[1]),
		solidVertex(positions[2], colors[2]),
	}, 0)
}

// DrawTriangleImageTintedThreeColor draws a textured triangle. uvs are
// normalized texture coordinates; each texel is multiplied by the
// interpolated vertex color.
func (g *Graphics) DrawTriangleImageTintedThreeColor(positions [3]Vec2, colors [3]Color, uvs [3]Vec2, img *ImageHandle) {
	if !g.r.images.valid(img) {
		return
	}
	var tri [3]Vertex
	for i := range tri {
		tri[i] = Vertex{Position: positions[i], Color: colors[i], TexCoord: uvs[i]}
	}
	g.submit(tri, img.id)
}

// DrawQuad draws a quadrilateral of a single color.
func (g *Graphics) DrawQuad(positions [4]Vec2, c Color) {
	g.DrawQuadFourColor(positions, [4]Color{c, c, c, c})
}

// DrawQuadFourColor draws a quadrilateral with one color per vertex. It is
// split into the triangles 0-1-2 and 2-3-0.
func (g *Graphics) DrawQuadFourColor(positions [4]Vec2, colors [4]Color) {
	g.DrawTriangleThreeColor([3]Vec2{positions[0], positions[1], positions[2]}, [3]Color{colors[0], colors[1], colors[2]})
	g.DrawTriangleThreeColor([3]Vec2{positions[2], positions[3], positions[0]}, [3]Color{colors[2], colors[3], colors[0]})
}

// DrawQuadImageTintedFourColor draws a textured quadrilateral, split like
// DrawQuadFourColor.
func (g *Graphics) DrawQuadImageTintedFourColor(positions [4]Vec2, colors [4]Color, uvs [4]Vec2, img *ImageHandle) {
	g.DrawTriangleImageTintedThreeColor(
		[3]Vec2{positions[0], positions[1], positions[2]},
		[3]Color{colors[0], colors[1], colors[2]},
		[3]Vec2{uvs[0], uvs[1], uvs[2]}, img)
	g.DrawTriangleImageTintedThreeColor(
		[3]Vec2{positions[2], positions[3], positions[0]},
		[3]Color{colors[2], colors[3], colors[0]},
		[3]Vec2{uvs[2], uvs[3], uvs[0]}, img)
}

// DrawRectangle fills rect with c.
func (g *Graphics) DrawRectangle(rect Rect, c Color) {
	g.DrawQuad([4]Vec2{rect.TopLeft, rect.TopRight(), rect.BottomRight, rect.BottomLeft()}, c)
}

// DrawRoundedRectangle fills a rectangle with circular corners. Each
// corner is approximated by a fan of triangles, see
// SetRoundedCornerSegments.
func (g *Graphics) DrawRoundedRectangle(rr RoundedRect, c Color) {
	if !g.inFrame {
		return
	}
	g.tris = roundedRectTriangles(rr, g.r.segments, g.tris[:0])
	for _, t := range g.tris {
		g.DrawTriangle(t, c)
	}
}

// DrawLine draws a straight line of the given thickness. The line extends
// thickness/2 on each side of the segment from start to end. A zero-length
// line draws nothing.
func (g *Graphics) DrawLine(start, end Vec2, thickness float32, c Color) {
	dir, ok := end.Sub(start).Normalize()
	if !ok {
		return
	}
	half := thickness / 2
	acw := dir.Rotate90Anticlockwise().Mul(half)
	cw := dir.Rotate90Clockwise().Mul(half)
	g.DrawQuad([4]Vec2{start.Add(acw), end.Add(acw), end.Add(cw), start.Add(cw)}, c)
}

// DrawCircle fills a circle.
func (g *Graphics) DrawCircle(center Vec2, radius float32, c Color) {
	tl := center.Sub(Vec2{X: radius, Y: radius})
	br := center.Add(Vec2{X: radius, Y: radius})
	pos := [4]Vec2{tl, {X: br.X, Y: tl.Y}, br, {X: tl.X, Y: br.Y}}
	cc := [4]Vec2{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	g.DrawCircleSectionTriangularThreeColor([3]Vec2{pos[0], pos[1], pos[2]}, [3]Color{c, c, c}, [3]Vec2{cc[0], cc[1], cc[2]})
	g.DrawCircleSectionTriangularThreeColor([3]Vec2{pos[2], pos[3], pos[0]}, [3]Color{c, c, c}, [3]Vec2{cc[2], cc[3], cc[0]})
}

// DrawCircleSectionTriangularThreeColor draws a triangle masked by a
// circle. circleCoords place each vertex relative to the circle, where
// the unit circle centered on (0, 0) is the visible area.
func (g *Graphics) DrawCircleSectionTriangularThreeColor(positions [3]Vec2, colors [3]Color, circleCoords [3]Vec2) {
	var tri [3]Vertex
	for i := range tri {
		tri[i] = Vertex{Position: positions[i], Color: colors[i], CircleCoord: circleCoords[i], CircleMix: 1}
	}
	g.submit(tri, 0)
}

// DrawPolygon fills a polygon, translated by offset.
func (g *Graphics) DrawPolygon(p *Polygon, offset Vec2, c Color) {
	if p == nil {
		return
	}
	for _, t := range p.triangles {
		g.DrawTriangle([3]Vec2{t[0].Add(offset), t[1].Add(offset), t[2].Add(offset)}, c)
	}
}

// DrawImage draws img unscaled with its top-left corner at position.
func (g *Graphics) DrawImage(position Vec2, img *ImageHandle) {
	if img == nil {
		return
	}
	g.DrawRectangleImage(RectFromSize(position, img.size.Vec2()), img)
}

// DrawRectangleImage draws img stretched to fill rect.
func (g *Graphics) DrawRectangleImage(rect Rect, img *ImageHandle) {
	g.DrawRectangleImageTinted(rect, ColorWhite, img)
}

// DrawRectangleImageTinted draws img stretched to fill rect, multiplying
// every texel by tint.
func (g *Graphics) DrawRectangleImageTinted(rect Rect, tint Color, img *ImageHandle) {
	g.DrawRectangleImageSubsetTinted(rect, tint, fullUV, img)
}

// DrawRectangleImageSubsetTinted draws the part of img selected by subset,
// in normalized texture coordinates, stretched to fill rect.
func (g *Graphics) DrawRectangleImageSubsetTinted(rect Rect, tint Color, subset Rect, img *ImageHandle) {
	g.DrawQuadImageTintedFourColor(
		[4]Vec2{rect.TopLeft, rect.TopRight(), rect.BottomRight, rect.BottomLeft()},
		[4]Color{tint, tint, tint, tint},
		[4]Vec2{subset.TopLeft, subset.TopRight(), subset.BottomRight, subset.BottomLeft()},
		img)
}

// DrawText draws a text block with its top-left corner at position.
func (g *Graphics) DrawText(position Vec2, c Color, block FormattedTextBlock) {
	g.drawText(position, c, block, nil)
}

// DrawTextCropped draws a text block, cropped to crop. Glyphs crossing the
// crop boundary are cut at the boundary.
func (g *Graphics) DrawTextCropped(position Vec2, crop Rect, c Color, block FormattedTextBlock) {
	g.drawText(position, c, block, &crop)
}

func (g *Graphics) drawText(position Vec2, c Color, block FormattedTextBlock, crop *Rect) {
	if !g.inFrame || block == nil {
		return
	}
	for _, glyph := range block.Glyphs() {
		full := glyph.Rect.Translate(position)
		if full.IsZeroArea() {
			continue
		}
		dst := full
		if crop != nil {
			visible, ok := full.Intersect(*crop)
			if !ok {
				continue
			}
			dst = visible
		}

		e, err := g.r.atlas.lookup(glyph)
		if err != nil {
			Logger().Warn("speedy: glyph dropped", "glyph", glyph.Key.Glyph, "err", err)
			continue
		}
		if e.texture == 0 {
			continue
		}
		g.drawTexturedRect(dst, c, subRect(e.uv, uvOf(full, dst)), e.texture)
	}
}

// uvOf returns the normalized position of inner within outer.
func uvOf(outer, inner Rect) Rect {
	w, h := outer.Width(), outer.Height()
	return NewRect(
		Vec2{X: (inner.Left() - outer.Left()) / w, Y: (inner.Top() - outer.Top()) / h},
		Vec2{X: (inner.Right() - outer.Left()) / w, Y: (inner.Bottom() - outer.Top()) / h},
	)
}

// subRect maps a normalized rectangle into r.
func subRect(r, n Rect) Rect {
	size := r.Size()
	return NewRect(
		Vec2{X: r.Left() + n.Left()*size.X, Y: r.Top() + n.Top()*size.Y},
		Vec2{X: r.Left() + n.Right()*size.X, Y: r.Top() + n.Bottom()*size.Y},
	)
}

func (g *Graphics) drawTexturedRect(rect Rect, c Color, uv Rect, texture TextureID) {
	pos := [4]Vec2{rect.TopLeft, rect.TopRight(), rect.BottomRight, rect.BottomLeft()}
	tc := [4]Vec2{uv.TopLeft, uv.TopRight(), uv.BottomRight, uv.BottomLeft()}
	for _, idx := range [2][3]int{{0, 1, 2}, {2, 3, 0}} {
		var tri [3]Vertex
		for i, k := range idx {
			tri[i] = Vertex{Position: pos[k], Color: c, TexCoord: tc[k]}
		}
		g.submit(tri, texture)
	}
}

// CreateImageFromRawPixels uploads packed pixels as a new image. data must
// hold exactly size.X*size.Y pixels of the given layout.
func (g *Graphics) CreateImageFromRawPixels(format ImageDataType, smoothing ImageSmoothingMode, size UVec2, data []byte) (*ImageHandle, error) {
	return g.r.CreateImageFromRawPixels(format, smoothing, size, data)
}

// CreateImageFromFileBytes decodes an encoded image. A zero hint detects
// the format from the data.
func (g *Graphics) CreateImageFromFileBytes(hint imagedecode.Format, smoothing ImageSmoothingMode, data []byte) (*ImageHandle, error) {
	return g.r.CreateImageFromFileBytes(hint, smoothing, data)
}

// CreateImageFromFilePath reads and decodes an image file.
func (g *Graphics) CreateImageFromFilePath(hint imagedecode.Format, smoothing ImageSmoothingMode, path string) (*ImageHandle, error) {
	return g.r.CreateImageFromFilePath(hint, smoothing, path)
}

// Capture sends everything drawn so far to the backend and reads back the
// framebuffer in the requested layout.
func (g *Graphics) Capture(format ImageDataType) (*RawBitmapData, error) {
	if g.inFrame {
		g.r.batcher.flush()
		g.r.backend.SetProjection(g.r.projection())
	}
	raw, err := g.r.backend.Capture()
	if err != nil {
		return nil, err
	}
	return &RawBitmapData{Data: fromRGBA(format, raw.Data), Size: raw.Size, Format: format}, nil
}
