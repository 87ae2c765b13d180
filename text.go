package speedy

import "image"

// FormattedTextBlock is laid out text ready to draw. The font package
// produces it; any other layout engine can too.
type FormattedTextBlock interface {
	// Size returns the extent of the block in logical pixels.
	Size() Vec2
	// Glyphs returns the glyphs to draw, positioned relative to the
	// top-left corner of the block.
	Glyphs() []PositionedGlyph
}

// GlyphKey identifies one rasterized glyph mask. Two glyphs with equal keys
// must rasterize to the same mask.
type GlyphKey struct {
	// Font identifies the font face. Layout engines pick a unique value
	// per loaded font.
	Font uint64
	// Glyph is the glyph index in the font.
	Glyph uint32
	// Size is the font size in 1/64 pixels.
	Size int32
	// SubpixelX is the quantized horizontal subpixel offset.
	SubpixelX uint8
}

// GlyphSource rasterizes glyph masks on demand.
type GlyphSource interface {
	// RasterizeGlyph returns the coverage mask of a glyph. The mask bounds
	// start at (0, 0). A nil mask means the glyph has no visible pixels.
	RasterizeGlyph(key GlyphKey) (*image.Alpha, error)
}

// PositionedGlyph is one glyph of a FormattedTextBlock.
type PositionedGlyph struct {
	Key GlyphKey
	// Rect is where the mask is drawn, relative to the block origin. Its
	// size equals the mask size.
	Rect   Rect
	Source GlyphSource
}
