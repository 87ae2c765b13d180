// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package font lays out text for speedy.Graphics.DrawText.
//
// A Font is parsed once from TrueType or OpenType data and may then be
// used from any goroutine. Shaping (kerning, ligatures, complex scripts)
// uses go-text/typesetting's HarfBuzz port, bidirectional text is split
// into runs with golang.org/x/text/unicode/bidi, and glyph masks are
// rasterized from golang.org/x/image/font/sfnt outlines.
//
//	f, err := font.Parse(goregular.TTF)
//	if err != nil {
//	    return err
//	}
//	block := f.LayoutText("Hello, world", 32, font.TextOptions{})
//	g.DrawText(speedy.Vec2{X: 20, Y: 20}, speedy.ColorBlack, block)
package font

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	gtfont "github.com/go-text/typesetting/font"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/speedy"
	"github.com/gogpu/speedy/cache"
)

// Subpixel positions per pixel. Glyph masks are rendered at this many
// horizontal offsets.
const subpixelSteps = 4

// Glyph masks kept per font and cache shard.
const glyphCacheCapacity = 256

// ErrEmptyData is returned by Parse for empty input.
var ErrEmptyData = errors.New("font: empty font data")

var nextFontID atomic.Uint64

// Font is a parsed font face. It is safe for concurrent use.
type Font struct {
	id       uint64
	shapes   *gtfont.Font
	outlines *sfnt.Font
	family   string
	buffers  sync.Pool
	glyphs   *cache.Sharded[speedy.GlyphKey, glyphImage]
}

// glyphImage is a rasterized glyph. origin is the top-left corner of the
// mask relative to the integer pen position on the baseline.
type glyphImage struct {
	mask   *image.Alpha
	origin image.Point
}

// Parse parses TrueType or OpenType data. Collections are not supported.
func Parse(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("font: parse: %w", err)
	}
	outlines, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: parse outlines: %w", err)
	}

	f := &Font{
		id:       nextFontID.Add(1),
		shapes:   face.Font,
		outlines: outlines,
		glyphs:   cache.NewSharded[speedy.GlyphKey, glyphImage](glyphCacheCapacity, hashGlyphKey),
	}
	f.buffers.New = func() any { return new(sfnt.Buffer) }

	buf := f.buffer()
	if name, err := outlines.Name(buf, sfnt.NameIDFamily); err == nil {
		f.family = name
	}
	f.buffers.Put(buf)

	speedy.Logger().Debug("font: parsed", "family", f.family, "id", f.id, "glyphs", outlines.NumGlyphs())
	return f, nil
}

// ID returns the value used as GlyphKey.Font for this font's glyphs.
func (f *Font) ID() uint64 { return f.id }

// Family returns the family name from the font's name table, or "".
func (f *Font) Family() string { return f.family }

func (f *Font) buffer() *sfnt.Buffer {
	return f.buffers.Get().(*sfnt.Buffer)
}

// RasterizeGlyph implements speedy.GlyphSource.
func (f *Font) RasterizeGlyph(key speedy.GlyphKey) (*image.Alpha, error) {
	if key.Font != f.id {
		return nil, fmt.Errorf("font: glyph key for font %d passed to font %d", key.Font, f.id)
	}
	g, err := f.glyph(key)
	if err != nil {
		return nil, err
	}
	return g.mask, nil
}

func (f *Font) glyph(key speedy.GlyphKey) (glyphImage, error) {
	return f.glyphs.GetOrCreate(key, func() (glyphImage, error) {
		return f.rasterize(key)
	})
}

// rasterize renders the outline of key.Glyph at key.Size, shifted right by
// the key's subpixel offset.
func (f *Font) rasterize(key speedy.GlyphKey) (glyphImage, error) {
	buf := f.buffer()
	defer f.buffers.Put(buf)

	segments, err := f.outlines.LoadGlyph(buf, sfnt.GlyphIndex(key.Glyph), fixed.Int26_6(key.Size), nil)
	if errors.Is(err, sfnt.ErrColoredGlyph) {
		return glyphImage{}, nil
	}
	if err != nil {
		return glyphImage{}, fmt.Errorf("font: load glyph %d: %w", key.Glyph, err)
	}
	if len(segments) == 0 {
		return glyphImage{}, nil
	}

	dx := fixed.Int26_6(key.SubpixelX) * (64 / subpixelSteps)
	b := segments.Bounds()
	minX, maxX := (b.Min.X + dx).Floor(), (b.Max.X + dx).Ceil()
	minY, maxY := b.Min.Y.Floor(), b.Max.Y.Ceil()
	w, h := maxX-minX, maxY-minY
	if w <= 0 || h <= 0 {
		return glyphImage{}, nil
	}

	ox := float32(dx)/64 - float32(minX)
	oy := -float32(minY)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X)/64 + ox, float32(p.Y)/64 + oy
	}

	r := vector.NewRasterizer(w, h)
	r.DrawOp = draw.Src
	started := false
	for _, s := range segments {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if started {
				r.ClosePath()
			}
			started = true
			r.MoveTo(pt(s.Args[0]))
		case sfnt.SegmentOpLineTo:
			r.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			r.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			ex, ey := pt(s.Args[2])
			r.CubeTo(bx, by, cx, cy, ex, ey)
		}
	}
	if started {
		r.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return glyphImage{mask: mask, origin: image.Pt(minX, minY)}, nil
}

func hashGlyphKey(k speedy.GlyphKey) uint64 {
	h := k.Font * 0x9e3779b97f4a7c15
	h ^= uint64(k.Glyph)<<32 | uint64(uint32(k.Size))<<2 | uint64(k.SubpixelX)
	return cache.Uint64Hasher(h)
}
