// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package font

import (
	"math"
	"strings"
	"sync"
	"unicode"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"

	"github.com/gogpu/speedy"
)

// TextAlignment is the horizontal alignment of lines within a block.
type TextAlignment int

const (
	TextAlignmentLeft TextAlignment = iota
	TextAlignmentCenter
	TextAlignmentRight
)

// String returns the alignment name.
func (a TextAlignment) String() string {
	switch a {
	case TextAlignmentLeft:
		return "Left"
	case TextAlignmentCenter:
		return "Center"
	case TextAlignmentRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// TextOptions controls LayoutText. The zero value lays out unwrapped,
// left-aligned text with the font's own line spacing.
type TextOptions struct {
	// WrapWidth breaks lines wider than this many pixels at whitespace.
	// Words wider than WrapWidth are broken between characters. Zero
	// disables wrapping.
	WrapWidth float32

	// Alignment positions each line within WrapWidth, or within the widest
	// line when WrapWidth is zero.
	Alignment TextAlignment

	// LineSpacingMultiplier scales the distance between baselines. Zero
	// means 1.
	LineSpacingMultiplier float32

	// TrimEachLine removes leading and trailing whitespace from every line.
	TrimEachLine bool
}

// Line describes one laid out line.
type Line struct {
	// Start and End are rune offsets of the line's text within its
	// paragraph. Line breaks are not included.
	Start, End int
	// Width is the advance width of the line in pixels.
	Width float32
	// Baseline is the y coordinate of the baseline from the block top.
	Baseline float32
}

// FormattedTextBlock is text laid out by Font.LayoutText. It implements
// speedy.FormattedTextBlock and is immutable.
type FormattedTextBlock struct {
	size   speedy.Vec2
	glyphs []speedy.PositionedGlyph
	lines  []Line
}

var _ speedy.FormattedTextBlock = (*FormattedTextBlock)(nil)

// Size returns the block extent in pixels.
func (b *FormattedTextBlock) Size() speedy.Vec2 { return b.size }

// Glyphs returns the visible glyphs relative to the block's top-left corner.
func (b *FormattedTextBlock) Glyphs() []speedy.PositionedGlyph { return b.glyphs }

// Lines returns the laid out lines, top to bottom.
func (b *FormattedTextBlock) Lines() []Line { return b.lines }

var shaperPool = sync.Pool{
	New: func() any { return &shaping.HarfbuzzShaper{} },
}

// layoutRun is a maximal run of one direction, in visual order.
type layoutRun struct {
	start, end int
	dir        di.Direction
}

// LayoutText shapes and positions text at sizePx pixels per em. Newlines
// start a new paragraph.
func (f *Font) LayoutText(text string, sizePx float32, opts TextOptions) *FormattedTextBlock {
	block := &FormattedTextBlock{}
	if text == "" || !(sizePx > 0) || math.IsInf(float64(sizePx), 0) {
		return block
	}

	l := layouter{
		font: f,
		face: gtfont.NewFace(f.shapes),
		size: fixed.Int26_6(math.Round(float64(sizePx) * 64)),
		opts: opts,
	}
	l.metrics(sizePx)

	type pendingLine struct {
		line Line
		runs []shaping.Output
	}
	var lines []pendingLine
	for _, para := range strings.Split(text, "\n") {
		runes := []rune(para)
		for _, span := range l.breakLines(runes) {
			s, e := span[0], span[1]
			if opts.TrimEachLine {
				s, e = trimSpace(runes, s, e)
			}
			runs, width := l.shapeLine(runes[s:e])
			lines = append(lines, pendingLine{
				line: Line{Start: s, End: e, Width: width},
				runs: runs,
			})
		}
	}

	var widest float32
	for _, pl := range lines {
		widest = max(widest, pl.line.Width)
	}
	alignWidth := widest
	if opts.WrapWidth > 0 && opts.Alignment != TextAlignmentLeft {
		alignWidth = max(opts.WrapWidth, widest)
	}

	block.lines = make([]Line, len(lines))
	for i, pl := range lines {
		pl.line.Baseline = l.ascent + float32(i)*l.lineHeight
		var x float32
		switch opts.Alignment {
		case TextAlignmentCenter:
			x = (alignWidth - pl.line.Width) / 2
		case TextAlignmentRight:
			x = alignWidth - pl.line.Width
		}
		block.glyphs = l.place(block.glyphs, pl.runs, x, pl.line.Baseline)
		block.lines[i] = pl.line
	}
	block.size = speedy.Vec2{X: alignWidth, Y: float32(len(lines)) * l.lineHeight}
	return block
}

type layouter struct {
	font *Font
	face *gtfont.Face
	size fixed.Int26_6
	opts TextOptions

	ascent     float32
	lineHeight float32
}

func (l *layouter) metrics(sizePx float32) {
	scale := sizePx / float32(l.font.shapes.Upem())
	ext, ok := l.face.FontHExtents()
	if !ok {
		ext = gtfont.FontExtents{Ascender: 0.8 * float32(l.font.shapes.Upem()), Descender: -0.2 * float32(l.font.shapes.Upem())}
	}
	mult := l.opts.LineSpacingMultiplier
	if mult <= 0 {
		mult = 1
	}
	l.ascent = ext.Ascender * scale
	l.lineHeight = (ext.Ascender - ext.Descender + ext.LineGap) * scale * mult
}

// breakLines splits a paragraph into line spans. Without a wrap width the
// paragraph is one line.
func (l *layouter) breakLines(runes []rune) [][2]int {
	if l.opts.WrapWidth <= 0 || len(runes) == 0 {
		return [][2]int{{0, len(runes)}}
	}
	return wrap(runes, l.advances(runes), fixed.Int26_6(l.opts.WrapWidth*64))
}

// advances returns the advance of each rune, attributing a glyph's advance
// to the first rune of its cluster.
func (l *layouter) advances(runes []rune) []fixed.Int26_6 {
	adv := make([]fixed.Int26_6, len(runes))
	for _, run := range visualRuns(runes) {
		out := l.shape(runes, run)
		for _, g := range out.Glyphs {
			if i := g.TextIndex(); i >= 0 && i < len(adv) {
				adv[i] += g.Advance
			}
		}
	}
	return adv
}

// wrap breaks greedily after whitespace. Trailing whitespace does not count
// towards the limit.
func wrap(runes []rune, adv []fixed.Int26_6, limit fixed.Int26_6) [][2]int {
	var (
		lines [][2]int
		start int
		width fixed.Int26_6
	)
	for i := 0; i < len(runes); {
		j := i
		for j < len(runes) && !unicode.IsSpace(runes[j]) {
			j++
		}
		k := j
		for k < len(runes) && unicode.IsSpace(runes[k]) {
			k++
		}
		word, space := sum(adv[i:j]), sum(adv[j:k])

		if i > start && width+word > limit {
			lines = append(lines, [2]int{start, i})
			start, width = i, 0
		}
		if i == start && word > limit {
			for r := i; r < j; r++ {
				if r > start && width+adv[r] > limit {
					lines = append(lines, [2]int{start, r})
					start, width = r, 0
				}
				width += adv[r]
			}
			width += space
		} else {
			width += word + space
		}
		i = k
	}
	return append(lines, [2]int{start, len(runes)})
}

func sum(v []fixed.Int26_6) fixed.Int26_6 {
	var s fixed.Int26_6
	for _, x := range v {
		s += x
	}
	return s
}

func trimSpace(runes []rune, s, e int) (int, int) {
	for s < e && unicode.IsSpace(runes[s]) {
		s++
	}
	for e > s && unicode.IsSpace(runes[e-1]) {
		e--
	}
	return s, e
}

// shapeLine shapes one line in visual order and returns its width.
func (l *layouter) shapeLine(runes []rune) ([]shaping.Output, float32) {
	if len(runes) == 0 {
		return nil, 0
	}
	runs := visualRuns(runes)
	outs := make([]shaping.Output, 0, len(runs))
	var width fixed.Int26_6
	for _, run := range runs {
		out := l.shape(runes, run)
		width += out.Advance
		outs = append(outs, out)
	}
	return outs, float32(width) / 64
}

func (l *layouter) shape(runes []rune, run layoutRun) shaping.Output {
	in := shaping.Input{
		Text:      runes,
		RunStart:  run.start,
		RunEnd:    run.end,
		Direction: run.dir,
		Face:      l.face,
		Size:      l.size,
		Script:    detectScript(runes[run.start:run.end]),
		Language:  language.NewLanguage("en"),
	}
	shaper := shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := shaper.Shape(in)
	shaperPool.Put(shaper)
	return out
}

// place appends the glyphs of one line starting at pen position x.
func (l *layouter) place(dst []speedy.PositionedGlyph, runs []shaping.Output, x, baseline float32) []speedy.PositionedGlyph {
	pen := fixed.Int26_6(math.Round(float64(x) * 64))
	y := int(math.Round(float64(baseline)))
	for _, out := range runs {
		for _, g := range out.Glyphs {
			if g.GlyphID != gtfont.EmptyGlyph {
				dst = l.appendGlyph(dst, g, pen+g.XOffset, y-g.YOffset.Round())
			}
			pen += g.Advance
		}
	}
	return dst
}

func (l *layouter) appendGlyph(dst []speedy.PositionedGlyph, g shaping.Glyph, x fixed.Int26_6, y int) []speedy.PositionedGlyph {
	px, sub := splitSubpixel(x)
	key := speedy.GlyphKey{
		Font:      l.font.id,
		Glyph:     uint32(g.GlyphID),
		Size:      int32(l.size),
		SubpixelX: sub,
	}
	img, err := l.font.glyph(key)
	if err != nil {
		speedy.Logger().Warn("font: glyph skipped", "glyph", key.Glyph, "err", err)
		return dst
	}
	if img.mask == nil {
		return dst
	}
	left, top := float32(px+img.origin.X), float32(y+img.origin.Y)
	size := img.mask.Rect.Size()
	return append(dst, speedy.PositionedGlyph{
		Key: key,
		Rect: speedy.NewRect(
			speedy.Vec2{X: left, Y: top},
			speedy.Vec2{X: left + float32(size.X), Y: top + float32(size.Y)},
		),
		Source: l.font,
	})
}

// splitSubpixel rounds x to the nearest subpixel step and returns the whole
// pixel and the step index.
func splitSubpixel(x fixed.Int26_6) (int, uint8) {
	const unit = 64 / subpixelSteps
	q := int(math.Floor(float64(x)/unit + 0.5))
	return q >> 2, uint8(q & (subpixelSteps - 1))
}

// visualRuns splits text into directional runs in display order.
func visualRuns(runes []rune) []layoutRun {
	whole := []layoutRun{{start: 0, end: len(runes), dir: di.DirectionLTR}}
	if !hasRTL(runes) {
		return whole
	}

	var p bidi.Paragraph
	if _, err := p.SetString(string(runes), bidi.DefaultDirection(bidi.LeftToRight)); err != nil {
		return whole
	}
	order, err := p.Order()
	if err != nil {
		return whole
	}
	runs := make([]layoutRun, 0, order.NumRuns())
	for i := range order.NumRuns() {
		r := order.Run(i)
		start, end := r.Pos()
		dir := di.DirectionLTR
		if r.Direction() == bidi.RightToLeft {
			dir = di.DirectionRTL
		}
		runs = append(runs, layoutRun{start: start, end: end + 1, dir: dir})
	}
	return runs
}

// hasRTL reports whether text contains a strong right-to-left character.
func hasRTL(runes []rune) bool {
	for _, r := range runes {
		if unicode.In(r, unicode.Hebrew, unicode.Arabic, unicode.Syriac, unicode.Thaana, unicode.Nko) {
			return true
		}
	}
	return false
}

func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if unicode.IsSpace(r) {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
