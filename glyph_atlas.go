package speedy

import (
	"errors"
	"image"
)

const (
	glyphAtlasPageSize = 1024
	glyphAtlasPadding  = 1
)

var errGlyphTooLarge = errors.New("speedy: glyph larger than atlas page")

// atlasEntry locates a glyph mask in the atlas. An entry with a zero
// texture is an empty glyph.
type atlasEntry struct {
	texture TextureID
	uv      Rect
}

// shelf is one row of the shelf packer.
type shelf struct {
	y, height, nextX int
}

type atlasPage struct {
	texture TextureID
	shelves []shelf
}

// glyphAtlas packs glyph masks into RGBA textures. Glyphs are stored as
// white with coverage in alpha so the vertex color tints them.
type glyphAtlas struct {
	backend Backend
	pages   []*atlasPage
	entries map[GlyphKey]atlasEntry
}

func newGlyphAtlas(b Backend) *glyphAtlas {
	return &glyphAtlas{backend: b, entries: make(map[GlyphKey]atlasEntry)}
}

// lookup returns the atlas entry for a glyph, rasterizing and uploading it
// on first use.
func (a *glyphAtlas) lookup(g PositionedGlyph) (atlasEntry, error) {
	if e, ok := a.entries[g.Key]; ok {
		return e, nil
	}
	if g.Source == nil {
		return atlasEntry{}, nil
	}
	mask, err := g.Source.RasterizeGlyph(g.Key)
	if err != nil {
		return atlasEntry{}, err
	}
	if mask == nil || mask.Rect.Empty() {
		a.entries[g.Key] = atlasEntry{}
		return atlasEntry{}, nil
	}

	w, h := mask.Rect.Dx(), mask.Rect.Dy()
	page, x, y, err := a.allocate(w, h)
	if err != nil {
		return atlasEntry{}, err
	}
	region := image.Rect(x, y, x+w, y+h)
	if err := a.backend.UpdateTexture(page.texture, region, maskToRGBA(mask)); err != nil {
		return atlasEntry{}, err
	}

	const size = glyphAtlasPageSize
	e := atlasEntry{
		texture: page.texture,
		uv: NewRect(
			Vec2{X: float32(x) / size, Y: float32(y) / size},
			Vec2{X: float32(x+w) / size, Y: float32(y+h) / size},
		),
	}
	a.entries[g.Key] = e
	return e, nil
}

// allocate finds space for a w x h mask, opening a new page when the
// existing ones are full.
func (a *glyphAtlas) allocate(w, h int) (*atlasPage, int, int, error) {
	pw, ph := w+glyphAtlasPadding, h+glyphAtlasPadding
	if pw > glyphAtlasPageSize || ph > glyphAtlasPageSize {
		return nil, 0, 0, errGlyphTooLarge
	}
	for _, p := range a.pages {
		if x, y, ok := p.place(pw, ph); ok {
			return p, x, y, nil
		}
	}

	id, err := a.backend.CreateTexture(TextureDescriptor{
		Size:      UVec2{X: glyphAtlasPageSize, Y: glyphAtlasPageSize},
		Smoothing: ImageSmoothingLinear,
	}, make([]byte, glyphAtlasPageSize*glyphAtlasPageSize*4))
	if err != nil {
		return nil, 0, 0, err
	}
	p := &atlasPage{texture: id}
	a.pages = append(a.pages, p)
	Logger().Debug("speedy: glyph atlas page created", "pages", len(a.pages))

	x, y, _ := p.place(pw, ph)
	return p, x, y, nil
}

// place reserves a padded rectangle on the page.
func (p *atlasPage) place(pw, ph int) (int, int, bool) {
	for i := range p.shelves {
		s := &p.shelves[i]
		if s.nextX+pw <= glyphAtlasPageSize && ph <= s.height {
			x := s.nextX
			s.nextX += pw
			return x, s.y, true
		}
	}
	y := 0
	if n := len(p.shelves); n > 0 {
		y = p.shelves[n-1].y + p.shelves[n-1].height
	}
	if y+ph > glyphAtlasPageSize {
		return 0, 0, false
	}
	p.shelves = append(p.shelves, shelf{y: y, height: ph, nextX: pw})
	return 0, y, true
}

// close destroys all pages.
func (a *glyphAtlas) close() {
	for _, p := range a.pages {
		a.backend.DestroyTexture(p.texture)
	}
	a.pages = nil
	clear(a.entries)
}

func maskToRGBA(mask *image.Alpha) []byte {
	w, h := mask.Rect.Dx(), mask.Rect.Dy()
	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		row := mask.Pix[y*mask.Stride:]
		for x := 0; x < w; x++ {
			o := (y*w + x) * 4
			out[o+0] = 0xFF
			out[o+1] = 0xFF
			out[o+2] = 0xFF
			out[o+3] = row[x]
		}
	}
	return out
}
