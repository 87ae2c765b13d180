package speedy

import (
	"image"
	"slices"
)

// recordedCall is one call made on a recordingBackend.
type recordedCall struct {
	op      string
	texture TextureID
	clip    *IRect
	tris    int
	verts   []Vertex
	color   Color
	proj    Mat4
	region  image.Rectangle
}

// recordingBackend records the calls made by the Renderer.
type recordingBackend struct {
	calls    []recordedCall
	textures map[TextureID]TextureDescriptor
	uploads  map[TextureID][]byte
	nextID   TextureID
	viewport UVec2
	scale    float64

	createErr  error
	presentErr error
	closed     bool
}

func newRecordingBackend() *recordingBackend {
	return &recordingBackend{
		textures: make(map[TextureID]TextureDescriptor),
		uploads:  make(map[TextureID][]byte),
	}
}

func (b *recordingBackend) Name() string { return "recording" }

func (b *recordingBackend) CreateTexture(desc TextureDescriptor, rgba []byte) (TextureID, error) {
	if b.createErr != nil {
		return 0, b.createErr
	}
	b.nextID++
	b.textures[b.nextID] = desc
	b.uploads[b.nextID] = slices.Clone(rgba)
	b.calls = append(b.calls, recordedCall{op: "create", texture: b.nextID})
	return b.nextID, nil
}

func (b *recordingBackend) UpdateTexture(id TextureID, region image.Rectangle, rgba []byte) error {
	b.calls = append(b.calls, recordedCall{op: "update", texture: id, region: region})
	return nil
}

func (b *recordingBackend) DestroyTexture(id TextureID) {
	delete(b.textures, id)
	b.calls = append(b.calls, recordedCall{op: "destroy", texture: id})
}

func (b *recordingBackend) SetViewport(size UVec2, scale float64) error {
	b.viewport, b.scale = size, scale
	return nil
}

func (b *recordingBackend) BeginFrame() error {
	b.calls = append(b.calls, recordedCall{op: "begin"})
	return nil
}

func (b *recordingBackend) SetProjection(m Mat4) {
	b.calls = append(b.calls, recordedCall{op: "projection", proj: m})
}

func (b *recordingBackend) Clear(c Color) {
	b.calls = append(b.calls, recordedCall{op: "clear", color: c})
}

func (b *recordingBackend) Draw(batch *Batch) error {
	b.calls = append(b.calls, recordedCall{
		op:      "draw",
		texture: batch.Texture,
		clip:    copyClip(batch.Clip),
		tris:    batch.TriangleCount(),
		verts:   slices.Clone(batch.Vertices),
	})
	return nil
}

func (b *recordingBackend) Present() error {
	b.calls = append(b.calls, recordedCall{op: "present"})
	return b.presentErr
}

func (b *recordingBackend) Capture() (*RawBitmapData, error) {
	b.calls = append(b.calls, recordedCall{op: "capture"})
	n := int(b.viewport.X * b.viewport.Y * 4)
	return &RawBitmapData{Data: make([]byte, n), Size: b.viewport, Format: ImageDataTypeRGBA}, nil
}

func (b *recordingBackend) Close() error {
	b.closed = true
	return nil
}

// ops returns the operation names, optionally filtered.
func (b *recordingBackend) ops(filter ...string) []string {
	var out []string
	for _, c := range b.calls {
		if len(filter) == 0 || slices.Contains(filter, c.op) {
			out = append(out, c.op)
		}
	}
	return out
}

// draws returns the recorded draw calls.
func (b *recordingBackend) draws() []recordedCall {
	var out []recordedCall
	for _, c := range b.calls {
		if c.op == "draw" {
			out = append(out, c)
		}
	}
	return out
}

func (b *recordingBackend) reset() {
	b.calls = nil
}
