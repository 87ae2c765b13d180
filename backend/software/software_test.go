// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/speedy"
	"github.com/gogpu/speedy/backend"
)

func newRenderer(t *testing.T, size speedy.UVec2, scale float64) (*speedy.Renderer, *Backend) {
	t.Helper()
	b := New(size, scale)
	r, err := speedy.NewRenderer(b, size, scale)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r, b
}

func pixel(raw *speedy.RawBitmapData, x, y int) color.NRGBA {
	bpp := raw.Format.BytesPerPixel()
	i := (y*int(raw.Size.X) + x) * bpp
	p := raw.Data[i : i+bpp]
	if bpp == 3 {
		return color.NRGBA{R: p[0], G: p[1], B: p[2], A: 255}
	}
	return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

var (
	black = color.NRGBA{A: 255}
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func capture(t *testing.T, b *Backend) *speedy.RawBitmapData {
	t.Helper()
	raw, err := b.Capture()
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	return raw
}

func TestRegisteredWithBackendPackage(t *testing.T) {
	b, err := backend.Open(backend.BackendSoftware, backend.Config{Size: speedy.UVec2{X: 8, Y: 8}})
	if err != nil {
		t.Fatalf("Open(software) error = %v", err)
	}
	if _, ok := b.(*Backend); !ok {
		t.Errorf("Open(software) = %T, want *Backend", b)
	}
}

func TestClearAndCapture(t *testing.T) {
	b := New(speedy.UVec2{X: 3, Y: 2}, 1)
	b.Clear(speedy.ColorRed)

	raw := capture(t, b)
	if raw.Format != speedy.ImageDataTypeRGBA || raw.Size != (speedy.UVec2{X: 3, Y: 2}) {
		t.Fatalf("Capture() = %v %v, want RGBA 3x2", raw.Format, raw.Size)
	}
	if len(raw.Data) != 3*2*4 {
		t.Fatalf("len(Data) = %d, want 24", len(raw.Data))
	}
	for y := range 2 {
		for x := range 3 {
			if got := pixel(raw, x, y); got != red {
				t.Errorf("pixel(%d,%d) = %v, want %v", x, y, got, red)
			}
		}
	}
}

func TestDrawRectangleRoundTrip(t *testing.T) {
	r, b := newRenderer(t, speedy.UVec2{X: 4, Y: 4}, 1)

	err := r.DrawFrame(func(g *speedy.Graphics) {
		g.ClearScreen(speedy.ColorRed)
		g.DrawRectangle(speedy.NewRect(speedy.Vec2{X: 1, Y: 1}, speedy.Vec2{X: 3, Y: 3}), speedy.ColorBlue)
	})
	if err != nil {
		t.Fatalf("DrawFrame() error = %v", err)
	}

	raw := capture(t, b)
	for y := range 4 {
		for x := range 4 {
			want := red
			if x >= 1 && x < 3 && y >= 1 && y < 3 {
				want = blue
			}
			if got := pixel(raw, x, y); got != want {
				t.Errorf("pixel(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}

	frame := b.Frame()
	if frame == nil {
		t.Fatal("Frame() = nil after present")
	}
	if got := frame.NRGBAAt(1, 1); got != blue {
		t.Errorf("Frame().At(1,1) = %v, want %v", got, blue)
	}
	if b.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", b.Frames())
	}
}

func TestSharedEdgeCoveredOnce(t *testing.T) {
	r, b := newRenderer(t, speedy.UVec2{X: 4, Y: 4}, 1)

	// The quad is split along its diagonal, which passes through pixel
	// centers. Double coverage would blend twice.
	half := speedy.RGBA(1, 1, 1, 0.5)
	err := r.DrawFrame(func(g *speedy.Graphics) {
		g.ClearScreen(speedy.ColorBlack)
		g.DrawRectangle(speedy.RectFromSize(speedy.Vec2{}, speedy.Vec2{X: 4, Y: 4}), half)
	})
	if err != nil {
		t.Fatalf("DrawFrame() error = %v", err)
	}

	raw := capture(t, b)
	for y := range 4 {
		for x := range 4 {
			if got := pixel(raw, x, y); got.R != 128 {
				t.Errorf("pixel(%d,%d).R = %d, want 128", x, y, got.R)
			}
		}
	}
}

func TestScaleFactor(t *testing.T) {
	r, b := newRenderer(t, speedy.UVec2{X: 4, Y: 4}, 2)

	err := r.DrawFrame(func(g *speedy.Graphics) {
		g.ClearScreen(speedy.ColorBlack)
		g.DrawRectangle(speedy.RectFromSize(speedy.Vec2{}, speedy.Vec2{X: 1, Y: 1}), speedy.ColorWhite)
	})
	if err != nil {
		t.Fatalf("DrawFrame() error = %v", err)
	}

	raw := capture(t, b)
	tests := []struct {
		x, y int
		want color.NRGBA
	}{
		{0, 0, white},
		{1, 1, white},
		{2, 1, black},
		{1, 2, black},
		{3, 3, black},
	}
	for _, tt := range tests {
		if got := pixel(raw, tt.x, tt.y); got != tt.want {
			t.Errorf("pixel(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestClip(t *testing.T) {
	r, b := newRenderer(t, speedy.UVec2{X: 4, Y: 4}, 1)

	err := r.DrawFrame(func(g *speedy.Graphics) {
		g.ClearScreen(speedy.ColorBlack)
		g.SetClip(&speedy.IRect{BottomRight: speedy.IVec2{X: 2, Y: 4}})
		g.DrawRectangle(speedy.RectFromSize(speedy.Vec2{}, speedy.Vec2{X: 4, Y: 4}), speedy.ColorWhite)
		g.ClearScreen(speedy.ColorRed)
		g.DrawRectangle(speedy.RectFromSize(speedy.Vec2{}, speedy.Vec2{X: 4, Y: 4}), speedy.ColorWhite)
	})
	if err != nil {
		t.Fatalf("DrawFrame() error = %v", err)
	}

	raw := capture(t, b)
	for y := range 4 {
		for x := range 4 {
			want := red
			if x < 2 {
				want = white
			}
			if got := pixel(raw, x, y); got != want {
				t.Errorf("pixel(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestInvertedClipDrawsNothing(t *testing.T) {
	r, b := newRenderer(t, speedy.UVec2{X: 64, Y: 64}, 1)

	err := r.DrawFrame(func(g *speedy.Graphics) {
		g.ClearScreen(speedy.ColorBlack)
		g.SetClip(&speedy.IRect{
			TopLeft:     speedy.IVec2{X: 50, Y: 50},
			BottomRight: speedy.IVec2{X: 10, Y: 10},
		})
		g.DrawRectangle(speedy.RectFromSize(speedy.Vec2{}, speedy.Vec2{X: 64, Y: 64}), speedy.ColorWhite)
	})
	if err != nil {
		t.Fatalf("DrawFrame() error = %v", err)
	}

	raw := capture(t, b)
	for _, p := range [][2]int{{20, 20}, {10, 10}, {49, 49}, {0, 0}} {
		if got := pixel(raw, p[0], p[1]); got != black {
			t.Errorf("pixel(%d,%d) = %v, want %v", p[0], p[1], got, black)
		}
	}
}

func TestCircleMask(t *testing.T) {
	r, b := newRenderer(t, speedy.UVec2{X: 16, Y: 16}, 1)

	err := r.DrawFrame(func(g *speedy.Graphics) {
		g.ClearScreen(speedy.ColorBlack)
		g.DrawCircle(speedy.Vec2{X: 8, Y: 8}, 8, speedy.ColorWhite)
	})
	if err != nil {
		t.Fatalf("DrawFrame() error = %v", err)
	}

	raw := capture(t, b)
	tests := []struct {
		name string
		x, y int
		want color.NRGBA
	}{
		{"center", 8, 8, white},
		{"left edge", 0, 8, white},
		{"top edge", 8, 0, white},
		{"top-left corner", 0, 0, black},
		{"bottom-right corner", 15, 15, black},
		{"outside diagonal", 1, 1, black},
	}
	for _, tt := range tests {
		if got := pixel(raw, tt.x, tt.y); got != tt.want {
			t.Errorf("%s: pixel(%d,%d) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestImageSampling(t *testing.T) {
	tests := []struct {
		name      string
		smoothing speedy.ImageSmoothingMode
		want      [4]uint8
	}{
		{"nearest", speedy.ImageSmoothingNearestNeighbor, [4]uint8{0, 0, 255, 255}},
		{"linear", speedy.ImageSmoothingLinear, [4]uint8{0, 64, 191, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, b := newRenderer(t, speedy.UVec2{X: 4, Y: 1}, 1)
			img, err := r.CreateImageFromRawPixels(speedy.ImageDataTypeRGB, tt.smoothing,
				speedy.UVec2{X: 2, Y: 1}, []byte{0, 0, 0, 255, 255, 255})
			if err != nil {
				t.Fatalf("CreateImageFromRawPixels() error = %v", err)
			}

			err = r.DrawFrame(func(g *speedy.Graphics) {
				g.DrawRectangleImage(speedy.RectFromSize(speedy.Vec2{}, speedy.Vec2{X: 4, Y: 1}), img)
			})
			if err != nil {
				t.Fatalf("DrawFrame() error = %v", err)
			}

			raw := capture(t, b)
			for x, want := range tt.want {
				if got := pixel(raw, x, 0); got.R != want || got.A != 255 {
					t.Errorf("pixel(%d,0) = %v, want gray %d", x, got, want)
				}
			}
		})
	}
}

func TestCaptureInsideFrame(t *testing.T) {
	r, _ := newRenderer(t, speedy.UVec2{X: 2, Y: 2}, 1)

	var raw *speedy.RawBitmapData
	var captureErr error
	err := r.DrawFrame(func(g *speedy.Graphics) {
		g.ClearScreen(speedy.ColorBlack)
		g.DrawRectangle(speedy.RectFromSize(speedy.Vec2{}, speedy.Vec2{X: 1, Y: 2}), speedy.ColorBlue)
		raw, captureErr = g.Capture(speedy.ImageDataTypeRGB)
	})
	if err != nil || captureErr != nil {
		t.Fatalf("DrawFrame() error = %v, Capture() error = %v", err, captureErr)
	}
	if len(raw.Data) != 2*2*3 {
		t.Fatalf("len(Data) = %d, want 12", len(raw.Data))
	}
	if got := pixel(raw, 0, 1); got != blue {
		t.Errorf("pixel(0,1) = %v, want %v", got, blue)
	}
	if got := pixel(raw, 1, 1); got != black {
		t.Errorf("pixel(1,1) = %v, want %v", got, black)
	}
}

func TestTextureErrors(t *testing.T) {
	b := New(speedy.UVec2{X: 4, Y: 4}, 1)
	id, err := b.CreateTexture(speedy.TextureDescriptor{Size: speedy.UVec2{X: 2, Y: 2}}, make([]byte, 16))
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}

	if _, err := b.CreateTexture(speedy.TextureDescriptor{Size: speedy.UVec2{X: 2, Y: 2}}, make([]byte, 3)); err == nil {
		t.Error("CreateTexture(short data) error = nil, want error")
	}
	if err := b.UpdateTexture(id, image.Rect(1, 1, 2, 2), []byte{1, 2, 3, 4}); err != nil {
		t.Errorf("UpdateTexture(inside) error = %v", err)
	}
	if err := b.UpdateTexture(id, image.Rect(1, 1, 3, 3), make([]byte, 16)); err == nil {
		t.Error("UpdateTexture(outside) error = nil, want error")
	}
	if err := b.UpdateTexture(99, image.Rect(0, 0, 1, 1), make([]byte, 4)); !errors.Is(err, ErrUnknownTexture) {
		t.Errorf("UpdateTexture(unknown) error = %v, want ErrUnknownTexture", err)
	}

	b.DestroyTexture(id)
	batch := &speedy.Batch{Texture: id}
	if err := b.Draw(batch); !errors.Is(err, ErrUnknownTexture) {
		t.Errorf("Draw(destroyed texture) error = %v, want ErrUnknownTexture", err)
	}

	if err := b.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := b.BeginFrame(); !errors.Is(err, ErrClosed) {
		t.Errorf("BeginFrame() after Close error = %v, want ErrClosed", err)
	}
	if _, err := b.Capture(); !errors.Is(err, ErrClosed) {
		t.Errorf("Capture() after Close error = %v, want ErrClosed", err)
	}
}

func TestUpdateTextureWritesRegion(t *testing.T) {
	b := New(speedy.UVec2{X: 1, Y: 1}, 1)
	id, err := b.CreateTexture(speedy.TextureDescriptor{Size: speedy.UVec2{X: 2, Y: 2}}, make([]byte, 16))
	if err != nil {
		t.Fatalf("CreateTexture() error = %v", err)
	}
	if err := b.UpdateTexture(id, image.Rect(1, 0, 2, 2), []byte{1, 1, 1, 1, 2, 2, 2, 2}); err != nil {
		t.Fatalf("UpdateTexture() error = %v", err)
	}
	tex := b.textures[id]
	tests := []struct {
		x, y int
		want uint8
	}{
		{0, 0, 0}, {1, 0, 1}, {0, 1, 0}, {1, 1, 2},
	}
	for _, tt := range tests {
		if got := tex.pix[(tt.y*2+tt.x)*4]; got != tt.want {
			t.Errorf("texel(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSetViewportResizes(t *testing.T) {
	b := New(speedy.UVec2{X: 2, Y: 2}, 1)
	if err := b.SetViewport(speedy.UVec2{X: 5, Y: 3}, 2); err != nil {
		t.Fatalf("SetViewport() error = %v", err)
	}
	raw := capture(t, b)
	if raw.Size != (speedy.UVec2{X: 5, Y: 3}) || len(raw.Data) != 5*3*4 {
		t.Errorf("Capture() size = %v with %d bytes, want 5x3 with 60", raw.Size, len(raw.Data))
	}
}
