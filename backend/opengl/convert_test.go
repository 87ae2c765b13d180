// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package opengl

import (
	"image"
	"slices"
	"testing"

	"github.com/gogpu/speedy"
)

func TestAppendVertices(t *testing.T) {
	v := speedy.Vertex{
		Position:    speedy.Vec2{X: 1, Y: 2},
		Color:       speedy.ColorRed,
		TexCoord:    speedy.Vec2{X: 0.25, Y: 0.5},
		CircleCoord: speedy.Vec2{X: 1, Y: -1},
		CircleMix:   1,
	}
	got := appendVertices(nil, []speedy.Vertex{v}, speedy.Identity4())
	want := []float32{1, 2, 1, 0, 0, 1, 0.25, 0.5, 1, -1, 1}
	if !slices.Equal(got, want) {
		t.Errorf("appendVertices = %v, want %v", got, want)
	}
	if len(got) != floatsPerVertex {
		t.Errorf("len = %d, want %d", len(got), floatsPerVertex)
	}
}

func TestAppendVerticesProjects(t *testing.T) {
	proj := speedy.PixelPerfectProjection(speedy.UVec2{X: 100, Y: 50}, 1)
	got := appendVertices(nil, []speedy.Vertex{{Position: speedy.Vec2{X: 0, Y: 0}}}, proj)
	if got[0] != -1 || got[1] != 1 {
		t.Errorf("top-left corner = (%v, %v), want (-1, 1)", got[0], got[1])
	}
}

func TestScissorRect(t *testing.T) {
	tests := []struct {
		name       string
		r          image.Rectangle
		height     int
		x, y, w, h int32
	}{
		{"full", image.Rect(0, 0, 64, 32), 32, 0, 0, 64, 32},
		{"top strip", image.Rect(0, 0, 64, 8), 32, 0, 24, 64, 8},
		{"bottom right", image.Rect(10, 20, 30, 32), 32, 10, 0, 20, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h := scissorRect(tt.r, tt.height)
			if x != tt.x || y != tt.y || w != tt.w || h != tt.h {
				t.Errorf("scissorRect = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
					x, y, w, h, tt.x, tt.y, tt.w, tt.h)
			}
		})
	}
}

func TestFlipRows(t *testing.T) {
	tests := []struct {
		name string
		pix  []byte
		want []byte
	}{
		{"three rows", []byte{1, 1, 2, 2, 3, 3}, []byte{3, 3, 2, 2, 1, 1}},
		{"two rows", []byte{1, 2, 3, 4}, []byte{3, 4, 1, 2}},
		{"one row", []byte{1, 2}, []byte{1, 2}},
		{"empty", []byte{}, []byte{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flipRows(tt.pix, 2)
			if !slices.Equal(tt.pix, tt.want) {
				t.Errorf("flipRows = %v, want %v", tt.pix, tt.want)
			}
		})
	}
}
