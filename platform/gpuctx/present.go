// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpuctx

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/speedy"
)

// ErrNoTextureCreator is returned by Present when the host drawer has no
// texture creator.
var ErrNoTextureCreator = errors.New("gpuctx: host has no texture creator")

type textureDestroyer interface {
	Destroy()
}

// presenter forwards to a backend and, on Present, copies the finished
// frame into a host texture drawn at the window origin.
type presenter struct {
	speedy.Backend

	drawer gpucontext.TextureDrawer
	window gpucontext.WindowProvider
	tex    gpucontext.Texture
}

func newPresenter(b speedy.Backend, drawer gpucontext.TextureDrawer, window gpucontext.WindowProvider) *presenter {
	return &presenter{Backend: b, drawer: drawer, window: window}
}

func (p *presenter) Present() error {
	if err := p.Backend.Present(); err != nil {
		return err
	}
	frame, err := p.Backend.Capture()
	if err != nil {
		return err
	}
	if frame.Size.X == 0 || frame.Size.Y == 0 {
		return nil
	}
	if err := p.upload(frame); err != nil {
		return err
	}
	if err := p.drawer.DrawTexture(p.tex, 0, 0); err != nil {
		return fmt.Errorf("gpuctx: draw frame: %w", err)
	}
	p.window.RequestRedraw()
	return nil
}

// upload writes the frame into the host texture, replacing it when the
// size changed or the texture cannot be updated in place.
func (p *presenter) upload(frame *speedy.RawBitmapData) error {
	w, h := int(frame.Size.X), int(frame.Size.Y)
	if p.tex != nil && p.tex.Width() == w && p.tex.Height() == h {
		if u, ok := p.tex.(gpucontext.TextureUpdater); ok {
			if err := u.UpdateData(frame.Data); err != nil {
				return fmt.Errorf("gpuctx: update frame texture: %w", err)
			}
			return nil
		}
	}

	creator := p.drawer.TextureCreator()
	if creator == nil {
		return ErrNoTextureCreator
	}
	tex, err := creator.NewTextureFromRGBA(w, h, frame.Data)
	if err != nil {
		return fmt.Errorf("gpuctx: create frame texture: %w", err)
	}
	p.release()
	p.tex = tex
	return nil
}

func (p *presenter) release() {
	if d, ok := p.tex.(textureDestroyer); ok {
		d.Destroy()
	}
	p.tex = nil
}

func (p *presenter) Close() error {
	p.release()
	return p.Backend.Close()
}
