// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"image"
	"sync"
)

// frontBuffer holds the last presented frame for readers on other
// goroutines, such as a canvas blit.
type frontBuffer struct {
	mu     sync.Mutex
	img    *image.NRGBA
	frames uint64
}

func (f *frontBuffer) store(src *image.NRGBA) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.img == nil || f.img.Rect != src.Rect {
		f.img = image.NewNRGBA(src.Rect)
	}
	copy(f.img.Pix, src.Pix)
	f.frames++
}

func (f *frontBuffer) load() *image.NRGBA {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.img == nil {
		return nil
	}
	out := image.NewNRGBA(f.img.Rect)
	copy(out.Pix, f.img.Pix)
	return out
}

func (f *frontBuffer) count() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames
}
