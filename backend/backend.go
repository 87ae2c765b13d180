// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"github.com/gogpu/speedy"
)

// Backend name constants.
const (
	// BackendSoftware is the name of the CPU rasterizer.
	BackendSoftware = "software"
	// BackendWGPU is the name of the Pure Go GPU backend (gogpu/wgpu).
	BackendWGPU = "wgpu"
)

// Config describes the offscreen surface a backend renders to.
type Config struct {
	// Size is the framebuffer size in physical pixels.
	Size speedy.UVec2
	// Scale is the initial scale factor. Zero means 1.
	Scale float64
}

// ScaleFactor returns Scale, or 1 when it is not positive.
func (c Config) ScaleFactor() float64 {
	if c.Scale <= 0 {
		return 1
	}
	return c.Scale
}

// Factory creates a backend. It returns an error wrapping
// speedy.ErrBackendNotAvailable when the backend cannot run on this host.
type Factory func(cfg Config) (speedy.Backend, error)
