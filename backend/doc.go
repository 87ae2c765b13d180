// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend selects an offscreen rendering backend for speedy.
//
// Backends that can render without a native window register themselves from
// init() functions and are selected at runtime. Import the ones you need:
//
//	import (
//		_ "github.com/gogpu/speedy/backend/software"
//		_ "github.com/gogpu/speedy/backend/wgpu"
//	)
//
// # Backend Selection
//
// Use Default to get the best available backend, or Open to request a
// specific backend by name:
//
//	b, err := backend.Default(backend.Config{Size: speedy.UVec2{X: 800, Y: 600}})
//
//	b, err := backend.Open(backend.BackendSoftware, cfg)
//
// The returned value implements speedy.Backend and is usually handed to
// speedy.NewRenderer.
//
// # Available Backends
//
//   - "wgpu": GPU rendering via gogpu/wgpu (priority 10)
//   - "software": CPU rasterizer (priority 0, always available)
package backend
