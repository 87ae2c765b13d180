// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu implements speedy.Backend on the gogpu/wgpu hardware
// abstraction layer.
//
// Every batch is drawn by a single render pipeline. Vertex positions are
// transformed to clip space on the CPU, so the pipeline has no uniform
// buffer; its only bind group holds the batch texture and a sampler.
// Untextured batches bind a 1x1 opaque white texture.
//
// Draw calls are recorded and executed in one render pass when the frame
// is presented or captured. Rendering targets an offscreen RGBA8 texture,
// which Capture reads back through a staging buffer.
//
// Importing the package registers it with the backend registry under the
// name "wgpu". A hal backend must be linked in for New to find a device,
// for example:
//
//	import _ "github.com/gogpu/wgpu/hal/vulkan"
//
// Hosts that already own a device pass it to NewFromDevice or
// NewFromProvider instead.
package wgpu
