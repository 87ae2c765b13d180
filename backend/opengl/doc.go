// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package opengl implements speedy.Backend on OpenGL 3.3 core.
//
// The backend draws into a framebuffer object the size of the viewport.
// Present blits it to the window's default framebuffer and calls the swap
// function supplied by the platform; Capture reads it back with
// glReadPixels. Batches execute as soon as they are drawn.
//
// All calls must be made on the goroutine that owns the current GL
// context. The backend is created by platforms that own a GL window, such
// as platform/glfw, and is not registered with the backend registry.
package opengl
