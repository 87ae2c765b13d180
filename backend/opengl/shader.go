// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// Attribute locations match the WGSL batch shader of backend/wgpu.
const vertexShaderSource = `#version 330 core
layout(location = 0) in vec2 a_position;
layout(location = 1) in vec4 a_color;
layout(location = 2) in vec2 a_tex_coord;
layout(location = 3) in vec2 a_circle_coord;
layout(location = 4) in float a_circle_mix;

out vec4 v_color;
out vec2 v_tex_coord;
out vec2 v_circle_coord;
out float v_circle_mix;

void main() {
	gl_Position = vec4(a_position, 0.0, 1.0);
	v_color = a_color;
	v_tex_coord = a_tex_coord;
	v_circle_coord = a_circle_coord;
	v_circle_mix = a_circle_mix;
}
`

const fragmentShaderSource = `#version 330 core
in vec4 v_color;
in vec2 v_tex_coord;
in vec2 v_circle_coord;
in float v_circle_mix;

uniform sampler2D u_texture;

out vec4 frag_color;

void main() {
	if (v_circle_mix > 0.0 && dot(v_circle_coord, v_circle_coord) > 1.0) {
		discard;
	}
	frag_color = v_color * texture(u_texture, v_tex_coord);
}
`

// compileShader compiles one shader stage.
func compileShader(src string, typ uint32) (uint32, error) {
	handle := gl.CreateShader(typ)
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(handle, 1, csources, nil)
	free()
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(handle, logLength, nil, gl.Str(msg))
		gl.DeleteShader(handle)
		return 0, fmt.Errorf("opengl: compile shader: %s", strings.TrimRight(msg, "\x00"))
	}
	return handle, nil
}

// linkProgram builds the batch program and binds u_texture to unit 0.
func linkProgram() (uint32, error) {
	vs, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)
	gl.DetachShader(program, vs)
	gl.DetachShader(program, fs)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(msg))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("opengl: link program: %s", strings.TrimRight(msg, "\x00"))
	}

	gl.UseProgram(program)
	gl.Uniform1i(gl.GetUniformLocation(program, gl.Str("u_texture\x00")), 0)
	return program, nil
}
