// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/speedy"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/batch.wgsl
var batchShaderSource string

// targetFormat is the format of the offscreen render target.
const targetFormat = gputypes.TextureFormatRGBA8Unorm

// batchPipeline owns the render pipeline shared by all batches and the
// two samplers selected by ImageSmoothingMode.
type batchPipeline struct {
	device hal.Device

	shader      hal.ShaderModule
	groupLayout hal.BindGroupLayout
	pipeLayout  hal.PipelineLayout
	pipeline    hal.RenderPipeline

	nearest hal.Sampler
	linear  hal.Sampler
}

// shaderSource returns the batch shader for a hal backend. Vulkan takes
// SPIR-V compiled with naga; the other backends translate WGSL
// themselves.
func shaderSource(variant gputypes.Backend) (hal.ShaderSource, error) {
	if variant != gputypes.BackendVulkan {
		return hal.ShaderSource{WGSL: batchShaderSource}, nil
	}
	spirv, err := naga.Compile(batchShaderSource)
	if err != nil {
		return hal.ShaderSource{}, fmt.Errorf("compile batch shader: %w", err)
	}
	words := make([]uint32, len(spirv)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(spirv[i*4:])
	}
	return hal.ShaderSource{SPIRV: words}, nil
}

func newBatchPipeline(device hal.Device, variant gputypes.Backend) (*batchPipeline, error) {
	p := &batchPipeline{device: device}
	if err := p.create(variant); err != nil {
		p.destroy()
		return nil, err
	}
	return p, nil
}

func (p *batchPipeline) create(variant gputypes.Backend) error {
	src, err := shaderSource(variant)
	if err != nil {
		return err
	}
	p.shader, err = p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "speedy_batch_shader",
		Source: src,
	})
	if err != nil {
		return fmt.Errorf("create batch shader: %w", err)
	}

	// Binding 0: batch texture. Binding 1: sampler.
	p.groupLayout, err = p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "speedy_batch_texture_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create batch bind group layout: %w", err)
	}

	p.pipeLayout, err = p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "speedy_batch_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.groupLayout},
	})
	if err != nil {
		return fmt.Errorf("create batch pipeline layout: %w", err)
	}

	p.nearest, err = p.createSampler("speedy_nearest_sampler", gputypes.FilterModeNearest)
	if err != nil {
		return err
	}
	p.linear, err = p.createSampler("speedy_linear_sampler", gputypes.FilterModeLinear)
	if err != nil {
		return err
	}

	blend := gputypes.BlendStateAlpha()
	p.pipeline, err = p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "speedy_batch_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
			Buffers:    batchVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    targetFormat,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create batch pipeline: %w", err)
	}
	return nil
}

func (p *batchPipeline) createSampler(label string, filter gputypes.FilterMode) (hal.Sampler, error) {
	s, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        label,
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    filter,
		MinFilter:    filter,
		MipmapFilter: gputypes.FilterModeNearest,
		LodMaxClamp:  32,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	return s, nil
}

// bindGroup creates the bind group sampling view with the sampler for
// smoothing.
func (p *batchPipeline) bindGroup(view hal.TextureView, smoothing speedy.ImageSmoothingMode) (hal.BindGroup, error) {
	sampler := p.nearest
	if smoothing == speedy.ImageSmoothingLinear {
		sampler = p.linear
	}
	g, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "speedy_batch_texture",
		Layout: p.groupLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: view.NativeHandle()}},
			{Binding: 1, Resource: gputypes.SamplerBinding{Sampler: sampler.NativeHandle()}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create texture bind group: %w", err)
	}
	return g, nil
}

// destroy releases whatever create managed to allocate.
func (p *batchPipeline) destroy() {
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.linear != nil {
		p.device.DestroySampler(p.linear)
		p.linear = nil
	}
	if p.nearest != nil {
		p.device.DestroySampler(p.nearest)
		p.nearest = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.groupLayout != nil {
		p.device.DestroyBindGroupLayout(p.groupLayout)
		p.groupLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}
