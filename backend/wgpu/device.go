// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/speedy"
	"github.com/gogpu/wgpu/hal"
)

// ErrNoAdapter is returned when none of the requested hal backends
// exposes an adapter.
var ErrNoAdapter = errors.New("wgpu: no adapter found")

// DefaultBackends is the order in which New tries hal backends.
var DefaultBackends = []gputypes.Backend{
	gputypes.BackendVulkan,
	gputypes.BackendMetal,
	gputypes.BackendDX12,
	gputypes.BackendGL,
}

// Config configures New.
type Config struct {
	// Backends lists the hal backends to try, in order. Nil means
	// DefaultBackends. Backends that are not linked in are skipped.
	Backends []gputypes.Backend

	// Size is the render target size in physical pixels.
	Size speedy.UVec2

	// Scale is the scale factor. Values <= 0 mean 1.
	Scale float64
}

// gpuDevice is an opened hal device. Devices opened by New are owned and
// destroyed on Close; devices passed in by the host are not.
type gpuDevice struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	info     gputypes.AdapterInfo
	variant  gputypes.Backend
	owned    bool
}

// openDevice opens the first adapter of the first usable backend,
// preferring discrete GPUs over integrated ones.
func openDevice(variants []gputypes.Backend) (*gpuDevice, error) {
	if len(variants) == 0 {
		variants = DefaultBackends
	}

	var errs []error
	for _, variant := range variants {
		b, ok := hal.GetBackend(variant)
		if !ok {
			continue
		}
		instance, err := b.CreateInstance(&hal.InstanceDescriptor{})
		if err != nil {
			errs = append(errs, fmt.Errorf("%v: create instance: %w", variant, err))
			continue
		}

		adapters := instance.EnumerateAdapters(nil)
		if len(adapters) == 0 {
			instance.Destroy()
			continue
		}
		chosen := pickAdapter(adapters)

		open, err := chosen.Adapter.Open(0, gputypes.DefaultLimits())
		if err != nil {
			instance.Destroy()
			errs = append(errs, fmt.Errorf("%v: open %s: %w", variant, chosen.Info.Name, err))
			continue
		}
		return &gpuDevice{
			instance: instance,
			device:   open.Device,
			queue:    open.Queue,
			info:     chosen.Info,
			variant:  variant,
			owned:    true,
		}, nil
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrNoAdapter, errors.Join(errs...))
	}
	return nil, ErrNoAdapter
}

func pickAdapter(adapters []hal.ExposedAdapter) hal.ExposedAdapter {
	best := adapters[0]
	for _, a := range adapters[1:] {
		if rankDevice(a.Info.DeviceType) > rankDevice(best.Info.DeviceType) {
			best = a
		}
	}
	return best
}

func rankDevice(t gputypes.DeviceType) int {
	switch t {
	case gputypes.DeviceTypeDiscreteGPU:
		return 2
	case gputypes.DeviceTypeIntegratedGPU:
		return 1
	default:
		return 0
	}
}

// halProvider is implemented by device providers that expose their hal
// objects, such as a gogpu application.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// deviceFromProvider extracts a hal device and queue from a host.
func deviceFromProvider(provider any) (*gpuDevice, error) {
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("wgpu: %T does not expose a hal device", provider)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("wgpu: HalDevice returned %T, want hal.Device", hp.HalDevice())
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("wgpu: HalQueue returned %T, want hal.Queue", hp.HalQueue())
	}
	return &gpuDevice{device: device, queue: queue}, nil
}

func (d *gpuDevice) destroy() {
	if !d.owned {
		return
	}
	d.device.Destroy()
	if d.instance != nil {
		d.instance.Destroy()
	}
}
