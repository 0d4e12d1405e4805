// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package halgfx

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rgraph/gfx"
)

var (
	// ErrNoHAL is returned when a provider does not expose HAL objects.
	ErrNoHAL = errors.New("halgfx: provider does not expose HAL types")

	// ErrNilQueue is returned when a device is created without a queue.
	ErrNilQueue = errors.New("halgfx: queue is nil")

	// ErrGPUTimeout is returned when a submission does not complete in time.
	ErrGPUTimeout = errors.New("halgfx: timed out waiting for GPU")
)

// halProvider is implemented by hosts that share their HAL device.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// Device creates gfx resources on a hal.Device.
type Device struct {
	device hal.Device
	queue  hal.Queue

	pipelines *pipelineCache
	layouts   *layoutCache
}

// FromProvider returns a device backed by the HAL device and queue of p.
func FromProvider(p gpucontext.DeviceProvider) (*Device, error) {
	hp, ok := p.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	return New(device, queue)
}

// New returns a device using device and queue. The caller keeps ownership
// of both.
func New(device hal.Device, queue hal.Queue) (*Device, error) {
	if device == nil {
		return nil, gfx.ErrNilDevice
	}
	if queue == nil {
		return nil, ErrNilQueue
	}
	return &Device{
		device:    device,
		queue:     queue,
		pipelines: newPipelineCache(),
		layouts:   newLayoutCache(),
	}, nil
}

// NewContext returns a context recording into command buffers of d.
func (d *Device) NewContext() *Context {
	return newContext(d)
}

// PipelineStats returns the pipeline cache hits and misses.
func (d *Device) PipelineStats() (hits, misses uint64) {
	return d.pipelines.Stats()
}

// Destroy releases cached pipelines and layouts. Resources returned by the
// Create methods are destroyed by their owners.
func (d *Device) Destroy() {
	d.pipelines.destroyAll(d.device)
	d.layouts.destroyAll(d.device)
}

// uniformAlign is the size granularity of uniform buffers.
const uniformAlign = 16

// CreateBuffer implements gfx.Device.
func (d *Device) CreateBuffer(desc *gfx.BufferDescriptor) (gfx.Buffer, error) {
	if len(desc.Data) == 0 {
		return nil, fmt.Errorf("halgfx: create buffer %q: %w", desc.Label, gfx.ErrEmptyData)
	}
	size := uint64(len(desc.Data))
	align := uint64(4)
	if desc.Kind == gfx.BufferUniform {
		align = uniformAlign
	}
	size = (size + align - 1) &^ (align - 1)

	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: desc.Label,
		Size:  size,
		Usage: desc.Kind.Usage(),
	})
	if err != nil {
		return nil, fmt.Errorf("halgfx: create buffer %q: %w", desc.Label, err)
	}
	if err := d.queue.WriteBuffer(buf, 0, padded(desc.Data, size)); err != nil {
		d.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("halgfx: upload buffer %q: %w", desc.Label, err)
	}
	return &Buffer{dev: d, label: desc.Label, kind: desc.Kind, size: size, buf: buf}, nil
}

// WriteBuffer implements gfx.Device.
func (d *Device) WriteBuffer(b gfx.Buffer, data []byte) error {
	buf, ok := b.(*Buffer)
	if !ok {
		return gfx.ErrForeignResource
	}
	if uint64(len(data)) > buf.size {
		return fmt.Errorf("halgfx: write %q: %w", buf.label, gfx.ErrBufferTooSmall)
	}
	if err := d.queue.WriteBuffer(buf.buf, 0, padded(data, (uint64(len(data))+3)&^3)); err != nil {
		return fmt.Errorf("halgfx: write %q: %w", buf.label, err)
	}
	return nil
}

func padded(data []byte, size uint64) []byte {
	if uint64(len(data)) == size {
		return data
	}
	out := make([]byte, size)
	copy(out, data)
	return out
}

// CreateSampler implements gfx.Device.
func (d *Device) CreateSampler(desc *gfx.SamplerDescriptor) (gfx.Sampler, error) {
	s, err := d.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        desc.Label,
		AddressModeU: desc.AddressMode,
		AddressModeV: desc.AddressMode,
		AddressModeW: desc.AddressMode,
		MagFilter:    desc.MagFilter,
		MinFilter:    desc.MinFilter,
		MipmapFilter: desc.MipmapFilter,
		Compare:      desc.Compare,
		Anisotropy:   max(desc.MaxAniso, 1),
	})
	if err != nil {
		return nil, fmt.Errorf("halgfx: create sampler %q: %w", desc.Label, err)
	}
	return &Sampler{
		dev:     d,
		label:   desc.Label,
		compare: desc.Compare != gputypes.CompareFunctionUndefined,
		sampler: s,
	}, nil
}

// CreateShaderModule implements gfx.Device by compiling WGSL to SPIR-V.
func (d *Device) CreateShaderModule(desc *gfx.ShaderDescriptor) (gfx.ShaderModule, error) {
	if desc.Source == "" {
		return nil, fmt.Errorf("halgfx: create shader %q: %w", desc.Label, gfx.ErrEmptySource)
	}
	code, err := compileSPIRV(desc.Source)
	if err != nil {
		return nil, fmt.Errorf("halgfx: create shader %q: %w", desc.Label, err)
	}
	module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label,
		Source: hal.ShaderSource{SPIRV: code},
	})
	if err != nil {
		return nil, fmt.Errorf("halgfx: create shader %q: %w", desc.Label, err)
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(desc.Source))
	return &Shader{
		dev:    d,
		label:  desc.Label,
		stage:  desc.Stage,
		entry:  desc.Entry(),
		module: module,
		hash:   h.Sum64(),
	}, nil
}

// compileSPIRV compiles WGSL to little-endian SPIR-V words.
func compileSPIRV(source string) ([]uint32, error) {
	spirv, err := naga.Compile(source)
	if err != nil {
		return nil, err
	}
	code := make([]uint32, len(spirv)/4)
	for i := range code {
		code[i] = binary.LittleEndian.Uint32(spirv[i*4:])
	}
	return code, nil
}

// CreateTexture implements gfx.Device.
func (d *Device) CreateTexture(desc *gfx.TextureDescriptor) (gfx.Texture, error) {
	if desc.Width == 0 || desc.Height == 0 {
		return nil, fmt.Errorf("halgfx: create texture %q: %w", desc.Label, gfx.ErrEmptyData)
	}
	format := desc.Format
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatRGBA8Unorm
	}
	usage := gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst
	if desc.RenderTarget {
		usage |= gputypes.TextureUsageRenderAttachment
	}
	size := hal.Extent3D{Width: desc.Width, Height: desc.Height, DepthOrArrayLayers: 1}

	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         desc.Label,
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("halgfx: create texture %q: %w", desc.Label, err)
	}
	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: desc.Label + "_view",
	})
	if err != nil {
		d.device.DestroyTexture(tex)
		return nil, fmt.Errorf("halgfx: create texture view %q: %w", desc.Label, err)
	}
	var sampleView hal.TextureView
	if format.HasDepth() {
		sampleView, err = d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
			Label:  desc.Label + "_depth_view",
			Aspect: gputypes.TextureAspectDepthOnly,
		})
		if err != nil {
			d.device.DestroyTextureView(view)
			d.device.DestroyTexture(tex)
			return nil, fmt.Errorf("halgfx: create depth view %q: %w", desc.Label, err)
		}
	}
	t := &Texture{
		dev:        d,
		label:      desc.Label,
		width:      desc.Width,
		height:     desc.Height,
		format:     format,
		tex:        tex,
		view:       view,
		sampleView: sampleView,
	}
	if len(desc.Pixels) > 0 {
		err := d.queue.WriteTexture(
			&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
			desc.Pixels,
			&hal.ImageDataLayout{Offset: 0, BytesPerRow: desc.Width * 4, RowsPerImage: desc.Height},
			&size,
		)
		if err != nil {
			t.Destroy()
			return nil, fmt.Errorf("halgfx: upload texture %q: %w", desc.Label, err)
		}
	}
	return t, nil
}

// wait blocks until the queue has completed submission index.
func (d *Device) wait(index uint64) error {
	deadline := time.Now().Add(flushTimeout)
	for d.queue.PollCompleted() < index {
		if time.Now().After(deadline) {
			return ErrGPUTimeout
		}
		time.Sleep(100 * time.Microsecond)
	}
	return nil
}

var _ gfx.Device = (*Device)(nil)
