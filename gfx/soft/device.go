// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package soft provides a CPU recording implementation of the gfx interfaces.
//
// The device keeps resources in host memory and counts every creation; the
// context tracks the bound state and appends a [Draw] with a full snapshot of
// that state on every DrawIndexed call. Nothing is rasterized.
//
// Failures can be injected per resource label with [Device.FailOn], which makes
// the package suitable for exercising resource construction error paths.
package soft

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rgraph/gfx"
)

// Resource classes reported by Device.Created.
const (
	ClassBuffer  = "buffer"
	ClassSampler = "sampler"
	ClassShader  = "shader"
	ClassTexture = "texture"
)

// Device is a host-memory gfx.Device. It is safe for concurrent use.
type Device struct {
	mu      sync.Mutex
	nextID  uint64
	created map[string]int
	writes  int
	failOn  map[string]error
}

// NewDevice creates an empty recording device.
func NewDevice() *Device {
	return &Device{
		created: make(map[string]int),
		failOn:  make(map[string]error),
	}
}

// FailOn makes every subsequent creation of a resource with the given label
// fail with err. A nil err clears the injection.
func (d *Device) FailOn(label string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err == nil {
		delete(d.failOn, label)
		return
	}
	d.failOn[label] = err
}

// Created returns how many resources of a class were created.
func (d *Device) Created(class string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.created[class]
}

// Writes returns how many WriteBuffer calls succeeded.
func (d *Device) Writes() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writes
}

// register assigns an id and counts the creation, or returns the injected failure.
func (d *Device) register(class, label string) (uint64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err, ok := d.failOn[label]; ok {
		return 0, fmt.Errorf("soft: create %s %q: %w", class, label, err)
	}
	d.nextID++
	d.created[class]++
	return d.nextID, nil
}

// CreateBuffer implements gfx.Device.
func (d *Device) CreateBuffer(desc *gfx.BufferDescriptor) (gfx.Buffer, error) {
	if len(desc.Data) == 0 {
		return nil, fmt.Errorf("soft: create buffer %q: %w", desc.Label, gfx.ErrEmptyData)
	}
	id, err := d.register(ClassBuffer, desc.Label)
	if err != nil {
		return nil, err
	}
	return &Buffer{
		id:    id,
		label: desc.Label,
		kind:  desc.Kind,
		data:  append([]byte(nil), desc.Data...),
	}, nil
}

// WriteBuffer implements gfx.Device.
func (d *Device) WriteBuffer(b gfx.Buffer, data []byte) error {
	buf, ok := b.(*Buffer)
	if !ok {
		return gfx.ErrForeignResource
	}
	if uint64(len(data)) > buf.Size() {
		return fmt.Errorf("soft: write %d bytes to %q: %w", len(data), buf.label, gfx.ErrBufferTooSmall)
	}
	buf.mu.Lock()
	copy(buf.data, data)
	buf.mu.Unlock()

	d.mu.Lock()
	d.writes++
	d.mu.Unlock()
	return nil
}

// CreateSampler implements gfx.Device.
func (d *Device) CreateSampler(desc *gfx.SamplerDescriptor) (gfx.Sampler, error) {
	id, err := d.register(ClassSampler, desc.Label)
	if err != nil {
		return nil, err
	}
	return &Sampler{id: id, desc: *desc}, nil
}

// CreateShaderModule implements gfx.Device. The source is kept verbatim.
func (d *Device) CreateShaderModule(desc *gfx.ShaderDescriptor) (gfx.ShaderModule, error) {
	if desc.Source == "" {
		return nil, fmt.Errorf("soft: create shader %q: %w", desc.Label, gfx.ErrEmptySource)
	}
	id, err := d.register(ClassShader, desc.Label)
	if err != nil {
		return nil, err
	}
	return &Shader{
		id:     id,
		label:  desc.Label,
		stage:  desc.Stage,
		entry:  desc.Entry(),
		source: desc.Source,
	}, nil
}

// CreateTexture implements gfx.Device.
func (d *Device) CreateTexture(desc *gfx.TextureDescriptor) (gfx.Texture, error) {
	if desc.Width == 0 || desc.Height == 0 {
		return nil, fmt.Errorf("soft: create texture %q: %w", desc.Label, gfx.ErrEmptyData)
	}
	id, err := d.register(ClassTexture, desc.Label)
	if err != nil {
		return nil, err
	}
	format := desc.Format
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatRGBA8Unorm
	}
	return &Texture{
		id:     id,
		label:  desc.Label,
		width:  desc.Width,
		height: desc.Height,
		format: format,
		target: desc.RenderTarget,
		pixels: append([]byte(nil), desc.Pixels...),
	}, nil
}

var _ gfx.Device = (*Device)(nil)
