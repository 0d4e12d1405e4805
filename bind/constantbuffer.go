// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bind

import (
	"fmt"

	"github.com/gogpu/rgraph/cache"
	"github.com/gogpu/rgraph/gfx"
)

// ConstantBuffer binds a uniform buffer to a stage slot.
//
// Constant buffers resolved with a tag are shared by every step that names
// the same tag; untagged buffers belong to one step.
type ConstantBuffer struct {
	id     string
	stage  gfx.Stage
	slot   uint32
	data   []byte
	buffer gfx.Buffer
}

// ConstantBufferID returns the codex identity of a tagged constant buffer.
func ConstantBufferID(stage gfx.Stage, slot uint32, tag string) string {
	return cache.Key("constantbuffer", stage, slot, tag)
}

// ResolveConstantBuffer returns the shared constant buffer for tag. data is
// the initial content used on first resolution.
func ResolveConstantBuffer(c *cache.Codex, dev gfx.Device, stage gfx.Stage, slot uint32, tag string, data []byte) (*ConstantBuffer, error) {
	id := ConstantBufferID(stage, slot, tag)
	return cache.Resolve(c, id, func() (*ConstantBuffer, error) {
		return newConstantBuffer(dev, id, stage, slot, data)
	})
}

// NewConstantBuffer creates a per-instance constant buffer.
func NewConstantBuffer(dev gfx.Device, stage gfx.Stage, slot uint32, data []byte) (*ConstantBuffer, error) {
	return newConstantBuffer(dev, "", stage, slot, data)
}

func newConstantBuffer(dev gfx.Device, id string, stage gfx.Stage, slot uint32, data []byte) (*ConstantBuffer, error) {
	if err := checkDevice(dev); err != nil {
		return nil, err
	}
	label := id
	if label == "" {
		label = fmt.Sprintf("constantbuffer#%s#%d", stage, slot)
	}
	b, err := dev.CreateBuffer(&gfx.BufferDescriptor{
		Label: label,
		Kind:  gfx.BufferUniform,
		Data:  data,
	})
	if err != nil {
		return nil, fmt.Errorf("bind: create constant buffer %s: %w", label, err)
	}
	return &ConstantBuffer{
		id:     id,
		stage:  stage,
		slot:   slot,
		data:   append([]byte(nil), data...),
		buffer: b,
	}, nil
}

// Update replaces the buffer contents.
func (cb *ConstantBuffer) Update(dev gfx.Device, data []byte) error {
	if err := dev.WriteBuffer(cb.buffer, data); err != nil {
		return fmt.Errorf("bind: update constant buffer %s#%d: %w", cb.stage, cb.slot, err)
	}
	cb.data = append(cb.data[:0], data...)
	return nil
}

// Bind implements Bindable.
func (cb *ConstantBuffer) Bind(ctx gfx.Context) error {
	ctx.SetConstantBuffer(cb.stage, cb.slot, cb.buffer)
	return nil
}

// ID implements Bindable. It is empty for per-instance buffers.
func (cb *ConstantBuffer) ID() string { return cb.id }

// Stage returns the stage the buffer binds to.
func (cb *ConstantBuffer) Stage() gfx.Stage { return cb.stage }

// Slot returns the binding slot.
func (cb *ConstantBuffer) Slot() uint32 { return cb.slot }

// Data returns a copy of the last uploaded contents.
func (cb *ConstantBuffer) Data() []byte { return append([]byte(nil), cb.data...) }

// Destroy releases the device buffer.
func (cb *ConstantBuffer) Destroy() { cb.buffer.Destroy() }
