// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bind

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rgraph/cache"
	"github.com/gogpu/rgraph/gfx"
)

// ErrVertexData is returned when vertex data does not fill whole vertices.
var ErrVertexData = errors.New("bind: vertex data is not a whole number of vertices")

// VertexBuffer binds geometry vertices.
type VertexBuffer struct {
	tag    string
	layout VertexLayout
	count  uint32
	buffer gfx.Buffer
}

// VertexBufferID returns the codex identity of a vertex buffer. tag names
// the geometry, e.g. "cube" or a mesh path.
func VertexBufferID(tag string) string {
	return cache.Key("vertexbuffer", tag)
}

// ResolveVertexBuffer returns the shared vertex buffer tagged tag, creating
// it from vertices on first use. vertices are packed in layout order.
func ResolveVertexBuffer(c *cache.Codex, dev gfx.Device, tag string, layout VertexLayout, vertices []float32) (*VertexBuffer, error) {
	return cache.Resolve(c, VertexBufferID(tag), func() (*VertexBuffer, error) {
		return NewVertexBuffer(dev, tag, layout, vertices)
	})
}

// NewVertexBuffer creates an unshared vertex buffer.
func NewVertexBuffer(dev gfx.Device, tag string, layout VertexLayout, vertices []float32) (*VertexBuffer, error) {
	if err := checkDevice(dev); err != nil {
		return nil, err
	}
	per := layout.Floats()
	if per == 0 || len(vertices)%per != 0 {
		return nil, fmt.Errorf("bind: vertex buffer %q: %w", tag, ErrVertexData)
	}
	b, err := dev.CreateBuffer(&gfx.BufferDescriptor{
		Label: VertexBufferID(tag),
		Kind:  gfx.BufferVertex,
		Data:  PackFloats(vertices),
	})
	if err != nil {
		return nil, fmt.Errorf("bind: create vertex buffer %q: %w", tag, err)
	}
	return &VertexBuffer{
		tag:    tag,
		layout: layout,
		count:  uint32(len(vertices) / per),
		buffer: b,
	}, nil
}

// Bind implements Bindable.
func (v *VertexBuffer) Bind(ctx gfx.Context) error {
	ctx.SetVertexBuffer(v.buffer, uint32(v.layout.Stride()))
	return nil
}

// ID implements Bindable.
func (v *VertexBuffer) ID() string { return VertexBufferID(v.tag) }

// Layout returns the vertex layout.
func (v *VertexBuffer) Layout() VertexLayout { return v.layout }

// Count returns the number of vertices.
func (v *VertexBuffer) Count() uint32 { return v.count }

// Destroy releases the device buffer.
func (v *VertexBuffer) Destroy() { v.buffer.Destroy() }

// IndexBuffer binds 16-bit geometry indices.
type IndexBuffer struct {
	tag    string
	count  uint32
	buffer gfx.Buffer
}

// IndexBufferID returns the codex identity of an index buffer.
func IndexBufferID(tag string) string {
	return cache.Key("indexbuffer", tag)
}

// ResolveIndexBuffer returns the shared index buffer tagged tag.
func ResolveIndexBuffer(c *cache.Codex, dev gfx.Device, tag string, indices []uint16) (*IndexBuffer, error) {
	return cache.Resolve(c, IndexBufferID(tag), func() (*IndexBuffer, error) {
		return NewIndexBuffer(dev, tag, indices)
	})
}

// NewIndexBuffer creates an unshared index buffer.
func NewIndexBuffer(dev gfx.Device, tag string, indices []uint16) (*IndexBuffer, error) {
	if err := checkDevice(dev); err != nil {
		return nil, err
	}
	b, err := dev.CreateBuffer(&gfx.BufferDescriptor{
		Label: IndexBufferID(tag),
		Kind:  gfx.BufferIndex,
		Data:  PackIndices(indices),
	})
	if err != nil {
		return nil, fmt.Errorf("bind: create index buffer %q: %w", tag, err)
	}
	return &IndexBuffer{tag: tag, count: uint32(len(indices)), buffer: b}, nil
}

// Bind implements Bindable.
func (ib *IndexBuffer) Bind(ctx gfx.Context) error {
	ctx.SetIndexBuffer(ib.buffer, gputypes.IndexFormatUint16)
	return nil
}

// ID implements Bindable.
func (ib *IndexBuffer) ID() string { return IndexBufferID(ib.tag) }

// Count returns the number of indices.
func (ib *IndexBuffer) Count() uint32 { return ib.count }

// Destroy releases the device buffer.
func (ib *IndexBuffer) Destroy() { ib.buffer.Destroy() }
