// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bind

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rgraph/cache"
	"github.com/gogpu/rgraph/gfx"
)

// ErrNoParent is the panic value of binding a transform buffer that was
// never attached to a drawable.
var ErrNoParent = errors.New("bind: transform buffer has no parent")

// TransformSize is the size in bytes of the transform block:
// model, modelView and modelViewProj as column-major 4x4 float matrices.
const TransformSize = 3 * 16 * 4

// TransformBuffer uploads the owning drawable's transforms to a vertex
// constant buffer before each draw.
//
// Every TransformBuffer writes its own device buffer, so draws recorded into
// one command stream keep their own matrices until submission. The layout
// shared by all transform buffers of a slot lives in the codex under
// "transformcbuf#<slot>".
type TransformBuffer struct {
	core   *TransformCore
	buffer *ConstantBuffer
	parent Parent

	// scale is applied in model space before the parent transform.
	scale float32
}

// TransformCore is the slot and block layout shared by transform buffers.
type TransformCore struct {
	id   string
	slot uint32
}

// ID returns the codex identity of the core.
func (tc *TransformCore) ID() string { return tc.id }

// Slot returns the vertex constant slot.
func (tc *TransformCore) Slot() uint32 { return tc.slot }

// TransformCoreID returns the codex identity of the shared transform core.
func TransformCoreID(slot uint32) string {
	return cache.Key("transformcbuf", slot)
}

// NewTransformBuffer creates a transform buffer bound to vertex slot.
func NewTransformBuffer(c *cache.Codex, dev gfx.Device, slot uint32) (*TransformBuffer, error) {
	id := TransformCoreID(slot)
	core, err := cache.Resolve(c, id, func() (*TransformCore, error) {
		return &TransformCore{id: id, slot: slot}, nil
	})
	if err != nil {
		return nil, err
	}
	buf, err := NewConstantBuffer(dev, gfx.StageVertex, slot, make([]byte, TransformSize))
	if err != nil {
		return nil, err
	}
	return &TransformBuffer{core: core, buffer: buf, scale: 1}, nil
}

// NewScaledTransformBuffer creates a transform buffer that scales the model
// uniformly by scale, as used to draw outlines around an object.
func NewScaledTransformBuffer(c *cache.Codex, dev gfx.Device, slot uint32, scale float32) (*TransformBuffer, error) {
	t, err := NewTransformBuffer(c, dev, slot)
	if err != nil {
		return nil, err
	}
	t.scale = scale
	return t, nil
}

// Scale returns the model-space scale factor.
func (t *TransformBuffer) Scale() float32 { return t.scale }

// InitParent implements ParentBinder.
func (t *TransformBuffer) InitParent(p Parent) { t.parent = p }

// Parent returns the drawable the transforms are read from.
func (t *TransformBuffer) Parent() Parent { return t.parent }

// Transforms computes the model, modelView and modelViewProj matrices for
// the camera and projection of ctx.
func (t *TransformBuffer) Transforms(ctx gfx.Context) (model, modelView, modelViewProj mgl32.Mat4) {
	if t.parent == nil {
		panic(ErrNoParent)
	}
	model = t.parent.Transform()
	if t.scale != 1 {
		model = model.Mul4(mgl32.Scale3D(t.scale, t.scale, t.scale))
	}
	modelView = ctx.Camera().Mul4(model)
	modelViewProj = ctx.Projection().Mul4(modelView)
	return model, modelView, modelViewProj
}

// Bind implements Bindable. It panics with ErrNoParent if InitParent was
// never called. A clone creates its device buffer on first bind.
func (t *TransformBuffer) Bind(ctx gfx.Context) error {
	m, mv, mvp := t.Transforms(ctx)
	data := make([]float32, 0, 48)
	data = append(data, m[:]...)
	data = append(data, mv[:]...)
	data = append(data, mvp[:]...)
	packed := PackFloats(data)
	if t.buffer == nil {
		buf, err := NewConstantBuffer(ctx.Device(), gfx.StageVertex, t.core.slot, packed)
		if err != nil {
			return err
		}
		t.buffer = buf
	} else if err := t.buffer.Update(ctx.Device(), packed); err != nil {
		return err
	}
	return t.buffer.Bind(ctx)
}

// ID implements Bindable. Transform buffers are per-drawable.
func (t *TransformBuffer) ID() string { return "" }

// Clone implements Cloner. The clone shares the core, keeps the parent until
// InitParent assigns a new one and gets its own device buffer.
func (t *TransformBuffer) Clone() Bindable {
	c := *t
	c.buffer = nil
	return &c
}

// Core returns the shared layout.
func (t *TransformBuffer) Core() *TransformCore { return t.core }

// Buffer returns the buffer the transforms are written to, or nil for a
// clone that was never bound.
func (t *TransformBuffer) Buffer() *ConstantBuffer { return t.buffer }

// Destroy releases the device buffer.
func (t *TransformBuffer) Destroy() {
	if t.buffer != nil {
		t.buffer.Destroy()
		t.buffer = nil
	}
}
