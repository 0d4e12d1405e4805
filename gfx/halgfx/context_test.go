// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package halgfx

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/rgraph/bind"
	"github.com/gogpu/rgraph/cache"
	"github.com/gogpu/rgraph/gfx"
)

const transformShader = `
struct Transforms {
    model: mat4x4<f32>,
    model_view: mat4x4<f32>,
    model_view_proj: mat4x4<f32>,
}

@group(0) @binding(0) var<uniform> tf: Transforms;

@vertex
fn vs_main(@location(0) pos: vec3<f32>) -> @builtin(position) vec4<f32> {
    return tf.model_view_proj * vec4<f32>(pos, 1.0);
}
`

// newNoopDevice opens the noop HAL backend.
func newNoopDevice(t *testing.T) (hal.Device, *Device) {
	t.Helper()
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		t.Fatal("no noop adapter")
	}
	open, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	dev, err := New(open.Device, open.Queue)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		dev.Destroy()
		open.Device.Destroy()
		instance.Destroy()
	})
	return open.Device, dev
}

type fixedParent mgl32.Mat4

func (p fixedParent) Transform() mgl32.Mat4 { return mgl32.Mat4(p) }

// readModel maps b and decodes the model matrix at its start.
func readModel(t *testing.T, device hal.Device, b *Buffer) mgl32.Mat4 {
	t.Helper()
	m, err := device.MapBuffer(b.buf, 0, 64)
	if err != nil {
		t.Fatalf("MapBuffer: %v", err)
	}
	defer func() { _ = device.UnmapBuffer(b.buf) }()
	data := unsafe.Slice((*byte)(m.Ptr), 64)
	var out mgl32.Mat4
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[4*i:]))
	}
	return out
}

func setupDraw(t *testing.T, dev *Device, ctx *Context) {
	t.Helper()
	vs, err := dev.CreateShaderModule(&gfx.ShaderDescriptor{Label: "transform", Stage: gfx.StageVertex, Source: transformShader})
	if err != nil {
		t.Fatal(err)
	}
	vb, err := dev.CreateBuffer(&gfx.BufferDescriptor{
		Label: "triangle",
		Kind:  gfx.BufferVertex,
		Data:  bind.PackFloats([]float32{0, 0, 0, 1, 0, 0, 0, 1, 0}),
	})
	if err != nil {
		t.Fatal(err)
	}
	ib, err := dev.CreateBuffer(&gfx.BufferDescriptor{
		Label: "triangle_indices",
		Kind:  gfx.BufferIndex,
		Data:  []byte{0, 0, 1, 0, 2, 0, 0, 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	ctx.SetShader(vs)
	ctx.SetInputLayout(gputypes.VertexBufferLayout{
		ArrayStride: 12,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  []gputypes.VertexAttribute{{Format: gputypes.VertexFormatFloat32x3, ShaderLocation: 0}},
	})
	ctx.SetVertexBuffer(vb, 12)
	ctx.SetIndexBuffer(ib, gputypes.IndexFormatUint16)
}

// Draws recorded into one encoder must each keep the transforms of their
// own drawable until the frame is submitted.
func TestDrawsKeepOwnTransforms(t *testing.T) {
	device, dev := newNoopDevice(t)
	ctx := dev.NewContext()
	c := cache.New()

	models := []mgl32.Mat4{mgl32.Translate3D(1, 0, 0), mgl32.Translate3D(0, 2, 0), mgl32.Scale3D(3, 3, 3)}
	ctx.BeginPass("lambertian")
	setupDraw(t, dev, ctx)
	var bound []*Buffer
	for _, m := range models {
		tb, err := bind.NewTransformBuffer(c, dev, 0)
		if err != nil {
			t.Fatal(err)
		}
		tb.InitParent(fixedParent(m))
		if err := tb.Bind(ctx); err != nil {
			t.Fatal(err)
		}
		bound = append(bound, ctx.state.vertexConstants[0])
		if err := ctx.DrawIndexed(3); err != nil {
			t.Fatal(err)
		}
	}
	ctx.EndPass()
	if err := ctx.Flush(); err != nil {
		t.Fatal(err)
	}

	seen := make(map[*Buffer]bool)
	for i, b := range bound {
		if b == nil {
			t.Fatalf("draw %d has no transform buffer bound", i)
		}
		if seen[b] {
			t.Errorf("draw %d reuses another draw's transform buffer", i)
		}
		seen[b] = true
		if got := readModel(t, device, b); !got.ApproxEqual(models[i]) {
			t.Errorf("draw %d model = %v, want %v", i, got, models[i])
		}
	}
}

func TestDiscard(t *testing.T) {
	_, dev := newNoopDevice(t)
	ctx := dev.NewContext()
	c := cache.New()

	ctx.BeginPass("lambertian")
	setupDraw(t, dev, ctx)
	tb, err := bind.NewTransformBuffer(c, dev, 0)
	if err != nil {
		t.Fatal(err)
	}
	tb.InitParent(fixedParent(mgl32.Ident4()))
	if err := tb.Bind(ctx); err != nil {
		t.Fatal(err)
	}
	if err := ctx.DrawIndexed(3); err != nil {
		t.Fatal(err)
	}
	ctx.fail(errors.New("lost"))
	if ctx.encoder == nil || len(ctx.groups) != 1 {
		t.Fatalf("encoder = %v, groups = %d before Discard", ctx.encoder, len(ctx.groups))
	}

	ctx.Discard()
	if ctx.encoder != nil || ctx.rp != nil {
		t.Error("Discard() kept the encoder open")
	}
	if len(ctx.groups) != 0 {
		t.Errorf("groups = %d after Discard, want 0", len(ctx.groups))
	}
	if ctx.err != nil {
		t.Errorf("pending error %v survived Discard", ctx.err)
	}
	if err := ctx.Flush(); err != nil {
		t.Errorf("Flush() after Discard = %v, want nil", err)
	}
}
