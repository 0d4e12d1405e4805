// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rgraph/gfx"
)

func TestDeviceCreateCounts(t *testing.T) {
	d := NewDevice()

	if _, err := d.CreateBuffer(&gfx.BufferDescriptor{Label: "vb", Kind: gfx.BufferVertex, Data: []byte{1, 2, 3, 4}}); err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	if _, err := d.CreateSampler(&gfx.SamplerDescriptor{Label: "s"}); err != nil {
		t.Fatalf("CreateSampler() error = %v", err)
	}
	if _, err := d.CreateShaderModule(&gfx.ShaderDescriptor{Label: "vs", Source: "fn main() {}"}); err != nil {
		t.Fatalf("CreateShaderModule() error = %v", err)
	}

	for class, want := range map[string]int{ClassBuffer: 1, ClassSampler: 1, ClassShader: 1, ClassTexture: 0} {
		if got := d.Created(class); got != want {
			t.Errorf("Created(%q) = %d, want %d", class, got, want)
		}
	}
}

func TestDeviceFailOn(t *testing.T) {
	d := NewDevice()
	boom := errors.New("boom")
	d.FailOn("bad", boom)

	_, err := d.CreateSampler(&gfx.SamplerDescriptor{Label: "bad"})
	if !errors.Is(err, boom) {
		t.Fatalf("CreateSampler() error = %v, want %v", err, boom)
	}
	if got := d.Created(ClassSampler); got != 0 {
		t.Errorf("failed creation counted: Created = %d", got)
	}

	d.FailOn("bad", nil)
	if _, err := d.CreateSampler(&gfx.SamplerDescriptor{Label: "bad"}); err != nil {
		t.Errorf("CreateSampler() after clearing failure error = %v", err)
	}
}

func TestDeviceValidation(t *testing.T) {
	d := NewDevice()

	if _, err := d.CreateBuffer(&gfx.BufferDescriptor{Label: "empty"}); !errors.Is(err, gfx.ErrEmptyData) {
		t.Errorf("CreateBuffer(empty) error = %v, want ErrEmptyData", err)
	}
	if _, err := d.CreateShaderModule(&gfx.ShaderDescriptor{Label: "empty"}); !errors.Is(err, gfx.ErrEmptySource) {
		t.Errorf("CreateShaderModule(empty) error = %v, want ErrEmptySource", err)
	}
	if _, err := d.CreateTexture(&gfx.TextureDescriptor{Label: "empty"}); !errors.Is(err, gfx.ErrEmptyData) {
		t.Errorf("CreateTexture(0x0) error = %v, want ErrEmptyData", err)
	}
}

func TestWriteBuffer(t *testing.T) {
	d := NewDevice()
	b, err := d.CreateBuffer(&gfx.BufferDescriptor{Label: "cb", Kind: gfx.BufferUniform, Data: make([]byte, 4)})
	if err != nil {
		t.Fatal(err)
	}

	if err := d.WriteBuffer(b, []byte{9, 8}); err != nil {
		t.Fatalf("WriteBuffer() error = %v", err)
	}
	got := b.(*Buffer).Data()
	if got[0] != 9 || got[1] != 8 || got[2] != 0 {
		t.Errorf("Data() = %v, want [9 8 0 0]", got)
	}
	if err := d.WriteBuffer(b, make([]byte, 8)); !errors.Is(err, gfx.ErrBufferTooSmall) {
		t.Errorf("oversized WriteBuffer() error = %v, want ErrBufferTooSmall", err)
	}
	if d.Writes() != 1 {
		t.Errorf("Writes() = %d, want 1", d.Writes())
	}
}

func TestContextDrawSnapshot(t *testing.T) {
	d := NewDevice()
	ctx := NewContext(d)

	ib, _ := d.CreateBuffer(&gfx.BufferDescriptor{Label: "ib", Kind: gfx.BufferIndex, Data: []byte{0, 0, 1, 0, 2, 0}})
	cb, _ := d.CreateBuffer(&gfx.BufferDescriptor{Label: "cb", Kind: gfx.BufferUniform, Data: []byte{1}})

	ctx.BeginPass("main")
	ctx.SetIndexBuffer(ib, gputypes.IndexFormatUint16)
	ctx.SetConstantBuffer(gfx.StageVertex, 0, cb)
	if err := ctx.DrawIndexed(3); err != nil {
		t.Fatalf("DrawIndexed() error = %v", err)
	}

	// Later writes must not alter the recorded snapshot.
	_ = d.WriteBuffer(cb, []byte{2})
	ctx.SetConstantBuffer(gfx.StageVertex, 1, cb)
	ctx.EndPass()

	draws := ctx.Draws()
	if len(draws) != 1 {
		t.Fatalf("len(Draws()) = %d, want 1", len(draws))
	}
	dr := draws[0]
	if dr.Pass != "main" || dr.IndexCount != 3 {
		t.Errorf("draw = {%q, %d}, want {main, 3}", dr.Pass, dr.IndexCount)
	}
	if dr.VertexConstantData[0][0] != 1 {
		t.Errorf("snapshot constant = %d, want 1", dr.VertexConstantData[0][0])
	}
	if _, ok := dr.State.VertexConstants[1]; ok {
		t.Error("snapshot shares the live constant-buffer map")
	}
}

func TestContextDrawWithoutIndexBuffer(t *testing.T) {
	ctx := NewContext(NewDevice())
	if err := ctx.DrawIndexed(3); !errors.Is(err, gfx.ErrNoIndexBuffer) {
		t.Errorf("DrawIndexed() error = %v, want ErrNoIndexBuffer", err)
	}
}

func TestContextBindIdempotent(t *testing.T) {
	ctx := NewContext(NewDevice())
	state := gfx.RasterizerState{CullMode: gputypes.CullModeNone}

	ctx.SetRasterizer(state)
	first := ctx.State().Rasterizer
	ctx.SetRasterizer(state)
	second := ctx.State().Rasterizer

	if first != second {
		t.Errorf("rebinding changed state: %+v -> %+v", first, second)
	}
	if ctx.BindCalls() != 2 {
		t.Errorf("BindCalls() = %d, want 2", ctx.BindCalls())
	}
}

func TestContextReset(t *testing.T) {
	ctx := NewContext(NewDevice())
	ctx.BeginPass("a")
	ctx.ClearTarget(nil, [4]float32{})
	ctx.EndPass()

	ctx.Reset()
	if len(ctx.Passes()) != 0 || len(ctx.Clears()) != 0 || len(ctx.Draws()) != 0 {
		t.Error("Reset() left recorded calls behind")
	}
}
