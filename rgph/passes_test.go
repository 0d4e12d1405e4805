// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rgph

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rgraph/bind"
)

func TestClearPass(t *testing.T) {
	env := newTestEnv()
	rt, err := bind.NewOutputOnlyRenderTarget(env.dev, "back", 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	ds, err := bind.NewDepthStencil(env.dev, "depth", 8, 8, false, 0)
	if err != nil {
		t.Fatal(err)
	}
	g := mustGraph(t, NewClearPass("clear", rt, ds, [4]float32{0.1, 0.2, 0.3, 1}))
	if err := g.Execute(env.ctx); err != nil {
		t.Fatal(err)
	}
	clears := env.ctx.Clears()
	if len(clears) != 2 {
		t.Fatalf("clears = %d, want 2", len(clears))
	}
	if clears[0].Color != [4]float32{0.1, 0.2, 0.3, 1} || clears[0].Pass != "clear" {
		t.Errorf("color clear = %+v", clears[0])
	}
	if clears[1].Color[0] != 1 {
		t.Errorf("depth clear = %v, want depth 1", clears[1].Color)
	}
}

func TestQueuePassTargetsAndBindables(t *testing.T) {
	env := newTestEnv()
	shadow, err := bind.NewDepthStencil(env.dev, "shadow", 64, 64, true, 3)
	if err != nil {
		t.Fatal(err)
	}
	raster := bind.NewShadowRasterizer(50, 2, 0.1)
	null, _ := bind.ResolveNullPixelShader(env.c)

	p := NewQueuePass("shadowMap", raster)
	p.AddBindable(null)
	p.SetTargets(nil, shadow)
	g := mustGraph(t, p)

	s := NewStep("shadowMap")
	if err := s.Link(g); err != nil {
		t.Fatal(err)
	}
	s.Submit(newTestDrawable(t, env.c, env.dev, "d"))
	if err := g.Execute(env.ctx); err != nil {
		t.Fatal(err)
	}
	draws := env.ctx.DrawsIn("shadowMap")
	if len(draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(draws))
	}
	st := draws[0].State
	if st.ColorTarget != nil || st.DepthTarget == nil {
		t.Errorf("targets = %v, %v; want depth only", st.ColorTarget, st.DepthTarget)
	}
	if st.Rasterizer.DepthBias != 50 {
		t.Errorf("DepthBias = %d, want 50", st.Rasterizer.DepthBias)
	}
	if st.PixelShader != nil {
		t.Error("pixel shader bound in depth-only pass")
	}
	if len(p.Bindables()) != 2 {
		t.Errorf("Bindables() = %d, want 2", len(p.Bindables()))
	}
}

func TestFullscreenPass(t *testing.T) {
	env := newTestEnv()
	ps, err := bind.ResolvePixelShader(env.c, env.dev, "blur", "@fragment fn fs_main() {}")
	if err != nil {
		t.Fatal(err)
	}
	a, err := NewFullscreenPass(env.c, env.dev, "blur", ps)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewFullscreenPass(env.c, env.dev, "compose", ps)
	if err != nil {
		t.Fatal(err)
	}
	g := mustGraph(t, a, b)
	if err := g.Execute(env.ctx); err != nil {
		t.Fatal(err)
	}
	draws := env.ctx.Draws()
	if len(draws) != 2 {
		t.Fatalf("draws = %d, want 2", len(draws))
	}
	if draws[0].IndexCount != fullscreenIndexCount {
		t.Errorf("IndexCount = %d, want %d", draws[0].IndexCount, fullscreenIndexCount)
	}
	if draws[0].State.VertexBuffer != draws[1].State.VertexBuffer {
		t.Error("fullscreen passes do not share quad geometry")
	}
	if draws[0].State.PixelShader == nil {
		t.Error("pass-level pixel shader not bound")
	}
}

type point mgl32.Mat4

func (p point) Transform() mgl32.Mat4 { return mgl32.Mat4(p) }

func TestTechniqueCloneAndProbe(t *testing.T) {
	env := newTestEnv()
	smp, _ := bind.ResolveSampler(env.c, env.dev, bind.SamplerDefault)
	tb, err := bind.NewTransformBuffer(env.c, env.dev, 0)
	if err != nil {
		t.Fatal(err)
	}
	tech := NewTechnique("phong", ChannelMain, NewStep("main", tb, smp))
	tech.InitParent(point(mgl32.Ident4()))

	clone := tech.Clone()
	clone.InitParent(point(mgl32.Translate3D(1, 0, 0)))

	orig := tech.Steps()[0].Bindables()
	cl := clone.Steps()[0].Bindables()
	if orig[0] == cl[0] {
		t.Error("transform buffer shared between clones")
	}
	if orig[1] != cl[1] {
		t.Error("sampler not shared between clones")
	}
	if tb.Parent() == cl[0].(*bind.TransformBuffer).Parent() {
		t.Error("clone parent leaked into original")
	}
	if clone.Name() != "phong" || clone.Mask() != ChannelMain || !clone.Active() {
		t.Errorf("clone = %s/%v/%v", clone.Name(), clone.Mask(), clone.Active())
	}

	var order []string
	clone.Accept(ProbeFuncs{
		Technique: func(t *Technique) { order = append(order, "technique:"+t.Name()) },
		Step:      func(s *Step) { order = append(order, "step:"+s.Target()) },
		Bindable:  func(b bind.Bindable) { order = append(order, "bindable:"+b.ID()) },
	})
	want := []string{"technique:phong", "step:main", "bindable:", "bindable:sampler#default"}
	if len(order) != len(want) {
		t.Fatalf("probe order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("probe[%d] = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestChannel(t *testing.T) {
	tests := []struct {
		c    Channel
		want string
	}{
		{0, "none"},
		{ChannelMain, "main"},
		{ChannelShadow, "shadow"},
		{ChannelMain | ChannelShadow, "main|shadow"},
		{ChannelAll, "all"},
		{1 << 4, "0x10"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Channel(%d).String() = %q, want %q", uint32(tt.c), got, tt.want)
		}
	}

	c, err := ParseChannel("main|shadow")
	if err != nil || c != ChannelMain|ChannelShadow {
		t.Errorf("ParseChannel() = %v, %v", c, err)
	}
	if _, err := ParseChannel("sky"); err == nil {
		t.Error("ParseChannel(sky) error = nil")
	}
	if !ChannelAll.Has(ChannelShadow) {
		t.Error("ChannelAll does not include shadow")
	}
}
