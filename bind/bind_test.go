// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bind

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/rgraph/cache"
	"github.com/gogpu/rgraph/gfx"
	"github.com/gogpu/rgraph/gfx/soft"
)

func newEnv() (*cache.Codex, *soft.Device, *soft.Context) {
	dev := soft.NewDevice()
	return cache.New(), dev, soft.NewContext(dev)
}

func TestIdentities(t *testing.T) {
	half := float32(0.5)
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"sampler", SamplerID(SamplerDefault), "sampler#default"},
		{"rasterizer back", RasterizerID(false), "rasterizer#cull=back"},
		{"rasterizer none", RasterizerID(true), "rasterizer#cull=none"},
		{"stencil", StencilID(StencilDepthSkybox), "stencil#depth-skybox"},
		{"blender off", BlenderID(false, &half), "blender#off"},
		{"blender on", BlenderID(true, nil), "blender#on"},
		{"blender factor", BlenderID(true, &half), "blender#on#0.5"},
		{"topology", TopologyID(gputypes.PrimitiveTopologyTriangleList), "topology#triangle-list"},
		{"inputlayout", InputLayoutID(NewVertexLayout(Position3D, Normal)), "inputlayout#P3N"},
		{"vertexbuffer", VertexBufferID("cube"), "vertexbuffer#cube"},
		{"indexbuffer", IndexBufferID("cube"), "indexbuffer#cube"},
		{"vertexshader", VertexShaderID("phong"), "vertexshader#phong"},
		{"pixelshader", PixelShaderID("phong"), "pixelshader#phong"},
		{"nullpixelshader", NullPixelShaderID, "pixelshader#null"},
		{"constantbuffer", ConstantBufferID(gfx.StagePixel, 1, "material"), "constantbuffer#pixel#1#material"},
		{"texture", TextureID("brick.png", 0), "texture#brick.png#0"},
		{"texture with hash", TextureID("tiles#2.png", 0), "texture#tiles%232.png#0"},
		{"transform core", TransformCoreID(0), "transformcbuf#0"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: id = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestResolveSamplerShared(t *testing.T) {
	c, dev, _ := newEnv()

	a, err := ResolveSampler(c, dev, SamplerDefault)
	if err != nil {
		t.Fatalf("ResolveSampler() error = %v", err)
	}
	b, err := ResolveSampler(c, dev, SamplerDefault)
	if err != nil {
		t.Fatalf("ResolveSampler() error = %v", err)
	}
	if a != b {
		t.Error("ResolveSampler() returned distinct instances for one identity")
	}
	p, err := ResolveSampler(c, dev, SamplerPoint)
	if err != nil {
		t.Fatalf("ResolveSampler(point) error = %v", err)
	}
	if p == a {
		t.Error("point and default samplers share an instance")
	}
	if got := dev.Created(soft.ClassSampler); got != 2 {
		t.Errorf("samplers created = %d, want 2", got)
	}
	if a.ID() != "sampler#default" {
		t.Errorf("ID() = %q, want sampler#default", a.ID())
	}
}

func TestResolveSamplerUnknownMode(t *testing.T) {
	c, dev, _ := newEnv()
	if _, err := ResolveSampler(c, dev, "bogus"); err == nil {
		t.Error("ResolveSampler(bogus) error = nil, want error")
	}
	if c.Len() != 0 {
		t.Errorf("codex Len() = %d after failed resolve, want 0", c.Len())
	}
}

func TestResolveFailureNotCached(t *testing.T) {
	c, dev, _ := newEnv()
	errBoom := errors.New("out of memory")
	dev.FailOn(SamplerID(SamplerClamp), errBoom)

	if _, err := ResolveSampler(c, dev, SamplerClamp); !errors.Is(err, errBoom) {
		t.Fatalf("ResolveSampler() error = %v, want %v", err, errBoom)
	}
	dev.FailOn(SamplerID(SamplerClamp), nil)
	if _, err := ResolveSampler(c, dev, SamplerClamp); err != nil {
		t.Errorf("retry ResolveSampler() error = %v", err)
	}
}

func TestNilDevice(t *testing.T) {
	if _, err := NewSampler(nil, SamplerDefault); !errors.Is(err, ErrNilDevice) {
		t.Errorf("NewSampler(nil) error = %v, want %v", err, ErrNilDevice)
	}
}

func TestSamplerBind(t *testing.T) {
	c, dev, ctx := newEnv()
	s, _ := ResolveSampler(c, dev, SamplerDefault)
	if err := s.Bind(ctx); err != nil {
		t.Fatal(err)
	}
	got := ctx.State().Samplers[0]
	if got == nil {
		t.Fatal("no sampler bound at slot 0")
	}
	if got.Descriptor().AddressMode != gputypes.AddressModeRepeat {
		t.Errorf("AddressMode = %v, want repeat", got.Descriptor().AddressMode)
	}
}

func TestRasterizer(t *testing.T) {
	c, _, ctx := newEnv()
	r, _ := ResolveRasterizer(c, true)
	_ = r.Bind(ctx)
	if got := ctx.State().Rasterizer.CullMode; got != gputypes.CullModeNone {
		t.Errorf("two-sided CullMode = %v, want none", got)
	}
	r, _ = ResolveRasterizer(c, false)
	_ = r.Bind(ctx)
	if got := ctx.State().Rasterizer.CullMode; got != gputypes.CullModeBack {
		t.Errorf("CullMode = %v, want back", got)
	}
}

func TestShadowRasterizer(t *testing.T) {
	_, _, ctx := newEnv()
	r := NewShadowRasterizer(50, 2, 0.1)
	if r.ID() != "" {
		t.Errorf("ID() = %q, want empty", r.ID())
	}
	_ = r.Bind(ctx)
	if got := ctx.State().Rasterizer.DepthBias; got != 50 {
		t.Errorf("DepthBias = %d, want 50", got)
	}
	r.SetDepthBias(10, 1, 0)
	_ = r.Bind(ctx)
	st := ctx.State().Rasterizer
	if st.DepthBias != 10 || st.SlopeBias != 1 || st.BiasClamp != 0 {
		t.Errorf("rasterizer = %+v, want bias 10/1/0", st)
	}
}

func TestStencilModes(t *testing.T) {
	tests := []struct {
		mode        StencilMode
		depthTest   bool
		depthWrite  bool
		stencilTest bool
		compare     gputypes.CompareFunction
	}{
		{StencilOff, true, true, false, gputypes.CompareFunctionLess},
		{StencilWrite, false, false, true, gputypes.CompareFunctionLess},
		{StencilMask, false, false, true, gputypes.CompareFunctionLess},
		{StencilDepthOff, false, false, false, gputypes.CompareFunctionLess},
		{StencilDepthSkybox, true, false, false, gputypes.CompareFunctionLessEqual},
		{StencilDepthReversed, true, true, false, gputypes.CompareFunctionGreater},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			s, err := NewStencil(tt.mode)
			if err != nil {
				t.Fatal(err)
			}
			st := s.State()
			if st.DepthTest != tt.depthTest || st.DepthWrite != tt.depthWrite || st.StencilTest != tt.stencilTest {
				t.Errorf("state = %+v", st)
			}
			if st.DepthCompare != tt.compare {
				t.Errorf("DepthCompare = %v, want %v", st.DepthCompare, tt.compare)
			}
		})
	}
	if len(StencilModes()) != len(tests) {
		t.Errorf("StencilModes() has %d modes, want %d", len(StencilModes()), len(tests))
	}
	if _, err := NewStencil("bogus"); err == nil {
		t.Error("NewStencil(bogus) error = nil")
	}
}

func TestStencilWriteAndMaskOps(t *testing.T) {
	w, _ := NewStencil(StencilWrite)
	m, _ := NewStencil(StencilMask)
	if w.State().StencilPassOp != gfx.StencilReplace {
		t.Error("write mode does not replace stencil")
	}
	if m.State().StencilCompare != gputypes.CompareFunctionNotEqual {
		t.Error("mask mode does not test not-equal")
	}
}

func TestBlender(t *testing.T) {
	c, _, ctx := newEnv()
	off, _ := ResolveBlender(c, false, nil)
	_ = off.Bind(ctx)
	if ctx.State().Blend != nil {
		t.Error("blender off bound a blend state")
	}

	half := float32(0.5)
	on, _ := ResolveBlender(c, true, &half)
	_ = on.Bind(ctx)
	st := ctx.State()
	if st.Blend == nil {
		t.Fatal("blender on bound no blend state")
	}
	if st.BlendFactor != [4]float32{0.5, 0.5, 0.5, 0.5} {
		t.Errorf("BlendFactor = %v, want all 0.5", st.BlendFactor)
	}
	if f, ok := on.Factor(); !ok || f != 0.5 {
		t.Errorf("Factor() = %v, %v", f, ok)
	}
	half = 0.75
	if f, _ := on.Factor(); f != 0.5 {
		t.Error("blender factor aliases caller variable")
	}
}

func TestVertexLayout(t *testing.T) {
	l := NewVertexLayout(Position3D, Normal).Append(Texture2D)
	if l.Code() != "P3NT2" {
		t.Errorf("Code() = %q, want P3NT2", l.Code())
	}
	if l.Stride() != 32 {
		t.Errorf("Stride() = %d, want 32", l.Stride())
	}
	if l.Floats() != 8 {
		t.Errorf("Floats() = %d, want 8", l.Floats())
	}
	bl := l.BufferLayout()
	if len(bl.Attributes) != 3 || bl.Attributes[2].Offset != 24 || bl.Attributes[2].ShaderLocation != 2 {
		t.Errorf("BufferLayout() attributes = %+v", bl.Attributes)
	}
}

func TestVertexAndIndexBuffers(t *testing.T) {
	c, dev, ctx := newEnv()
	layout := NewVertexLayout(Position3D)
	vb, err := ResolveVertexBuffer(c, dev, "tri", layout, []float32{0, 0, 0, 1, 0, 0, 0, 1, 0})
	if err != nil {
		t.Fatal(err)
	}
	if vb.Count() != 3 {
		t.Errorf("Count() = %d, want 3", vb.Count())
	}
	ib, err := ResolveIndexBuffer(c, dev, "tri", []uint16{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if ib.Count() != 3 {
		t.Errorf("index Count() = %d, want 3", ib.Count())
	}
	_ = vb.Bind(ctx)
	_ = ib.Bind(ctx)
	st := ctx.State()
	if st.Stride != 12 {
		t.Errorf("Stride = %d, want 12", st.Stride)
	}
	if st.IndexFormat != gputypes.IndexFormatUint16 {
		t.Errorf("IndexFormat = %v, want uint16", st.IndexFormat)
	}

	if _, err := NewVertexBuffer(dev, "bad", layout, []float32{1, 2}); !errors.Is(err, ErrVertexData) {
		t.Errorf("NewVertexBuffer(partial) error = %v, want %v", err, ErrVertexData)
	}
}

func TestShaders(t *testing.T) {
	c, dev, ctx := newEnv()
	vs, err := ResolveVertexShader(c, dev, "solid", "@vertex fn vs_main() {}")
	if err != nil {
		t.Fatal(err)
	}
	ps, err := ResolvePixelShader(c, dev, "solid", "@fragment fn fs_main() {}")
	if err != nil {
		t.Fatal(err)
	}
	if vs.ID() == ps.ID() {
		t.Error("vertex and pixel shaders share an identity")
	}
	again, _ := ResolvePixelShader(c, dev, "solid", "ignored")
	if again != ps {
		t.Error("ResolvePixelShader() rebuilt a cached shader")
	}
	_ = vs.Bind(ctx)
	_ = ps.Bind(ctx)
	if ctx.State().PixelShader == nil || ctx.State().VertexShader == nil {
		t.Fatal("shaders not bound")
	}

	null, err := ResolveNullPixelShader(c)
	if err != nil {
		t.Fatal(err)
	}
	_ = null.Bind(ctx)
	if ctx.State().PixelShader != nil {
		t.Error("null pixel shader left a pixel shader bound")
	}
	if ctx.State().VertexShader == nil {
		t.Error("null pixel shader unbound the vertex shader")
	}
	if got := dev.Created(soft.ClassShader); got != 2 {
		t.Errorf("shaders compiled = %d, want 2", got)
	}
}

func TestConstantBuffer(t *testing.T) {
	c, dev, ctx := newEnv()
	cb, err := ResolveConstantBuffer(c, dev, gfx.StagePixel, 1, "material", []byte{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}
	if cb.ID() != "constantbuffer#pixel#1#material" {
		t.Errorf("ID() = %q", cb.ID())
	}
	if err := cb.Update(dev, []byte{9, 9, 9, 9}); err != nil {
		t.Fatal(err)
	}
	if got := cb.Data(); got[0] != 9 {
		t.Errorf("Data() = %v, want updated bytes", got)
	}
	_ = cb.Bind(ctx)
	if ctx.State().PixelConstants[1] == nil {
		t.Error("constant buffer not bound at pixel slot 1")
	}

	own, err := NewConstantBuffer(dev, gfx.StageVertex, 2, make([]byte, 16))
	if err != nil {
		t.Fatal(err)
	}
	if own.ID() != "" {
		t.Errorf("per-instance ID() = %q, want empty", own.ID())
	}
}

type fixedParent mgl32.Mat4

func (p fixedParent) Transform() mgl32.Mat4 { return mgl32.Mat4(p) }

func decodeMat(data []byte, i int) mgl32.Mat4 {
	var m mgl32.Mat4
	for k := range m {
		off := 4 * (16*i + k)
		m[k] = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
	}
	return m
}

func TestTransformBuffer(t *testing.T) {
	c, dev, ctx := newEnv()
	ctx.SetCamera(mgl32.Translate3D(0, 0, -5))
	ctx.SetProjection(mgl32.Scale3D(2, 2, 1))

	tb, err := NewTransformBuffer(c, dev, 0)
	if err != nil {
		t.Fatal(err)
	}
	model := mgl32.Translate3D(1, 2, 3)
	tb.InitParent(fixedParent(model))
	if err := tb.Bind(ctx); err != nil {
		t.Fatal(err)
	}

	data := tb.Buffer().Data()
	if len(data) != TransformSize {
		t.Fatalf("transform block = %d bytes, want %d", len(data), TransformSize)
	}
	wantMV := mgl32.Translate3D(1, 2, -2)
	wantMVP := mgl32.Scale3D(2, 2, 1).Mul4(wantMV)
	if got := decodeMat(data, 0); !got.ApproxEqual(model) {
		t.Errorf("model = %v, want %v", got, model)
	}
	if got := decodeMat(data, 1); !got.ApproxEqual(wantMV) {
		t.Errorf("modelView = %v, want %v", got, wantMV)
	}
	if got := decodeMat(data, 2); !got.ApproxEqual(wantMVP) {
		t.Errorf("modelViewProj = %v, want %v", got, wantMVP)
	}
	if ctx.State().VertexConstants[0] == nil {
		t.Error("transform buffer not bound at vertex slot 0")
	}
}

func TestTransformBufferCloneSharesCore(t *testing.T) {
	c, dev, _ := newEnv()
	a, _ := NewTransformBuffer(c, dev, 0)
	b, _ := NewTransformBuffer(c, dev, 0)
	if a.Core() != b.Core() {
		t.Error("transform buffers of one slot do not share the core")
	}
	if a.Core().ID() != TransformCoreID(0) {
		t.Errorf("Core().ID() = %q, want %q", a.Core().ID(), TransformCoreID(0))
	}
	if a.Buffer() == b.Buffer() {
		t.Error("transform buffers share a device buffer")
	}

	a.InitParent(fixedParent(mgl32.Ident4()))
	clone, ok := a.Clone().(*TransformBuffer)
	if !ok {
		t.Fatal("Clone() did not return a *TransformBuffer")
	}
	if clone == a {
		t.Fatal("Clone() returned the receiver")
	}
	clone.InitParent(fixedParent(mgl32.Translate3D(1, 0, 0)))
	if a.Parent() == clone.Parent() {
		t.Error("clone parent change leaked into original")
	}
	if clone.Core() != a.Core() {
		t.Error("clone does not share the core")
	}
	if clone.Buffer() != nil {
		t.Error("clone reuses the original device buffer")
	}
	if got := dev.Created(soft.ClassBuffer); got != 2 {
		t.Errorf("buffers created = %d, want 2", got)
	}
}

func TestTransformBuffersKeepOwnTransforms(t *testing.T) {
	c, dev, ctx := newEnv()
	first, _ := NewTransformBuffer(c, dev, 0)
	first.InitParent(fixedParent(mgl32.Translate3D(1, 0, 0)))
	proto, _ := NewTransformBuffer(c, dev, 0)
	second := proto.Clone().(*TransformBuffer)
	second.InitParent(fixedParent(mgl32.Translate3D(0, 5, 0)))

	if err := first.Bind(ctx); err != nil {
		t.Fatal(err)
	}
	firstBound := ctx.State().VertexConstants[0]
	if err := second.Bind(ctx); err != nil {
		t.Fatal(err)
	}
	secondBound := ctx.State().VertexConstants[0]
	if firstBound == nil || secondBound == nil {
		t.Fatal("transform buffer not bound at vertex slot 0")
	}
	if firstBound == secondBound {
		t.Error("both transform buffers bound the same device buffer")
	}

	// Binding the second buffer must leave the first one's contents intact.
	if got := decodeMat(first.Buffer().Data(), 0); !got.ApproxEqual(mgl32.Translate3D(1, 0, 0)) {
		t.Errorf("first model = %v, want translation (1,0,0)", got)
	}
	if got := decodeMat(second.Buffer().Data(), 0); !got.ApproxEqual(mgl32.Translate3D(0, 5, 0)) {
		t.Errorf("second model = %v, want translation (0,5,0)", got)
	}

	second.Destroy()
	if second.Buffer() != nil {
		t.Error("Destroy() kept the device buffer")
	}
}

func TestTransformBufferWithoutParentPanics(t *testing.T) {
	c, dev, ctx := newEnv()
	tb, _ := NewTransformBuffer(c, dev, 0)
	defer func() {
		if r := recover(); r != ErrNoParent {
			t.Errorf("recover() = %v, want %v", r, ErrNoParent)
		}
	}()
	_ = tb.Bind(ctx)
}

func TestRenderTargets(t *testing.T) {
	_, dev, ctx := newEnv()
	rt, err := NewRenderTarget(dev, "scene", 64, 32, 0)
	if err != nil {
		t.Fatal(err)
	}
	ds, err := NewDepthStencil(dev, "depth", 64, 32, false, 0)
	if err != nil {
		t.Fatal(err)
	}
	rt.BindAsTarget(ctx, ds)
	st := ctx.State()
	if st.ColorTarget == nil || st.DepthTarget == nil {
		t.Fatal("targets not selected")
	}
	if err := rt.Bind(ctx); err != nil {
		t.Fatal(err)
	}
	if ctx.State().Textures[0] == nil {
		t.Error("shader-input target not bound as texture")
	}
	if w, h := rt.Size(); w != 64 || h != 32 {
		t.Errorf("Size() = %dx%d, want 64x32", w, h)
	}
}

func TestOutputOnlyTargetBindPanics(t *testing.T) {
	tests := []struct {
		name string
		b    func(dev *soft.Device) Bindable
	}{
		{"color", func(dev *soft.Device) Bindable {
			rt, _ := NewOutputOnlyRenderTarget(dev, "back", 8, 8)
			return rt
		}},
		{"depth", func(dev *soft.Device) Bindable {
			ds, _ := NewDepthStencil(dev, "depth", 8, 8, false, 0)
			return ds
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, dev, ctx := newEnv()
			b := tt.b(dev)
			defer func() {
				if r := recover(); r != ErrOutputOnly {
					t.Errorf("recover() = %v, want %v", r, ErrOutputOnly)
				}
			}()
			_ = b.Bind(ctx)
		})
	}
}

type recordingProbe struct{ ids []string }

func (p *recordingProbe) VisitBindable(b Bindable) { p.ids = append(p.ids, b.ID()) }

func TestHelpers(t *testing.T) {
	c, dev, _ := newEnv()
	s, _ := ResolveSampler(c, dev, SamplerDefault)
	tb, _ := NewTransformBuffer(c, dev, 0)

	p := &recordingProbe{}
	Accept(s, p)
	if len(p.ids) != 1 || p.ids[0] != "sampler#default" {
		t.Errorf("probe ids = %v", p.ids)
	}

	if CloneOrShare(s) != Bindable(s) {
		t.Error("CloneOrShare() copied a shared bindable")
	}
	if CloneOrShare(tb) == Bindable(tb) {
		t.Error("CloneOrShare() shared a cloning bindable")
	}

	parent := fixedParent(mgl32.Ident4())
	InitParent(tb, parent)
	InitParent(s, parent) // no-op
	if tb.Parent() == nil {
		t.Error("InitParent() did not reach the transform buffer")
	}
}

func TestScaledTransformBuffer(t *testing.T) {
	c, dev, ctx := newEnv()
	tb, err := NewScaledTransformBuffer(c, dev, 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	tb.InitParent(fixedParent(mgl32.Translate3D(1, 0, 0)))
	model, _, _ := tb.Transforms(ctx)
	want := mgl32.Translate3D(1, 0, 0).Mul4(mgl32.Scale3D(2, 2, 2))
	if !model.ApproxEqual(want) {
		t.Errorf("model = %v, want %v", model, want)
	}
	if tb.Scale() != 2 {
		t.Errorf("Scale() = %v, want 2", tb.Scale())
	}
}

func TestCamera(t *testing.T) {
	_, _, ctx := newEnv()
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, -5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 100)

	cam := NewCamera(view, proj)
	if err := cam.Bind(ctx); err != nil {
		t.Fatal(err)
	}
	if ctx.Camera() != view || ctx.Projection() != proj {
		t.Error("Bind() did not set the context matrices")
	}

	cam.Set(mgl32.Ident4(), mgl32.Ident4())
	_ = cam.Bind(ctx)
	if ctx.Camera() != mgl32.Ident4() {
		t.Errorf("Camera() after Set = %v, want identity", ctx.Camera())
	}
	if cam.ID() != "" {
		t.Errorf("ID() = %q, want empty", cam.ID())
	}
}

func TestCameraBuffer(t *testing.T) {
	_, dev, ctx := newEnv()
	cam := NewCamera(mgl32.Translate3D(0, 0, -3), mgl32.Scale3D(2, 2, 1))
	cb, err := NewCameraBuffer(dev, cam, gfx.StageVertex, ShadowTransformSlot)
	if err != nil {
		t.Fatal(err)
	}
	if err := cb.Bind(ctx); err != nil {
		t.Fatal(err)
	}
	if ctx.State().VertexConstants[ShadowTransformSlot] == nil {
		t.Fatal("camera buffer not bound at the shadow transform slot")
	}
	want := mgl32.Scale3D(2, 2, 1).Mul4(mgl32.Translate3D(0, 0, -3))
	if got := decodeMat(cb.Buffer().Data(), 0); !got.ApproxEqual(want) {
		t.Errorf("view-projection = %v, want %v", got, want)
	}

	cam.Set(mgl32.Ident4(), mgl32.Ident4())
	_ = cb.Bind(ctx)
	if got := decodeMat(cb.Buffer().Data(), 0); !got.ApproxEqual(mgl32.Ident4()) {
		t.Errorf("view-projection after Set = %v, want identity", got)
	}
}

func TestShadowSampler(t *testing.T) {
	c, dev, ctx := newEnv()
	s, err := ResolveSampler(c, dev, SamplerShadow)
	if err != nil {
		t.Fatal(err)
	}
	if s.Slot() != ShadowSlot {
		t.Errorf("Slot() = %d, want %d", s.Slot(), ShadowSlot)
	}
	_ = s.Bind(ctx)
	st := ctx.State()
	if st.Samplers[0] != nil {
		t.Error("shadow sampler bound at slot 0")
	}
	smp := st.Samplers[ShadowSlot]
	if smp == nil {
		t.Fatal("shadow sampler not bound")
	}
	if got := smp.Descriptor().Compare; got != gputypes.CompareFunctionLessEqual {
		t.Errorf("Compare = %v, want less-equal", got)
	}

	plain, _ := ResolveSampler(c, dev, SamplerDefault)
	if plain.Slot() != 0 {
		t.Errorf("default sampler Slot() = %d, want 0", plain.Slot())
	}
}
