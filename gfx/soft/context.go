// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft

import (
	"maps"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/rgraph/gfx"
)

// State is the bound state of a Context.
type State struct {
	VertexBuffer *Buffer
	Stride       uint32
	IndexBuffer  *Buffer
	IndexFormat  gputypes.IndexFormat
	Topology     gputypes.PrimitiveTopology
	InputLayout  gputypes.VertexBufferLayout

	VertexShader *Shader
	PixelShader  *Shader

	VertexConstants map[uint32]*Buffer
	PixelConstants  map[uint32]*Buffer
	Textures        map[uint32]*Texture
	Samplers        map[uint32]*Sampler

	Rasterizer   gfx.RasterizerState
	DepthStencil gfx.DepthStencilState
	Blend        *gputypes.BlendState
	BlendFactor  [4]float32

	ColorTarget *Texture
	DepthTarget *Texture
}

func newState() State {
	return State{
		VertexConstants: make(map[uint32]*Buffer),
		PixelConstants:  make(map[uint32]*Buffer),
		Textures:        make(map[uint32]*Texture),
		Samplers:        make(map[uint32]*Sampler),
		Rasterizer:      gfx.DefaultRasterizerState(),
		DepthStencil:    gfx.DefaultDepthStencilState(),
	}
}

func (s State) clone() State {
	c := s
	c.VertexConstants = maps.Clone(s.VertexConstants)
	c.PixelConstants = maps.Clone(s.PixelConstants)
	c.Textures = maps.Clone(s.Textures)
	c.Samplers = maps.Clone(s.Samplers)
	if s.Blend != nil {
		b := *s.Blend
		c.Blend = &b
	}
	return c
}

// Draw is one recorded DrawIndexed call.
type Draw struct {
	// Pass is the name of the pass the draw was issued in.
	Pass string

	IndexCount uint32

	// State is a snapshot of the bound state at draw time.
	State State

	// VertexConstantData holds a copy of every bound vertex-stage constant
	// buffer's contents at draw time, by slot.
	VertexConstantData map[uint32][]byte
}

// Clear is one recorded ClearTarget call.
type Clear struct {
	Pass   string
	Target *Texture
	Color  [4]float32
}

// Context is a recording gfx.Context.
type Context struct {
	device *Device
	state  State
	pass   string

	camera     mgl32.Mat4
	projection mgl32.Mat4

	passes []string
	draws  []Draw
	clears []Clear
	binds  int
	err    error
}

// NewContext creates a context bound to device.
func NewContext(device *Device) *Context {
	return &Context{
		device:     device,
		state:      newState(),
		camera:     mgl32.Ident4(),
		projection: mgl32.Ident4(),
	}
}

// Device implements gfx.Context.
func (c *Context) Device() gfx.Device { return c.device }

// BeginPass implements gfx.Context.
func (c *Context) BeginPass(name string) {
	c.pass = name
	c.passes = append(c.passes, name)
}

// EndPass implements gfx.Context.
func (c *Context) EndPass() { c.pass = "" }

// SetVertexBuffer implements gfx.Context.
func (c *Context) SetVertexBuffer(b gfx.Buffer, stride uint32) {
	c.binds++
	c.state.VertexBuffer = c.buffer(b)
	c.state.Stride = stride
}

// SetIndexBuffer implements gfx.Context.
func (c *Context) SetIndexBuffer(b gfx.Buffer, format gputypes.IndexFormat) {
	c.binds++
	c.state.IndexBuffer = c.buffer(b)
	c.state.IndexFormat = format
}

// SetTopology implements gfx.Context.
func (c *Context) SetTopology(t gputypes.PrimitiveTopology) {
	c.binds++
	c.state.Topology = t
}

// SetInputLayout implements gfx.Context.
func (c *Context) SetInputLayout(layout gputypes.VertexBufferLayout) {
	c.binds++
	c.state.InputLayout = layout
}

// SetShader implements gfx.Context.
func (c *Context) SetShader(m gfx.ShaderModule) {
	c.binds++
	s, ok := m.(*Shader)
	if !ok {
		c.err = gfx.ErrForeignResource
		return
	}
	if s.stage == gfx.StageVertex {
		c.state.VertexShader = s
	} else {
		c.state.PixelShader = s
	}
}

// ClearShader implements gfx.Context.
func (c *Context) ClearShader(stage gfx.Stage) {
	c.binds++
	if stage == gfx.StageVertex {
		c.state.VertexShader = nil
	} else {
		c.state.PixelShader = nil
	}
}

// SetConstantBuffer implements gfx.Context.
func (c *Context) SetConstantBuffer(stage gfx.Stage, slot uint32, b gfx.Buffer) {
	c.binds++
	if stage == gfx.StageVertex {
		c.state.VertexConstants[slot] = c.buffer(b)
	} else {
		c.state.PixelConstants[slot] = c.buffer(b)
	}
}

// SetTexture implements gfx.Context.
func (c *Context) SetTexture(slot uint32, t gfx.Texture) {
	c.binds++
	c.state.Textures[slot] = c.texture(t)
}

// SetSampler implements gfx.Context.
func (c *Context) SetSampler(slot uint32, s gfx.Sampler) {
	c.binds++
	smp, ok := s.(*Sampler)
	if !ok {
		c.err = gfx.ErrForeignResource
		return
	}
	c.state.Samplers[slot] = smp
}

// SetRasterizer implements gfx.Context.
func (c *Context) SetRasterizer(state gfx.RasterizerState) {
	c.binds++
	c.state.Rasterizer = state
}

// SetDepthStencil implements gfx.Context.
func (c *Context) SetDepthStencil(state gfx.DepthStencilState) {
	c.binds++
	c.state.DepthStencil = state
}

// SetBlend implements gfx.Context.
func (c *Context) SetBlend(state *gputypes.BlendState) {
	c.binds++
	if state == nil {
		c.state.Blend = nil
		return
	}
	b := *state
	c.state.Blend = &b
}

// SetBlendConstant implements gfx.Context.
func (c *Context) SetBlendConstant(rgba [4]float32) {
	c.binds++
	c.state.BlendFactor = rgba
}

// SetRenderTarget implements gfx.Context.
func (c *Context) SetRenderTarget(color, depth gfx.Texture) {
	c.binds++
	c.state.ColorTarget = c.texture(color)
	c.state.DepthTarget = c.texture(depth)
}

// ClearTarget implements gfx.Context.
func (c *Context) ClearTarget(t gfx.Texture, rgba [4]float32) {
	c.clears = append(c.clears, Clear{Pass: c.pass, Target: c.texture(t), Color: rgba})
}

// DrawIndexed implements gfx.Context.
func (c *Context) DrawIndexed(indexCount uint32) error {
	if c.err != nil {
		err := c.err
		c.err = nil
		return err
	}
	if c.state.IndexBuffer == nil {
		return gfx.ErrNoIndexBuffer
	}
	data := make(map[uint32][]byte, len(c.state.VertexConstants))
	for slot, b := range c.state.VertexConstants {
		if b != nil {
			data[slot] = b.Data()
		}
	}
	c.draws = append(c.draws, Draw{
		Pass:               c.pass,
		IndexCount:         indexCount,
		State:              c.state.clone(),
		VertexConstantData: data,
	})
	return nil
}

// Camera implements gfx.Context.
func (c *Context) Camera() mgl32.Mat4 { return c.camera }

// SetCamera implements gfx.Context.
func (c *Context) SetCamera(view mgl32.Mat4) { c.camera = view }

// Projection implements gfx.Context.
func (c *Context) Projection() mgl32.Mat4 { return c.projection }

// SetProjection implements gfx.Context.
func (c *Context) SetProjection(proj mgl32.Mat4) { c.projection = proj }

// State returns a snapshot of the currently bound state.
func (c *Context) State() State { return c.state.clone() }

// Draws returns the recorded draws.
func (c *Context) Draws() []Draw { return c.draws }

// DrawsIn returns the recorded draws issued in the named pass.
func (c *Context) DrawsIn(pass string) []Draw {
	var out []Draw
	for _, d := range c.draws {
		if d.Pass == pass {
			out = append(out, d)
		}
	}
	return out
}

// Clears returns the recorded clears.
func (c *Context) Clears() []Clear { return c.clears }

// Passes returns the names passed to BeginPass, in call order.
func (c *Context) Passes() []string { return c.passes }

// BindCalls returns the number of state-setting calls made.
func (c *Context) BindCalls() int { return c.binds }

// Reset forgets recorded draws, clears and passes. Bound state is kept.
func (c *Context) Reset() {
	c.draws = nil
	c.clears = nil
	c.passes = nil
	c.binds = 0
}

func (c *Context) buffer(b gfx.Buffer) *Buffer {
	if b == nil {
		return nil
	}
	buf, ok := b.(*Buffer)
	if !ok {
		c.err = gfx.ErrForeignResource
	}
	return buf
}

func (c *Context) texture(t gfx.Texture) *Texture {
	if t == nil {
		return nil
	}
	tex, ok := t.(*Texture)
	if !ok {
		c.err = gfx.ErrForeignResource
	}
	return tex
}

var _ gfx.Context = (*Context)(nil)
