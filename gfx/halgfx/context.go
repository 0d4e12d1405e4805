// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package halgfx

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rgraph/gfx"
)

// ErrNoVertexShader is returned by DrawIndexed without a bound vertex shader.
var ErrNoVertexShader = errors.New("halgfx: no vertex shader bound")

// flushTimeout bounds the submission wait in Flush.
const flushTimeout = 5 * time.Second

// state is the currently bound pipeline and resource state.
type state struct {
	vertexBuffer *Buffer
	stride       uint32
	indexBuffer  *Buffer
	indexFormat  gputypes.IndexFormat
	topology     gputypes.PrimitiveTopology
	layout       gputypes.VertexBufferLayout

	vertex *Shader
	pixel  *Shader

	vertexConstants [gfx.MaxSlots]*Buffer
	pixelConstants  [gfx.MaxSlots]*Buffer
	textures        [gfx.MaxSlots]*Texture
	samplers        [gfx.MaxSlots]*Sampler

	raster     gfx.RasterizerState
	depth      gfx.DepthStencilState
	blend      *gputypes.BlendState
	blendColor [4]float32

	color       *Texture
	depthTarget *Texture
}

// Context records draws into a command encoder and submits them on Flush.
//
// A HAL render pass is opened lazily by the first draw after the render
// targets change, and closed by EndPass, SetRenderTarget or ClearTarget.
// Clears are folded into the load operation of the next pass that uses
// the target, or into an empty pass when nothing draws to it.
type Context struct {
	dev   *Device
	state state

	camera     mgl32.Mat4
	projection mgl32.Mat4

	pass    string
	encoder hal.CommandEncoder
	rp      hal.RenderPassEncoder

	// clears holds pending clear colors by target.
	clears map[*Texture][4]float32

	// groups are per-draw bind groups, released after submission.
	groups []hal.BindGroup

	err error
}

func newContext(dev *Device) *Context {
	return &Context{
		dev: dev,
		state: state{
			topology: gputypes.PrimitiveTopologyTriangleList,
			raster:   gfx.DefaultRasterizerState(),
			depth:    gfx.DefaultDepthStencilState(),
		},
		camera:     mgl32.Ident4(),
		projection: mgl32.Ident4(),
		clears:     make(map[*Texture][4]float32),
	}
}

// Device implements gfx.Context.
func (c *Context) Device() gfx.Device { return c.dev }

// BeginPass implements gfx.Context.
func (c *Context) BeginPass(name string) {
	c.endRenderPass()
	c.pass = name
}

// EndPass implements gfx.Context.
func (c *Context) EndPass() {
	c.endRenderPass()
	c.flushClears()
	c.pass = ""
}

// SetVertexBuffer implements gfx.Context.
func (c *Context) SetVertexBuffer(b gfx.Buffer, stride uint32) {
	c.state.vertexBuffer = c.buffer(b)
	c.state.stride = stride
}

// SetIndexBuffer implements gfx.Context.
func (c *Context) SetIndexBuffer(b gfx.Buffer, format gputypes.IndexFormat) {
	c.state.indexBuffer = c.buffer(b)
	c.state.indexFormat = format
}

// SetTopology implements gfx.Context.
func (c *Context) SetTopology(t gputypes.PrimitiveTopology) { c.state.topology = t }

// SetInputLayout implements gfx.Context.
func (c *Context) SetInputLayout(layout gputypes.VertexBufferLayout) { c.state.layout = layout }

// SetShader implements gfx.Context.
func (c *Context) SetShader(m gfx.ShaderModule) {
	s, ok := m.(*Shader)
	if !ok {
		c.fail(gfx.ErrForeignResource)
		return
	}
	if s.stage == gfx.StageVertex {
		c.state.vertex = s
	} else {
		c.state.pixel = s
	}
}

// ClearShader implements gfx.Context.
func (c *Context) ClearShader(stage gfx.Stage) {
	if stage == gfx.StageVertex {
		c.state.vertex = nil
	} else {
		c.state.pixel = nil
	}
}

// SetConstantBuffer implements gfx.Context.
func (c *Context) SetConstantBuffer(stage gfx.Stage, slot uint32, b gfx.Buffer) {
	if slot >= gfx.MaxSlots {
		c.fail(fmt.Errorf("halgfx: constant slot %d out of range", slot))
		return
	}
	if stage == gfx.StageVertex {
		c.state.vertexConstants[slot] = c.buffer(b)
	} else {
		c.state.pixelConstants[slot] = c.buffer(b)
	}
}

// SetTexture implements gfx.Context.
func (c *Context) SetTexture(slot uint32, t gfx.Texture) {
	if slot >= gfx.MaxSlots {
		c.fail(fmt.Errorf("halgfx: texture slot %d out of range", slot))
		return
	}
	c.state.textures[slot] = c.texture(t)
}

// SetSampler implements gfx.Context.
func (c *Context) SetSampler(slot uint32, s gfx.Sampler) {
	if slot >= gfx.MaxSlots {
		c.fail(fmt.Errorf("halgfx: sampler slot %d out of range", slot))
		return
	}
	if s == nil {
		c.state.samplers[slot] = nil
		return
	}
	smp, ok := s.(*Sampler)
	if !ok {
		c.fail(gfx.ErrForeignResource)
		return
	}
	c.state.samplers[slot] = smp
}

// SetRasterizer implements gfx.Context.
func (c *Context) SetRasterizer(s gfx.RasterizerState) { c.state.raster = s }

// SetDepthStencil implements gfx.Context.
func (c *Context) SetDepthStencil(s gfx.DepthStencilState) { c.state.depth = s }

// SetBlend implements gfx.Context.
func (c *Context) SetBlend(s *gputypes.BlendState) {
	if s == nil {
		c.state.blend = nil
		return
	}
	b := *s
	c.state.blend = &b
}

// SetBlendConstant implements gfx.Context.
func (c *Context) SetBlendConstant(rgba [4]float32) { c.state.blendColor = rgba }

// SetRenderTarget implements gfx.Context.
func (c *Context) SetRenderTarget(color, depth gfx.Texture) {
	ct, dt := c.texture(color), c.texture(depth)
	if ct == c.state.color && dt == c.state.depthTarget {
		return
	}
	c.endRenderPass()
	c.state.color = ct
	c.state.depthTarget = dt
}

// ClearTarget implements gfx.Context.
func (c *Context) ClearTarget(t gfx.Texture, rgba [4]float32) {
	tex := c.texture(t)
	if tex == nil {
		return
	}
	if c.rp != nil && (tex == c.state.color || tex == c.state.depthTarget) {
		c.endRenderPass()
	}
	c.clears[tex] = rgba
}

// DrawIndexed implements gfx.Context.
func (c *Context) DrawIndexed(indexCount uint32) error {
	if err := c.takeErr(); err != nil {
		return err
	}
	if c.state.indexBuffer == nil {
		return gfx.ErrNoIndexBuffer
	}
	if c.state.vertex == nil {
		return ErrNoVertexShader
	}

	key := c.pipelineKey()
	entry, err := c.dev.pipelines.getOrCreate(key.hash(), func() (*pipelineEntry, error) {
		return c.dev.createPipeline(&key)
	})
	if err != nil {
		return fmt.Errorf("halgfx: pass %q: create pipeline: %w", c.pass, err)
	}
	group, err := c.dev.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   "rgraph_draw",
		Layout:  entry.group,
		Entries: c.bindGroupEntries(),
	})
	if err != nil {
		return fmt.Errorf("halgfx: pass %q: create bind group: %w", c.pass, err)
	}
	c.groups = append(c.groups, group)

	if err := c.beginRenderPass(); err != nil {
		return err
	}
	rp := c.rp
	rp.SetPipeline(entry.pipeline)
	rp.SetBindGroup(0, group, nil)
	if c.state.vertexBuffer != nil {
		rp.SetVertexBuffer(0, c.state.vertexBuffer.buf, 0)
	}
	rp.SetIndexBuffer(c.state.indexBuffer.buf, c.state.indexFormat, 0)
	if c.state.depth.StencilTest {
		rp.SetStencilReference(c.state.depth.Reference)
	}
	if c.state.blend != nil {
		bc := c.state.blendColor
		rp.SetBlendConstant(&gputypes.Color{R: float64(bc[0]), G: float64(bc[1]), B: float64(bc[2]), A: float64(bc[3])})
	}
	rp.DrawIndexed(indexCount, 1, 0, 0, 0)
	return nil
}

// Flush closes any open pass, submits the recorded commands and waits for
// the GPU to finish them.
func (c *Context) Flush() error {
	c.endRenderPass()
	c.flushClears()
	defer c.releaseGroups()

	if err := c.takeErr(); err != nil {
		c.abandon()
		return err
	}
	if c.encoder == nil {
		return nil
	}
	encoder := c.encoder
	c.encoder = nil

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("halgfx: end encoding: %w", err)
	}
	defer c.dev.device.FreeCommandBuffer(cmdBuf)

	index, err := c.dev.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return fmt.Errorf("halgfx: submit: %w", err)
	}
	return c.dev.wait(index)
}

// Camera implements gfx.Context.
func (c *Context) Camera() mgl32.Mat4 { return c.camera }

// SetCamera implements gfx.Context.
func (c *Context) SetCamera(view mgl32.Mat4) { c.camera = view }

// Projection implements gfx.Context.
func (c *Context) Projection() mgl32.Mat4 { return c.projection }

// SetProjection implements gfx.Context.
func (c *Context) SetProjection(proj mgl32.Mat4) { c.projection = proj }

func (c *Context) pipelineKey() pipelineKey {
	k := pipelineKey{
		vertex:   c.state.vertex,
		pixel:    c.state.pixel,
		layout:   c.state.layout,
		topology: c.state.topology,
		raster:   c.state.raster,
		depth:    c.state.depth,
		blend:    c.state.blend,
		bindings: c.bindings(),
	}
	if c.state.color != nil {
		k.colorFormat = c.state.color.format
	}
	if c.state.depthTarget != nil {
		k.depthFormat = c.state.depthTarget.format
	}
	return k
}

// bindings returns the mask of bound group 0 resources.
func (c *Context) bindings() bindingMask {
	var m bindingMask
	for slot := uint32(0); slot < gfx.MaxSlots; slot++ {
		if c.state.vertexConstants[slot] != nil {
			m |= 1 << gfx.ConstantBinding(gfx.StageVertex, slot)
		}
		if c.state.pixelConstants[slot] != nil {
			m |= 1 << gfx.ConstantBinding(gfx.StagePixel, slot)
		}
		if t := c.state.textures[slot]; t != nil {
			m |= 1 << gfx.TextureBinding(slot)
			if t.sampleView != nil {
				m |= 1 << (depthTextureShift + slot)
			}
		}
		if s := c.state.samplers[slot]; s != nil {
			m |= 1 << gfx.SamplerBinding(slot)
			if s.compare {
				m |= 1 << (compareSamplerShift + slot)
			}
		}
	}
	return m
}

func (c *Context) bindGroupEntries() []gputypes.BindGroupEntry {
	var out []gputypes.BindGroupEntry
	uniform := func(binding uint32, b *Buffer) {
		out = append(out, gputypes.BindGroupEntry{
			Binding:  binding,
			Resource: gputypes.BufferBinding{Buffer: b.buf.NativeHandle(), Offset: 0, Size: b.size},
		})
	}
	for slot := uint32(0); slot < gfx.MaxSlots; slot++ {
		if b := c.state.vertexConstants[slot]; b != nil {
			uniform(gfx.ConstantBinding(gfx.StageVertex, slot), b)
		}
	}
	for slot := uint32(0); slot < gfx.MaxSlots; slot++ {
		if b := c.state.pixelConstants[slot]; b != nil {
			uniform(gfx.ConstantBinding(gfx.StagePixel, slot), b)
		}
	}
	for slot := uint32(0); slot < gfx.MaxSlots; slot++ {
		if t := c.state.textures[slot]; t != nil {
			view := t.view
			if t.sampleView != nil {
				view = t.sampleView
			}
			out = append(out, gputypes.BindGroupEntry{
				Binding:  gfx.TextureBinding(slot),
				Resource: gputypes.TextureViewBinding{TextureView: view.NativeHandle()},
			})
		}
	}
	for slot := uint32(0); slot < gfx.MaxSlots; slot++ {
		if s := c.state.samplers[slot]; s != nil {
			out = append(out, gputypes.BindGroupEntry{
				Binding:  gfx.SamplerBinding(slot),
				Resource: gputypes.SamplerBinding{Sampler: s.sampler.NativeHandle()},
			})
		}
	}
	return out
}

func (c *Context) ensureEncoder() error {
	if c.encoder != nil {
		return nil
	}
	encoder, err := c.dev.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "rgraph_frame"})
	if err != nil {
		return fmt.Errorf("halgfx: create encoder: %w", err)
	}
	if err := encoder.BeginEncoding("rgraph_frame"); err != nil {
		return fmt.Errorf("halgfx: begin encoding: %w", err)
	}
	c.encoder = encoder
	return nil
}

// beginRenderPass opens a pass on the bound targets, consuming their
// pending clears.
func (c *Context) beginRenderPass() error {
	if c.rp != nil {
		return nil
	}
	if err := c.ensureEncoder(); err != nil {
		return err
	}
	c.rp = c.encoder.BeginRenderPass(c.passDescriptor(c.state.color, c.state.depthTarget))
	return nil
}

func (c *Context) passDescriptor(color, depth *Texture) *hal.RenderPassDescriptor {
	desc := &hal.RenderPassDescriptor{Label: c.pass}
	if color != nil {
		att := hal.RenderPassColorAttachment{
			View:    color.view,
			LoadOp:  gputypes.LoadOpLoad,
			StoreOp: gputypes.StoreOpStore,
		}
		if rgba, ok := c.clears[color]; ok {
			att.LoadOp = gputypes.LoadOpClear
			att.ClearValue = gputypes.Color{R: float64(rgba[0]), G: float64(rgba[1]), B: float64(rgba[2]), A: float64(rgba[3])}
			delete(c.clears, color)
		}
		desc.ColorAttachments = []hal.RenderPassColorAttachment{att}
	}
	if depth != nil {
		att := &hal.RenderPassDepthStencilAttachment{
			View:            depth.view,
			DepthLoadOp:     gputypes.LoadOpLoad,
			DepthStoreOp:    gputypes.StoreOpStore,
			DepthClearValue: 1.0,
			StencilLoadOp:   gputypes.LoadOpLoad,
			StencilStoreOp:  gputypes.StoreOpStore,
		}
		if _, ok := c.clears[depth]; ok {
			att.DepthLoadOp = gputypes.LoadOpClear
			att.StencilLoadOp = gputypes.LoadOpClear
			att.StencilClearValue = 0
			delete(c.clears, depth)
		}
		desc.DepthStencilAttachment = att
	}
	return desc
}

func (c *Context) endRenderPass() {
	if c.rp == nil {
		return
	}
	c.rp.End()
	c.rp = nil
}

// flushClears records an empty pass for each target cleared but not drawn to.
func (c *Context) flushClears() {
	if len(c.clears) == 0 {
		return
	}
	if err := c.ensureEncoder(); err != nil {
		c.fail(err)
		return
	}
	for t := range c.clears {
		var rp hal.RenderPassEncoder
		if isDepthFormat(t.format) {
			rp = c.encoder.BeginRenderPass(c.passDescriptor(nil, t))
		} else {
			rp = c.encoder.BeginRenderPass(c.passDescriptor(t, nil))
		}
		rp.End()
	}
}

func (c *Context) releaseGroups() {
	for _, g := range c.groups {
		c.dev.device.DestroyBindGroup(g)
	}
	c.groups = c.groups[:0]
}

// Discard drops everything recorded since the last Flush, so the next frame
// starts from an empty encoder.
func (c *Context) Discard() {
	c.endRenderPass()
	c.abandon()
	c.releaseGroups()
	clear(c.clears)
	c.err = nil
}

// abandon drops recorded commands after a failure.
func (c *Context) abandon() {
	if c.encoder == nil {
		return
	}
	c.encoder.DiscardEncoding()
	c.encoder = nil
}

func (c *Context) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

func (c *Context) takeErr() error {
	err := c.err
	c.err = nil
	return err
}

func (c *Context) buffer(b gfx.Buffer) *Buffer {
	if b == nil {
		return nil
	}
	buf, ok := b.(*Buffer)
	if !ok {
		c.fail(gfx.ErrForeignResource)
	}
	return buf
}

func (c *Context) texture(t gfx.Texture) *Texture {
	if t == nil {
		return nil
	}
	tex, ok := t.(*Texture)
	if !ok {
		c.fail(gfx.ErrForeignResource)
	}
	return tex
}

func isDepthFormat(f gputypes.TextureFormat) bool {
	switch f {
	case gputypes.TextureFormatDepth24PlusStencil8,
		gputypes.TextureFormatDepth24Plus,
		gputypes.TextureFormatDepth32Float:
		return true
	}
	return false
}

var _ gfx.Context = (*Context)(nil)
