// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package halgfx

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"math"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rgraph/gfx"
)

// bindingMask records which group 0 bindings a draw uses. Bit n is set
// when binding n is bound. The bits above the bindings mark texture slots
// holding depth textures and sampler slots holding comparison samplers.
type bindingMask uint32

const (
	depthTextureShift   = 16
	compareSamplerShift = depthTextureShift + gfx.MaxSlots
)

func (m bindingMask) has(binding uint32) bool { return m&(1<<binding) != 0 }

func (m bindingMask) depthTexture(slot uint32) bool {
	return m&(1<<(depthTextureShift+slot)) != 0
}

func (m bindingMask) compareSampler(slot uint32) bool {
	return m&(1<<(compareSamplerShift+slot)) != 0
}

// entries returns the bind group layout entries for m.
func (m bindingMask) entries() []gputypes.BindGroupLayoutEntry {
	var out []gputypes.BindGroupLayoutEntry
	for slot := uint32(0); slot < gfx.MaxSlots; slot++ {
		if b := gfx.ConstantBinding(gfx.StageVertex, slot); m.has(b) {
			out = append(out, gputypes.BindGroupLayoutEntry{
				Binding:    b,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			})
		}
	}
	for slot := uint32(0); slot < gfx.MaxSlots; slot++ {
		if b := gfx.ConstantBinding(gfx.StagePixel, slot); m.has(b) {
			out = append(out, gputypes.BindGroupLayoutEntry{
				Binding:    b,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			})
		}
	}
	for slot := uint32(0); slot < gfx.MaxSlots; slot++ {
		if b := gfx.TextureBinding(slot); m.has(b) {
			sample := gputypes.TextureSampleTypeFloat
			if m.depthTexture(slot) {
				sample = gputypes.TextureSampleTypeDepth
			}
			out = append(out, gputypes.BindGroupLayoutEntry{
				Binding:    b,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    sample,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			})
		}
	}
	for slot := uint32(0); slot < gfx.MaxSlots; slot++ {
		if b := gfx.SamplerBinding(slot); m.has(b) {
			typ := gputypes.SamplerBindingTypeFiltering
			if m.compareSampler(slot) {
				typ = gputypes.SamplerBindingTypeComparison
			}
			out = append(out, gputypes.BindGroupLayoutEntry{
				Binding:    b,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: typ},
			})
		}
	}
	return out
}

// pipelineKey is the bound state that selects a render pipeline.
type pipelineKey struct {
	vertex *Shader
	pixel  *Shader

	layout   gputypes.VertexBufferLayout
	topology gputypes.PrimitiveTopology
	raster   gfx.RasterizerState
	depth    gfx.DepthStencilState
	blend    *gputypes.BlendState

	colorFormat gputypes.TextureFormat
	depthFormat gputypes.TextureFormat
	bindings    bindingMask
}

// hash returns the FNV-1a hash of k.
func (k *pipelineKey) hash() uint64 {
	h := fnv.New64a()

	hashWriteShader(h, k.vertex)
	hashWriteShader(h, k.pixel)

	hashWriteUint64(h, k.layout.ArrayStride)
	hashWriteUint32(h, uint32(k.layout.StepMode))
	hashWriteUint32(h, uint32(len(k.layout.Attributes)))
	for _, a := range k.layout.Attributes {
		hashWriteUint32(h, a.ShaderLocation)
		hashWriteUint32(h, uint32(a.Format))
		hashWriteUint64(h, a.Offset)
	}

	hashWriteUint32(h, uint32(k.topology))
	hashWriteUint32(h, uint32(k.raster.CullMode))
	hashWriteUint32(h, uint32(k.raster.FrontFace))
	hashWriteUint32(h, uint32(k.raster.DepthBias))
	hashWriteUint32(h, math.Float32bits(k.raster.SlopeBias))
	hashWriteUint32(h, math.Float32bits(k.raster.BiasClamp))

	hashWriteBool(h, k.depth.DepthTest)
	hashWriteBool(h, k.depth.DepthWrite)
	hashWriteUint32(h, uint32(k.depth.DepthCompare))
	hashWriteBool(h, k.depth.StencilTest)
	hashWriteUint32(h, uint32(k.depth.StencilCompare))
	hashWriteUint32(h, uint32(k.depth.StencilPassOp))
	hashWriteUint32(h, uint32(k.depth.ReadMask)<<8|uint32(k.depth.WriteMask))

	hashWriteBool(h, k.blend != nil)
	if k.blend != nil {
		for _, c := range []gputypes.BlendComponent{k.blend.Color, k.blend.Alpha} {
			hashWriteUint32(h, uint32(c.SrcFactor))
			hashWriteUint32(h, uint32(c.DstFactor))
			hashWriteUint32(h, uint32(c.Operation))
		}
	}

	hashWriteUint32(h, uint32(k.colorFormat))
	hashWriteUint32(h, uint32(k.depthFormat))
	hashWriteUint32(h, uint32(k.bindings))
	return h.Sum64()
}

func hashWriteShader(h hash.Hash64, s *Shader) {
	if s == nil {
		hashWriteBool(h, false)
		return
	}
	hashWriteBool(h, true)
	hashWriteUint64(h, s.hash)
	hashWriteString(h, s.entry)
}

func hashWriteUint32(h hash.Hash64, v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, _ = h.Write(buf[:])
}

func hashWriteUint64(h hash.Hash64, v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, _ = h.Write(buf[:])
}

//nolint:gosec // G115: entry point names are short
func hashWriteString(h hash.Hash64, s string) {
	hashWriteUint32(h, uint32(len(s)))
	_, _ = h.Write([]byte(s))
}

func hashWriteBool(h hash.Hash64, v bool) {
	if v {
		_, _ = h.Write([]byte{1})
	} else {
		_, _ = h.Write([]byte{0})
	}
}

// pipelineEntry is a cached pipeline with the layout it was built on.
type pipelineEntry struct {
	pipeline hal.RenderPipeline
	pipe     hal.PipelineLayout
	group    hal.BindGroupLayout
}

// pipelineCache maps pipeline key hashes to created pipelines using
// double-check locking.
type pipelineCache struct {
	mu      sync.RWMutex
	entries map[uint64]*pipelineEntry

	hits   uint64
	misses uint64
}

func newPipelineCache() *pipelineCache {
	return &pipelineCache{entries: make(map[uint64]*pipelineEntry)}
}

// getOrCreate returns the entry for key, calling create on a miss.
// Failed creations are not cached.
func (c *pipelineCache) getOrCreate(key uint64, create func() (*pipelineEntry, error)) (*pipelineEntry, error) {
	c.mu.RLock()
	if e, ok := c.entries[key]; ok {
		c.mu.RUnlock()
		atomic.AddUint64(&c.hits, 1)
		return e, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		atomic.AddUint64(&c.hits, 1)
		return e, nil
	}
	e, err := create()
	if err != nil {
		return nil, err
	}
	c.entries[key] = e
	atomic.AddUint64(&c.misses, 1)
	return e, nil
}

// Stats returns cache hits and misses.
func (c *pipelineCache) Stats() (hits, misses uint64) {
	return atomic.LoadUint64(&c.hits), atomic.LoadUint64(&c.misses)
}

// Size returns the number of cached pipelines.
func (c *pipelineCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *pipelineCache) destroyAll(device hal.Device) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		if e.pipeline != nil {
			device.DestroyRenderPipeline(e.pipeline)
		}
		if e.pipe != nil {
			device.DestroyPipelineLayout(e.pipe)
		}
	}
	c.entries = make(map[uint64]*pipelineEntry)
	atomic.StoreUint64(&c.hits, 0)
	atomic.StoreUint64(&c.misses, 0)
}

// layoutCache shares bind group layouts between pipelines with the same
// binding mask.
type layoutCache struct {
	mu      sync.Mutex
	layouts map[bindingMask]hal.BindGroupLayout
}

func newLayoutCache() *layoutCache {
	return &layoutCache{layouts: make(map[bindingMask]hal.BindGroupLayout)}
}

func (c *layoutCache) get(device hal.Device, m bindingMask) (hal.BindGroupLayout, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if l, ok := c.layouts[m]; ok {
		return l, nil
	}
	l, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   "rgraph_group0",
		Entries: m.entries(),
	})
	if err != nil {
		return nil, err
	}
	c.layouts[m] = l
	return l, nil
}

func (c *layoutCache) destroyAll(device hal.Device) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.layouts {
		device.DestroyBindGroupLayout(l)
	}
	c.layouts = make(map[bindingMask]hal.BindGroupLayout)
}

// createPipeline builds the render pipeline for k.
func (d *Device) createPipeline(k *pipelineKey) (*pipelineEntry, error) {
	group, err := d.layouts.get(d.device, k.bindings)
	if err != nil {
		return nil, err
	}
	pipe, err := d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "rgraph_pipeline_layout",
		BindGroupLayouts: []hal.BindGroupLayout{group},
	})
	if err != nil {
		return nil, err
	}

	desc := &hal.RenderPipelineDescriptor{
		Label:  "rgraph_pipeline",
		Layout: pipe,
		Vertex: hal.VertexState{
			Module:     k.vertex.module,
			EntryPoint: k.vertex.entry,
			Buffers:    []gputypes.VertexBufferLayout{k.layout},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  k.topology,
			CullMode:  k.raster.CullMode,
			FrontFace: k.raster.FrontFace,
		},
		Multisample: gputypes.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	}
	if k.pixel != nil && k.colorFormat != gputypes.TextureFormatUndefined {
		desc.Fragment = &hal.FragmentState{
			Module:     k.pixel.module,
			EntryPoint: k.pixel.entry,
			Targets: []gputypes.ColorTargetState{{
				Format:    k.colorFormat,
				Blend:     k.blend,
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		}
	}
	if k.depthFormat != gputypes.TextureFormatUndefined {
		ds := depthStencilState(k.depthFormat, k.depth)
		ds.DepthBias = k.raster.DepthBias
		ds.DepthBiasSlopeScale = k.raster.SlopeBias
		ds.DepthBiasClamp = k.raster.BiasClamp
		desc.DepthStencil = ds
	}

	pipeline, err := d.device.CreateRenderPipeline(desc)
	if err != nil {
		d.device.DestroyPipelineLayout(pipe)
		return nil, err
	}
	return &pipelineEntry{pipeline: pipeline, pipe: pipe, group: group}, nil
}

// depthStencilState converts gfx depth-stencil state to its HAL form.
func depthStencilState(format gputypes.TextureFormat, s gfx.DepthStencilState) *hal.DepthStencilState {
	compare := s.DepthCompare
	if !s.DepthTest {
		compare = gputypes.CompareFunctionAlways
	}
	face := hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
	var readMask, writeMask uint32
	if s.StencilTest {
		face.Compare = s.StencilCompare
		if s.StencilPassOp == gfx.StencilReplace {
			face.PassOp = hal.StencilOperationReplace
		}
		readMask = uint32(s.ReadMask)
		writeMask = uint32(s.WriteMask)
	}
	return &hal.DepthStencilState{
		Format:            format,
		DepthWriteEnabled: s.DepthTest && s.DepthWrite,
		DepthCompare:      compare,
		StencilFront:      face,
		StencilBack:       face,
		StencilReadMask:   readMask,
		StencilWriteMask:  writeMask,
	}
}
