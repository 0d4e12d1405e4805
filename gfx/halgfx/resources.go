// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package halgfx

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rgraph/gfx"
)

// Buffer is a hal.Buffer.
type Buffer struct {
	dev   *Device
	label string
	kind  gfx.BufferKind
	size  uint64
	buf   hal.Buffer
}

func (b *Buffer) Label() string        { return b.label }
func (b *Buffer) Kind() gfx.BufferKind { return b.kind }
func (b *Buffer) Size() uint64         { return b.size }

// Destroy implements gfx.Buffer.
func (b *Buffer) Destroy() {
	if b.buf != nil {
		b.dev.device.DestroyBuffer(b.buf)
		b.buf = nil
	}
}

// Sampler is a hal.Sampler.
type Sampler struct {
	dev     *Device
	label   string
	compare bool
	sampler hal.Sampler
}

func (s *Sampler) Label() string { return s.label }

// Destroy implements gfx.Sampler.
func (s *Sampler) Destroy() {
	if s.sampler != nil {
		s.dev.device.DestroySampler(s.sampler)
		s.sampler = nil
	}
}

// Shader is a compiled hal.ShaderModule.
type Shader struct {
	dev    *Device
	label  string
	stage  gfx.Stage
	entry  string
	module hal.ShaderModule

	// hash identifies the source in pipeline keys.
	hash uint64
}

func (s *Shader) Label() string      { return s.label }
func (s *Shader) Stage() gfx.Stage   { return s.stage }
func (s *Shader) EntryPoint() string { return s.entry }

// Destroy implements gfx.ShaderModule.
func (s *Shader) Destroy() {
	if s.module != nil {
		s.dev.device.DestroyShaderModule(s.module)
		s.module = nil
	}
}

// Texture is a 2D hal.Texture with a default view. Depth textures also
// carry a depth-only view for sampling.
type Texture struct {
	dev        *Device
	label      string
	width      uint32
	height     uint32
	format     gputypes.TextureFormat
	tex        hal.Texture
	view       hal.TextureView
	sampleView hal.TextureView
}

func (t *Texture) Label() string                  { return t.label }
func (t *Texture) Width() uint32                  { return t.width }
func (t *Texture) Height() uint32                 { return t.height }
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// Destroy implements gfx.Texture.
func (t *Texture) Destroy() {
	if t.sampleView != nil {
		t.dev.device.DestroyTextureView(t.sampleView)
		t.sampleView = nil
	}
	if t.view != nil {
		t.dev.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		t.dev.device.DestroyTexture(t.tex)
		t.tex = nil
	}
}

var (
	_ gfx.Buffer       = (*Buffer)(nil)
	_ gfx.Sampler      = (*Sampler)(nil)
	_ gfx.ShaderModule = (*Shader)(nil)
	_ gfx.Texture      = (*Texture)(nil)
)
