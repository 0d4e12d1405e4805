// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"github.com/gogpu/gputypes"
)

// Device creates GPU resources.
//
// Creation may fail (out of memory, invalid shader source, lost device);
// failures are returned to the caller and nothing is retained.
type Device interface {
	// CreateBuffer creates a buffer initialized with desc.Data.
	CreateBuffer(desc *BufferDescriptor) (Buffer, error)

	// WriteBuffer replaces the contents of b starting at offset 0.
	WriteBuffer(b Buffer, data []byte) error

	// CreateSampler creates a texture sampler.
	CreateSampler(desc *SamplerDescriptor) (Sampler, error)

	// CreateShaderModule compiles a shader module for one stage.
	CreateShaderModule(desc *ShaderDescriptor) (ShaderModule, error)

	// CreateTexture creates a 2D texture, optionally initialized with pixels.
	CreateTexture(desc *TextureDescriptor) (Texture, error)
}

// BufferKind selects how a buffer is bound.
type BufferKind uint8

const (
	// BufferVertex holds vertex data.
	BufferVertex BufferKind = iota

	// BufferIndex holds 16-bit indices.
	BufferIndex

	// BufferUniform holds shader constants.
	BufferUniform
)

// String returns the buffer kind name.
func (k BufferKind) String() string {
	switch k {
	case BufferVertex:
		return "vertex"
	case BufferIndex:
		return "index"
	case BufferUniform:
		return "uniform"
	default:
		return "unknown"
	}
}

// Usage maps the buffer kind to WebGPU buffer usage flags.
func (k BufferKind) Usage() gputypes.BufferUsage {
	switch k {
	case BufferVertex:
		return gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst
	case BufferIndex:
		return gputypes.BufferUsageIndex | gputypes.BufferUsageCopyDst
	default:
		return gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst
	}
}

// BufferDescriptor describes a buffer to create.
type BufferDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Kind selects the binding point of the buffer.
	Kind BufferKind

	// Data is the initial content. Its length is the buffer size.
	Data []byte
}

// Buffer is a GPU buffer.
type Buffer interface {
	// Label returns the debug label.
	Label() string

	// Kind returns the binding point of the buffer.
	Kind() BufferKind

	// Size returns the buffer size in bytes.
	Size() uint64

	// Destroy releases the GPU memory.
	Destroy()
}

// SamplerDescriptor describes a texture sampler.
type SamplerDescriptor struct {
	Label        string
	MagFilter    gputypes.FilterMode
	MinFilter    gputypes.FilterMode
	MipmapFilter gputypes.FilterMode
	AddressMode  gputypes.AddressMode
	MaxAniso     uint16

	// Compare makes a comparison sampler for depth textures. The zero
	// value is an ordinary sampler.
	Compare gputypes.CompareFunction
}

// Sampler is a GPU sampler object.
type Sampler interface {
	Label() string
	Destroy()
}

// Stage identifies a programmable pipeline stage.
type Stage uint8

const (
	// StageVertex is the vertex stage.
	StageVertex Stage = iota

	// StagePixel is the fragment stage.
	StagePixel
)

// String returns the stage name.
func (s Stage) String() string {
	if s == StageVertex {
		return "vertex"
	}
	return "pixel"
}

// ShaderDescriptor describes a shader module.
type ShaderDescriptor struct {
	Label string
	Stage Stage

	// Source is WGSL source code.
	Source string

	// EntryPoint defaults to "vs_main" or "fs_main" depending on Stage.
	EntryPoint string
}

// Entry returns the entry point, applying the stage default.
func (d *ShaderDescriptor) Entry() string {
	if d.EntryPoint != "" {
		return d.EntryPoint
	}
	if d.Stage == StageVertex {
		return "vs_main"
	}
	return "fs_main"
}

// ShaderModule is a compiled shader for one stage.
type ShaderModule interface {
	Label() string
	Stage() Stage
	EntryPoint() string
	Destroy()
}

// TextureDescriptor describes a 2D texture.
type TextureDescriptor struct {
	Label  string
	Width  uint32
	Height uint32
	Format gputypes.TextureFormat

	// RenderTarget marks the texture usable as a color or depth attachment.
	RenderTarget bool

	// Pixels is the optional initial content, tightly packed rows.
	Pixels []byte
}

// Texture is a GPU texture.
type Texture interface {
	Label() string
	Width() uint32
	Height() uint32
	Format() gputypes.TextureFormat
	Destroy()
}
