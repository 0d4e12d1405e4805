// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package soft

import (
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rgraph/gfx"
)

// Buffer is a host-memory buffer.
type Buffer struct {
	id    uint64
	label string
	kind  gfx.BufferKind

	mu        sync.Mutex
	data      []byte
	destroyed bool
}

func (b *Buffer) ID() uint64           { return b.id }
func (b *Buffer) Label() string        { return b.label }
func (b *Buffer) Kind() gfx.BufferKind { return b.kind }
func (b *Buffer) Size() uint64         { return uint64(len(b.data)) }

// Destroyed reports whether Destroy was called.
func (b *Buffer) Destroyed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.destroyed
}

// Destroy marks the buffer as released.
func (b *Buffer) Destroy() {
	b.mu.Lock()
	b.destroyed = true
	b.mu.Unlock()
}

// Data returns a copy of the buffer contents.
func (b *Buffer) Data() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.data...)
}

// Sampler is a recorded sampler.
type Sampler struct {
	id   uint64
	desc gfx.SamplerDescriptor
}

func (s *Sampler) ID() uint64                        { return s.id }
func (s *Sampler) Label() string                     { return s.desc.Label }
func (s *Sampler) Descriptor() gfx.SamplerDescriptor { return s.desc }
func (s *Sampler) Destroy()                          {}

// Shader is a recorded shader module.
type Shader struct {
	id     uint64
	label  string
	stage  gfx.Stage
	entry  string
	source string
}

func (s *Shader) ID() uint64         { return s.id }
func (s *Shader) Label() string      { return s.label }
func (s *Shader) Stage() gfx.Stage   { return s.stage }
func (s *Shader) EntryPoint() string { return s.entry }
func (s *Shader) Source() string     { return s.source }
func (s *Shader) Destroy()           {}

// Texture is a host-memory texture.
type Texture struct {
	id     uint64
	label  string
	width  uint32
	height uint32
	format gputypes.TextureFormat
	target bool
	pixels []byte
}

func (t *Texture) ID() uint64                     { return t.id }
func (t *Texture) Label() string                  { return t.label }
func (t *Texture) Width() uint32                  { return t.width }
func (t *Texture) Height() uint32                 { return t.height }
func (t *Texture) Format() gputypes.TextureFormat { return t.format }
func (t *Texture) RenderTarget() bool             { return t.target }
func (t *Texture) Pixels() []byte                 { return t.pixels }
func (t *Texture) Destroy()                       {}
