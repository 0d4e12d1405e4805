// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bind

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rgraph/cache"
	"github.com/gogpu/rgraph/gfx"
)

// VertexElement is one attribute of a vertex.
type VertexElement uint8

// Vertex elements. Attributes are tightly packed in declaration order.
const (
	Position2D VertexElement = iota
	Position3D
	Texture2D
	Normal
	Tangent
	Bitangent
	Float3Color
	Float4Color
)

var vertexElements = [...]struct {
	code   string
	format gputypes.VertexFormat
	size   uint64
}{
	Position2D:  {"P2", gputypes.VertexFormatFloat32x2, 8},
	Position3D:  {"P3", gputypes.VertexFormatFloat32x3, 12},
	Texture2D:   {"T2", gputypes.VertexFormatFloat32x2, 8},
	Normal:      {"N", gputypes.VertexFormatFloat32x3, 12},
	Tangent:     {"Nt", gputypes.VertexFormatFloat32x3, 12},
	Bitangent:   {"Nb", gputypes.VertexFormatFloat32x3, 12},
	Float3Color: {"C3", gputypes.VertexFormatFloat32x3, 12},
	Float4Color: {"C4", gputypes.VertexFormatFloat32x4, 16},
}

// Code returns the short signature code of the element.
func (e VertexElement) Code() string { return vertexElements[e].code }

// Size returns the element size in bytes.
func (e VertexElement) Size() uint64 { return vertexElements[e].size }

// Floats returns the number of float32 components of the element.
func (e VertexElement) Floats() int { return int(vertexElements[e].size / 4) }

// VertexLayout is an ordered list of vertex elements.
type VertexLayout struct {
	elements []VertexElement
}

// NewVertexLayout creates a layout from elements.
func NewVertexLayout(elements ...VertexElement) VertexLayout {
	return VertexLayout{elements: append([]VertexElement(nil), elements...)}
}

// Append returns a layout with e added at the end.
func (l VertexLayout) Append(e VertexElement) VertexLayout {
	out := make([]VertexElement, len(l.elements), len(l.elements)+1)
	copy(out, l.elements)
	return VertexLayout{elements: append(out, e)}
}

// Elements returns the elements in order.
func (l VertexLayout) Elements() []VertexElement { return l.elements }

// Stride returns the size of one vertex in bytes.
func (l VertexLayout) Stride() uint64 {
	var n uint64
	for _, e := range l.elements {
		n += e.Size()
	}
	return n
}

// Floats returns the number of float32 values in one vertex.
func (l VertexLayout) Floats() int {
	n := 0
	for _, e := range l.elements {
		n += e.Floats()
	}
	return n
}

// Code returns the layout signature, e.g. "P3NT2".
func (l VertexLayout) Code() string {
	var sb strings.Builder
	for _, e := range l.elements {
		sb.WriteString(e.Code())
	}
	return sb.String()
}

// BufferLayout converts the layout to a vertex buffer layout with shader
// locations assigned in element order.
func (l VertexLayout) BufferLayout() gputypes.VertexBufferLayout {
	attrs := make([]gputypes.VertexAttribute, len(l.elements))
	var offset uint64
	for i, e := range l.elements {
		attrs[i] = gputypes.VertexAttribute{
			Format:         vertexElements[e].format,
			Offset:         offset,
			ShaderLocation: uint32(i),
		}
		offset += e.Size()
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}
}

// PackFloats encodes float32 values as little-endian bytes.
func PackFloats(v []float32) []byte {
	out := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(f))
	}
	return out
}

// PackIndices encodes 16-bit indices as little-endian bytes.
func PackIndices(v []uint16) []byte {
	out := make([]byte, 2*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint16(out[2*i:], x)
	}
	return out
}

// InputLayout binds the vertex input layout.
type InputLayout struct {
	layout VertexLayout
	buffer gputypes.VertexBufferLayout
}

// InputLayoutID returns the codex identity of an input layout.
func InputLayoutID(layout VertexLayout) string {
	return cache.Key("inputlayout", layout.Code())
}

// ResolveInputLayout returns the shared input layout.
func ResolveInputLayout(c *cache.Codex, layout VertexLayout) (*InputLayout, error) {
	return cache.Resolve(c, InputLayoutID(layout), func() (*InputLayout, error) {
		return &InputLayout{layout: layout, buffer: layout.BufferLayout()}, nil
	})
}

// Bind implements Bindable.
func (l *InputLayout) Bind(ctx gfx.Context) error {
	ctx.SetInputLayout(l.buffer)
	return nil
}

// ID implements Bindable.
func (l *InputLayout) ID() string { return InputLayoutID(l.layout) }

// Layout returns the vertex layout.
func (l *InputLayout) Layout() VertexLayout { return l.layout }
