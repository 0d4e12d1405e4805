// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

// Context accepts state-setting calls and issues indexed draws.
//
// A Context is the single GPU context the render graph executes on. Passes
// bracket their work with BeginPass/EndPass so implementations can open
// render passes or label recorded commands.
type Context interface {
	// Device returns the device that owns the context's resources.
	Device() Device

	// BeginPass marks the start of a named pass.
	BeginPass(name string)

	// EndPass marks the end of the current pass.
	EndPass()

	SetVertexBuffer(b Buffer, stride uint32)
	SetIndexBuffer(b Buffer, format gputypes.IndexFormat)
	SetTopology(t gputypes.PrimitiveTopology)
	SetInputLayout(layout gputypes.VertexBufferLayout)

	// SetShader binds a module to the stage it was compiled for.
	SetShader(m ShaderModule)

	// ClearShader unbinds the module of a stage (depth-only rendering).
	ClearShader(stage Stage)

	SetConstantBuffer(stage Stage, slot uint32, b Buffer)
	SetTexture(slot uint32, t Texture)
	SetSampler(slot uint32, s Sampler)

	SetRasterizer(state RasterizerState)
	SetDepthStencil(state DepthStencilState)

	// SetBlend sets the color blend state. Nil disables blending.
	SetBlend(state *gputypes.BlendState)

	// SetBlendConstant sets the color used by constant blend factors.
	SetBlendConstant(rgba [4]float32)

	// SetRenderTarget selects the color and depth attachments. Either may be nil.
	SetRenderTarget(color, depth Texture)

	// ClearTarget clears a color attachment to rgba, or a depth attachment to 1.
	ClearTarget(t Texture, rgba [4]float32)

	// DrawIndexed draws indexCount indices from the bound index buffer
	// using all currently bound state.
	DrawIndexed(indexCount uint32) error

	Camera() mgl32.Mat4
	SetCamera(view mgl32.Mat4)
	Projection() mgl32.Mat4
	SetProjection(proj mgl32.Mat4)
}

// RasterizerState is the fixed-function rasterizer configuration.
type RasterizerState struct {
	CullMode  gputypes.CullMode
	FrontFace gputypes.FrontFace

	// DepthBias is a constant depth offset, used by shadow-map rendering.
	DepthBias int32

	// SlopeBias scales the bias by the polygon's depth slope.
	SlopeBias float32

	// BiasClamp limits the total bias. Zero means no clamp.
	BiasClamp float32
}

// DefaultRasterizerState returns back-face culling with counter-clockwise fronts.
func DefaultRasterizerState() RasterizerState {
	return RasterizerState{
		CullMode:  gputypes.CullModeBack,
		FrontFace: gputypes.FrontFaceCCW,
	}
}

// StencilOp is the operation applied to the stencil buffer when a test passes.
type StencilOp uint8

const (
	// StencilKeep keeps the stored value.
	StencilKeep StencilOp = iota

	// StencilReplace writes the reference value.
	StencilReplace
)

// DepthStencilState is the depth and stencil test configuration.
type DepthStencilState struct {
	DepthTest    bool
	DepthWrite   bool
	DepthCompare gputypes.CompareFunction

	StencilTest    bool
	StencilCompare gputypes.CompareFunction
	StencilPassOp  StencilOp
	ReadMask       uint8
	WriteMask      uint8
	Reference      uint32
}

// DefaultDepthStencilState returns depth test + write with a less-than
// comparison and no stencil test.
func DefaultDepthStencilState() DepthStencilState {
	return DepthStencilState{
		DepthTest:      true,
		DepthWrite:     true,
		DepthCompare:   gputypes.CompareFunctionLess,
		StencilCompare: gputypes.CompareFunctionAlways,
		StencilPassOp:  StencilKeep,
		ReadMask:       0xFF,
		WriteMask:      0xFF,
		Reference:      0xFF,
	}
}
