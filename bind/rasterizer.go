// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bind

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/rgraph/cache"
	"github.com/gogpu/rgraph/gfx"
)

// Rasterizer selects back-face culling or two-sided rendering.
type Rasterizer struct {
	twoSided bool
}

// RasterizerID returns the codex identity of a rasterizer.
func RasterizerID(twoSided bool) string {
	if twoSided {
		return cache.Key("rasterizer", "cull=none")
	}
	return cache.Key("rasterizer", "cull=back")
}

// ResolveRasterizer returns the shared rasterizer state.
func ResolveRasterizer(c *cache.Codex, twoSided bool) (*Rasterizer, error) {
	return cache.Resolve(c, RasterizerID(twoSided), func() (*Rasterizer, error) {
		return &Rasterizer{twoSided: twoSided}, nil
	})
}

// Bind implements Bindable.
func (r *Rasterizer) Bind(ctx gfx.Context) error {
	state := gfx.DefaultRasterizerState()
	if r.twoSided {
		state.CullMode = gputypes.CullModeNone
	}
	ctx.SetRasterizer(state)
	return nil
}

// ID implements Bindable.
func (r *Rasterizer) ID() string { return RasterizerID(r.twoSided) }

// TwoSided reports whether back faces are drawn.
func (r *Rasterizer) TwoSided() bool { return r.twoSided }

// ShadowRasterizer is a back-face culling rasterizer with an adjustable
// depth bias, used by shadow-map passes.
//
// Its bias changes at runtime, so it is owned by one pass and never shared
// through the codex.
type ShadowRasterizer struct {
	state gfx.RasterizerState
}

// NewShadowRasterizer creates a shadow rasterizer.
func NewShadowRasterizer(depthBias int32, slopeBias, clamp float32) *ShadowRasterizer {
	r := &ShadowRasterizer{state: gfx.DefaultRasterizerState()}
	r.SetDepthBias(depthBias, slopeBias, clamp)
	return r
}

// SetDepthBias replaces the bias parameters. It takes effect on the next Bind.
func (r *ShadowRasterizer) SetDepthBias(depthBias int32, slopeBias, clamp float32) {
	r.state.DepthBias = depthBias
	r.state.SlopeBias = slopeBias
	r.state.BiasClamp = clamp
}

// DepthBias returns the constant bias.
func (r *ShadowRasterizer) DepthBias() int32 { return r.state.DepthBias }

// SlopeBias returns the slope-scaled bias.
func (r *ShadowRasterizer) SlopeBias() float32 { return r.state.SlopeBias }

// Clamp returns the bias clamp.
func (r *ShadowRasterizer) Clamp() float32 { return r.state.BiasClamp }

// Bind implements Bindable.
func (r *ShadowRasterizer) Bind(ctx gfx.Context) error {
	ctx.SetRasterizer(r.state)
	return nil
}

// ID implements Bindable. Shadow rasterizers are not shared.
func (r *ShadowRasterizer) ID() string { return "" }
