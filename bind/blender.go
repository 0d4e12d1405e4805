// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bind

import (
	"strconv"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rgraph/cache"
	"github.com/gogpu/rgraph/gfx"
)

// Blender enables or disables color blending.
//
// An enabled blender without a factor blends by source alpha. With a factor,
// source and destination are mixed by the constant factor instead.
type Blender struct {
	enabled bool
	factor  *float32
	state   *gputypes.BlendState
}

// BlenderID returns the codex identity of a blender. factor is ignored when
// blending is disabled.
func BlenderID(enabled bool, factor *float32) string {
	if !enabled {
		return cache.Key("blender", "off")
	}
	if factor == nil {
		return cache.Key("blender", "on")
	}
	return cache.Key("blender", "on", strconv.FormatFloat(float64(*factor), 'g', -1, 32))
}

// ResolveBlender returns the shared blender.
func ResolveBlender(c *cache.Codex, enabled bool, factor *float32) (*Blender, error) {
	return cache.Resolve(c, BlenderID(enabled, factor), func() (*Blender, error) {
		return NewBlender(enabled, factor), nil
	})
}

// NewBlender creates an unshared blender. Prefer ResolveBlender.
func NewBlender(enabled bool, factor *float32) *Blender {
	b := &Blender{enabled: enabled}
	if !enabled {
		return b
	}
	if factor == nil {
		b.state = &gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorSrcAlpha,
				DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorOne,
				DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
				Operation: gputypes.BlendOperationAdd,
			},
		}
		return b
	}
	f := *factor
	b.factor = &f
	constant := gputypes.BlendComponent{
		SrcFactor: gputypes.BlendFactorConstant,
		DstFactor: gputypes.BlendFactorOneMinusConstant,
		Operation: gputypes.BlendOperationAdd,
	}
	b.state = &gputypes.BlendState{Color: constant, Alpha: constant}
	return b
}

// Bind implements Bindable.
func (b *Blender) Bind(ctx gfx.Context) error {
	ctx.SetBlend(b.state)
	if b.factor != nil {
		f := *b.factor
		ctx.SetBlendConstant([4]float32{f, f, f, f})
	}
	return nil
}

// ID implements Bindable.
func (b *Blender) ID() string { return BlenderID(b.enabled, b.factor) }

// Enabled reports whether blending is on.
func (b *Blender) Enabled() bool { return b.enabled }

// Factor returns the constant blend factor and whether one is set.
func (b *Blender) Factor() (float32, bool) {
	if b.factor == nil {
		return 0, false
	}
	return *b.factor, true
}
