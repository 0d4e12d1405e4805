// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rgph

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rgraph/bind"
	"github.com/gogpu/rgraph/cache"
	"github.com/gogpu/rgraph/gfx"
)

// fullscreenTag names the shared quad geometry in the codex.
const fullscreenTag = "$fullscreen"

// fullscreenIndexCount is the number of indices of the quad.
const fullscreenIndexCount = 6

const fullscreenVS = `
struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@vertex
fn vs_main(@location(0) pos: vec2<f32>) -> VertexOutput {
    var out: VertexOutput;
    out.position = vec4<f32>(pos, 0.0, 1.0);
    out.uv = vec2<f32>((pos.x + 1.0) * 0.5, (1.0 - pos.y) * 0.5);
    return out;
}
`

// FullscreenPass draws one screen-covering quad with its pass-level
// bindables, typically a pixel shader reading an earlier pass's target.
type FullscreenPass struct {
	passBase
	geometry []bind.Bindable
}

// NewFullscreenPass creates a fullscreen pass. The quad geometry and
// vertex shader are resolved through c and shared by all fullscreen passes.
func NewFullscreenPass(c *cache.Codex, dev gfx.Device, name string, binds ...bind.Bindable) (*FullscreenPass, error) {
	layout := bind.NewVertexLayout(bind.Position2D)
	vb, err := bind.ResolveVertexBuffer(c, dev, fullscreenTag, layout, []float32{
		-1, 1,
		1, 1,
		-1, -1,
		1, -1,
	})
	if err != nil {
		return nil, fmt.Errorf("rgph: fullscreen pass %q: %w", name, err)
	}
	ib, err := bind.ResolveIndexBuffer(c, dev, fullscreenTag, []uint16{0, 1, 2, 1, 3, 2})
	if err != nil {
		return nil, fmt.Errorf("rgph: fullscreen pass %q: %w", name, err)
	}
	il, err := bind.ResolveInputLayout(c, layout)
	if err != nil {
		return nil, fmt.Errorf("rgph: fullscreen pass %q: %w", name, err)
	}
	topo, err := bind.ResolveTopology(c, gputypes.PrimitiveTopologyTriangleList)
	if err != nil {
		return nil, fmt.Errorf("rgph: fullscreen pass %q: %w", name, err)
	}
	vs, err := bind.ResolveVertexShader(c, dev, "fullscreen", fullscreenVS)
	if err != nil {
		return nil, fmt.Errorf("rgph: fullscreen pass %q: %w", name, err)
	}
	return &FullscreenPass{
		passBase: passBase{
			name:  name,
			binds: append([]bind.Bindable(nil), binds...),
		},
		geometry: []bind.Bindable{vb, ib, il, topo, vs},
	}, nil
}

// Reset implements Pass. Fullscreen passes hold no per-frame state.
func (p *FullscreenPass) Reset() {}

// Execute implements Pass.
func (p *FullscreenPass) Execute(ctx gfx.Context) error {
	ctx.BeginPass(p.name)
	defer ctx.EndPass()

	for _, b := range p.geometry {
		if err := b.Bind(ctx); err != nil {
			return fmt.Errorf("rgph: pass %q: %w", p.name, err)
		}
	}
	if err := p.bindAll(ctx); err != nil {
		return err
	}
	if err := ctx.DrawIndexed(fullscreenIndexCount); err != nil {
		return fmt.Errorf("rgph: pass %q: draw: %w", p.name, err)
	}
	return nil
}
