// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bind

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rgraph/gfx"
)

// ErrOutputOnly is the panic value of binding an output-only target as a
// shader input.
var ErrOutputOnly = errors.New("bind: output-only target bound as shader input")

// RenderTarget is a color attachment. A shader-input target can also be
// bound as a texture by a later pass; an output-only target cannot.
//
// Targets are owned by the passes that draw into them and are not shared
// through the codex.
type RenderTarget struct {
	texture     gfx.Texture
	slot        uint32
	shaderInput bool
}

// NewRenderTarget creates a BGRA color target readable at pixel slot.
func NewRenderTarget(dev gfx.Device, label string, width, height, slot uint32) (*RenderTarget, error) {
	t, err := createTarget(dev, label, width, height, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		return nil, err
	}
	return &RenderTarget{texture: t, slot: slot, shaderInput: true}, nil
}

// NewOutputOnlyRenderTarget creates a BGRA color target that cannot be
// sampled.
func NewOutputOnlyRenderTarget(dev gfx.Device, label string, width, height uint32) (*RenderTarget, error) {
	t, err := createTarget(dev, label, width, height, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		return nil, err
	}
	return &RenderTarget{texture: t}, nil
}

// WrapRenderTarget makes an output-only target of an existing texture,
// such as a swapchain image.
func WrapRenderTarget(t gfx.Texture) *RenderTarget {
	return &RenderTarget{texture: t}
}

func createTarget(dev gfx.Device, label string, width, height uint32, format gputypes.TextureFormat) (gfx.Texture, error) {
	if err := checkDevice(dev); err != nil {
		return nil, err
	}
	t, err := dev.CreateTexture(&gfx.TextureDescriptor{
		Label:        label,
		Width:        width,
		Height:       height,
		Format:       format,
		RenderTarget: true,
	})
	if err != nil {
		return nil, fmt.Errorf("bind: create target %q: %w", label, err)
	}
	return t, nil
}

// Bind implements Bindable by binding the target as a pixel-stage texture.
// It panics with ErrOutputOnly for output-only targets.
func (r *RenderTarget) Bind(ctx gfx.Context) error {
	if !r.shaderInput {
		panic(ErrOutputOnly)
	}
	ctx.SetTexture(r.slot, r.texture)
	return nil
}

// ID implements Bindable. Targets are not shared.
func (r *RenderTarget) ID() string { return "" }

// BindAsTarget selects r as the color attachment with an optional depth
// attachment.
func (r *RenderTarget) BindAsTarget(ctx gfx.Context, depth *DepthStencil) {
	var d gfx.Texture
	if depth != nil {
		d = depth.texture
	}
	ctx.SetRenderTarget(r.texture, d)
}

// Clear clears the target to rgba.
func (r *RenderTarget) Clear(ctx gfx.Context, rgba [4]float32) {
	ctx.ClearTarget(r.texture, rgba)
}

// ShaderInput reports whether the target can be bound as a texture.
func (r *RenderTarget) ShaderInput() bool { return r.shaderInput }

// Texture returns the underlying texture.
func (r *RenderTarget) Texture() gfx.Texture { return r.texture }

// Size returns the target dimensions.
func (r *RenderTarget) Size() (width, height uint32) {
	return r.texture.Width(), r.texture.Height()
}

// Destroy releases the texture.
func (r *RenderTarget) Destroy() { r.texture.Destroy() }

// DepthStencil is a depth-stencil attachment, optionally readable as a
// shader input (shadow maps).
type DepthStencil struct {
	texture     gfx.Texture
	slot        uint32
	shaderInput bool
}

// NewDepthStencil creates a depth-stencil target. A shader-input target is
// bound as a texture at slot by Bind.
func NewDepthStencil(dev gfx.Device, label string, width, height uint32, shaderInput bool, slot uint32) (*DepthStencil, error) {
	t, err := createTarget(dev, label, width, height, gputypes.TextureFormatDepth24PlusStencil8)
	if err != nil {
		return nil, err
	}
	return &DepthStencil{texture: t, slot: slot, shaderInput: shaderInput}, nil
}

// Bind implements Bindable by binding the depth buffer as a texture.
// It panics with ErrOutputOnly unless the target is a shader input.
func (d *DepthStencil) Bind(ctx gfx.Context) error {
	if !d.shaderInput {
		panic(ErrOutputOnly)
	}
	ctx.SetTexture(d.slot, d.texture)
	return nil
}

// ID implements Bindable. Targets are not shared.
func (d *DepthStencil) ID() string { return "" }

// BindAsTarget selects d as the depth attachment with no color attachment.
func (d *DepthStencil) BindAsTarget(ctx gfx.Context) {
	ctx.SetRenderTarget(nil, d.texture)
}

// Clear resets depth to 1 and stencil to 0.
func (d *DepthStencil) Clear(ctx gfx.Context) {
	ctx.ClearTarget(d.texture, [4]float32{1, 0, 0, 0})
}

// ShaderInput reports whether the target can be bound as a texture.
func (d *DepthStencil) ShaderInput() bool { return d.shaderInput }

// Texture returns the underlying texture.
func (d *DepthStencil) Texture() gfx.Texture { return d.texture }

// Destroy releases the texture.
func (d *DepthStencil) Destroy() { d.texture.Destroy() }
