// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bind

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rgraph/cache"
	"github.com/gogpu/rgraph/gfx"
)

// SamplerMode selects a sampler configuration.
type SamplerMode string

const (
	// SamplerDefault is trilinear anisotropic filtering with wrapping.
	SamplerDefault SamplerMode = "default"

	// SamplerPoint is nearest-neighbor filtering with wrapping.
	SamplerPoint SamplerMode = "point"

	// SamplerClamp is bilinear filtering clamped to the edge.
	SamplerClamp SamplerMode = "clamp"

	// SamplerShadow is a less-equal comparison sampler for depth targets.
	// It binds to ShadowSlot.
	SamplerShadow SamplerMode = "shadow"
)

const (
	// ShadowSlot is the texture and sampler slot of shadow map lookups.
	ShadowSlot = 3

	// ShadowTransformSlot is the vertex constant slot of the light
	// view-projection used for shadow map lookups.
	ShadowTransformSlot = 1
)

// Sampler binds a texture sampler. Comparison samplers bind to ShadowSlot,
// all others to slot 0.
type Sampler struct {
	mode    SamplerMode
	slot    uint32
	sampler gfx.Sampler
}

// SamplerID returns the codex identity of a sampler.
func SamplerID(mode SamplerMode) string {
	return cache.Key("sampler", mode)
}

// ResolveSampler returns the shared sampler for mode.
func ResolveSampler(c *cache.Codex, dev gfx.Device, mode SamplerMode) (*Sampler, error) {
	return cache.Resolve(c, SamplerID(mode), func() (*Sampler, error) {
		return NewSampler(dev, mode)
	})
}

// NewSampler creates an unshared sampler. Prefer ResolveSampler.
func NewSampler(dev gfx.Device, mode SamplerMode) (*Sampler, error) {
	if err := checkDevice(dev); err != nil {
		return nil, err
	}
	desc, err := samplerDescriptor(mode)
	if err != nil {
		return nil, err
	}
	s, err := dev.CreateSampler(desc)
	if err != nil {
		return nil, fmt.Errorf("bind: create sampler %q: %w", mode, err)
	}
	var slot uint32
	if desc.Compare != gputypes.CompareFunctionUndefined {
		slot = ShadowSlot
	}
	return &Sampler{mode: mode, slot: slot, sampler: s}, nil
}

func samplerDescriptor(mode SamplerMode) (*gfx.SamplerDescriptor, error) {
	desc := &gfx.SamplerDescriptor{Label: SamplerID(mode)}
	switch mode {
	case SamplerDefault:
		desc.MagFilter = gputypes.FilterModeLinear
		desc.MinFilter = gputypes.FilterModeLinear
		desc.MipmapFilter = gputypes.FilterModeLinear
		desc.AddressMode = gputypes.AddressModeRepeat
		desc.MaxAniso = 16
	case SamplerPoint:
		desc.MagFilter = gputypes.FilterModeNearest
		desc.MinFilter = gputypes.FilterModeNearest
		desc.MipmapFilter = gputypes.FilterModeNearest
		desc.AddressMode = gputypes.AddressModeRepeat
	case SamplerClamp:
		desc.MagFilter = gputypes.FilterModeLinear
		desc.MinFilter = gputypes.FilterModeLinear
		desc.MipmapFilter = gputypes.FilterModeNearest
		desc.AddressMode = gputypes.AddressModeClampToEdge
	case SamplerShadow:
		desc.MagFilter = gputypes.FilterModeLinear
		desc.MinFilter = gputypes.FilterModeLinear
		desc.MipmapFilter = gputypes.FilterModeNearest
		desc.AddressMode = gputypes.AddressModeClampToEdge
		desc.Compare = gputypes.CompareFunctionLessEqual
	default:
		return nil, fmt.Errorf("bind: unknown sampler mode %q", mode)
	}
	return desc, nil
}

// Bind implements Bindable.
func (s *Sampler) Bind(ctx gfx.Context) error {
	ctx.SetSampler(s.slot, s.sampler)
	return nil
}

// ID implements Bindable.
func (s *Sampler) ID() string { return SamplerID(s.mode) }

// Mode returns the sampler configuration.
func (s *Sampler) Mode() SamplerMode { return s.mode }

// Slot returns the sampler slot.
func (s *Sampler) Slot() uint32 { return s.slot }

// Destroy releases the device sampler.
func (s *Sampler) Destroy() { s.sampler.Destroy() }
