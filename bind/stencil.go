// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bind

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rgraph/cache"
	"github.com/gogpu/rgraph/gfx"
)

// StencilMode selects a depth-stencil configuration.
type StencilMode string

const (
	// StencilOff is the default depth test with no stencil.
	StencilOff StencilMode = "off"

	// StencilMask draws only where the stencil buffer was not written.
	StencilMask StencilMode = "mask"

	// StencilWrite writes the reference value wherever geometry is drawn.
	StencilWrite StencilMode = "write"

	// StencilDepthOff disables the depth test and depth writes.
	StencilDepthOff StencilMode = "depth-off"

	// StencilDepthSkybox tests less-or-equal without writing depth.
	StencilDepthSkybox StencilMode = "depth-skybox"

	// StencilDepthReversed tests greater-than, for reversed-z rendering.
	StencilDepthReversed StencilMode = "depth-reversed"
)

// StencilModes lists every stencil mode.
func StencilModes() []StencilMode {
	return []StencilMode{
		StencilOff, StencilMask, StencilWrite,
		StencilDepthOff, StencilDepthSkybox, StencilDepthReversed,
	}
}

// Stencil binds a depth-stencil state.
type Stencil struct {
	mode  StencilMode
	state gfx.DepthStencilState
}

// StencilID returns the codex identity of a stencil state.
func StencilID(mode StencilMode) string {
	return cache.Key("stencil", mode)
}

// ResolveStencil returns the shared stencil state for mode.
func ResolveStencil(c *cache.Codex, mode StencilMode) (*Stencil, error) {
	return cache.Resolve(c, StencilID(mode), func() (*Stencil, error) {
		return NewStencil(mode)
	})
}

// NewStencil creates an unshared stencil state. Prefer ResolveStencil.
func NewStencil(mode StencilMode) (*Stencil, error) {
	s := gfx.DefaultDepthStencilState()
	switch mode {
	case StencilOff:
	case StencilWrite:
		s.DepthTest = false
		s.DepthWrite = false
		s.StencilTest = true
		s.StencilCompare = gputypes.CompareFunctionAlways
		s.StencilPassOp = gfx.StencilReplace
	case StencilMask:
		s.DepthTest = false
		s.DepthWrite = false
		s.StencilTest = true
		s.StencilCompare = gputypes.CompareFunctionNotEqual
		s.StencilPassOp = gfx.StencilKeep
	case StencilDepthOff:
		s.DepthTest = false
		s.DepthWrite = false
	case StencilDepthSkybox:
		s.DepthCompare = gputypes.CompareFunctionLessEqual
		s.DepthWrite = false
	case StencilDepthReversed:
		s.DepthCompare = gputypes.CompareFunctionGreater
	default:
		return nil, fmt.Errorf("bind: unknown stencil mode %q", mode)
	}
	return &Stencil{mode: mode, state: s}, nil
}

// Bind implements Bindable.
func (s *Stencil) Bind(ctx gfx.Context) error {
	ctx.SetDepthStencil(s.state)
	return nil
}

// ID implements Bindable.
func (s *Stencil) ID() string { return StencilID(s.mode) }

// Mode returns the stencil mode.
func (s *Stencil) Mode() StencilMode { return s.mode }

// State returns the depth-stencil state applied by Bind.
func (s *Stencil) State() gfx.DepthStencilState { return s.state }
