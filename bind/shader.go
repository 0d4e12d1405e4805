// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bind

import (
	"fmt"

	"github.com/gogpu/rgraph/cache"
	"github.com/gogpu/rgraph/gfx"
)

// Shader binds a compiled shader module to its stage.
type Shader struct {
	name   string
	stage  gfx.Stage
	module gfx.ShaderModule
}

// VertexShaderID returns the codex identity of a vertex shader.
func VertexShaderID(name string) string {
	return cache.Key("vertexshader", name)
}

// PixelShaderID returns the codex identity of a pixel shader.
func PixelShaderID(name string) string {
	return cache.Key("pixelshader", name)
}

func shaderID(stage gfx.Stage, name string) string {
	if stage == gfx.StageVertex {
		return VertexShaderID(name)
	}
	return PixelShaderID(name)
}

// ResolveVertexShader returns the shared vertex shader named name, compiling
// source on first use.
func ResolveVertexShader(c *cache.Codex, dev gfx.Device, name, source string) (*Shader, error) {
	return resolveShader(c, dev, gfx.StageVertex, name, source)
}

// ResolvePixelShader returns the shared pixel shader named name, compiling
// source on first use.
func ResolvePixelShader(c *cache.Codex, dev gfx.Device, name, source string) (*Shader, error) {
	return resolveShader(c, dev, gfx.StagePixel, name, source)
}

func resolveShader(c *cache.Codex, dev gfx.Device, stage gfx.Stage, name, source string) (*Shader, error) {
	return cache.Resolve(c, shaderID(stage, name), func() (*Shader, error) {
		return NewShader(dev, stage, name, source)
	})
}

// NewShader compiles an unshared shader.
func NewShader(dev gfx.Device, stage gfx.Stage, name, source string) (*Shader, error) {
	if err := checkDevice(dev); err != nil {
		return nil, err
	}
	m, err := dev.CreateShaderModule(&gfx.ShaderDescriptor{
		Label:  shaderID(stage, name),
		Stage:  stage,
		Source: source,
	})
	if err != nil {
		return nil, fmt.Errorf("bind: compile %s shader %q: %w", stage, name, err)
	}
	return &Shader{name: name, stage: stage, module: m}, nil
}

// Bind implements Bindable.
func (s *Shader) Bind(ctx gfx.Context) error {
	ctx.SetShader(s.module)
	return nil
}

// ID implements Bindable.
func (s *Shader) ID() string { return shaderID(s.stage, s.name) }

// Name returns the shader name.
func (s *Shader) Name() string { return s.name }

// Stage returns the pipeline stage.
func (s *Shader) Stage() gfx.Stage { return s.stage }

// Destroy releases the shader module.
func (s *Shader) Destroy() { s.module.Destroy() }

// NullPixelShader unbinds the pixel shader, for depth-only passes.
type NullPixelShader struct{}

// NullPixelShaderID is the codex identity of the null pixel shader.
var NullPixelShaderID = PixelShaderID("null")

// ResolveNullPixelShader returns the shared null pixel shader.
func ResolveNullPixelShader(c *cache.Codex) (*NullPixelShader, error) {
	return cache.Resolve(c, NullPixelShaderID, func() (*NullPixelShader, error) {
		return &NullPixelShader{}, nil
	})
}

// Bind implements Bindable.
func (*NullPixelShader) Bind(ctx gfx.Context) error {
	ctx.ClearShader(gfx.StagePixel)
	return nil
}

// ID implements Bindable.
func (*NullPixelShader) ID() string { return NullPixelShaderID }
