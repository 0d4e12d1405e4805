// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package material builds the standard techniques drawn by the default
// render graph: Phong shading, shadow-map depth rendering and a stencil
// outline. Every bindable is resolved through the codex, so materials with
// equal options share shaders, samplers, layouts and state objects.
package material

import (
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rgraph/bind"
	"github.com/gogpu/rgraph/cache"
	"github.com/gogpu/rgraph/gfx"
	"github.com/gogpu/rgraph/rgph"
)

//go:embed shaders/phong.wgsl
var shaderPhong string

//go:embed shaders/phong_tex.wgsl
var shaderPhongTex string

//go:embed shaders/shadow.wgsl
var shaderShadow string

//go:embed shaders/solid.wgsl
var shaderSolid string

// Technique and step names. Step names are the queue passes they target.
const (
	PhongTechnique   = "phong"
	ShadowTechnique  = "shadow"
	OutlineTechnique = "outline"

	PhongPass       = "lambertian"
	ShadowPass      = "shadowMap"
	OutlineMaskPass = "outlineMask"
	OutlineDrawPass = "outlineDraw"
)

// Constant buffer slots.
const (
	TransformSlot = 0 // vertex stage
	LightSlot     = 0 // pixel stage
	MaterialSlot  = 1 // pixel stage
)

// OutlineScale is the model scale of the outline draw step.
const OutlineScale = 1.04

// ErrInvalidOptions is returned for options that cannot produce a material.
var ErrInvalidOptions = errors.New("material: invalid options")

// Options describes a Phong material.
type Options struct {
	// Name tags the per-material constant buffer. Materials with the same
	// non-empty name share constants; an empty name gives a private buffer.
	Name string

	// DiffuseMap is an optional image file. Without it Color is used.
	DiffuseMap string

	Color         mgl32.Vec3
	SpecularColor mgl32.Vec3
	SpecularPower float32

	// TwoSided disables back-face culling. Textures with alpha are always
	// rendered two-sided.
	TwoSided bool
}

// DefaultOptions returns a light grey material with a soft highlight.
func DefaultOptions() Options {
	return Options{
		Color:         mgl32.Vec3{0.8, 0.8, 0.8},
		SpecularColor: mgl32.Vec3{0.2, 0.2, 0.2},
		SpecularPower: 30,
	}
}

// Layout returns the vertex layout geometry must provide for opts.
func Layout(opts Options) bind.VertexLayout {
	l := bind.NewVertexLayout(bind.Position3D, bind.Normal)
	if opts.DiffuseMap != "" {
		l = l.Append(bind.Texture2D)
	}
	return l
}

// variant names the shader pair for a feature set.
func variant(opts Options) (name, source string) {
	if opts.DiffuseMap != "" {
		return "phong_dif", shaderPhongTex
	}
	return "phong", shaderPhong
}

// constants packs the Material block of the phong shaders.
func (o Options) constants() []byte {
	return packVec4s(
		mgl32.Vec4{o.Color[0], o.Color[1], o.Color[2], 1},
		mgl32.Vec4{o.SpecularColor[0], o.SpecularColor[1], o.SpecularColor[2], o.SpecularPower},
	)
}

// Phong returns the shading technique on the main channel. It has one
// step targeting the lambertian pass. The shaders read the shadow map at
// bind.ShadowSlot and the light view-projection at vertex slot
// bind.ShadowTransformSlot, which the lambertian pass binds.
func Phong(c *cache.Codex, dev gfx.Device, opts Options) (*rgph.Technique, error) {
	if opts.SpecularPower < 0 {
		return nil, fmt.Errorf("%w: negative specular power %v", ErrInvalidOptions, opts.SpecularPower)
	}
	layout := Layout(opts)
	step := rgph.NewStep(PhongPass)
	twoSided := opts.TwoSided

	if opts.DiffuseMap != "" {
		tex, err := bind.ResolveTexture(c, dev, opts.DiffuseMap, 0)
		if err != nil {
			return nil, err
		}
		twoSided = twoSided || tex.HasAlpha()
		smp, err := bind.ResolveSampler(c, dev, bind.SamplerDefault)
		if err != nil {
			return nil, err
		}
		step.AddBindable(tex)
		step.AddBindable(smp)
	}

	name, source := variant(opts)
	vs, err := bind.ResolveVertexShader(c, dev, name, source)
	if err != nil {
		return nil, err
	}
	ps, err := bind.ResolvePixelShader(c, dev, name, source)
	if err != nil {
		return nil, err
	}
	il, err := bind.ResolveInputLayout(c, layout)
	if err != nil {
		return nil, err
	}
	light, err := ResolveLight(c, dev)
	if err != nil {
		return nil, err
	}
	mat, err := materialBuffer(c, dev, opts)
	if err != nil {
		return nil, err
	}
	tf, err := bind.NewTransformBuffer(c, dev, TransformSlot)
	if err != nil {
		return nil, err
	}
	rs, err := bind.ResolveRasterizer(c, twoSided)
	if err != nil {
		return nil, err
	}
	bl, err := bind.ResolveBlender(c, false, nil)
	if err != nil {
		return nil, err
	}
	for _, b := range []bind.Bindable{vs, ps, il, light, mat, tf, rs, bl} {
		step.AddBindable(b)
	}
	return rgph.NewTechnique(PhongTechnique, rgph.ChannelMain, step), nil
}

func materialBuffer(c *cache.Codex, dev gfx.Device, opts Options) (*bind.ConstantBuffer, error) {
	if opts.Name == "" {
		return bind.NewConstantBuffer(dev, gfx.StagePixel, MaterialSlot, opts.constants())
	}
	return bind.ResolveConstantBuffer(c, dev, gfx.StagePixel, MaterialSlot, "material:"+opts.Name, opts.constants())
}

// ShadowMap returns the depth-only technique on the shadow channel for
// geometry with the given layout.
func ShadowMap(c *cache.Codex, dev gfx.Device, layout bind.VertexLayout) (*rgph.Technique, error) {
	vs, err := bind.ResolveVertexShader(c, dev, "shadow", shaderShadow)
	if err != nil {
		return nil, err
	}
	il, err := bind.ResolveInputLayout(c, layout)
	if err != nil {
		return nil, err
	}
	ps, err := bind.ResolveNullPixelShader(c)
	if err != nil {
		return nil, err
	}
	tf, err := bind.NewTransformBuffer(c, dev, TransformSlot)
	if err != nil {
		return nil, err
	}
	step := rgph.NewStep(ShadowPass, vs, il, ps, tf)
	return rgph.NewTechnique(ShadowTechnique, rgph.ChannelShadow, step), nil
}

// Outline returns the stencil outline technique on the main channel. It is
// inactive until enabled with SetActive. The mask step writes the silhouette
// into the stencil buffer; the draw step renders a slightly enlarged copy in
// color where the mask is not set.
func Outline(c *cache.Codex, dev gfx.Device, layout bind.VertexLayout, color mgl32.Vec4) (*rgph.Technique, error) {
	vs, err := bind.ResolveVertexShader(c, dev, "solid", shaderSolid)
	if err != nil {
		return nil, err
	}
	il, err := bind.ResolveInputLayout(c, layout)
	if err != nil {
		return nil, err
	}
	mask, err := bind.NewTransformBuffer(c, dev, TransformSlot)
	if err != nil {
		return nil, err
	}
	null, err := bind.ResolveNullPixelShader(c)
	if err != nil {
		return nil, err
	}
	maskStep := rgph.NewStep(OutlineMaskPass, vs, il, null, mask)

	ps, err := bind.ResolvePixelShader(c, dev, "solid", shaderSolid)
	if err != nil {
		return nil, err
	}
	cb, err := bind.NewConstantBuffer(dev, gfx.StagePixel, MaterialSlot, packVec4s(color))
	if err != nil {
		return nil, err
	}
	scaled, err := bind.NewScaledTransformBuffer(c, dev, TransformSlot, OutlineScale)
	if err != nil {
		return nil, err
	}
	drawStep := rgph.NewStep(OutlineDrawPass, vs, ps, il, cb, scaled)

	t := rgph.NewTechnique(OutlineTechnique, rgph.ChannelMain, maskStep, drawStep)
	t.SetActive(false)
	return t, nil
}

// DefaultOutlineColor is the outline color used by Standard.
var DefaultOutlineColor = mgl32.Vec4{1, 0.4, 0.4, 1}

// Standard returns the phong, shadow and outline techniques for opts.
func Standard(c *cache.Codex, dev gfx.Device, opts Options) ([]*rgph.Technique, error) {
	phong, err := Phong(c, dev, opts)
	if err != nil {
		return nil, fmt.Errorf("material %q: %w", opts.Name, err)
	}
	layout := Layout(opts)
	shadow, err := ShadowMap(c, dev, layout)
	if err != nil {
		return nil, fmt.Errorf("material %q: %w", opts.Name, err)
	}
	outline, err := Outline(c, dev, layout, DefaultOutlineColor)
	if err != nil {
		return nil, fmt.Errorf("material %q: %w", opts.Name, err)
	}
	return []*rgph.Technique{phong, shadow, outline}, nil
}

func packVec4s(vs ...mgl32.Vec4) []byte {
	buf := make([]byte, 0, 16*len(vs))
	for _, v := range vs {
		for _, f := range v {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
		}
	}
	return buf
}
