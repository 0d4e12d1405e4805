// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graphconf

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/rgraph/bind"
	"github.com/gogpu/rgraph/rgph"
)

// Reserved target names bound to the attachments in Env.
const (
	Backbuffer  = "backbuffer"
	DepthBuffer = "depthbuffer"
)

// Cameras referenced by Default.
const (
	MainCamera   = "main"
	ShadowCamera = "shadow"
)

// Target kinds.
const (
	TargetColor = "color"
	TargetDepth = "depth"
)

// Config is a render graph description.
type Config struct {
	Targets []TargetConfig `yaml:"targets,omitempty"`
	Passes  []PassConfig   `yaml:"passes"`
}

// TargetConfig declares an offscreen render target.
type TargetConfig struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`

	// ShaderInput makes the target readable by later passes.
	ShaderInput bool `yaml:"shaderInput,omitempty"`

	// Slot is the texture slot used when the target is read.
	Slot uint32 `yaml:"slot,omitempty"`
}

// PassConfig declares one pass. Which fields apply depends on Kind.
type PassConfig struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"`

	// Target and Depth name the color and depth attachments.
	Target string `yaml:"target,omitempty"`
	Depth  string `yaml:"depth,omitempty"`

	// Color is the clear color of a clear pass.
	Color []float32 `yaml:"color,omitempty"`

	// Stencil is a bind.StencilMode applied to every job of a queue pass.
	Stencil string `yaml:"stencil,omitempty"`

	// Rasterizer overrides the depth bias of a queue pass.
	Rasterizer *RasterizerConfig `yaml:"rasterizer,omitempty"`

	// Blend enables alpha blending for a queue pass.
	Blend bool `yaml:"blend,omitempty"`

	// Camera names the camera a queue pass renders from. Cameras are
	// created on first reference unless supplied in Env.
	Camera string `yaml:"camera,omitempty"`

	// Shader is the WGSL file of a fullscreen pass's pixel shader.
	Shader string `yaml:"shader,omitempty"`

	// Inputs name targets sampled by the pass. A queue pass that reads a
	// depth target also binds the shadow comparison sampler.
	Inputs []string `yaml:"inputs,omitempty"`

	// ShadowCamera names the camera whose view-projection a queue pass
	// uploads to vertex slot bind.ShadowTransformSlot for shadow map
	// lookups.
	ShadowCamera string `yaml:"shadowCamera,omitempty"`
}

// RasterizerConfig is a depth bias for shadow rendering.
type RasterizerConfig struct {
	DepthBias int32   `yaml:"depthBias"`
	SlopeBias float32 `yaml:"slopeBias"`
	Clamp     float32 `yaml:"clamp"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("graphconf: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("graphconf: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a YAML configuration against the default
// registry. Unknown fields are errors.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Marshal encodes cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks c against the default registry.
func (c *Config) Validate() error {
	return c.ValidateWith(defaultRegistry)
}

// ValidateWith checks c against the pass kinds of r. All problems are
// reported, joined into one error.
func (c *Config) ValidateWith(r *Registry) error {
	var errs []error
	targets := map[string]TargetConfig{
		Backbuffer:  {Name: Backbuffer, Kind: TargetColor},
		DepthBuffer: {Name: DepthBuffer, Kind: TargetDepth},
	}

	for i, t := range c.Targets {
		switch {
		case t.Name == "":
			errs = append(errs, fmt.Errorf("target %d: %w", i, ErrEmptyName))
			continue
		case targets[t.Name].Name != "":
			errs = append(errs, &DuplicateTargetError{Name: t.Name})
			continue
		case t.Kind != TargetColor && t.Kind != TargetDepth:
			errs = append(errs, fmt.Errorf("target %q: %w %q", t.Name, ErrTargetKind, t.Kind))
		case t.Width == 0 || t.Height == 0:
			errs = append(errs, fmt.Errorf("target %q: %w", t.Name, ErrTargetSize))
		}
		targets[t.Name] = t
	}

	if len(c.Passes) == 0 {
		errs = append(errs, ErrNoPasses)
	}
	seen := make(map[string]bool, len(c.Passes))
	for i, p := range c.Passes {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("pass %d: %w", i, rgph.ErrEmptyPassName))
			continue
		}
		if seen[p.Name] {
			errs = append(errs, &rgph.DuplicatePassError{Name: p.Name})
		}
		seen[p.Name] = true
		if !r.Has(p.Kind) {
			errs = append(errs, &UnknownKindError{Pass: p.Name, Kind: p.Kind})
		}
		errs = append(errs, p.validate(targets)...)
	}
	return errors.Join(errs...)
}

func (p PassConfig) validate(targets map[string]TargetConfig) []error {
	var errs []error
	ref := func(name, kind string) {
		if name == "" {
			return
		}
		if got, ok := targets[name]; !ok || got.Kind != kind {
			errs = append(errs, &UnknownTargetError{Pass: p.Name, Target: name, Kind: kind})
		}
	}
	ref(p.Target, TargetColor)
	ref(p.Depth, TargetDepth)
	for _, in := range p.Inputs {
		t, ok := targets[in]
		switch {
		case !ok:
			errs = append(errs, &UnknownTargetError{Pass: p.Name, Target: in})
		case !t.ShaderInput:
			errs = append(errs, fmt.Errorf("pass %q: target %q: %w", p.Name, in, ErrNotShaderInput))
		}
	}
	if len(p.Color) != 0 && len(p.Color) != 4 {
		errs = append(errs, fmt.Errorf("pass %q: %w", p.Name, ErrClearColor))
	}
	if p.Stencil != "" && !validStencil(p.Stencil) {
		errs = append(errs, fmt.Errorf("pass %q: %w %q", p.Name, ErrStencilMode, p.Stencil))
	}
	return errs
}

func validStencil(s string) bool {
	for _, m := range bind.StencilModes() {
		if string(m) == s {
			return true
		}
	}
	return false
}

// Default returns the configuration of the standard graph: a clear pass,
// the shadow map pass into its own depth target, the lambertian pass that
// samples it and the two outline passes.
func Default() *Config {
	return &Config{
		Targets: []TargetConfig{
			{Name: "shadow", Kind: TargetDepth, Width: 1024, Height: 1024, ShaderInput: true, Slot: bind.ShadowSlot},
		},
		Passes: []PassConfig{
			{Name: "clear", Kind: KindClear, Target: Backbuffer, Depth: DepthBuffer, Color: []float32{0, 0, 0, 1}},
			{Name: "shadowClear", Kind: KindClear, Depth: "shadow"},
			{
				Name: "shadowMap", Kind: KindQueue, Depth: "shadow", Camera: ShadowCamera,
				Rasterizer: &RasterizerConfig{DepthBias: 50, SlopeBias: 2, Clamp: 0.1},
			},
			{
				Name: "lambertian", Kind: KindQueue, Target: Backbuffer, Depth: DepthBuffer, Camera: MainCamera,
				Inputs: []string{"shadow"}, ShadowCamera: ShadowCamera,
			},
			{Name: "outlineMask", Kind: KindQueue, Target: Backbuffer, Depth: DepthBuffer, Stencil: string(bind.StencilWrite)},
			{Name: "outlineDraw", Kind: KindQueue, Target: Backbuffer, Depth: DepthBuffer, Stencil: string(bind.StencilMask)},
		},
	}
}
