// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graphconf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rgraph"
	"github.com/gogpu/rgraph/bind"
	"github.com/gogpu/rgraph/cache"
	"github.com/gogpu/rgraph/gfx"
	"github.com/gogpu/rgraph/rgph"
)

// Env is what a graph is built against.
type Env struct {
	Device gfx.Device
	Cache  *cache.Codex

	// Backbuffer and Depth are the attachments named Backbuffer and
	// DepthBuffer. Either may be nil, in which case passes using it keep
	// the context's current target.
	Backbuffer *bind.RenderTarget
	Depth      *bind.DepthStencil

	// Cameras supplies named cameras. Missing names are created with
	// identity matrices and can be reached through Graph.Camera.
	Cameras map[string]*bind.Camera

	// Dir resolves relative shader paths. Empty means the working directory.
	Dir string

	// Registry defaults to the package registry.
	Registry *Registry
}

// Resources gives pass factories access to targets and shared resources.
type Resources struct {
	Device gfx.Device
	Cache  *cache.Codex

	dir     string
	colors  map[string]*bind.RenderTarget
	depths  map[string]*bind.DepthStencil
	cameras map[string]*bind.Camera
}

// Camera returns the camera named name, creating it if needed.
func (r *Resources) Camera(name string) *bind.Camera {
	if c, ok := r.cameras[name]; ok {
		return c
	}
	c := bind.NewCamera(mgl32.Ident4(), mgl32.Ident4())
	r.cameras[name] = c
	return c
}

// Color returns the color target named name, or nil.
func (r *Resources) Color(name string) *bind.RenderTarget { return r.colors[name] }

// Depth returns the depth target named name, or nil.
func (r *Resources) Depth(name string) *bind.DepthStencil { return r.depths[name] }

// Input returns the named target as a bindable shader input.
func (r *Resources) Input(name string) (bind.Bindable, bool) {
	if t, ok := r.colors[name]; ok && t != nil {
		return t, true
	}
	if t, ok := r.depths[name]; ok && t != nil {
		return t, true
	}
	return nil, false
}

// ReadFile reads a file relative to the configuration directory.
func (r *Resources) ReadFile(name string) ([]byte, error) {
	if r.dir != "" && !filepath.IsAbs(name) {
		name = filepath.Join(r.dir, name)
	}
	return os.ReadFile(name)
}

// Graph is a built render graph together with the targets it created.
type Graph struct {
	*rgph.Graph

	res *Resources
}

// Color returns the color target named name, or nil.
func (g *Graph) Color(name string) *bind.RenderTarget { return g.res.Color(name) }

// Depth returns the depth target named name, or nil.
func (g *Graph) Depth(name string) *bind.DepthStencil { return g.res.Depth(name) }

// Camera returns the camera named name, or nil if no pass uses it.
func (g *Graph) Camera(name string) *bind.Camera { return g.res.cameras[name] }

// Build validates cfg, creates its targets and passes, and assembles them
// into a graph in configuration order.
func Build(cfg *Config, env Env) (*Graph, error) {
	reg := env.Registry
	if reg == nil {
		reg = defaultRegistry
	}
	if env.Cache == nil {
		env.Cache = cache.New()
	}
	if err := cfg.ValidateWith(reg); err != nil {
		return nil, err
	}

	res := &Resources{
		Device:  env.Device,
		Cache:   env.Cache,
		dir:     env.Dir,
		colors:  map[string]*bind.RenderTarget{Backbuffer: env.Backbuffer},
		depths:  map[string]*bind.DepthStencil{DepthBuffer: env.Depth},
		cameras: make(map[string]*bind.Camera, len(env.Cameras)),
	}
	for name, c := range env.Cameras {
		res.cameras[name] = c
	}
	for _, t := range cfg.Targets {
		if err := res.create(t); err != nil {
			return nil, err
		}
	}

	passes := make([]rgph.Pass, 0, len(cfg.Passes))
	for _, pc := range cfg.Passes {
		f, _ := reg.factory(pc.Kind)
		p, err := f(pc, res)
		if err != nil {
			return nil, fmt.Errorf("graphconf: pass %q: %w", pc.Name, err)
		}
		passes = append(passes, p)
	}

	g, err := rgph.NewGraph(passes...)
	if err != nil {
		return nil, err
	}
	rgraph.Logger().Info("graphconf: graph built",
		"passes", len(passes),
		"targets", len(cfg.Targets))
	return &Graph{Graph: g, res: res}, nil
}

func (r *Resources) create(t TargetConfig) error {
	if t.Kind == TargetDepth {
		d, err := bind.NewDepthStencil(r.Device, t.Name, t.Width, t.Height, t.ShaderInput, t.Slot)
		if err != nil {
			return fmt.Errorf("graphconf: target %q: %w", t.Name, err)
		}
		r.depths[t.Name] = d
		return nil
	}
	var (
		rt  *bind.RenderTarget
		err error
	)
	if t.ShaderInput {
		rt, err = bind.NewRenderTarget(r.Device, t.Name, t.Width, t.Height, t.Slot)
	} else {
		rt, err = bind.NewOutputOnlyRenderTarget(r.Device, t.Name, t.Width, t.Height)
	}
	if err != nil {
		return fmt.Errorf("graphconf: target %q: %w", t.Name, err)
	}
	r.colors[t.Name] = rt
	return nil
}

func newQueuePass(pc PassConfig, res *Resources) (rgph.Pass, error) {
	p := rgph.NewQueuePass(pc.Name)
	p.SetTargets(res.Color(pc.Target), res.Depth(pc.Depth))
	if pc.Camera != "" {
		p.AddBindable(res.Camera(pc.Camera))
	}
	if pc.Stencil != "" {
		s, err := bind.ResolveStencil(res.Cache, bind.StencilMode(pc.Stencil))
		if err != nil {
			return nil, err
		}
		p.AddBindable(s)
	}
	if rc := pc.Rasterizer; rc != nil {
		p.AddBindable(bind.NewShadowRasterizer(rc.DepthBias, rc.SlopeBias, rc.Clamp))
	}
	if pc.Blend {
		b, err := bind.ResolveBlender(res.Cache, true, nil)
		if err != nil {
			return nil, err
		}
		p.AddBindable(b)
	}
	if err := addInputs(p, pc, res); err != nil {
		return nil, err
	}
	return p, nil
}

// addInputs binds the targets a queue pass samples. Depth inputs bring the
// shadow comparison sampler with them.
func addInputs(p *rgph.QueuePass, pc PassConfig, res *Resources) error {
	depth := false
	for _, in := range pc.Inputs {
		b, ok := res.Input(in)
		if !ok {
			return &UnknownTargetError{Pass: pc.Name, Target: in}
		}
		if _, ok := b.(*bind.DepthStencil); ok {
			depth = true
		}
		p.AddBindable(b)
	}
	if depth {
		smp, err := bind.ResolveSampler(res.Cache, res.Device, bind.SamplerShadow)
		if err != nil {
			return err
		}
		p.AddBindable(smp)
	}
	if pc.ShadowCamera != "" {
		cb, err := bind.NewCameraBuffer(res.Device, res.Camera(pc.ShadowCamera), gfx.StageVertex, bind.ShadowTransformSlot)
		if err != nil {
			return err
		}
		p.AddBindable(cb)
	}
	return nil
}

func newClearPass(pc PassConfig, res *Resources) (rgph.Pass, error) {
	var rgba [4]float32
	copy(rgba[:], pc.Color)
	return rgph.NewClearPass(pc.Name, res.Color(pc.Target), res.Depth(pc.Depth), rgba), nil
}

func newFullscreenPass(pc PassConfig, res *Resources) (rgph.Pass, error) {
	if pc.Shader == "" {
		return nil, ErrNoShader
	}
	src, err := res.ReadFile(pc.Shader)
	if err != nil {
		return nil, err
	}
	ps, err := bind.ResolvePixelShader(res.Cache, res.Device, pc.Shader, string(src))
	if err != nil {
		return nil, err
	}
	binds := []bind.Bindable{ps}
	if len(pc.Inputs) > 0 {
		smp, err := bind.ResolveSampler(res.Cache, res.Device, bind.SamplerClamp)
		if err != nil {
			return nil, err
		}
		binds = append(binds, smp)
	}
	for _, in := range pc.Inputs {
		b, ok := res.Input(in)
		if !ok {
			return nil, &UnknownTargetError{Pass: pc.Name, Target: in}
		}
		binds = append(binds, b)
	}
	p, err := rgph.NewFullscreenPass(res.Cache, res.Device, pc.Name, binds...)
	if err != nil {
		return nil, err
	}
	p.SetTargets(res.Color(pc.Target), res.Depth(pc.Depth))
	return p, nil
}
