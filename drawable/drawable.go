// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package drawable composes renderable objects from shared geometry,
// a transform and a set of techniques.
package drawable

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rgraph/bind"
	"github.com/gogpu/rgraph/gfx"
	"github.com/gogpu/rgraph/rgph"
)

// ErrIncompleteGeometry is returned when a geometry lacks a vertex buffer,
// an index buffer or a topology.
var ErrIncompleteGeometry = errors.New("drawable: geometry is incomplete")

// Geometry is the vertex data a drawable shares with other drawables.
type Geometry struct {
	Vertices *bind.VertexBuffer
	Indices  *bind.IndexBuffer
	Topology *bind.Topology
}

// Layout returns the vertex layout of the geometry.
func (g Geometry) Layout() bind.VertexLayout { return g.Vertices.Layout() }

func (g Geometry) validate() error {
	if g.Vertices == nil || g.Indices == nil || g.Topology == nil {
		return ErrIncompleteGeometry
	}
	return nil
}

// TransformProvider supplies a drawable's model transform.
type TransformProvider interface {
	Transform() mgl32.Mat4
}

// Option configures a Drawable.
type Option func(*options)

type options struct {
	name      string
	transform mgl32.Mat4
	provider  TransformProvider
}

func defaultOptions() options {
	return options{transform: mgl32.Ident4()}
}

// WithName sets the drawable name used in logs and errors.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithTransform sets a fixed model transform.
func WithTransform(m mgl32.Mat4) Option {
	return func(o *options) { o.transform = m }
}

// WithTransformProvider reads the model transform from p on every bind.
// It takes precedence over WithTransform.
func WithTransformProvider(p TransformProvider) Option {
	return func(o *options) { o.provider = p }
}

// Drawable is a renderable object: techniques plus shared geometry.
//
// Techniques hold non-owning references to the drawable, so a drawable must
// outlive every frame it was submitted in.
type Drawable struct {
	name       string
	geom       Geometry
	transform  mgl32.Mat4
	provider   TransformProvider
	techniques []*rgph.Technique
}

// New creates a drawable over geom.
func New(geom Geometry, opts ...Option) (*Drawable, error) {
	if err := geom.validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Drawable{
		name:      o.name,
		geom:      geom,
		transform: o.transform,
		provider:  o.provider,
	}, nil
}

// Name returns the drawable name.
func (d *Drawable) Name() string { return d.name }

// Geometry returns the shared geometry.
func (d *Drawable) Geometry() Geometry { return d.geom }

// AddTechnique adds t and gives its bindables a reference to d.
func (d *Drawable) AddTechnique(t *rgph.Technique) {
	t.InitParent(d)
	d.techniques = append(d.techniques, t)
}

// Techniques returns the techniques in the order they were added.
func (d *Drawable) Techniques() []*rgph.Technique {
	return append([]*rgph.Technique(nil), d.techniques...)
}

// Technique returns the technique named name.
func (d *Drawable) Technique(name string) (*rgph.Technique, bool) {
	for _, t := range d.techniques {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// LinkTechniques links every technique to g. Call it once after all
// techniques are added and before the first frame.
func (d *Drawable) LinkTechniques(g *rgph.Graph) error {
	for _, t := range d.techniques {
		if err := t.Link(g); err != nil {
			return fmt.Errorf("drawable %q: %w", d.name, err)
		}
	}
	return nil
}

// Submit submits every technique on channel ch.
func (d *Drawable) Submit(ch rgph.Channel) {
	for _, t := range d.techniques {
		t.Submit(d, ch)
	}
}

// Bind implements rgph.Drawable by binding the shared geometry.
func (d *Drawable) Bind(ctx gfx.Context) error {
	if err := d.geom.Vertices.Bind(ctx); err != nil {
		return err
	}
	if err := d.geom.Indices.Bind(ctx); err != nil {
		return err
	}
	return d.geom.Topology.Bind(ctx)
}

// IndexCount implements rgph.Drawable.
func (d *Drawable) IndexCount() uint32 { return d.geom.Indices.Count() }

// Transform implements bind.Parent.
func (d *Drawable) Transform() mgl32.Mat4 {
	if d.provider != nil {
		return d.provider.Transform()
	}
	return d.transform
}

// SetTransform replaces the fixed model transform.
func (d *Drawable) SetTransform(m mgl32.Mat4) { d.transform = m }

// Accept lets p visit every technique.
func (d *Drawable) Accept(p rgph.Probe) {
	for _, t := range d.techniques {
		t.Accept(p)
	}
}
