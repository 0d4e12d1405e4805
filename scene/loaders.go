// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rgraph/cache"
	"github.com/gogpu/rgraph/drawable"
	"github.com/gogpu/rgraph/gfx"
	"github.com/gogpu/rgraph/material"
)

// LayoutMismatchError is returned when a material expects a vertex layout
// the geometry does not provide.
type LayoutMismatchError struct {
	Name     string
	Geometry string
	Material string
}

func (e *LayoutMismatchError) Error() string {
	return fmt.Sprintf("scene: %q: geometry layout %s, material needs %s", e.Name, e.Geometry, e.Material)
}

// Cube returns a loader for a cube with the standard techniques.
func Cube(dev gfx.Device, name string, size float32, opts material.Options, model mgl32.Mat4) Loader {
	return func(_ context.Context, c *cache.Codex) (*drawable.Drawable, error) {
		geom, err := drawable.Cube(c, dev, size)
		if err != nil {
			return nil, err
		}
		return assemble(c, dev, name, geom, opts, model)
	}
}

// Plane returns a loader for a plane with the standard techniques. Planes
// carry texture coordinates, so opts may name a diffuse map.
func Plane(dev gfx.Device, name string, width, height float32, opts material.Options, model mgl32.Mat4) Loader {
	return func(_ context.Context, c *cache.Codex) (*drawable.Drawable, error) {
		geom, err := drawable.Plane(c, dev, width, height)
		if err != nil {
			return nil, err
		}
		return assemble(c, dev, name, geom, opts, model)
	}
}

func assemble(c *cache.Codex, dev gfx.Device, name string, geom drawable.Geometry, opts material.Options, model mgl32.Mat4) (*drawable.Drawable, error) {
	if got, want := geom.Layout().Code(), material.Layout(opts).Code(); got != want {
		return nil, &LayoutMismatchError{Name: name, Geometry: got, Material: want}
	}
	d, err := drawable.New(geom, drawable.WithName(name), drawable.WithTransform(model))
	if err != nil {
		return nil, err
	}
	techs, err := material.Standard(c, dev, opts)
	if err != nil {
		return nil, err
	}
	for _, t := range techs {
		d.AddTechnique(t)
	}
	return d, nil
}
