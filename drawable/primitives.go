// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawable

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/rgraph/bind"
	"github.com/gogpu/rgraph/cache"
	"github.com/gogpu/rgraph/gfx"
)

// CubeLayout is the vertex layout of Cube: position and normal.
var CubeLayout = bind.NewVertexLayout(bind.Position3D, bind.Normal)

// PlaneLayout is the vertex layout of Plane: position, normal and uv.
var PlaneLayout = bind.NewVertexLayout(bind.Position3D, bind.Normal, bind.Texture2D)

// cubeFaces lists each face's normal and two edge axes with u x v = n.
var cubeFaces = [6][3]mgl32.Vec3{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}},
}

// quadCorners are the (u, v) signs of a face's corners.
var quadCorners = [4][2]float32{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}

// quadIndices are two counter-clockwise triangles over quadCorners.
var quadIndices = [6]uint16{0, 1, 2, 2, 1, 3}

// Cube returns the geometry of an axis-aligned cube with edge length size,
// centered at the origin, with per-face normals. Geometry is shared
// through c for equal sizes.
func Cube(c *cache.Codex, dev gfx.Device, size float32) (Geometry, error) {
	tag := cache.Key("$cube", size)
	half := size / 2

	vertices := make([]float32, 0, 24*CubeLayout.Floats())
	indices := make([]uint16, 0, 36)
	for f, face := range cubeFaces {
		n, u, v := face[0], face[1], face[2]
		for _, k := range quadCorners {
			p := n.Add(u.Mul(k[0])).Add(v.Mul(k[1])).Mul(half)
			vertices = append(vertices, p[0], p[1], p[2], n[0], n[1], n[2])
		}
		for _, i := range quadIndices {
			indices = append(indices, uint16(4*f)+i)
		}
	}
	return resolveGeometry(c, dev, tag, CubeLayout, vertices, indices)
}

// Plane returns the geometry of a width x height rectangle in the XY plane
// facing +Z, with texture coordinates spanning [0, 1].
func Plane(c *cache.Codex, dev gfx.Device, width, height float32) (Geometry, error) {
	tag := cache.Key("$plane", width, height)
	w, h := width/2, height/2

	vertices := make([]float32, 0, 4*PlaneLayout.Floats())
	for _, k := range quadCorners {
		vertices = append(vertices,
			k[0]*w, k[1]*h, 0,
			0, 0, 1,
			(k[0]+1)/2, (1-k[1])/2,
		)
	}
	return resolveGeometry(c, dev, tag, PlaneLayout, vertices, quadIndices[:])
}

func resolveGeometry(c *cache.Codex, dev gfx.Device, tag string, layout bind.VertexLayout, vertices []float32, indices []uint16) (Geometry, error) {
	vb, err := bind.ResolveVertexBuffer(c, dev, tag, layout, vertices)
	if err != nil {
		return Geometry{}, err
	}
	ib, err := bind.ResolveIndexBuffer(c, dev, tag, indices)
	if err != nil {
		return Geometry{}, err
	}
	topo, err := bind.ResolveTopology(c, gputypes.PrimitiveTopologyTriangleList)
	if err != nil {
		return Geometry{}, err
	}
	return Geometry{Vertices: vb, Indices: ib, Topology: topo}, nil
}
