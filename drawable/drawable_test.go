// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package drawable

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rgraph/bind"
	"github.com/gogpu/rgraph/cache"
	"github.com/gogpu/rgraph/gfx/soft"
	"github.com/gogpu/rgraph/rgph"
)

func TestCubeGeometry(t *testing.T) {
	c, dev := cache.New(), soft.NewDevice()
	g, err := Cube(c, dev, 2)
	if err != nil {
		t.Fatal(err)
	}
	if g.Vertices.Count() != 24 {
		t.Errorf("vertices = %d, want 24", g.Vertices.Count())
	}
	if g.Indices.Count() != 36 {
		t.Errorf("indices = %d, want 36", g.Indices.Count())
	}
	if g.Layout().Code() != "P3N" {
		t.Errorf("layout = %q, want P3N", g.Layout().Code())
	}

	again, err := Cube(c, dev, 2)
	if err != nil {
		t.Fatal(err)
	}
	if again.Vertices != g.Vertices || again.Indices != g.Indices {
		t.Error("equal cubes do not share geometry")
	}
	other, _ := Cube(c, dev, 3)
	if other.Vertices == g.Vertices {
		t.Error("cubes of different size share geometry")
	}
}

func TestCubeWinding(t *testing.T) {
	// Every triangle's face normal must point along its vertex normal.
	var pos []mgl32.Vec3
	var nrm []mgl32.Vec3
	for _, face := range cubeFaces {
		n, u, v := face[0], face[1], face[2]
		for _, k := range quadCorners {
			pos = append(pos, n.Add(u.Mul(k[0])).Add(v.Mul(k[1])))
			nrm = append(nrm, n)
		}
	}
	for f := 0; f < 6; f++ {
		for tri := 0; tri < 2; tri++ {
			i0 := 4*f + int(quadIndices[3*tri])
			i1 := 4*f + int(quadIndices[3*tri+1])
			i2 := 4*f + int(quadIndices[3*tri+2])
			cross := pos[i1].Sub(pos[i0]).Cross(pos[i2].Sub(pos[i0]))
			if cross.Dot(nrm[i0]) <= 0 {
				t.Errorf("face %d triangle %d winds clockwise", f, tri)
			}
		}
	}
}

func TestPlaneGeometry(t *testing.T) {
	c, dev := cache.New(), soft.NewDevice()
	g, err := Plane(c, dev, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	if g.Vertices.Count() != 4 || g.Indices.Count() != 6 {
		t.Errorf("plane = %d vertices, %d indices; want 4, 6", g.Vertices.Count(), g.Indices.Count())
	}
}

func TestNewIncompleteGeometry(t *testing.T) {
	if _, err := New(Geometry{}); !errors.Is(err, ErrIncompleteGeometry) {
		t.Errorf("New(empty) error = %v, want %v", err, ErrIncompleteGeometry)
	}
}

type spin struct{ angle float32 }

func (s *spin) Transform() mgl32.Mat4 { return mgl32.HomogRotate3DY(s.angle) }

func TestTransformOptions(t *testing.T) {
	c, dev := cache.New(), soft.NewDevice()
	g, _ := Cube(c, dev, 1)

	d, err := New(g, WithName("box"), WithTransform(mgl32.Translate3D(1, 2, 3)))
	if err != nil {
		t.Fatal(err)
	}
	if d.Name() != "box" {
		t.Errorf("Name() = %q", d.Name())
	}
	if !d.Transform().ApproxEqual(mgl32.Translate3D(1, 2, 3)) {
		t.Errorf("Transform() = %v", d.Transform())
	}
	d.SetTransform(mgl32.Ident4())
	if d.Transform() != mgl32.Ident4() {
		t.Error("SetTransform() had no effect")
	}

	s := &spin{}
	d, _ = New(g, WithTransform(mgl32.Translate3D(9, 9, 9)), WithTransformProvider(s))
	s.angle = 1
	if !d.Transform().ApproxEqual(mgl32.HomogRotate3DY(1)) {
		t.Error("provider transform not used")
	}
}

func TestDrawableFrame(t *testing.T) {
	c, dev := cache.New(), soft.NewDevice()
	ctx := soft.NewContext(dev)
	main, shadow := rgph.NewQueuePass("lambertian"), rgph.NewQueuePass("shadowMap")
	graph, err := rgph.NewGraph(shadow, main)
	if err != nil {
		t.Fatal(err)
	}

	geom, _ := Cube(c, dev, 1)
	d, _ := New(geom, WithName("box"), WithTransform(mgl32.Translate3D(0, 0, 1)))

	tb, err := bind.NewTransformBuffer(c, dev, 0)
	if err != nil {
		t.Fatal(err)
	}
	d.AddTechnique(rgph.NewTechnique("phong", rgph.ChannelMain, rgph.NewStep("lambertian", tb)))
	d.AddTechnique(rgph.NewTechnique("shadow", rgph.ChannelShadow, rgph.NewStep("shadowMap", tb.Clone())))

	if tb.Parent() != bind.Parent(d) {
		t.Fatal("AddTechnique() did not set the transform parent")
	}
	if err := d.LinkTechniques(graph); err != nil {
		t.Fatal(err)
	}

	graph.Reset()
	d.Submit(rgph.ChannelMain)
	if len(main.Jobs()) != 1 || len(shadow.Jobs()) != 0 {
		t.Errorf("main submit queued %d/%d jobs, want 1/0", len(main.Jobs()), len(shadow.Jobs()))
	}
	d.Submit(rgph.ChannelShadow)
	if len(shadow.Jobs()) != 1 {
		t.Errorf("shadow submit queued %d jobs, want 1", len(shadow.Jobs()))
	}

	if err := graph.Execute(ctx); err != nil {
		t.Fatal(err)
	}
	draws := ctx.Draws()
	if len(draws) != 2 {
		t.Fatalf("draws = %d, want 2", len(draws))
	}
	if draws[0].Pass != "shadowMap" || draws[1].Pass != "lambertian" {
		t.Errorf("draw passes = %q, %q", draws[0].Pass, draws[1].Pass)
	}
	for _, dr := range draws {
		if dr.IndexCount != 36 {
			t.Errorf("IndexCount = %d, want 36", dr.IndexCount)
		}
		if len(dr.VertexConstantData[0]) != bind.TransformSize {
			t.Errorf("transform block = %d bytes", len(dr.VertexConstantData[0]))
		}
	}

	if _, ok := d.Technique("shadow"); !ok {
		t.Error("Technique(shadow) not found")
	}
	if _, ok := d.Technique("outline"); ok {
		t.Error("Technique(outline) found")
	}

	var steps int
	d.Accept(rgph.ProbeFuncs{Step: func(*rgph.Step) { steps++ }})
	if steps != 2 {
		t.Errorf("probe visited %d steps, want 2", steps)
	}
}

func TestLinkTechniquesUnknownPass(t *testing.T) {
	c, dev := cache.New(), soft.NewDevice()
	graph, _ := rgph.NewGraph(rgph.NewQueuePass("lambertian"))
	geom, _ := Cube(c, dev, 1)
	d, _ := New(geom, WithName("box"))
	d.AddTechnique(rgph.NewTechnique("outline", rgph.ChannelMain, rgph.NewStep("outlineMask")))

	var nf *rgph.PassNotFoundError
	if err := d.LinkTechniques(graph); !errors.As(err, &nf) {
		t.Errorf("LinkTechniques() error = %v, want *PassNotFoundError", err)
	}
}
