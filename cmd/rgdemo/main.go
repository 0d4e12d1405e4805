// Command rgdemo renders a few frames of a shadowed, outlined scene on the
// recording device and prints what each pass drew.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rgraph"
	"github.com/gogpu/rgraph/bind"
	"github.com/gogpu/rgraph/cache"
	"github.com/gogpu/rgraph/gfx/soft"
	"github.com/gogpu/rgraph/graphconf"
	"github.com/gogpu/rgraph/material"
	"github.com/gogpu/rgraph/render"
	"github.com/gogpu/rgraph/scene"
)

func main() {
	var (
		config  = flag.String("config", "", "render graph YAML (default: built-in shadow/phong/outline graph)")
		frames  = flag.Int("frames", 3, "number of frames to render")
		cubes   = flag.Int("cubes", 4, "number of cubes")
		texture = flag.String("texture", "", "diffuse map for a ground plane (PNG or JPEG)")
		width   = flag.Int("width", 800, "backbuffer width")
		height  = flag.Int("height", 600, "backbuffer height")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	rgraph.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(*config, *texture, *frames, *cubes, uint32(*width), uint32(*height)); err != nil { //nolint:gosec // flag values are small
		log.Fatalf("rgdemo: %v", err)
	}
}

func run(configPath, texture string, frames, cubes int, width, height uint32) error {
	cfg := graphconf.Default()
	dir := "."
	if configPath != "" {
		var err error
		if cfg, err = graphconf.Load(configPath); err != nil {
			return err
		}
		dir = filepath.Dir(configPath)
	}

	dev, ctx, err := render.Open(render.NullDeviceHandle{})
	if err != nil {
		return err
	}
	c := cache.New()
	defer c.DestroyAll()

	back, err := bind.NewOutputOnlyRenderTarget(dev, graphconf.Backbuffer, width, height)
	if err != nil {
		return err
	}
	depth, err := bind.NewDepthStencil(dev, graphconf.DepthBuffer, width, height, false, 0)
	if err != nil {
		return err
	}

	aspect := float32(width) / float32(height)
	light := material.DefaultLight()
	light.Position = mgl32.Vec3{4, 8, 4}
	if err := material.UpdateLight(c, dev, light); err != nil {
		return err
	}
	cameras := map[string]*bind.Camera{
		graphconf.MainCamera: bind.NewCamera(
			mgl32.LookAtV(mgl32.Vec3{0, 4, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}),
			mgl32.Perspective(mgl32.DegToRad(60), aspect, 0.1, 100),
		),
		graphconf.ShadowCamera: bind.NewCamera(
			mgl32.LookAtV(light.Position, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}),
			mgl32.Ortho(-10, 10, -10, 10, 0.1, 40),
		),
	}

	g, err := graphconf.Build(cfg, graphconf.Env{
		Device:     dev,
		Cache:      c,
		Backbuffer: back,
		Depth:      depth,
		Cameras:    cameras,
		Dir:        dir,
	})
	if err != nil {
		return err
	}

	var loaders []scene.Loader
	for i := 0; i < cubes; i++ {
		opts := material.DefaultOptions()
		opts.Name = "crate"
		x := float32(i)*2.5 - float32(cubes-1)*1.25
		loaders = append(loaders, scene.Cube(dev, fmt.Sprintf("cube%d", i), 1, opts, mgl32.Translate3D(x, 0.5, 0)))
	}
	if texture != "" {
		opts := material.DefaultOptions()
		opts.DiffuseMap = texture
		loaders = append(loaders, scene.Plane(dev, "ground", 20, 20, opts, mgl32.HomogRotate3DX(mgl32.DegToRad(-90))))
	}

	sc := scene.New()
	if err := sc.Load(context.Background(), c, loaders, 4); err != nil {
		return err
	}
	if err := sc.Link(g.Graph); err != nil {
		return err
	}
	if d, ok := sc.Find("cube0"); ok {
		if t, ok := d.Technique(material.OutlineTechnique); ok {
			t.SetActive(true)
		}
	}

	r := render.NewRenderer(g.Graph, ctx)
	rec, _ := ctx.(*soft.Context)
	for f := 0; f < frames; f++ {
		angle := float32(f) * mgl32.DegToRad(15)
		for _, d := range sc.Drawables() {
			if d.Name() == "ground" {
				continue
			}
			pos := d.Transform().Col(3).Vec3()
			d.SetTransform(mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).Mul4(mgl32.HomogRotate3DY(angle)))
		}
		if rec != nil {
			rec.Reset()
		}
		if err := r.RenderFrame(sc); err != nil {
			return err
		}
	}

	st := r.Stats()
	hits, misses := c.Stats()
	fmt.Printf("frames: %d  passes: %d  jobs/frame: %d  last frame: %s\n", st.Frames, st.Passes, st.Jobs, st.Duration)
	fmt.Printf("codex: %d resources, %d hits, %d misses\n", c.Len(), hits, misses)
	if rec != nil {
		for _, p := range g.Passes() {
			fmt.Printf("  %-12s %d draws\n", p.Name(), len(rec.DrawsIn(p.Name())))
		}
	}
	return nil
}
