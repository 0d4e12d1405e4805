// Package rgraph renders scenes made of many independently configured
// drawables across a fixed, ordered list of render passes on one GPU context.
//
// # Overview
//
// The engine is split into small packages that build on each other:
//
//   - gfx: the GPU context surface (resource creation, state setting, indexed draws)
//   - gfx/soft, gfx/halgfx: a recording device for tests and a wgpu HAL device
//   - cache: identity-keyed store that shares immutable GPU state objects
//   - bind: bindable kinds (samplers, shaders, buffers, rasterizer/stencil/blend state)
//   - rgph: steps, techniques, passes and the render graph
//   - drawable: drawables that own techniques and shared geometry
//   - material: standard techniques (phong, shadow map, outline)
//   - graphconf: YAML description of the pass list
//   - scene, render: drawable collections and the per-frame driver
//
// # Frame Cycle
//
// Every frame runs three strictly sequential phases:
//
//	graph.Reset()                      // clear all pass job queues
//	scene.Submit(rgph.ChannelShadow)   // drawables -> techniques -> steps -> passes
//	scene.Submit(rgph.ChannelMain)
//	graph.Execute(ctx)                 // passes run in registration order
//
// render.Renderer wraps the cycle:
//
//	r := render.NewRenderer(graph, ctx)
//	for running {
//	    if err := r.RenderFrame(sc); err != nil {
//	        return err
//	    }
//	}
//
// # Logging
//
// rgraph is silent by default. Call [SetLogger] to enable structured logging
// through log/slog.
package rgraph
