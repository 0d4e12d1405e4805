// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package rgph implements the render graph: techniques, steps, passes and
// the fixed-order graph that executes them.
//
// A drawable owns techniques. A technique is a named bundle of steps that
// is submitted only when it is active and its channel mask matches the
// submission channel. Each step holds an ordered list of bindables and
// names the pass it renders in:
//
//	g, err := rgph.NewGraph(rgph.NewQueuePass("lambertian"))
//	step := rgph.NewStep("lambertian", sampler, shader)
//	tech := rgph.NewTechnique("phong", rgph.ChannelMain, step)
//	if err := tech.Link(g); err != nil { ... } // unknown pass names fail here
//
// Every frame runs three strictly sequential phases:
//
//	g.Reset()                        // clear job queues
//	tech.Submit(d, rgph.ChannelMain) // enqueue (drawable, step) jobs
//	err := g.Execute(ctx)            // run passes in registration order
//
// Passes execute in the order they were registered. There is no dependency
// inference, reordering or retry.
package rgph
