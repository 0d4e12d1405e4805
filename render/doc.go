// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render drives a render graph frame by frame.
//
// A frame resets the graph, lets the scene submit its drawables once per
// channel, executes every pass in registration order and flushes the
// context when it records commands for later submission:
//
//	dev, ctx, err := render.Open(app) // or render.NullDeviceHandle{}
//	g, err := graphconf.Build(graphconf.Default(), env)
//	r := render.NewRenderer(g.Graph, ctx)
//	for running {
//	    if err := r.RenderFrame(sc); err != nil {
//	        return err
//	    }
//	}
//
// # Device Selection
//
// The renderer never creates a GPU device. [Open] receives a [DeviceHandle]
// from the host application and wraps its HAL device with package halgfx.
// A [NullDeviceHandle] selects the recording device of package gfx/soft,
// which is what tests and headless tools use.
//
// # Thread Safety
//
// A Renderer is used from one goroutine, like the context it drives.
package render
