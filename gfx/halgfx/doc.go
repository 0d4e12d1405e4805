// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package halgfx implements the gfx interfaces on a wgpu HAL device.
//
// The device is received from the host application, it is never created
// here. Any provider exposing HalDevice() and HalQueue() works:
//
//	dev, err := halgfx.FromProvider(app)
//	ctx := dev.NewContext()
//
// WGSL sources are compiled to SPIR-V with naga. Render pipelines are not
// created by bindables; the context derives a pipeline descriptor from the
// bound state at every DrawIndexed and resolves it through a hash-keyed
// cache, so the first draw with a new state combination pays for pipeline
// creation and later draws reuse it.
//
// Shader resources use bind group 0 with the binding numbers of
// gfx.ConstantBinding, gfx.TextureBinding and gfx.SamplerBinding.
//
// Thread Safety: a Device may create resources concurrently. A Context
// belongs to one goroutine.
package halgfx
