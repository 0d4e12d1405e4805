// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gfx defines the GPU context surface the render graph drives.
//
// The render graph never talks to a graphics API directly. Bindables create
// their resources through a [Device] and apply state through a [Context];
// passes issue exactly one draw primitive, [Context.DrawIndexed].
//
// # Implementations
//
//   - gfx/soft: CPU recording context. Tracks the bound state and logs every
//     draw with a snapshot of that state. Used by tests and headless tools.
//   - gfx/halgfx: wgpu HAL context. Creates buffers, samplers, textures and
//     shader modules on a hal.Device and records draws into a render pass
//     encoder, resolving pipelines from the bound state.
//
// # State Model
//
// Binding is a sequence of overwrites: each Set call replaces the previous
// value of the same slot. Binding the same value twice leaves the context in
// the same state.
//
// # Thread Safety
//
// Contexts are NOT thread-safe and belong to the frame loop goroutine.
// Devices may be used concurrently during scene loading.
package gfx
