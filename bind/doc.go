// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package bind provides bindables: units of GPU context state that a render
// step activates before drawing.
//
// Immutable bindables are shared through the resource codex. Each shareable
// kind has an identity function (SamplerID, RasterizerID, ...) and a resolver
// (ResolveSampler, ResolveRasterizer, ...) that returns the one instance held
// by the codex for that identity:
//
//	smp, err := bind.ResolveSampler(c, dev, bind.SamplerDefault) // "sampler#default"
//
// Bindables with per-drawable state, such as [TransformBuffer], are not
// shared. They implement [Cloner] and keep only their immutable parts in
// the codex.
package bind
