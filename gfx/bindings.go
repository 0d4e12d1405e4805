// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

// MaxSlots is the number of slots per resource class and stage.
const MaxSlots = 4

// Shader resources live in bind group 0. Each resource class owns a range
// of MaxSlots bindings:
//
//	0-3    vertex-stage constant buffers
//	4-7    pixel-stage constant buffers
//	8-11   pixel-stage textures
//	12-15  pixel-stage samplers
//
// WGSL shaders declare @group(0) @binding(n) using these numbers.

// ConstantBinding returns the binding number of a constant buffer slot.
func ConstantBinding(stage Stage, slot uint32) uint32 {
	if stage == StageVertex {
		return slot
	}
	return MaxSlots + slot
}

// TextureBinding returns the binding number of a texture slot.
func TextureBinding(slot uint32) uint32 { return 2*MaxSlots + slot }

// SamplerBinding returns the binding number of a sampler slot.
func SamplerBinding(slot uint32) uint32 { return 3*MaxSlots + slot }
