// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package material

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rgraph/bind"
	"github.com/gogpu/rgraph/cache"
	"github.com/gogpu/rgraph/gfx"
)

// LightTag tags the shared point light constant buffer.
const LightTag = "light"

// Light is a point light in view space.
type Light struct {
	Position mgl32.Vec3
	Diffuse  mgl32.Vec3
	Ambient  mgl32.Vec3

	Intensity float32

	// Attenuation coefficients.
	Constant, Linear, Quadratic float32
}

// DefaultLight returns a white light above and in front of the camera.
func DefaultLight() Light {
	return Light{
		Position:  mgl32.Vec3{0, 4, -2},
		Diffuse:   mgl32.Vec3{1, 1, 1},
		Ambient:   mgl32.Vec3{0.05, 0.05, 0.05},
		Intensity: 1,
		Constant:  1,
		Linear:    0.045,
		Quadratic: 0.0075,
	}
}

// Bytes packs l as the Light uniform block.
func (l Light) Bytes() []byte {
	return packVec4s(
		l.Position.Vec4(1),
		l.Diffuse.Vec4(1),
		l.Ambient.Vec4(1),
		mgl32.Vec4{l.Constant, l.Linear, l.Quadratic, l.Intensity},
	)
}

// ResolveLight returns the light constant buffer shared by every phong
// material, created with DefaultLight.
func ResolveLight(c *cache.Codex, dev gfx.Device) (*bind.ConstantBuffer, error) {
	return bind.ResolveConstantBuffer(c, dev, gfx.StagePixel, LightSlot, LightTag, DefaultLight().Bytes())
}

// UpdateLight writes l to the shared light buffer.
func UpdateLight(c *cache.Codex, dev gfx.Device, l Light) error {
	cb, err := ResolveLight(c, dev)
	if err != nil {
		return err
	}
	return cb.Update(dev, l.Bytes())
}
