// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bind

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rgraph/gfx"
)

// Camera sets the view and projection matrices used by transform buffers
// bound after it. It is usually a pass-level bindable, so a shadow pass can
// render from the light while the main passes render from the eye.
type Camera struct {
	view mgl32.Mat4
	proj mgl32.Mat4
}

// NewCamera returns a camera with the given view and projection.
func NewCamera(view, proj mgl32.Mat4) *Camera {
	return &Camera{view: view, proj: proj}
}

// Set replaces both matrices. It must not be called while a frame executes.
func (c *Camera) Set(view, proj mgl32.Mat4) {
	c.view = view
	c.proj = proj
}

// View returns the view matrix.
func (c *Camera) View() mgl32.Mat4 { return c.view }

// Projection returns the projection matrix.
func (c *Camera) Projection() mgl32.Mat4 { return c.proj }

// Bind implements Bindable.
func (c *Camera) Bind(ctx gfx.Context) error {
	ctx.SetCamera(c.view)
	ctx.SetProjection(c.proj)
	return nil
}

// ID implements Bindable. Cameras are not shared.
func (c *Camera) ID() string { return "" }

// CameraBuffer uploads a camera's projection times view to a constant slot
// on every bind, so shaders can project positions into that camera's clip
// space. Queue passes that sample a shadow map bind the light camera this
// way.
type CameraBuffer struct {
	camera *Camera
	buffer *ConstantBuffer
}

// NewCameraBuffer creates a constant buffer of one 4x4 matrix at stage and
// slot that follows camera.
func NewCameraBuffer(dev gfx.Device, camera *Camera, stage gfx.Stage, slot uint32) (*CameraBuffer, error) {
	cb, err := NewConstantBuffer(dev, stage, slot, make([]byte, 64))
	if err != nil {
		return nil, err
	}
	return &CameraBuffer{camera: camera, buffer: cb}, nil
}

// ViewProjection returns the matrix uploaded on bind.
func (c *CameraBuffer) ViewProjection() mgl32.Mat4 {
	return c.camera.Projection().Mul4(c.camera.View())
}

// Bind implements Bindable.
func (c *CameraBuffer) Bind(ctx gfx.Context) error {
	vp := c.ViewProjection()
	if err := c.buffer.Update(ctx.Device(), PackFloats(vp[:])); err != nil {
		return err
	}
	return c.buffer.Bind(ctx)
}

// ID implements Bindable. Camera buffers belong to one pass.
func (c *CameraBuffer) ID() string { return "" }

// Camera returns the followed camera.
func (c *CameraBuffer) Camera() *Camera { return c.camera }

// Buffer returns the underlying constant buffer.
func (c *CameraBuffer) Buffer() *ConstantBuffer { return c.buffer }
