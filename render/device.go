// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/rgraph"
	"github.com/gogpu/rgraph/gfx"
	"github.com/gogpu/rgraph/gfx/halgfx"
	"github.com/gogpu/rgraph/gfx/soft"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host (e.g. gogpu.App) owns the device; the renderer only borrows it.
// Hosts that expose HalDevice() and HalQueue() get the HAL backend.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle without a GPU. Open selects the
// recording device for it.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// AdapterInfo returns zero adapter info for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo { return gpucontext.AdapterInfo{} }

var _ DeviceHandle = NullDeviceHandle{}

// Backend names the device implementation chosen by Open.
type Backend string

const (
	// BackendSoft records commands in memory.
	BackendSoft Backend = "soft"

	// BackendHAL renders through a wgpu HAL device.
	BackendHAL Backend = "hal"
)

// Open returns a device and context for h. A nil handle or a
// NullDeviceHandle selects the recording device.
func Open(h DeviceHandle) (gfx.Device, gfx.Context, error) {
	dev, ctx, backend, err := open(h)
	if err != nil {
		return nil, nil, err
	}
	rgraph.Logger().Info("render: device selected", "backend", string(backend))
	return dev, ctx, nil
}

func open(h DeviceHandle) (gfx.Device, gfx.Context, Backend, error) {
	if h == nil {
		dev := soft.NewDevice()
		return dev, soft.NewContext(dev), BackendSoft, nil
	}
	if _, ok := h.(NullDeviceHandle); ok {
		dev := soft.NewDevice()
		return dev, soft.NewContext(dev), BackendSoft, nil
	}
	dev, err := halgfx.FromProvider(h)
	if err != nil {
		return nil, nil, "", fmt.Errorf("render: open device: %w", err)
	}
	return dev, dev.NewContext(), BackendHAL, nil
}
