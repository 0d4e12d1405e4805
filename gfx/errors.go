// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gfx

import "errors"

var (
	// ErrNilDevice is returned when a resource is created without a device.
	ErrNilDevice = errors.New("gfx: device is nil")

	// ErrEmptyData is returned when a buffer or texture is created without contents.
	ErrEmptyData = errors.New("gfx: resource data is empty")

	// ErrEmptySource is returned when a shader module has no source.
	ErrEmptySource = errors.New("gfx: shader source is empty")

	// ErrBufferTooSmall is returned when a write exceeds the buffer size.
	ErrBufferTooSmall = errors.New("gfx: write exceeds buffer size")

	// ErrNoIndexBuffer is returned by DrawIndexed when no index buffer is bound.
	ErrNoIndexBuffer = errors.New("gfx: no index buffer bound")

	// ErrForeignResource is returned when a resource created by another
	// device implementation is bound.
	ErrForeignResource = errors.New("gfx: resource belongs to another device")
)
