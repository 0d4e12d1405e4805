// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bind

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rgraph/gfx"
)

// ErrNilDevice is returned when a resolver is called without a device.
var ErrNilDevice = errors.New("bind: device is nil")

// Bindable is a unit of GPU context state.
//
// Bind applies the state to ctx. Binding twice with no intervening state
// change leaves the context in the same state.
//
// ID returns the codex identity of shareable bindables, or "" for bindables
// that hold per-instance state.
type Bindable interface {
	Bind(ctx gfx.Context) error
	ID() string
}

// Parent is the drawable a bindable reads per-instance data from.
type Parent interface {
	Transform() mgl32.Mat4
}

// ParentBinder is implemented by bindables that need a reference to the
// drawable that owns them. The reference is non-owning.
type ParentBinder interface {
	InitParent(p Parent)
}

// Probe visits bindables for inspection tooling.
type Probe interface {
	VisitBindable(b Bindable)
}

// Inspectable is implemented by bindables that expose inner state to a Probe.
type Inspectable interface {
	Accept(p Probe)
}

// Cloner is implemented by bindables with per-instance state. Clone returns
// an independent copy that shares only immutable sub-resources.
type Cloner interface {
	Bindable
	Clone() Bindable
}

// InitParent passes p to b if b implements ParentBinder.
func InitParent(b Bindable, p Parent) {
	if pb, ok := b.(ParentBinder); ok {
		pb.InitParent(p)
	}
}

// Accept lets p visit b. Inspectable bindables handle the visit themselves.
func Accept(b Bindable, p Probe) {
	if in, ok := b.(Inspectable); ok {
		in.Accept(p)
		return
	}
	p.VisitBindable(b)
}

// CloneOrShare returns a clone of b if it is a Cloner, otherwise b itself.
func CloneOrShare(b Bindable) Bindable {
	if c, ok := b.(Cloner); ok {
		return c.Clone()
	}
	return b
}

func checkDevice(dev gfx.Device) error {
	if dev == nil {
		return ErrNilDevice
	}
	return nil
}
