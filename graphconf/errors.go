// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graphconf

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrNoPasses    = errors.New("graphconf: no passes")
	ErrEmptyName   = errors.New("graphconf: name is empty")
	ErrTargetKind  = errors.New("graphconf: unknown target kind")
	ErrTargetSize  = errors.New("graphconf: target size is zero")
	ErrClearColor  = errors.New("graphconf: clear color needs 4 components")
	ErrStencilMode = errors.New("graphconf: unknown stencil mode")
	ErrNoShader    = errors.New("graphconf: fullscreen pass has no shader")

	ErrNotShaderInput = errors.New("graphconf: target is not a shader input")
)

// UnknownKindError is returned for a pass whose kind is not registered.
type UnknownKindError struct {
	Pass string
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("graphconf: pass %q: unknown kind %q", e.Pass, e.Kind)
}

// UnknownTargetError is returned when a pass names a target that is not
// declared, or that has the wrong kind.
type UnknownTargetError struct {
	Pass   string
	Target string

	// Kind is the expected target kind, empty if any kind is accepted.
	Kind string
}

func (e *UnknownTargetError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("graphconf: pass %q: unknown target %q", e.Pass, e.Target)
	}
	return fmt.Sprintf("graphconf: pass %q: unknown %s target %q", e.Pass, e.Kind, e.Target)
}

// DuplicateTargetError is returned when two targets share a name.
type DuplicateTargetError struct {
	Name string
}

func (e *DuplicateTargetError) Error() string {
	return fmt.Sprintf("graphconf: duplicate target %q", e.Name)
}
