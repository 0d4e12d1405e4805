// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rgph

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPassName is returned when a graph is built with an unnamed pass.
	ErrEmptyPassName = errors.New("rgph: pass name is empty")

	// ErrNotQueuePass is returned when a step targets a pass that does not
	// accept jobs.
	ErrNotQueuePass = errors.New("rgph: pass does not accept jobs")

	// ErrUnlinkedStep is the panic value of submitting through a step that
	// was never linked to a pass.
	ErrUnlinkedStep = errors.New("rgph: step submitted before link")

	// ErrNilPass is returned when a graph is built with a nil pass.
	ErrNilPass = errors.New("rgph: pass is nil")
)

// PassNotFoundError is returned when a pass name is not in the graph.
type PassNotFoundError struct {
	Name string
}

func (e *PassNotFoundError) Error() string {
	return fmt.Sprintf("rgph: no such pass %q", e.Name)
}

// DuplicatePassError is returned when two passes share a name.
type DuplicatePassError struct {
	Name string
}

func (e *DuplicatePassError) Error() string {
	return fmt.Sprintf("rgph: duplicate pass %q", e.Name)
}
