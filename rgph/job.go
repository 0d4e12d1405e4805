// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rgph

import (
	"fmt"

	"github.com/gogpu/rgraph/gfx"
)

// Drawable is what a job draws: shared geometry and an index count.
type Drawable interface {
	// Bind binds the vertex buffer, index buffer and topology.
	Bind(ctx gfx.Context) error

	// IndexCount is the number of indices drawn per job.
	IndexCount() uint32
}

// Job is one (drawable, step) pair queued in a pass for the current frame.
// Jobs hold non-owning references; both must outlive the frame.
type Job struct {
	Drawable Drawable
	Step     *Step
}

// Execute binds the step, then the drawable's geometry, and issues one
// indexed draw.
func (j Job) Execute(ctx gfx.Context) error {
	if err := j.Step.Bind(ctx); err != nil {
		return err
	}
	if err := j.Drawable.Bind(ctx); err != nil {
		return fmt.Errorf("rgph: bind geometry: %w", err)
	}
	if err := ctx.DrawIndexed(j.Drawable.IndexCount()); err != nil {
		return fmt.Errorf("rgph: draw: %w", err)
	}
	return nil
}
