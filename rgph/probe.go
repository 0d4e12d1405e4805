// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rgph

import "github.com/gogpu/rgraph/bind"

// Probe inspects a drawable's techniques, steps and bindables. Probes are
// read-only and have no effect on rendering.
type Probe interface {
	bind.Probe
	VisitTechnique(t *Technique)
	VisitStep(s *Step)
}

// ProbeFuncs adapts functions to Probe. Nil fields are skipped.
type ProbeFuncs struct {
	Technique func(t *Technique)
	Step      func(s *Step)
	Bindable  func(b bind.Bindable)
}

// VisitTechnique implements Probe.
func (p ProbeFuncs) VisitTechnique(t *Technique) {
	if p.Technique != nil {
		p.Technique(t)
	}
}

// VisitStep implements Probe.
func (p ProbeFuncs) VisitStep(s *Step) {
	if p.Step != nil {
		p.Step(s)
	}
}

// VisitBindable implements Probe.
func (p ProbeFuncs) VisitBindable(b bind.Bindable) {
	if p.Bindable != nil {
		p.Bindable(b)
	}
}
