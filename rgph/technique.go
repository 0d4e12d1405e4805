// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rgph

import (
	"fmt"

	"github.com/gogpu/rgraph/bind"
)

// Technique is a named, filterable bundle of steps: one way of rendering a
// drawable.
type Technique struct {
	name   string
	mask   Channel
	active bool
	steps  []*Step
}

// NewTechnique creates an active technique submitted on channels in mask.
func NewTechnique(name string, mask Channel, steps ...*Step) *Technique {
	return &Technique{
		name:   name,
		mask:   mask,
		active: true,
		steps:  append([]*Step(nil), steps...),
	}
}

// AddStep appends s.
func (t *Technique) AddStep(s *Step) { t.steps = append(t.steps, s) }

// Name returns the technique name.
func (t *Technique) Name() string { return t.name }

// Mask returns the channel mask.
func (t *Technique) Mask() Channel { return t.mask }

// Active reports whether the technique submits jobs.
func (t *Technique) Active() bool { return t.active }

// SetActive enables or disables submission.
func (t *Technique) SetActive(active bool) { t.active = active }

// Steps returns the steps in order.
func (t *Technique) Steps() []*Step { return append([]*Step(nil), t.steps...) }

// Submit submits d through every step if the technique is active and its
// mask matches ch. Otherwise it does nothing.
func (t *Technique) Submit(d Drawable, ch Channel) {
	if !t.active || !t.mask.Has(ch) {
		return
	}
	for _, s := range t.steps {
		s.Submit(d)
	}
}

// Link links every step to g, stopping at the first failure.
func (t *Technique) Link(g *Graph) error {
	for _, s := range t.steps {
		if err := s.Link(g); err != nil {
			return fmt.Errorf("rgph: technique %q: %w", t.name, err)
		}
	}
	return nil
}

// InitParent passes the owning drawable to every step.
func (t *Technique) InitParent(p bind.Parent) {
	for _, s := range t.steps {
		s.InitParent(p)
	}
}

// Accept lets p visit the technique, then each step and its bindables.
func (t *Technique) Accept(p Probe) {
	p.VisitTechnique(t)
	for _, s := range t.steps {
		s.Accept(p)
	}
}

// Clone returns a deep copy of the steps for another drawable.
func (t *Technique) Clone() *Technique {
	c := &Technique{
		name:   t.name,
		mask:   t.mask,
		active: t.active,
		steps:  make([]*Step, len(t.steps)),
	}
	for i, s := range t.steps {
		c.steps[i] = s.Clone()
	}
	return c
}
