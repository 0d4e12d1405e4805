// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rgph

import (
	"fmt"

	"github.com/gogpu/rgraph/bind"
	"github.com/gogpu/rgraph/gfx"
)

// Step is an ordered list of bindables routed to one named pass.
type Step struct {
	target string
	binds  []bind.Bindable

	// pass is resolved by Link and is non-owning.
	pass *QueuePass
}

// NewStep creates a step that renders in the pass named target.
func NewStep(target string, binds ...bind.Bindable) *Step {
	return &Step{
		target: target,
		binds:  append([]bind.Bindable(nil), binds...),
	}
}

// AddBindable appends b. Bindables bind in the order they were added.
func (s *Step) AddBindable(b bind.Bindable) {
	s.binds = append(s.binds, b)
}

// Target returns the name of the pass the step renders in.
func (s *Step) Target() string { return s.target }

// Bindables returns the bindables in bind order.
func (s *Step) Bindables() []bind.Bindable {
	return append([]bind.Bindable(nil), s.binds...)
}

// Linked reports whether Link succeeded.
func (s *Step) Linked() bool { return s.pass != nil }

// Link resolves the target pass in g. An unknown name yields a
// *PassNotFoundError and leaves the step unlinked.
func (s *Step) Link(g *Graph) error {
	qp, err := g.QueuePass(s.target)
	if err != nil {
		return err
	}
	s.pass = qp
	return nil
}

// Submit queues a job for d in the linked pass. It panics with an error
// wrapping ErrUnlinkedStep if Link has not succeeded.
func (s *Step) Submit(d Drawable) {
	if s.pass == nil {
		panic(fmt.Errorf("%w: target %q", ErrUnlinkedStep, s.target))
	}
	s.pass.Append(Job{Drawable: d, Step: s})
}

// Bind binds every bindable in insertion order. Later bindables may
// override state set by earlier ones.
func (s *Step) Bind(ctx gfx.Context) error {
	for i, b := range s.binds {
		if err := b.Bind(ctx); err != nil {
			return fmt.Errorf("rgph: step %q bindable %d (%T): %w", s.target, i, b, err)
		}
	}
	return nil
}

// InitParent passes the owning drawable to bindables that read from it.
func (s *Step) InitParent(p bind.Parent) {
	for _, b := range s.binds {
		bind.InitParent(b, p)
	}
}

// Accept lets p visit the step and its bindables.
func (s *Step) Accept(p Probe) {
	p.VisitStep(s)
	for _, b := range s.binds {
		bind.Accept(b, p)
	}
}

// Clone returns a copy for another drawable. Cloning bindables are cloned,
// shared bindables are shared. The clone keeps the link of s.
func (s *Step) Clone() *Step {
	c := &Step{
		target: s.target,
		binds:  make([]bind.Bindable, len(s.binds)),
		pass:   s.pass,
	}
	for i, b := range s.binds {
		c.binds[i] = bind.CloneOrShare(b)
	}
	return c
}
