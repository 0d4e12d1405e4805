// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rgph

import (
	"fmt"

	"github.com/gogpu/rgraph"
	"github.com/gogpu/rgraph/gfx"
)

// Graph is a fixed, ordered list of named passes.
//
// The registration order is the whole scheduling policy: Execute runs
// passes in that order every frame.
type Graph struct {
	passes []Pass
	byName map[string]Pass
}

// NewGraph builds a graph from passes in execution order. Unnamed passes
// and duplicate names are errors.
func NewGraph(passes ...Pass) (*Graph, error) {
	g := &Graph{
		passes: make([]Pass, 0, len(passes)),
		byName: make(map[string]Pass, len(passes)),
	}
	for i, p := range passes {
		if p == nil {
			return nil, fmt.Errorf("rgph: pass %d: %w", i, ErrNilPass)
		}
		name := p.Name()
		if name == "" {
			return nil, fmt.Errorf("rgph: pass %d: %w", i, ErrEmptyPassName)
		}
		if _, dup := g.byName[name]; dup {
			return nil, &DuplicatePassError{Name: name}
		}
		g.byName[name] = p
		g.passes = append(g.passes, p)
	}
	rgraph.Logger().Debug("rgph: graph built", "passes", len(g.passes))
	return g, nil
}

// Pass returns the pass named name.
func (g *Graph) Pass(name string) (Pass, error) {
	p, ok := g.byName[name]
	if !ok {
		return nil, &PassNotFoundError{Name: name}
	}
	return p, nil
}

// QueuePass returns the queue pass named name.
func (g *Graph) QueuePass(name string) (*QueuePass, error) {
	p, err := g.Pass(name)
	if err != nil {
		return nil, err
	}
	qp, ok := p.(*QueuePass)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T", ErrNotQueuePass, name, p)
	}
	return qp, nil
}

// Passes returns the passes in execution order.
func (g *Graph) Passes() []Pass { return append([]Pass(nil), g.passes...) }

// Len returns the number of passes.
func (g *Graph) Len() int { return len(g.passes) }

// Reset resets every pass.
func (g *Graph) Reset() {
	for _, p := range g.passes {
		p.Reset()
	}
}

// Execute runs every pass in registration order and stops at the first
// failure.
func (g *Graph) Execute(ctx gfx.Context) error {
	for _, p := range g.passes {
		if err := p.Execute(ctx); err != nil {
			return fmt.Errorf("rgph: execute %q: %w", p.Name(), err)
		}
	}
	return nil
}
