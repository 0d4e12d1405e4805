// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rgph

import (
	"fmt"

	"github.com/gogpu/rgraph"
	"github.com/gogpu/rgraph/bind"
	"github.com/gogpu/rgraph/gfx"
)

// Pass is one stage of a frame.
type Pass interface {
	// Name returns the unique pass name.
	Name() string

	// Reset clears per-frame state. It must not be called while the
	// pass executes.
	Reset()

	// Execute issues the pass's work on ctx.
	Execute(ctx gfx.Context) error
}

// passBase holds the targets and pass-level bindables shared by pass kinds.
type passBase struct {
	name  string
	binds []bind.Bindable
	color *bind.RenderTarget
	depth *bind.DepthStencil
}

// Name implements Pass.
func (p *passBase) Name() string { return p.name }

// AddBindable appends a pass-level bindable, bound before any job.
func (p *passBase) AddBindable(b bind.Bindable) { p.binds = append(p.binds, b) }

// Bindables returns the pass-level bindables.
func (p *passBase) Bindables() []bind.Bindable {
	return append([]bind.Bindable(nil), p.binds...)
}

// SetTargets selects the attachments the pass renders into. Either may be
// nil; with both nil the pass keeps the context's current targets.
func (p *passBase) SetTargets(color *bind.RenderTarget, depth *bind.DepthStencil) {
	p.color = color
	p.depth = depth
}

// Targets returns the attachments set with SetTargets.
func (p *passBase) Targets() (*bind.RenderTarget, *bind.DepthStencil) {
	return p.color, p.depth
}

func (p *passBase) bindAll(ctx gfx.Context) error {
	switch {
	case p.color != nil:
		p.color.BindAsTarget(ctx, p.depth)
	case p.depth != nil:
		p.depth.BindAsTarget(ctx)
	}
	for i, b := range p.binds {
		if err := b.Bind(ctx); err != nil {
			return fmt.Errorf("rgph: pass %q bindable %d (%T): %w", p.name, i, b, err)
		}
	}
	return nil
}

// QueuePass accumulates jobs during submission and draws them in FIFO
// order when executed.
type QueuePass struct {
	passBase
	jobs []Job
}

// NewQueuePass creates a queue pass with pass-level bindables.
func NewQueuePass(name string, binds ...bind.Bindable) *QueuePass {
	return &QueuePass{passBase: passBase{
		name:  name,
		binds: append([]bind.Bindable(nil), binds...),
	}}
}

// Append queues j.
func (p *QueuePass) Append(j Job) { p.jobs = append(p.jobs, j) }

// Jobs returns the queued jobs in submission order.
func (p *QueuePass) Jobs() []Job { return p.jobs }

// Reset implements Pass by emptying the queue.
func (p *QueuePass) Reset() {
	clear(p.jobs)
	p.jobs = p.jobs[:0]
}

// Execute implements Pass. It binds the targets and pass-level bindables,
// then executes each job in submission order. An empty queue draws nothing.
func (p *QueuePass) Execute(ctx gfx.Context) error {
	ctx.BeginPass(p.name)
	defer ctx.EndPass()

	if err := p.bindAll(ctx); err != nil {
		return err
	}
	for i, j := range p.jobs {
		if err := j.Execute(ctx); err != nil {
			return fmt.Errorf("rgph: pass %q job %d: %w", p.name, i, err)
		}
	}
	rgraph.Logger().Debug("rgph: pass executed", "pass", p.name, "jobs", len(p.jobs))
	return nil
}

// ClearPass clears its color and depth targets every frame.
type ClearPass struct {
	name  string
	color *bind.RenderTarget
	depth *bind.DepthStencil
	rgba  [4]float32
}

// NewClearPass creates a pass that clears color to rgba and depth to 1.
// Either target may be nil.
func NewClearPass(name string, color *bind.RenderTarget, depth *bind.DepthStencil, rgba [4]float32) *ClearPass {
	return &ClearPass{name: name, color: color, depth: depth, rgba: rgba}
}

// Name implements Pass.
func (p *ClearPass) Name() string { return p.name }

// Reset implements Pass. Clear passes hold no per-frame state.
func (p *ClearPass) Reset() {}

// Execute implements Pass.
func (p *ClearPass) Execute(ctx gfx.Context) error {
	ctx.BeginPass(p.name)
	defer ctx.EndPass()
	if p.color != nil {
		p.color.Clear(ctx, p.rgba)
	}
	if p.depth != nil {
		p.depth.Clear(ctx)
	}
	return nil
}

// Color returns the clear color.
func (p *ClearPass) Color() [4]float32 { return p.rgba }
