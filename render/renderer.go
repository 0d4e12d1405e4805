// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"time"

	"github.com/gogpu/rgraph"
	"github.com/gogpu/rgraph/gfx"
	"github.com/gogpu/rgraph/rgph"
)

// Submitter submits drawables into the graph for one channel.
// *scene.Scene implements it.
type Submitter interface {
	Submit(ch rgph.Channel)
}

// Flusher is implemented by contexts that buffer commands until Flush.
type Flusher interface {
	Flush() error
}

// Discarder is implemented by contexts that can drop the commands of a
// failed frame. *halgfx.Context implements it.
type Discarder interface {
	Discard()
}

// Stats describes the work of the last frame and the running frame count.
type Stats struct {
	// Frames is the number of frames rendered successfully.
	Frames uint64

	// Passes is the number of passes executed in the last frame.
	Passes int

	// Jobs is the number of jobs queued in the last frame.
	Jobs int

	// Duration is the wall time of the last frame.
	Duration time.Duration
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithChannels sets the channels submitted each frame, in order.
// The default is shadow, then main.
func WithChannels(chs ...rgph.Channel) Option {
	return func(r *Renderer) {
		r.channels = append([]rgph.Channel(nil), chs...)
	}
}

// Renderer renders frames of a graph on one context.
type Renderer struct {
	graph    *rgph.Graph
	ctx      gfx.Context
	channels []rgph.Channel
	stats    Stats
}

// NewRenderer returns a renderer executing g on ctx.
func NewRenderer(g *rgph.Graph, ctx gfx.Context, opts ...Option) *Renderer {
	r := &Renderer{
		graph:    g,
		ctx:      ctx,
		channels: []rgph.Channel{rgph.ChannelShadow, rgph.ChannelMain},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Graph returns the rendered graph.
func (r *Renderer) Graph() *rgph.Graph { return r.graph }

// Context returns the context the renderer draws on.
func (r *Renderer) Context() gfx.Context { return r.ctx }

// Stats returns the statistics of the last frame.
func (r *Renderer) Stats() Stats { return r.stats }

// RenderFrame resets the graph, submits s once per configured channel,
// executes the graph and flushes the context if it buffers commands.
// The first failing pass aborts the frame, and a context implementing
// Discarder drops what the frame recorded.
func (r *Renderer) RenderFrame(s Submitter) error {
	start := time.Now()

	r.graph.Reset()
	if s != nil {
		for _, ch := range r.channels {
			s.Submit(ch)
		}
	}
	jobs := r.queuedJobs()

	if err := r.graph.Execute(r.ctx); err != nil {
		r.discard()
		return fmt.Errorf("render: frame %d: %w", r.stats.Frames, err)
	}
	if f, ok := r.ctx.(Flusher); ok {
		if err := f.Flush(); err != nil {
			r.discard()
			return fmt.Errorf("render: frame %d: flush: %w", r.stats.Frames, err)
		}
	}

	r.stats.Frames++
	r.stats.Passes = r.graph.Len()
	r.stats.Jobs = jobs
	r.stats.Duration = time.Since(start)

	rgraph.Logger().Debug("render: frame",
		"frame", r.stats.Frames,
		"passes", r.stats.Passes,
		"jobs", jobs,
		"duration", r.stats.Duration)
	return nil
}

func (r *Renderer) discard() {
	if d, ok := r.ctx.(Discarder); ok {
		d.Discard()
	}
}

func (r *Renderer) queuedJobs() int {
	n := 0
	for _, p := range r.graph.Passes() {
		if q, ok := p.(*rgph.QueuePass); ok {
			n += len(q.Jobs())
		}
	}
	return n
}
