// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package scene holds the drawables of a frame.
//
// A Scene is filled during the load phase, linked once to a render graph and
// then submitted every frame:
//
//	s := scene.New()
//	err := s.Load(ctx, codex, loaders, 4)
//	err = s.Link(graph)
//	for frame := range frames {
//	    graph.Reset()
//	    s.Submit(rgph.ChannelMain)
//	    graph.Execute(gctx)
//	}
//
// Loading may run concurrently; everything else is single-threaded.
package scene

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/rgraph"
	"github.com/gogpu/rgraph/cache"
	"github.com/gogpu/rgraph/drawable"
	"github.com/gogpu/rgraph/rgph"
)

// ErrNilDrawable is returned by Add and Load for a nil drawable.
var ErrNilDrawable = errors.New("scene: drawable is nil")

// Loader builds one drawable, typically from an asset file. Loaders run
// concurrently and share the codex.
type Loader func(ctx context.Context, c *cache.Codex) (*drawable.Drawable, error)

// Scene is an ordered collection of drawables.
type Scene struct {
	mu        sync.Mutex
	drawables []*drawable.Drawable
	visible   func(*drawable.Drawable) bool
}

// New returns an empty scene in which every drawable is visible.
func New() *Scene {
	return &Scene{}
}

// Add appends drawables to the scene.
func (s *Scene) Add(ds ...*drawable.Drawable) error {
	for _, d := range ds {
		if d == nil {
			return ErrNilDrawable
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawables = append(s.drawables, ds...)
	return nil
}

// Drawables returns the drawables in insertion order.
func (s *Scene) Drawables() []*drawable.Drawable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*drawable.Drawable(nil), s.drawables...)
}

// Len returns the number of drawables.
func (s *Scene) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drawables)
}

// Find returns the first drawable named name.
func (s *Scene) Find(name string) (*drawable.Drawable, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.drawables {
		if d.Name() == name {
			return d, true
		}
	}
	return nil, false
}

// SetVisible installs a visibility filter applied by Submit. Nil makes
// every drawable visible. It may be called while another goroutine
// submits; the filter takes effect from the next Submit.
func (s *Scene) SetVisible(fn func(*drawable.Drawable) bool) {
	s.mu.Lock()
	s.visible = fn
	s.mu.Unlock()
}

// Load runs loaders with at most workers running at once and appends their
// drawables in loader order. The first failure cancels the remaining loaders
// and is returned; nothing is added in that case.
func (s *Scene) Load(ctx context.Context, c *cache.Codex, loaders []Loader, workers int) error {
	out := make([]*drawable.Drawable, len(loaders))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, load := range loaders {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := load(ctx, c)
			if err != nil {
				return fmt.Errorf("scene: loader %d: %w", i, err)
			}
			if d == nil {
				return fmt.Errorf("scene: loader %d: %w", i, ErrNilDrawable)
			}
			out[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := s.Add(out...); err != nil {
		return err
	}
	rgraph.Logger().Info("scene: loaded", "drawables", len(out), "cached", c.Len())
	return nil
}

// Link links every drawable's techniques to g.
func (s *Scene) Link(g *rgph.Graph) error {
	for _, d := range s.Drawables() {
		if err := d.LinkTechniques(g); err != nil {
			return fmt.Errorf("scene: %w", err)
		}
	}
	return nil
}

// Submit submits every visible drawable on ch, in insertion order.
func (s *Scene) Submit(ch rgph.Channel) {
	s.mu.Lock()
	drawables := append([]*drawable.Drawable(nil), s.drawables...)
	visible := s.visible
	s.mu.Unlock()

	for _, d := range drawables {
		if visible != nil && !visible(d) {
			continue
		}
		d.Submit(ch)
	}
}

// Accept walks every drawable with p.
func (s *Scene) Accept(p rgph.Probe) {
	for _, d := range s.Drawables() {
		d.Accept(p)
	}
}
