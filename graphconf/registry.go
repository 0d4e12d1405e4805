// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package graphconf

import (
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/gogpu/rgraph/rgph"
)

// Built-in pass kinds.
const (
	KindQueue      = "queue"
	KindClear      = "clear"
	KindFullscreen = "fullscreen"
)

// Factory creates the pass described by pc. Targets and shared resources
// are reached through res.
type Factory func(pc PassConfig, res *Resources) (rgph.Pass, error)

// defaultRegistry holds the built-in kinds and everything added with Register.
var defaultRegistry = NewRegistry()

// Registry maps pass kinds to factories. It is safe for concurrent use.
// Kinds are case-folded, so "Queue" and "queue" name the same kind.
//
// Example registration of an application pass kind:
//
//	func init() {
//	    graphconf.Register("bloom", newBloomPass)
//	}
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]Factory
}

// NewRegistry returns a registry holding the built-in kinds.
func NewRegistry() *Registry {
	r := &Registry{kinds: make(map[string]Factory)}
	r.Register(KindQueue, newQueuePass)
	r.Register(KindClear, newClearPass)
	r.Register(KindFullscreen, newFullscreenPass)
	return r
}

// Register adds a pass kind to the default registry. Registering an
// existing kind replaces it.
func Register(kind string, f Factory) {
	defaultRegistry.Register(kind, f)
}

// Kinds returns the kinds of the default registry, sorted.
func Kinds() []string {
	return defaultRegistry.Kinds()
}

// Register adds a pass kind to r.
func (r *Registry) Register(kind string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.kinds == nil {
		r.kinds = make(map[string]Factory)
	}
	r.kinds[foldKind(kind)] = f
}

// Unregister removes a pass kind from r.
func (r *Registry) Unregister(kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.kinds, foldKind(kind))
}

// Has reports whether kind is registered.
func (r *Registry) Has(kind string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.kinds[foldKind(kind)]
	return ok
}

// Kinds returns the registered kinds, sorted.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.kinds))
	for k := range r.kinds {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

func (r *Registry) factory(kind string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.kinds[foldKind(kind)]
	return f, ok
}

// foldKind returns the registry key of kind. A Caser keeps state, so each
// call makes its own.
func foldKind(kind string) string {
	return cases.Fold().String(strings.TrimSpace(kind))
}
