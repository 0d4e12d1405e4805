// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package bind

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rgraph/cache"
	"github.com/gogpu/rgraph/gfx"
)

// Topology binds the primitive topology.
type Topology struct {
	topology gputypes.PrimitiveTopology
}

func topologyName(t gputypes.PrimitiveTopology) string {
	switch t {
	case gputypes.PrimitiveTopologyTriangleList:
		return "triangle-list"
	case gputypes.PrimitiveTopologyLineList:
		return "line-list"
	default:
		return fmt.Sprintf("%d", uint32(t))
	}
}

// TopologyID returns the codex identity of a topology.
func TopologyID(t gputypes.PrimitiveTopology) string {
	return cache.Key("topology", topologyName(t))
}

// ResolveTopology returns the shared topology bindable.
func ResolveTopology(c *cache.Codex, t gputypes.PrimitiveTopology) (*Topology, error) {
	return cache.Resolve(c, TopologyID(t), func() (*Topology, error) {
		return &Topology{topology: t}, nil
	})
}

// Bind implements Bindable.
func (t *Topology) Bind(ctx gfx.Context) error {
	ctx.SetTopology(t.topology)
	return nil
}

// ID implements Bindable.
func (t *Topology) ID() string { return TopologyID(t.topology) }

// Topology returns the bound primitive topology.
func (t *Topology) Topology() gputypes.PrimitiveTopology { return t.topology }
