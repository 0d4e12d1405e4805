// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package rgph

import (
	"fmt"
	"strings"
)

// Channel is a bitmask of submission categories.
type Channel uint32

const (
	// ChannelMain is the main camera submission.
	ChannelMain Channel = 1 << 0

	// ChannelShadow is the shadow-map submission.
	ChannelShadow Channel = 1 << 1

	// ChannelAll matches every channel.
	ChannelAll Channel = ^Channel(0)
)

// Has reports whether c and other share any bit.
func (c Channel) Has(other Channel) bool { return c&other != 0 }

// String returns the channel names joined with '|'.
func (c Channel) String() string {
	if c == 0 {
		return "none"
	}
	if c == ChannelAll {
		return "all"
	}
	var parts []string
	if c.Has(ChannelMain) {
		parts = append(parts, "main")
	}
	if c.Has(ChannelShadow) {
		parts = append(parts, "shadow")
	}
	if rest := c &^ (ChannelMain | ChannelShadow); rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseChannel parses a channel name as returned by String.
func ParseChannel(s string) (Channel, error) {
	var c Channel
	for _, part := range strings.Split(s, "|") {
		switch strings.TrimSpace(part) {
		case "main":
			c |= ChannelMain
		case "shadow":
			c |= ChannelShadow
		case "all":
			c |= ChannelAll
		case "none":
		default:
			return 0, fmt.Errorf("rgph: unknown channel %q", part)
		}
	}
	return c, nil
}
