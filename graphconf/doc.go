// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package graphconf builds render graphs from YAML configuration.
//
// A configuration declares the render targets and the fixed, ordered list
// of passes. Each pass has a kind; kinds map to factories in a [Registry]
// so applications can add their own pass types:
//
//	targets:
//	  - {name: shadow, kind: depth, width: 1024, height: 1024}
//	passes:
//	  - {name: clear, kind: clear, color: [0, 0, 0, 1]}
//	  - {name: shadowMap, kind: queue, depth: shadow}
//	  - {name: lambertian, kind: queue}
//
// The names "backbuffer" and "depthbuffer" refer to the attachments passed
// in [Env] and need no declaration.
//
// Configuration errors are returned from [Config.Validate] and [Build];
// they are meant to abort startup.
package graphconf
