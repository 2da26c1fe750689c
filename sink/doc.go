// SPDX-License-Identifier: MIT

// Package sink provides fractal.Sink implementations: the consumers that turn
// leaf placements into something a host can use.
//
//   - Collector, Counter: keep the placements or just count them.
//   - Bounds:             axis-aligned box around every emitted cube, for
//     framing a camera on the result.
//   - Logger:             one structured log record per placement (slog).
//   - JSONLines:          one JSON object per line: {"scale":s,"position":[x,y,z]}.
//   - OBJ:                Wavefront OBJ mesh, one closed cube per placement.
//   - Multi:              fan-out to several sinks, in order.
//
// Cubes are centred on Placement.Position with edge Placement.Scale, the
// same convention a scene graph uses for a translated unit cuboid.
//
// None of the sinks are safe for concurrent use; a walk is single-goroutine.
package sink
