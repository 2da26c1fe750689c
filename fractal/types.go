// SPDX-License-Identifier: MIT

package fractal

import "math"

// Vec3 is a point or offset in fractal space.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// IsFinite reports whether no component is NaN or ±Inf.
func (v Vec3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// Placement is one leaf cube: its edge length and its anchor position.
// Placements are transient; the expander keeps none of them.
type Placement struct {
	Scale    float64
	Position Vec3
}

// Sink receives placements in emission order. Returning an error stops the
// walk; the error is reported wrapped with ErrSinkFailed.
type Sink interface {
	Receive(p Placement) error
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(p Placement) error

// Receive calls f(p).
func (f SinkFunc) Receive(p Placement) error { return f(p) }
