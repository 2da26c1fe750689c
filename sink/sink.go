// SPDX-License-Identifier: MIT

package sink

import (
	"github.com/katalvlaran/magiccube/fractal"
)

// Collector stores every placement it receives.
type Collector struct {
	Placements []fractal.Placement
}

// Receive appends p.
func (c *Collector) Receive(p fractal.Placement) error {
	c.Placements = append(c.Placements, p)
	return nil
}

// Reset drops collected placements but keeps the backing array.
func (c *Collector) Reset() { c.Placements = c.Placements[:0] }

// Counter counts placements.
type Counter struct {
	N int
}

// Receive increments the count.
func (c *Counter) Receive(fractal.Placement) error {
	c.N++
	return nil
}

// Bounds tracks the axis-aligned bounding box of the emitted cubes.
// The zero value is an empty box.
type Bounds struct {
	Min, Max fractal.Vec3
	Count    int
}

// Receive grows the box to contain the cube centred at p.Position with edge p.Scale.
func (b *Bounds) Receive(p fractal.Placement) error {
	h := p.Scale / 2
	lo := fractal.Vec3{X: p.Position.X - h, Y: p.Position.Y - h, Z: p.Position.Z - h}
	hi := fractal.Vec3{X: p.Position.X + h, Y: p.Position.Y + h, Z: p.Position.Z + h}
	if b.Count == 0 {
		b.Min, b.Max = lo, hi
	} else {
		b.Min = fractal.Vec3{X: min(b.Min.X, lo.X), Y: min(b.Min.Y, lo.Y), Z: min(b.Min.Z, lo.Z)}
		b.Max = fractal.Vec3{X: max(b.Max.X, hi.X), Y: max(b.Max.Y, hi.Y), Z: max(b.Max.Z, hi.Z)}
	}
	b.Count++

	return nil
}

// Empty reports whether no cube was received.
func (b *Bounds) Empty() bool { return b.Count == 0 }

// Center returns the midpoint of the box.
func (b *Bounds) Center() fractal.Vec3 {
	return fractal.Vec3{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

// Size returns the box extent per axis.
func (b *Bounds) Size() fractal.Vec3 {
	return fractal.Vec3{X: b.Max.X - b.Min.X, Y: b.Max.Y - b.Min.Y, Z: b.Max.Z - b.Min.Z}
}

type multi []fractal.Sink

// Multi returns a sink that forwards each placement to every non-nil sink in
// order, stopping at the first error.
func Multi(sinks ...fractal.Sink) fractal.Sink {
	out := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}

	return out
}

func (m multi) Receive(p fractal.Placement) error {
	for _, s := range m {
		if err := s.Receive(p); err != nil {
			return err
		}
	}

	return nil
}
