// SPDX-License-Identifier: MIT

package fractal

import (
	"math/bits"

	"github.com/katalvlaran/magiccube/rule"
)

// LeafCount returns the number of leaves a walk of m to depth would emit:
// m.Elements()^depth, with depth 0 giving 1. ok is false when the count does
// not fit in uint64; the returned value is then math.MaxUint64.
// Negative depths have no leaves.
// Complexity: O(min(depth, 64)).
func LeafCount(m rule.Matrix, depth int) (count uint64, ok bool) {
	if depth < 0 {
		return 0, true
	}
	base := uint64(m.Elements())
	switch {
	case depth == 0:
		return 1, true
	case base <= 1:
		return base, true
	}

	count = 1
	for d := 0; d < depth; d++ {
		hi, lo := bits.Mul64(count, base)
		if hi != 0 {
			return ^uint64(0), false
		}
		count = lo
	}

	return count, true
}

// LeafScale returns the edge length of every leaf: baseScale / N^depth with
// N = m.Dimension(). It divides once per level, exactly like the walk, so the
// result compares equal to the emitted scales.
// Returns baseScale for the zero matrix or depth <= 0.
func LeafScale(baseScale float64, m rule.Matrix, depth int) float64 {
	n := m.Dimension()
	if n == 0 {
		return baseScale
	}
	s := baseScale
	for d := 0; d < depth; d++ {
		s /= float64(n)
	}

	return s
}

// Projection summarises an expansion without running it.
type Projection struct {
	Dimension int     // rule row count N
	Branching int     // children per cube (sum of row lengths)
	Depth     int     // requested depth
	Leaves    uint64  // projected leaf count (saturated on overflow)
	Overflow  bool    // Leaves does not fit in uint64
	LeafScale float64 // edge length of each leaf
}

// Project computes the Projection of expanding m to depth from baseScale.
func Project(m rule.Matrix, depth int, baseScale float64) Projection {
	leaves, ok := LeafCount(m, depth)

	return Projection{
		Dimension: m.Dimension(),
		Branching: m.Elements(),
		Depth:     depth,
		Leaves:    leaves,
		Overflow:  !ok,
		LeafScale: LeafScale(baseScale, m, depth),
	}
}
