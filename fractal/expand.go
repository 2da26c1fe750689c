// SPDX-License-Identifier: MIT
// Package: magiccube/fractal
//
// expand.go — the recursive subdivision walk.
//
// Contract:
//   • preflight validates everything (matrix, depth, scale, leaf ceiling)
//     before the first placement exists; failures emit nothing.
//   • Order is pre-order with (row index, element index) nested loops; equal
//     inputs give equal sequences.
//   • The walk itself allocates nothing per node beyond the recursion frame.

package fractal

import (
	"fmt"
	"iter"

	"github.com/katalvlaran/magiccube/rule"
)

// Leaves validates the request and returns a lazy sequence of every leaf
// placement. The sequence is restartable: each range over it walks the tree
// again from the root. Breaking out of the range stops the walk.
//
// Errors: ErrEmptyRuleMatrix, ErrNegativeDepth, ErrInvalidScale,
// ErrExpansionTooLarge; all reported before a sequence is handed out.
// Complexity: O(Elements^depth) time per range, O(depth) stack.
func Leaves(m rule.Matrix, depth int, baseScale float64, basePos Vec3, opts ...Option) (iter.Seq[Placement], error) {
	cfg := newExpandConfig(opts...)
	if _, err := preflight(m, depth, baseScale, basePos, cfg); err != nil {
		return nil, fmt.Errorf("Leaves: %w", err)
	}

	w := newWalker(m)

	return func(yield func(Placement) bool) {
		w.walk(baseScale, basePos, depth, yield)
	}, nil
}

// Walk streams every leaf placement to sink in emission order and returns the
// number of placements the sink accepted.
//
// Validation errors are returned before the sink sees anything. If the sink
// fails, the walk stops and the sink's error is returned wrapped with
// ErrSinkFailed, together with the count accepted so far.
func Walk(m rule.Matrix, depth int, baseScale float64, basePos Vec3, sink Sink, opts ...Option) (int, error) {
	if sink == nil {
		return 0, fmt.Errorf("Walk: %w", ErrNilSink)
	}
	cfg := newExpandConfig(opts...)
	if _, err := preflight(m, depth, baseScale, basePos, cfg); err != nil {
		return 0, fmt.Errorf("Walk: %w", err)
	}

	var (
		n       int
		sinkErr error
	)
	newWalker(m).walk(baseScale, basePos, depth, func(p Placement) bool {
		if err := sink.Receive(p); err != nil {
			sinkErr = err
			return false
		}
		n++
		return true
	})
	if sinkErr != nil {
		return n, fmt.Errorf("Walk: placement %d: %w: %w", n, ErrSinkFailed, sinkErr)
	}

	return n, nil
}

// Expand returns every leaf placement as a slice, in emission order.
// depth 0 yields exactly [{baseScale, basePos}].
func Expand(m rule.Matrix, depth int, baseScale float64, basePos Vec3, opts ...Option) ([]Placement, error) {
	cfg := newExpandConfig(opts...)
	count, err := preflight(m, depth, baseScale, basePos, cfg)
	if err != nil {
		return nil, fmt.Errorf("Expand: %w", err)
	}

	// Past the default ceiling, grow on demand instead of reserving up front.
	out := make([]Placement, 0, int(min(count, DefaultMaxLeaves)))
	newWalker(m).walk(baseScale, basePos, depth, func(p Placement) bool {
		out = append(out, p)
		return true
	})

	return out, nil
}

// preflight runs every check that can fail an expansion and returns the
// projected leaf count.
func preflight(m rule.Matrix, depth int, baseScale float64, basePos Vec3, cfg expandConfig) (uint64, error) {
	if m.Dimension() == 0 {
		return 0, ErrEmptyRuleMatrix
	}
	if depth < 0 {
		return 0, fmt.Errorf("depth %d: %w", depth, ErrNegativeDepth)
	}
	if !isFinite(baseScale) || baseScale <= 0 {
		return 0, fmt.Errorf("scale %v: %w", baseScale, ErrInvalidScale)
	}
	if !basePos.IsFinite() {
		return 0, fmt.Errorf("position %v: %w", basePos, ErrInvalidScale)
	}

	count, ok := LeafCount(m, depth)
	if !ok {
		return 0, fmt.Errorf("%d^%d leaves overflow uint64: %w", m.Elements(), depth, ErrExpansionTooLarge)
	}
	if !cfg.unlimited && count > cfg.maxLeaves {
		return 0, fmt.Errorf("%d leaves exceed ceiling %d: %w", count, cfg.maxLeaves, ErrExpansionTooLarge)
	}

	return count, nil
}

// walker holds the rule for one expansion. rule.Matrix is immutable, so it
// is shared without copying.
type walker struct {
	m rule.Matrix
	n float64
}

func newWalker(m rule.Matrix) *walker {
	return &walker{m: m, n: float64(m.Dimension())}
}

// walk emits the subtree rooted at (scale, pos) with depth levels left.
// It returns false once yield asked to stop, unwinding the recursion.
func (w *walker) walk(scale float64, pos Vec3, depth int, yield func(Placement) bool) bool {
	if depth == 0 {
		return yield(Placement{Scale: scale, Position: pos})
	}

	next := scale / w.n
	more := true
	w.m.Each(func(i, j int, v uint64) bool {
		off := Vec3{
			X: float64(i) * next,
			Y: float64(j) * next,
			Z: float64(v) * next,
		}
		more = w.walk(next, pos.Add(off), depth-1, yield)
		return more
	})

	return more
}
