// SPDX-License-Identifier: MIT

// Package fractal expands a rule.Matrix into the leaf cubes of a recursive
// cube subdivision.
//
// What:
//
//   - A cube of edge s at position p is split into children of edge s/N,
//     where N is the rule's row count. Child (i, j) sits at
//     p + (i·s/N, j·s/N, rule[i][j]·s/N). After depth levels every remaining
//     cube is a leaf and is handed to a Sink as a Placement.
//   - Leaves is the primitive: a lazy, restartable iter.Seq that walks the
//     tree in pre-order, (row index, element index) nested. Walk streams to a
//     Sink, Expand materialises a slice; all three share the same order.
//
// Growth law:
//
//   - Every cube has Elements() children (sum of row lengths), so a walk of
//     depth D yields Elements()^D leaves: (N·N)^D for a square N×N rule.
//     N=4, D=8 is already 4.3e9 leaves.
//   - Before any recursion the projected count is computed analytically
//     (LeafCount) and compared with a ceiling (DefaultMaxLeaves unless
//     WithMaxLeaves/WithoutLimit say otherwise). Above it the call fails with
//     ErrExpansionTooLarge and nothing is emitted.
//
// Jagged rules:
//
//   - The outer loop runs over rows and the inner loop over that row's own
//     length, so a jagged rule changes branching per row. This mixes two
//     notions of "dimension" (row count for the x step, row length for the y
//     range) and is most likely a latent defect in the rule semantics rather
//     than a feature. It is kept as is: squaring the matrix would change
//     fractals users have already built.
//
// Errors:
//
//   - ErrEmptyRuleMatrix:   zero-value matrix (no rows).
//   - ErrNegativeDepth:     depth < 0.
//   - ErrInvalidScale:      base scale not finite and positive, or non-finite base position.
//   - ErrExpansionTooLarge: projected leaf count above the ceiling.
//   - ErrNilSink:           Walk without a sink.
//   - ErrSinkFailed:        the sink returned an error; Walk stops at once.
//
// Concurrency:
//
//   - Pure functions; no shared state. A walk runs on the caller goroutine.
package fractal
