// SPDX-License-Identifier: MIT

// Package definition holds the "current fractal definition": the rule matrix
// and depth a host is showing, plus the edit surface that replaces them.
//
// What:
//
//   - Definition is an immutable (Matrix, Depth) pair.
//   - Slot owns the current Definition behind an atomic pointer. Every edit
//     (SetDepth, SetMatrixFromText, SetMatrix, Update) builds a fresh
//     Definition and installs it with compare-and-swap; readers always see a
//     complete pair, never half of an edit.
//   - A rejected edit changes nothing: the previous definition stays in
//     effect and the error is returned, logged and reported to the Observer.
//   - Expand/Leaves run a complete expansion of the definition current at
//     call time. Nothing is cached between reads.
//
// Errors:
//
//   - ErrInvalidDepth:  depth outside [0, MaxDepth].
//   - ErrInvalidMatrix: blank matrix text or a zero-value Matrix. Wraps
//     rule.ErrInvalidMatrix when the rule package produced it.
//   - Expansion errors are the fractal sentinels, passed through.
package definition
