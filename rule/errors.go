// SPDX-License-Identifier: MIT
// Package: magiccube/rule
//
// errors.go — sentinel errors for the rule package.
//
// Error policy:
//   • Only package-level sentinels are exposed; callers branch with errors.Is.
//   • Every message is prefixed with "rule: " for grepping across logs.
//   • Context (positions, offending text) is attached with %w at the call site.

package rule

import "errors"

var (
	// ErrInvalidMatrix indicates a matrix with zero rows, either passed to New
	// directly or produced by decoding blank text.
	ErrInvalidMatrix = errors.New("rule: matrix must have at least one row")

	// ErrIndexOutOfRange indicates a row or element index outside the matrix.
	ErrIndexOutOfRange = errors.New("rule: index out of range")

	// ErrMalformedToken is returned only by DecodeStrict for a token that
	// lenient decoding would have dropped.
	ErrMalformedToken = errors.New("rule: malformed token")

	// ErrUnknownPreset indicates LookupPreset was called with an unknown name.
	ErrUnknownPreset = errors.New("rule: unknown preset")
)
