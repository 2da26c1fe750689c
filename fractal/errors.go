// SPDX-License-Identifier: MIT
// Package: magiccube/fractal
//
// errors.go — sentinel errors for the fractal package.
//
// All validation sentinels are returned before the first placement is
// emitted: a failing call emits nothing. ErrSinkFailed is the only error
// that can follow partial emission, since it originates in the sink.

package fractal

import "errors"

var (
	// ErrEmptyRuleMatrix indicates an expansion against a matrix with no rows.
	ErrEmptyRuleMatrix = errors.New("fractal: rule matrix has no rows")

	// ErrNegativeDepth indicates a depth below zero.
	ErrNegativeDepth = errors.New("fractal: depth must be >= 0")

	// ErrInvalidScale indicates a base scale that is not a finite positive
	// number, or a base position with NaN/Inf components.
	ErrInvalidScale = errors.New("fractal: base scale must be finite and > 0, position finite")

	// ErrExpansionTooLarge indicates the projected leaf count exceeds the
	// configured ceiling (or does not fit in uint64).
	ErrExpansionTooLarge = errors.New("fractal: expansion too large")

	// ErrNilSink indicates Walk was called without a sink.
	ErrNilSink = errors.New("fractal: sink is nil")

	// ErrSinkFailed wraps an error returned by Sink.Receive.
	ErrSinkFailed = errors.New("fractal: sink failed")
)
