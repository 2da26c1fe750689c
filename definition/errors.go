// SPDX-License-Identifier: MIT

package definition

import "errors"

var (
	// ErrInvalidDepth indicates a depth outside [0, MaxDepth].
	ErrInvalidDepth = errors.New("definition: depth out of range")

	// ErrInvalidMatrix indicates an edit that would leave the slot without a
	// usable rule matrix.
	ErrInvalidMatrix = errors.New("definition: invalid rule matrix")
)
