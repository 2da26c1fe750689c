// SPDX-License-Identifier: MIT
// Package: magiccube/fractal
//
// options.go — functional options for expansion calls.
//
// Contract:
//   • Option constructors panic on meaningless values (programmer error).
//   • Expansion functions never panic; they return sentinel errors.
//   • Later options override earlier ones.

package fractal

// DefaultMaxLeaves is the leaf-count ceiling applied when no option says
// otherwise. A 2×2 rule passes at depth 9 (262 144 leaves) and is rejected
// at depth 10 (1 048 576).
const DefaultMaxLeaves uint64 = 1_000_000

const panicMaxLeavesZero = "fractal: WithMaxLeaves(0)"

// Option customises a single expansion call.
type Option func(*expandConfig)

type expandConfig struct {
	maxLeaves uint64
	unlimited bool
}

func newExpandConfig(opts ...Option) expandConfig {
	cfg := expandConfig{maxLeaves: DefaultMaxLeaves}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// WithMaxLeaves sets the leaf-count ceiling. Panics on 0: a ceiling of zero
// would reject even the single-cube base case.
func WithMaxLeaves(n uint64) Option {
	if n == 0 {
		panic(panicMaxLeavesZero)
	}

	return func(c *expandConfig) {
		c.maxLeaves = n
		c.unlimited = false
	}
}

// WithoutLimit disables the ceiling. Counts that overflow uint64 are still
// rejected with ErrExpansionTooLarge.
func WithoutLimit() Option {
	return func(c *expandConfig) {
		c.unlimited = true
	}
}
