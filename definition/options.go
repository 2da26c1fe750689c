// SPDX-License-Identifier: MIT
// Package: magiccube/definition
//
// options.go — functional options for NewSlot.
//
// Contract:
//   • Option constructors panic on meaningless values (programmer error).
//   • Slot methods never panic; they return sentinel errors.

package definition

import (
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/katalvlaran/magiccube/fractal"
	"github.com/katalvlaran/magiccube/rule"
)

// Defaults.
const (
	// DefaultMaxDepth is the largest depth the edit surface accepts.
	DefaultMaxDepth = 8

	// DefaultBaseScale is the edge length of the root cube.
	DefaultBaseScale = 4.0
)

// Edited fields, as reported to the Observer.
const (
	FieldDepth      = "depth"
	FieldMatrix     = "matrix"
	FieldDefinition = "definition"
)

// Observer is notified about edits and expansions. metrics.Metrics
// satisfies it.
type Observer interface {
	EditAccepted(field string)
	EditRejected(field string, err error)
	ExpansionDone(leaves int, d time.Duration)
	ExpansionFailed(err error)
}

type nopObserver struct{}

func (nopObserver) EditAccepted(string)              {}
func (nopObserver) EditRejected(string, error)       {}
func (nopObserver) ExpansionDone(int, time.Duration) {}
func (nopObserver) ExpansionFailed(error)            {}

// Option configures a Slot.
type Option func(*slotConfig)

type slotConfig struct {
	initial    Definition
	hasInitial bool
	maxDepth   int
	baseScale  float64
	basePos    fractal.Vec3
	expandOpts []fractal.Option
	log        *slog.Logger
	observer   Observer
}

func newSlotConfig(opts ...Option) slotConfig {
	cfg := slotConfig{
		maxDepth:  DefaultMaxDepth,
		baseScale: DefaultBaseScale,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer:  nopObserver{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if !cfg.hasInitial {
		cfg.initial = Definition{Matrix: rule.Default(), Depth: 0}
	}

	return cfg
}

// WithInitial starts the slot with def instead of the default rule at depth 0.
// Panics when def has a zero-value matrix or a negative depth; the depth is
// otherwise checked against the max depth by NewSlot.
func WithInitial(def Definition) Option {
	if def.Matrix.IsZero() {
		panic("definition: WithInitial: zero matrix")
	}
	if def.Depth < 0 {
		panic("definition: WithInitial: negative depth")
	}

	return func(c *slotConfig) {
		c.initial = def
		c.hasInitial = true
	}
}

// WithMaxDepth sets the inclusive upper bound for SetDepth. Panics when n < 0.
func WithMaxDepth(n int) Option {
	if n < 0 {
		panic("definition: WithMaxDepth: negative bound")
	}

	return func(c *slotConfig) { c.maxDepth = n }
}

// WithBaseScale sets the root cube edge. Panics unless s is finite and > 0.
func WithBaseScale(s float64) Option {
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		panic("definition: WithBaseScale: scale must be finite and > 0")
	}

	return func(c *slotConfig) { c.baseScale = s }
}

// WithBasePosition sets the root cube position. Panics on NaN/Inf components.
func WithBasePosition(p fractal.Vec3) Option {
	if !p.IsFinite() {
		panic("definition: WithBasePosition: non-finite position")
	}

	return func(c *slotConfig) { c.basePos = p }
}

// WithExpandOptions passes options (e.g. fractal.WithMaxLeaves) to every expansion.
func WithExpandOptions(opts ...fractal.Option) Option {
	return func(c *slotConfig) { c.expandOpts = append(c.expandOpts, opts...) }
}

// WithLogger sets the logger for edit and expansion events. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("definition: WithLogger(nil)")
	}

	return func(c *slotConfig) { c.log = l }
}

// WithObserver sets the edit/expansion observer. Panics on nil.
func WithObserver(o Observer) Option {
	if o == nil {
		panic("definition: WithObserver(nil)")
	}

	return func(c *slotConfig) { c.observer = o }
}
