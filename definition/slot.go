// SPDX-License-Identifier: MIT
// Package: magiccube/definition
//
// slot.go — the single-writer configuration slot.
//
// Contract (strict):
//   • The current Definition is replaced wholesale via CompareAndSwap; there
//     is no in-place mutation and no partially applied edit.
//   • Validation happens before the swap; a failed edit leaves the slot as is.
//   • Generation increases by exactly one per accepted edit.

package definition

import (
	"fmt"
	"iter"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/magiccube/fractal"
	"github.com/katalvlaran/magiccube/rule"
)

// Definition is one complete, immutable fractal definition.
type Definition struct {
	Matrix rule.Matrix
	Depth  int
}

// state pairs a Definition with the generation that installed it.
type state struct {
	def Definition
	gen uint64
}

// Slot owns the current Definition. It is safe for concurrent use; edits
// are serialised by compare-and-swap.
type Slot struct {
	cur atomic.Pointer[state]
	cfg slotConfig
}

// NewSlot returns a Slot holding the initial definition (rule.Default() at
// depth 0 unless WithInitial says otherwise).
// Returns ErrInvalidDepth when the initial depth exceeds the max depth.
func NewSlot(opts ...Option) (*Slot, error) {
	s := &Slot{cfg: newSlotConfig(opts...)}
	if err := s.validate(s.cfg.initial); err != nil {
		return nil, fmt.Errorf("NewSlot: %w", err)
	}
	s.cur.Store(&state{def: s.cfg.initial})

	return s, nil
}

// Current returns the definition in effect.
func (s *Slot) Current() Definition { return s.cur.Load().def }

// Generation returns how many edits have been accepted since NewSlot.
func (s *Slot) Generation() uint64 { return s.cur.Load().gen }

// MatrixText returns the current matrix in its editable text form.
func (s *Slot) MatrixText() string { return rule.Encode(s.Current().Matrix) }

// MaxDepth returns the inclusive depth bound enforced by SetDepth.
func (s *Slot) MaxDepth() int { return s.cfg.maxDepth }

// BaseScale returns the root cube edge used by Expand.
func (s *Slot) BaseScale() float64 { return s.cfg.baseScale }

// SetDepth replaces the depth. Returns ErrInvalidDepth outside [0, MaxDepth].
func (s *Slot) SetDepth(depth int) error {
	return s.update(FieldDepth, func(d Definition) (Definition, error) {
		d.Depth = depth
		return d, nil
	})
}

// SetMatrixFromText decodes text leniently and replaces the matrix.
// Returns ErrInvalidMatrix (wrapping rule.ErrInvalidMatrix) on blank text.
func (s *Slot) SetMatrixFromText(text string) error {
	m, err := rule.Decode(text)
	if err != nil {
		err = fmt.Errorf("SetMatrixFromText: %w: %w", ErrInvalidMatrix, err)
		s.reject(FieldMatrix, err)
		return err
	}

	return s.SetMatrix(m)
}

// SetMatrix replaces the matrix. Returns ErrInvalidMatrix for the zero Matrix.
func (s *Slot) SetMatrix(m rule.Matrix) error {
	return s.update(FieldMatrix, func(d Definition) (Definition, error) {
		d.Matrix = m
		return d, nil
	})
}

// Update applies fn to the current definition and installs the result.
// fn may run more than once under contention and must be free of side
// effects. An error from fn, or a result failing validation, aborts the
// edit with nothing applied.
func (s *Slot) Update(fn func(Definition) (Definition, error)) error {
	return s.update(FieldDefinition, fn)
}

func (s *Slot) update(field string, fn func(Definition) (Definition, error)) error {
	for {
		old := s.cur.Load()
		next, err := fn(old.def)
		if err == nil {
			err = s.validate(next)
		}
		if err != nil {
			s.reject(field, err)
			return err
		}
		if s.cur.CompareAndSwap(old, &state{def: next, gen: old.gen + 1}) {
			s.cfg.observer.EditAccepted(field)
			s.cfg.log.Info("definition updated",
				"field", field,
				"generation", old.gen+1,
				"depth", next.Depth,
				"matrix", rule.Encode(next.Matrix))
			return nil
		}
	}
}

func (s *Slot) validate(d Definition) error {
	if d.Matrix.IsZero() {
		return ErrInvalidMatrix
	}
	if d.Depth < 0 || d.Depth > s.cfg.maxDepth {
		return fmt.Errorf("depth %d not in [0,%d]: %w", d.Depth, s.cfg.maxDepth, ErrInvalidDepth)
	}

	return nil
}

func (s *Slot) reject(field string, err error) {
	s.cfg.observer.EditRejected(field, err)
	s.cfg.log.Warn("edit rejected", "field", field, "error", err)
}

// Projection describes what Expand would produce for the current definition.
func (s *Slot) Projection() fractal.Projection {
	d := s.Current()

	return fractal.Project(d.Matrix, d.Depth, s.cfg.baseScale)
}

// Expand runs a fresh, complete expansion of the current definition into
// sink and returns the number of placements emitted. Validation failures
// (including fractal.ErrExpansionTooLarge) emit nothing.
func (s *Slot) Expand(sink fractal.Sink) (int, error) {
	_, n, err := s.ExpandSnapshot(func(Definition) fractal.Sink { return sink })

	return n, err
}

// ExpandSnapshot reads the current definition once, passes it to build to
// obtain a sink, and expands that same definition into it. The returned
// Definition is the one expanded, regardless of edits made meanwhile.
func (s *Slot) ExpandSnapshot(build func(Definition) fractal.Sink) (Definition, int, error) {
	d := s.Current()
	sink := build(d)
	start := time.Now()
	n, err := fractal.Walk(d.Matrix, d.Depth, s.cfg.baseScale, s.cfg.basePos, sink, s.cfg.expandOpts...)
	if err != nil {
		s.cfg.observer.ExpansionFailed(err)
		s.cfg.log.Warn("expansion failed", "depth", d.Depth, "matrix", rule.Encode(d.Matrix), "error", err)
		return d, n, fmt.Errorf("Slot.Expand: %w", err)
	}
	elapsed := time.Since(start)
	s.cfg.observer.ExpansionDone(n, elapsed)
	s.cfg.log.Debug("expansion done", "depth", d.Depth, "leaves", n, "elapsed", elapsed)

	return d, n, nil
}

// Leaves returns a lazy sequence over the current definition's leaves. The
// definition is captured at call time; later edits do not affect it.
func (s *Slot) Leaves() (iter.Seq[fractal.Placement], error) {
	d := s.Current()
	seq, err := fractal.Leaves(d.Matrix, d.Depth, s.cfg.baseScale, s.cfg.basePos, s.cfg.expandOpts...)
	if err != nil {
		s.cfg.observer.ExpansionFailed(err)
		return nil, fmt.Errorf("Slot.Leaves: %w", err)
	}

	return seq, nil
}
