// SPDX-License-Identifier: MIT

package rule

import "fmt"

// Matrix is the immutable rule table. The zero value has no rows and is only
// useful as a "not set" marker: every constructor rejects it, and the
// expander refuses to walk it.
//
// Rows may differ in length. A square matrix (every row of length N) is the
// common case and yields (N·N)^depth leaves; a jagged one changes the
// branching factor per row.
type Matrix struct {
	rows     [][]uint64
	elements int
}

// New builds a Matrix from rows, deep-copying the input so later changes to
// rows never leak into the matrix.
// Returns ErrInvalidMatrix when rows is empty.
// Complexity: O(total elements).
func New(rows [][]uint64) (Matrix, error) {
	if len(rows) == 0 {
		return Matrix{}, ErrInvalidMatrix
	}

	cp := make([][]uint64, len(rows))
	total := 0
	for i, r := range rows {
		cp[i] = make([]uint64, len(r))
		copy(cp[i], r)
		total += len(r)
	}

	return Matrix{rows: cp, elements: total}, nil
}

// MustNew is like New but panics on error. Intended for package-level
// constants and tests.
func MustNew(rows [][]uint64) Matrix {
	m, err := New(rows)
	if err != nil {
		panic(fmt.Sprintf("rule: MustNew: %v", err))
	}

	return m
}

// Default returns the diagonal 2×2 rule [[1,0],[0,1]].
func Default() Matrix {
	return MustNew([][]uint64{{1, 0}, {0, 1}})
}

// Dimension returns the row count N.
func (m Matrix) Dimension() int { return len(m.rows) }

// Elements returns the total number of elements over all rows. This is the
// number of children each cube is split into at every level.
func (m Matrix) Elements() int { return m.elements }

// IsZero reports whether m is the zero value (no rows).
func (m Matrix) IsZero() bool { return len(m.rows) == 0 }

// IsSquare reports whether every row has exactly Dimension() elements.
// Complexity: O(N).
func (m Matrix) IsSquare() bool {
	if m.IsZero() {
		return false
	}
	n := len(m.rows)
	for _, r := range m.rows {
		if len(r) != n {
			return false
		}
	}

	return true
}

// Row returns a copy of row i.
// Returns ErrIndexOutOfRange when i is outside [0, Dimension()).
func (m Matrix) Row(i int) ([]uint64, error) {
	if i < 0 || i >= len(m.rows) {
		return nil, fmt.Errorf("Row(%d): %w", i, ErrIndexOutOfRange)
	}
	out := make([]uint64, len(m.rows[i]))
	copy(out, m.rows[i])

	return out, nil
}

// RowLen returns the length of row i, or 0 when i is out of range.
func (m Matrix) RowLen(i int) int {
	if i < 0 || i >= len(m.rows) {
		return 0
	}

	return len(m.rows[i])
}

// At returns element j of row i.
// Returns ErrIndexOutOfRange when either index is outside the matrix.
func (m Matrix) At(i, j int) (uint64, error) {
	if i < 0 || i >= len(m.rows) || j < 0 || j >= len(m.rows[i]) {
		return 0, fmt.Errorf("At(%d,%d): %w", i, j, ErrIndexOutOfRange)
	}

	return m.rows[i][j], nil
}

// Rows returns a deep copy of all rows.
func (m Matrix) Rows() [][]uint64 {
	out := make([][]uint64, len(m.rows))
	for i, r := range m.rows {
		out[i] = make([]uint64, len(r))
		copy(out[i], r)
	}

	return out
}

// Equal reports whether m and o hold the same rows, element by element.
func (m Matrix) Equal(o Matrix) bool {
	if len(m.rows) != len(o.rows) || m.elements != o.elements {
		return false
	}
	for i := range m.rows {
		if len(m.rows[i]) != len(o.rows[i]) {
			return false
		}
		for j := range m.rows[i] {
			if m.rows[i][j] != o.rows[i][j] {
				return false
			}
		}
	}

	return true
}

// String returns the encoded text form, e.g. "1,0|0,1".
func (m Matrix) String() string { return Encode(m) }

// Each calls fn for every element in row-major order: rows by index, then
// elements of that row by index. Iteration stops when fn returns false.
// The fractal walker visits children in this order.
func (m Matrix) Each(fn func(i, j int, v uint64) bool) {
	for i, r := range m.rows {
		for j, v := range r {
			if !fn(i, j, v) {
				return
			}
		}
	}
}
