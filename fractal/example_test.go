// File: fractal/example_test.go
package fractal_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/magiccube/fractal"
	"github.com/katalvlaran/magiccube/rule"
)

////////////////////////////////////////////////////////////////////////////////
// Example: Expand
////////////////////////////////////////////////////////////////////////////////

// ExampleExpand splits a cube of edge 4 once with the diagonal rule
// [[1,0],[0,1]]: four children of edge 2, lifted along Z by rule[i][j]·2.
func ExampleExpand() {
	leaves, err := fractal.Expand(rule.Default(), 1, 4, fractal.Vec3{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, p := range leaves {
		fmt.Printf("edge=%g at (%g,%g,%g)\n", p.Scale, p.Position.X, p.Position.Y, p.Position.Z)
	}

	// Output:
	// edge=2 at (0,0,2)
	// edge=2 at (0,2,0)
	// edge=2 at (2,0,0)
	// edge=2 at (2,2,2)
}

////////////////////////////////////////////////////////////////////////////////
// Example: Leaves with the size guard
////////////////////////////////////////////////////////////////////////////////

// ExampleLeaves shows the lazy form and the pre-flight guard rejecting a
// 10×10 rule at depth 8 (10^16 leaves) before any work is done.
func ExampleLeaves() {
	seq, err := fractal.Leaves(rule.Default(), 3, 8, fractal.Vec3{})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	n := 0
	for range seq {
		n++
	}
	fmt.Println("leaves:", n)

	rows := make([][]uint64, 10)
	for i := range rows {
		rows[i] = make([]uint64, 10)
	}
	_, err = fractal.Leaves(rule.MustNew(rows), 8, 1, fractal.Vec3{})
	fmt.Println("too large:", errors.Is(err, fractal.ErrExpansionTooLarge))

	// Output:
	// leaves: 64
	// too large: true
}
