// Package magiccube expands parametric cube fractals.
//
// A fractal is a rule matrix plus a depth. Each cube is split into
// N slices along X (N = row count) and, within row i, into len(row i)
// slices along Y; the value at (i, j) lifts that child along Z in units
// of the child's edge. Recursing depth times yields the leaf cubes.
//
// Packages:
//
//	rule/        — rule Matrix, lenient and strict text codec, presets
//	fractal/     — leaf-count projection and the bounded expander (Walk, Expand, Leaves)
//	sink/        — placement consumers: collectors, bounds, slog, JSON lines, OBJ
//	definition/  — atomic editable slot holding the current (matrix, depth)
//	metrics/     — Prometheus collectors observing edits and expansions
//	config/      — YAML + MAGICCUBE_* environment configuration
//	cmd/magiccube — command-line host
//
// Quick example:
//
//	m, _ := rule.Decode("1,0|0,1")
//	leaves, _ := fractal.Expand(m, 1, 4, fractal.Vec3{})
//	// 4 cubes of edge 2 at (0,0,2) (0,2,0) (2,0,0) (2,2,2)
//
// Leaf count grows as (elements)^depth, so every expansion is checked
// against a ceiling (fractal.DefaultMaxLeaves) before anything is emitted.
//
//	go install github.com/katalvlaran/magiccube/cmd/magiccube@latest
package magiccube
