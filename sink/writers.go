// SPDX-License-Identifier: MIT
// Package: magiccube/sink
//
// writers.go — sinks that serialise placements to an io.Writer.
//
// Both writers buffer; callers MUST call Flush (JSONLines) or Close (OBJ)
// after the walk, otherwise the tail of the output stays in memory.

package sink

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/katalvlaran/magiccube/fractal"
)

// placementRecord is the JSON shape of one placement.
type placementRecord struct {
	Scale    float64    `json:"scale"`
	Position [3]float64 `json:"position"`
}

// JSONLines writes {"scale":s,"position":[x,y,z]} per line.
type JSONLines struct {
	buf *bufio.Writer
	enc *json.Encoder
}

// NewJSONLines returns a JSONLines sink writing to w.
func NewJSONLines(w io.Writer) *JSONLines {
	buf := bufio.NewWriter(w)

	return &JSONLines{buf: buf, enc: json.NewEncoder(buf)}
}

// Receive encodes p as one line.
func (j *JSONLines) Receive(p fractal.Placement) error {
	rec := placementRecord{
		Scale:    p.Scale,
		Position: [3]float64{p.Position.X, p.Position.Y, p.Position.Z},
	}
	if err := j.enc.Encode(rec); err != nil {
		return fmt.Errorf("sink: jsonl: %w", err)
	}

	return nil
}

// Flush writes buffered lines to the underlying writer.
func (j *JSONLines) Flush() error {
	if err := j.buf.Flush(); err != nil {
		return fmt.Errorf("sink: jsonl: flush: %w", err)
	}

	return nil
}

// cubeCorners lists unit-cube corners (±1 per axis); cubeFaces indexes them
// (1-based, counter-clockwise seen from outside) as OBJ quads.
var (
	cubeCorners = [8][3]float64{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}
	cubeFaces = [6][4]int{
		{1, 4, 3, 2}, // z-
		{5, 6, 7, 8}, // z+
		{1, 2, 6, 5}, // y-
		{3, 4, 8, 7}, // y+
		{1, 5, 8, 4}, // x-
		{2, 3, 7, 6}, // x+
	}
)

// OBJ writes a Wavefront OBJ mesh with one object of 8 vertices and 6 quads
// per placement.
type OBJ struct {
	buf    *bufio.Writer
	n      int
	header string
}

// NewOBJ returns an OBJ sink writing to w. A non-empty comment is written as
// a "#" header line before the first cube.
func NewOBJ(w io.Writer, comment string) *OBJ {
	return &OBJ{buf: bufio.NewWriter(w), header: comment}
}

// Receive appends the cube for p.
func (o *OBJ) Receive(p fractal.Placement) error {
	if o.n == 0 && o.header != "" {
		if _, err := fmt.Fprintf(o.buf, "# %s\n", o.header); err != nil {
			return fmt.Errorf("sink: obj: %w", err)
		}
	}
	if _, err := fmt.Fprintf(o.buf, "o cube_%d\n", o.n); err != nil {
		return fmt.Errorf("sink: obj: %w", err)
	}

	h := p.Scale / 2
	for _, c := range cubeCorners {
		_, err := fmt.Fprintf(o.buf, "v %s %s %s\n",
			formatFloat(p.Position.X+c[0]*h),
			formatFloat(p.Position.Y+c[1]*h),
			formatFloat(p.Position.Z+c[2]*h))
		if err != nil {
			return fmt.Errorf("sink: obj: %w", err)
		}
	}
	base := o.n * len(cubeCorners)
	for _, f := range cubeFaces {
		_, err := fmt.Fprintf(o.buf, "f %d %d %d %d\n", base+f[0], base+f[1], base+f[2], base+f[3])
		if err != nil {
			return fmt.Errorf("sink: obj: %w", err)
		}
	}
	o.n++

	return nil
}

// Cubes returns how many cubes were written.
func (o *OBJ) Cubes() int { return o.n }

// Close flushes the buffered mesh. It does not close the underlying writer.
func (o *OBJ) Close() error {
	if err := o.buf.Flush(); err != nil {
		return fmt.Errorf("sink: obj: flush: %w", err)
	}

	return nil
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }
