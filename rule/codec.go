// SPDX-License-Identifier: MIT
// Package: magiccube/rule
//
// codec.go — text form of a rule Matrix.
//
// Format:
//   • Rows are joined with RowSeparator ("|"), elements with ElementSeparator (",").
//   • Whitespace around elements is ignored.
//   • Text with no RowSeparator is a single row.
//
// Contract:
//   • Decode never fails on individual tokens; bad tokens are dropped.
//   • Encode is the inverse projection: Decode(Encode(m)) equals m whenever
//     Encode(m) is not blank (a matrix made of one empty row encodes to "").

package rule

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// RowSeparator separates rows in the text form.
	RowSeparator = "|"
	// ElementSeparator separates elements within a row.
	ElementSeparator = ","
)

// Decode parses text leniently into a Matrix.
//
// Every token that is not a base-10 unsigned integer after trimming is
// silently dropped, so "1,x,2|3,,4" decodes to [[1,2],[3,4]]. A row whose
// tokens are all dropped becomes an empty row. Jagged results are accepted.
//
// Returns ErrInvalidMatrix only when text is blank.
// Complexity: O(len(text)).
func Decode(text string) (Matrix, error) {
	return decode(text, false)
}

// DecodeStrict parses text like Decode but rejects any token Decode would
// drop, returning ErrMalformedToken wrapped with the row and column of the
// first offender. A row consisting only of whitespace is an empty row, so
// every non-blank Encode output decodes strictly.
func DecodeStrict(text string) (Matrix, error) {
	return decode(text, true)
}

func decode(text string, strict bool) (Matrix, error) {
	if strings.TrimSpace(text) == "" {
		return Matrix{}, fmt.Errorf("Decode: blank input: %w", ErrInvalidMatrix)
	}

	rawRows := strings.Split(text, RowSeparator)
	rows := make([][]uint64, 0, len(rawRows))
	for i, raw := range rawRows {
		if strict && strings.TrimSpace(raw) == "" {
			rows = append(rows, []uint64{})
			continue
		}
		tokens := strings.Split(raw, ElementSeparator)
		row := make([]uint64, 0, len(tokens))
		for j, tok := range tokens {
			v, err := strconv.ParseUint(strings.TrimSpace(tok), 10, 64)
			if err != nil {
				if strict {
					return Matrix{}, fmt.Errorf("DecodeStrict: row %d, element %d (%q): %w",
						i, j, strings.TrimSpace(tok), ErrMalformedToken)
				}
				continue
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}

	return New(rows)
}

// Encode renders m in the text form: elements joined by ElementSeparator,
// rows joined by RowSeparator. The zero Matrix encodes to "".
func Encode(m Matrix) string {
	var b strings.Builder
	for i, r := range m.rows {
		if i > 0 {
			b.WriteString(RowSeparator)
		}
		for j, v := range r {
			if j > 0 {
				b.WriteString(ElementSeparator)
			}
			b.WriteString(strconv.FormatUint(v, 10))
		}
	}

	return b.String()
}
