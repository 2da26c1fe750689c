// SPDX-License-Identifier: MIT

// Package rule defines the subdivision rule of the cube fractal and its
// text form.
//
// What:
//
//   - Matrix is an immutable, possibly jagged table of non-negative integers.
//     Its row count N fixes how many slices each cube is cut into along the
//     first grid axis; each row's own length fixes the count along the second;
//     each value is the displacement along the third axis, in child units.
//   - Decode / Encode convert between a Matrix and the editable text form
//     "1,0|0,1": rows joined by RowSeparator, elements by ElementSeparator.
//   - Presets ship a few named rules, including the default diagonal rule.
//
// Parsing policy:
//
//   - Decode is lenient: every token that is not a base-10 unsigned integer
//     (empty tokens, words, signed numbers, overflowing values) is dropped.
//     Only blank input is rejected (ErrInvalidMatrix).
//   - DecodeStrict accepts the same format but reports the first dropped
//     token as ErrMalformedToken with its row/column position.
//
// Complexity:
//
//   - New, Decode, Encode: O(total elements) time and memory.
//   - Dimension, Elements, IsSquare: O(1) / O(N).
//
// Errors:
//
//   - ErrInvalidMatrix:   zero rows, or blank text.
//   - ErrIndexOutOfRange: Row/At outside the matrix.
//   - ErrMalformedToken:  strict decoding met a token it cannot parse.
//   - ErrUnknownPreset:   LookupPreset with an unregistered name.
package rule
