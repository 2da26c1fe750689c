// SPDX-License-Identifier: MIT

package rule

import "fmt"

// Preset is a named, ready-made rule.
type Preset struct {
	Name   string
	Matrix Matrix
}

// Preset names.
const (
	PresetDiagonal = "diagonal"
	PresetLatin3   = "latin3"
	PresetFlat2    = "flat2"
)

// Presets returns the built-in rules in a stable order. The first entry is
// the Default rule.
func Presets() []Preset {
	return []Preset{
		{Name: PresetDiagonal, Matrix: Default()},
		{Name: PresetLatin3, Matrix: MustNew([][]uint64{{1, 0, 2}, {0, 2, 1}, {2, 1, 0}})},
		{Name: PresetFlat2, Matrix: MustNew([][]uint64{{0, 0}, {0, 0}})},
	}
}

// LookupPreset returns the preset registered under name.
// Returns ErrUnknownPreset for unregistered names.
func LookupPreset(name string) (Matrix, error) {
	for _, p := range Presets() {
		if p.Name == name {
			return p.Matrix, nil
		}
	}

	return Matrix{}, fmt.Errorf("LookupPreset(%q): %w", name, ErrUnknownPreset)
}
