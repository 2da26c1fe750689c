// SPDX-License-Identifier: MIT
package rule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/magiccube/rule"
)

// TestPresets checks ordering, square shape and lookup of built-in rules.
func TestPresets(t *testing.T) {
	ps := rule.Presets()
	require.Len(t, ps, 3)
	assert.Equal(t, rule.PresetDiagonal, ps[0].Name)
	assert.True(t, ps[0].Matrix.Equal(rule.Default()))

	for _, p := range ps {
		assert.True(t, p.Matrix.IsSquare(), p.Name)
		got, err := rule.LookupPreset(p.Name)
		require.NoError(t, err)
		assert.True(t, got.Equal(p.Matrix), p.Name)
	}

	latin, err := rule.LookupPreset(rule.PresetLatin3)
	require.NoError(t, err)
	assert.Equal(t, "1,0,2|0,2,1|2,1,0", latin.String())

	_, err = rule.LookupPreset("menger")
	assert.ErrorIs(t, err, rule.ErrUnknownPreset)
}
