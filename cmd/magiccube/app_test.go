package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/magiccube/config"
	"github.com/katalvlaran/magiccube/definition"
	"github.com/katalvlaran/magiccube/fractal"
	"github.com/katalvlaran/magiccube/rule"
)

// run executes the root command with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd, a := rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := execute(cmd, a)
	return out.String(), errOut.String(), err
}

//----------------------------------------------------------------------------//
// expand
//----------------------------------------------------------------------------//

func TestExpand_JSONLines(t *testing.T) {
	out, _, err := run(t, "expand", "--depth", "1", "--format", "jsonl")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)

	var first struct {
		Scale    float64    `json:"scale"`
		Position [3]float64 `json:"position"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, 2.0, first.Scale)
	assert.Equal(t, [3]float64{0, 0, 2}, first.Position)
}

func TestExpand_Summary(t *testing.T) {
	out, _, err := run(t, "expand", "--matrix", "1,x,0|0,1", "--depth", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "rule:        1,0|0,1")
	assert.Contains(t, out, "depth:       2")
	assert.Contains(t, out, "leaves:      16")
	assert.Contains(t, out, "leaf scale:  1")
	assert.Contains(t, out, "bounds min:")
}

func TestExpand_DebugTrace(t *testing.T) {
	_, stderr, err := run(t, "--log-level", "debug", "expand", "--depth", "1")
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(stderr, "msg=placement"))
	assert.Contains(t, stderr, "expansion done")

	_, stderr, err = run(t, "expand", "--depth", "1")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "msg=placement")
}

func TestExpand_SummaryBounds(t *testing.T) {
	out, _, err := run(t, "expand", "--depth", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "bounds min:  (-1, -1, -1)")
	assert.Contains(t, out, "bounds max:  (3, 3, 3)")
	assert.Contains(t, out, "center:      (1, 1, 1)")
	assert.Contains(t, out, "size:        (4, 4, 4)")
}

func TestExpand_StrictRejectsMalformed(t *testing.T) {
	_, _, err := run(t, "expand", "--matrix", "1,x|2", "--strict")
	assert.ErrorIs(t, err, rule.ErrMalformedToken)
}

func TestExpand_DepthOutOfRange(t *testing.T) {
	_, stderr, err := run(t, "expand", "--depth", "9")
	assert.ErrorIs(t, err, definition.ErrInvalidDepth)
	assert.Contains(t, stderr, "edit rejected")
}

func TestExpand_TooLarge(t *testing.T) {
	_, _, err := run(t, "expand", "--preset", "latin3", "--depth", "8")
	assert.ErrorIs(t, err, fractal.ErrExpansionTooLarge)

	_, _, err = run(t, "expand", "--depth", "3", "--max-leaves", "10")
	assert.ErrorIs(t, err, fractal.ErrExpansionTooLarge)
}

func TestExpand_UnknownFormat(t *testing.T) {
	_, _, err := run(t, "expand", "--format", "stl")
	assert.ErrorContains(t, err, "unknown format")
}

func TestExpand_OBJFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.obj")
	out, _, err := run(t, "expand", "--depth", "1", "--format", "obj", "--out", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "# magiccube rule 1,0|0,1 depth 1\n"))
	assert.Equal(t, 4, strings.Count(text, "\no cube_"))
	assert.Equal(t, 32, strings.Count(text, "\nv "))
	assert.Equal(t, 24, strings.Count(text, "\nf "))
}

func TestExpand_FailureKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keep.obj")
	require.NoError(t, os.WriteFile(path, []byte("precious"), 0644))

	cases := []struct {
		name string
		args []string
		want error
	}{
		{"UnknownFormat", []string{"--format", "bogus"}, nil},
		{"TooLarge", []string{"--preset", "latin3", "--depth", "8", "--format", "obj"}, fractal.ErrExpansionTooLarge},
		{"BadDepth", []string{"--depth", "9", "--format", "obj"}, definition.ErrInvalidDepth},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"expand", "--out", path}, tc.args...)
			_, _, err := run(t, args...)
			require.Error(t, err)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
			}

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "precious", string(data))

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "no temporary files left behind")
		})
	}
}

func TestExpand_ReplacesFileOnSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cubes.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0644))

	_, _, err := run(t, "expand", "--depth", "1", "--format", "jsonl", "--out", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
	assert.Equal(t, 4, strings.Count(string(data), "\n"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestExpand_EnvOverride(t *testing.T) {
	t.Setenv("MAGICCUBE_DEPTH", "1")
	out, _, err := run(t, "expand")
	require.NoError(t, err)
	assert.Contains(t, out, "leaves:      4")
}

func TestExpand_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "magiccube.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fractal:\n  matrix: \"1\"\n  depth: 3\n"), 0644))

	out, _, err := run(t, "--config", path, "expand")
	require.NoError(t, err)
	assert.Contains(t, out, "leaves:      1")
	assert.Contains(t, out, "leaf scale:  4")
}

func TestExpand_MetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "magiccube.prom")
	_, _, err := run(t, "--metrics-file", path, "expand", "--depth", "1")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "magiccube_leaves_emitted_total 4")
	assert.Contains(t, string(data), `magiccube_expansions_total{outcome="ok"} 1`)
}

func TestExpand_MetricsFileOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "magiccube.prom")
	_, _, err := run(t, "--metrics-file", path, "expand", "--preset", "latin3", "--depth", "8")
	require.ErrorIs(t, err, fractal.ErrExpansionTooLarge)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `magiccube_expansions_total{outcome="too_large"} 1`)

	_, _, err = run(t, "--metrics-file", path, "expand", "--depth", "9")
	require.ErrorIs(t, err, definition.ErrInvalidDepth)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `magiccube_edits_total{field="depth",outcome="rejected"} 1`)
}

func TestMetricsFile_SkippedWhenSetupFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "magiccube.prom")
	t.Setenv("MAGICCUBE_DEPTH", "deep")

	_, _, err := run(t, "--metrics-file", path, "expand")
	require.Error(t, err)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

//----------------------------------------------------------------------------//
// count, config, fmt, presets, version
//----------------------------------------------------------------------------//

func TestCount(t *testing.T) {
	out, _, err := run(t, "count", "--preset", "latin3", "--depth", "8")
	require.NoError(t, err)

	assert.Contains(t, out, "dimension:   3")
	assert.Contains(t, out, "branching:   9")
	assert.Contains(t, out, "leaves:      43046721")
	assert.Contains(t, out, "within limit: false")
}

func TestCount_Jagged(t *testing.T) {
	out, _, err := run(t, "count", "--matrix", "1,2|3", "--depth", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "square:      false")
	assert.Contains(t, out, "row lengths: 2,1")
	assert.Contains(t, out, "leaves:      9")

	out, _, err = run(t, "count")
	require.NoError(t, err)
	assert.Contains(t, out, "square:      true")
	assert.NotContains(t, out, "row lengths")
}

func TestConfig(t *testing.T) {
	t.Setenv("MAGICCUBE_DEPTH", "2")

	out, _, err := run(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "depth: 2")
	assert.Contains(t, out, "max_leaves: 1000000")

	path := filepath.Join(t.TempDir(), "saved", "magiccube.yaml")
	_, _, err = run(t, "config", "--out", path)
	require.NoError(t, err)

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Fractal.Depth)
	assert.Equal(t, "1,0|0,1", cfg.Fractal.Matrix)
}

func TestFmt(t *testing.T) {
	out, _, err := run(t, "fmt", " 1, x ,2 | | 3 ")
	require.NoError(t, err)
	assert.Equal(t, "1,2||3\n", out)

	_, _, err = run(t, "fmt", "   ")
	assert.ErrorIs(t, err, rule.ErrInvalidMatrix)

	_, _, err = run(t, "fmt", "--strict", "1,-2")
	assert.ErrorIs(t, err, rule.ErrMalformedToken)
}

func TestPresets(t *testing.T) {
	out, _, err := run(t, "presets")
	require.NoError(t, err)
	for _, p := range rule.Presets() {
		assert.Contains(t, out, p.Name)
		assert.Contains(t, out, rule.Encode(p.Matrix))
	}
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)
}

func TestVersion_IgnoresBrokenConfig(t *testing.T) {
	t.Setenv("MAGICCUBE_DEPTH", "deep")
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)

	_, _, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "version")
	assert.NoError(t, err)

	_, _, err = run(t, "expand")
	assert.Error(t, err)
}
