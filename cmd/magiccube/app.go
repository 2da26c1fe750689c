package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/magiccube/config"
	"github.com/katalvlaran/magiccube/definition"
	"github.com/katalvlaran/magiccube/fractal"
	"github.com/katalvlaran/magiccube/metrics"
	"github.com/katalvlaran/magiccube/rule"
	"github.com/katalvlaran/magiccube/sink"
)

// Output formats for expand.
const (
	formatJSONL   = "jsonl"
	formatOBJ     = "obj"
	formatSummary = "summary"
)

// app carries state shared by subcommands for one invocation.
type app struct {
	configPath  string
	logLevel    string
	metricsFile string

	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

// defFlags are the definition edits shared by expand and count.
type defFlags struct {
	matrix    string
	preset    string
	depth     int
	scale     float64
	maxLeaves uint64
	strict    bool
}

func (f *defFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.matrix, "matrix", "m", "", `Rule matrix text, e.g. "1,0|0,1"`)
	cmd.Flags().StringVarP(&f.preset, "preset", "p", "", "Named rule matrix (see presets)")
	cmd.Flags().IntVarP(&f.depth, "depth", "d", 0, "Subdivision depth")
	cmd.Flags().Float64Var(&f.scale, "scale", definition.DefaultBaseScale, "Edge length of the root cube")
	cmd.Flags().Uint64Var(&f.maxLeaves, "max-leaves", fractal.DefaultMaxLeaves, "Refuse expansions with more leaves")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Reject malformed matrix tokens instead of dropping them")
	cmd.MarkFlagsMutuallyExclusive("matrix", "preset")
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return fmt.Errorf("log level %q: %w", cfg.Log.Level, err)
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)
	a.registry = prometheus.NewRegistry()
	a.metrics = metrics.New(a.registry)

	return nil
}

// teardown writes the metrics textfile. It is a no-op when setup never ran.
func (a *app) teardown() error {
	if a.metricsFile == "" || a.registry == nil {
		return nil
	}
	if err := metrics.WriteTextfile(a.registry, a.metricsFile); err != nil {
		return err
	}
	a.logger.Debug("metrics written", "path", a.metricsFile)

	return nil
}

// newSlot builds the definition slot from configuration, then applies the
// command-line edits through the same surface an interactive editor uses.
func (a *app) newSlot(cmd *cobra.Command, f *defFlags) (*definition.Slot, error) {
	if cmd.Flags().Changed("scale") {
		a.cfg.Fractal.BaseScale = f.scale
	}
	if cmd.Flags().Changed("max-leaves") {
		a.cfg.Limits.MaxLeaves = f.maxLeaves
	}
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}

	opts, err := a.cfg.SlotOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, definition.WithLogger(a.logger), definition.WithObserver(a.metrics))
	slot, err := definition.NewSlot(opts...)
	if err != nil {
		return nil, err
	}

	switch {
	case f.preset != "":
		m, err := rule.LookupPreset(f.preset)
		if err != nil {
			return nil, err
		}
		if err := slot.SetMatrix(m); err != nil {
			return nil, err
		}
	case f.matrix != "" && f.strict:
		m, err := rule.DecodeStrict(f.matrix)
		if err != nil {
			return nil, err
		}
		if err := slot.SetMatrix(m); err != nil {
			return nil, err
		}
	case cmd.Flags().Changed("matrix"):
		if err := slot.SetMatrixFromText(f.matrix); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("depth") {
		if err := slot.SetDepth(f.depth); err != nil {
			return nil, err
		}
	}

	return slot, nil
}

func expandCmd(a *app) *cobra.Command {
	var (
		f      defFlags
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Expand the fractal and write its leaf cubes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if err := checkFormat(format); err != nil {
				return err
			}
			slot, err := a.newSlot(cmd, &f)
			if err != nil {
				return err
			}
			trace := sink.NewLogger(a.logger, slog.LevelDebug)

			if out == "" || out == "-" {
				return runExpand(slot, format, cmd.OutOrStdout(), trace)
			}
			return writeFile(out, func(w io.Writer) error {
				return runExpand(slot, format, w, trace)
			})
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", formatSummary, "Output format: jsonl, obj, summary")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")

	return cmd
}

func checkFormat(format string) error {
	switch format {
	case formatJSONL, formatOBJ, formatSummary:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want %s, %s or %s)", format, formatJSONL, formatOBJ, formatSummary)
	}
}

// writeFile runs fn against a temporary file next to path and renames it over
// path only when fn and the close succeed. On failure path is left untouched.
func writeFile(path string, fn func(w io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = fn(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(0644); err != nil {
		return fmt.Errorf("chmod output: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename output: %w", err)
	}

	return nil
}

// runExpand writes the leaves of one snapshot of the slot to w in format.
// trace sees every placement too; it logs at Debug.
func runExpand(slot *definition.Slot, format string, w io.Writer, trace fractal.Sink) error {
	switch format {
	case formatJSONL:
		j := sink.NewJSONLines(w)
		if _, _, err := slot.ExpandSnapshot(func(definition.Definition) fractal.Sink {
			return sink.Multi(j, trace)
		}); err != nil {
			return err
		}
		return j.Flush()

	case formatOBJ:
		var o *sink.OBJ
		if _, _, err := slot.ExpandSnapshot(func(d definition.Definition) fractal.Sink {
			o = sink.NewOBJ(w, fmt.Sprintf("magiccube rule %s depth %d", rule.Encode(d.Matrix), d.Depth))
			return sink.Multi(o, trace)
		}); err != nil {
			return err
		}
		return o.Close()

	case formatSummary:
		var b sink.Bounds
		def, n, err := slot.ExpandSnapshot(func(definition.Definition) fractal.Sink {
			return sink.Multi(&b, trace)
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "rule:        %s\n", rule.Encode(def.Matrix))
		fmt.Fprintf(w, "depth:       %d\n", def.Depth)
		fmt.Fprintf(w, "leaves:      %d\n", n)
		fmt.Fprintf(w, "leaf scale:  %g\n", fractal.LeafScale(slot.BaseScale(), def.Matrix, def.Depth))
		if !b.Empty() {
			fmt.Fprintf(w, "bounds min:  %s\n", formatVec(b.Min))
			fmt.Fprintf(w, "bounds max:  %s\n", formatVec(b.Max))
			fmt.Fprintf(w, "center:      %s\n", formatVec(b.Center()))
			fmt.Fprintf(w, "size:        %s\n", formatVec(b.Size()))
		}
		return nil

	default:
		return checkFormat(format)
	}
}

func countCmd(a *app) *cobra.Command {
	var f defFlags

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Print the projected leaf count without expanding",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := a.newSlot(cmd, &f)
			if err != nil {
				return err
			}
			p := slot.Projection()
			m := slot.Current().Matrix
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "dimension:   %d\n", p.Dimension)
			fmt.Fprintf(w, "square:      %t\n", m.IsSquare())
			if !m.IsSquare() {
				fmt.Fprintf(w, "row lengths: %s\n", rowLengths(m))
			}
			fmt.Fprintf(w, "branching:   %d\n", p.Branching)
			fmt.Fprintf(w, "depth:       %d\n", p.Depth)
			if p.Overflow {
				fmt.Fprintf(w, "leaves:      overflow\n")
			} else {
				fmt.Fprintf(w, "leaves:      %d\n", p.Leaves)
			}
			fmt.Fprintf(w, "leaf scale:  %g\n", p.LeafScale)
			fmt.Fprintf(w, "within limit: %t\n", !p.Overflow && p.Leaves <= a.cfg.Limits.MaxLeaves)
			return nil
		},
	}
	f.register(cmd)

	return cmd
}

func rowLengths(m rule.Matrix) string {
	lens := make([]string, m.Dimension())
	for i := range lens {
		lens[i] = strconv.Itoa(m.RowLen(i))
	}

	return strings.Join(lens, ",")
}

func configCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML, or save it with --out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			if out != "" {
				return a.cfg.SaveToFile(out)
			}
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the configuration to this file")

	return cmd
}

func fmtCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "fmt TEXT",
		Short: "Print the canonical form of a rule matrix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			decode := rule.Decode
			if strict {
				decode = rule.DecodeStrict
			}
			m, err := decode(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rule.Encode(m))
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject malformed tokens instead of dropping them")

	return cmd
}

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List built-in rule matrices",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range rule.Presets() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", p.Name, rule.Encode(p.Matrix))
			}
		},
	}
}

func formatVec(v fractal.Vec3) string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
