// Package main provides the magiccube binary entry point.
// magiccube expands a cube fractal from a text rule matrix and writes the
// leaf cubes as JSON lines, a Wavefront OBJ mesh, or a summary.
package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "magiccube"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := execute(rootCmd()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// execute runs cmd and then flushes end-of-run state such as the metrics
// textfile. Cobra skips post-run hooks when RunE fails, so this happens here.
func execute(cmd *cobra.Command, a *app) error {
	err := cmd.Execute()

	return errors.Join(err, a.teardown())
}

func rootCmd() (*cobra.Command, *app) {
	a := &app{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Parametric cube fractal expander",
		Long: `magiccube recursively subdivides a cube according to a rule matrix.

The rule is written as text: rows separated by "|", elements by ",".
Row count N splits each cube into N slices along X, each row's length
gives the slices along Y, and each value lifts the child along Z.

  magiccube expand --matrix "1,0|0,1" --depth 3 --format obj --out cube.obj
  magiccube count --preset latin3 --depth 6`,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup(cmd) },
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides config")
	cmd.PersistentFlags().StringVar(&a.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile on exit")

	cmd.AddCommand(expandCmd(a), countCmd(a), configCmd(a), fmtCmd(), presetsCmd())

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Skips config loading.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd, a
}
