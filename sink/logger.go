// SPDX-License-Identifier: MIT

package sink

import (
	"context"
	"log/slog"

	"github.com/katalvlaran/magiccube/fractal"
)

// Logger writes one record per placement through a *slog.Logger.
type Logger struct {
	log   *slog.Logger
	level slog.Level
	n     int
}

// NewLogger returns a Logger emitting at level. A nil logger falls back to
// slog.Default().
func NewLogger(l *slog.Logger, level slog.Level) *Logger {
	if l == nil {
		l = slog.Default()
	}

	return &Logger{log: l, level: level}
}

// Receive logs p with its emission index.
func (l *Logger) Receive(p fractal.Placement) error {
	l.log.LogAttrs(context.Background(), l.level, "placement",
		slog.Int("index", l.n),
		slog.Float64("scale", p.Scale),
		slog.Float64("x", p.Position.X),
		slog.Float64("y", p.Position.Y),
		slog.Float64("z", p.Position.Z),
	)
	l.n++

	return nil
}
