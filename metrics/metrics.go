// SPDX-License-Identifier: MIT

// Package metrics instruments the fractal definition slot with Prometheus
// collectors. A nil *Metrics is valid and records nothing.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/magiccube/fractal"
)

// Expansion outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeTooLarge  = "too_large"
	OutcomeEmpty     = "empty"
	OutcomeInvalid   = "invalid"
	OutcomeSinkError = "sink_error"
)

// Edit outcomes.
const (
	EditAccepted = "accepted"
	EditRejected = "rejected"
)

// Metrics provides observability for fractal expansion and configuration edits.
type Metrics struct {
	// Expansions by outcome
	Expansions *prometheus.CounterVec

	// Leaves handed to sinks
	LeavesEmitted prometheus.Counter

	// Duration of successful expansions
	ExpansionLatency prometheus.Histogram

	// Configuration edits by field and outcome
	Edits *prometheus.CounterVec
}

// New creates the collectors and registers them on reg. A nil reg leaves
// them unregistered, which is handy in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Expansions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "magiccube_expansions_total",
			Help: "Total fractal expansions by outcome",
		}, []string{"outcome"}), // outcome: ok, too_large, empty, invalid, sink_error

		LeavesEmitted: f.NewCounter(prometheus.CounterOpts{
			Name: "magiccube_leaves_emitted_total",
			Help: "Total leaf placements handed to sinks",
		}),

		ExpansionLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "magiccube_expansion_duration_seconds",
			Help:    "Duration of complete fractal expansions",
			Buckets: []float64{0.0001, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),

		Edits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "magiccube_edits_total",
			Help: "Configuration edits by field and outcome",
		}, []string{"field", "outcome"}), // field: depth, matrix
	}
}

// EditAccepted records an applied edit of field.
func (m *Metrics) EditAccepted(field string) {
	if m != nil {
		m.Edits.WithLabelValues(field, EditAccepted).Inc()
	}
}

// EditRejected records a rejected edit of field.
func (m *Metrics) EditRejected(field string, _ error) {
	if m != nil {
		m.Edits.WithLabelValues(field, EditRejected).Inc()
	}
}

// ExpansionDone records a successful expansion of leaves placements.
func (m *Metrics) ExpansionDone(leaves int, d time.Duration) {
	if m != nil {
		m.Expansions.WithLabelValues(OutcomeOK).Inc()
		m.LeavesEmitted.Add(float64(leaves))
		m.ExpansionLatency.Observe(d.Seconds())
	}
}

// ExpansionFailed records a failed expansion, classified by its error.
func (m *Metrics) ExpansionFailed(err error) {
	if m != nil {
		m.Expansions.WithLabelValues(Outcome(err)).Inc()
	}
}

// Outcome maps an expansion error to its outcome label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, fractal.ErrExpansionTooLarge):
		return OutcomeTooLarge
	case errors.Is(err, fractal.ErrEmptyRuleMatrix):
		return OutcomeEmpty
	case errors.Is(err, fractal.ErrSinkFailed):
		return OutcomeSinkError
	default:
		return OutcomeInvalid
	}
}

// WriteTextfile gathers g and writes it to path in the text exposition
// format, for the node exporter textfile collector.
func WriteTextfile(g prometheus.Gatherer, path string) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("metrics: write textfile: %w", err)
	}

	return nil
}
