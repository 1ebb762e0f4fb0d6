package metrics

import (
	"time"

	"github.com/kilianp07/rebelay/core/model"
)

// OptimizationEvent describes one completed optimizer run.
type OptimizationEvent struct {
	RunID       string
	Direction   model.Direction
	RopeLength  float64
	Cavers      int
	MaxRebelays int
	Method      string
	Optimum     float64
	MinTime     float64
	Duration    time.Duration
	Time        time.Time
}

// MetricsSink records optimizer runs for observability purposes.
type MetricsSink interface {
	RecordOptimization(ev OptimizationEvent) error
}

// FailureEvent captures a run rejected by the optimizer.
type FailureEvent struct {
	RunID      string
	Direction  model.Direction
	RopeLength float64
	Cavers     int
	Method     string
	Reason     string
	Time       time.Time
}

// FailureRecorder records rejected runs.
type FailureRecorder interface {
	RecordFailure(ev FailureEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordOptimization(OptimizationEvent) error { return nil }

func (NopSink) RecordFailure(FailureEvent) error { return nil }
