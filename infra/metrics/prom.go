package metrics

import (
	coremetrics "github.com/kilianp07/rebelay/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records optimizer runs in Prometheus metrics.
type PromSink struct {
	runs     *prometheus.CounterVec
	failures *prometheus.CounterVec
	optimum  *prometheus.HistogramVec
	duration *prometheus.HistogramVec
	last     *prometheus.GaugeVec
}

// NewPromSink registers optimizer metrics on the default Prometheus registerer.
// The metrics endpoint is served separately, see StartPromServer.
func NewPromSink() (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rebelay_optimizations_total",
		Help: "Total number of completed optimizer runs",
	}, []string{"direction", "method"})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rebelay_optimization_failures_total",
		Help: "Total number of rejected optimizer runs",
	}, []string{"direction"})
	optimum := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rebelay_optimum_length_meters",
		Help:    "Optimum rebelay spacing returned by the optimizer",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{"direction"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rebelay_optimization_duration_seconds",
		Help:    "Wall time spent in one optimizer run",
		Buckets: prometheus.DefBuckets,
	}, []string{"direction"})
	last := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "rebelay_last_min_time_minutes",
		Help: "Minimum total time found by the latest optimizer run",
	}, []string{"direction"})

	var err error
	if runs, err = register(reg, runs); err != nil {
		return nil, err
	}
	if failures, err = register(reg, failures); err != nil {
		return nil, err
	}
	if optimum, err = register(reg, optimum); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if last, err = register(reg, last); err != nil {
		return nil, err
	}
	return &PromSink{runs: runs, failures: failures, optimum: optimum, duration: duration, last: last}, nil
}

// register returns the collector already registered under the same
// descriptor when there is one.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordOptimization updates the run counter and histograms.
func (s *PromSink) RecordOptimization(ev coremetrics.OptimizationEvent) error {
	dir := ev.Direction.String()
	s.runs.WithLabelValues(dir, ev.Method).Inc()
	s.optimum.WithLabelValues(dir).Observe(ev.Optimum)
	s.duration.WithLabelValues(dir).Observe(ev.Duration.Seconds())
	s.last.WithLabelValues(dir).Set(ev.MinTime)
	return nil
}

// RecordFailure increments the failure counter.
func (s *PromSink) RecordFailure(ev coremetrics.FailureEvent) error {
	s.failures.WithLabelValues(ev.Direction.String()).Inc()
	return nil
}
