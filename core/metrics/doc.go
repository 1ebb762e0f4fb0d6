// Package metrics defines the sinks that observe optimizer runs. Sinks such
// as the Prometheus, InfluxDB and MQTT implementations in infra/metrics record
// an OptimizationEvent per successful run and, when they implement
// FailureRecorder, a FailureEvent per rejected one. Several configured sinks
// are combined into a MultiSink by NewMetricsSink.
package metrics
