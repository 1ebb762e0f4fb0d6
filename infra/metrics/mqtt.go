package metrics

import (
	"time"

	coremetrics "github.com/kilianp07/rebelay/core/metrics"
	"github.com/kilianp07/rebelay/infra/mqtt"
)

type jsonPublisher interface {
	Topic(parts ...string) string
	PublishJSON(topic string, v any) error
}

// MQTTSink publishes every optimizer run as a JSON document on
// <prefix>/optimum/<direction> and failures on <prefix>/failure/<direction>.
type MQTTSink struct {
	pub jsonPublisher
}

// NewMQTTSink connects a publisher with cfg and wraps it in a sink.
func NewMQTTSink(cfg mqtt.Config) (*MQTTSink, error) {
	pub, err := mqtt.NewPublisher(cfg)
	if err != nil {
		return nil, err
	}
	return &MQTTSink{pub: pub}, nil
}

type optimumMessage struct {
	RunID       string    `json:"run_id"`
	Direction   string    `json:"direction"`
	RopeLength  float64   `json:"rope_length"`
	Cavers      int       `json:"cavers"`
	MaxRebelays int       `json:"max_rebelays"`
	Method      string    `json:"method"`
	Optimum     float64   `json:"optimum"`
	MinTime     float64   `json:"min_time"`
	DurationMS  float64   `json:"duration_ms"`
	Timestamp   time.Time `json:"timestamp"`
}

type failureMessage struct {
	RunID      string    `json:"run_id"`
	Direction  string    `json:"direction"`
	RopeLength float64   `json:"rope_length"`
	Cavers     int       `json:"cavers"`
	Reason     string    `json:"reason"`
	Timestamp  time.Time `json:"timestamp"`
}

// RecordOptimization publishes the run result.
func (s *MQTTSink) RecordOptimization(ev coremetrics.OptimizationEvent) error {
	dir := ev.Direction.String()
	return s.pub.PublishJSON(s.pub.Topic("optimum", dir), optimumMessage{
		RunID:       ev.RunID,
		Direction:   dir,
		RopeLength:  ev.RopeLength,
		Cavers:      ev.Cavers,
		MaxRebelays: ev.MaxRebelays,
		Method:      ev.Method,
		Optimum:     ev.Optimum,
		MinTime:     round3(ev.MinTime),
		DurationMS:  round3(ev.Duration.Seconds() * 1000),
		Timestamp:   ev.Time,
	})
}

// RecordFailure publishes the rejection reason.
func (s *MQTTSink) RecordFailure(ev coremetrics.FailureEvent) error {
	dir := ev.Direction.String()
	return s.pub.PublishJSON(s.pub.Topic("failure", dir), failureMessage{
		RunID:      ev.RunID,
		Direction:  dir,
		RopeLength: ev.RopeLength,
		Cavers:     ev.Cavers,
		Reason:     ev.Reason,
		Timestamp:  ev.Time,
	})
}
