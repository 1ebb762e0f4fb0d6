package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/kilianp07/rebelay/core/metrics"
	"github.com/kilianp07/rebelay/core/model"
)

func captureServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		bodies = append(bodies, strings.TrimSpace(string(data)))
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	return srv, &bodies
}

func TestInfluxSink_RecordOptimization(t *testing.T) {
	srv, bodies := captureServer(t)
	sink := NewInfluxSink(InfluxConfig{URL: srv.URL, Token: "token", Org: "org", Bucket: "bucket"})
	defer sink.Close()

	now := time.Now()
	ev := coremetrics.OptimizationEvent{
		RunID:       "run-1",
		Direction:   model.DirectionAscent,
		RopeLength:  100,
		Cavers:      4,
		MaxRebelays: 100,
		Method:      "not-a-knot",
		Optimum:     21.6,
		MinTime:     45.1234,
		Duration:    2 * time.Millisecond,
		Time:        now,
	}
	require.NoError(t, sink.RecordOptimization(ev))

	p := write.NewPointWithMeasurement("optimization_run").
		AddTag("run_id", "run-1").
		AddTag("direction", "ascent").
		AddTag("method", "not-a-knot").
		AddTag("cavers", "4").
		AddField("rope_length_m", 100.0).
		AddField("max_rebelays", 100).
		AddField("optimum_m", 21.6).
		AddField("min_time_min", 45.123).
		AddField("duration_ms", 2.0).
		SetTime(now)
	expected := strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond))
	require.Len(t, *bodies, 1)
	assert.Equal(t, expected, (*bodies)[0])
}

func TestInfluxSink_RecordFailure(t *testing.T) {
	srv, bodies := captureServer(t)
	sink := NewInfluxSink(InfluxConfig{URL: srv.URL + "/api/v2/write", Token: "token", Org: "org", Bucket: "bucket"})
	defer sink.Close()

	now := time.Now()
	require.NoError(t, sink.RecordFailure(coremetrics.FailureEvent{
		RunID:      "run-2",
		Direction:  model.DirectionBoth,
		RopeLength: 50,
		Cavers:     0,
		Reason:     "invalid argument",
		Time:       now,
	}))
	p := write.NewPointWithMeasurement("optimization_failure").
		AddTag("run_id", "run-2").
		AddTag("direction", "both").
		AddField("rope_length_m", 50.0).
		AddField("cavers", 0).
		AddField("reason", "invalid argument").
		SetTime(now)
	require.Len(t, *bodies, 1)
	assert.Equal(t, strings.TrimSpace(write.PointToLineProtocol(p, time.Nanosecond)), (*bodies)[0])
}

func TestNewInfluxSinkWithFallback(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			called = true
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(InfluxConfig{URL: srv.URL + "/api/v2/write", Token: "tok", Org: "org", Bucket: "bucket"})
	_, isInflux := sink.(*InfluxSink)
	assert.False(t, isInflux, "expected NopSink on failing health check")
	assert.True(t, called, "health endpoint not called")
}

func TestNewInfluxSinkWithFallback_Healthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"name":"influxdb","message":"ready for queries and writes","status":"pass","checks":[]}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink := NewInfluxSinkWithFallback(InfluxConfig{URL: srv.URL, Token: "tok", Org: "org", Bucket: "bucket"})
	s, ok := sink.(*InfluxSink)
	require.True(t, ok, "expected InfluxSink, got %T", sink)
	s.Close()
}
