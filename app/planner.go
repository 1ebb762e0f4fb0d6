package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	coremetrics "github.com/kilianp07/rebelay/core/metrics"
	"github.com/kilianp07/rebelay/core/model"
	"github.com/kilianp07/rebelay/core/optimizer"
	"github.com/kilianp07/rebelay/core/study"
	"github.com/kilianp07/rebelay/core/timing"
	"github.com/kilianp07/rebelay/infra/logger"
)

// Planner runs the timing model and the optimizer on behalf of the CLI and
// the HTTP API, logging every run and reporting it to a metrics sink.
type Planner struct {
	defaults optimizer.RoundTripOptions
	workers  int
	sink     coremetrics.MetricsSink
	log      logger.Logger
	now      func() time.Time
}

// NewPlanner creates a Planner. A nil sink records nothing and a nil logger
// discards output.
func NewPlanner(defaults optimizer.RoundTripOptions, workers int, sink coremetrics.MetricsSink, log logger.Logger) *Planner {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Planner{defaults: defaults, workers: workers, sink: sink, log: log, now: time.Now}
}

// Defaults returns the configured optimizer options.
func (p *Planner) Defaults() optimizer.RoundTripOptions { return p.defaults }

// TotalTime evaluates the timing model.
func (p *Planner) TotalTime(params timing.Params) (float64, error) {
	t, err := timing.TotalTime(params)
	if err != nil {
		return 0, err
	}
	p.log.Debugw("total time", map[string]any{
		"rope_length": params.RopeLength,
		"cavers":      params.Cavers,
		"rebelays":    params.Rebelays,
		"speed":       params.Speed,
		"total_time":  t,
	})
	return t, nil
}

// Optimize finds the optimum spacing for one direction, or for the round
// trip when d is DirectionBoth.
func (p *Planner) Optimize(d model.Direction, ropeLength float64, cavers int, opts optimizer.RoundTripOptions) (optimizer.Result, error) {
	runID := uuid.NewString()
	start := p.now()
	var (
		res optimizer.Result
		err error
	)
	switch d {
	case model.DirectionAscent, model.DirectionDescent:
		res, err = optimizer.Optimize(ropeLength, cavers, opts.Single(d))
	case model.DirectionBoth:
		res, err = optimizer.OptimizeRoundTrip(ropeLength, cavers, opts)
	default:
		err = fmt.Errorf("%w: unknown direction %d", model.ErrInvalidArgument, d)
	}
	if err != nil {
		p.log.Warnf("optimization %s rejected: %v", runID, err)
		if rec, ok := p.sink.(coremetrics.FailureRecorder); ok {
			if rerr := rec.RecordFailure(coremetrics.FailureEvent{
				RunID:      runID,
				Direction:  d,
				RopeLength: ropeLength,
				Cavers:     cavers,
				Method:     opts.Method,
				Reason:     err.Error(),
				Time:       start,
			}); rerr != nil {
				p.log.Errorf("record failure: %v", rerr)
			}
		}
		return optimizer.Result{}, err
	}
	elapsed := p.now().Sub(start)
	p.log.Infow("optimum found", map[string]any{
		"run_id":      runID,
		"direction":   d.String(),
		"rope_length": ropeLength,
		"cavers":      cavers,
		"method":      res.Method,
		"optimum":     res.Optimum,
		"min_time":    res.MinTime,
		"duration_ms": elapsed.Milliseconds(),
	})
	if rerr := p.sink.RecordOptimization(coremetrics.OptimizationEvent{
		RunID:       runID,
		Direction:   d,
		RopeLength:  ropeLength,
		Cavers:      cavers,
		MaxRebelays: len(res.Samples),
		Method:      res.Method,
		Optimum:     res.Optimum,
		MinTime:     res.MinTime,
		Duration:    elapsed,
		Time:        start,
	}); rerr != nil {
		p.log.Errorf("record optimization: %v", rerr)
	}
	return res, nil
}

// Study runs the caver study with the planner's worker bound.
func (p *Planner) Study(ctx context.Context, ropeLength float64, maxCavers int, opts optimizer.RoundTripOptions) ([]study.Row, error) {
	start := p.now()
	rows, err := study.Run(ctx, ropeLength, maxCavers, opts, p.workers)
	if err != nil {
		p.log.Warnf("caver study failed: %v", err)
		return nil, err
	}
	p.log.Infof("caver study for %g m up to %d cavers done in %s", ropeLength, maxCavers, p.now().Sub(start))
	return rows, nil
}
