// Package study compares optimum rebelay spacing across party sizes.
package study

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/kilianp07/rebelay/core/model"
	"github.com/kilianp07/rebelay/core/optimizer"
)

// Row holds the optimum section lengths in meters for one party size.
type Row struct {
	Cavers  int     `json:"cavers"`
	Ascent  float64 `json:"ascent"`
	Descent float64 `json:"descent"`
	Both    float64 `json:"both"`
}

// Run computes a Row for every party size from 1 to maxCavers. Party sizes
// are evaluated concurrently, at most workers at a time (unbounded when
// workers <= 0). Rows are ordered by caver count. The first failure cancels
// the remaining work and is returned.
func Run(ctx context.Context, ropeLength float64, maxCavers int, opts optimizer.RoundTripOptions, workers int) ([]Row, error) {
	if maxCavers < 1 {
		return nil, fmt.Errorf("%w: max cavers must be at least 1, got %d", model.ErrInvalidArgument, maxCavers)
	}
	rows := make([]Row, maxCavers)
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := range rows {
		cavers := i + 1
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row, err := Compute(ropeLength, cavers, opts)
			if err != nil {
				return fmt.Errorf("cavers=%d: %w", cavers, err)
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// Compute returns the ascent, descent and combined optimum for one party size.
func Compute(ropeLength float64, cavers int, opts optimizer.RoundTripOptions) (Row, error) {
	up, err := optimizer.FindOptimumRebelayLength(ropeLength, cavers, opts.Single(model.DirectionAscent))
	if err != nil {
		return Row{}, err
	}
	down, err := optimizer.FindOptimumRebelayLength(ropeLength, cavers, opts.Single(model.DirectionDescent))
	if err != nil {
		return Row{}, err
	}
	both, err := optimizer.FindOptimumRebelayLengthBothWays(ropeLength, cavers, opts)
	if err != nil {
		return Row{}, err
	}
	return Row{Cavers: cavers, Ascent: up, Descent: down, Both: both}, nil
}
