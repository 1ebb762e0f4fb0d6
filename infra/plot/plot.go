// Package plot renders optimizer results with gonum/plot.
package plot

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/kilianp07/rebelay/core/model"
	"github.com/kilianp07/rebelay/core/optimizer"
	"github.com/kilianp07/rebelay/core/study"
)

var (
	ascentColor  = color.RGBA{R: 0xFF, A: 0xFF}
	bothColor    = color.RGBA{A: 0xFF}
	descentColor = color.RGBA{G: 0x37, B: 0xFF, A: 0xFF}
	markerColor  = color.RGBA{R: 0xFF, A: 0xFF}
	dashes       = []vg.Length{vg.Points(4), vg.Points(3)}
)

func directionLabel(d model.Direction) string {
	switch d {
	case model.DirectionDescent:
		return "Descent"
	case model.DirectionBoth:
		return "Round-trip"
	default:
		return "Ascent"
	}
}

// TimeCurve plots the total time of every swept rebelay count against its
// section length and marks the optimum with a dashed vertical line.
func TimeCurve(res optimizer.Result) (*plot.Plot, error) {
	if len(res.Samples) == 0 {
		return nil, fmt.Errorf("%w: no samples to plot", model.ErrInvalidArgument)
	}
	xys := make(plotter.XYs, len(res.Samples))
	times := make([]float64, len(res.Samples))
	for i, s := range res.Samples {
		xys[i].X = s.SectionLength
		xys[i].Y = s.Time
		times[i] = s.Time
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	ymin := 0.9 * floats.Min(times)
	ymax := res.Samples[0].Time
	if ymax <= ymin {
		ymax = floats.Max(times)
	}

	marker, err := plotter.NewLine(plotter.XYs{{X: res.Optimum, Y: ymin}, {X: res.Optimum, Y: ymax}})
	if err != nil {
		return nil, err
	}
	marker.Color = markerColor
	marker.Dashes = dashes

	leg := directionLabel(res.Direction)
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s time vs. Rebelay length (caver group size: %d)", leg, res.Cavers)
	p.X.Label.Text = "Rebelay length (meters)"
	p.Y.Label.Text = leg + " time (minutes)"
	p.Add(line, marker)
	p.Legend.Top = true
	p.Legend.Add(fmt.Sprintf("Optimum rebelay length: %.1f meters", res.Optimum), marker)

	p.X.Min, p.X.Max = 0, res.RopeLength
	p.Y.Min, p.Y.Max = ymin, ymax
	return p, nil
}

// CaverStudy plots the optimum spacing of each direction against the party
// size.
func CaverStudy(ropeLength float64, rows []study.Row) (*plot.Plot, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no study rows to plot", model.ErrInvalidArgument)
	}
	if ropeLength <= 0 {
		return nil, fmt.Errorf("%w: rope length must be positive", model.ErrInvalidArgument)
	}
	series := []struct {
		name  string
		color color.Color
		shape draw.GlyphDrawer
		value func(study.Row) float64
	}{
		{"Ascent", ascentColor, draw.TriangleGlyph{}, func(r study.Row) float64 { return r.Ascent }},
		{"Both", bothColor, draw.BoxGlyph{}, func(r study.Row) float64 { return r.Both }},
		{"Descent", descentColor, draw.PyramidGlyph{}, func(r study.Row) float64 { return r.Descent }},
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Rope Length = %g m", ropeLength)
	p.X.Label.Text = "Number of cavers"
	p.Y.Label.Text = "Best rebelay length (m)"

	grid := plotter.NewGrid()
	grid.Vertical.Dashes = dashes
	grid.Horizontal.Dashes = dashes
	p.Add(grid)

	for _, s := range series {
		xys := make(plotter.XYs, len(rows))
		for i, r := range rows {
			xys[i].X = float64(r.Cavers)
			xys[i].Y = s.value(r)
		}
		sc, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Color = s.color
		sc.GlyphStyle.Shape = s.shape
		sc.GlyphStyle.Radius = vg.Points(4)
		p.Add(sc)
		p.Legend.Add(s.name, sc)
	}
	p.Y.Min, p.Y.Max = 0, ropeLength
	return p, nil
}

var formats = map[string]bool{"png": true, "svg": true, "pdf": true, "eps": true, "jpg": true, "jpeg": true, "tif": true, "tiff": true}

// ErrUnsupportedFormat is returned by Save for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Save writes p to path. The format follows the file extension.
func Save(p *plot.Plot, path string, widthCm, heightCm float64) error {
	if widthCm <= 0 || heightCm <= 0 {
		return fmt.Errorf("%w: image size must be positive, got %gx%g cm", model.ErrInvalidArgument, widthCm, heightCm)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if !formats[ext] {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	return p.Save(vg.Length(widthCm)*vg.Centimeter, vg.Length(heightCm)*vg.Centimeter, path)
}
