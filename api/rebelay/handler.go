package rebelay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kilianp07/rebelay/core/model"
	"github.com/kilianp07/rebelay/core/optimizer"
	"github.com/kilianp07/rebelay/core/study"
	"github.com/kilianp07/rebelay/core/timing"
)

// Planner is the application service behind the handlers.
type Planner interface {
	Defaults() optimizer.RoundTripOptions
	TotalTime(p timing.Params) (float64, error)
	Optimize(d model.Direction, ropeLength float64, cavers int, opts optimizer.RoundTripOptions) (optimizer.Result, error)
	Study(ctx context.Context, ropeLength float64, maxCavers int, opts optimizer.RoundTripOptions) ([]study.Row, error)
}

// Upper bounds on request sizes.
const (
	MaxRebelays = 10000
	MaxPoints   = 100000
	MaxCavers   = 100
)

// TimeResponse is the body of GET /api/time.
type TimeResponse struct {
	RopeLength     float64 `json:"rope_length"`
	Cavers         int     `json:"cavers"`
	Rebelays       int     `json:"rebelays"`
	Speed          float64 `json:"speed"`
	TransitionTime float64 `json:"transition_time"`
	SectionLength  float64 `json:"section_length"`
	TotalTime      float64 `json:"total_time"`
}

// StudyResponse is the body of GET /api/study.
type StudyResponse struct {
	RopeLength float64     `json:"rope_length"`
	Rows       []study.Row `json:"rows"`
}

// NewHandler returns the HTTP API:
//
//	GET /api/time     total time of one configuration
//	GET /api/optimum  optimum spacing for direction=ascent|descent|both
//	GET /api/study    optimum spacing for party sizes 1..max_cavers
func NewHandler(p Planner) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/time", get(func(w http.ResponseWriter, r *http.Request) { handleTime(p, w, r) }))
	mux.Handle("/api/optimum", get(func(w http.ResponseWriter, r *http.Request) { handleOptimum(p, w, r) }))
	mux.Handle("/api/study", get(func(w http.ResponseWriter, r *http.Request) { handleStudy(p, w, r) }))
	return mux
}

func get(h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
			return
		}
		h(w, r)
	})
}

func handleTime(p Planner, w http.ResponseWriter, r *http.Request) {
	q := query{values: r.URL.Query()}
	d := q.direction()
	defaults := p.Defaults().Single(d)
	params := timing.Params{
		RopeLength:     q.floatParam("rope_length", 0, true),
		Cavers:         q.cavers("cavers"),
		Rebelays:       q.intParam("rebelays", 0, false),
		Speed:          q.floatParam("speed", defaults.Speed, false),
		TransitionTime: q.floatParam("transition_time", defaults.TransitionTime, false),
	}
	if q.err != nil {
		writeError(w, http.StatusBadRequest, q.err)
		return
	}
	total, err := p.TotalTime(params)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, TimeResponse{
		RopeLength:     params.RopeLength,
		Cavers:         params.Cavers,
		Rebelays:       params.Rebelays,
		Speed:          params.Speed,
		TransitionTime: params.TransitionTime,
		SectionLength:  timing.SectionLength(params.RopeLength, params.Rebelays),
		TotalTime:      total,
	})
}

func handleOptimum(p Planner, w http.ResponseWriter, r *http.Request) {
	q := query{values: r.URL.Query()}
	d := q.direction()
	rope := q.floatParam("rope_length", 0, true)
	cavers := q.cavers("cavers")
	opts := q.options(p.Defaults())
	withCurve := q.boolParam("curve")
	if q.err != nil {
		writeError(w, http.StatusBadRequest, q.err)
		return
	}
	res, err := p.Optimize(d, rope, cavers, opts)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	if !withCurve {
		res.Curve = nil
	}
	writeJSON(w, res)
}

func handleStudy(p Planner, w http.ResponseWriter, r *http.Request) {
	q := query{values: r.URL.Query()}
	rope := q.floatParam("rope_length", 0, true)
	maxCavers := q.intParam("max_cavers", 0, true)
	if maxCavers > MaxCavers {
		q.fail("max_cavers must not exceed %d", MaxCavers)
	}
	opts := q.options(p.Defaults())
	if q.err != nil {
		writeError(w, http.StatusBadRequest, q.err)
		return
	}
	rows, err := p.Study(r.Context(), rope, maxCavers, opts)
	if err != nil {
		writeCoreError(w, err)
		return
	}
	writeJSON(w, StudyResponse{RopeLength: rope, Rows: rows})
}

// query parses url values and keeps the first error.
type query struct {
	values url.Values
	err    error
}

func (q *query) fail(format string, args ...any) {
	if q.err == nil {
		q.err = fmt.Errorf(format, args...)
	}
}

func (q *query) floatParam(key string, def float64, required bool) float64 {
	raw := q.values.Get(key)
	if raw == "" {
		if required {
			q.fail("missing parameter %s", key)
		}
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		q.fail("invalid %s: %q", key, raw)
		return def
	}
	return v
}

func (q *query) intParam(key string, def int, required bool) int {
	raw := q.values.Get(key)
	if raw == "" {
		if required {
			q.fail("missing parameter %s", key)
		}
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		q.fail("invalid %s: %q", key, raw)
		return def
	}
	return v
}

// cavers accepts integral floats such as "4.0" but rejects "4.5".
func (q *query) cavers(key string) int {
	v := q.floatParam(key, 0, true)
	if q.err != nil {
		return 0
	}
	n, err := timing.CaverCount(v)
	if err != nil {
		q.fail("invalid %s: %v", key, err)
	}
	return n
}

func (q *query) boolParam(key string) bool {
	raw := q.values.Get(key)
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		q.fail("invalid %s: %q", key, raw)
	}
	return v
}

func (q *query) direction() model.Direction {
	d, err := model.ParseDirection(q.values.Get("direction"))
	if err != nil && q.err == nil {
		q.err = err
	}
	return d
}

func (q *query) options(o optimizer.RoundTripOptions) optimizer.RoundTripOptions {
	o.AscentSpeed = q.floatParam("ascent_speed", o.AscentSpeed, false)
	o.DescentSpeed = q.floatParam("descent_speed", o.DescentSpeed, false)
	o.TransitionTime = q.floatParam("transition_time", o.TransitionTime, false)
	o.MaxRebelays = q.intParam("max_rebelays", o.MaxRebelays, false)
	o.Points = q.intParam("points", o.Points, false)
	if m := q.values.Get("method"); m != "" {
		o.Method = m
	}
	if o.MaxRebelays > MaxRebelays {
		q.fail("max_rebelays must not exceed %d", MaxRebelays)
	}
	if o.Points > MaxPoints {
		q.fail("points must not exceed %d", MaxPoints)
	}
	return o
}

func writeCoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInsufficientSamples):
		writeError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, model.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
