package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/kilianp07/rebelay/core/model"
	"github.com/kilianp07/rebelay/core/study"
)

// Format selects the encoding used by Write.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV:
		return Format(s), nil
	case "":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: unknown export format %q", model.ErrInvalidArgument, s)
}

// WriteSamplesJSON writes the swept samples to w in JSON format.
func WriteSamplesJSON(w io.Writer, samples []model.Sample) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(samples)
}

// WriteSamplesCSV writes the swept samples to w in CSV format.
func WriteSamplesCSV(w io.Writer, samples []model.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"rebelays", "section_length_m", "time_min"}); err != nil {
		return err
	}
	for _, s := range samples {
		rec := []string{
			strconv.Itoa(s.Rebelays),
			formatFloat(s.SectionLength),
			formatFloat(s.Time),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteStudyJSON writes the caver study rows to w in JSON format.
func WriteStudyJSON(w io.Writer, rows []study.Row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// WriteStudyCSV writes the caver study rows to w in CSV format.
func WriteStudyCSV(w io.Writer, rows []study.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"cavers", "ascent_m", "descent_m", "both_m"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.Cavers),
			formatFloat(r.Ascent),
			formatFloat(r.Descent),
			formatFloat(r.Both),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSamples dispatches on f.
func WriteSamples(w io.Writer, f Format, samples []model.Sample) error {
	if f == FormatCSV {
		return WriteSamplesCSV(w, samples)
	}
	return WriteSamplesJSON(w, samples)
}

// WriteStudy dispatches on f.
func WriteStudy(w io.Writer, f Format, rows []study.Row) error {
	if f == FormatCSV {
		return WriteStudyCSV(w, rows)
	}
	return WriteStudyJSON(w, rows)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
