package tally

import (
	"encoding/csv"
	"io"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
)

// WriteTSV writes the per-sample summary as a tab-delimited table with a
// header line.
func (t *Tally) WriteTSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := gocsv.MarshalCSV(t.Rows(), gocsv.NewSafeCSVWriter(cw)); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// Description summarizes the concordance rates of samples that had at least
// one multi-caller site.
type Description struct {
	Samples int
	Mean    float64
	Median  float64
	Min     float64
	Max     float64
}

// Describe returns an empty Description when no sample has a rate.
func (t *Tally) Describe() (Description, error) {
	var data stats.Float64Data
	for _, row := range t.Rows() {
		if row.ConcordanceRate.Valid {
			data = append(data, row.ConcordanceRate.Float64)
		}
	}

	if len(data) == 0 {
		return Description{}, nil
	}

	var (
		d   = Description{Samples: len(data)}
		err error
	)
	if d.Mean, err = data.Mean(); err != nil {
		return d, pfx.Err(err)
	}
	if d.Median, err = data.Median(); err != nil {
		return d, pfx.Err(err)
	}
	if d.Min, err = data.Min(); err != nil {
		return d, pfx.Err(err)
	}
	if d.Max, err = data.Max(); err != nil {
		return d, pfx.Err(err)
	}

	return d, nil
}
