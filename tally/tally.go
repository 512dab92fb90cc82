// Package tally summarizes a merge run: how many records each caller
// combination contributed and, per sample, how often the callers agreed.
package tally

import (
	"sort"
	"strconv"

	"github.com/carbocation/vcfunion/record"
	"github.com/carbocation/vcfunion/union"
	"gopkg.in/guregu/null.v3"
)

// Rate is a fraction that is null when its denominator is zero.
type Rate struct {
	null.Float
}

func RateFrom(num, denom int) Rate {
	if denom == 0 {
		return Rate{null.NewFloat(0, false)}
	}
	return Rate{null.FloatFrom(float64(num) / float64(denom))}
}

// MarshalCSV leaves null rates blank.
func (r Rate) MarshalCSV() (string, error) {
	if !r.Valid {
		return "", nil
	}
	return strconv.FormatFloat(r.Float64, 'f', 6, 64), nil
}

// SampleRow is one line of the summary table.
type SampleRow struct {
	Sample string `csv:"sample"`

	// Sites counts every emitted record.
	Sites int `csv:"sites"`

	// Called counts records where either derived genotype is a full call.
	Called int `csv:"called"`

	// MultiCaller counts records seen by two or three callers, and Concordant
	// those among them with a consensus genotype.
	MultiCaller int `csv:"multi_caller_sites"`
	Concordant  int `csv:"concordant_sites"`

	ConcordanceRate Rate `csv:"concordance_rate"`
}

// Tally is a union.Observer that accumulates run statistics.
type Tally struct {
	samples []SampleRow
	bySet   map[string]int
	byTier  map[string]int
	records int
}

var _ union.Observer = (*Tally)(nil)

func New() *Tally {
	return &Tally{
		bySet:  make(map[string]int),
		byTier: make(map[string]int),
	}
}

func (t *Tally) ObserveHeader(samples []string) error {
	t.samples = make([]SampleRow, len(samples))
	for i, name := range samples {
		t.samples[i].Sample = name
	}
	return nil
}

func (t *Tally) ObserveRecord(rec *record.Record, set union.CallerSet) error {
	t.records++
	t.bySet[set.Label()]++
	t.byTier[set.FilterTier()]++

	multi := set.Count() > 1

	for i, s := range rec.Samples {
		if i >= len(t.samples) {
			break
		}
		row := &t.samples[i]
		row.Sites++

		consensus, preferred := union.DerivedGenotypes(s)
		if !record.IsMissingGenotype(consensus) || !record.IsMissingGenotype(preferred) {
			row.Called++
		}

		if multi {
			row.MultiCaller++
			if !record.IsMissingGenotype(consensus) {
				row.Concordant++
			}
		}
	}

	return nil
}

// Records is the number of records observed.
func (t *Tally) Records() int {
	return t.records
}

// BySet returns record counts keyed by set label.
func (t *Tally) BySet() map[string]int {
	return copyCounts(t.bySet)
}

// ByTier returns record counts keyed by FILTER tier.
func (t *Tally) ByTier() map[string]int {
	return copyCounts(t.byTier)
}

// SetLabels returns the observed set labels in sorted order.
func (t *Tally) SetLabels() []string {
	out := make([]string, 0, len(t.bySet))
	for k := range t.bySet {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Rows returns the per-sample summary in sample order.
func (t *Tally) Rows() []SampleRow {
	out := make([]SampleRow, len(t.samples))
	for i, row := range t.samples {
		row.ConcordanceRate = RateFrom(row.Concordant, row.MultiCaller)
		out[i] = row
	}
	return out
}

func copyCounts(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
