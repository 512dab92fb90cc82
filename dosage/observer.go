package dosage

import (
	"fmt"
	"math"
	"strconv"

	"github.com/carbocation/vcfunion/record"
	"github.com/carbocation/vcfunion/union"
)

// Source selects which derived genotype is converted to a dosage.
type Source string

const (
	Consensus Source = "consensus"
	Preferred Source = "preferred"
)

// ParseSource accepts the names used on the command line.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case Consensus, Preferred:
		return Source(s), nil
	}
	return "", fmt.Errorf("unknown dosage genotype %q: expected %q or %q", s, Consensus, Preferred)
}

func (s Source) pick(sample record.Sample) string {
	consensus, preferred := union.DerivedGenotypes(sample)
	if s == Preferred {
		return preferred
	}
	return consensus
}

// Observer writes an alternate-allele dosage matrix alongside the merged VCF.
// The file is created once the sample names are known.
type Observer struct {
	Path      string
	ChunkSize int
	Source    Source

	w *Writer
}

var _ union.Observer = (*Observer)(nil)

func (o *Observer) ObserveHeader(samples []string) error {
	if o.w != nil {
		return fmt.Errorf("dosage matrix %s already started", o.Path)
	}

	w, err := NewWriter(o.Path, samples, o.ChunkSize)
	if err != nil {
		return err
	}
	o.w = w

	return nil
}

func (o *Observer) ObserveRecord(rec *record.Record, set union.CallerSet) error {
	if o.w == nil {
		return fmt.Errorf("dosage matrix %s: record before header", o.Path)
	}

	pos, err := strconv.ParseInt(rec.Pos(), 10, 64)
	if err != nil {
		return fmt.Errorf("dosage matrix: %s:%s: %w", rec.Chrom(), rec.Pos(), err)
	}

	row := Row{
		Chrom:   rec.Chrom(),
		Pos:     pos,
		Set:     set.Label(),
		Dosages: make([]float64, len(rec.Samples)),
	}
	for i, s := range rec.Samples {
		d, ok := record.AltDosage(o.Source.pick(s))
		if !ok {
			d = math.NaN()
		}
		row.Dosages[i] = d
	}

	return o.w.Write(row)
}

// Rows is the number of variants written.
func (o *Observer) Rows() int {
	if o.w == nil {
		return 0
	}
	return o.w.Rows()
}

// Close finishes the file. It is a no-op if no header was ever seen.
func (o *Observer) Close() error {
	if o.w == nil {
		return nil
	}
	return o.w.Close()
}
