package union

import (
	"fmt"

	"github.com/carbocation/vcfunion/record"
)

// Layout holds the half-open column ranges of the three caller blocks, in
// full-row coordinates. bcftools merge --force-samples lays the samples out
// as
//
//	chr pos ... s1 s2 2:s1 2:s2 3:s1 3:s2
//
// so each caller occupies one contiguous third of the sample columns.
// Interleaved layouts are not detected.
type Layout struct {
	Start1, End1 int
	Start2, End2 int
	Start3, End3 int
}

// ResolveLayout computes the caller blocks from the #CHROM header row.
func ResolveLayout(header []string) (Layout, error) {
	n := len(header)
	if n < record.FixedColumns+3 || (n-record.FixedColumns)%3 != 0 {
		return Layout{}, fmt.Errorf("%w: %d columns is not %d fixed columns plus three equal sample blocks", ErrMalformedHeader, n, record.FixedColumns)
	}

	samples := (n - record.FixedColumns) / 3

	l := Layout{Start1: record.SampleStart}
	l.End1 = l.Start1 + samples
	l.Start2 = l.End1
	l.End2 = l.Start2 + samples
	l.Start3 = l.End2
	l.End3 = n

	return l, nil
}

// Samples is the number of biological samples per caller block.
func (l Layout) Samples() int {
	return l.End1 - l.Start1
}

// Width is the number of columns every data row must have.
func (l Layout) Width() int {
	return l.End3
}

// Range returns the block of caller c.
func (l Layout) Range(c Caller) (start, end int) {
	switch c {
	case HC:
		return l.Start1, l.End1
	case DV:
		return l.Start2, l.End2
	default:
		return l.Start3, l.End3
	}
}

// Block returns the sample columns of caller c. rec must have Width()
// columns.
func (l Layout) Block(rec *record.Record, c Caller) []record.Sample {
	start, end := l.Range(c)
	return rec.Samples[start-record.SampleStart : end-record.SampleStart]
}

// SampleNames returns the names of the first block, which become the sample
// names of the merged output.
func (l Layout) SampleNames(header []string) []string {
	out := make([]string, l.Samples())
	copy(out, header[l.Start1:l.End1])
	return out
}
