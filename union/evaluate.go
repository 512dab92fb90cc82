package union

import (
	"fmt"

	"github.com/carbocation/vcfunion/record"
)

// Outcome describes what Evaluate did to a row.
type Outcome struct {
	Set CallerSet

	// Live is the caller whose block survived a single-caller reduction. It
	// is only meaningful when Set.Count() == 1.
	Live Caller
}

// Consistent reports whether a single-caller reduction kept the block of
// the caller named by the FORMAT column.
func (o Outcome) Consistent() bool {
	c, ok := o.Set.Only()
	return !ok || c == o.Live
}

// Evaluate classifies, annotates and collapses one data row in place.
func Evaluate(rec *record.Record, layout Layout) (Outcome, error) {
	if w := rec.Width(); w != layout.Width() {
		return Outcome{}, fmt.Errorf("%w: %d columns, header has %d", ErrMalformedRecord, w, layout.Width())
	}

	set, err := Classify(rec)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{Set: set}

	Annotate(rec, set)

	if set.Count() == 1 {
		out.Live, err = ReduceSingleCaller(rec, layout)
		if err != nil {
			return out, err
		}
	} else {
		CombineCallers(rec, layout)
	}

	if ClearsID(set) {
		rec.Fixed[record.ID] = record.Missing
	}

	return out, nil
}

// DerivedGenotypes returns the consensus and preferred genotypes that
// Evaluate appended to a sample.
func DerivedGenotypes(s record.Sample) (consensus, preferred string) {
	n := len(s.Fields)
	if n < 2 {
		return record.MissingGenotype, record.MissingGenotype
	}
	return s.Fields[n-2], s.Fields[n-1]
}
