package union

import "github.com/carbocation/vcfunion/record"

// ReduceSingleCaller collapses a one-caller row onto its live block. The live
// block is the first, in caller order, whose raw sample text contains an
// allele digit; the other two blocks are dropped. Every kept sample gains a
// consensus genotype of ./. and a preferred genotype that is ./. unless the
// live block is DV's, in which case it is the sample's own genotype.
//
// It returns the caller whose block was kept. rec is not modified when
// ErrAllGenotypesBlank is returned.
func ReduceSingleCaller(rec *record.Record, layout Layout) (Caller, error) {
	for _, c := range Callers {
		block := layout.Block(rec, c)
		if !blockHasAlleleDigit(block) {
			continue
		}

		kept := make([]record.Sample, len(block))
		for i, s := range block {
			s = s.Clone()
			preferred := record.MissingGenotype
			if c == DV {
				preferred = s.Genotype()
			}
			s.Append(record.MissingGenotype, preferred)
			kept[i] = s
		}

		rec.Samples = kept
		rec.AppendFormat(ConsensusKey, PreferredKey)

		return c, nil
	}

	return 0, ErrAllGenotypesBlank
}

func blockHasAlleleDigit(block []record.Sample) bool {
	for _, s := range block {
		if s.HasAlleleDigit() {
			return true
		}
	}
	return false
}
