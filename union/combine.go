package union

import "github.com/carbocation/vcfunion/record"

// CombineCallers merges the three caller blocks of a multi-caller row into
// one, sample by sample, and drops the second and third blocks. Caller blocks
// that did not contribute a call are expected to hold all-missing tuples.
func CombineCallers(rec *record.Record, layout Layout) {
	hc := layout.Block(rec, HC)
	dv := layout.Block(rec, DV)
	st := layout.Block(rec, Strelka2)

	merged := make([]record.Sample, layout.Samples())
	for i := range merged {
		merged[i] = MergeSample(hc[i], dv[i], st[i])
	}

	rec.Samples = merged
	rec.AppendFormat(ConsensusKey, PreferredKey)
}

// MergeSample folds the HC, DV and strelka2 tuples of one sample into a
// single tuple and appends the consensus and preferred genotypes.
//
// Genotype: ./. if all three calls differ, the DV call if DV and strelka2
// agree, otherwise the HC call. Every other subfield keeps the HC value
// unless it is missing, in which case the DV value and then the strelka2
// value are tried.
func MergeSample(hc, dv, st record.Sample) record.Sample {
	width := len(hc.Fields)
	if len(dv.Fields) > width {
		width = len(dv.Fields)
	}
	if len(st.Fields) > width {
		width = len(st.Fields)
	}

	out := record.Sample{Fields: make([]string, width, width+2)}
	for i := range out.Fields {
		out.Fields[i] = hc.Field(i)
	}

	gt1, gt2, gt3 := hc.Genotype(), dv.Genotype(), st.Genotype()
	n1, n2, n3 := record.NormalizeHet(gt1), record.NormalizeHet(gt2), record.NormalizeHet(gt3)
	switch {
	case n1 != n2 && n1 != n3 && n2 != n3:
		out.Fields[0] = record.MissingGenotype
	case n2 == n3:
		out.Fields[0] = gt2
	}

	for i, v := range out.Fields {
		if v != record.Missing {
			continue
		}
		if alt := dv.Field(i); alt != record.Missing {
			out.Fields[i] = alt
		} else if alt := st.Field(i); alt != record.Missing {
			out.Fields[i] = alt
		}
	}

	merged := out.Genotype()
	out.Append(ConsensusGenotype(merged, gt2, gt3), PreferredGenotype(merged, gt2, gt3))

	return out
}

// ConsensusGenotype returns any pairwise agreement among the three calls,
// checked HC/DV, then DV/strelka2, then HC/strelka2, and ./. when all three
// disagree. Heterozygote order is ignored and the result is normalized.
func ConsensusGenotype(hc, dv, st string) string {
	n1, n2, n3 := record.NormalizeHet(hc), record.NormalizeHet(dv), record.NormalizeHet(st)
	switch {
	case n1 == n2:
		return n1
	case n2 == n3:
		return n2
	case n1 == n3:
		return n1
	}
	return record.MissingGenotype
}

// PreferredGenotype returns the DV call when it is fully called, otherwise
// the HC call if HC and strelka2 agree, otherwise ./.. The result is
// normalized.
func PreferredGenotype(hc, dv, st string) string {
	if !record.IsMissingGenotype(dv) {
		return record.NormalizeHet(dv)
	}
	if n1 := record.NormalizeHet(hc); n1 == record.NormalizeHet(st) {
		return n1
	}
	return record.MissingGenotype
}
