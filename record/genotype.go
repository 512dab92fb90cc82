package record

import (
	"strconv"
	"strings"
)

// NormalizeHet collapses the two unphased heterozygote orderings onto 0/1.
// Every other genotype, including phased ones, is returned unchanged.
func NormalizeHet(gt string) string {
	if gt == "1/0" {
		return "0/1"
	}
	return gt
}

// IsMissingGenotype reports whether any allele in the call is a no-call.
func IsMissingGenotype(gt string) bool {
	return gt == "" || strings.Contains(gt, Missing)
}

// AltDosage counts the non-reference alleles in a diploid (or other ploidy)
// genotype such as 0/1, 1|1 or 1/2. The second return value is false when the
// genotype has a missing or unparseable allele.
func AltDosage(gt string) (float64, bool) {
	if IsMissingGenotype(gt) {
		return 0, false
	}

	alleles := strings.FieldsFunc(gt, func(r rune) bool {
		return r == '/' || r == '|'
	})
	if len(alleles) == 0 {
		return 0, false
	}

	dosage := 0
	for _, a := range alleles {
		idx, err := strconv.Atoi(a)
		if err != nil || idx < 0 {
			return 0, false
		}
		if idx > 0 {
			dosage++
		}
	}

	return float64(dosage), true
}
