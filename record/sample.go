package record

import "strings"

// Sample holds the colon-delimited subfields of one sample column, aligned
// positionally with the FORMAT keys of its record. Fields[0] is the genotype.
type Sample struct {
	Fields []string
}

func ParseSample(col string) Sample {
	return Sample{Fields: strings.Split(col, ":")}
}

// Field returns the i'th subfield, or Missing if the sample is shorter than
// that.
func (s Sample) Field(i int) string {
	if i < 0 || i >= len(s.Fields) {
		return Missing
	}
	return s.Fields[i]
}

func (s Sample) Genotype() string {
	return s.Field(0)
}

func (s *Sample) Append(vals ...string) {
	s.Fields = append(s.Fields, vals...)
}

func (s Sample) String() string {
	return strings.Join(s.Fields, ":")
}

// HasAlleleDigit reports whether the raw column text contains a 0 or a 1
// anywhere, in any subfield.
func (s Sample) HasAlleleDigit() bool {
	for _, f := range s.Fields {
		if strings.ContainsAny(f, "01") {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, so that the caller may mutate subfields without
// aliasing the original.
func (s Sample) Clone() Sample {
	out := make([]string, len(s.Fields))
	copy(out, s.Fields)
	return Sample{Fields: out}
}
