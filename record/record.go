package record

import (
	"fmt"
	"strings"
)

// Record is one tab-delimited VCF data line: nine fixed fields followed by a
// variable number of sample columns.
type Record struct {
	Fixed   [FixedColumns]string
	Samples []Sample
}

// Parse splits a single data line (without its line terminator) into a
// Record.
func Parse(line string) (*Record, error) {
	cols := strings.Split(line, "\t")
	if len(cols) < FixedColumns {
		return nil, fmt.Errorf("expected at least %d tab-delimited columns, found %d", FixedColumns, len(cols))
	}

	rec := &Record{
		Samples: make([]Sample, 0, len(cols)-FixedColumns),
	}
	copy(rec.Fixed[:], cols[:FixedColumns])

	for _, col := range cols[FixedColumns:] {
		rec.Samples = append(rec.Samples, ParseSample(col))
	}

	return rec, nil
}

func (r *Record) Chrom() string  { return r.Fixed[Chrom] }
func (r *Record) Pos() string    { return r.Fixed[Pos] }
func (r *Record) Format() string { return r.Fixed[Format] }

// Width is the total number of columns the record serializes to.
func (r *Record) Width() int {
	return FixedColumns + len(r.Samples)
}

// FormatKeys tokenizes the FORMAT column.
func (r *Record) FormatKeys() []string {
	if r.Fixed[Format] == "" {
		return nil
	}
	return strings.Split(r.Fixed[Format], ":")
}

// AppendFormat adds keys to the end of the FORMAT column.
func (r *Record) AppendFormat(keys ...string) {
	if len(keys) == 0 {
		return
	}
	r.Fixed[Format] = r.Fixed[Format] + ":" + strings.Join(keys, ":")
}

// AppendInfo adds a key=value pair to the INFO column.
func (r *Record) AppendInfo(key, value string) {
	r.Fixed[Info] = r.Fixed[Info] + ";" + key + "=" + value
}

// Fields returns the record as a slice of column strings.
func (r *Record) Fields() []string {
	out := make([]string, 0, r.Width())
	out = append(out, r.Fixed[:]...)
	for _, s := range r.Samples {
		out = append(out, s.String())
	}
	return out
}

func (r *Record) String() string {
	var sb strings.Builder
	for i, v := range r.Fixed {
		if i > 0 {
			sb.WriteByte('\t')
		}
		sb.WriteString(v)
	}
	for _, s := range r.Samples {
		sb.WriteByte('\t')
		sb.WriteString(s.String())
	}
	return sb.String()
}
