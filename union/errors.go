package union

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedHeader means the #CHROM line is not 9 fixed columns plus
	// three equally sized caller blocks of at least one sample each.
	ErrMalformedHeader = errors.New("malformed header")

	// ErrMissingHeader means a data row was seen, or the input ended, before a
	// #CHROM line.
	ErrMissingHeader = errors.New("missing #CHROM header")

	// ErrNoCallerAnnotation means the FORMAT column carries no HC_, DV_ or
	// strelka2_ key.
	ErrNoCallerAnnotation = errors.New("no caller annotation found in FORMAT field")

	// ErrAllGenotypesBlank means a single-caller row has no sample block
	// containing an allele digit, which contradicts its FORMAT column.
	ErrAllGenotypesBlank = errors.New("all genotype fields are blank")

	// ErrMalformedRecord means a data row does not have the width of the
	// header.
	ErrMalformedRecord = errors.New("malformed record")
)

// RowError locates a structural failure on one input line.
type RowError struct {
	Line  int
	Chrom string
	Pos   string
	Err   error
}

func (e *RowError) Error() string {
	if e.Chrom == "" && e.Pos == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d (%s:%s): %v", e.Line, e.Chrom, e.Pos, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
