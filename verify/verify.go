// Package verify re-reads a merged VCF with an independent parser and checks
// that it declares and carries the merged annotations.
package verify

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/brentp/vcfgo"
	"github.com/brentp/xopen"
	"github.com/carbocation/pfx"
	"github.com/carbocation/vcfunion/union"
)

// ErrInvalidOutput marks a merged file that does not have the expected shape.
var ErrInvalidOutput = errors.New("merged VCF failed verification")

const BufferSize = 4096 * 8

var tiers = map[string]struct{}{
	union.FilterOneCaller:    {},
	union.FilterTwoCallers:   {},
	union.FilterThreeCallers: {},
}

// Report summarizes a verified file.
type Report struct {
	Samples  int
	Variants int
	BySet    map[string]int

	// ParseWarnings holds what the VCF parser itself complained about. Input
	// files carry caller-prefixed keys that are rarely declared, so these are
	// not failures.
	ParseWarnings string
}

// File opens path, which may be gzipped, and verifies it.
func File(path string) (Report, error) {
	f, err := xopen.Ropen(path)
	if err != nil {
		return Report{}, pfx.Err(err)
	}
	defer f.Close()

	return Reader(f)
}

// Reader verifies a merged VCF stream.
func Reader(r io.Reader) (Report, error) {
	report := Report{BySet: make(map[string]int)}

	rdr, err := vcfgo.NewReader(bufio.NewReaderSize(r, BufferSize), true)
	if err != nil {
		if rdr == nil {
			return report, pfx.Err(fmt.Errorf("%w: %v", ErrInvalidOutput, err))
		}
		report.ParseWarnings = err.Error()
		rdr.Clear()
	}

	if err := checkHeader(rdr.Header); err != nil {
		return report, pfx.Err(err)
	}
	report.Samples = len(rdr.Header.SampleNames)

	for {
		variant := rdr.Read()
		if variant == nil {
			break
		}

		if err := checkVariant(variant); err != nil {
			return report, pfx.Err(err)
		}

		set := string(vcfgo.NewInfoByte(variant.Info().Bytes(), nil).SGet(union.SetKey))
		report.BySet[set]++
		report.Variants++
	}

	if err := rdr.Error(); err != nil {
		report.ParseWarnings = err.Error()
	}

	return report, nil
}

func checkHeader(h *vcfgo.Header) error {
	for tier := range tiers {
		if _, ok := h.Filters[tier]; !ok {
			return fmt.Errorf("%w: FILTER %s is not declared", ErrInvalidOutput, tier)
		}
	}

	if _, ok := h.Infos[union.SetKey]; !ok {
		return fmt.Errorf("%w: INFO %s is not declared", ErrInvalidOutput, union.SetKey)
	}

	for _, key := range []string{union.ConsensusKey, union.PreferredKey} {
		if _, ok := h.SampleFormats[key]; !ok {
			return fmt.Errorf("%w: FORMAT %s is not declared", ErrInvalidOutput, key)
		}
	}

	return nil
}

func checkVariant(v *vcfgo.Variant) error {
	if _, ok := tiers[v.Filter]; !ok {
		return fmt.Errorf("%w: %s:%d: FILTER %q is not a caller tier", ErrInvalidOutput, v.Chrom(), v.Pos, v.Filter)
	}

	set := vcfgo.NewInfoByte(v.Info().Bytes(), nil).SGet(union.SetKey)
	if len(set) == 0 {
		return fmt.Errorf("%w: %s:%d: INFO has no %s", ErrInvalidOutput, v.Chrom(), v.Pos, union.SetKey)
	}

	n := len(v.Format)
	if n < 2 || v.Format[n-2] != union.ConsensusKey || v.Format[n-1] != union.PreferredKey {
		return fmt.Errorf("%w: %s:%d: FORMAT %s does not end with the derived genotypes", ErrInvalidOutput, v.Chrom(), v.Pos, strings.Join(v.Format, ":"))
	}

	return nil
}
