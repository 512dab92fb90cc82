package union

import (
	"fmt"
	"strings"

	"github.com/carbocation/vcfunion/record"
)

// Caller is one of the three variant callers, in sample-block order.
type Caller int

const (
	HC Caller = iota
	DV
	Strelka2
)

// Callers lists every caller in block order.
var Callers = []Caller{HC, DV, Strelka2}

func (c Caller) String() string {
	switch c {
	case HC:
		return "HC"
	case DV:
		return "DV"
	case Strelka2:
		return "strelka2"
	}
	return fmt.Sprintf("Caller(%d)", int(c))
}

// KeyPrefix is the prefix the merge step put on this caller's FORMAT keys.
func (c Caller) KeyPrefix() string {
	return c.String() + "_"
}

// CallerSet is the subset of callers that produced a record.
type CallerSet uint8

func (s CallerSet) With(c Caller) CallerSet {
	return s | 1<<uint(c)
}

func (s CallerSet) Has(c Caller) bool {
	return s&(1<<uint(c)) != 0
}

func (s CallerSet) Count() int {
	n := 0
	for _, c := range Callers {
		if s.Has(c) {
			n++
		}
	}
	return n
}

// Only returns the single member of a one-caller set.
func (s CallerSet) Only() (Caller, bool) {
	if s.Count() != 1 {
		return 0, false
	}
	for _, c := range Callers {
		if s.Has(c) {
			return c, true
		}
	}
	return 0, false
}

// Label is the value written to INFO/set, e.g. HC-DV-strelka2.
func (s CallerSet) Label() string {
	names := make([]string, 0, len(Callers))
	for _, c := range Callers {
		if s.Has(c) {
			names = append(names, c.String())
		}
	}
	return strings.Join(names, "-")
}

// FilterTier is the value written to FILTER.
func (s CallerSet) FilterTier() string {
	switch s.Count() {
	case 1:
		return FilterOneCaller
	case 2:
		return FilterTwoCallers
	case 3:
		return FilterThreeCallers
	}
	return record.Missing
}

func (s CallerSet) String() string {
	if s == 0 {
		return "none"
	}
	return s.Label()
}

// Classify determines which callers produced rec by tokenizing its FORMAT
// column and matching each key against the per-caller prefixes.
func Classify(rec *record.Record) (CallerSet, error) {
	var set CallerSet
	for _, key := range rec.FormatKeys() {
		for _, c := range Callers {
			if strings.HasPrefix(key, c.KeyPrefix()) {
				set = set.With(c)
			}
		}
	}

	if set == 0 {
		return 0, ErrNoCallerAnnotation
	}

	return set, nil
}

// Annotate records the caller provenance in INFO and the tier in FILTER.
func Annotate(rec *record.Record, set CallerSet) {
	rec.AppendInfo(SetKey, set.Label())
	rec.Fixed[record.Filter] = set.FilterTier()
}

// ClearsID reports whether rows of this class have their ID reset. Only
// HaplotypeCaller-only rows keep the identifier they arrived with.
func ClearsID(set CallerSet) bool {
	return set != CallerSet(0).With(HC)
}
