package union

import (
	"fmt"
	"time"
)

const (
	// SetKey is the INFO key carrying the caller provenance label.
	SetKey = "set"

	// ConsensusKey and PreferredKey are the FORMAT keys of the two derived
	// genotypes. The spelling is what downstream GT-exchange tooling reads.
	ConsensusKey = "concensus_GT"
	PreferredKey = "dv_priority_GT"

	FilterOneCaller    = "oneCaller"
	FilterTwoCallers   = "twoCallers"
	FilterThreeCallers = "threeCallers"

	// TimestampLayout renders the provenance timestamp.
	TimestampLayout = "2006-01-02 15:04:05.000000"
)

// Provenance identifies the run in the output header.
type Provenance struct {
	Timestamp time.Time
	Version   string
	Script    string
	Command   string
}

// HeaderLines returns the metadata lines that declare the new FILTER, INFO and
// FORMAT values, followed by two provenance comments.
func HeaderLines(p Provenance) []string {
	return []string{
		fmt.Sprintf(`##FILTER=<ID=%s,Description="The variant was called by exactly one caller">`, FilterOneCaller),
		fmt.Sprintf(`##FILTER=<ID=%s,Description="The variant was called by exactly two callers">`, FilterTwoCallers),
		fmt.Sprintf(`##FILTER=<ID=%s,Description="The variant was called by all three callers">`, FilterThreeCallers),
		fmt.Sprintf(`##INFO=<ID=%s,Number=.,Type=String,Description="Set of callers that identified a variant (HC, DV, strelka2, HC-DV, HC-strelka2, DV-strelka2, or HC-DV-strelka2)">`, SetKey),
		fmt.Sprintf(`##FORMAT=<ID=%s,Number=1,Type=String,Description="Consensus genotype across callers">`, ConsensusKey),
		fmt.Sprintf(`##FORMAT=<ID=%s,Number=1,Type=String,Description="Genotype preferring the DV call">`, PreferredKey),
		fmt.Sprintf("##%s_Version=%s, Union of HC, DV and strelka2 genotype data, %s", p.Script, p.Version, p.Timestamp.Format(TimestampLayout)),
		fmt.Sprintf("##%s_Command=%s", p.Script, p.Command),
	}
}

// TruncateHeader keeps the fixed columns and the sample names of the first
// caller block.
func TruncateHeader(header []string, layout Layout) []string {
	out := make([]string, layout.End1)
	copy(out, header[:layout.End1])
	return out
}
