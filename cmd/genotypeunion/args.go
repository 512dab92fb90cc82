package main

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/carbocation/vcfunion/dosage"
)

type cliargs struct {
	Input  string `arg:"positional,required" placeholder:"INFILE" help:"three-caller VCF to merge. May be compressed or a gs:// path."`
	Output string `arg:"positional,required" placeholder:"OUTFILE" help:"merged VCF. A .gz suffix compresses it; - writes to stdout."`

	Summary   string `arg:"--summary,env:GENOTYPEUNION_SUMMARY" help:"write a per-sample caller concordance TSV here."`
	Dosage    string `arg:"--dosage,env:GENOTYPEUNION_DOSAGE" help:"write an Arrow IPC matrix of alt-allele dosages here."`
	DosageGT  string `arg:"--dosage-gt,env:GENOTYPEUNION_DOSAGE_GT" help:"derived genotype the dosage matrix is built from: consensus or preferred."`
	Chunk     int    `arg:"--chunk,env:GENOTYPEUNION_CHUNK" help:"rows per Arrow record batch."`
	Timestamp string `arg:"--timestamp,env:GENOTYPEUNION_TIMESTAMP" help:"pin the provenance timestamp instead of using the current time."`
	Progress  int    `arg:"--progress,env:GENOTYPEUNION_PROGRESS" help:"log progress every this many records. 0 disables it."`
	Verify    bool   `arg:"--verify,env:GENOTYPEUNION_VERIFY" help:"re-read the merged VCF and check its annotations."`
	Debug     bool   `arg:"--debug,env:GENOTYPEUNION_DEBUG" help:"verbose logging."`
}

func defaultArgs() cliargs {
	return cliargs{
		DosageGT: string(dosage.Consensus),
		Chunk:    10000,
		Progress: 100000,
	}
}

func (cliargs) Description() string {
	return `genotypeunion: collapse HC, DV and strelka2 sample blocks of a merged VCF into one

Every record is tagged with the callers that found it (INFO set, FILTER
oneCaller/twoCallers/threeCallers) and each sample gains a consensus genotype
and a DV-preferred genotype.`
}

func (a cliargs) validate() error {
	if a.Input == a.Output && a.Output != "-" {
		return fmt.Errorf("input and output are the same file: %s", a.Input)
	}
	if _, err := dosage.ParseSource(a.DosageGT); err != nil {
		return err
	}
	if a.Dosage != "" && a.Chunk < 1 {
		return fmt.Errorf("--chunk must be positive, got %d", a.Chunk)
	}
	if a.Verify && a.Output == "-" {
		return fmt.Errorf("--verify needs a file output, not stdout")
	}
	if a.Progress < 0 {
		return fmt.Errorf("--progress cannot be negative")
	}
	return nil
}

// timestamp returns the provenance time. Pinned values are accepted in any
// layout dateparse recognizes.
func (a cliargs) timestamp(now time.Time) (time.Time, error) {
	if a.Timestamp == "" {
		return now, nil
	}
	return dateparse.ParseAny(a.Timestamp)
}
