package union

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/carbocation/vcfunion/record"
	"github.com/sirupsen/logrus"
)

// Observer receives every emitted row, e.g. to build a summary alongside the
// VCF output.
type Observer interface {
	// ObserveHeader is called once with the merged sample names before any
	// record.
	ObserveHeader(samples []string) error

	// ObserveRecord is called with each record after it has been collapsed.
	ObserveRecord(rec *record.Record, set CallerSet) error
}

// Stats counts what a run wrote.
type Stats struct {
	MetaLines int
	Records   int
	BySet     map[string]int
}

// Processor streams a three-caller VCF into its merged form. Records are
// handled strictly one at a time in input order; any structural error stops
// the run.
type Processor struct {
	Provenance Provenance

	// Logger receives progress and warnings. nil means the logrus standard
	// logger.
	Logger logrus.FieldLogger

	// ProgressEvery logs a progress line each time this many records have
	// been written. Zero disables progress logging.
	ProgressEvery int

	Observers []Observer
}

func (p *Processor) logger() logrus.FieldLogger {
	if p.Logger == nil {
		return logrus.StandardLogger()
	}
	return p.Logger
}

// Run reads r and writes the merged VCF to w.
func (p *Processor) Run(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	stats := Stats{BySet: make(map[string]int)}
	log := p.logger()

	rdr := bufio.NewReaderSize(r, 4096*8)
	out := bufio.NewWriterSize(w, 4096*8)

	var (
		layout     Layout
		haveHeader bool
		lineNo     int
		last       *record.Record
	)

	for {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		line, readErr := rdr.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return stats, readErr
		}
		if line == "" && readErr == io.EOF {
			break
		}
		lineNo++
		line = strings.TrimRight(line, "\r\n")

		switch {
		case line == "":
			// Blank lines carry nothing

		case strings.HasPrefix(line, record.HeaderPrefix+"\t") || line == record.HeaderPrefix:
			if haveHeader {
				return stats, &RowError{Line: lineNo, Err: fmt.Errorf("%w: repeated %s line", ErrMalformedHeader, record.HeaderPrefix)}
			}

			header := strings.Split(line, "\t")
			var err error
			layout, err = ResolveLayout(header)
			if err != nil {
				return stats, &RowError{Line: lineNo, Err: err}
			}
			haveHeader = true

			for _, meta := range HeaderLines(p.Provenance) {
				writeLine(out, meta)
			}
			writeLine(out, strings.Join(TruncateHeader(header, layout), "\t"))

			samples := layout.SampleNames(header)
			for _, o := range p.Observers {
				if err := o.ObserveHeader(samples); err != nil {
					return stats, err
				}
			}

			log.WithField("samples", layout.Samples()).Debugln("Resolved caller blocks", layout)

		case strings.Contains(firstColumn(line), "#"):
			stats.MetaLines++
			writeLine(out, line)

		default:
			if !haveHeader {
				return stats, &RowError{Line: lineNo, Err: ErrMissingHeader}
			}

			rec, perr := record.Parse(line)
			if perr != nil {
				return stats, &RowError{Line: lineNo, Err: fmt.Errorf("%w: %v", ErrMalformedRecord, perr)}
			}

			outcome, eerr := Evaluate(rec, layout)
			if eerr != nil {
				return stats, &RowError{Line: lineNo, Chrom: rec.Chrom(), Pos: rec.Pos(), Err: eerr}
			}

			if !outcome.Consistent() {
				log.WithFields(logrus.Fields{
					"chrom": rec.Chrom(),
					"pos":   rec.Pos(),
					"set":   outcome.Set.Label(),
					"kept":  outcome.Live.String(),
				}).Warnln("Sample block kept for a single-caller record does not belong to the caller named in FORMAT")
			}

			writeLine(out, rec.String())

			for _, o := range p.Observers {
				if err := o.ObserveRecord(rec, outcome.Set); err != nil {
					return stats, err
				}
			}

			stats.Records++
			stats.BySet[outcome.Set.Label()]++
			last = rec

			if p.ProgressEvery > 0 && stats.Records%p.ProgressEvery == 0 {
				log.Infof("Processed %d variants. Last %s:%s", stats.Records, rec.Chrom(), rec.Pos())
			}
		}

		if readErr == io.EOF {
			break
		}
	}

	if !haveHeader {
		return stats, ErrMissingHeader
	}

	if last != nil {
		log.Infof("Processed %d variants. Last %s:%s", stats.Records, last.Chrom(), last.Pos())
	}

	return stats, out.Flush()
}

func writeLine(w *bufio.Writer, line string) {
	w.WriteString(line)
	w.WriteByte('\n')
}

func firstColumn(line string) string {
	if i := strings.IndexByte(line, '\t'); i >= 0 {
		return line[:i]
	}
	return line
}
