package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/alexflint/go-arg"
	"github.com/brentp/xopen"
	"github.com/carbocation/vcfunion"
	"github.com/carbocation/vcfunion/compileinfo"
	_ "github.com/carbocation/vcfunion/compileinfoprint"
	"github.com/carbocation/vcfunion/dosage"
	"github.com/carbocation/vcfunion/tally"
	"github.com/carbocation/vcfunion/union"
	"github.com/carbocation/vcfunion/verify"
	"github.com/kardianos/osext"
	"github.com/minio/blake2b-simd"
	log "github.com/sirupsen/logrus"
)

// Special value that is to be set using ldflags
// E.g.: go build -ldflags "-X main.version=`git describe --tags`"
var version string

func main() {
	cli := defaultArgs()
	p := arg.MustParse(&cli)
	if err := cli.validate(); err != nil {
		p.Fail(err.Error())
	}

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if cli.Debug {
		log.SetLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cli); err != nil {
		logFailure(err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cli cliargs) error {
	started := time.Now()

	for _, p := range []*string{&cli.Output, &cli.Summary, &cli.Dosage} {
		expanded, err := vcfunion.ExpandHome(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}

	ts, err := cli.timestamp(started)
	if err != nil {
		return fmt.Errorf("--timestamp: %w", err)
	}

	prov := union.Provenance{
		Timestamp: ts,
		Version:   buildVersion(),
		Script:    scriptName(),
		Command:   strings.Join(os.Args, " "),
	}

	in, err := openInput(ctx, cli.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := xopen.Wopen(cli.Output)
	if err != nil {
		return err
	}
	digest := blake2b.New256()

	summary := tally.New()
	observers := []union.Observer{summary}

	var matrix *dosage.Observer
	if cli.Dosage != "" {
		source, _ := dosage.ParseSource(cli.DosageGT)
		matrix = &dosage.Observer{Path: cli.Dosage, ChunkSize: cli.Chunk, Source: source}
		observers = append(observers, matrix)
	}

	proc := &union.Processor{
		Provenance:    prov,
		Logger:        log.StandardLogger(),
		ProgressEvery: cli.Progress,
		Observers:     observers,
	}

	stats, runErr := proc.Run(ctx, in, io.MultiWriter(out, digest))

	if err := out.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if matrix != nil {
		if err := matrix.Close(); err != nil && runErr == nil {
			runErr = err
		}
	}
	if runErr != nil {
		return runErr
	}

	logSummary(stats, summary, digest)

	if matrix != nil {
		log.WithField("rows", matrix.Rows()).Infoln("Wrote dosage matrix to", cli.Dosage)
	}

	if cli.Summary != "" {
		if err := writeSummary(cli.Summary, summary); err != nil {
			return err
		}
		log.Infoln("Wrote per-sample summary to", cli.Summary)
	}

	if cli.Verify {
		report, err := verify.File(cli.Output)
		if err != nil {
			return err
		}
		if report.ParseWarnings != "" {
			log.Debugln("VCF parser warnings:", report.ParseWarnings)
		}
		if report.Variants != stats.Records {
			return fmt.Errorf("%w: wrote %d records but re-read %d", verify.ErrInvalidOutput, stats.Records, report.Variants)
		}
		log.WithFields(log.Fields{
			"samples":  report.Samples,
			"variants": report.Variants,
		}).Infoln("Verified", cli.Output)
	}

	log.Infof("Completed in %s", time.Since(started))

	return nil
}

// openInput opens a local or gs:// path and undoes any compression.
func openInput(ctx context.Context, path string) (io.ReadCloser, error) {
	var client *storage.Client
	if vcfunion.IsGoogleStorage(path) {
		var err error
		client, err = storage.NewClient(ctx)
		if err != nil {
			return nil, err
		}
	}

	src, size, err := vcfunion.OpenSource(ctx, path, client)
	if err != nil {
		if client != nil {
			client.Close()
		}
		return nil, err
	}

	rc, dt, err := vcfunion.MaybeDecompress(src)
	if err != nil {
		src.Close()
		if client != nil {
			client.Close()
		}
		return nil, err
	}

	log.WithFields(log.Fields{
		"bytes":       size,
		"compression": dt.String(),
	}).Infoln("Reading", path)

	if client == nil {
		return rc, nil
	}
	return &clientCloser{ReadCloser: rc, client: client}, nil
}

type clientCloser struct {
	io.ReadCloser
	client *storage.Client
}

func (c *clientCloser) Close() error {
	err := c.ReadCloser.Close()
	if cerr := c.client.Close(); err == nil {
		err = cerr
	}
	return err
}

func writeSummary(path string, t *tally.Tally) error {
	w, err := xopen.Wopen(path)
	if err != nil {
		return err
	}
	if err := t.WriteTSV(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func logSummary(stats union.Stats, t *tally.Tally, digest hash.Hash) {
	for _, label := range t.SetLabels() {
		log.WithField("set", label).Infof("%d records", stats.BySet[label])
	}

	fields := log.Fields{
		"records":    stats.Records,
		"meta_lines": stats.MetaLines,
		"blake2b":    hex.EncodeToString(digest.Sum(nil)),
	}
	for tier, n := range t.ByTier() {
		fields[tier] = n
	}
	log.WithFields(fields).Infoln("Merged VCF written")

	d, err := t.Describe()
	if err != nil {
		log.Warnln("Could not summarize concordance:", err)
		return
	}
	if d.Samples > 0 {
		log.WithFields(log.Fields{
			"samples": d.Samples,
			"mean":    d.Mean,
			"median":  d.Median,
			"min":     d.Min,
			"max":     d.Max,
		}).Infoln("Per-sample concordance of multi-caller sites")
	}
}

// logFailure names the failure kind and, for row errors, the offending
// record.
func logFailure(err error) {
	entry := log.WithField("kind", failureKind(err))

	var rowErr *union.RowError
	if errors.As(err, &rowErr) {
		entry = entry.WithField("line", rowErr.Line)
		if rowErr.Chrom != "" {
			entry = entry.WithFields(log.Fields{"chrom": rowErr.Chrom, "pos": rowErr.Pos})
		}
	}

	entry.Errorln(err)
}

func failureKind(err error) string {
	for _, v := range []struct {
		err  error
		kind string
	}{
		{union.ErrMalformedHeader, "malformed header"},
		{union.ErrMissingHeader, "missing header"},
		{union.ErrNoCallerAnnotation, "no caller annotation"},
		{union.ErrAllGenotypesBlank, "all genotypes blank"},
		{union.ErrMalformedRecord, "malformed record"},
		{vcfunion.ErrUnreadableFile, "unreadable input"},
		{verify.ErrInvalidOutput, "invalid output"},
		{context.Canceled, "interrupted"},
	} {
		if errors.Is(err, v.err) {
			return v.kind
		}
	}
	return "io"
}

func buildVersion() string {
	if version != "" {
		return version
	}
	return compileinfo.Get().Version()
}

// scriptName is the executable's base name, as it appears in the provenance
// header keys.
func scriptName() string {
	exe, err := osext.Executable()
	if err != nil || exe == "" {
		exe = os.Args[0]
	}
	return filepath.Base(exe)
}
