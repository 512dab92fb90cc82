package verify

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/carbocation/vcfunion/union"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tsv(cols ...string) string {
	return strings.Join(cols, "\t") + "\n"
}

const input = "##fileformat=VCFv4.2\n" +
	`##FORMAT=<ID=GT,Number=1,Type=String,Description="Genotype">` + "\n"

func merged(t *testing.T) []byte {
	in := input +
		tsv("#CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO", "FORMAT", "S1", "2:S1", "3:S1") +
		tsv("1", "100", "rs1", "A", "T", "50", ".", "HC_AN=2", "GT:HC_GT", "0/1:0/1", "./.:.", "./.:.") +
		tsv("1", "200", ".", "C", "G", "50", ".", "DV_AF=1", "GT:HC_GT:DV_GT", "1/1:1/1:.", "1/1:.:1/1", "./.:.:.")

	logger := logrus.New()
	logger.Out = ioutil.Discard

	p := &union.Processor{
		Provenance: union.Provenance{Timestamp: time.Unix(0, 0).UTC(), Version: "v", Script: "genotypeunion", Command: "genotypeunion a b"},
		Logger:     logger,
	}

	var out bytes.Buffer
	_, err := p.Run(context.Background(), strings.NewReader(in), &out)
	require.NoError(t, err)

	return out.Bytes()
}

func TestReaderAcceptsMergedOutput(t *testing.T) {
	report, err := Reader(bytes.NewReader(merged(t)))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Samples)
	assert.Equal(t, 2, report.Variants)
	assert.Equal(t, map[string]int{"HC": 1, "HC-DV": 1}, report.BySet)
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.vcf")
	require.NoError(t, os.WriteFile(path, merged(t), 0644))

	report, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Variants)

	_, err = File(filepath.Join(t.TempDir(), "missing.vcf"))
	assert.Error(t, err)
}

func TestReaderRejectsUnmergedInput(t *testing.T) {
	raw := input +
		tsv("#CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO", "FORMAT", "S1") +
		tsv("1", "100", "rs1", "A", "T", "50", ".", ".", "GT", "0/1")

	_, err := Reader(strings.NewReader(raw))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrInvalidOutput.Error())
	assert.Contains(t, err.Error(), "is not declared")
}

func TestReaderRejectsUntieredVariant(t *testing.T) {
	out := merged(t)

	// Corrupt the FILTER of the last record
	i := bytes.LastIndex(out, []byte("twoCallers"))
	require.True(t, i > 0)
	corrupt := append(append(append([]byte{}, out[:i]...), "PASS"...), out[i+len("twoCallers"):]...)

	_, err := Reader(bytes.NewReader(corrupt))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `FILTER "PASS" is not a caller tier`)
}
