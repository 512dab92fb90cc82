package union

import (
	"strings"
	"testing"

	"github.com/carbocation/vcfunion/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedHeader = []string{"#CHROM", "POS", "ID", "REF", "ALT", "QUAL", "FILTER", "INFO", "FORMAT"}

func headerWith(samples ...string) []string {
	return append(append([]string{}, fixedHeader...), samples...)
}

func twoSampleLayout(t *testing.T) Layout {
	layout, err := ResolveLayout(headerWith("S1", "S2", "2:S1", "2:S2", "3:S1", "3:S2"))
	require.NoError(t, err)
	return layout
}

func mustParse(t *testing.T, cols ...string) *record.Record {
	rec, err := record.Parse(strings.Join(cols, "\t"))
	require.NoError(t, err)
	return rec
}

func TestResolveLayout(t *testing.T) {
	for _, v := range []struct {
		samples int
		want    Layout
	}{
		{1, Layout{9, 10, 10, 11, 11, 12}},
		{2, Layout{9, 11, 11, 13, 13, 15}},
		{3, Layout{9, 12, 12, 15, 15, 18}},
	} {
		names := make([]string, 3*v.samples)
		for i := range names {
			names[i] = "s"
		}

		layout, err := ResolveLayout(headerWith(names...))
		require.NoError(t, err)
		assert.Equal(t, v.want, layout)
		assert.Equal(t, v.samples, layout.Samples())
		assert.Equal(t, 9+3*v.samples, layout.Width())

		// Contiguous, equal width, no gaps
		assert.Equal(t, layout.End1, layout.Start2)
		assert.Equal(t, layout.End2, layout.Start3)
		assert.Equal(t, layout.End1-layout.Start1, layout.End3-layout.Start3)
	}
}

func TestResolveLayoutMalformed(t *testing.T) {
	for _, samples := range [][]string{
		nil,
		{"S1"},
		{"S1", "S2"},
		{"S1", "S2", "S3", "S4"},
		{"S1", "S2", "S3", "S4", "S5", "S6", "S7"},
	} {
		_, err := ResolveLayout(headerWith(samples...))
		assert.ErrorIs(t, err, ErrMalformedHeader, "%v", samples)
	}
}

func TestLayoutSampleNames(t *testing.T) {
	header := headerWith("S1", "S2", "2:S1", "2:S2", "3:S1", "3:S2")
	layout, err := ResolveLayout(header)
	require.NoError(t, err)

	assert.Equal(t, []string{"S1", "S2"}, layout.SampleNames(header))
	assert.Equal(t, headerWith("S1", "S2"), TruncateHeader(header, layout))
}

func TestClassify(t *testing.T) {
	for _, v := range []struct {
		format string
		label  string
		tier   string
	}{
		{"GT:DV_GT:DV_DP", "DV", FilterOneCaller},
		{"GT:HC_GT:HC_AD", "HC", FilterOneCaller},
		{"GT:strelka2_GT", "strelka2", FilterOneCaller},
		{"GT:DV_GT:HC_GT", "HC-DV", FilterTwoCallers},
		{"GT:HC_GT:strelka2_GT", "HC-strelka2", FilterTwoCallers},
		{"GT:strelka2_DP:DV_GT", "DV-strelka2", FilterTwoCallers},
		{"GT:strelka2_GT:HC_GT:DV_GT", "HC-DV-strelka2", FilterThreeCallers},
	} {
		rec := mustParse(t, "1", "100", ".", "A", "T", "50", ".", ".", v.format, "0/1", "./.", "./.")
		set, err := Classify(rec)
		require.NoError(t, err, v.format)
		assert.Equal(t, v.label, set.Label(), v.format)
		assert.Equal(t, v.tier, set.FilterTier(), v.format)
	}
}

func TestClassifyNoCaller(t *testing.T) {
	for _, format := range []string{"GT", "GT:AD:DP", "GT:XHC_GT:DVX", "GT:hc_GT"} {
		rec := mustParse(t, "1", "12719", ".", "G", "C", "32.29", ".", ".", format, "0/1", "0/0", "0/0")
		_, err := Classify(rec)
		assert.ErrorIs(t, err, ErrNoCallerAnnotation, format)
	}
}

func TestAnnotate(t *testing.T) {
	rec := mustParse(t, "1", "12719", ".", "G", "C", "32.29", ".", "HC_AN=4;HC_DP=12;DV_AF=0.25", "GT:HC_GT:DV_GT", "0/1", "0/0", "0/1")
	Annotate(rec, CallerSet(0).With(HC).With(DV))

	assert.Equal(t, "HC_AN=4;HC_DP=12;DV_AF=0.25;set=HC-DV", rec.Fixed[record.Info])
	assert.Equal(t, FilterTwoCallers, rec.Fixed[record.Filter])
}

func TestCallerSet(t *testing.T) {
	var set CallerSet
	assert.Equal(t, 0, set.Count())
	assert.Equal(t, "none", set.String())

	set = set.With(Strelka2)
	c, ok := set.Only()
	assert.True(t, ok)
	assert.Equal(t, Strelka2, c)

	set = set.With(HC)
	_, ok = set.Only()
	assert.False(t, ok)
	assert.True(t, set.Has(HC))
	assert.False(t, set.Has(DV))
	assert.Equal(t, "HC-strelka2", set.Label())
}

func TestClearsID(t *testing.T) {
	assert.False(t, ClearsID(CallerSet(0).With(HC)))
	assert.True(t, ClearsID(CallerSet(0).With(DV)))
	assert.True(t, ClearsID(CallerSet(0).With(Strelka2)))
	assert.True(t, ClearsID(CallerSet(0).With(HC).With(DV)))
	assert.True(t, ClearsID(CallerSet(0).With(HC).With(DV).With(Strelka2)))
}
