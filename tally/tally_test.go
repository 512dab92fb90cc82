package tally

import (
	"bytes"
	"strings"
	"testing"

	"github.com/carbocation/vcfunion/record"
	"github.com/carbocation/vcfunion/union"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, cols ...string) *record.Record {
	rec, err := record.Parse(strings.Join(cols, "\t"))
	require.NoError(t, err)
	return rec
}

func set(callers ...union.Caller) union.CallerSet {
	var s union.CallerSet
	for _, c := range callers {
		s = s.With(c)
	}
	return s
}

func observed(t *testing.T) *Tally {
	tl := New()
	require.NoError(t, tl.ObserveHeader([]string{"S1", "S2"}))

	const format = "GT:concensus_GT:dv_priority_GT"
	for _, v := range []struct {
		set    union.CallerSet
		s1, s2 string
	}{
		{set(union.HC), "0/1:./.:./.", "0/0:./.:./."},
		{set(union.HC, union.DV), "0/1:0/1:0/1", "./.:./.:1/1"},
		{set(union.HC, union.DV, union.Strelka2), "1/1:1/1:1/1", "./.:./.:./."},
		{set(union.DV, union.Strelka2), "0/1:0/1:0/1", "0/1:0/1:0/1"},
	} {
		rec := mustParse(t, "1", "100", ".", "A", "T", "9", v.set.FilterTier(), "set="+v.set.Label(), format, v.s1, v.s2)
		require.NoError(t, tl.ObserveRecord(rec, v.set))
	}

	return tl
}

func TestTallyCounts(t *testing.T) {
	tl := observed(t)

	assert.Equal(t, 4, tl.Records())
	assert.Equal(t, map[string]int{"HC": 1, "HC-DV": 1, "HC-DV-strelka2": 1, "DV-strelka2": 1}, tl.BySet())
	assert.Equal(t, map[string]int{union.FilterOneCaller: 1, union.FilterTwoCallers: 2, union.FilterThreeCallers: 1}, tl.ByTier())
	assert.Equal(t, []string{"DV-strelka2", "HC", "HC-DV", "HC-DV-strelka2"}, tl.SetLabels())

	rows := tl.Rows()
	require.Len(t, rows, 2)

	assert.Equal(t, "S1", rows[0].Sample)
	assert.Equal(t, 4, rows[0].Sites)
	assert.Equal(t, 3, rows[0].Called)
	assert.Equal(t, 3, rows[0].MultiCaller)
	assert.Equal(t, 3, rows[0].Concordant)
	assert.Equal(t, 1.0, rows[0].ConcordanceRate.Float64)

	assert.Equal(t, "S2", rows[1].Sample)
	assert.Equal(t, 2, rows[1].Called)
	assert.Equal(t, 1, rows[1].Concordant)
	assert.InDelta(t, 1.0/3, rows[1].ConcordanceRate.Float64, 1e-9)
}

func TestRateFrom(t *testing.T) {
	assert.False(t, RateFrom(0, 0).Valid)
	assert.True(t, RateFrom(0, 3).Valid)

	s, err := RateFrom(1, 4).MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "0.250000", s)

	s, err = RateFrom(1, 0).MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestWriteTSV(t *testing.T) {
	tl := New()
	require.NoError(t, tl.ObserveHeader([]string{"S1", "S2"}))
	rec := mustParse(t, "1", "100", ".", "A", "T", "9", "oneCaller", "set=DV", "GT:concensus_GT:dv_priority_GT", "0/1:./.:0/1", "./.:./.:./.")
	require.NoError(t, tl.ObserveRecord(rec, set(union.DV)))

	var buf bytes.Buffer
	require.NoError(t, tl.WriteTSV(&buf))

	assert.Equal(t,
		"sample\tsites\tcalled\tmulti_caller_sites\tconcordant_sites\tconcordance_rate\n"+
			"S1\t1\t1\t0\t0\t\n"+
			"S2\t1\t0\t0\t0\t\n",
		buf.String())
}

func TestDescribe(t *testing.T) {
	d, err := observed(t).Describe()
	require.NoError(t, err)

	assert.Equal(t, 2, d.Samples)
	assert.InDelta(t, (1.0+1.0/3)/2, d.Mean, 1e-9)
	assert.InDelta(t, (1.0+1.0/3)/2, d.Median, 1e-9)
	assert.InDelta(t, 1.0/3, d.Min, 1e-9)
	assert.Equal(t, 1.0, d.Max)

	empty, err := New().Describe()
	require.NoError(t, err)
	assert.Equal(t, Description{}, empty)
}
