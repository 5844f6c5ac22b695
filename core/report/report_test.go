package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/pagerag/core"
	"github.com/gaurav-prasanna/pagerag/core/ingest"
)

func pages(n int) []core.PageRecord {
	records := make([]core.PageRecord, n)
	for i := range records {
		records[i] = core.PageRecord{
			PageNumber:  i + 15,
			ContentType: core.ContentTextOnly,
			FinalText:   "rule",
		}
	}
	return records
}

func TestBuild_Stats(t *testing.T) {
	records := []core.PageRecord{
		{PageNumber: 15, ContentType: core.ContentTextOnly, FinalText: strings.Repeat("a", 300)},
		{PageNumber: 16, ContentType: core.ContentVisualHeavy, IsVisualReference: true, HasVisualElements: true, FinalText: strings.Repeat("b", 100)},
		{PageNumber: 17, ContentType: core.ContentTextOnly, HasVisualElements: true, FinalText: "ééé"},
		{PageNumber: 18, ContentType: core.ContentBalanced, FinalText: "c"},
	}
	ing := &ingest.Report{TotalPages: 20, Included: 4}

	r := Build(records, ing, 2)
	assert.Same(t, ing, r.Ingestion)

	s := r.Stats
	assert.Equal(t, 4, s.TotalPages)
	assert.Equal(t, 1, s.VisualReferences)
	assert.Equal(t, 2, s.PagesWithImages)
	assert.Equal(t, 404, s.TotalTextLength)
	assert.InDelta(t, 101.0, s.AverageTextLength, 1e-9)

	require.Len(t, s.ContentTypes, len(core.ContentTypes))
	want := map[core.ContentType]int{core.ContentTextOnly: 2, core.ContentVisualHeavy: 1, core.ContentBalanced: 1}
	for i, tc := range s.ContentTypes {
		assert.Equal(t, core.ContentTypes[i], tc.Type)
		assert.Equal(t, want[tc.Type], tc.Count, tc.Type.String())
		assert.InDelta(t, float64(want[tc.Type])*25, tc.Percent, 1e-9)
	}
}

func TestBuild_Samples(t *testing.T) {
	r := Build(pages(20), nil, 3)
	require.Len(t, r.Sections, 3)

	numbers := func(sec Section) []int {
		var out []int
		for _, p := range sec.Pages {
			out = append(out, p.PageNumber)
		}
		return out
	}
	assert.Equal(t, "first", r.Sections[0].Name)
	assert.Equal(t, []int{15, 16, 17}, numbers(r.Sections[0]))
	assert.Equal(t, "middle", r.Sections[1].Name)
	assert.Equal(t, []int{24, 25, 26}, numbers(r.Sections[1]))
	assert.Equal(t, "last", r.Sections[2].Name)
	assert.Equal(t, []int{32, 33, 34}, numbers(r.Sections[2]))
}

func TestBuild_FewerPagesThanSample(t *testing.T) {
	r := Build(pages(2), nil, 0)
	require.Len(t, r.Sections, 3)
	for _, sec := range r.Sections {
		assert.Len(t, sec.Pages, 2, sec.Name)
	}
}

func TestBuild_Empty(t *testing.T) {
	r := Build(nil, nil, 5)
	assert.Zero(t, r.Stats.TotalPages)
	assert.Zero(t, r.Stats.AverageTextLength)
	assert.Nil(t, r.Sections)
	for _, tc := range r.Stats.ContentTypes {
		assert.Zero(t, tc.Percent)
	}
}

func TestSample_Preview(t *testing.T) {
	long := strings.Repeat("ж", PreviewLength+42)
	r := Build([]core.PageRecord{{PageNumber: 15, ContentType: core.ContentTextOnly, FinalText: long}}, nil, 1)

	s := r.Sections[0].Pages[0]
	assert.Equal(t, PreviewLength, len([]rune(s.Preview)))
	assert.Equal(t, 42, s.Remaining)
	assert.Equal(t, PreviewLength+42, s.TextLength)
}
