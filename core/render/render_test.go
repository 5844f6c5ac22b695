package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/pagerag/core"
	"github.com/gaurav-prasanna/pagerag/core/ingest"
	"github.com/gaurav-prasanna/pagerag/core/report"
)

func sampleReport() *report.Report {
	records := []core.PageRecord{
		{PageNumber: 15, ContentType: core.ContentTextOnly, FinalText: strings.Repeat("w", 320)},
		{PageNumber: 16, ContentType: core.ContentVisualHeavy, IsVisualReference: true, HasVisualElements: true, FinalText: "PAGE 16 VISUAL CONTENT REFERENCE"},
	}
	ing := &ingest.Report{
		TotalPages:       18,
		Included:         2,
		Skipped:          []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14},
		Empty:            []int{17, 18},
		VisualReferences: []int{16},
		Duration:         1500 * time.Millisecond,
	}
	rep := report.Build(records, ing, 1)
	rep.Source = "rules.pdf"
	return rep
}

func TestMarkdownRenderer(t *testing.T) {
	out, err := NewMarkdownRenderer().Render(sampleReport())
	require.NoError(t, err)
	md := string(out)

	for _, want := range []string{
		"# Ingestion report: rules.pdf\n",
		"- Skipped: 1-14\n",
		"- Empty after cleaning: 17-18\n",
		"- Visual references: 16\n",
		"- OCR applied: none\n",
		"- Duration: 1.5s\n",
		"- Total pages: 2\n",
		"| text_only | 1 | 50.0% |\n",
		"| visual_heavy | 1 | 50.0% |\n",
		"| minimal_content | 0 | 0.0% |\n",
		"## First 1 pages\n",
		"### Page 16\n",
		"- Visual reference: yes\n",
		"[...20 more characters...]",
	} {
		assert.Contains(t, md, want)
	}
}

func TestJSONRenderer(t *testing.T) {
	out, err := NewJSONRenderer().Render(sampleReport())
	require.NoError(t, err)

	var decoded struct {
		Source string `json:"source"`
		Stats  struct {
			TotalPages   int `json:"total_pages"`
			ContentTypes []struct {
				Type  string `json:"type"`
				Count int    `json:"count"`
			} `json:"content_types"`
		} `json:"stats"`
		Samples []struct {
			Name string `json:"name"`
		} `json:"samples"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "rules.pdf", decoded.Source)
	assert.Equal(t, 2, decoded.Stats.TotalPages)
	assert.Equal(t, "text_only", decoded.Stats.ContentTypes[0].Type)
	require.Len(t, decoded.Samples, 3)
	assert.Equal(t, "middle", decoded.Samples[1].Name)
	assert.Equal(t, ".json", NewJSONRenderer().Extension())
}

func TestPDFRenderer(t *testing.T) {
	out, err := NewPDFRenderer().Render(sampleReport())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Equal(t, ".pdf", NewPDFRenderer().Extension())
}

func TestMarkdownRenderer_PreviewCannotCloseItsBlock(t *testing.T) {
	text := "Intro line\n```\nnot a fence for the report\n```\nTail"
	rep := report.Build([]core.PageRecord{{PageNumber: 20, ContentType: core.ContentTextOnly, FinalText: text}}, nil, 1)

	out, err := NewMarkdownRenderer().Render(rep)
	require.NoError(t, err)
	assert.Contains(t, string(out), "````\n"+text+"\n````\n")

	var code codeBlocks
	for _, line := range strings.Split(string(out), "\n") {
		if code.toggle(line) {
			continue
		}
		inside := code.open()
		switch {
		case line == "Intro line", line == "not a fence for the report", line == "Tail":
			assert.True(t, inside, line)
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "#"):
			assert.False(t, inside, line)
		}
	}
	assert.False(t, code.open(), "every block is closed")
}

func TestFenceFor(t *testing.T) {
	assert.Equal(t, "```", fenceFor("plain"))
	assert.Equal(t, "````", fenceFor("a ``` b"))
	assert.Equal(t, "```", fenceFor("`x` and ``y``"))
}

func TestForFormat(t *testing.T) {
	for format, ext := range map[string]string{"md": ".md", "markdown": ".md", "JSON": ".json", "pdf": ".pdf"} {
		r, err := ForFormat(format)
		require.NoError(t, err, format)
		assert.Equal(t, ext, r.Extension())
	}
	_, err := ForFormat("docx")
	assert.Error(t, err)
}

func TestPageList(t *testing.T) {
	tests := []struct {
		in   []int
		want string
	}{
		{nil, "none"},
		{[]int{7}, "7"},
		{[]int{1, 2, 3, 5, 7, 8}, "1-3, 5, 7-8"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pageList(tt.in))
	}
}
