// Package report summarizes an ingestion run: content-type statistics and
// page samples from the start, middle and end of the document.
package report

import (
	"unicode/utf8"

	"github.com/gaurav-prasanna/pagerag/core"
	"github.com/gaurav-prasanna/pagerag/core/ingest"
)

// PreviewLength is the number of runes of page text shown per sample.
const PreviewLength = 300

// DefaultSampleSize is the number of pages per sample section.
const DefaultSampleSize = 7

// Report is everything a renderer needs.
type Report struct {
	Source    string         `json:"source,omitempty"`
	Ingestion *ingest.Report `json:"ingestion,omitempty"`
	Stats     Stats          `json:"stats"`
	Sections  []Section      `json:"samples"`
}

// Stats aggregates the ingested records.
type Stats struct {
	TotalPages        int         `json:"total_pages"`
	ContentTypes      []TypeCount `json:"content_types"`
	VisualReferences  int         `json:"visual_references"`
	PagesWithImages   int         `json:"pages_with_images"`
	TotalTextLength   int         `json:"total_text_length"`
	AverageTextLength float64     `json:"average_text_length"`
}

// TypeCount is one row of the content-type breakdown.
type TypeCount struct {
	Type    core.ContentType `json:"type"`
	Count   int              `json:"count"`
	Percent float64          `json:"percent"`
}

// Section is a named run of page samples.
type Section struct {
	Name  string   `json:"name"`
	Pages []Sample `json:"pages"`
}

// Sample describes one page and previews its final text.
type Sample struct {
	PageNumber        int              `json:"page_number"`
	ContentType       core.ContentType `json:"content_type"`
	TextLength        int              `json:"text_length"`
	IsVisualReference bool             `json:"is_visual_reference"`
	HasImages         bool             `json:"has_images"`
	Preview           string           `json:"preview"`
	Remaining         int              `json:"remaining"`
}

// Build summarizes records. ing may be nil. A non-positive sampleSize falls
// back to DefaultSampleSize.
func Build(records []core.PageRecord, ing *ingest.Report, sampleSize int) *Report {
	if sampleSize <= 0 {
		sampleSize = DefaultSampleSize
	}
	return &Report{
		Ingestion: ing,
		Stats:     summarize(records),
		Sections:  samples(records, sampleSize),
	}
}

func summarize(records []core.PageRecord) Stats {
	s := Stats{TotalPages: len(records)}
	counts := make(map[core.ContentType]int, len(core.ContentTypes))

	for _, r := range records {
		counts[r.ContentType]++
		if r.IsVisualReference {
			s.VisualReferences++
		}
		if r.HasVisualElements {
			s.PagesWithImages++
		}
		s.TotalTextLength += utf8.RuneCountInString(r.FinalText)
	}

	for _, ct := range core.ContentTypes {
		tc := TypeCount{Type: ct, Count: counts[ct]}
		if s.TotalPages > 0 {
			tc.Percent = float64(tc.Count) / float64(s.TotalPages) * 100
			s.AverageTextLength = float64(s.TotalTextLength) / float64(s.TotalPages)
		}
		s.ContentTypes = append(s.ContentTypes, tc)
	}
	return s
}

func samples(records []core.PageRecord, size int) []Section {
	total := len(records)
	if total == 0 {
		return nil
	}

	middleStart := max(0, total/2-size/2)
	middleEnd := min(total, middleStart+size)

	return []Section{
		{Name: "first", Pages: sampleRange(records[:min(size, total)])},
		{Name: "middle", Pages: sampleRange(records[middleStart:middleEnd])},
		{Name: "last", Pages: sampleRange(records[max(0, total-size):])},
	}
}

func sampleRange(records []core.PageRecord) []Sample {
	out := make([]Sample, 0, len(records))
	for _, r := range records {
		runes := []rune(r.FinalText)
		preview := runes
		if len(preview) > PreviewLength {
			preview = preview[:PreviewLength]
		}
		out = append(out, Sample{
			PageNumber:        r.PageNumber,
			ContentType:       r.ContentType,
			TextLength:        len(runes),
			IsVisualReference: r.IsVisualReference,
			HasImages:         r.HasVisualElements,
			Preview:           string(preview),
			Remaining:         len(runes) - len(preview),
		})
	}
	return out
}
