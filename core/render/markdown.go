package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/gaurav-prasanna/pagerag/core/report"
)

// MarkdownRenderer writes the report as a Markdown document. It is also the
// source the PDF renderer lays out.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the report as Markdown.
func (r *MarkdownRenderer) Render(rep *report.Report) ([]byte, error) {
	var b strings.Builder

	title := "Ingestion report"
	if rep.Source != "" {
		title += ": " + rep.Source
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	if ing := rep.Ingestion; ing != nil {
		b.WriteString("## Run\n\n")
		fmt.Fprintf(&b, "- Pages in document: %d\n", ing.TotalPages)
		fmt.Fprintf(&b, "- Pages included: %d\n", ing.Included)
		fmt.Fprintf(&b, "- Skipped: %s\n", pageList(ing.Skipped))
		fmt.Fprintf(&b, "- Empty after cleaning: %s\n", pageList(ing.Empty))
		fmt.Fprintf(&b, "- Visual references: %s\n", pageList(ing.VisualReferences))
		fmt.Fprintf(&b, "- OCR applied: %s\n", pageList(ing.OCRApplied))
		fmt.Fprintf(&b, "- Duration: %s\n\n", ing.Duration.Round(time.Millisecond))
	}

	s := rep.Stats
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Total pages: %d\n", s.TotalPages)
	fmt.Fprintf(&b, "- Visual references: %d\n", s.VisualReferences)
	fmt.Fprintf(&b, "- Pages with images: %d\n", s.PagesWithImages)
	fmt.Fprintf(&b, "- Total text length: %d characters\n", s.TotalTextLength)
	fmt.Fprintf(&b, "- Average text per page: %.1f characters\n\n", s.AverageTextLength)

	b.WriteString("## Content types\n\n")
	b.WriteString("| Type | Pages | Share |\n|---|---|---|\n")
	for _, tc := range s.ContentTypes {
		fmt.Fprintf(&b, "| %s | %d | %.1f%% |\n", tc.Type, tc.Count, tc.Percent)
	}

	for _, sec := range rep.Sections {
		fmt.Fprintf(&b, "\n## %s %d pages\n", strings.ToUpper(sec.Name[:1])+sec.Name[1:], len(sec.Pages))
		for _, p := range sec.Pages {
			fmt.Fprintf(&b, "\n### Page %d\n\n", p.PageNumber)
			fmt.Fprintf(&b, "- Content type: %s\n", p.ContentType)
			fmt.Fprintf(&b, "- Text length: %d characters\n", p.TextLength)
			fmt.Fprintf(&b, "- Visual reference: %s\n", yesNo(p.IsVisualReference))
			fmt.Fprintf(&b, "- Has images: %s\n\n", yesNo(p.HasImages))
			fence := fenceFor(p.Preview)
			fmt.Fprintf(&b, "%s\n%s\n%s\n", fence, p.Preview, fence)
			if p.Remaining > 0 {
				fmt.Fprintf(&b, "\n[...%d more characters...]\n", p.Remaining)
			}
		}
	}

	return []byte(b.String()), nil
}

// fenceFor returns a backtick fence longer than any backtick run in text, so
// page text can never close its own code block.
func fenceFor(text string) string {
	longest, run := 0, 0
	for _, r := range text {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return strings.Repeat("`", max(3, longest+1))
}

// isFence reports whether line closes a block opened with fence.
func isFence(line, fence string) bool {
	line = strings.TrimSpace(line)
	return len(line) >= len(fence) && strings.Trim(line, "`") == ""
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
