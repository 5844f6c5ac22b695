// Package render turns an ingestion report into Markdown, JSON or PDF.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/pagerag/core/report"
)

// Renderer serializes a report.
type Renderer interface {
	Render(r *report.Report) ([]byte, error)
	Extension() string
}

// ForFormat returns the renderer for "md", "json" or "pdf".
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "md", "markdown":
		return NewMarkdownRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	case "pdf":
		return NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown report format %q (want md, json or pdf)", format)
	}
}

// pageList compacts sorted page numbers into ranges, e.g. "1-14, 20".
func pageList(pages []int) string {
	if len(pages) == 0 {
		return "none"
	}
	var parts []string
	for i := 0; i < len(pages); {
		j := i
		for j+1 < len(pages) && pages[j+1] == pages[j]+1 {
			j++
		}
		if i == j {
			parts = append(parts, strconv.Itoa(pages[i]))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", pages[i], pages[j]))
		}
		i = j + 1
	}
	return strings.Join(parts, ", ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
