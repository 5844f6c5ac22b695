// Package retrieve assembles retrieved units into the context block of a
// generation prompt.
package retrieve

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/pagerag/core"
)

// VisualNote is appended to units whose page was replaced by a placeholder.
const VisualNote = "[NOTE: This is a placeholder for a page with significant visual content like tables or diagrams. " +
	"Refer to the original PDF page for full context.]"

// Format keeps the first unit per page in rank order, wraps each in
// page-numbered delimiters and joins them with blank lines. An empty input
// yields an empty string.
func Format(units []core.RetrievedUnit) string {
	seen := make(map[int]struct{}, len(units))
	blocks := make([]string, 0, len(units))

	for _, u := range units {
		if _, dup := seen[u.PageNumber]; dup {
			continue
		}
		seen[u.PageNumber] = struct{}{}

		content := u.Text
		if u.IsVisualReference {
			content += "\n\n" + VisualNote
		}
		blocks = append(blocks, fmt.Sprintf("%s\n%s\n%s", StartDelimiter(u.PageNumber), content, EndDelimiter(u.PageNumber)))
	}

	return strings.Join(blocks, "\n\n")
}

// StartDelimiter opens the block for a page.
func StartDelimiter(page int) string {
	return fmt.Sprintf("--- START OF DOCUMENT FROM PAGE %d ---", page)
}

// EndDelimiter closes the block for a page.
func EndDelimiter(page int) string {
	return fmt.Sprintf("--- END OF DOCUMENT FROM PAGE %d ---", page)
}

// Pages returns the distinct page numbers of units in rank order.
func Pages(units []core.RetrievedUnit) []int {
	seen := make(map[int]struct{}, len(units))
	var pages []int
	for _, u := range units {
		if _, dup := seen[u.PageNumber]; dup {
			continue
		}
		seen[u.PageNumber] = struct{}{}
		pages = append(pages, u.PageNumber)
	}
	return pages
}
