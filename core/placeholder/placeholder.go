// Package placeholder synthesizes searchable stand-in text for pages whose
// content is carried by images and diagrams rather than a text layer.
package placeholder

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/pagerag/core"
)

// StructuredContentKinds are the kinds of structured content a visual page
// of a rulebook usually holds. They are listed in every visual placeholder.
var StructuredContentKinds = []string{
	"Rules tables or matrices",
	"Scoring forms or checklists",
	"Technical diagrams or illustrations",
	"Competition formats or brackets",
	"Reference charts or quick-lookup tables",
}

// Synthesize returns the placeholder text for a page. The result depends on
// its arguments only.
func Synthesize(pageNumber int, c core.Classification, imageCount, drawingCount int) string {
	if c.Type != core.ContentVisualHeavy {
		return genericReference(pageNumber, c.Description)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "PAGE %d VISUAL CONTENT REFERENCE\n\n", pageNumber)
	fmt.Fprintf(&b, "This page contains primarily visual elements: %s\n\n", c.Description)
	b.WriteString("CONTENT TYPE: Structured visual content (tables, forms, diagrams)\n")
	fmt.Fprintf(&b, "IMAGES: %d image(s)\n", imageCount)
	fmt.Fprintf(&b, "DIAGRAMS: %d diagram(s)\n\n", drawingCount)
	b.WriteString("NOTE: This page likely contains important structured information such as:\n")
	for _, kind := range StructuredContentKinds {
		fmt.Fprintf(&b, "- %s\n", kind)
	}
	fmt.Fprintf(&b, "\nFor complete and accurate information from this page, please refer directly to page %d "+
		"in the original PDF document, as it contains structured visual content that is best viewed in its original format.\n\n", pageNumber)
	fmt.Fprintf(&b, "SEARCH KEYWORDS: visual content, table, form, diagram, chart, structured layout, page %d", pageNumber)
	return b.String()
}

func genericReference(pageNumber int, description string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "PAGE %d CONTENT REFERENCE\n\n", pageNumber)
	if description != "" {
		b.WriteString(description)
		b.WriteString("\n\n")
	}
	b.WriteString("NOTE: This page contains visual elements that may include important diagrams, tables, or forms.\n")
	fmt.Fprintf(&b, "Please refer to page %d in the original PDF for complete visual information.", pageNumber)
	return b.String()
}
