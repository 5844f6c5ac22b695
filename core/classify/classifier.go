// Package classify infers a page's dominant content type from its text
// length and visual element counts.
package classify

import (
	"fmt"

	"github.com/gaurav-prasanna/pagerag/core"
)

const (
	// TextRichThreshold is the length above which a page counts as text-rich.
	TextRichThreshold = 200
	// TextSparseThreshold is the length below which a page counts as text-sparse.
	TextSparseThreshold = 50
)

// Classify assigns exactly one content type. The rules are evaluated in
// priority order and the first match wins; negative inputs are treated as
// zero so every input has a category.
func Classify(textLength, imageCount, drawingCount int) core.Classification {
	textLength = max(textLength, 0)
	imageCount = max(imageCount, 0)
	drawingCount = max(drawingCount, 0)
	hasVisual := imageCount > 0 || drawingCount > 0

	switch {
	case textLength > TextRichThreshold && !hasVisual:
		return core.Classification{
			Type:        core.ContentTextOnly,
			Description: "Text content",
		}
	case textLength > TextRichThreshold && hasVisual:
		return core.Classification{
			Type:        core.ContentMixed,
			Description: fmt.Sprintf("Text with %d images and %d diagrams", imageCount, drawingCount),
		}
	case textLength < TextSparseThreshold && hasVisual:
		return core.Classification{
			Type:        core.ContentVisualHeavy,
			Description: visualDescription(imageCount, drawingCount),
		}
	case textLength < TextSparseThreshold && !hasVisual:
		return core.Classification{
			Type:        core.ContentMinimal,
			Description: "Minimal content - possibly blank or section divider",
		}
	default:
		return core.Classification{
			Type:        core.ContentBalanced,
			Description: fmt.Sprintf("Balanced content with text and %d visual elements", imageCount+drawingCount),
		}
	}
}

func visualDescription(imageCount, drawingCount int) string {
	switch {
	case imageCount > 0 && drawingCount > 0:
		return fmt.Sprintf("Primarily visual content: %d images and %d diagrams - likely contains tables, forms, or structured layouts", imageCount, drawingCount)
	case imageCount > 0:
		return fmt.Sprintf("Primarily visual content: %d images - likely contains tables, forms, or structured layouts", imageCount)
	default:
		return fmt.Sprintf("Primarily visual content: %d diagrams - likely contains charts or technical drawings", drawingCount)
	}
}
