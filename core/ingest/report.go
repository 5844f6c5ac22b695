package ingest

import "time"

// Report counts what happened to each page during a run.
// Page lists are in page order.
type Report struct {
	TotalPages       int           `json:"total_pages"`
	Included         int           `json:"included"`
	Skipped          []int         `json:"skipped"`
	Empty            []int         `json:"empty"`
	VisualReferences []int         `json:"visual_references"`
	OCRApplied       []int         `json:"ocr_applied"`
	Duration         time.Duration `json:"duration"`
}
