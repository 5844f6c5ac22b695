// Package core defines the pipeline types and interfaces for pagerag.
// Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// RawPage is a single page as read from the document's native text layer.
type RawPage struct {
	Number       int
	Text         string
	ImageCount   int
	DrawingCount int
}

// Classification is the outcome of content-type inference for one page.
// Description is advisory (for logs and reports); never branch on it.
type Classification struct {
	Type        ContentType
	Description string
}

// PageRecord is the unit produced by ingestion. It is built once per
// surviving page and never updated afterwards.
type PageRecord struct {
	PageNumber         int         `json:"page_number"`
	RawText            string      `json:"raw_text"`
	ContentType        ContentType `json:"content_type"`
	ContentDescription string      `json:"content_description"`
	ImageCount         int         `json:"image_count"`
	DrawingCount       int         `json:"drawing_count"`
	HasVisualElements  bool        `json:"has_visual_elements"`
	IsVisualReference  bool        `json:"is_visual_reference"`
	OCRApplied         bool        `json:"ocr_applied"`
	FinalText          string      `json:"final_text"`
}

// Chunk is a slice of a PageRecord's final text, ready for embedding.
type Chunk struct {
	ID                string
	PageNumber        int
	Index             int
	Text              string
	ContentType       ContentType
	IsVisualReference bool
	HasImages         bool
	Embedding         []float32
}

// RetrievedUnit is a ranked text fragment returned by the vector store.
type RetrievedUnit struct {
	PageNumber        int
	Text              string
	ContentType       ContentType
	IsVisualReference bool
	Score             float64
}

// Recognition is the result of running OCR over a page image.
// Confidence is on a 0-100 scale.
type Recognition struct {
	Text       string
	Confidence float64
}

// PageSource yields the pages of a single document in page order.
// Pages are numbered from 1.
type PageSource interface {
	NumPages() int
	Page(number int) (RawPage, error)
}

// Rasterizer renders a page to an encoded image for OCR.
type Rasterizer interface {
	Rasterize(number int) ([]byte, error)
}

// Recognizer turns an image into recognized text.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (Recognition, error)
}

// Embedder generates a vector embedding for a text input.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Generator produces text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// VectorStore persists embedded chunks and ranks them against a query vector.
type VectorStore interface {
	Store(ctx context.Context, chunks []Chunk) error
	Search(ctx context.Context, query []float32, k int) ([]RetrievedUnit, error)
}

// Retriever returns the k units most relevant to a natural-language query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]RetrievedUnit, error)
}
