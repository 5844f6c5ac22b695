// Package chunk splits page text into overlapping token windows for embedding.
// Uses a simple whitespace tokenizer (words ≈ tokens).
package chunk

import (
	"strings"

	"github.com/google/uuid"

	"github.com/gaurav-prasanna/pagerag/core"
)

const (
	defaultChunkSize = 4096
	defaultOverlap   = 512
)

// Chunker splits text into fixed-size token windows.
type Chunker struct {
	ChunkSize int // number of tokens (words) per chunk
	Overlap   int // tokens shared by consecutive chunks
}

// New creates a Chunker. A non-positive chunkSize falls back to 4096 and
// its 512-token overlap; an overlap outside [0, chunkSize) becomes 0.
func New(chunkSize, overlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize, overlap = defaultChunkSize, defaultOverlap
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}
	return &Chunker{ChunkSize: chunkSize, Overlap: overlap}
}

// Chunk splits the input text into windows of at most ChunkSize words.
// Each chunk is a contiguous block of words joined by spaces; the last
// window always ends at the final word.
func (c *Chunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := c.ChunkSize - c.Overlap
	var chunks []string
	for i := 0; ; i += step {
		end := min(i+c.ChunkSize, len(words))
		chunks = append(chunks, strings.Join(words[i:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks
}

// Records chunks every record's final text and copies the page metadata
// onto each chunk, preserving record order.
func (c *Chunker) Records(records []core.PageRecord) []core.Chunk {
	var out []core.Chunk
	for _, r := range records {
		for i, text := range c.Chunk(r.FinalText) {
			out = append(out, core.Chunk{
				ID:                uuid.NewString(),
				PageNumber:        r.PageNumber,
				Index:             i,
				Text:              text,
				ContentType:       r.ContentType,
				IsVisualReference: r.IsVisualReference,
				HasImages:         r.HasVisualElements,
			})
		}
	}
	return out
}
