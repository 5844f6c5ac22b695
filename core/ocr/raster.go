//go:build cgo

package ocr

import (
	"fmt"
	"sync"

	"github.com/gen2brain/go-fitz"
)

// Rasterizer is a core.Rasterizer that renders pages of one PDF to PNG.
type Rasterizer struct {
	mu  sync.Mutex
	doc *fitz.Document
	dpi float64
}

// NewRasterizer opens the PDF at path. A non-positive dpi falls back to 150.
func NewRasterizer(path string, dpi float64) (*Rasterizer, error) {
	if dpi <= 0 {
		dpi = defaultDPI
	}
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF for rasterizing: %w", err)
	}
	return &Rasterizer{doc: doc, dpi: dpi}, nil
}

// Rasterize renders page number n, counting from 1, as PNG bytes.
func (r *Rasterizer) Rasterize(n int) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	img, err := r.doc.ImagePNG(n-1, r.dpi)
	if err != nil {
		return nil, fmt.Errorf("rasterizing page %d: %w", n, err)
	}
	return img, nil
}

// Close releases the document.
func (r *Rasterizer) Close() error { return r.doc.Close() }
