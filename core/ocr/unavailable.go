//go:build !cgo

package ocr

import (
	"context"

	"github.com/gaurav-prasanna/pagerag/core"
)

// Rasterizer is unavailable without cgo.
type Rasterizer struct{}

// NewRasterizer always fails with ErrUnavailable.
func NewRasterizer(string, float64) (*Rasterizer, error) { return nil, ErrUnavailable }

// Rasterize always fails with ErrUnavailable.
func (*Rasterizer) Rasterize(int) ([]byte, error) { return nil, ErrUnavailable }

// Close is a no-op.
func (*Rasterizer) Close() error { return nil }

// Tesseract is unavailable without cgo.
type Tesseract struct{}

// NewTesseract always fails with ErrUnavailable.
func NewTesseract(string) (*Tesseract, error) { return nil, ErrUnavailable }

// Recognize always fails with ErrUnavailable.
func (*Tesseract) Recognize(context.Context, []byte) (core.Recognition, error) {
	return core.Recognition{}, ErrUnavailable
}

// Close is a no-op.
func (*Tesseract) Close() error { return nil }
