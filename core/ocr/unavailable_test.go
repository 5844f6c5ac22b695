//go:build !cgo

package ocr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsReportUnavailable(t *testing.T) {
	_, err := NewRasterizer("doc.pdf", 0)
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = NewTesseract("eng")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = (&Tesseract{}).Recognize(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnavailable)
}
