//go:build cgo

package ocr

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/gaurav-prasanna/pagerag/core"
)

// Tesseract is a core.Recognizer backed by a single Tesseract client.
type Tesseract struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// NewTesseract creates a recognizer for language, e.g. "eng".
func NewTesseract(language string) (*Tesseract, error) {
	client := gosseract.NewClient()
	if language != "" {
		if err := client.SetLanguage(language); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("setting OCR language %q: %w", language, err)
		}
	}
	return &Tesseract{client: client}, nil
}

// Recognize returns the text in image and the mean word confidence (0-100).
func (t *Tesseract) Recognize(ctx context.Context, image []byte) (core.Recognition, error) {
	if err := ctx.Err(); err != nil {
		return core.Recognition{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.client.SetImageFromBytes(image); err != nil {
		return core.Recognition{}, fmt.Errorf("loading image: %w", err)
	}
	text, err := t.client.Text()
	if err != nil {
		return core.Recognition{}, fmt.Errorf("recognizing text: %w", err)
	}
	boxes, err := t.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return core.Recognition{}, fmt.Errorf("reading word confidences: %w", err)
	}

	return core.Recognition{Text: strings.TrimSpace(text), Confidence: meanConfidence(boxes)}, nil
}

// Close releases the Tesseract client.
func (t *Tesseract) Close() error { return t.client.Close() }

func meanConfidence(boxes []gosseract.BoundingBox) float64 {
	if len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence
	}
	return sum / float64(len(boxes))
}
