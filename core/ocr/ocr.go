// Package ocr renders PDF pages to images and recognizes their text. Both
// adapters wrap native libraries (MuPDF and Tesseract) through cgo; builds
// without cgo get constructors that return ErrUnavailable.
package ocr

import "errors"

// ErrUnavailable is returned by the constructors when the binary was built
// without the native OCR libraries.
var ErrUnavailable = errors.New("OCR support not built in (requires cgo)")

const defaultDPI = 150
