// Package extract reads pages from a PDF's native text layer.
//
// For each page it reports the plain text, the number of embedded images
// and the number of painted vector paths plus Form XObjects, which together
// drive content classification downstream.
package extract

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/gaurav-prasanna/pagerag/core"
)

// PDFSource is a core.PageSource over a PDF file. Close it when done.
type PDFSource struct {
	file   *os.File
	reader *pdf.Reader
}

// Open opens the PDF at path.
func Open(path string) (src *PDFSource, err error) {
	// The parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			src, err = nil, fmt.Errorf("opening PDF %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	return &PDFSource{file: f, reader: r}, nil
}

// Close releases the underlying file.
func (s *PDFSource) Close() error { return s.file.Close() }

// NumPages returns the page count.
func (s *PDFSource) NumPages() int { return s.reader.NumPage() }

// Page reads page number n, counting from 1.
func (s *PDFSource) Page(n int) (page core.RawPage, err error) {
	if n < 1 || n > s.NumPages() {
		return core.RawPage{}, fmt.Errorf("page %d out of range 1-%d", n, s.NumPages())
	}

	defer func() {
		if r := recover(); r != nil {
			page, err = core.RawPage{}, fmt.Errorf("reading page %d: %v", n, r)
		}
	}()

	p := s.reader.Page(n)
	if p.V.IsNull() {
		return core.RawPage{}, fmt.Errorf("page %d has no page object", n)
	}

	text, err := p.GetPlainText(nil)
	if err != nil {
		return core.RawPage{}, fmt.Errorf("reading text of page %d: %w", n, err)
	}

	images, forms := countXObjects(p)
	return core.RawPage{
		Number:       n,
		Text:         text,
		ImageCount:   images,
		DrawingCount: countPaths(p) + forms,
	}, nil
}

// paintOps are the content-stream operators that stroke or fill a path.
var paintOps = map[string]bool{
	"S": true, "s": true,
	"f": true, "F": true, "f*": true,
	"B": true, "B*": true, "b": true, "b*": true,
}

// countPaths counts painted vector paths: lines, curves and rectangles.
func countPaths(p pdf.Page) int {
	n := 0
	pdf.Interpret(p.V.Key("Contents"), func(stk *pdf.Stack, op string) {
		for stk.Len() > 0 {
			stk.Pop()
		}
		if paintOps[op] {
			n++
		}
	})
	return n
}

// countXObjects counts the Image and Form XObjects in the page resources.
func countXObjects(p pdf.Page) (images, forms int) {
	xobjects := p.Resources().Key("XObject")
	for _, name := range xobjects.Keys() {
		switch xobjects.Key(name).Key("Subtype").Name() {
		case "Image":
			images++
		case "Form":
			forms++
		}
	}
	return images, forms
}
