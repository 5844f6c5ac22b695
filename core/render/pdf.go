package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/pagerag/core/report"
)

// PDFRenderer lays out the Markdown report as a PDF document.
// Handles headings (variable font sizes), paragraphs, code blocks, and lists.
type PDFRenderer struct {
	markdown *MarkdownRenderer
}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{markdown: NewMarkdownRenderer()}
}

var numberedItem = regexp.MustCompile(`^\d+\.\s`)

// Render converts the report into PDF bytes.
func (r *PDFRenderer) Render(rep *report.Report) ([]byte, error) {
	md, err := r.markdown.Render(rep)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	lines := strings.Split(string(md), "\n")
	var code codeBlocks

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if code.toggle(line) {
			pdf.Ln(2)
			continue
		}

		if code.open() {
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, tr(line), "", "L", true)
			continue
		}

		if strings.TrimSpace(line) == "" {
			pdf.Ln(3)
			continue
		}

		if strings.HasPrefix(line, "#") {
			level := len(line) - len(strings.TrimLeft(line, "#"))
			renderHeading(pdf, tr(strings.TrimSpace(strings.TrimLeft(line, "# "))), level)
			continue
		}

		// Table rows: skip the separator, tab-join the cells.
		if strings.HasPrefix(line, "|") {
			if strings.HasPrefix(line, "|---") {
				continue
			}
			cells := strings.Split(strings.Trim(line, "|"), "|")
			for i := range cells {
				cells[i] = strings.TrimSpace(cells[i])
			}
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(strings.Join(cells, "    ")), "", "L", false)
			continue
		}

		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr("• "+strings.TrimSpace(trimmed[2:])), "", "L", false)
			continue
		}

		if numberedItem.MatchString(trimmed) {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(trimmed), "", "L", false)
			continue
		}

		// Regular paragraph text.
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// codeBlocks tracks fenced code blocks. A block closes only on a fence at
// least as long as the one that opened it.
type codeBlocks struct {
	fence string
}

// toggle reports whether line is a fence, updating the state.
func (c *codeBlocks) toggle(line string) bool {
	trimmed := strings.TrimSpace(line)
	if c.fence == "" {
		if !strings.HasPrefix(trimmed, "```") {
			return false
		}
		c.fence = trimmed[:len(trimmed)-len(strings.TrimLeft(trimmed, "`"))]
		return true
	}
	if isFence(line, c.fence) {
		c.fence = ""
		return true
	}
	return false
}

func (c *codeBlocks) open() bool { return c.fence != "" }

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, text, "", "L", false)
	pdf.Ln(2)
}
