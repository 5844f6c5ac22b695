package extract

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTextFixture writes a two-page PDF: page 1 has a sentence and two
// framed boxes, page 2 is empty.
func writeTextFixture(t *testing.T) string {
	t.Helper()
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 12)
	doc.Text(20, 30, "Scoring rules for the tanding category")
	doc.Rect(20, 50, 40, 20, "D")
	doc.Rect(80, 50, 40, 20, "D")
	doc.AddPage()

	path := filepath.Join(t.TempDir(), "text.pdf")
	require.NoError(t, doc.OutputFileAndClose(path))
	return path
}

// writeShapesFixture writes a one-page PDF with a line, a circle and a
// filled rectangle.
func writeShapesFixture(t *testing.T) string {
	t.Helper()
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.Line(10, 10, 100, 10)
	doc.Circle(50, 80, 20, "D")
	doc.Rect(20, 150, 30, 30, "F")

	path := filepath.Join(t.TempDir(), "shapes.pdf")
	require.NoError(t, doc.OutputFileAndClose(path))
	return path
}

// writeImageFixture writes a one-page PDF holding a single PNG image.
func writeImageFixture(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 8, 8))))

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	opt := gofpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("diagram", opt, &buf)
	doc.ImageOptions("diagram", 20, 20, 50, 50, false, opt, 0, "")

	path := filepath.Join(t.TempDir(), "image.pdf")
	require.NoError(t, doc.OutputFileAndClose(path))
	return path
}

func TestPDFSource_TextPage(t *testing.T) {
	src, err := Open(writeTextFixture(t))
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, 2, src.NumPages())

	page, err := src.Page(1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Number)
	assert.Contains(t, page.Text, "Scoring rules for the tanding category")
	assert.Zero(t, page.ImageCount)
	assert.Equal(t, 2, page.DrawingCount)

	blank, err := src.Page(2)
	require.NoError(t, err)
	assert.Equal(t, 2, blank.Number)
	assert.Empty(t, blank.Text)
	assert.Zero(t, blank.DrawingCount)
}

func TestPDFSource_CountsEveryPaintedPath(t *testing.T) {
	src, err := Open(writeShapesFixture(t))
	require.NoError(t, err)
	defer src.Close()

	page, err := src.Page(1)
	require.NoError(t, err)
	assert.Equal(t, 3, page.DrawingCount)
	assert.Zero(t, page.ImageCount)
}

func TestPDFSource_ImagePage(t *testing.T) {
	src, err := Open(writeImageFixture(t))
	require.NoError(t, err)
	defer src.Close()

	page, err := src.Page(1)
	require.NoError(t, err)
	assert.Equal(t, 1, page.ImageCount)
	assert.Empty(t, page.Text)
}

func TestPDFSource_OutOfRange(t *testing.T) {
	src, err := Open(writeTextFixture(t))
	require.NoError(t, err)
	defer src.Close()

	for _, n := range []int{0, -1, 3} {
		_, err := src.Page(n)
		assert.Error(t, err, "page %d", n)
	}
}

func TestOpen_Errors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)

	garbage := filepath.Join(t.TempDir(), "garbage.pdf")
	require.NoError(t, os.WriteFile(garbage, []byte("not a pdf at all"), 0o644))
	_, err = Open(garbage)
	assert.Error(t, err)
}
