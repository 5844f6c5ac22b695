package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/pagerag/core"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		text    string
		want    []string
	}{
		{"empty", 3, 0, "   ", nil},
		{"fits in one", 5, 1, "a b c", []string{"a b c"}},
		{"no overlap", 2, 0, "a b c d e", []string{"a b", "c d", "e"}},
		{"with overlap", 3, 1, "a b c d e", []string{"a b c", "c d e"}},
		{"overlap tail", 4, 2, "a b c d e f g", []string{"a b c d", "c d e f", "e f g"}},
		{"collapses whitespace", 10, 0, "a\n\nb\tc", []string{"a b c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.size, tt.overlap).Chunk(tt.text))
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	c := New(0, 0)
	assert.Equal(t, 4096, c.ChunkSize)
	assert.Equal(t, 512, c.Overlap)

	c = New(10, 10)
	assert.Equal(t, 0, c.Overlap)
}

func TestChunk_CoversEveryWord(t *testing.T) {
	words := make([]string, 1000)
	for i := range words {
		words[i] = "w"
	}
	chunks := New(128, 16).Chunk(strings.Join(words, " "))

	require.NotEmpty(t, chunks)
	total := 0
	for i, ch := range chunks {
		n := len(strings.Fields(ch))
		assert.LessOrEqual(t, n, 128)
		total += n
		if i > 0 {
			total -= 16
		}
	}
	assert.Equal(t, 1000, total)
}

func TestRecords_CopiesMetadata(t *testing.T) {
	records := []core.PageRecord{
		{PageNumber: 4, FinalText: "a b c d", ContentType: core.ContentTextOnly},
		{PageNumber: 9, FinalText: "PAGE 9 VISUAL", ContentType: core.ContentVisualHeavy, IsVisualReference: true, HasVisualElements: true},
	}

	chunks := New(2, 0).Records(records)
	require.Len(t, chunks, 4)

	assert.Equal(t, 4, chunks[0].PageNumber)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, 1, chunks[1].Index)
	assert.Equal(t, "c d", chunks[1].Text)

	assert.Equal(t, 9, chunks[2].PageNumber)
	assert.True(t, chunks[2].IsVisualReference)
	assert.True(t, chunks[3].HasImages)
	assert.Equal(t, core.ContentVisualHeavy, chunks[3].ContentType)

	ids := map[string]bool{}
	for _, c := range chunks {
		assert.NotEmpty(t, c.ID)
		ids[c.ID] = true
	}
	assert.Len(t, ids, 4)
}
