package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/pagerag/core"
	"github.com/gaurav-prasanna/pagerag/core/retrieve"
)

type stubRetriever struct {
	units []core.RetrievedUnit
	err   error
	query string
	k     int
}

func (r *stubRetriever) Retrieve(_ context.Context, query string, k int) ([]core.RetrievedUnit, error) {
	r.query, r.k = query, k
	return r.units, r.err
}

type stubGenerator struct {
	prompt string
	answer string
	err    error
}

func (g *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.answer, g.err
}

func TestChain_Answer(t *testing.T) {
	r := &stubRetriever{units: []core.RetrievedUnit{
		{PageNumber: 42, Text: "A sweep scores three points."},
		{PageNumber: 88, Text: "PAGE 88 VISUAL CONTENT REFERENCE", IsVisualReference: true},
		{PageNumber: 42, Text: "duplicate chunk"},
	}}
	g := &stubGenerator{answer: "Three points. Source: Page 42"}

	ans, err := New(r, g, 0).Answer(context.Background(), "  How many points for a sweep?  ")
	require.NoError(t, err)

	assert.Equal(t, "Three points. Source: Page 42", ans.Text)
	assert.Equal(t, []int{42, 88}, ans.Pages)
	assert.Equal(t, "How many points for a sweep?", r.query)
	assert.Equal(t, 10, r.k)

	assert.Contains(t, g.prompt, "You are an expert assistant for the Pencak Silat rulebook.")
	assert.Contains(t, g.prompt, "QUESTION:\nHow many points for a sweep?\n")
	assert.Contains(t, g.prompt, "CONTEXT:\n"+retrieve.Format(r.units)+"\n")
	assert.Contains(t, g.prompt, retrieve.VisualNote)
	assert.NotContains(t, g.prompt, "duplicate chunk")
	assert.NotContains(t, g.prompt, "{context}")
}

func TestChain_EmptyQuestion(t *testing.T) {
	r := &stubRetriever{}
	_, err := New(r, &stubGenerator{}, 3).Answer(context.Background(), " \n\t")
	assert.ErrorIs(t, err, ErrEmptyQuestion)
	assert.Empty(t, r.query)
}

func TestChain_Errors(t *testing.T) {
	boom := errors.New("boom")

	_, err := New(&stubRetriever{err: boom}, &stubGenerator{}, 3).Answer(context.Background(), "q")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "retrieving context")

	_, err = New(&stubRetriever{}, &stubGenerator{err: boom}, 3).Answer(context.Background(), "q")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "generating answer")
}

func TestPrompt_NoContext(t *testing.T) {
	p := Prompt("", "What are the competition categories?")
	assert.Contains(t, p, "CONTEXT:\n\n\nQUESTION:")
	assert.Contains(t, p, "5.  Do not make up information or hallucinate.")
}
