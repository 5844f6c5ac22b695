// Package rag answers questions about the ingested document by retrieving
// relevant pages and asking a language model to answer from them alone.
package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/pagerag/core"
	"github.com/gaurav-prasanna/pagerag/core/retrieve"
)

// ErrEmptyQuestion is returned when Answer is called with a blank question.
var ErrEmptyQuestion = errors.New("question is empty")

const defaultK = 10

const promptTemplate = `You are an expert assistant for the Pencak Silat rulebook. Your task is to provide accurate, clear, and concise answers based ONLY on the provided context. Do not use any outside knowledge.

CONTEXT:
{context}

QUESTION:
{question}

INSTRUCTIONS:
1.  Answer the question using only the information from the context above.
2.  If the context does not contain the answer, state clearly "The provided context does not contain enough information to answer this question."
3.  Cite the page number(s) from which you derived your answer (e.g., "Source: Page 123"). If the information comes from multiple pages, cite them all.
4.  If the context includes a note about visual content (tables, diagrams), explicitly advise the user to refer to that page in the PDF for the visual information.
5.  Do not make up information or hallucinate.
`

// Answer is a generated response and the pages its context came from.
type Answer struct {
	Text  string
	Pages []int
}

// Chain retrieves context for a question and generates an answer.
type Chain struct {
	retriever core.Retriever
	generator core.Generator
	k         int
}

// New creates a Chain. A non-positive k falls back to 10.
func New(retriever core.Retriever, generator core.Generator, k int) *Chain {
	if k < 1 {
		k = defaultK
	}
	return &Chain{retriever: retriever, generator: generator, k: k}
}

// Prompt fills the rulebook prompt with formatted context and the question.
func Prompt(contextBlock, question string) string {
	return strings.NewReplacer("{context}", contextBlock, "{question}", question).Replace(promptTemplate)
}

// Answer retrieves up to k units for question and generates an answer.
func (c *Chain) Answer(ctx context.Context, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	units, err := c.retriever.Retrieve(ctx, question, c.k)
	if err != nil {
		return nil, fmt.Errorf("retrieving context: %w", err)
	}

	text, err := c.generator.Generate(ctx, Prompt(retrieve.Format(units), question))
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}
	return &Answer{Text: text, Pages: retrieve.Pages(units)}, nil
}
