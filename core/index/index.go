// Package index chunks page records, embeds the chunks and stores them, and
// answers similarity queries against what was stored.
package index

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gaurav-prasanna/pagerag/core"
	"github.com/gaurav-prasanna/pagerag/core/chunk"
)

const defaultConcurrency = 4

// Index ties a chunker, an embedder and a vector store together.
type Index struct {
	chunker     *chunk.Chunker
	embedder    core.Embedder
	store       core.VectorStore
	concurrency int
}

// New creates an Index. A non-positive concurrency falls back to 4.
func New(chunker *chunk.Chunker, embedder core.Embedder, store core.VectorStore, concurrency int) (*Index, error) {
	if chunker == nil || embedder == nil || store == nil {
		return nil, errors.New("index requires a chunker, an embedder and a store")
	}
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Index{chunker: chunker, embedder: embedder, store: store, concurrency: concurrency}, nil
}

// Index chunks records, embeds every chunk and stores them in record order.
// It returns the number of chunks stored.
func (x *Index) Index(ctx context.Context, records []core.PageRecord) (int, error) {
	chunks := x.chunker.Records(records)
	if len(chunks) == 0 {
		return 0, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(x.concurrency)
	for i := range chunks {
		g.Go(func() error {
			vec, err := x.embedder.Embed(gctx, chunks[i].Text)
			if err != nil {
				return fmt.Errorf("embedding page %d chunk %d: %w", chunks[i].PageNumber, chunks[i].Index, err)
			}
			chunks[i].Embedding = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if err := x.store.Store(ctx, chunks); err != nil {
		return 0, fmt.Errorf("storing chunks: %w", err)
	}
	return len(chunks), nil
}

// Retrieve embeds query and returns the k closest stored units.
func (x *Index) Retrieve(ctx context.Context, query string, k int) ([]core.RetrievedUnit, error) {
	vec, err := x.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	units, err := x.store.Search(ctx, vec, k)
	if err != nil {
		return nil, fmt.Errorf("searching store: %w", err)
	}
	return units, nil
}
