// Package store persists embedded chunks in SQLite and ranks them by cosine
// similarity against a query vector.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite"

	"github.com/gaurav-prasanna/pagerag/core"
)

// ErrDimensionMismatch is returned when vectors of different lengths meet.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;

CREATE TABLE IF NOT EXISTS chunks (
    id TEXT PRIMARY KEY,
    collection TEXT NOT NULL,
    page_number INTEGER NOT NULL,
    chunk_index INTEGER NOT NULL,
    text TEXT NOT NULL,
    content_type TEXT NOT NULL,
    is_visual_reference BOOLEAN NOT NULL DEFAULT 0,
    has_images BOOLEAN NOT NULL DEFAULT 0,
    -- JSON array of float32
    embedding TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chunks_collection ON chunks(collection);
`

// SQLite is a core.VectorStore scoped to one collection.
type SQLite struct {
	db         *sql.DB
	collection string
}

// OpenSQLite opens or creates the database at path. ":memory:" is accepted
// for tests.
func OpenSQLite(path, collection string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection: SQLite has a single writer, and every ":memory:"
	// connection would otherwise be a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &SQLite{db: db, collection: collection}, nil
}

// Close releases the database.
func (s *SQLite) Close() error { return s.db.Close() }

// Store inserts chunks in a single transaction.
func (s *SQLite) Store(ctx context.Context, chunks []core.Chunk) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, collection, page_number, chunk_index, text, content_type, is_visual_reference, has_images, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range chunks {
		if len(c.Embedding) == 0 {
			return fmt.Errorf("chunk %s of page %d has no embedding", c.ID, c.PageNumber)
		}
		vec, err := json.Marshal(c.Embedding)
		if err != nil {
			return fmt.Errorf("encoding embedding: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, c.ID, s.collection, c.PageNumber, c.Index, c.Text,
			c.ContentType.String(), c.IsVisualReference, c.HasImages, string(vec)); err != nil {
			return fmt.Errorf("inserting chunk %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing chunks: %w", err)
	}
	return nil
}

type scored struct {
	unit  core.RetrievedUnit
	index int
}

// Search returns the k chunks most similar to query, best first. Ties are
// broken by page number, then chunk index, so rankings are reproducible.
func (s *SQLite) Search(ctx context.Context, query []float32, k int) ([]core.RetrievedUnit, error) {
	if k < 1 || len(query) == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT page_number, chunk_index, text, content_type, is_visual_reference, embedding
		FROM chunks WHERE collection = ?`, s.collection)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var results []scored
	for rows.Next() {
		var (
			r        scored
			ctName   string
			vecJSON  string
			embedded []float32
		)
		if err := rows.Scan(&r.unit.PageNumber, &r.index, &r.unit.Text, &ctName, &r.unit.IsVisualReference, &vecJSON); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		if err := json.Unmarshal([]byte(vecJSON), &embedded); err != nil {
			return nil, fmt.Errorf("decoding embedding: %w", err)
		}
		if r.unit.ContentType, err = core.ParseContentType(ctName); err != nil {
			return nil, err
		}
		if r.unit.Score, err = cosine(query, embedded); err != nil {
			return nil, fmt.Errorf("page %d chunk %d: %w", r.unit.PageNumber, r.index, err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.unit.Score != b.unit.Score {
			return a.unit.Score > b.unit.Score
		}
		if a.unit.PageNumber != b.unit.PageNumber {
			return a.unit.PageNumber < b.unit.PageNumber
		}
		return a.index < b.index
	})

	if len(results) > k {
		results = results[:k]
	}
	units := make([]core.RetrievedUnit, len(results))
	for i, r := range results {
		units[i] = r.unit
	}
	return units, nil
}

// Count returns the number of chunks in the collection.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks WHERE collection = ?`, s.collection).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return n, nil
}

// Reset deletes every chunk in the collection.
func (s *SQLite) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM chunks WHERE collection = ?`, s.collection); err != nil {
		return fmt.Errorf("resetting collection %s: %w", s.collection, err)
	}
	return nil
}

func cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}
