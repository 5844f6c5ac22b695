// Package ingest walks a document's pages in order and turns each surviving
// page into a PageRecord:
//
//	extract → filter → OCR fallback → classify → normalize → placeholder → emit
//
// Ingestion is sequential. A page whose extraction fails aborts the run,
// since numbering for every later page could no longer be trusted.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gaurav-prasanna/pagerag/core"
	"github.com/gaurav-prasanna/pagerag/core/classify"
	"github.com/gaurav-prasanna/pagerag/core/filter"
	"github.com/gaurav-prasanna/pagerag/core/normalize"
	"github.com/gaurav-prasanna/pagerag/core/placeholder"
	"github.com/gaurav-prasanna/pagerag/logger"
)

const defaultProgressEvery = 50

// ErrExtraction marks a fatal failure to read a page.
var ErrExtraction = errors.New("page extraction failed")

// PageError identifies the page that aborted a run.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("extracting page %d: %v", e.Page, e.Err)
}

// Unwrap matches both ErrExtraction and the underlying cause.
func (e *PageError) Unwrap() []error { return []error{ErrExtraction, e.Err} }

// OCR configures the fallback used when a page's text layer is thin.
type OCR struct {
	Rasterizer core.Rasterizer
	Recognizer core.Recognizer
	// MinTextLength is the trimmed text length below which OCR is attempted.
	MinTextLength int
	// ConfidenceThreshold is the lowest accepted OCR confidence, 0-100.
	ConfidenceThreshold float64
}

// Options wires the ingestion stages together.
type Options struct {
	Normalizer *normalize.Normalizer
	Filter     *filter.Filter
	// OCR is optional; nil disables the fallback.
	OCR    *OCR
	Logger logger.Logger
	// ProgressEvery logs progress every N pages. Defaults to 50.
	ProgressEvery int
}

// Ingester runs the ingestion pipeline. Its configuration is fixed at
// construction.
type Ingester struct {
	normalizer    *normalize.Normalizer
	filter        *filter.Filter
	ocr           *OCR
	log           logger.Logger
	progressEvery int
}

// Result is a fully materialized ingestion run.
type Result struct {
	Records []core.PageRecord
	Report  *Report
}

// New validates opts and builds an Ingester.
func New(opts Options) (*Ingester, error) {
	if opts.Normalizer == nil {
		return nil, errors.New("ingest: normalizer is required")
	}
	if opts.Filter == nil {
		opts.Filter = filter.New(nil)
	}
	if opts.OCR != nil && (opts.OCR.Rasterizer == nil || opts.OCR.Recognizer == nil) {
		return nil, errors.New("ingest: OCR requires both a rasterizer and a recognizer")
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = defaultProgressEvery
	}
	return &Ingester{
		normalizer:    opts.Normalizer,
		filter:        opts.Filter,
		ocr:           opts.OCR,
		log:           opts.Logger,
		progressEvery: opts.ProgressEvery,
	}, nil
}

// Ingest runs the pipeline over src and collects every emitted record.
func (i *Ingester) Ingest(ctx context.Context, src core.PageSource) (*Result, error) {
	var records []core.PageRecord
	rep, err := i.Each(ctx, src, func(r core.PageRecord) error {
		records = append(records, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Result{Records: records, Report: rep}, nil
}

// Each streams records to fn in page order without holding the corpus in
// memory. An error from fn stops the run. On error the returned Report
// covers the pages processed so far.
func (i *Ingester) Each(ctx context.Context, src core.PageSource, fn func(core.PageRecord) error) (*Report, error) {
	start := time.Now()
	rep := &Report{TotalPages: src.NumPages()}

	i.log.Info("Starting ingestion", logger.Int("total_pages", rep.TotalPages))

	for n := 1; n <= rep.TotalPages; n++ {
		if err := ctx.Err(); err != nil {
			rep.Duration = time.Since(start)
			return rep, err
		}
		if n%i.progressEvery == 0 {
			i.log.Info("Ingestion progress", logger.Int("page", n), logger.Int("total_pages", rep.TotalPages))
		}

		record, ok, err := i.processPage(ctx, src, n, rep)
		if err != nil {
			rep.Duration = time.Since(start)
			i.log.Error("Ingestion aborted", logger.Int("page", n), logger.Error(err))
			return rep, err
		}
		if !ok {
			continue
		}
		if err := fn(record); err != nil {
			rep.Duration = time.Since(start)
			return rep, fmt.Errorf("handling page %d: %w", n, err)
		}
		rep.Included++
	}

	rep.Duration = time.Since(start)
	i.log.Info("Ingestion complete",
		logger.Int("total_pages", rep.TotalPages),
		logger.Int("included", rep.Included),
		logger.Ints("skipped", rep.Skipped),
		logger.Ints("empty", rep.Empty),
		logger.Int("visual_references", len(rep.VisualReferences)),
		logger.Int("ocr_applied", len(rep.OCRApplied)),
		logger.Duration("duration", rep.Duration),
	)
	return rep, nil
}

// processPage runs one page through the stages. ok is false when the page
// yields no record.
func (i *Ingester) processPage(ctx context.Context, src core.PageSource, n int, rep *Report) (core.PageRecord, bool, error) {
	raw, err := src.Page(n)
	if err != nil {
		return core.PageRecord{}, false, &PageError{Page: n, Err: err}
	}

	// Only page identity is consulted here; skipped pages never reach OCR.
	normalized := i.normalizer.Normalize(raw.Text)
	if !i.filter.Include(n, normalized) {
		rep.Skipped = append(rep.Skipped, n)
		i.log.Debug("Page skipped", logger.Int("page", n))
		return core.PageRecord{}, false, nil
	}

	text := raw.Text
	ocrApplied := false
	if i.ocr != nil && textLength(text) < i.ocr.MinTextLength {
		text, ocrApplied = i.recognize(ctx, n)
		if ocrApplied {
			rep.OCRApplied = append(rep.OCRApplied, n)
		}
		normalized = i.normalizer.Normalize(text)
	}

	c := classify.Classify(textLength(text), raw.ImageCount, raw.DrawingCount)

	finalText := normalized
	if c.Type == core.ContentVisualHeavy {
		finalText = placeholder.Synthesize(n, c, raw.ImageCount, raw.DrawingCount)
		rep.VisualReferences = append(rep.VisualReferences, n)
	}

	if strings.TrimSpace(finalText) == "" {
		rep.Empty = append(rep.Empty, n)
		i.log.Debug("Page empty after cleaning", logger.Int("page", n))
		return core.PageRecord{}, false, nil
	}

	i.log.Debug("Page classified",
		logger.Int("page", n),
		logger.String("content_type", c.Type.String()),
		logger.String("description", c.Description),
		logger.Bool("ocr_applied", ocrApplied),
	)

	return core.PageRecord{
		PageNumber:         n,
		RawText:            raw.Text,
		ContentType:        c.Type,
		ContentDescription: c.Description,
		ImageCount:         raw.ImageCount,
		DrawingCount:       raw.DrawingCount,
		HasVisualElements:  raw.ImageCount+raw.DrawingCount > 0,
		IsVisualReference:  c.Type == core.ContentVisualHeavy,
		OCRApplied:         ocrApplied,
		FinalText:          finalText,
	}, true, nil
}

// recognize runs OCR for page n. Any failure or a low-confidence result
// leaves the page with empty text; OCR problems never abort the run.
func (i *Ingester) recognize(ctx context.Context, n int) (string, bool) {
	img, err := i.ocr.Rasterizer.Rasterize(n)
	if err != nil {
		i.log.Warn("Rasterizing page for OCR failed", logger.Int("page", n), logger.Error(err))
		return "", false
	}

	rec, err := i.ocr.Recognizer.Recognize(ctx, img)
	if err != nil {
		i.log.Warn("OCR failed", logger.Int("page", n), logger.Error(err))
		return "", false
	}

	if rec.Confidence < i.ocr.ConfidenceThreshold || strings.TrimSpace(rec.Text) == "" {
		i.log.Debug("OCR result rejected",
			logger.Int("page", n),
			logger.Float64("confidence", rec.Confidence),
		)
		return "", false
	}
	return rec.Text, true
}

func textLength(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}
