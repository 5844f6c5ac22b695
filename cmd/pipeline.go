package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gaurav-prasanna/pagerag/config"
	"github.com/gaurav-prasanna/pagerag/core"
	"github.com/gaurav-prasanna/pagerag/core/extract"
	"github.com/gaurav-prasanna/pagerag/core/filter"
	"github.com/gaurav-prasanna/pagerag/core/ingest"
	"github.com/gaurav-prasanna/pagerag/core/normalize"
	"github.com/gaurav-prasanna/pagerag/core/ocr"
	"github.com/gaurav-prasanna/pagerag/core/output"
	"github.com/gaurav-prasanna/pagerag/core/render"
	"github.com/gaurav-prasanna/pagerag/core/report"
	"github.com/gaurav-prasanna/pagerag/logger"
)

// OCR adapter constructors. Tests replace them to run without native
// libraries.
var (
	newRasterizer = func(path string, dpi float64) (rasterizer, error) { return ocr.NewRasterizer(path, dpi) }
	newRecognizer = func(language string) (recognizer, error) { return ocr.NewTesseract(language) }
)

type rasterizer interface {
	core.Rasterizer
	io.Closer
}

type recognizer interface {
	core.Recognizer
	io.Closer
}

// unavailableOCR stands in for an OCR engine that could not be started.
// Every thin page then fails recognition and is treated as having no text.
type unavailableOCR struct{ err error }

func (u unavailableOCR) Rasterize(int) ([]byte, error) { return nil, u.err }

func (u unavailableOCR) Recognize(context.Context, []byte) (core.Recognition, error) {
	return core.Recognition{}, u.err
}

// runIngestion opens pdfPath and runs the full ingestion pipeline over it.
func runIngestion(ctx context.Context, cfg *config.Config, pdfPath string, log logger.Logger) (res *ingest.Result, err error) {
	normalizer, err := normalize.New(cfg.Boilerplate.Patterns)
	if err != nil {
		return nil, err
	}
	skip, err := cfg.Pages.SkipSet()
	if err != nil {
		return nil, err
	}

	src, err := extract.Open(pdfPath)
	if err != nil {
		return nil, err
	}
	defer func() { err = errors.Join(err, src.Close()) }()

	opts := ingest.Options{
		Normalizer: normalizer,
		Filter:     filter.New(skip),
		Logger:     log,
	}

	if cfg.OCR.Enabled {
		engine, closeEngine := openOCR(cfg.OCR, pdfPath, log)
		defer func() { err = errors.Join(err, closeEngine()) }()
		opts.OCR = engine
	}

	ing, err := ingest.New(opts)
	if err != nil {
		return nil, err
	}

	log.Info("Starting ingestion",
		logger.String("pdf", pdfPath),
		logger.Int("skip_pages", opts.Filter.Len()),
		logger.Bool("ocr", cfg.OCR.Enabled),
	)
	return ing.Ingest(ctx, src)
}

// openOCR starts the rasterizer and recognizer. A failure to start either
// one is logged and never aborts the run.
func openOCR(cfg config.OCRConfig, pdfPath string, log logger.Logger) (*ingest.OCR, func() error) {
	engine := &ingest.OCR{
		MinTextLength:       cfg.MinTextLength,
		ConfidenceThreshold: cfg.ConfidenceThreshold,
	}
	degrade := func(stage string, err error) {
		log.Warn("OCR unavailable, thin pages will be treated as empty",
			logger.String("stage", stage),
			logger.Error(err),
		)
		engine.Rasterizer, engine.Recognizer = unavailableOCR{err}, unavailableOCR{err}
	}

	raster, err := newRasterizer(pdfPath, cfg.DPI)
	if err != nil {
		degrade("rasterizer", err)
		return engine, func() error { return nil }
	}

	tess, err := newRecognizer(cfg.Language)
	if err != nil {
		degrade("recognizer", err)
		return engine, raster.Close
	}

	engine.Rasterizer, engine.Recognizer = raster, tess
	return engine, func() error { return errors.Join(tess.Close(), raster.Close()) }
}

// writeReport renders the run in format and writes it into outputDir.
func writeReport(format, outputDir, pdfPath string, res *ingest.Result, sampleSize int) (string, error) {
	renderer, err := render.ForFormat(format)
	if err != nil {
		return "", err
	}

	rep := report.Build(res.Records, res.Report, sampleSize)
	rep.Source = pdfPath

	data, err := renderer.Render(rep)
	if err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}

	writer, err := output.New(outputDir)
	if err != nil {
		return "", fmt.Errorf("initializing output writer: %w", err)
	}
	return writer.WriteReport(pdfPath, data, renderer.Extension())
}

func pdfPathFrom(cfg *config.Config, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.PDF.Path
}
