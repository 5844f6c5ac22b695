// Package cmd: ingest command.
// This is the main command that orchestrates the pipeline:
// extract → filter → OCR → classify → clean → chunk → embed → store.
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/pagerag/core/chunk"
	"github.com/gaurav-prasanna/pagerag/core/embed"
	"github.com/gaurav-prasanna/pagerag/core/index"
	"github.com/gaurav-prasanna/pagerag/core/report"
	"github.com/gaurav-prasanna/pagerag/core/store"
	"github.com/gaurav-prasanna/pagerag/logger"
)

var (
	flagReset     bool
	flagNoOCR     bool
	flagDryRun    bool
	flagReport    string
	flagOutputDir string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [pdf]",
	Short: "Extract, classify and index a PDF into the vector store",
	Long: `Ingest reads every page of the PDF, runs OCR on pages with a thin text
layer, classifies and cleans each page, replaces visual pages with a
searchable reference, and indexes the result.

Examples:
  pagerag ingest
  pagerag ingest data/rules.pdf --reset
  pagerag ingest data/rules.pdf --dry-run --report md --output_dir ./out
  pagerag ingest --no-ocr --config pagerag.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete the collection before indexing")
	ingestCmd.Flags().BoolVar(&flagNoOCR, "no-ocr", false, "Disable the OCR fallback")
	ingestCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Ingest without touching the vector store")
	ingestCmd.Flags().StringVar(&flagReport, "report", "", "Also write an ingestion report: md, json or pdf")
	ingestCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Report directory (default: current directory)")
}

func runIngest(cmd *cobra.Command, args []string) (err error) {
	if flagDryRun && flagReset {
		return errors.New("--dry-run and --reset are mutually exclusive")
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if flagNoOCR {
		cfg.OCR.Enabled = false
	}
	pdfPath := pdfPathFrom(cfg, args)
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	res, err := runIngestion(ctx, cfg, pdfPath, log)
	if err != nil {
		return err
	}

	if flagReport != "" {
		path, err := writeReport(flagReport, flagOutputDir, pdfPath, res, report.DefaultSampleSize)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Report: %s\n", path)
	}

	if flagDryRun {
		fmt.Fprintf(out, "Dry run: %d of %d pages would be indexed\n", len(res.Records), res.Report.TotalPages)
		return nil
	}

	st, err := store.OpenSQLite(cfg.Store.Path, cfg.Store.Collection)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, st.Close()) }()

	if flagReset {
		if err := st.Reset(ctx); err != nil {
			return err
		}
		log.Info("Collection reset", logger.String("collection", cfg.Store.Collection))
	}

	idx, err := index.New(
		chunk.New(cfg.Chunk.Size, cfg.Chunk.Overlap),
		embed.NewOllama(cfg.Embedding.URL, cfg.Embedding.Model, cfg.Embedding.Timeout),
		st,
		cfg.Index.Concurrency,
	)
	if err != nil {
		return err
	}

	n, err := idx.Index(ctx, res.Records)
	if err != nil {
		return fmt.Errorf("indexing: %w", err)
	}
	total, err := st.Count(ctx)
	if err != nil {
		return err
	}

	log.Info("Indexing complete",
		logger.Int("chunks", n),
		logger.Int("collection_size", total),
	)
	fmt.Fprintf(out, "✓ Indexed %d chunks from %d pages into %s (%d in collection)\n",
		n, len(res.Records), cfg.Store.Path, total)
	return nil
}
