package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagFormat  string
	flagSamples int
)

var reportCmd = &cobra.Command{
	Use:   "report [pdf]",
	Short: "Ingest a PDF without indexing and write a content report",
	Long: `Report runs ingestion only and writes summary statistics plus samples from
the first, middle and last pages.

Examples:
  pagerag report
  pagerag report data/rules.pdf --format json --samples 3
  pagerag report --format pdf --output_dir ./out`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&flagFormat, "format", "md", "Report format: md, json or pdf")
	reportCmd.Flags().IntVar(&flagSamples, "samples", 7, "Pages per sample section")
	reportCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
	reportCmd.Flags().BoolVar(&flagNoOCR, "no-ocr", false, "Disable the OCR fallback")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if flagNoOCR {
		cfg.OCR.Enabled = false
	}
	pdfPath := pdfPathFrom(cfg, args)

	res, err := runIngestion(cmd.Context(), cfg, pdfPath, log)
	if err != nil {
		return err
	}

	path, err := writeReport(flagFormat, flagOutputDir, pdfPath, res, flagSamples)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	return nil
}
