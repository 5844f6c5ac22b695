// Package cmd implements the CLI commands for pagerag using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/pagerag/config"
	"github.com/gaurav-prasanna/pagerag/logger"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "pagerag",
	Short: "pagerag: ingest a PDF rulebook and answer questions about it",
	Long: `pagerag extracts every page of a PDF, classifies its content, cleans and
filters it, and indexes the result in a local vector store. Questions are
answered by a local language model from the retrieved pages.

Usage:
  pagerag ingest [pdf] [flags]
  pagerag ask <question...>
  pagerag report [pdf] [flags]`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file (defaults apply when empty)")
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// setup loads the configuration and builds the logger every command uses.
func setup() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	log, err := logger.New(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("creating logger: %w", err)
	}
	return cfg, log, nil
}
