package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/pagerag/core/chunk"
	"github.com/gaurav-prasanna/pagerag/core/embed"
	"github.com/gaurav-prasanna/pagerag/core/generate"
	"github.com/gaurav-prasanna/pagerag/core/index"
	"github.com/gaurav-prasanna/pagerag/core/rag"
	"github.com/gaurav-prasanna/pagerag/core/store"
	"github.com/gaurav-prasanna/pagerag/logger"
)

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Answer a question from the indexed document",
	Long: `Ask retrieves the most relevant pages from the vector store and asks the
language model to answer from them alone, citing page numbers.

Examples:
  pagerag ask "What are the competition categories?"
  pagerag ask how many points does a sweep score`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) (err error) {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	st, err := store.OpenSQLite(cfg.Store.Path, cfg.Store.Collection)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, st.Close()) }()

	ctx := cmd.Context()
	if n, err := st.Count(ctx); err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("collection %q in %s is empty: run pagerag ingest first", cfg.Store.Collection, cfg.Store.Path)
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
	chain := rag.New(idx, generate.NewOllama(cfg.LLM.URL, cfg.LLM.Model, cfg.LLM.Timeout), cfg.Retrieval.K)

	question := strings.Join(args, " ")
	answer, err := chain.Answer(ctx, question)
	if err != nil {
		return err
	}

	log.Info("Question answered",
		logger.String("question", question),
		logger.Ints("pages", answer.Pages),
	)
	fmt.Fprintln(cmd.OutOrStdout(), answer.Text)
	return nil
}
