// Package config loads the pagerag configuration from a YAML file, .env files
// and environment variables.
//
// Values are resolved in this order (later wins):
//
//  1. Built-in defaults (see Default)
//  2. The YAML file, if a path is given
//  3. .env.local, then .env, then the process environment, via `env` struct tags
//
// The resulting Config is validated once and then treated as read-only for
// the rest of the process.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/pagerag/logger"
)

// Config is the complete pagerag configuration.
type Config struct {
	PDF         PDFConfig         `yaml:"pdf"`
	Boilerplate BoilerplateConfig `yaml:"boilerplate"`
	Pages       PagesConfig       `yaml:"pages"`
	OCR         OCRConfig         `yaml:"ocr"`
	Chunk       ChunkConfig       `yaml:"chunk"`
	Embedding   EmbeddingConfig   `yaml:"embedding"`
	LLM         LLMConfig         `yaml:"llm"`
	Store       StoreConfig       `yaml:"store"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	Index       IndexConfig       `yaml:"index"`
	Log         logger.Config     `yaml:"log"`
}

// PDFConfig locates the source document.
type PDFConfig struct {
	Path string `yaml:"path" env:"PAGERAG_PDF_PATH"`
}

// BoilerplateConfig lists the regular expressions stripped from page text.
// Order is preserved.
type BoilerplateConfig struct {
	Patterns []string `yaml:"patterns"`
}

// PagesConfig lists the pages that are always excluded.
type PagesConfig struct {
	Skip       []int    `yaml:"skip"`
	SkipRanges []string `yaml:"skip_ranges" env:"PAGERAG_SKIP_PAGES"`
}

// OCRConfig controls the OCR fallback for pages with a thin text layer.
type OCRConfig struct {
	Enabled             bool    `yaml:"enabled" env:"PAGERAG_OCR_ENABLED"`
	MinTextLength       int     `yaml:"min_text_length" env:"PAGERAG_OCR_MIN_TEXT_LENGTH"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold" env:"PAGERAG_OCR_CONFIDENCE_THRESHOLD"`
	Language            string  `yaml:"language" env:"PAGERAG_OCR_LANGUAGE"`
	DPI                 float64 `yaml:"dpi" env:"PAGERAG_OCR_DPI"`
}

// ChunkConfig sizes the token windows handed to the embedder.
type ChunkConfig struct {
	Size    int `yaml:"size" env:"PAGERAG_CHUNK_SIZE"`
	Overlap int `yaml:"overlap" env:"PAGERAG_CHUNK_OVERLAP"`
}

// EmbeddingConfig points at an Ollama-compatible embeddings endpoint.
type EmbeddingConfig struct {
	URL     string        `yaml:"url" env:"PAGERAG_EMBEDDING_URL"`
	Model   string        `yaml:"model" env:"PAGERAG_EMBEDDING_MODEL"`
	Timeout time.Duration `yaml:"timeout" env:"PAGERAG_EMBEDDING_TIMEOUT"`
}

// LLMConfig points at an Ollama-compatible generate endpoint.
type LLMConfig struct {
	URL     string        `yaml:"url" env:"PAGERAG_LLM_URL"`
	Model   string        `yaml:"model" env:"PAGERAG_LLM_MODEL"`
	Timeout time.Duration `yaml:"timeout" env:"PAGERAG_LLM_TIMEOUT"`
}

// StoreConfig locates the SQLite vector store.
type StoreConfig struct {
	Path       string `yaml:"path" env:"PAGERAG_STORE_PATH"`
	Collection string `yaml:"collection" env:"PAGERAG_STORE_COLLECTION"`
}

// RetrievalConfig controls query-time retrieval.
type RetrievalConfig struct {
	K int `yaml:"k" env:"PAGERAG_RETRIEVAL_K"`
}

// IndexConfig controls embedding concurrency during indexing.
type IndexConfig struct {
	Concurrency int `yaml:"concurrency" env:"PAGERAG_INDEX_CONCURRENCY"`
}

// DefaultBoilerplatePatterns are the copyright and table-of-contents lines
// of the PERSILAT rulebook.
var DefaultBoilerplatePatterns = []string{
	`Copyright © \d{2} October \d{4} Version \d+ by International Pencak Silat Federation \(PERSILAT\)\. All rights reserved\.`,
	`No part of this material/publication may be reproduced or published in any manner without the consent in writing\.`,
	`^\s*Table of Contents\s*$`,
	`^\s*Contents\s*$`,
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		PDF: PDFConfig{Path: "data/silat_rules_and_regulations_version_7.pdf"},
		Boilerplate: BoilerplateConfig{
			Patterns: append([]string(nil), DefaultBoilerplatePatterns...),
		},
		// Cover page, title page and table of contents.
		Pages: PagesConfig{SkipRanges: []string{"1-14"}},
		OCR: OCRConfig{
			Enabled:             true,
			MinTextLength:       50,
			ConfidenceThreshold: 30,
			Language:            "eng",
			DPI:                 150,
		},
		Chunk: ChunkConfig{Size: 4096, Overlap: 512},
		Embedding: EmbeddingConfig{
			URL:     "http://localhost:11434",
			Model:   "nomic-embed-text",
			Timeout: 60 * time.Second,
		},
		LLM: LLMConfig{
			URL:     "http://localhost:11434",
			Model:   "llama3",
			Timeout: 120 * time.Second,
		},
		Store:     StoreConfig{Path: "data/pagerag.db", Collection: "silat_rules"},
		Retrieval: RetrievalConfig{K: 10},
		Index:     IndexConfig{Concurrency: 4},
		Log:       logger.Config{Level: "info"},
	}
}

// Load resolves the configuration. An empty path skips the YAML file.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("loading environment files: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadEnvFiles loads .env.local then .env. Missing files are ignored and
// variables already present in the environment are never overwritten.
func loadEnvFiles() error {
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("loading %s: %w", name, err)
		}
	}
	return nil
}
