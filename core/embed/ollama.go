// Package embed generates embeddings by calling an Ollama-compatible
// embeddings API.
package embed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gaurav-prasanna/pagerag/core/fetch"
)

const (
	defaultBaseURL   = "http://localhost:11434"
	embeddingTimeout = 60 * time.Second
)

// Ollama is a core.Embedder backed by the Ollama embeddings API.
type Ollama struct {
	baseURL string
	model   string
	client  *fetch.Client
}

// NewOllama creates an Ollama embedder. Empty baseURL and zero timeout use
// the local defaults.
func NewOllama(baseURL, model string, timeout time.Duration) *Ollama {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = embeddingTimeout
	}
	return &Ollama{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		client:  fetch.New(timeout),
	}
}

// ollamaRequest is the request body for the Ollama embeddings API.
type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// ollamaResponse is the response body from the Ollama embeddings API.
type ollamaResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Embed calls the Ollama embedding API for a single text input.
func (o *Ollama) Embed(ctx context.Context, text string) ([]float32, error) {
	var resp ollamaResponse
	if err := o.client.PostJSON(ctx, o.baseURL+"/api/embeddings", ollamaRequest{Model: o.model, Prompt: text}, &resp); err != nil {
		return nil, err
	}
	if len(resp.Embedding) == 0 {
		return nil, errors.New("Ollama API returned an empty embedding")
	}

	vec := make([]float32, len(resp.Embedding))
	for i, v := range resp.Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}
