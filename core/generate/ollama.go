// Package generate produces answers by calling an Ollama-compatible
// generate API.
package generate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gaurav-prasanna/pagerag/core/fetch"
)

const (
	defaultBaseURL     = "http://localhost:11434"
	defaultModel       = "llama3"
	generationTimeout  = 120 * time.Second
	defaultTemperature = 0.2
)

// Ollama is a core.Generator backed by the Ollama /api/generate endpoint.
type Ollama struct {
	baseURL string
	model   string
	client  *fetch.Client
}

// NewOllama creates a generator. Empty arguments fall back to a local
// llama3 with a two-minute timeout.
func NewOllama(baseURL, model string, timeout time.Duration) *Ollama {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = generationTimeout
	}
	return &Ollama{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		client:  fetch.New(timeout),
	}
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// Generate sends prompt and returns the complete, non-streamed response.
func (o *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Model:   o.model,
		Prompt:  prompt,
		Stream:  false,
		Options: map[string]any{"temperature": defaultTemperature},
	}

	var out generateResponse
	if err := o.client.PostJSON(ctx, o.baseURL+"/api/generate", req, &out); err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", fmt.Errorf("Ollama generate failed: %s", out.Error)
	}
	return strings.TrimSpace(out.Response), nil
}
