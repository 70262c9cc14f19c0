// Package llm wraps the completion provider the pipeline calls between
// stages. The provider is treated as an unreliable, latency-bearing black
// box: one prompt in, one text completion out, no retries.
package llm

import (
	"context"
	"fmt"

	"github.com/futureproof-labs/insight/config"
)

// Provider is the completion client consumed by the pipeline.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// NewProvider creates a completion provider from configuration.
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	switch cfg.Type {
	case "openai":
		return NewOpenAIProvider(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider type: %s", cfg.Type)
	}
}
