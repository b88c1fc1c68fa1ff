package recipe

import (
	"context"
	"time"

	"github.com/pantrychef/recipegen/internal/config"
	"github.com/pantrychef/recipegen/internal/services/openai"
)

// ProviderType represents the type of text generation provider
type ProviderType string

const (
	ProviderOpenAI ProviderType = config.ProviderOpenAI
	ProviderGroq   ProviderType = config.ProviderGroq
)

// TextGenerator produces the raw recipe text from a chat prompt.
type TextGenerator interface {
	Complete(ctx context.Context, req openai.ChatRequest) (string, error)
}

// ImageGenerator returns the URL of an image generated from a prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req openai.ImageRequest) (string, error)
}

// NewTextProvider creates the chat backend selected by the configuration.
// Groq is reached through its OpenAI-compatible endpoint.
func NewTextProvider(cfg *config.Config) TextGenerator {
	switch ProviderType(cfg.Generation.Provider) {
	case ProviderGroq:
		return openai.NewClient(cfg.GroqKey,
			openai.WithBaseURL(openai.GroqBaseURL),
			openai.WithProviderName(openai.ProviderNameGroq),
			openai.WithTimeout(cfg.Generation.Timeout),
		)
	default:
		return newOpenAIClient(cfg, cfg.Generation.Timeout)
	}
}

// NewImageProvider creates the image backend. Images always come from OpenAI.
func NewImageProvider(cfg *config.Config) ImageGenerator {
	return newOpenAIClient(cfg, cfg.Images.Timeout)
}

func newOpenAIClient(cfg *config.Config, timeout time.Duration) *openai.Client {
	opts := []openai.Option{openai.WithTimeout(timeout)}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.OpenAIBaseURL))
	}
	return openai.NewClient(cfg.OpenAIKey, opts...)
}
