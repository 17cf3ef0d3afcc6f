package wordtime

import (
	"context"
	"fmt"
)

// Transcriber produces word-level timings for an audio file.
type Transcriber interface {
	WordTimings(ctx context.Context, audioPath string) ([]Word, error)
}

// transcription service provider
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// provider options
type ProviderOptions struct {
	Language string // Source language of the audio
	Model    string
	Prompt   string
}

// creates a transcriber based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts ProviderOptions,
) (Transcriber, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAITranscriber(apiKey, opts)
	case ProviderGemini:
		return NewGeminiTranscriber(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}
