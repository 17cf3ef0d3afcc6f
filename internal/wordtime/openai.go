package wordtime

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// implements Transcriber using the OpenAI Audio API with word-level
// timestamp granularity
type OpenAITranscriber struct {
	client  openai.Client
	model   string
	options ProviderOptions
}

// word entry from the Whisper verbose_json response
type whisperWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// verbose_json response structure from Whisper
type whisperWordResponse struct {
	Words    []whisperWord `json:"words"`
	Segments []struct {
		Words []whisperWord `json:"words"`
	} `json:"segments"`
}

func NewOpenAITranscriber(
	apiKey string,
	opts ProviderOptions,
) (*OpenAITranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	model := opts.Model
	if model == "" {
		model = "whisper-1"
	}

	return &OpenAITranscriber{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (t *OpenAITranscriber) WordTimings(
	ctx context.Context,
	audioPath string,
) ([]Word, error) {
	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", audioPath)
	}

	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	params := openai.AudioTranscriptionNewParams{
		File:                   file,
		Model:                  openai.AudioModel(t.model),
		ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []string{"word"},
	}
	if t.options.Language != "" {
		params.Language = openai.String(t.options.Language)
	}
	if t.options.Prompt != "" {
		params.Prompt = openai.String(t.options.Prompt)
	}

	resp, err := t.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	return parseWhisperWords(resp.RawJSON())
}

func parseWhisperWords(rawJSON string) ([]Word, error) {
	if rawJSON == "" {
		return nil, fmt.Errorf("empty response")
	}

	var verboseResp whisperWordResponse
	if err := json.Unmarshal([]byte(rawJSON), &verboseResp); err != nil {
		return nil, fmt.Errorf("failed to parse verbose_json response: %w", err)
	}

	raw := verboseResp.Words
	if len(raw) == 0 {
		for _, seg := range verboseResp.Segments {
			raw = append(raw, seg.Words...)
		}
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("no word timestamps in response")
	}

	words := make([]Word, 0, len(raw))
	for _, w := range raw {
		text := strings.TrimSpace(w.Word)
		if text == "" {
			continue
		}
		words = append(words, Word{
			Text:       text,
			Start:      int64(w.Start*1000 + 0.5),
			Stop:       int64(w.End*1000 + 0.5),
			Confidence: 1,
		})
	}
	return words, nil
}
