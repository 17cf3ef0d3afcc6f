package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/subtide/subtide/internal/subtitle"
	"github.com/subtide/subtide/internal/wordtime"
)

var syncCmd = &cobra.Command{
	Use:   "sync [subtitle_file]",
	Short: "Refine segment timing from word-level recognition data",
	Long: `Adjust segment boundaries to word-level timing data produced by a
speech-recognition system. Timings come either from a file (JSON or
tab-separated; a directory implies lookup by the subtitle's base name) or
directly from a transcription provider run against an audio file.

Examples:
  subtide sync episode.srt --words episode.json
  subtide sync episode.srt --words ./timings/
  subtide sync episode.srt --provider openai --audio episode.mp3
  subtide sync episode.vtt --words words.json --from 60000 --to 120000`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().
		StringP("words", "w", "", "Word-timing file or directory")
	syncCmd.Flags().
		StringP("provider", "p", "", "Transcription provider (openai, gemini)")
	syncCmd.Flags().
		StringP("audio", "a", "", "Audio file for the transcription provider")
	syncCmd.Flags().StringP("model", "m", "", "Provider model override")
	syncCmd.Flags().
		String("from", "", "Start of the region to sync (ms or timestamp)")
	syncCmd.Flags().
		String("to", "", "End of the region to sync (ms or timestamp)")
}

func runSync(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]

	doc, err := openDocument(cmd, subtitlePath)
	if err != nil {
		return err
	}

	words, err := loadWords(cmd, subtitlePath)
	if err != nil {
		return err
	}

	first, last, err := regionIndexes(cmd, doc)
	if err != nil {
		return err
	}

	logger.Infow("Applying word timings",
		"words", len(words),
		"first", first,
		"last", last,
	)

	if err := wordtime.Apply(doc, words, first, last); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	outPath := outputPath(cmd, subtitlePath)
	if err := subtitle.Save(doc, outPath); err != nil {
		return err
	}

	fmt.Printf("Synced segments %d-%d, wrote %s\n", first+1, last+1, outPath)
	return nil
}

func loadWords(cmd *cobra.Command, subtitlePath string) ([]wordtime.Word, error) {
	wordsPath, _ := cmd.Flags().GetString("words")
	providerName, _ := cmd.Flags().GetString("provider")

	switch {
	case wordsPath != "" && providerName != "":
		return nil, fmt.Errorf("--words and --provider are mutually exclusive")

	case wordsPath != "":
		return wordtime.Load(wordsPath, subtitlePath)

	case providerName != "":
		audioPath, _ := cmd.Flags().GetString("audio")
		if audioPath == "" {
			return nil, fmt.Errorf("--provider requires --audio")
		}
		model, _ := cmd.Flags().GetString("model")

		provider := wordtime.Provider(providerName)
		apiKey := cfg.OpenAIKey
		if provider == wordtime.ProviderGemini {
			apiKey = cfg.GeminiKey
		}

		transcriber, err := wordtime.Factory(
			cmd.Context(),
			provider,
			apiKey,
			wordtime.ProviderOptions{Language: language(cmd), Model: model},
		)
		if err != nil {
			return nil, err
		}
		return transcriber.WordTimings(cmd.Context(), audioPath)

	default:
		return nil, fmt.Errorf("either --words or --provider is required")
	}
}
