package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/subtide/subtide/internal/config"
	"github.com/subtide/subtide/internal/logging"
	"github.com/subtide/subtide/internal/subtitle"
)

var (
	verbose bool
	logger  *logging.Logger
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "subtide",
	Short: "Subtitle timing toolkit",
	Long: `Subtide reads and writes SRT, WebVTT, ASS and TSV subtitle files,
keeps segment timing consistent while you edit, and synchronizes timestamps
against a forced-alignment tool or word-level speech recognition output.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)
		var err error
		cfg, err = config.Load()
		return err
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
	rootCmd.PersistentFlags().
		StringP("language", "l", "", "Language tag for alignment (e.g., eng, en)")
	rootCmd.PersistentFlags().
		String("policy", "", "Boundary policy: adjust, clip, error or none")
	rootCmd.PersistentFlags().
		Int64("spacing", 0, "Minimum inter-segment spacing in milliseconds")
}

// openDocument loads a subtitle file and applies the active boundary
// configuration from flags and environment.
func openDocument(cmd *cobra.Command, path string) (*subtitle.Document, error) {
	doc, err := subtitle.Open(path)
	if err != nil {
		return nil, err
	}

	policyName := cfg.Policy
	if flag, _ := cmd.Flags().GetString("policy"); flag != "" {
		policyName = flag
	}
	policy, err := subtitle.ParsePolicy(policyName)
	if err != nil {
		return nil, err
	}
	doc.Policy = policy

	doc.Spacing = cfg.SpacingMs
	if cmd.Flags().Changed("spacing") {
		doc.Spacing, _ = cmd.Flags().GetInt64("spacing")
	}

	return doc, nil
}

// outputPath picks the --output flag or falls back to the input path.
func outputPath(cmd *cobra.Command, fallback string) string {
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		return out
	}
	return fallback
}

// language picks the --language flag or the configured default.
func language(cmd *cobra.Command) string {
	if lang, _ := cmd.Flags().GetString("language"); lang != "" {
		return lang
	}
	return cfg.Language
}

// parseTimeArg accepts either a bare millisecond count or a timestamp in
// the document's own format.
func parseTimeArg(f subtitle.Format, s string) (int64, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}
	return subtitle.ParseTime(f, s)
}
