package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/subtide/subtide/internal/subtitle"
)

var convertCmd = &cobra.Command{
	Use:   "convert [subtitle_file]",
	Short: "Convert a subtitle file between formats",
	Long: `Convert a subtitle file to another format. The source format is
detected from the content; the target format comes from --to or from the
output file extension.

Examples:
  subtide convert input.srt -o output.vtt
  subtide convert input.vtt --to ass
  subtide convert input.ass --to tsv -o labels.tsv`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		StringP("to", "t", "", "Target format (srt, vtt, ass, tsv)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	doc, err := openDocument(cmd, inputPath)
	if err != nil {
		return err
	}

	toFlag, _ := cmd.Flags().GetString("to")
	outFlag, _ := cmd.Flags().GetString("output")
	target, outPath, err := resolveConversion(doc.Format, inputPath, toFlag, outFlag)
	if err != nil {
		return err
	}

	doc.Format = target

	logger.Infow("Converting subtitle file",
		"input", inputPath,
		"output", outPath,
		"format", string(target),
		"segments", doc.Len(),
	)

	// an explicit --to wins even when the output extension disagrees
	if err := subtitle.SaveAs(doc, outPath, target); err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	fmt.Printf("Wrote %d segments to %s\n", doc.Len(), outPath)
	return nil
}

// resolveConversion picks the target format and output path from the --to
// and --output flags. --to takes precedence over the output extension; with
// neither given the document keeps its own format.
func resolveConversion(
	current subtitle.Format,
	inputPath, toFlag, outFlag string,
) (subtitle.Format, string, error) {
	target := current
	if toFlag != "" {
		target = subtitle.Format(strings.ToLower(toFlag))
		if _, err := subtitle.AdapterFor(target); err != nil {
			return "", "", err
		}
	} else if byExt, ok := subtitle.FormatFromExtension(outFlag); ok {
		target = byExt
	}

	outPath := outFlag
	if outPath == "" {
		ext := filepath.Ext(inputPath)
		outPath = strings.TrimSuffix(inputPath, ext) + subtitle.ExtensionForFormat(target)
	}
	return target, outPath, nil
}
