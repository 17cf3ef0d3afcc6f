package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/subtide/subtide/internal/media"
	"github.com/subtide/subtide/internal/subtitle"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [subtitle_file] [first] [last]",
	Short: "Merge a run of segments into one",
	Long: `Merge the contiguous segments between two 1-based positions into a
single segment spanning their combined time range.

Examples:
  subtide merge episode.srt 2 4
  subtide merge episode.vtt 1 2 -o merged.vtt`,
	Args: cobra.ExactArgs(3),
	RunE: runMerge,
}

var splitCmd = &cobra.Command{
	Use:   "split [subtitle_file] [index]",
	Short: "Split a segment in two",
	Long: `Split the segment at a 1-based position. With --offset the boundary
is interpolated over the text length; with --at it is set explicitly.

Examples:
  subtide split episode.srt 3 --offset 12
  subtide split episode.srt 3 --at 00:01:02,500`,
	Args: cobra.ExactArgs(2),
	RunE: runSplit,
}

var cropCmd = &cobra.Command{
	Use:   "crop [subtitle_file] [start] [stop]",
	Short: "Restrict a document to a time window",
	Long: `Drop segments outside the window and clip the ones straddling its
edges. With --media the same window is also cut out of a media file.

Examples:
  subtide crop episode.srt 60000 180000
  subtide crop episode.srt 00:01:00,000 00:03:00,000 --media episode.mp4 --media-output clip.mp4`,
	Args: cobra.ExactArgs(3),
	RunE: runCrop,
}

var shiftCmd = &cobra.Command{
	Use:   "shift [subtitle_file] [delta_ms]",
	Short: "Shift segment timing",
	Long: `Shift the whole document by a millisecond delta, or a single
segment with --index (subject to the boundary policy).

Examples:
  subtide shift episode.srt 1500
  subtide shift episode.srt -- -700
  subtide shift episode.srt 250 --index 3 --policy error`,
	Args: cobra.ExactArgs(2),
	RunE: runShift,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(splitCmd)
	rootCmd.AddCommand(cropCmd)
	rootCmd.AddCommand(shiftCmd)

	splitCmd.Flags().Int("offset", -1, "Character offset of the split point")
	splitCmd.Flags().String("at", "", "Explicit split timestamp (ms or timestamp)")

	cropCmd.Flags().String("media", "", "Media file to crop to the same window")
	cropCmd.Flags().String("media-output", "", "Output path for the cropped media")

	shiftCmd.Flags().Int("index", 0, "1-based segment to shift instead of the whole document")
}

func runMerge(cmd *cobra.Command, args []string) error {
	doc, err := openDocument(cmd, args[0])
	if err != nil {
		return err
	}

	first, err := segmentIndex(doc, args[1])
	if err != nil {
		return err
	}
	last, err := segmentIndex(doc, args[2])
	if err != nil {
		return err
	}

	if err := subtitle.Merge(doc, first, last); err != nil {
		return err
	}

	outPath := outputPath(cmd, args[0])
	if err := subtitle.Save(doc, outPath); err != nil {
		return err
	}
	fmt.Printf("Merged segments %s-%s, wrote %s\n", args[1], args[2], outPath)
	return nil
}

func runSplit(cmd *cobra.Command, args []string) error {
	doc, err := openDocument(cmd, args[0])
	if err != nil {
		return err
	}

	index, err := segmentIndex(doc, args[1])
	if err != nil {
		return err
	}

	offset, _ := cmd.Flags().GetInt("offset")
	at, _ := cmd.Flags().GetString("at")

	switch {
	case at != "":
		ms, err := parseTimeArg(doc.Format, at)
		if err != nil {
			return err
		}
		if _, err := subtitle.SplitAtTime(doc, index, ms); err != nil {
			return err
		}
	case offset >= 0:
		if _, err := subtitle.SplitAtOffset(doc, index, offset); err != nil {
			return err
		}
	default:
		return fmt.Errorf("either --offset or --at is required")
	}

	outPath := outputPath(cmd, args[0])
	if err := subtitle.Save(doc, outPath); err != nil {
		return err
	}
	fmt.Printf("Split segment %s, wrote %s\n", args[1], outPath)
	return nil
}

func runCrop(cmd *cobra.Command, args []string) error {
	doc, err := openDocument(cmd, args[0])
	if err != nil {
		return err
	}

	from, err := parseTimeArg(doc.Format, args[1])
	if err != nil {
		return err
	}
	to, err := parseTimeArg(doc.Format, args[2])
	if err != nil {
		return err
	}

	if mediaPath, _ := cmd.Flags().GetString("media"); mediaPath != "" {
		mediaOut, _ := cmd.Flags().GetString("media-output")
		if mediaOut == "" {
			return fmt.Errorf("--media requires --media-output")
		}
		durMs, err := media.Duration(mediaPath)
		if err != nil {
			return err
		}
		if from >= durMs {
			return fmt.Errorf(
				"crop window starts at %dms but %s is only %dms long",
				from, mediaPath, durMs,
			)
		}
		logger.Infow("Cropping media file",
			"media", mediaPath,
			"from_ms", from,
			"to_ms", to,
		)
		if err := media.Crop(cmd.Context(), mediaPath, mediaOut, from, to); err != nil {
			return err
		}
	}

	removed, err := subtitle.Crop(doc, from, to)
	if err != nil {
		return err
	}

	// cropped documents usually start at zero
	doc.ShiftAll(-from)

	outPath := outputPath(cmd, args[0])
	if err := subtitle.Save(doc, outPath); err != nil {
		return err
	}
	fmt.Printf("Removed %d segments outside the window, wrote %s\n", removed, outPath)
	return nil
}

func runShift(cmd *cobra.Command, args []string) error {
	doc, err := openDocument(cmd, args[0])
	if err != nil {
		return err
	}

	delta, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid delta %q: %w", args[1], err)
	}

	if cmd.Flags().Changed("index") {
		raw, _ := cmd.Flags().GetInt("index")
		index, err := segmentIndex(doc, strconv.Itoa(raw))
		if err != nil {
			return err
		}
		if err := doc.Shift(index, delta); err != nil {
			return err
		}
	} else {
		doc.ShiftAll(delta)
	}

	outPath := outputPath(cmd, args[0])
	if err := subtitle.Save(doc, outPath); err != nil {
		return err
	}
	fmt.Printf("Shifted by %dms, wrote %s\n", delta, outPath)
	return nil
}

// segmentIndex converts a 1-based position argument to a store index.
func segmentIndex(doc *subtitle.Document, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > doc.Len() {
		return 0, fmt.Errorf(
			"segment position %q out of range (1-%d)",
			arg,
			doc.Len(),
		)
	}
	return n - 1, nil
}
