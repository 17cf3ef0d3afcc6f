package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/subtide/subtide/internal/align"
	"github.com/subtide/subtide/internal/media"
	"github.com/subtide/subtide/internal/subtitle"
)

var alignCmd = &cobra.Command{
	Use:   "align [subtitle_file] [media_file]",
	Short: "Retime segments with a forced-alignment tool",
	Long: `Align segment timestamps against the audio of a media file using
an external forced-alignment tool (aeneas by default, see SUBTIDE_ALIGNER).

The whole document is aligned unless --from/--to restrict the run to a
region. Video inputs have their audio track extracted first.

Examples:
  subtide align episode.srt episode.wav
  subtide align episode.vtt episode.mp4 --from 60000 --to 00:05:00.000
  subtide align episode.srt episode.wav -l deu --options "mfcc_window_length=0.150"`,
	Args: cobra.ExactArgs(2),
	RunE: runAlign,
}

func init() {
	rootCmd.AddCommand(alignCmd)

	alignCmd.Flags().
		String("from", "", "Start of the region to align (ms or timestamp)")
	alignCmd.Flags().
		String("to", "", "End of the region to align (ms or timestamp)")
	alignCmd.Flags().
		String("options", "", "Extra task options appended to the tool invocation")
}

func runAlign(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]
	mediaPath := args[1]

	doc, err := openDocument(cmd, subtitlePath)
	if err != nil {
		return err
	}
	if doc.Len() == 0 {
		return fmt.Errorf("nothing to align: %s has no segments", subtitlePath)
	}
	if !media.IsMediaFile(mediaPath) {
		return fmt.Errorf("%s is not a recognized audio or video file", mediaPath)
	}

	audioPath := mediaPath
	if media.IsVideoFile(mediaPath) {
		extracted := filepath.Join(
			os.TempDir(),
			"subtide-audio-"+uuid.NewString()+".wav",
		)
		logger.Infow("Extracting audio track", "media", mediaPath)
		if err := media.ExtractAudio(
			cmd.Context(),
			mediaPath,
			extracted,
			media.DefaultExtractAudioOptions(),
		); err != nil {
			return err
		}
		defer func() {
			_ = os.Remove(extracted)
		}()
		audioPath = extracted
	}

	first, last, err := regionIndexes(cmd, doc)
	if err != nil {
		return err
	}

	// ffprobe is optional here; when it is available, catch a region that
	// lies entirely past the end of the audio before invoking the tool
	if durMs, err := media.Duration(audioPath); err == nil {
		if start := doc.Segment(first).Start; start >= durMs {
			return fmt.Errorf(
				"alignment region starts at %dms but the audio is only %dms long",
				start, durMs,
			)
		}
	} else {
		logger.Debugw("could not probe audio duration", "error", err)
	}

	extra, _ := cmd.Flags().GetString("options")
	if extra == "" {
		extra = cfg.AlignerOptions
	}

	runner := align.NewRunner(cfg.AlignerArgv(), logger)
	coordinator := align.NewCoordinator(runner, logger)

	if err := coordinator.AlignRegion(
		cmd.Context(),
		doc,
		first,
		last,
		audioPath,
		align.Options{Language: language(cmd), ExtraOptions: extra},
	); err != nil {
		return fmt.Errorf("alignment failed: %w", err)
	}

	outPath := outputPath(cmd, subtitlePath)
	if err := subtitle.Save(doc, outPath); err != nil {
		return err
	}

	fmt.Printf("Aligned segments %d-%d, wrote %s\n", first+1, last+1, outPath)
	return nil
}

// regionIndexes resolves --from/--to into an inclusive segment index range.
func regionIndexes(cmd *cobra.Command, doc *subtitle.Document) (int, int, error) {
	fromFlag, _ := cmd.Flags().GetString("from")
	toFlag, _ := cmd.Flags().GetString("to")
	if fromFlag == "" && toFlag == "" {
		return 0, doc.Len() - 1, nil
	}

	from := int64(0)
	to := doc.Segment(doc.Len() - 1).Stop
	var err error
	if fromFlag != "" {
		if from, err = parseTimeArg(doc.Format, fromFlag); err != nil {
			return 0, 0, err
		}
	}
	if toFlag != "" {
		if to, err = parseTimeArg(doc.Format, toFlag); err != nil {
			return 0, 0, err
		}
	}

	first, last := doc.Window(from, to)
	if first == -1 {
		return 0, 0, fmt.Errorf("no segments between %dms and %dms", from, to)
	}
	return first, last, nil
}
