package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jonathangadeaharder/langplug/internal/video"
)

var extractCmd = &cobra.Command{
	Use:   "extract [video_file]",
	Short: "Extract an embedded subtitle stream from a video file",
	Long: `Extract a subtitle stream embedded in a local video file and save it
as an SRT file, ready for resolve and translate.

Examples:
  langplug extract episode1.mkv
  langplug extract episode1.mkv --stream 1 -o episode1.de.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().
		IntP("stream", "s", 0, "Subtitle stream index within the file (0 = first)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	videoPath := args[0]
	streamIndex, _ := cmd.Flags().GetInt("stream")
	outputPath, _ := cmd.Flags().GetString("output")

	if outputPath == "" {
		ext := filepath.Ext(videoPath)
		outputPath = strings.TrimSuffix(videoPath, ext) + ".srt"
	}

	logger.Infow("Extracting subtitle stream",
		"video", videoPath,
		"stream", streamIndex,
		"output", outputPath,
	)

	extractor := video.NewExtractor()
	err := extractor.ExtractSubtitle(
		cmd.Context(),
		videoPath,
		outputPath,
		video.ExtractOptions{StreamIndex: streamIndex},
	)
	if err != nil {
		return fmt.Errorf("extract subtitle stream: %w", err)
	}

	track, err := loadTrack(outputPath)
	if err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Subtitle stream extracted: %s\n", absOutput)
	fmt.Printf("  Entries: %d\n", len(track.Entries))
	return nil
}
