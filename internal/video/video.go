// Package video pulls subtitle streams out of local media files with
// ffmpeg. Remote content goes through the fetch package instead.
package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ExtractOptions select which subtitle stream to extract.
type ExtractOptions struct {
	// StreamIndex is the zero-based index among the file's subtitle
	// streams (ffmpeg's 0:s:N selector), not the global stream index.
	StreamIndex int
}

// Extractor extracts embedded subtitle streams from video files.
type Extractor interface {
	ExtractSubtitle(
		ctx context.Context,
		videoPath, outputPath string,
		opts ExtractOptions,
	) error
}

// FFmpegExtractor shells out to ffmpeg via ffmpeg-go.
type FFmpegExtractor struct{}

func NewExtractor() *FFmpegExtractor {
	return &FFmpegExtractor{}
}

// ExtractSubtitle converts the selected embedded subtitle stream into an
// SRT file at outputPath.
func (e *FFmpegExtractor) ExtractSubtitle(
	ctx context.Context,
	videoPath, outputPath string,
	opts ExtractOptions,
) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}
	if opts.StreamIndex < 0 {
		return fmt.Errorf(
			"subtitle stream index must be >= 0, got %d",
			opts.StreamIndex,
		)
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	kwargs := ffmpeg.KwArgs{
		"map": fmt.Sprintf("0:s:%d", opts.StreamIndex),
		"c:s": "srt",
		"y":   "",
	}

	err := ffmpeg.Input(videoPath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		Run()
	if err != nil {
		return fmt.Errorf("ffmpeg subtitle extraction failed: %w", err)
	}
	return nil
}
