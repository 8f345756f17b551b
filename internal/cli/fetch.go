package cli

import (
	"fmt"
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/Jonathangadeaharder/langplug/internal/fetch"
	"github.com/Jonathangadeaharder/langplug/internal/subtitle"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [path]",
	Short: "Download a subtitle track from the content server",
	Long: `Download a subtitle file from the configured content server. Paths are
resolved under the server's videos root.

A fetch failure leaves no partial output: the error is logged and the
command exits without writing a file.

Examples:
  langplug fetch series/episode1.srt
  langplug fetch series/episode1.srt -o local.srt`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	remotePath := args[0]
	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = path.Base(remotePath)
	}

	client, err := fetch.NewClient(cfg.Server.BaseURL, cfg.Server.Token)
	if err != nil {
		return fmt.Errorf("configure content server client: %w", err)
	}

	logger.Infow("Fetching subtitle track",
		"path", remotePath,
		"server", cfg.Server.BaseURL,
	)

	data, err := client.Fetch(cmd.Context(), remotePath)
	if err != nil {
		// Fail open for display purposes, but a download command with
		// nothing to write is still an error for the caller.
		logger.Errorw("Subtitle fetch failed", "path", remotePath, "error", err)
		return fmt.Errorf("fetch subtitle track: %w", err)
	}

	track := subtitle.Parse(string(data))
	logger.Infow("Fetched subtitle track",
		"path", remotePath,
		"bytes", len(data),
		"entries", len(track.Entries),
	)
	if track.Empty() {
		logger.Warnw("Fetched payload contains no parseable entries",
			"path", remotePath,
		)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write subtitle file: %w", err)
	}

	fmt.Printf("Saved %s (%d entries)\n", outputPath, len(track.Entries))
	return nil
}
