package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jonathangadeaharder/langplug/internal/align"
	"github.com/Jonathangadeaharder/langplug/internal/fetch"
	"github.com/Jonathangadeaharder/langplug/internal/subtitle"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [subtitle_file]",
	Short: "Resolve the caption pair shown at a playback time",
	Long: `Resolve which caption and translation a player should display at a
given playback time, after re-basing the track onto the current chunk
window.

The subtitle file uses the block-structured timed-text format; a pipe on
the first text line of a block marks an inline original|translation pair.
A separate translation track with its own cue timing can be supplied with
--translations.

Examples:
  langplug resolve episode1.srt --at 62.5
  langplug resolve episode1.srt --at 75 --window 60:120
  langplug resolve episode1.srt --at 75 --translations episode1.en.srt
  langplug resolve episode1.srt --at 75 --show-indices 2,5,9 --mode both
  langplug resolve series/episode1.srt --at 75 --remote`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().
		Float64("at", 0, "Playback time in seconds (required)")
	resolveCmd.Flags().
		String("window", "", "Chunk window as start:end in seconds (e.g. 60:120)")
	resolveCmd.Flags().
		String("translations", "", "Parallel translation track file")
	resolveCmd.Flags().
		String("show-indices", "", "Comma-separated entry indices allowed to show translation")
	resolveCmd.Flags().
		String("mode", "both", "Display mode (off, original, translation, both)")
	resolveCmd.Flags().
		Bool("labels", false, "Print the display-mode labels for the language pair")
	resolveCmd.Flags().
		Bool("remote", false, "Load the subtitle path from the content server instead of disk")

	_ = resolveCmd.MarkFlagRequired("at")
}

func runResolve(cmd *cobra.Command, args []string) error {
	at, _ := cmd.Flags().GetFloat64("at")
	windowSpec, _ := cmd.Flags().GetString("window")
	translationsPath, _ := cmd.Flags().GetString("translations")
	indicesSpec, _ := cmd.Flags().GetString("show-indices")
	modeStr, _ := cmd.Flags().GetString("mode")
	labels, _ := cmd.Flags().GetBool("labels")
	remote, _ := cmd.Flags().GetBool("remote")

	mode, err := align.ParseMode(modeStr)
	if err != nil {
		return err
	}

	if labels {
		printModeLabels(cfg.Languages.Original, cfg.Languages.Translation)
	}

	var track subtitle.Track
	if remote {
		client, cerr := fetch.NewClient(cfg.Server.BaseURL, cfg.Server.Token)
		if cerr != nil {
			return fmt.Errorf("configure content server client: %w", cerr)
		}
		track, err = fetchTrack(cmd.Context(), client, args[0])
		if err != nil {
			// Display resolution fails open: playback continues with an
			// empty track rather than erroring out.
			logger.Warnw("Subtitle fetch failed, continuing without captions",
				"path", args[0], "error", err)
		}
	} else if track, err = loadTrack(args[0]); err != nil {
		return err
	}
	logger.Debugw("Parsed subtitle track",
		"source", args[0],
		"entries", len(track.Entries),
	)
	if translationsPath == "" && !track.HasInlineTranslations() {
		logger.Debugw("Track carries no translation text", "source", args[0])
	}

	var translations subtitle.Track
	if translationsPath != "" {
		translations, err = loadTrack(translationsPath)
		if err != nil {
			return err
		}
	}

	window, err := parseWindow(windowSpec)
	if err != nil {
		return err
	}

	policy, err := parsePolicy(indicesSpec)
	if err != nil {
		return err
	}

	session := align.NewSession(track, translations, window, policy)
	session.Mode = mode
	cue := session.At(at)

	logger.Debugw("Resolved cue",
		"session", session.ID,
		"time", at,
		"clamped", session.Window.Clamp(at),
	)

	fmt.Printf("original:    %s\n", cue.Original)
	fmt.Printf("translation: %s\n", cue.Translation)
	return nil
}

func printModeLabels(originalLang, translationLang string) {
	modes := []align.Mode{
		align.ModeOff,
		align.ModeOriginal,
		align.ModeTranslation,
		align.ModeBoth,
	}
	for _, m := range modes {
		fmt.Printf("%-12s %s\n", m, m.Label(originalLang, translationLang))
	}
	fmt.Println()
}

// fetchTrack loads and parses a subtitle track through a content-server
// source.
func fetchTrack(ctx context.Context, src fetch.Source, remotePath string) (subtitle.Track, error) {
	data, err := src.Fetch(ctx, remotePath)
	if err != nil {
		return subtitle.Track{}, fmt.Errorf("fetch subtitle track: %w", err)
	}
	return subtitle.Parse(string(data)), nil
}

func loadTrack(path string) (subtitle.Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return subtitle.Track{}, fmt.Errorf("read subtitle file: %w", err)
	}
	return subtitle.Parse(string(data)), nil
}

// parseWindow decodes a "start:end" chunk window. Empty input means no
// chunking: the window spans from zero to the end of the track's timeline.
func parseWindow(spec string) (align.Window, error) {
	if strings.TrimSpace(spec) == "" {
		return align.Window{End: maxWindowEnd}, nil
	}
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return align.Window{}, fmt.Errorf(
			"invalid window %q: expected start:end in seconds", spec,
		)
	}
	start, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return align.Window{}, fmt.Errorf("invalid window start %q", parts[0])
	}
	end, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return align.Window{}, fmt.Errorf("invalid window end %q", parts[1])
	}
	if end <= start || start < 0 {
		return align.Window{}, fmt.Errorf(
			"invalid window %q: need 0 <= start < end", spec,
		)
	}
	return align.Window{Start: start, End: end}, nil
}

// maxWindowEnd stands in for "unbounded" when no chunk window is given.
const maxWindowEnd = 1 << 30

func parsePolicy(spec string) (*align.Policy, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}
	var indices []int
	for _, field := range strings.Split(spec, ",") {
		index, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("invalid entry index %q", field)
		}
		indices = append(indices, index)
	}
	return align.NewPolicy(indices...), nil
}
