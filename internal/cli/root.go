package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jonathangadeaharder/langplug/internal/config"
	"github.com/Jonathangadeaharder/langplug/internal/logging"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "langplug",
	Short: "Subtitle alignment and vocabulary gating for language learners",
	Long: `LangPlug aligns dual-language subtitles to video playback and tracks
which vocabulary a learner still has to acknowledge before moving on.

It resolves the caption pair to display at any playback time, fetches
subtitle tracks from a content server, fills missing translations with AI,
and keeps per-word mastery in a local database.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = logging.NewLogger(verbose)
		if configPath == "" {
			configPath = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output file path")
}
