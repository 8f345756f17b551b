package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Jonathangadeaharder/langplug/internal/language"
	"github.com/Jonathangadeaharder/langplug/internal/subtitle"
	"github.com/Jonathangadeaharder/langplug/internal/translate"
)

var translateCmd = &cobra.Command{
	Use:   "translate [subtitle_file]",
	Short: "Fill missing translations in a subtitle track using AI",
	Long: `Translate the captions of a subtitle track and write a bilingual track
in the pipe-delimited form the player consumes. Entries that already carry
an inline translation are kept as they are.

Examples:
  langplug translate episode1.srt --target-language en
  langplug translate episode1.srt -t english -o episode1.bilingual.srt
  langplug translate episode1.srt -t en --provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	rootCmd.AddCommand(translateCmd)

	translateCmd.Flags().
		StringP("target-language", "t", "", "Target language for translation (required)")
	translateCmd.Flags().
		String("provider", "", "Translation provider (gemini, openai, anthropic)")
	translateCmd.Flags().
		String("model", "", "Model to use (provider-specific default when empty)")
	translateCmd.Flags().
		StringP("api-key", "k", "", "API key (falls back to config and provider env var)")

	_ = translateCmd.MarkFlagRequired("target-language")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	subtitlePath := args[0]
	targetLang, _ := cmd.Flags().GetString("target-language")
	providerStr, _ := cmd.Flags().GetString("provider")
	model, _ := cmd.Flags().GetString("model")
	apiKey, _ := cmd.Flags().GetString("api-key")
	outputPath, _ := cmd.Flags().GetString("output")

	if providerStr == "" {
		providerStr = cfg.Translation.Provider
	}
	if model == "" {
		model = cfg.Translation.Model
	}
	if apiKey == "" {
		apiKey = cfg.Translation.APIKey
	}
	if apiKey == "" {
		return fmt.Errorf(
			"API key is required: use --api-key, the config file, or the provider's environment variable",
		)
	}

	targetLang = language.Normalize(targetLang)
	sourceLang := cfg.Languages.Original
	if strings.EqualFold(sourceLang, targetLang) {
		return fmt.Errorf(
			"source language %q and target language %q cannot be the same",
			sourceLang, targetLang,
		)
	}

	track, err := loadTrack(subtitlePath)
	if err != nil {
		return err
	}
	if track.Empty() {
		return fmt.Errorf("subtitle file contains no entries")
	}
	track.Language = sourceLang

	if outputPath == "" {
		ext := filepath.Ext(subtitlePath)
		outputPath = strings.TrimSuffix(subtitlePath, ext) +
			"." + targetLang + ext
	}

	logger.Infow("Translating subtitle track",
		"input", subtitlePath,
		"output", outputPath,
		"source_language", language.DisplayName(sourceLang),
		"target_language", language.DisplayName(targetLang),
		"provider", providerStr,
		"entries", len(track.Entries),
	)

	translator, err := translate.New(
		cmd.Context(),
		translate.Provider(providerStr),
		apiKey,
		translate.Options{
			SourceLanguage: language.DisplayName(sourceLang),
			TargetLanguage: language.DisplayName(targetLang),
			Model:          model,
			BatchSize:      cfg.Translation.BatchSize,
		},
	)
	if err != nil {
		return fmt.Errorf("create translator: %w", err)
	}

	if err := translator.FillTrack(
		cmd.Context(), &track, cfg.Translation.Concurrency,
	); err != nil {
		return fmt.Errorf("translation failed: %w", err)
	}
	track.TranslationLanguage = targetLang

	if err := subtitle.WriteFile(track, outputPath); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Printf("Bilingual track written: %s\n", absOutput)
	fmt.Printf("  Entries: %d\n", len(track.Entries))
	fmt.Printf("  Languages: %s|%s\n",
		language.DisplayName(sourceLang),
		language.DisplayName(targetLang))
	return nil
}
