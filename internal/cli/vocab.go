package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/Jonathangadeaharder/langplug/internal/language"
	"github.com/Jonathangadeaharder/langplug/internal/vocab"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Manage tracked vocabulary and blocking words",
}

var vocabAddCmd = &cobra.Command{
	Use:   "add [word]",
	Short: "Track a word at a CEFR level",
	Args:  cobra.ExactArgs(1),
	RunE:  runVocabAdd,
}

var vocabKnownCmd = &cobra.Command{
	Use:   "known [word]",
	Short: "Mark a tracked word as known",
	Args:  cobra.ExactArgs(1),
	RunE:  runVocabKnown,
}

var vocabListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked words",
	Args:  cobra.NoArgs,
	RunE:  runVocabList,
}

var vocabStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize tracked vocabulary by CEFR level",
	Args:  cobra.NoArgs,
	RunE:  runVocabStats,
}

var vocabGateCmd = &cobra.Command{
	Use:   "gate [subtitle_file]",
	Short: "Report which captions are blocked by unlearned vocabulary",
	Long: `Run the blocking-word gate over every caption of a subtitle track and
report the words the learner must acknowledge before each caption may be
passed.

Examples:
  langplug vocab gate episode1.srt
  langplug vocab gate episode1.srt --ceiling B2`,
	Args: cobra.ExactArgs(1),
	RunE: runVocabGate,
}

func init() {
	rootCmd.AddCommand(vocabCmd)
	vocabCmd.AddCommand(
		vocabAddCmd, vocabKnownCmd, vocabListCmd, vocabStatsCmd, vocabGateCmd,
	)

	vocabCmd.PersistentFlags().
		StringP("language", "l", "", "Language code (defaults to configured original language)")

	vocabAddCmd.Flags().
		String("level", "A1", "CEFR level (A1-C2)")

	vocabListCmd.Flags().
		String("level", "", "Filter by CEFR level")
	vocabListCmd.Flags().
		String("status", "", "Filter by status (new, learning, known)")

	vocabGateCmd.Flags().
		String("ceiling", "", "CEFR ceiling for gating (defaults to configured ceiling)")
}

func vocabLanguage(cmd *cobra.Command) string {
	lang, _ := cmd.Flags().GetString("language")
	if lang == "" {
		lang = cfg.Languages.Original
	}
	return language.Normalize(lang)
}

func openStore() (*vocab.Store, error) {
	store, err := vocab.Open(cfg.Vocabulary.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary database: %w", err)
	}
	return store, nil
}

func runVocabAdd(cmd *cobra.Command, args []string) error {
	levelStr, _ := cmd.Flags().GetString("level")
	level, err := vocab.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	lang := vocabLanguage(cmd)

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	word, err := store.Upsert(cmd.Context(), args[0], lang, level)
	if err != nil {
		return err
	}

	fmt.Printf("Tracking %q (%s, %s, %s)\n",
		word.Word, language.DisplayName(word.Language), word.Level, word.Status)
	return nil
}

func runVocabKnown(cmd *cobra.Command, args []string) error {
	lang := vocabLanguage(cmd)

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.MarkKnown(cmd.Context(), args[0], lang); err != nil {
		return err
	}
	fmt.Printf("Marked %q as known\n", args[0])
	return nil
}

func runVocabList(cmd *cobra.Command, args []string) error {
	filter := vocab.Filter{Language: vocabLanguage(cmd)}

	if levelStr, _ := cmd.Flags().GetString("level"); levelStr != "" {
		level, err := vocab.ParseLevel(levelStr)
		if err != nil {
			return err
		}
		filter.Level = level
	}
	if statusStr, _ := cmd.Flags().GetString("status"); statusStr != "" {
		status, err := vocab.ParseStatus(statusStr)
		if err != nil {
			return err
		}
		filter.Status = status
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	words, err := store.List(cmd.Context(), filter)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		fmt.Println("No tracked words match.")
		return nil
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Word", "Language", "Level", "Status"})
	for _, w := range words {
		tw.AppendRow(table.Row{
			w.Word, language.DisplayName(w.Language), w.Level, w.Status,
		})
	}
	fmt.Println(tw.Render())
	return nil
}

func runVocabStats(cmd *cobra.Command, args []string) error {
	lang := vocabLanguage(cmd)

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	counts, err := store.CountsByLevel(cmd.Context(), lang)
	if err != nil {
		return err
	}
	if len(counts) == 0 {
		fmt.Printf("No tracked words for %s.\n", language.DisplayName(lang))
		return nil
	}

	fmt.Printf("Vocabulary for %s (%s)\n",
		language.DisplayName(lang), language.SelfName(lang))

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Level", "Known", "Pending", "Total"})
	for _, row := range statsRows(counts) {
		tw.AppendRow(row)
	}
	fmt.Println(tw.Render())
	return nil
}

// statsRows orders the per-level counts A1 through C2, skipping levels
// with no tracked words, and appends a totals row.
func statsRows(counts map[vocab.Level][2]int) []table.Row {
	levels := []vocab.Level{
		vocab.LevelA1, vocab.LevelA2, vocab.LevelB1,
		vocab.LevelB2, vocab.LevelC1, vocab.LevelC2,
	}

	var rows []table.Row
	var known, pending int
	for _, level := range levels {
		pair, ok := counts[level]
		if !ok {
			continue
		}
		rows = append(rows, table.Row{level, pair[0], pair[1], pair[0] + pair[1]})
		known += pair[0]
		pending += pair[1]
	}
	rows = append(rows, table.Row{"All", known, pending, known + pending})
	return rows
}

func runVocabGate(cmd *cobra.Command, args []string) error {
	lang := vocabLanguage(cmd)

	ceiling := cfg.Vocabulary.Ceiling
	if flagCeiling, _ := cmd.Flags().GetString("ceiling"); flagCeiling != "" {
		ceiling = flagCeiling
	}
	level, err := vocab.ParseLevel(ceiling)
	if err != nil {
		return err
	}

	track, err := loadTrack(args[0])
	if err != nil {
		return err
	}
	if track.Empty() {
		return fmt.Errorf("subtitle file contains no entries")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	gate := vocab.NewGate(store, level)
	blocked := 0

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Start", "Caption", "Blocking words"})

	for _, entry := range track.Entries {
		words, err := gate.BlockingWords(cmd.Context(), entry.Text, lang)
		if err != nil {
			return err
		}
		if len(words) == 0 {
			continue
		}
		blocked++

		names := make([]string, len(words))
		for i, w := range words {
			names[i] = fmt.Sprintf("%s (%s)", w.Word, w.Level)
		}
		tw.AppendRow(table.Row{
			entry.Index,
			fmt.Sprintf("%.1fs", entry.Start),
			entry.Text,
			strings.Join(names, ", "),
		})
	}

	if blocked == 0 {
		fmt.Printf("No captions blocked at ceiling %s.\n", level)
		return nil
	}

	fmt.Println(tw.Render())
	fmt.Printf("%d of %d captions blocked at ceiling %s\n",
		blocked, len(track.Entries), level)
	return nil
}

