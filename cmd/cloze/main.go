// Package main provides the CLI entrypoint for cloze.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/okhlin/cloze/internal/blank"
	"github.com/okhlin/cloze/internal/config"
	"github.com/okhlin/cloze/internal/ingest"
	"github.com/okhlin/cloze/internal/model"
	"github.com/okhlin/cloze/internal/progress"
	"github.com/okhlin/cloze/internal/session"
	"github.com/okhlin/cloze/internal/stats"
	"github.com/okhlin/cloze/internal/store"
	"github.com/okhlin/cloze/internal/textproc"
	"github.com/okhlin/cloze/internal/tui"
	"github.com/okhlin/cloze/internal/wordset"
)

const defaultTextFile = "default_practice.txt"

const defaultStatsWindow = 20

var (
	statsSource string
	statsLast   int
	statsWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cloze [text] [vocab] [highfreq]",
		Short:         "Fill-in-the-blank vocabulary drills over your own texts",
		Args:          cobra.MaximumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPracticeCmd(_ *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := resolveConfig(args, fileCfg)

	text, err := ingest.ReadText(cfg.TextPath)
	if err != nil {
		return err
	}
	sentences := textproc.SplitSentences(textproc.Normalize(text))
	if len(sentences) == 0 {
		return fmt.Errorf("no sentences found in %s", cfg.TextPath)
	}

	vocab := loadOptionalSet(cfg.VocabPath)
	highFreq := loadOptionalSet(cfg.HighFreqPath)

	prog, err := progress.NewStore(config.DefaultDataDir())
	if err != nil {
		return err
	}
	practiced, err := prog.LoadPracticed()
	if err != nil {
		logErrf("failed to load practiced words: %v\n", err)
		practiced = wordset.New()
	}

	selector := blank.NewSelector(vocab, highFreq, practiced, nil)
	cursor := prog.LoadCursor(cfg.TextPath)
	sess := session.New(cfg.TextPath, sentences, selector, practiced, prog, cursor)

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open history db: %v\n", err)
		st = nil
	} else {
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close history db: %v\n", cerr)
			}
		}()
	}

	drillModel := tui.NewModel(sess, st, filepath.Base(cfg.TextPath))
	program := tea.NewProgram(drillModel, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func resolveConfig(args []string, fileCfg config.FileConfig) model.Config {
	cfg := model.Config{TextPath: defaultTextFile}
	applyStringConfig(&cfg.TextPath, fileCfg.Practice.Text)
	applyStringConfig(&cfg.VocabPath, fileCfg.Practice.Vocab)
	applyStringConfig(&cfg.HighFreqPath, fileCfg.Practice.HighFreq)
	if len(args) >= 1 {
		cfg.TextPath = args[0]
	}
	if len(args) >= 2 {
		cfg.VocabPath = args[1]
	}
	if len(args) >= 3 {
		cfg.HighFreqPath = args[2]
	}
	return cfg
}

func loadOptionalSet(path string) *wordset.Set {
	if path == "" {
		return wordset.New()
	}
	set, err := wordset.Load(path)
	if err != nil {
		logErrf("failed to load word list %s: %v\n", path, err)
		return wordset.New()
	}
	return set
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show practice history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSource, "source", "", "filter by source text")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N runs")
	cmd.Flags().IntVar(&statsWindow, "window", defaultStatsWindow, "aggregate hardest words over last N runs (0 = all)")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open history db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close history db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(cmd.Context(), st, model.StatsConfig{
		Source: statsSource,
		Last:   statsLast,
		Window: statsWindow,
	})
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	return stats.RenderReport(cmd.OutOrStdout(), report, stats.TerminalWidth())
}

func applyStringConfig(target *string, value *string) {
	if value == nil {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# cloze configuration
# Uncomment a value to enable it. Command-line arguments override config values.

[practice]
# text = %q          # Practice text (plain text or epub)
# vocab = ""         # Vocabulary list, one word per line
# highfreq = ""      # High-frequency exclusion list, one word per line
`, defaultTextFile)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
