// Package main provides the CLI entrypoint for retype.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/retype/internal/config"
	"github.com/verte-zerg/retype/internal/model"
	"github.com/verte-zerg/retype/internal/passage"
	"github.com/verte-zerg/retype/internal/stats"
	"github.com/verte-zerg/retype/internal/store"
	"github.com/verte-zerg/retype/internal/tui"
)

const (
	defaultContentWidth  = 0.70
	defaultHistoryWindow = 5
	defaultHistoryTop    = 10
)

var (
	practiceFile      string
	practiceClipboard bool
	practicePaste     bool
	practiceHistory   bool
	practiceWidth     float64

	historySince  string
	historyLast   int
	historyWindow int
	historyTop    int
	historyColor  string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "retype [file]",
		Short:         "Retype a passage and measure accuracy and speed",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceFile, "file", "", "load the passage from a text file")
	rootCmd.Flags().BoolVar(&practiceClipboard, "clipboard", false, "load the passage from the clipboard")
	rootCmd.Flags().BoolVar(&practicePaste, "paste", false, "paste or type the passage into a form")
	rootCmd.Flags().BoolVar(&practiceHistory, "history", true, "save completed results to the history database")
	rootCmd.Flags().Float64Var(&practiceWidth, "width", defaultContentWidth, "fraction of the terminal width used for text (0-1)")
	rootCmd.MarkFlagsMutuallyExclusive("file", "clipboard", "paste")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "file", &practiceFile, fileCfg.Practice.File)
	applyBoolConfig(cmd, "history", &practiceHistory, fileCfg.Practice.History)
	applyFloatConfig(cmd, "width", &practiceWidth, fileCfg.Practice.ContentWidth)
	if len(args) == 1 {
		if cmd.Flags().Changed("file") {
			return fmt.Errorf("pass the passage file either as an argument or with --file, not both")
		}
		practiceFile = args[0]
	}

	cfg := model.Config{
		File:         practiceFile,
		Clipboard:    practiceClipboard,
		Paste:        practicePaste,
		History:      practiceHistory,
		ContentWidth: practiceWidth,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	p, source, err := loadPassage(cfg)
	if err != nil {
		if errors.Is(err, tui.ErrPasteCancelled) {
			logErrln("Paste cancelled.")
			return nil
		}
		return err
	}

	var st *store.Store
	if cfg.History {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	m := tui.NewModel(cfg, st, p, source)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// loadPassage resolves the passage source: clipboard, paste form, file, or
// the built-in default.
func loadPassage(cfg model.Config) (*passage.Passage, string, error) {
	switch {
	case cfg.Clipboard:
		p, err := passage.FromClipboard()
		if err != nil {
			return nil, "", err
		}
		return p, tui.SourceClipboard, nil
	case cfg.Paste:
		p, err := tui.PastePassage()
		if err != nil {
			return nil, "", err
		}
		return p, tui.SourcePaste, nil
	case cfg.File != "":
		p, err := passage.LoadFile(cfg.File)
		if err != nil {
			return nil, "", err
		}
		return p, tui.SourceFile, nil
	default:
		return passage.Default(), tui.SourceDefault, nil
	}
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
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show results of completed sessions",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&historyWindow, "window", defaultHistoryWindow, "moving average window for trends")
	cmd.Flags().IntVar(&historyTop, "top", defaultHistoryTop, "number of weakest characters to list (0 for all)")
	cmd.Flags().StringVar(&historyColor, "color", "auto", "color output: auto, always, never")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "window", &historyWindow, fileCfg.History.Window)
	applyIntConfig(cmd, "top", &historyTop, fileCfg.History.Top)

	cfg, err := historyConfig()
	if err != nil {
		return err
	}
	useColor, err := resolveColor(historyColor, term.IsTerminal(int(os.Stdout.Fd())))
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	h, err := stats.BuildHistory(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if err := h.Render(cmd.OutOrStdout(), cfg, useColor); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func historyConfig() (model.HistoryConfig, error) {
	cfg := model.HistoryConfig{
		Last:   historyLast,
		Window: historyWindow,
		Top:    historyTop,
	}
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return model.HistoryConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	if cfg.Last < 0 {
		return model.HistoryConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if cfg.Window < 1 {
		return model.HistoryConfig{}, fmt.Errorf("--window must be >= 1")
	}
	if cfg.Top < 0 {
		return model.HistoryConfig{}, fmt.Errorf("--top must be >= 0")
	}
	return cfg, nil
}

func resolveColor(mode string, isTerminal bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", "auto":
		return isTerminal, nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (use auto, always or never)", mode)
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# retype configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# file = "/path/to/poem.txt"  # Passage file (default: built-in poem)
# history = true              # Save completed results
# width = %.2f                # Fraction of the terminal width used for text (0-1)

[history]
# window = %d                 # Moving average window for trends
# top = %d                    # Number of weakest characters to list
`,
		defaultContentWidth,
		defaultHistoryWindow,
		defaultHistoryTop,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.ContentWidth <= 0 || cfg.ContentWidth > 1 {
		return fmt.Errorf("--width must be between 0 and 1")
	}
	if cfg.Clipboard && cfg.Paste {
		return fmt.Errorf("choose only one of --clipboard and --paste")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
