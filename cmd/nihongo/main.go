// Package main provides the CLI entrypoint for nihongo.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/nihongo/internal/catalog"
	"github.com/verte-zerg/nihongo/internal/config"
	"github.com/verte-zerg/nihongo/internal/logging"
	"github.com/verte-zerg/nihongo/internal/model"
	"github.com/verte-zerg/nihongo/internal/quiz"
	"github.com/verte-zerg/nihongo/internal/tui"
)

const (
	defaultKind  = "hiragana"
	defaultCount = 10
)

var (
	quizKind       string
	quizCount      int
	quizDifficulty int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nihongo",
		Short:         "Kana and vocabulary quiz trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runQuizCmd,
	}

	rootCmd.Flags().StringVar(&quizKind, "kind", defaultKind, "quiz kind: hiragana, katakana or word")
	rootCmd.Flags().IntVar(&quizCount, "count", defaultCount, "questions per quiz")
	rootCmd.Flags().IntVar(&quizDifficulty, "difficulty", 0, "word difficulty 1-3 (0 = any)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newKanaCmd())
	rootCmd.AddCommand(newWordsCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newHistoryCmd())

	return rootCmd
}

// app holds what every command needs: config, logger and catalog.
type app struct {
	file      config.FileConfig
	logger    *slog.Logger
	logCloser io.Closer
	provider  catalog.Provider
	svc       *catalog.Service
}

func openApp(ctx context.Context) (*app, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logCfg, err := fileCfg.LogSettings()
	if err != nil {
		return nil, err
	}
	storageCfg, err := fileCfg.StorageSettings()
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	slog.SetDefault(logger)

	provider, err := catalog.Open(ctx, storageCfg)
	if err != nil {
		if cerr := closer.Close(); cerr != nil {
			// Best-effort close on startup failure.
			_ = cerr
		}
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	logger.Debug("catalog opened", slog.String("backend", storageCfg.Backend), slog.String("path", storageCfg.Path))
	return &app{
		file:      fileCfg,
		logger:    logger,
		logCloser: closer,
		provider:  provider,
		svc:       catalog.NewService(provider, logger),
	}, nil
}

func (a *app) Close() {
	if cerr := a.provider.Close(); cerr != nil {
		logErrf("failed to close catalog: %v\n", cerr)
	}
	if cerr := a.logCloser.Close(); cerr != nil {
		logErrf("failed to close log: %v\n", cerr)
	}
}

func runQuizCmd(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	applyStringConfig(cmd, "kind", &quizKind, a.file.Quiz.Kind)
	applyIntConfig(cmd, "count", &quizCount, a.file.Quiz.Count)
	applyIntConfig(cmd, "difficulty", &quizDifficulty, a.file.Quiz.Difficulty)

	category, err := model.ParseCategory(quizKind)
	if err != nil {
		return fmt.Errorf("--kind: %w", err)
	}
	if quizCount <= 0 {
		return fmt.Errorf("--count must be > 0")
	}
	difficulty, err := difficultyFilter(quizDifficulty)
	if err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the quiz needs an interactive terminal")
	}

	gen := quiz.NewDefault(a.provider).WithLogger(a.logger)
	generate := func() []model.QuizQuestion {
		if script, ok := category.Script(); ok {
			return gen.GenerateKanaQuiz(ctx, script, quizCount)
		}
		return gen.GenerateWordQuiz(ctx, quizCount, difficulty)
	}

	m := tui.NewModel(a.provider, category, generate(), generate)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
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

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# nihongo configuration
# Uncomment a value to enable it. CLI flags override config values.

[storage]
# backend = %q        # "sqlite" or "memory" (memory keeps no history)
# path = %q

[quiz]
# kind = %q         # hiragana, katakana or word
# count = %d              # Questions per quiz
# difficulty = 0          # Word difficulty 1-3, 0 for any

[log]
# level = %q            # debug, info, warn or error
# file = %q
# max-size-mb = %d
# max-files = %d
`,
		config.BackendSQLite,
		config.DefaultDBPath(),
		defaultKind,
		defaultCount,
		config.DefaultLogLevel,
		config.DefaultLogPath(),
		config.DefaultLogMaxSizeMB,
		config.DefaultLogMaxFiles,
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
