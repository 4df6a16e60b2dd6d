package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/nihongo/internal/analyze"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <sentence>",
		Short: "Split a Japanese sentence into words and link known vocabulary",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAnalyzeCmd,
	}
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	text := strings.Join(args, " ")

	analyzer, err := analyze.New()
	if err != nil {
		return fmt.Errorf("failed to load tokenizer: %w", err)
	}
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	tokens := analyzer.Tokens(text)
	rows := make([][]string, 0, len(tokens))
	for _, t := range tokens {
		rows = append(rows, []string{t.Surface, t.BaseForm, analyze.ToHiragana(t.Reading), t.POS})
	}
	if err := printTable(out, []string{"Surface", "Base", "Reading", "POS"}, rows); err != nil {
		return err
	}

	matched := analyzer.MatchWords(text, a.svc.Words(ctx))
	if len(matched) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(out, "\nKnown words"); err != nil {
		return err
	}
	return printWords(out, matched)
}
