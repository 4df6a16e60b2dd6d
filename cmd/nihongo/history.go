package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/nihongo/internal/model"
	"github.com/verte-zerg/nihongo/internal/stats"
)

const defaultTrendWindow = 5

var (
	historyKind   string
	historySince  string
	historyLast   int
	historyWindow int
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show quiz results",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyKind, "kind", "", "category filter: hiragana, katakana or word")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N quizzes")
	cmd.Flags().IntVar(&historyWindow, "window", defaultTrendWindow, "moving average window for the trend")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	var category model.Category
	if historyKind != "" {
		parsed, err := model.ParseCategory(historyKind)
		if err != nil {
			return fmt.Errorf("--kind: %w", err)
		}
		category = parsed
	}
	var sinceTime *time.Time
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := stats.BuildReport(ctx, a.provider, category, sinceTime, historyLast, historyWindow)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report.Records); err != nil {
		return err
	}
	if len(report.Window) < len(report.Records) {
		if _, err := fmt.Fprintf(out, "Last %d quizzes\n", len(report.Window)); err != nil {
			return err
		}
		if err := stats.RenderSummary(out, report.Window); err != nil {
			return err
		}
	}
	return stats.RenderHistory(out, report.Records, historyWindow)
}
