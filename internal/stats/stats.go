// Package stats summarizes stored quiz results.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/verte-zerg/nihongo/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Scores extracts the score of each record as a float series.
func Scores(records []model.ResultRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = float64(r.Score)
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 || len(values) == 0 {
		copy(out, values)
		return out
	}
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		den := float64(i + 1)
		if i >= window {
			sum -= values[i-window]
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints totals per category and overall.
func RenderSummary(w io.Writer, records []model.ResultRecord) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(w, "No quiz results found.")
		return err
	}
	type agg struct {
		quizzes, questions, correct, best int
		scoreSum                          int
	}
	byCategory := map[model.Category]*agg{}
	total := &agg{}
	for _, r := range records {
		a, ok := byCategory[r.Category]
		if !ok {
			a = &agg{}
			byCategory[r.Category] = a
		}
		for _, target := range []*agg{a, total} {
			target.quizzes++
			target.questions += r.Total
			target.correct += r.Correct
			target.scoreSum += r.Score
			target.best = max(target.best, r.Score)
		}
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, string(c))
	}
	sort.Strings(categories)

	row := func(label string, a *agg) []string {
		return []string{
			label,
			fmt.Sprintf("%d", a.quizzes),
			fmt.Sprintf("%d/%d", a.correct, a.questions),
			fmt.Sprintf("%.1f", float64(a.scoreSum)/float64(a.quizzes)),
			fmt.Sprintf("%d", a.best),
		}
	}
	rows := make([][]string, 0, len(categories)+1)
	for _, c := range categories {
		rows = append(rows, row(c, byCategory[model.Category(c)]))
	}
	rows = append(rows, row("all", total))

	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	headers := []string{"Category", "Quizzes", "Correct", "Avg Score", "Best"}
	if err := writeLines(w, formatTable(headers, rows, map[int]bool{1: true, 2: true, 3: true, 4: true})); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderHistory prints one line per result and a score trend.
func RenderHistory(w io.Writer, records []model.ResultRecord, window int) error {
	if len(records) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "History"); err != nil {
		return err
	}
	headers := []string{"Ended", "Category", "Correct", "Score", "Time"}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			string(r.Category),
			fmt.Sprintf("%d/%d", r.Correct, r.Total),
			fmt.Sprintf("%d%%", r.Score),
			r.EndedAt.Sub(r.StartedAt).Round(time.Second).String(),
		})
	}
	if err := writeLines(w, formatTable(headers, rows, map[int]bool{2: true, 3: true, 4: true})); err != nil {
		return err
	}
	trend := Sparkline(MovingAverage(Scores(records), window))
	if _, err := fmt.Fprintf(w, "\nTrend: [%s]\n", trend); err != nil {
		return err
	}
	return nil
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
