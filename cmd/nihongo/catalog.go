package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/nihongo/internal/model"
)

var (
	kanaScript string
	kanaGroup  string

	wordsDifficulty int
	wordsJLPT       string
)

func newKanaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kana",
		Short: "List kana",
		Args:  cobra.NoArgs,
		RunE:  runKanaCmd,
	}
	cmd.Flags().StringVar(&kanaScript, "script", "", "hiragana or katakana (default: both)")
	cmd.Flags().StringVar(&kanaGroup, "group", "", "row group such as a-row or n (requires --script)")
	return cmd
}

func runKanaCmd(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	var script model.Script
	if kanaScript != "" {
		parsed, err := model.ParseScript(kanaScript)
		if err != nil {
			return fmt.Errorf("--script: %w", err)
		}
		script = parsed
	}
	if kanaGroup != "" && script == "" {
		return fmt.Errorf("--group requires --script")
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	var items []model.KanaEntry
	if kanaGroup != "" {
		items = a.svc.KanaByGroup(ctx, script, kanaGroup)
	} else {
		items = a.svc.Kana(ctx, script)
	}
	rows := make([][]string, 0, len(items))
	for _, k := range items {
		rows = append(rows, []string{strconv.FormatInt(k.ID, 10), k.Character, k.Romaji, string(k.Script), k.Group})
	}
	return printTable(cmd.OutOrStdout(), []string{"ID", "Kana", "Romaji", "Script", "Group"}, rows)
}

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "List vocabulary",
		Args:  cobra.NoArgs,
		RunE:  runWordsCmd,
	}
	cmd.Flags().IntVar(&wordsDifficulty, "difficulty", 0, "difficulty 1-3 (0 = any)")
	cmd.Flags().StringVar(&wordsJLPT, "jlpt", "", "JLPT level N5-N1")
	return cmd
}

func runWordsCmd(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	difficulty, err := difficultyFilter(wordsDifficulty)
	if err != nil {
		return err
	}
	var level model.JLPTLevel
	if wordsJLPT != "" {
		parsed, err := model.ParseJLPT(wordsJLPT)
		if err != nil {
			return fmt.Errorf("--jlpt: %w", err)
		}
		level = parsed
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	var items []model.WordEntry
	switch {
	case difficulty != nil:
		items = a.svc.WordsByDifficulty(ctx, *difficulty)
	case level != "":
		items = a.svc.WordsByJLPT(ctx, level)
	default:
		items = a.svc.Words(ctx)
	}
	if difficulty != nil && level != "" {
		items = filterByJLPT(items, level)
	}
	return printWords(cmd.OutOrStdout(), items)
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search words by surface, reading, romaji or meaning",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			items := a.svc.Search(ctx, args[0])
			if len(items) == 0 {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "No words match %q.\n", args[0])
				return err
			}
			return printWords(cmd.OutOrStdout(), items)
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <kana|word> <id>",
		Short: "Show one kana or word",
		Args:  cobra.ExactArgs(2),
		RunE:  runShowCmd,
	}
}

func runShowCmd(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", args[1], err)
	}
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	switch strings.ToLower(args[0]) {
	case "kana":
		k := a.svc.KanaByID(ctx, id)
		if k == nil {
			return fmt.Errorf("kana %d not found", id)
		}
		return printFields(out, [][2]string{
			{"Kana", k.Character},
			{"Romaji", k.Romaji},
			{"Script", string(k.Script)},
			{"Group", k.Group},
			{"Stroke order", k.StrokeOrder},
			{"Audio", k.AudioFile},
		})
	case "word", "words":
		w := a.svc.WordByID(ctx, id)
		if w == nil {
			return fmt.Errorf("word %d not found", id)
		}
		return printFields(out, [][2]string{
			{"Word", w.Word},
			{"Reading", w.Reading},
			{"Romaji", w.Romaji},
			{"Meaning", w.Meaning},
			{"Part of speech", string(w.PartOfSpeech)},
			{"Difficulty", strconv.Itoa(w.Difficulty)},
			{"JLPT", string(w.JLPT)},
			{"Example", w.ExampleJP},
			{"Translation", w.ExampleGloss},
			{"Audio", w.AudioFile},
		})
	}
	return fmt.Errorf("unknown item type %q (want kana or word)", args[0])
}

// difficultyFilter maps the 0 = any flag value to nil and rejects levels
// outside the supported range.
func difficultyFilter(v int) (*int, error) {
	if v == 0 {
		return nil, nil
	}
	if err := model.CheckDifficulty(v); err != nil {
		return nil, fmt.Errorf("--difficulty: %w", err)
	}
	return &v, nil
}

func filterByJLPT(items []model.WordEntry, level model.JLPTLevel) []model.WordEntry {
	out := items[:0]
	for _, w := range items {
		if w.JLPT == level {
			out = append(out, w)
		}
	}
	return out
}

func printWords(w io.Writer, items []model.WordEntry) error {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			strconv.FormatInt(item.ID, 10),
			item.Word,
			item.Reading,
			item.Romaji,
			item.Meaning,
			string(item.PartOfSpeech),
			strconv.Itoa(item.Difficulty),
			string(item.JLPT),
		})
	}
	return printTable(w, []string{"ID", "Word", "Reading", "Romaji", "Meaning", "POS", "Lv", "JLPT"}, rows)
}

// printTable aligns columns by terminal cell width and clips rows to the
// terminal when stdout is one.
func printTable(w io.Writer, headers []string, rows [][]string) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No entries.")
		return err
	}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	limit := terminalWidth()
	write := func(cells []string) error {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			parts[i] = runewidth.FillRight(cell, widths[i])
		}
		line := strings.TrimRight(strings.Join(parts, "  "), " ")
		if limit > 0 {
			line = runewidth.Truncate(line, limit, "…")
		}
		_, err := fmt.Fprintln(w, line)
		return err
	}
	if err := write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		if err := write(row); err != nil {
			return err
		}
	}
	return nil
}

func printFields(w io.Writer, fields [][2]string) error {
	labelWidth := 0
	for _, f := range fields {
		labelWidth = max(labelWidth, runewidth.StringWidth(f[0]))
	}
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight(f[0], labelWidth), f[1]); err != nil {
			return err
		}
	}
	return nil
}

// terminalWidth is 0 when stdout is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return 0
	}
	return width
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
