package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Category", "Score", "Correct"}
	rows := [][]string{
		{"hiragana", "97%", "12"},
		{"word", "8%", "3"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Category Score Correct" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "hiragana   97%      12" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "word        8%       3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"Word", "Meaning"}, [][]string{{"食べる", "吃"}, {"a", "b"}}, nil)
	if lines[0] != "Word   Meaning" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "食べる 吃     " {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "a      b      " {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}
