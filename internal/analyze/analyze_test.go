package analyze

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/nihongo/internal/model"
	"github.com/verte-zerg/nihongo/internal/seed"
)

func TestTokensBaseForm(t *testing.T) {
	a, err := New()
	require.NoError(t, err)

	tokens := a.Tokens("パンを食べます")
	require.NotEmpty(t, tokens)
	var found bool
	for _, tok := range tokens {
		if tok.BaseForm == "食べる" {
			found = true
			require.Equal(t, "動詞", tok.POS)
			require.Equal(t, "タベ", tok.Reading)
		}
	}
	require.True(t, found, "expected 食べる in %+v", tokens)
}

func TestTokensKeepUnknownWordsAndDropBlanks(t *testing.T) {
	a, err := New()
	require.NoError(t, err)

	tokens := a.Tokens("ABC を 食べる")
	var surfaces []string
	for _, tok := range tokens {
		require.NotEmpty(t, strings.TrimSpace(tok.Surface))
		surfaces = append(surfaces, tok.Surface)
		if tok.Surface == "ABC" {
			require.Equal(t, "ABC", tok.BaseForm)
		}
	}
	require.Contains(t, surfaces, "ABC")
	require.Contains(t, surfaces, "食べる")
}

func TestMatchWords(t *testing.T) {
	a, err := New()
	require.NoError(t, err)
	ds, err := seed.Load()
	require.NoError(t, err)

	got := a.MatchWords("パンを食べます。水を飲みます。パンを食べます。", ds.Words)
	var surfaces []string
	for _, w := range got {
		surfaces = append(surfaces, w.Word)
	}
	require.Contains(t, surfaces, "食べる")
	require.Contains(t, surfaces, "水")
	require.Less(t, indexOf(surfaces, "食べる"), indexOf(surfaces, "水"))

	counts := map[string]int{}
	for _, s := range surfaces {
		counts[s]++
	}
	for s, n := range counts {
		require.Equal(t, 1, n, "word %q repeated", s)
	}
}

func TestMatchWordsNoCatalog(t *testing.T) {
	a, err := New()
	require.NoError(t, err)
	require.Empty(t, a.MatchWords("パンを食べます", []model.WordEntry{}))
}

func TestToHiragana(t *testing.T) {
	require.Equal(t, "たべ", ToHiragana("タベ"))
	require.Equal(t, "abc", ToHiragana("abc"))
}

func indexOf(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return -1
}
