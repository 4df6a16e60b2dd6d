// Package analyze tokenizes Japanese sentences and links tokens to catalog
// words.
package analyze

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/verte-zerg/nihongo/internal/model"
)

// Token is one morpheme of analyzed text.
type Token struct {
	Surface  string // as written, e.g. "食べ"
	BaseForm string // dictionary form, e.g. "食べる"
	Reading  string // katakana
	POS      string // primary IPA part of speech, e.g. "動詞"
}

// Analyzer wraps a kagome tokenizer with the IPA dictionary.
type Analyzer struct {
	t *tokenizer.Tokenizer
}

// New builds an Analyzer. Loading the dictionary takes a moment; reuse it.
func New() (*Analyzer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Analyzer{t: t}, nil
}

// Tokens splits text into morphemes, skipping dummy and blank tokens. Words
// missing from the dictionary are kept with their surface as base form.
func (a *Analyzer) Tokens(text string) []Token {
	var result []Token
	for _, tok := range a.t.Tokenize(text) {
		if tok.Class == tokenizer.DUMMY || strings.TrimSpace(tok.Surface) == "" {
			continue
		}
		// IPA features: 0 POS, 6 base form, 7 reading.
		features := tok.Features()
		t := Token{Surface: tok.Surface, BaseForm: tok.Surface}
		if len(features) > 0 {
			t.POS = features[0]
		}
		if len(features) > 6 && features[6] != "*" {
			t.BaseForm = features[6]
		}
		if len(features) > 7 && features[7] != "*" {
			t.Reading = features[7]
		}
		result = append(result, t)
	}
	return result
}

// MatchWords returns the words whose surface equals a token's base form or
// surface, in order of first appearance and without repeats.
func (a *Analyzer) MatchWords(text string, words []model.WordEntry) []model.WordEntry {
	bySurface := make(map[string]model.WordEntry, len(words))
	for _, w := range words {
		bySurface[w.Word] = w
	}
	seen := map[string]struct{}{}
	var result []model.WordEntry
	for _, tok := range a.Tokens(text) {
		for _, key := range []string{tok.BaseForm, tok.Surface} {
			w, ok := bySurface[key]
			if !ok {
				continue
			}
			if _, dup := seen[w.Word]; !dup {
				seen[w.Word] = struct{}{}
				result = append(result, w)
			}
			break
		}
	}
	return result
}

// ToHiragana maps katakana readings to hiragana.
func ToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x30A1 && r <= 0x30F6 {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}
