// Package seed provides the fixed kana and vocabulary dataset.
package seed

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/nihongo/internal/model"
)

// Expected dataset sizes.
const (
	KanaPerScript = 46
	WordCount     = 51
)

// ErrInvalidSeed reports a malformed embedded dataset.
var ErrInvalidSeed = errors.New("invalid seed data")

//go:embed kana.toml
var kanaTOML string

//go:embed words.toml
var wordsTOML string

// Dataset is the decoded seed data in insertion order.
type Dataset struct {
	Kana  []model.KanaEntry
	Words []model.WordEntry
}

type kanaFile struct {
	Kana []model.KanaEntry `toml:"kana"`
}

type wordsFile struct {
	Words []model.WordEntry `toml:"words"`
}

// Load decodes and validates the embedded dataset.
func Load() (Dataset, error) {
	return decode(kanaTOML, wordsTOML)
}

func decode(kanaSrc, wordsSrc string) (Dataset, error) {
	var kf kanaFile
	if _, err := toml.Decode(kanaSrc, &kf); err != nil {
		return Dataset{}, fmt.Errorf("%w: decode kana: %v", ErrInvalidSeed, err)
	}
	var wf wordsFile
	if _, err := toml.Decode(wordsSrc, &wf); err != nil {
		return Dataset{}, fmt.Errorf("%w: decode words: %v", ErrInvalidSeed, err)
	}
	ds := Dataset{Kana: kf.Kana, Words: wf.Words}
	if err := ds.check(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

func (d Dataset) check() error {
	perScript := map[model.Script]int{}
	chars := make(map[string]struct{}, len(d.Kana))
	for i, k := range d.Kana {
		if err := model.Validate(k); err != nil {
			return fmt.Errorf("%w: kana #%d: %v", ErrInvalidSeed, i+1, err)
		}
		if _, dup := chars[k.Character]; dup {
			return fmt.Errorf("%w: duplicate kana %q", ErrInvalidSeed, k.Character)
		}
		chars[k.Character] = struct{}{}
		perScript[k.Script]++
	}
	for _, script := range model.Scripts {
		if perScript[script] != KanaPerScript {
			return fmt.Errorf("%w: expected %d %s, got %d", ErrInvalidSeed, KanaPerScript, script, perScript[script])
		}
	}

	surfaces := make(map[string]struct{}, len(d.Words))
	for i, w := range d.Words {
		if err := model.Validate(w); err != nil {
			return fmt.Errorf("%w: word #%d: %v", ErrInvalidSeed, i+1, err)
		}
		if _, dup := surfaces[w.Word]; dup {
			return fmt.Errorf("%w: duplicate word %q", ErrInvalidSeed, w.Word)
		}
		surfaces[w.Word] = struct{}{}
	}
	if len(d.Words) != WordCount {
		return fmt.Errorf("%w: expected %d words, got %d", ErrInvalidSeed, WordCount, len(d.Words))
	}
	return nil
}
