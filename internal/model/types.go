// Package model defines shared data structures.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrDecode reports a stored or seeded record that is missing a required field
	// or carries an out-of-range value.
	ErrDecode = errors.New("decode record")
	// ErrInvalidScript reports an unknown kana script name.
	ErrInvalidScript = errors.New("invalid script")
	// ErrInvalidCategory reports an unknown quiz category.
	ErrInvalidCategory = errors.New("invalid category")
	// ErrInvalidJLPT reports an unknown JLPT level.
	ErrInvalidJLPT = errors.New("invalid jlpt level")
	// ErrInvalidDifficulty reports a difficulty outside [MinDifficulty, MaxDifficulty].
	ErrInvalidDifficulty = errors.New("invalid difficulty")
)

// Script is a kana writing system.
type Script string

// Supported scripts.
const (
	ScriptHiragana Script = "hiragana"
	ScriptKatakana Script = "katakana"
)

// Scripts lists the supported scripts in display order.
var Scripts = []Script{ScriptHiragana, ScriptKatakana}

// ParseScript validates a script name.
func ParseScript(value string) (Script, error) {
	switch Script(strings.ToLower(strings.TrimSpace(value))) {
	case ScriptHiragana:
		return ScriptHiragana, nil
	case ScriptKatakana:
		return ScriptKatakana, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidScript, value)
}

// PartOfSpeech tags a word.
type PartOfSpeech string

// Parts of speech used by the catalog.
const (
	PartNoun      PartOfSpeech = "noun"
	PartVerb      PartOfSpeech = "verb"
	PartAdjective PartOfSpeech = "adj"
	PartAdverb    PartOfSpeech = "adv"
	PartExpr      PartOfSpeech = "expr"
)

// JLPTLevel is a Japanese-Language Proficiency Test tier, N5 easiest.
type JLPTLevel string

// JLPT levels.
const (
	JLPTN5 JLPTLevel = "N5"
	JLPTN4 JLPTLevel = "N4"
	JLPTN3 JLPTLevel = "N3"
	JLPTN2 JLPTLevel = "N2"
	JLPTN1 JLPTLevel = "N1"
)

// ParseJLPT validates a JLPT level such as "N5" or "n5".
func ParseJLPT(value string) (JLPTLevel, error) {
	level := JLPTLevel(strings.ToUpper(strings.TrimSpace(value)))
	switch level {
	case JLPTN5, JLPTN4, JLPTN3, JLPTN2, JLPTN1:
		return level, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidJLPT, value)
}

// Difficulty bounds.
const (
	MinDifficulty = 1
	MaxDifficulty = 3
)

// CheckDifficulty rejects levels outside [MinDifficulty, MaxDifficulty].
func CheckDifficulty(d int) error {
	if d < MinDifficulty || d > MaxDifficulty {
		return fmt.Errorf("%w: %d (want %d-%d)", ErrInvalidDifficulty, d, MinDifficulty, MaxDifficulty)
	}
	return nil
}

// KanaEntry is a single kana character.
type KanaEntry struct {
	ID          int64  `toml:"-" validate:"gte=0"`
	Character   string `toml:"character" validate:"required"`
	Romaji      string `toml:"romaji" validate:"required"`
	Script      Script `toml:"script" validate:"required,oneof=hiragana katakana"`
	Group       string `toml:"group" validate:"required"`
	StrokeOrder string `toml:"stroke-order" validate:"omitempty"`
	AudioFile   string `toml:"audio" validate:"omitempty"`
}

// WordEntry is a vocabulary item.
type WordEntry struct {
	ID           int64        `toml:"-" validate:"gte=0"`
	Word         string       `toml:"word" validate:"required"`
	Reading      string       `toml:"reading" validate:"required"`
	Romaji       string       `toml:"romaji" validate:"required"`
	Meaning      string       `toml:"meaning" validate:"required"`
	PartOfSpeech PartOfSpeech `toml:"pos" validate:"omitempty,oneof=noun verb adj adv expr"`
	Difficulty   int          `toml:"difficulty" validate:"min=1,max=3"`
	JLPT         JLPTLevel    `toml:"jlpt" validate:"omitempty,oneof=N5 N4 N3 N2 N1"`
	ExampleJP    string       `toml:"example-jp" validate:"omitempty"`
	ExampleGloss string       `toml:"example-gloss" validate:"omitempty"`
	AudioFile    string       `toml:"audio" validate:"omitempty"`
}

// Category selects the pool a quiz draws from.
type Category string

// Quiz categories.
const (
	CategoryHiragana Category = "hiragana"
	CategoryKatakana Category = "katakana"
	CategoryWord     Category = "word"
)

// ParseCategory validates a quiz category name.
func ParseCategory(value string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(value))) {
	case CategoryHiragana:
		return CategoryHiragana, nil
	case CategoryKatakana:
		return CategoryKatakana, nil
	case CategoryWord, "words":
		return CategoryWord, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, value)
}

// Script returns the kana script of a kana category.
func (c Category) Script() (Script, bool) {
	switch c {
	case CategoryHiragana:
		return ScriptHiragana, true
	case CategoryKatakana:
		return ScriptKatakana, true
	}
	return "", false
}

// QuestionKind distinguishes kana and word questions.
type QuestionKind string

// Question kinds.
const (
	QuestionKana QuestionKind = "kana"
	QuestionWord QuestionKind = "word"
)

// QuizQuestion is a generated multiple-choice question. It is never persisted.
type QuizQuestion struct {
	ID            string
	Kind          QuestionKind
	Prompt        string
	CorrectAnswer string
	Options       []string
}

// QuizResult summarizes a finished quiz.
type QuizResult struct {
	Total    int
	Correct  int
	Wrong    int
	Score    int
	Duration time.Duration
}

// ResultRecord is a persisted quiz result.
type ResultRecord struct {
	ID        int64
	SessionID string
	Category  Category
	StartedAt time.Time
	EndedAt   time.Time
	Total     int
	Correct   int
	Score     int
}
