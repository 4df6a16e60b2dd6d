package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/nihongo/internal/model"
)

const wordColumns = `id, word, reading, romaji, meaning, part_of_speech, difficulty, jlpt_level, example_jp, example_gloss, audio_file`

// ListWords returns every word in insertion order.
func (s *Store) ListWords(ctx context.Context) ([]model.WordEntry, error) {
	return s.queryWords(ctx, "list words", `SELECT `+wordColumns+` FROM words ORDER BY id`)
}

// WordsByDifficulty returns the words of one difficulty tier.
func (s *Store) WordsByDifficulty(ctx context.Context, difficulty int) ([]model.WordEntry, error) {
	return s.queryWords(ctx, "words by difficulty",
		`SELECT `+wordColumns+` FROM words WHERE difficulty = ? ORDER BY id`, difficulty)
}

// WordsByJLPT returns the words tagged with one JLPT level.
func (s *Store) WordsByJLPT(ctx context.Context, level model.JLPTLevel) ([]model.WordEntry, error) {
	return s.queryWords(ctx, "words by jlpt",
		`SELECT `+wordColumns+` FROM words WHERE jlpt_level = ? ORDER BY id`, string(level))
}

// WordByID returns one word, or nil when no row has that id.
func (s *Store) WordByID(ctx context.Context, id int64) (*model.WordEntry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+wordColumns+` FROM words WHERE id = ?`, id)
	entry, err := scanWord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("word by id: %w", err)
	}
	return &entry, nil
}

// SearchWords returns words whose surface, reading, romaji or meaning contains
// query, ordered by difficulty then id. Romaji matches ignore case.
func (s *Store) SearchWords(ctx context.Context, query string) ([]model.WordEntry, error) {
	pattern := "%" + escapeLike(query) + "%"
	return s.queryWords(ctx, "search words",
		`SELECT `+wordColumns+` FROM words
		 WHERE word LIKE ? ESCAPE '\'
		    OR reading LIKE ? ESCAPE '\'
		    OR lower(romaji) LIKE lower(?) ESCAPE '\'
		    OR meaning LIKE ? ESCAPE '\'
		 ORDER BY difficulty, id`,
		pattern, pattern, pattern, pattern)
}

// RandomWords samples up to count distinct words, optionally restricted to one
// difficulty.
func (s *Store) RandomWords(ctx context.Context, count int, difficulty *int) ([]model.WordEntry, error) {
	if count <= 0 {
		return nil, nil
	}
	if difficulty != nil {
		return s.queryWords(ctx, "random words",
			`SELECT `+wordColumns+` FROM words WHERE difficulty = ? ORDER BY RANDOM() LIMIT ?`,
			*difficulty, count)
	}
	return s.queryWords(ctx, "random words",
		`SELECT `+wordColumns+` FROM words ORDER BY RANDOM() LIMIT ?`, count)
}

func (s *Store) queryWords(ctx context.Context, op, query string, args ...any) ([]model.WordEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer closeRows(rows)

	var result []model.WordEntry
	for rows.Next() {
		entry, err := scanWord(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanWord(row rowScanner) (model.WordEntry, error) {
	var (
		entry                          model.WordEntry
		word, reading, romaji, meaning sql.NullString
		pos, jlpt                      sql.NullString
		exampleJP, exampleGloss, audio sql.NullString
		difficulty                     sql.NullInt64
	)
	if err := row.Scan(&entry.ID, &word, &reading, &romaji, &meaning, &pos, &difficulty, &jlpt,
		&exampleJP, &exampleGloss, &audio); err != nil {
		return model.WordEntry{}, err
	}
	entry.Word = word.String
	entry.Reading = reading.String
	entry.Romaji = romaji.String
	entry.Meaning = meaning.String
	entry.PartOfSpeech = model.PartOfSpeech(pos.String)
	entry.Difficulty = int(difficulty.Int64)
	entry.JLPT = model.JLPTLevel(jlpt.String)
	entry.ExampleJP = exampleJP.String
	entry.ExampleGloss = exampleGloss.String
	entry.AudioFile = audio.String
	if err := model.Validate(entry); err != nil {
		return model.WordEntry{}, fmt.Errorf("word %d: %w", entry.ID, err)
	}
	return entry, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
