package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/verte-zerg/nihongo/internal/model"
)

const kanaColumns = `id, character, romaji, type, group_name, stroke_order, audio_file`

// ListKana returns kana of the given script in insertion order. An empty
// script returns every kana.
func (s *Store) ListKana(ctx context.Context, script model.Script) ([]model.KanaEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+kanaColumns+` FROM kana
		 WHERE (? = '' OR type = ?)
		 ORDER BY id`, string(script), string(script))
	if err != nil {
		return nil, fmt.Errorf("list kana: %w", err)
	}
	defer closeRows(rows)
	return scanKanaRows(rows)
}

// KanaByGroup returns the kana of one row group, ordered by id.
func (s *Store) KanaByGroup(ctx context.Context, script model.Script, group string) ([]model.KanaEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+kanaColumns+` FROM kana
		 WHERE type = ? AND group_name = ?
		 ORDER BY id`, string(script), group)
	if err != nil {
		return nil, fmt.Errorf("kana by group: %w", err)
	}
	defer closeRows(rows)
	return scanKanaRows(rows)
}

// KanaByID returns one kana, or nil when no row has that id.
func (s *Store) KanaByID(ctx context.Context, id int64) (*model.KanaEntry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+kanaColumns+` FROM kana WHERE id = ?`, id)
	entry, err := scanKana(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("kana by id: %w", err)
	}
	return &entry, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanKana(row rowScanner) (model.KanaEntry, error) {
	var (
		entry                   model.KanaEntry
		character, romaji, kind sql.NullString
		group, stroke, audio    sql.NullString
	)
	if err := row.Scan(&entry.ID, &character, &romaji, &kind, &group, &stroke, &audio); err != nil {
		return model.KanaEntry{}, err
	}
	entry.Character = character.String
	entry.Romaji = romaji.String
	entry.Script = model.Script(kind.String)
	entry.Group = group.String
	entry.StrokeOrder = stroke.String
	entry.AudioFile = audio.String
	if err := model.Validate(entry); err != nil {
		return model.KanaEntry{}, fmt.Errorf("kana %d: %w", entry.ID, err)
	}
	return entry, nil
}

func scanKanaRows(rows *sql.Rows) ([]model.KanaEntry, error) {
	var result []model.KanaEntry
	for rows.Next() {
		entry, err := scanKana(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
