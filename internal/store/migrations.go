package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/verte-zerg/nihongo/internal/seed"
)

// Migration is one schema version step. Up runs inside the step's transaction.
type Migration struct {
	Version     int
	Description string
	Up          func(ctx context.Context, tx *sql.Tx) error
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "create catalog tables and seed kana and words",
		Up: func(ctx context.Context, tx *sql.Tx) error {
			stmts := []string{
				`CREATE TABLE IF NOT EXISTS kana (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					character TEXT NOT NULL UNIQUE,
					romaji TEXT NOT NULL,
					type TEXT NOT NULL CHECK(type IN ('hiragana','katakana')),
					group_name TEXT NOT NULL,
					stroke_order TEXT,
					audio_file TEXT,
					created_at INTEGER NOT NULL DEFAULT (strftime('%s','now'))
				);`,
				`CREATE INDEX IF NOT EXISTS idx_kana_type ON kana(type);`,
				`CREATE INDEX IF NOT EXISTS idx_kana_romaji ON kana(romaji);`,
				`CREATE TABLE IF NOT EXISTS words (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					word TEXT NOT NULL UNIQUE,
					reading TEXT NOT NULL,
					romaji TEXT NOT NULL,
					meaning TEXT NOT NULL,
					part_of_speech TEXT CHECK(part_of_speech IN ('noun','verb','adj','adv','expr') OR part_of_speech IS NULL),
					difficulty INTEGER NOT NULL DEFAULT 1 CHECK(difficulty BETWEEN 1 AND 3),
					jlpt_level TEXT CHECK(jlpt_level IN ('N5','N4','N3','N2','N1') OR jlpt_level IS NULL),
					example_jp TEXT,
					example_gloss TEXT,
					audio_file TEXT,
					created_at INTEGER NOT NULL DEFAULT (strftime('%s','now'))
				);`,
				`CREATE INDEX IF NOT EXISTS idx_words_difficulty ON words(difficulty);`,
				`CREATE INDEX IF NOT EXISTS idx_words_jlpt ON words(jlpt_level);`,
				`CREATE TABLE IF NOT EXISTS user_progress (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					item_type TEXT NOT NULL CHECK(item_type IN ('kana','word')),
					item_id INTEGER NOT NULL,
					review_count INTEGER NOT NULL DEFAULT 0,
					correct_count INTEGER NOT NULL DEFAULT 0,
					last_reviewed INTEGER,
					next_review INTEGER,
					mastered INTEGER NOT NULL DEFAULT 0 CHECK(mastered IN (0,1)),
					created_at INTEGER NOT NULL DEFAULT (strftime('%s','now')),
					UNIQUE(item_type, item_id)
				);`,
				`CREATE INDEX IF NOT EXISTS idx_progress_next_review ON user_progress(next_review);`,
			}
			for _, stmt := range stmts {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			ds, err := seed.Load()
			if err != nil {
				return err
			}
			return seedCatalog(ctx, tx, ds)
		},
	},
	{
		Version:     2,
		Description: "add quiz results",
		Up: func(ctx context.Context, tx *sql.Tx) error {
			stmts := []string{
				`CREATE TABLE IF NOT EXISTS quiz_results (
					id INTEGER PRIMARY KEY,
					session_id TEXT NOT NULL UNIQUE,
					category TEXT NOT NULL,
					started_at TEXT NOT NULL,
					ended_at TEXT NOT NULL,
					total INTEGER NOT NULL,
					correct INTEGER NOT NULL,
					score INTEGER NOT NULL
				);`,
				`CREATE INDEX IF NOT EXISTS idx_quiz_results_ended_at ON quiz_results(ended_at);`,
			}
			for _, stmt := range stmts {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return err
				}
			}
			return nil
		},
	},
}

// CurrentSchemaVersion is the schema version this build migrates to.
func CurrentSchemaVersion() int {
	return maxVersion(migrations)
}

func (s *Store) migrate(ctx context.Context, steps []Migration) error {
	ordered := make([]Migration, len(steps))
	copy(ordered, steps)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Version < ordered[j].Version })

	current, err := readUserVersion(ctx, s.db)
	if err != nil {
		return err
	}
	if current >= maxVersion(ordered) {
		return nil
	}

	for _, m := range ordered {
		if m.Version <= current {
			continue
		}
		if err := s.applyMigration(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) applyMigration(ctx context.Context, m Migration) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration v%d: %w", m.Version, err)
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if err = m.Up(ctx, tx); err != nil {
		return fmt.Errorf("migration v%d (%s): %w", m.Version, m.Description, err)
	}
	// PRAGMA does not accept bound parameters; Version is an int from code.
	if _, err = tx.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d`, m.Version)); err != nil {
		return fmt.Errorf("set schema version v%d: %w", m.Version, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit migration v%d: %w", m.Version, err)
	}
	return nil
}

func seedCatalog(ctx context.Context, tx *sql.Tx, ds seed.Dataset) error {
	kanaStmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO kana (character, romaji, type, group_name, stroke_order, audio_file)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := kanaStmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, k := range ds.Kana {
		if _, err := kanaStmt.ExecContext(ctx, k.Character, k.Romaji, string(k.Script), k.Group,
			nullString(k.StrokeOrder), nullString(k.AudioFile)); err != nil {
			return fmt.Errorf("seed kana %q: %w", k.Character, err)
		}
	}

	wordStmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO words (word, reading, romaji, meaning, part_of_speech, difficulty, jlpt_level, example_jp, example_gloss, audio_file)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := wordStmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, w := range ds.Words {
		if _, err := wordStmt.ExecContext(ctx, w.Word, w.Reading, w.Romaji, w.Meaning,
			nullString(string(w.PartOfSpeech)), w.Difficulty, nullString(string(w.JLPT)),
			nullString(w.ExampleJP), nullString(w.ExampleGloss), nullString(w.AudioFile)); err != nil {
			return fmt.Errorf("seed word %q: %w", w.Word, err)
		}
	}
	return nil
}

func maxVersion(steps []Migration) int {
	highest := 0
	for _, m := range steps {
		if m.Version > highest {
			highest = m.Version
		}
	}
	return highest
}

// nullString stores empty optional values as NULL.
func nullString(v string) any {
	if v == "" {
		return nil
	}
	return v
}
