package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/nihongo/internal/model"
	"github.com/verte-zerg/nihongo/internal/seed"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nihongo.db")
	s, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if cerr := s.Close(); cerr != nil {
			t.Fatalf("close store: %v", cerr)
		}
	})
	return s
}

func TestOpenSeedsCatalog(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	hira, err := s.ListKana(ctx, model.ScriptHiragana)
	require.NoError(t, err)
	require.Len(t, hira, seed.KanaPerScript)

	kata, err := s.ListKana(ctx, model.ScriptKatakana)
	require.NoError(t, err)
	require.Len(t, kata, seed.KanaPerScript)

	all, err := s.ListKana(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2*seed.KanaPerScript)

	words, err := s.ListWords(ctx)
	require.NoError(t, err)
	require.Len(t, words, seed.WordCount)

	version, err := s.SchemaVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, CurrentSchemaVersion(), version)
}

func TestReopenKeepsCounts(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "nihongo.db")
	for i := 0; i < 2; i++ {
		s, err := Open(ctx, path)
		require.NoError(t, err)
		all, err := s.ListKana(ctx, "")
		require.NoError(t, err)
		require.Len(t, all, 2*seed.KanaPerScript)
		words, err := s.ListWords(ctx)
		require.NoError(t, err)
		require.Len(t, words, seed.WordCount)
		require.NoError(t, s.Close())
	}
}

func TestSeedingIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ds, err := seed.Load()
	require.NoError(t, err)
	tx, err := s.db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, seedCatalog(ctx, tx, ds))
	require.NoError(t, tx.Commit())

	all, err := s.ListKana(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2*seed.KanaPerScript)
	words, err := s.ListWords(ctx)
	require.NoError(t, err)
	require.Len(t, words, seed.WordCount)
}

func TestUniqueCharactersAndSurfaces(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	all, err := s.ListKana(ctx, "")
	require.NoError(t, err)
	chars := map[string]bool{}
	for _, k := range all {
		if chars[k.Character] {
			t.Fatalf("duplicate character %q", k.Character)
		}
		chars[k.Character] = true
	}

	words, err := s.ListWords(ctx)
	require.NoError(t, err)
	surfaces := map[string]bool{}
	for _, w := range words {
		if surfaces[w.Word] {
			t.Fatalf("duplicate word %q", w.Word)
		}
		surfaces[w.Word] = true
	}
}

func TestKanaByGroup(t *testing.T) {
	s := openTestStore(t)
	got, err := s.KanaByGroup(context.Background(), model.ScriptHiragana, "a-row")
	require.NoError(t, err)

	var chars, romaji []string
	for _, k := range got {
		chars = append(chars, k.Character)
		romaji = append(romaji, k.Romaji)
	}
	require.Equal(t, []string{"あ", "い", "う", "え", "お"}, chars)
	require.Equal(t, []string{"a", "i", "u", "e", "o"}, romaji)
}

func TestKanaByGroupUnknown(t *testing.T) {
	s := openTestStore(t)
	got, err := s.KanaByGroup(context.Background(), model.ScriptKatakana, "xa-row")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestByIDMissingReturnsNil(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	k, err := s.KanaByID(ctx, 9999)
	require.NoError(t, err)
	require.Nil(t, k)

	w, err := s.WordByID(ctx, 9999)
	require.NoError(t, err)
	require.Nil(t, w)

	first, err := s.KanaByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, first)
	require.Equal(t, "あ", first.Character)
}

func TestWordsByDifficultyAndJLPT(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	total := 0
	for d := model.MinDifficulty; d <= model.MaxDifficulty; d++ {
		words, err := s.WordsByDifficulty(ctx, d)
		require.NoError(t, err)
		for _, w := range words {
			require.Equal(t, d, w.Difficulty)
		}
		total += len(words)
	}
	require.Equal(t, seed.WordCount, total)

	n5, err := s.WordsByJLPT(ctx, model.JLPTN5)
	require.NoError(t, err)
	require.NotEmpty(t, n5)
	for _, w := range n5 {
		require.Equal(t, model.JLPTN5, w.JLPT)
	}

	none, err := s.WordsByDifficulty(ctx, 7)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestSearchWords(t *testing.T) {
	s := openTestStore(t)
	got, err := s.SearchWords(context.Background(), "食")
	require.NoError(t, err)
	require.NotEmpty(t, got)

	found := false
	for _, w := range got {
		if w.Word == "食べる" && w.Meaning == "吃" {
			found = true
		}
		if !strings.Contains(w.Word, "食") && !strings.Contains(w.Reading, "食") &&
			!strings.Contains(w.Romaji, "食") && !strings.Contains(w.Meaning, "食") {
			t.Fatalf("result %q does not contain the query", w.Word)
		}
	}
	require.True(t, found, "expected 食べる in results")
}

func TestSearchWordsRomajiIgnoresCase(t *testing.T) {
	s := openTestStore(t)
	got, err := s.SearchWords(context.Background(), "TABE")
	require.NoError(t, err)
	require.NotEmpty(t, got)
	require.Equal(t, "食べる", got[0].Word)
}

func TestSearchWordsOrdering(t *testing.T) {
	s := openTestStore(t)
	got, err := s.SearchWords(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, got, seed.WordCount)
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		if prev.Difficulty > cur.Difficulty || (prev.Difficulty == cur.Difficulty && prev.ID > cur.ID) {
			t.Fatalf("results out of order at %d", i)
		}
	}
}

func TestSearchWordsEscapesWildcards(t *testing.T) {
	s := openTestStore(t)
	got, err := s.SearchWords(context.Background(), "%")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestRandomWords(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	got, err := s.RandomWords(ctx, 5, nil)
	require.NoError(t, err)
	require.Len(t, got, 5)
	seen := map[int64]bool{}
	for _, w := range got {
		require.False(t, seen[w.ID])
		seen[w.ID] = true
	}

	easy := 1
	capped, err := s.RandomWords(ctx, 100, &easy)
	require.NoError(t, err)
	require.Len(t, capped, seed.WordCount)
	for _, w := range capped {
		require.Equal(t, 1, w.Difficulty)
	}

	hard := 3
	empty, err := s.RandomWords(ctx, 5, &hard)
	require.NoError(t, err)
	require.Empty(t, empty)

	none, err := s.RandomWords(ctx, 0, nil)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestDecodeErrorOnBlankRequiredField(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx, `UPDATE words SET meaning = '' WHERE id = 1`)
	require.NoError(t, err)

	_, err = s.WordByID(ctx, 1)
	require.ErrorIs(t, err, model.ErrDecode)
	_, err = s.ListWords(ctx)
	require.ErrorIs(t, err, model.ErrDecode)
}

func TestResultsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	records := []model.ResultRecord{
		{SessionID: "s1", Category: model.CategoryHiragana, StartedAt: base, EndedAt: base.Add(time.Minute), Total: 10, Correct: 7, Score: 70},
		{SessionID: "s2", Category: model.CategoryWord, StartedAt: base.Add(time.Hour), EndedAt: base.Add(time.Hour + time.Minute), Total: 5, Correct: 5, Score: 100},
	}
	for _, rec := range records {
		_, err := s.InsertResult(ctx, rec)
		require.NoError(t, err)
	}

	all, err := s.ListResults(ctx, "", nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "s1", all[0].SessionID)
	require.True(t, all[0].EndedAt.Equal(base.Add(time.Minute)))

	words, err := s.ListResults(ctx, model.CategoryWord, nil)
	require.NoError(t, err)
	require.Len(t, words, 1)
	require.Equal(t, 100, words[0].Score)

	since := base.Add(30 * time.Minute)
	recent, err := s.ListResults(ctx, "", &since)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Equal(t, "s2", recent[0].SessionID)

	_, err = s.InsertResult(ctx, records[0])
	require.Error(t, err)
}

func TestResultTimestampsAreFixedWidth(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	whole := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, end := range []time.Time{whole.Add(500 * time.Millisecond), whole} {
		_, err := s.InsertResult(ctx, model.ResultRecord{
			SessionID: fmt.Sprintf("s%d", i), Category: model.CategoryHiragana,
			StartedAt: whole.Add(-time.Minute), EndedAt: end, Total: 1, Correct: 1, Score: 100,
		})
		require.NoError(t, err)
	}

	var stored []string
	rows, err := s.db.QueryContext(ctx, `SELECT ended_at FROM quiz_results ORDER BY ended_at`)
	require.NoError(t, err)
	for rows.Next() {
		var v string
		require.NoError(t, rows.Scan(&v))
		stored = append(stored, v)
	}
	require.NoError(t, rows.Err())
	require.NoError(t, rows.Close())
	require.Equal(t, []string{
		"2026-03-01T10:00:00.000000000Z",
		"2026-03-01T10:00:00.500000000Z",
	}, stored)

	got, err := s.ListResults(ctx, "", &whole)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "s1", got[0].SessionID)
}

func TestOpenMemory(t *testing.T) {
	s, err := Open(context.Background(), MemoryPath)
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close()) }()

	words, err := s.ListWords(context.Background())
	require.NoError(t, err)
	require.Len(t, words, seed.WordCount)
}

func TestMigrateStepsFromOlderVersion(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nihongo.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = s.db.ExecContext(ctx, `DROP TABLE quiz_results`)
	require.NoError(t, err)
	_, err = s.db.ExecContext(ctx, `PRAGMA user_version = 1`)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close()) }()
	version, err := s.SchemaVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, version)
	_, err = s.ListResults(ctx, "", nil)
	require.NoError(t, err)
}

func TestMigrateSkipsNewerSchema(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nihongo.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = s.db.ExecContext(ctx, `PRAGMA user_version = 99`)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close()) }()
	version, err := s.SchemaVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, 99, version)
}

func TestFailedMigrationRollsBack(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, MemoryPath)
	require.NoError(t, err)
	defer func() { require.NoError(t, s.Close()) }()

	broken := []Migration{{
		Version:     3,
		Description: "broken",
		Up: func(ctx context.Context, tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, `CREATE TABLE scratch (id INTEGER)`); err != nil {
				return err
			}
			return errors.New("boom")
		},
	}}
	require.Error(t, s.migrate(ctx, broken))

	version, err := s.SchemaVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, version)
	var count int
	require.NoError(t, s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE name = 'scratch'`).Scan(&count))
	require.Zero(t, count)
}
