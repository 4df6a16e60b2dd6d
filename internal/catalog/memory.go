package catalog

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/verte-zerg/nihongo/internal/model"
	"github.com/verte-zerg/nihongo/internal/seed"
)

// Memory serves the seed dataset from memory. Ids are assigned in insertion
// order, matching a freshly seeded database. Quiz results live only as long
// as the value.
type Memory struct {
	kana  []model.KanaEntry
	words []model.WordEntry

	mu      sync.Mutex
	rnd     *rand.Rand
	results []model.ResultRecord
}

// NewMemory loads the seed dataset. rnd drives RandomWords.
func NewMemory(rnd *rand.Rand) (*Memory, error) {
	ds, err := seed.Load()
	if err != nil {
		return nil, err
	}
	m := &Memory{
		kana:  make([]model.KanaEntry, len(ds.Kana)),
		words: make([]model.WordEntry, len(ds.Words)),
		rnd:   rnd,
	}
	for i, k := range ds.Kana {
		k.ID = int64(i + 1)
		m.kana[i] = k
	}
	for i, w := range ds.Words {
		w.ID = int64(i + 1)
		m.words[i] = w
	}
	return m, nil
}

// ListKana returns kana of one script, or all kana for an empty script.
func (m *Memory) ListKana(_ context.Context, script model.Script) ([]model.KanaEntry, error) {
	return filterKana(m.kana, func(k model.KanaEntry) bool {
		return script == "" || k.Script == script
	}), nil
}

// KanaByGroup returns the kana of one row group in insertion order.
func (m *Memory) KanaByGroup(_ context.Context, script model.Script, group string) ([]model.KanaEntry, error) {
	return filterKana(m.kana, func(k model.KanaEntry) bool {
		return k.Script == script && k.Group == group
	}), nil
}

// KanaByID returns nil when the id is unknown.
func (m *Memory) KanaByID(_ context.Context, id int64) (*model.KanaEntry, error) {
	for _, k := range m.kana {
		if k.ID == id {
			entry := k
			return &entry, nil
		}
	}
	return nil, nil
}

func (m *Memory) ListWords(_ context.Context) ([]model.WordEntry, error) {
	return filterWords(m.words, func(model.WordEntry) bool { return true }), nil
}

func (m *Memory) WordsByDifficulty(_ context.Context, difficulty int) ([]model.WordEntry, error) {
	return filterWords(m.words, func(w model.WordEntry) bool { return w.Difficulty == difficulty }), nil
}

func (m *Memory) WordsByJLPT(_ context.Context, level model.JLPTLevel) ([]model.WordEntry, error) {
	return filterWords(m.words, func(w model.WordEntry) bool { return w.JLPT == level }), nil
}

// WordByID returns nil when the id is unknown.
func (m *Memory) WordByID(_ context.Context, id int64) (*model.WordEntry, error) {
	for _, w := range m.words {
		if w.ID == id {
			entry := w
			return &entry, nil
		}
	}
	return nil, nil
}

// SearchWords matches query as a substring of surface, reading, romaji or
// meaning. Romaji is compared in lower case.
func (m *Memory) SearchWords(_ context.Context, query string) ([]model.WordEntry, error) {
	lowered := strings.ToLower(query)
	result := filterWords(m.words, func(w model.WordEntry) bool {
		return strings.Contains(w.Word, query) ||
			strings.Contains(w.Reading, query) ||
			strings.Contains(strings.ToLower(w.Romaji), lowered) ||
			strings.Contains(w.Meaning, query)
	})
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Difficulty != result[j].Difficulty {
			return result[i].Difficulty < result[j].Difficulty
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// RandomWords samples up to count distinct words.
func (m *Memory) RandomWords(_ context.Context, count int, difficulty *int) ([]model.WordEntry, error) {
	if count <= 0 {
		return nil, nil
	}
	pool := filterWords(m.words, func(w model.WordEntry) bool {
		return difficulty == nil || w.Difficulty == *difficulty
	})
	m.mu.Lock()
	m.rnd.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	m.mu.Unlock()
	if count < len(pool) {
		pool = pool[:count]
	}
	return pool, nil
}

// InsertResult records a quiz result. Session ids must be unique.
func (m *Memory) InsertResult(_ context.Context, rec model.ResultRecord) (int64, error) {
	if rec.SessionID == "" {
		return 0, fmt.Errorf("insert result: empty session id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.results {
		if existing.SessionID == rec.SessionID {
			return 0, fmt.Errorf("insert result: duplicate session id %q", rec.SessionID)
		}
	}
	rec.ID = int64(len(m.results) + 1)
	m.results = append(m.results, rec)
	return rec.ID, nil
}

// ListResults returns results oldest first, filtered like the SQLite store.
func (m *Memory) ListResults(_ context.Context, category model.Category, since *time.Time) ([]model.ResultRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []model.ResultRecord
	for _, rec := range m.results {
		if category != "" && rec.Category != category {
			continue
		}
		if since != nil && rec.EndedAt.Before(*since) {
			continue
		}
		result = append(result, rec)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].EndedAt.Before(result[j].EndedAt)
	})
	return result, nil
}

// Close is a no-op.
func (m *Memory) Close() error {
	return nil
}

func filterKana(src []model.KanaEntry, keep func(model.KanaEntry) bool) []model.KanaEntry {
	var out []model.KanaEntry
	for _, k := range src {
		if keep(k) {
			out = append(out, k)
		}
	}
	return out
}

func filterWords(src []model.WordEntry, keep func(model.WordEntry) bool) []model.WordEntry {
	var out []model.WordEntry
	for _, w := range src {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}
