// Package catalog selects the kana and word catalog backend and wraps it in a
// query service that never fails outward.
package catalog

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/verte-zerg/nihongo/internal/config"
	"github.com/verte-zerg/nihongo/internal/model"
	"github.com/verte-zerg/nihongo/internal/store"
)

// Provider is the catalog and result storage contract. *store.Store and
// *Memory implement it.
type Provider interface {
	ListKana(ctx context.Context, script model.Script) ([]model.KanaEntry, error)
	KanaByGroup(ctx context.Context, script model.Script, group string) ([]model.KanaEntry, error)
	KanaByID(ctx context.Context, id int64) (*model.KanaEntry, error)
	ListWords(ctx context.Context) ([]model.WordEntry, error)
	WordsByDifficulty(ctx context.Context, difficulty int) ([]model.WordEntry, error)
	WordsByJLPT(ctx context.Context, level model.JLPTLevel) ([]model.WordEntry, error)
	WordByID(ctx context.Context, id int64) (*model.WordEntry, error)
	SearchWords(ctx context.Context, query string) ([]model.WordEntry, error)
	RandomWords(ctx context.Context, count int, difficulty *int) ([]model.WordEntry, error)
	InsertResult(ctx context.Context, rec model.ResultRecord) (int64, error)
	ListResults(ctx context.Context, category model.Category, since *time.Time) ([]model.ResultRecord, error)
	Close() error
}

var (
	_ Provider = (*store.Store)(nil)
	_ Provider = (*Memory)(nil)
)

// Open builds the provider named by cfg.Backend.
func Open(ctx context.Context, cfg config.Storage) (Provider, error) {
	switch cfg.Backend {
	case config.BackendSQLite, "":
		s, err := store.Open(ctx, cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open catalog: %w", err)
		}
		return s, nil
	case config.BackendMemory:
		m, err := NewMemory(rand.New(rand.NewSource(time.Now().UnixNano())))
		if err != nil {
			return nil, fmt.Errorf("open catalog: %w", err)
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: unknown storage backend %q", config.ErrInvalidConfig, cfg.Backend)
}
