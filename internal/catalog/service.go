package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/verte-zerg/nihongo/internal/model"
)

// Service answers catalog queries for the client. Provider errors are logged
// and turned into empty results.
type Service struct {
	provider Provider
	logger   *slog.Logger
}

// NewService wraps provider. A nil logger uses slog.Default.
func NewService(provider Provider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{provider: provider, logger: logger}
}

// Provider exposes the wrapped provider.
func (s *Service) Provider() Provider {
	return s.provider
}

// Kana lists kana of a script; an empty script lists all.
func (s *Service) Kana(ctx context.Context, script model.Script) []model.KanaEntry {
	items, err := s.provider.ListKana(ctx, script)
	if err != nil {
		s.fail("list kana", err, slog.String("script", string(script)))
		return nil
	}
	return items
}

func (s *Service) KanaByGroup(ctx context.Context, script model.Script, group string) []model.KanaEntry {
	items, err := s.provider.KanaByGroup(ctx, script, group)
	if err != nil {
		s.fail("kana by group", err, slog.String("script", string(script)), slog.String("group", group))
		return nil
	}
	return items
}

// KanaByID returns nil for unknown ids and on error.
func (s *Service) KanaByID(ctx context.Context, id int64) *model.KanaEntry {
	item, err := s.provider.KanaByID(ctx, id)
	if err != nil {
		s.fail("kana by id", err, slog.Int64("id", id))
		return nil
	}
	return item
}

func (s *Service) Words(ctx context.Context) []model.WordEntry {
	items, err := s.provider.ListWords(ctx)
	if err != nil {
		s.fail("list words", err)
		return nil
	}
	return items
}

func (s *Service) WordsByDifficulty(ctx context.Context, difficulty int) []model.WordEntry {
	items, err := s.provider.WordsByDifficulty(ctx, difficulty)
	if err != nil {
		s.fail("words by difficulty", err, slog.Int("difficulty", difficulty))
		return nil
	}
	return items
}

func (s *Service) WordsByJLPT(ctx context.Context, level model.JLPTLevel) []model.WordEntry {
	items, err := s.provider.WordsByJLPT(ctx, level)
	if err != nil {
		s.fail("words by jlpt", err, slog.String("level", string(level)))
		return nil
	}
	return items
}

// WordByID returns nil for unknown ids and on error.
func (s *Service) WordByID(ctx context.Context, id int64) *model.WordEntry {
	item, err := s.provider.WordByID(ctx, id)
	if err != nil {
		s.fail("word by id", err, slog.Int64("id", id))
		return nil
	}
	return item
}

func (s *Service) Search(ctx context.Context, query string) []model.WordEntry {
	items, err := s.provider.SearchWords(ctx, query)
	if err != nil {
		s.fail("search words", err, slog.String("query", query))
		return nil
	}
	return items
}

func (s *Service) RandomWords(ctx context.Context, count int, difficulty *int) []model.WordEntry {
	items, err := s.provider.RandomWords(ctx, count, difficulty)
	if err != nil {
		s.fail("random words", err, slog.Int("count", count))
		return nil
	}
	return items
}

// Results lists stored quiz results, oldest first.
func (s *Service) Results(ctx context.Context, category model.Category, since *time.Time) []model.ResultRecord {
	items, err := s.provider.ListResults(ctx, category, since)
	if err != nil {
		s.fail("list results", err, slog.String("category", string(category)))
		return nil
	}
	return items
}

func (s *Service) fail(op string, err error, attrs ...slog.Attr) {
	args := make([]any, 0, len(attrs)+2)
	args = append(args, slog.String("op", op), slog.Any("error", err))
	for _, a := range attrs {
		args = append(args, a)
	}
	s.logger.Error("catalog query failed", args...)
}
