// Package quiz builds multiple-choice quizzes from the catalog and scores them.
package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/verte-zerg/nihongo/internal/catalog"
	"github.com/verte-zerg/nihongo/internal/model"
)

// MaxOptions is the number of choices per question, correct answer included.
const MaxOptions = 4

// Generator draws questions from a catalog provider.
type Generator struct {
	provider catalog.Provider
	rnd      *rand.Rand
	logger   *slog.Logger
}

// New returns a Generator using rnd for every random choice.
func New(provider catalog.Provider, rnd *rand.Rand) *Generator {
	return &Generator{provider: provider, rnd: rnd, logger: slog.Default()}
}

// NewDefault returns a Generator seeded with the current time.
func NewDefault(provider catalog.Provider) *Generator {
	return New(provider, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// WithLogger sets the logger used for provider failures.
func (g *Generator) WithLogger(logger *slog.Logger) *Generator {
	if logger != nil {
		g.logger = logger
	}
	return g
}

// GenerateKanaQuiz asks for the romaji of count distinct kana of one script.
func (g *Generator) GenerateKanaQuiz(ctx context.Context, script model.Script, count int) []model.QuizQuestion {
	if count <= 0 {
		return nil
	}
	all, err := g.provider.ListKana(ctx, script)
	if err != nil {
		g.logger.Error("kana quiz pool", slog.String("script", string(script)), slog.Any("error", err))
		return nil
	}
	if len(all) == 0 {
		return nil
	}
	answers := make([]string, len(all))
	prompts := make([]string, len(all))
	for i, k := range all {
		prompts[i] = k.Character
		answers[i] = k.Romaji
	}
	return g.build(model.QuestionKana, prompts, answers, answers, count)
}

// GenerateWordQuiz asks for the meaning of count distinct words, optionally
// restricted to one difficulty. Distractors come from the whole vocabulary.
func (g *Generator) GenerateWordQuiz(ctx context.Context, count int, difficulty *int) []model.QuizQuestion {
	if count <= 0 {
		return nil
	}
	all, err := g.provider.ListWords(ctx)
	if err != nil {
		g.logger.Error("word quiz pool", slog.Any("error", err))
		return nil
	}
	var prompts, answers []string
	catalogAnswers := make([]string, 0, len(all))
	for _, w := range all {
		catalogAnswers = append(catalogAnswers, w.Meaning)
		if difficulty != nil && w.Difficulty != *difficulty {
			continue
		}
		prompts = append(prompts, w.Word)
		answers = append(answers, w.Meaning)
	}
	if len(prompts) == 0 {
		return nil
	}
	return g.build(model.QuestionWord, prompts, answers, catalogAnswers, count)
}

// build samples count pool entries without replacement. prompts and answers
// are parallel; distractors are drawn from catalogAnswers.
func (g *Generator) build(kind model.QuestionKind, prompts, answers, catalogAnswers []string, count int) []model.QuizQuestion {
	order := g.rnd.Perm(len(prompts))
	if count < len(order) {
		order = order[:count]
	}
	questions := make([]model.QuizQuestion, 0, len(order))
	for i, idx := range order {
		correct := answers[idx]
		options := append([]string{correct}, g.distractors(correct, catalogAnswers, MaxOptions-1)...)
		g.rnd.Shuffle(len(options), func(a, b int) { options[a], options[b] = options[b], options[a] })
		questions = append(questions, model.QuizQuestion{
			ID:            fmt.Sprintf("q%d", i),
			Kind:          kind,
			Prompt:        prompts[idx],
			CorrectAnswer: correct,
			Options:       options,
		})
	}
	return questions
}

// distractors returns up to n distinct wrong answers in random order.
func (g *Generator) distractors(correct string, candidates []string, n int) []string {
	pool := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c != correct {
			pool = append(pool, c)
		}
	}
	g.rnd.Shuffle(len(pool), func(a, b int) { pool[a], pool[b] = pool[b], pool[a] })

	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	for _, c := range pool {
		if len(out) == n {
			break
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
