package quiz

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/nihongo/internal/model"
)

// ErrFinished is returned when answering past the last question.
var ErrFinished = errors.New("quiz finished")

// Session walks through a question list and counts correct answers.
type Session struct {
	id        string
	category  model.Category
	questions []model.QuizQuestion
	index     int
	correct   int
	startedAt time.Time
	endedAt   time.Time
	now       func() time.Time
}

// NewSession starts a session over questions.
func NewSession(category model.Category, questions []model.QuizQuestion) *Session {
	return newSessionAt(category, questions, time.Now)
}

func newSessionAt(category model.Category, questions []model.QuizQuestion, now func() time.Time) *Session {
	s := &Session{
		id:        uuid.NewString(),
		category:  category,
		questions: questions,
		now:       now,
	}
	s.startedAt = now()
	if len(questions) == 0 {
		s.endedAt = s.startedAt
	}
	return s
}

// ID is the session's unique id.
func (s *Session) ID() string { return s.id }

// Category is the pool the questions were drawn from.
func (s *Session) Category() model.Category { return s.category }

// Len is the number of questions.
func (s *Session) Len() int { return len(s.questions) }

// Index is the zero-based position of the current question.
func (s *Session) Index() int { return s.index }

// Correct is the running number of correct answers.
func (s *Session) Correct() int { return s.correct }

// Done reports whether every question has been answered.
func (s *Session) Done() bool { return s.index >= len(s.questions) }

// Current returns the unanswered question, or false when done.
func (s *Session) Current() (model.QuizQuestion, bool) {
	if s.Done() {
		return model.QuizQuestion{}, false
	}
	return s.questions[s.index], true
}

// Answer checks option against the current question by exact match and
// advances. It returns the correct answer for feedback.
func (s *Session) Answer(option string) (bool, string, error) {
	q, ok := s.Current()
	if !ok {
		return false, "", ErrFinished
	}
	ok = option == q.CorrectAnswer
	if ok {
		s.correct++
	}
	s.index++
	if s.Done() {
		s.endedAt = s.now()
	}
	return ok, q.CorrectAnswer, nil
}

// Result summarizes the answers so far. Unanswered questions count as wrong.
func (s *Session) Result() model.QuizResult {
	end := s.endedAt
	if end.IsZero() {
		end = s.now()
	}
	total := len(s.questions)
	return model.QuizResult{
		Total:    total,
		Correct:  s.correct,
		Wrong:    total - s.correct,
		Score:    Score(s.correct, total),
		Duration: end.Sub(s.startedAt),
	}
}

// Record converts the session into a persistable result.
func (s *Session) Record() model.ResultRecord {
	res := s.Result()
	return model.ResultRecord{
		SessionID: s.id,
		Category:  s.category,
		StartedAt: s.startedAt,
		EndedAt:   s.startedAt.Add(res.Duration),
		Total:     res.Total,
		Correct:   res.Correct,
		Score:     res.Score,
	}
}

// Score is the rounded percentage of correct answers; 0 when total is 0.
func Score(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
