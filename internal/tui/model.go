// Package tui provides the Bubble Tea quiz interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/nihongo/internal/model"
	"github.com/verte-zerg/nihongo/internal/quiz"
)

// ResultStore persists finished quizzes and reads earlier ones for the footer.
type ResultStore interface {
	InsertResult(ctx context.Context, rec model.ResultRecord) (int64, error)
	ListResults(ctx context.Context, category model.Category, since *time.Time) ([]model.ResultRecord, error)
}

// Generate produces a fresh question list for a restart.
type Generate func() []model.QuizQuestion

type phase int

const (
	phaseAsk phase = iota
	phaseFeedback
	phaseResult
)

// Model implements the Bubble Tea quiz UI.
type Model struct {
	store    ResultStore
	category model.Category
	generate Generate

	session *quiz.Session
	phase   phase
	cursor  int

	asked       model.QuizQuestion
	chosen      string
	lastCorrect bool
	saved       bool

	bar    progress.Model
	width  int
	height int

	hasLast   bool
	lastScore int
	allScore  float64
	allCount  int
}

var (
	promptStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0")).Padding(0, 2)
	optionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	boxStyle       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#6E6E6E")).Padding(1, 3)
)

// NewModel constructs a quiz TUI over questions. generate may be nil, which
// disables restarting from the result screen.
func NewModel(store ResultStore, category model.Category, questions []model.QuizQuestion, generate Generate) *Model {
	m := &Model{
		store:    store,
		category: category,
		generate: generate,
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	m.startSession(questions)
	m.loadFooterStats()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = max(10, min(60, msg.Width/2))
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		}
		switch m.phase {
		case phaseAsk:
			return m, m.handleAsk(msg)
		case phaseFeedback:
			m.advance()
			return m, nil
		case phaseResult:
			return m, m.handleResult(msg)
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.phase {
	case phaseResult:
		content = m.renderResult()
	case phaseFeedback:
		content = m.renderQuestion(m.asked, true)
	default:
		q, _ := m.session.Current()
		content = m.renderQuestion(q, false)
	}
	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) handleAsk(msg tea.KeyMsg) tea.Cmd {
	q, ok := m.session.Current()
	if !ok {
		m.phase = phaseResult
		return nil
	}
	switch msg.Type {
	case tea.KeyUp:
		m.cursor = (m.cursor + len(q.Options) - 1) % len(q.Options)
	case tea.KeyDown, tea.KeyTab:
		m.cursor = (m.cursor + 1) % len(q.Options)
	case tea.KeyEnter, tea.KeySpace:
		m.choose(q, m.cursor)
	case tea.KeyRunes:
		key := string(msg.Runes)
		switch key {
		case "q":
			return tea.Quit
		case "k":
			m.cursor = (m.cursor + len(q.Options) - 1) % len(q.Options)
		case "j":
			m.cursor = (m.cursor + 1) % len(q.Options)
		default:
			if len(key) == 1 && key[0] >= '1' && int(key[0]-'1') < len(q.Options) {
				m.choose(q, int(key[0]-'1'))
			}
		}
	}
	return nil
}

func (m *Model) handleResult(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyEnter {
		return tea.Quit
	}
	if msg.Type != tea.KeyRunes {
		return nil
	}
	switch string(msg.Runes) {
	case "q":
		return tea.Quit
	case "r":
		if m.generate != nil {
			m.startSession(m.generate())
		}
	}
	return nil
}

func (m *Model) choose(q model.QuizQuestion, idx int) {
	m.chosen = q.Options[idx]
	ok, _, err := m.session.Answer(m.chosen)
	if err != nil {
		m.phase = phaseResult
		return
	}
	m.asked = q
	m.lastCorrect = ok
	m.phase = phaseFeedback
	if m.session.Done() {
		m.finishSession()
	}
}

func (m *Model) advance() {
	m.cursor = 0
	if m.session.Done() {
		m.phase = phaseResult
		return
	}
	m.phase = phaseAsk
}

func (m *Model) startSession(questions []model.QuizQuestion) {
	m.session = quiz.NewSession(m.category, questions)
	m.cursor = 0
	m.saved = false
	m.phase = phaseAsk
	if m.session.Done() {
		m.phase = phaseResult
	}
}

func (m *Model) finishSession() {
	if m.saved || m.session.Len() == 0 {
		return
	}
	m.saved = true
	rec := m.session.Record()
	if _, err := m.store.InsertResult(context.Background(), rec); err != nil {
		logErrf("failed to save quiz result: %v\n", err)
	}
	m.lastScore = rec.Score
	m.hasLast = true
	m.allScore = (m.allScore*float64(m.allCount) + float64(rec.Score)) / float64(m.allCount+1)
	m.allCount++
}

func (m *Model) loadFooterStats() {
	results, err := m.store.ListResults(context.Background(), m.category, nil)
	if err != nil {
		logErrf("failed to load quiz history: %v\n", err)
		return
	}
	if len(results) == 0 {
		return
	}
	m.lastScore = results[len(results)-1].Score
	m.hasLast = true
	sum := 0
	for _, r := range results {
		sum += r.Score
	}
	m.allCount = len(results)
	m.allScore = float64(sum) / float64(len(results))
}

func (m *Model) renderQuestion(q model.QuizQuestion, reveal bool) string {
	var b strings.Builder
	b.WriteString(promptStyle.Render(q.Prompt))
	b.WriteString("\n\n")
	for i, opt := range q.Options {
		line := fmt.Sprintf("%d. %s", i+1, opt)
		style := optionStyle
		switch {
		case reveal && opt == q.CorrectAnswer:
			style = correctStyle
		case reveal && opt == m.chosen:
			style = incorrectStyle
		case !reveal && i == m.cursor:
			style = selectedStyle
			line = "> " + line
		}
		if !strings.HasPrefix(line, "> ") {
			line = "  " + line
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	if reveal {
		b.WriteString("\n")
		if m.lastCorrect {
			b.WriteString(correctStyle.Render("Correct!"))
		} else {
			b.WriteString(incorrectStyle.Render("Answer: " + q.CorrectAnswer))
		}
		b.WriteString("\n")
		b.WriteString(footerStyle.Render("press any key"))
	}
	return boxStyle.Render(b.String())
}

func (m *Model) renderResult() string {
	res := m.session.Result()
	if res.Total == 0 {
		return boxStyle.Render("No questions available for " + string(m.category) + ".\n\nq quit")
	}
	lines := []string{
		promptStyle.Render(fmt.Sprintf("Score %d%%", res.Score)),
		"",
		fmt.Sprintf("Correct  %d", res.Correct),
		fmt.Sprintf("Wrong    %d", res.Wrong),
		fmt.Sprintf("Time     %s", res.Duration.Round(time.Second)),
		"",
		m.bar.ViewAs(float64(res.Score) / 100),
		"",
	}
	hint := "enter/q quit"
	if m.generate != nil {
		hint = "r retry  " + hint
	}
	lines = append(lines, footerStyle.Render(hint))
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFooter() string {
	total := m.session.Len()
	answered := m.session.Index()
	pct := 0.0
	if total > 0 {
		pct = float64(answered) / float64(total)
	}
	segments := []string{
		m.bar.ViewAs(pct),
		fmt.Sprintf("%d/%d", answered, total),
		fmt.Sprintf("Correct %d", m.session.Correct()),
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %d%%", m.lastScore))
		segments = append(segments, fmt.Sprintf("All-time %.1f%% (%d)", m.allScore, m.allCount))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
