// Package app is the terminal delivery vehicle: a single Bubble Tea model
// that drives one quiz session against the engine. All quiz logic stays
// in internal/quiz; this model only renders state and forwards input.
package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/veritas-labs/versewise/internal/catalog"
	"github.com/veritas-labs/versewise/internal/quiz"
	"github.com/veritas-labs/versewise/internal/ui/components"
	"github.com/veritas-labs/versewise/internal/ui/theme"
)

// Options wires the play screen.
type Options struct {
	Engine *quiz.Engine
	Start  quiz.Options

	// OnComplete persists the summary (store append + aggregate update).
	// May be nil.
	OnComplete func(*quiz.Summary) error
}

type phase int

const (
	phaseActive phase = iota
	phaseFeedback
	phaseSummary
)

// tickMsg drives the countdown display once per second. The engine owns
// the real timeout; the tick only refreshes the view and notices when a
// timeout already fired.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type model struct {
	opts Options

	sessionID string
	state     *quiz.SessionState
	choice    components.MultiChoice
	last      quiz.AnswerResult
	summary   *quiz.Summary
	phase     phase

	deadline time.Time
	err      error
}

// Run starts a session and blocks until the play screen exits.
func Run(opts Options) error {
	ctx := context.Background()
	state, err := opts.Engine.StartSession(ctx, opts.Start)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	m := model{
		opts:      opts,
		sessionID: state.SessionID,
		state:     state,
	}
	q, _ := state.CurrentQuestion()
	m.choice = components.NewMultiChoice(q)
	m.resetDeadline()

	_, err = tea.NewProgram(m).Run()
	return err
}

func (m *model) resetDeadline() {
	if m.state.TimePerQuestion > 0 {
		m.deadline = time.Now().Add(m.state.TimePerQuestion)
	}
}

func (m model) Init() tea.Cmd {
	return tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		// A timeout may have fired inside the engine; resync.
		if m.phase == phaseActive {
			state, err := m.opts.Engine.Session(m.sessionID)
			if err == nil && state.Status == quiz.StatusAnswered {
				if res, ok := state.Result(state.CurrentIndex); ok {
					m.state = state
					m.last = res
					m.choice = m.choice.Lock(res.AnswerIndex)
					m.phase = phaseFeedback
				}
			}
		}
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.phase == phaseSummary {
				return m, tea.Quit
			}
			return m.finish()
		case "enter":
			switch m.phase {
			case phaseActive:
				return m.submit()
			case phaseFeedback:
				return m.advance()
			case phaseSummary:
				return m, tea.Quit
			}
		}
	}

	if m.phase == phaseActive {
		m.choice = m.choice.Update(msg)
	}
	return m, nil
}

func (m model) submit() (tea.Model, tea.Cmd) {
	res, err := m.opts.Engine.SubmitAnswer(context.Background(), m.sessionID, m.choice.Selected)
	if err != nil {
		m.err = err
		return m, nil
	}
	state, err := m.opts.Engine.Session(m.sessionID)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.state = state
	m.last = res
	m.choice = m.choice.Lock(res.AnswerIndex)
	m.phase = phaseFeedback
	return m, nil
}

func (m model) advance() (tea.Model, tea.Cmd) {
	adv, err := m.opts.Engine.Advance(context.Background(), m.sessionID)
	if err != nil {
		m.err = err
		return m, nil
	}
	if adv.Status == quiz.StatusCompleted {
		return m.finish()
	}
	state, err := m.opts.Engine.Session(m.sessionID)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.state = state
	m.choice = components.NewMultiChoice(*adv.NextQuestion)
	m.phase = phaseActive
	m.resetDeadline()
	return m, nil
}

func (m model) finish() (tea.Model, tea.Cmd) {
	sum, err := m.opts.Engine.CompleteSession(context.Background(), m.sessionID)
	if err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.summary = sum
	m.phase = phaseSummary
	if m.opts.OnComplete != nil {
		if err := m.opts.OnComplete(sum); err != nil {
			m.err = err
		}
	}
	return m, nil
}

func (m model) View() tea.View {
	v := tea.NewView("")

	switch m.phase {
	case phaseSummary:
		v.SetContent(m.summaryView())
	default:
		v.SetContent(m.questionView())
	}
	return v
}

func (m model) questionView() string {
	s := theme.Title.Render("versewise") + "\n\n"
	s += theme.Hint.Render(fmt.Sprintf("question %d of %d  ·  score %d  ·  streak %d",
		m.state.CurrentIndex+1, len(m.state.Questions), m.state.Score, m.state.Streak)) + "\n\n"

	s += theme.Card.Render(m.choice.View()) + "\n"

	if m.phase == phaseActive && m.state.TimePerQuestion > 0 {
		remaining := time.Until(m.deadline)
		if remaining < 0 {
			remaining = 0
		}
		bar := components.ProgressBar{
			Label:   "time",
			Percent: float64(remaining) / float64(m.state.TimePerQuestion),
			Width:   30,
		}
		s += "\n" + bar.View() + "\n"
	}

	if m.phase == phaseFeedback {
		s += "\n" + m.feedbackView()
	} else {
		s += "\n" + theme.Hint.Render("↑/↓ select · enter answer · q quit")
	}
	if m.err != nil {
		s += "\n" + theme.Hint.Render(m.err.Error())
	}
	return s
}

func (m model) feedbackView() string {
	var s string
	switch {
	case m.last.AnswerIndex == quiz.AnswerNone:
		s = theme.Verse.Render("Time's up!") + "\n"
	case m.last.IsCorrect:
		s = theme.Title.Render(fmt.Sprintf("Correct! +%d", m.last.PointsAwarded)) + "\n"
	default:
		s = theme.Body.Render("Not quite.") + "\n"
	}
	q := m.state.Questions[m.last.QuestionIndex]
	if q.Explanation != "" {
		s += theme.Body.Render(q.Explanation) + "\n"
	}
	if q.Reference != "" {
		s += theme.Verse.Render(q.Reference) + "\n"
	}
	s += theme.Hint.Render("enter to continue")
	return s
}

func (m model) summaryView() string {
	sum := m.summary
	s := theme.Title.Render("session complete") + "\n\n"
	s += theme.Body.Render(fmt.Sprintf("score       %d", sum.FinalScore)) + "\n"
	s += theme.Body.Render(fmt.Sprintf("answered    %d/%d", sum.AnsweredCount, sum.TotalQuestions)) + "\n"
	s += theme.Body.Render(fmt.Sprintf("accuracy    %.0f%%", sum.Accuracy*100)) + "\n"
	s += theme.Body.Render(fmt.Sprintf("best streak %d", sum.BestStreak)) + "\n"
	s += theme.Body.Render(fmt.Sprintf("duration    %s", sum.Duration.Round(time.Second))) + "\n"
	if sum.Degraded {
		s += theme.Hint.Render("played from the offline question set") + "\n"
	}
	for cat, bs := range sum.ByCategory {
		s += theme.Hint.Render(fmt.Sprintf("  %-12s %d/%d", cat, bs.Correct, bs.Answered)) + "\n"
	}
	for _, d := range catalog.AllDifficulties() {
		if bs, ok := sum.ByDifficulty[d]; ok {
			s += theme.Hint.Render(fmt.Sprintf("  %-12s %d/%d", string(d), bs.Correct, bs.Answered)) + "\n"
		}
	}
	s += "\n" + theme.Hint.Render("enter or q to exit")
	return s
}
