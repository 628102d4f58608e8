package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/veritas-labs/versewise/internal/catalog"
	"github.com/veritas-labs/versewise/internal/ui/theme"
)

// MultiChoice renders one quiz question with A-D options. Once locked it
// shows the correct option in green and a wrong pick in red.
type MultiChoice struct {
	Question catalog.Question
	Selected int

	// Locked freezes navigation after an answer (or timeout).
	Locked bool

	// ChosenIndex is the submitted answer; -1 for a timeout.
	ChosenIndex int
}

// NewMultiChoice creates the component for a question.
func NewMultiChoice(q catalog.Question) MultiChoice {
	return MultiChoice{Question: q, ChosenIndex: -1}
}

// Update handles keyboard navigation; selection is read by the caller on
// enter, this component never scores anything itself.
func (m MultiChoice) Update(msg tea.Msg) MultiChoice {
	if m.Locked {
		return m
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m
	}
	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Question.Options)-1 {
			m.Selected++
		}
	}
	return m
}

// Lock freezes the component showing the outcome for chosenIndex.
func (m MultiChoice) Lock(chosenIndex int) MultiChoice {
	m.Locked = true
	m.ChosenIndex = chosenIndex
	return m
}

// View renders the question and options.
func (m MultiChoice) View() string {
	s := theme.Body.Bold(true).Render(m.Question.Text) + "\n\n"

	labels := []string{"A", "B", "C", "D"}
	for i, opt := range m.Question.Options {
		prefix := "  "
		if i == m.Selected && !m.Locked {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, labels[i], opt)

		switch {
		case m.Locked && i == m.Question.CorrectIndex:
			s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
		case m.Locked && i == m.ChosenIndex:
			s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line) + "\n"
		case m.Locked:
			s += theme.Hint.Render(line) + "\n"
		case i == m.Selected:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			s += theme.Body.Render(line) + "\n"
		}
	}
	return s
}
