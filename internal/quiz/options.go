package quiz

import (
	"fmt"
	"time"

	"github.com/veritas-labs/versewise/internal/catalog"
	"github.com/veritas-labs/versewise/internal/scoring"
	"github.com/veritas-labs/versewise/internal/selector"
)

// Default question counts per mode. Endless is nominally 50; intra-session
// dedup still applies, so a small catalog caps the session shorter.
const (
	DefaultQuestionCount = 10
	EndlessQuestionCount = 50

	// DefaultTimePerQuestion applies to timed mode when the caller
	// doesn't override it.
	DefaultTimePerQuestion = 30 * time.Second
)

// Options configures a session start.
type Options struct {
	UserID string
	Mode   scoring.GameMode

	// Optional catalog filters.
	Difficulty catalog.Difficulty
	Category   string
	Testament  catalog.Testament

	// QuestionCount overrides the mode default. Ignored in level mode,
	// where the level definition decides.
	QuestionCount int

	// TimePerQuestion overrides the timed-mode default. Ignored in level
	// mode, where the level definition decides.
	TimePerQuestion time.Duration

	// Focus restricts learning-mode candidates.
	Focus selector.FocusAreas

	// BestScore is the user's cumulative best score, read from the
	// external stats store by the caller. Level mode derives the level
	// from it.
	BestScore int
}

func (o Options) validate() error {
	if o.UserID == "" {
		return fmt.Errorf("start session: user id is required")
	}
	switch o.Mode {
	case scoring.ModeTimed, scoring.ModeEndless, scoring.ModeCategory,
		scoring.ModeMixed, scoring.ModeLevel, scoring.ModeLearning:
		return nil
	}
	return fmt.Errorf("start session: unknown game mode %q", o.Mode)
}

func (o Options) questionCount() int {
	if o.QuestionCount > 0 {
		return o.QuestionCount
	}
	if o.Mode == scoring.ModeEndless {
		return EndlessQuestionCount
	}
	return DefaultQuestionCount
}

func (o Options) filter() catalog.Filter {
	return catalog.Filter{
		Category:   o.Category,
		Difficulty: o.Difficulty,
		Testament:  o.Testament,
	}
}
