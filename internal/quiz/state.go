package quiz

import (
	"time"

	"github.com/veritas-labs/versewise/internal/catalog"
	"github.com/veritas-labs/versewise/internal/scoring"
)

// AnswerNone is the sentinel answer index for a timeout: always wrong,
// zero points, same transition as a real answer.
const AnswerNone = -1

// Status is the session lifecycle state.
type Status int

const (
	// StatusIdle is the pre-creation state; a constructed session is
	// never observed here.
	StatusIdle Status = iota

	// StatusActive means the current question is awaiting an answer.
	StatusActive

	// StatusAnswered means the current question was answered and the
	// session is waiting for Advance.
	StatusAnswered

	// StatusCompleted is terminal.
	StatusCompleted
)

// String returns the lowercase status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusActive:
		return "active"
	case StatusAnswered:
		return "answered"
	case StatusCompleted:
		return "completed"
	}
	return "unknown"
}

// AnswerResult is the outcome of scoring one answer. Results are cached
// per question index so duplicate submissions replay the original outcome.
type AnswerResult struct {
	QuestionIndex int
	AnswerIndex   int
	CorrectIndex  int
	IsCorrect     bool
	PointsAwarded int
}

// SessionState is an immutable snapshot of one quiz run. Transitions are
// pure functions that return a new snapshot; the engine owns the current
// snapshot and swaps it under its own lock.
type SessionState struct {
	SessionID string
	UserID    string
	Mode      scoring.GameMode

	// Questions is fixed at creation; ids are pairwise unique.
	Questions []catalog.Question

	CurrentIndex int
	Score        int
	Streak       int
	BestStreak   int
	CorrectCount int
	WrongCount   int
	Status       Status

	// Degraded marks a session built from the embedded fallback set
	// because the catalog was unreachable.
	Degraded bool

	// TimePerQuestion is the per-question budget; zero means untimed.
	TimePerQuestion time.Duration

	StartTime time.Time

	// answered guards against double-scoring: one cached result per
	// answered question index.
	answered map[int]AnswerResult
}

// CurrentQuestion returns the question awaiting an answer, if any.
func (s SessionState) CurrentQuestion() (catalog.Question, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return catalog.Question{}, false
	}
	return s.Questions[s.CurrentIndex], true
}

// Result returns the cached answer result for a question index.
func (s SessionState) Result(index int) (AnswerResult, bool) {
	r, ok := s.answered[index]
	return r, ok
}

// Answered reports how many questions have been answered so far.
func (s SessionState) Answered() int {
	return len(s.answered)
}

func (s SessionState) cloneAnswered() map[int]AnswerResult {
	out := make(map[int]AnswerResult, len(s.answered)+1)
	for k, v := range s.answered {
		out[k] = v
	}
	return out
}

// applyAnswer scores answerIndex against the current question and returns
// the next snapshot. Duplicate submissions for an already-answered index
// return the prior result with no mutation. applied is false when the
// returned state is unchanged.
func applyAnswer(s SessionState, answerIndex int, timeRemainingRatio float64, streakBonus bool) (next SessionState, res AnswerResult, applied bool, err error) {
	switch s.Status {
	case StatusCompleted:
		return s, AnswerResult{}, false, ErrSessionNotFound
	case StatusAnswered:
		if cached, ok := s.answered[s.CurrentIndex]; ok {
			return s, cached, false, nil
		}
		return s, AnswerResult{}, false, ErrInvalidAnswer
	case StatusActive:
		// fall through
	default:
		return s, AnswerResult{}, false, ErrInvalidAnswer
	}

	q, ok := s.CurrentQuestion()
	if !ok {
		return s, AnswerResult{}, false, ErrInvalidAnswer
	}
	if answerIndex != AnswerNone && (answerIndex < 0 || answerIndex >= len(q.Options)) {
		return s, AnswerResult{}, false, ErrInvalidAnswer
	}

	isCorrect := answerIndex == q.CorrectIndex
	points := scoring.Points(q, isCorrect, timeRemainingRatio, s.Mode)

	next = s
	if isCorrect {
		next.Streak = s.Streak + 1
		next.CorrectCount = s.CorrectCount + 1
		if next.Streak > next.BestStreak {
			next.BestStreak = next.Streak
		}
		if streakBonus {
			points = int(float64(points) * scoring.StreakMultiplier(next.Streak))
		}
	} else {
		next.Streak = 0
		next.WrongCount = s.WrongCount + 1
	}
	next.Score = s.Score + points

	res = AnswerResult{
		QuestionIndex: s.CurrentIndex,
		AnswerIndex:   answerIndex,
		CorrectIndex:  q.CorrectIndex,
		IsCorrect:     isCorrect,
		PointsAwarded: points,
	}
	next.answered = s.cloneAnswered()
	next.answered[s.CurrentIndex] = res
	next.Status = StatusAnswered
	return next, res, true, nil
}

// applyAdvance moves past an answered question: back to Active with the
// next question, or Completed after the last one.
func applyAdvance(s SessionState) (SessionState, error) {
	switch s.Status {
	case StatusCompleted:
		return s, ErrSessionNotFound
	case StatusAnswered:
		// fall through
	default:
		return s, ErrInvalidAnswer
	}

	next := s
	next.CurrentIndex = s.CurrentIndex + 1
	if next.CurrentIndex >= len(next.Questions) {
		next.Status = StatusCompleted
	} else {
		next.Status = StatusActive
	}
	return next, nil
}

// forceComplete terminalizes a session regardless of progress (explicit
// quit). Completed sessions pass through unchanged.
func forceComplete(s SessionState) SessionState {
	if s.Status == StatusCompleted {
		return s
	}
	next := s
	next.Status = StatusCompleted
	return next
}
