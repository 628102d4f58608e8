package quiz

import (
	"errors"
	"testing"
	"time"

	"github.com/veritas-labs/versewise/internal/catalog"
	"github.com/veritas-labs/versewise/internal/scoring"
)

func testQuestions(n int) []catalog.Question {
	out := make([]catalog.Question, 0, n)
	diffs := catalog.AllDifficulties()
	for i := 0; i < n; i++ {
		out = append(out, catalog.Question{
			ID:           string(rune('a'+i)) + "-question",
			Text:         "which option is right?",
			Options:      []string{"first", "second", "third", "fourth"},
			CorrectIndex: i % 4,
			Category:     "gospels",
			Difficulty:   diffs[i%len(diffs)],
			Testament:    catalog.TestamentNew,
		})
	}
	return out
}

func activeState(n int, mode scoring.GameMode) SessionState {
	return SessionState{
		SessionID: "s-1",
		UserID:    "u-1",
		Mode:      mode,
		Questions: testQuestions(n),
		Status:    StatusActive,
		StartTime: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		answered:  map[int]AnswerResult{},
	}
}

func TestApplyAnswer_CorrectScoresBase(t *testing.T) {
	s := activeState(3, scoring.ModeEndless)
	q, _ := s.CurrentQuestion()

	next, res, applied, err := applyAnswer(s, q.CorrectIndex, 0, false)
	if err != nil {
		t.Fatalf("applyAnswer: %v", err)
	}
	if !applied {
		t.Fatal("applied = false, want true")
	}
	if !res.IsCorrect {
		t.Error("IsCorrect = false, want true")
	}
	if want := scoring.BaseValue(q.Difficulty); res.PointsAwarded != want {
		t.Errorf("PointsAwarded = %d, want %d", res.PointsAwarded, want)
	}
	if next.Score != res.PointsAwarded {
		t.Errorf("Score = %d, want %d", next.Score, res.PointsAwarded)
	}
	if next.Status != StatusAnswered {
		t.Errorf("Status = %v, want %v", next.Status, StatusAnswered)
	}
	if next.Streak != 1 || next.CorrectCount != 1 {
		t.Errorf("Streak/CorrectCount = %d/%d, want 1/1", next.Streak, next.CorrectCount)
	}
}

func TestApplyAnswer_WrongScoresZeroAndResetsStreak(t *testing.T) {
	s := activeState(3, scoring.ModeEndless)
	s.Streak = 4
	s.BestStreak = 4
	q, _ := s.CurrentQuestion()
	wrong := (q.CorrectIndex + 1) % len(q.Options)

	next, res, _, err := applyAnswer(s, wrong, 0, false)
	if err != nil {
		t.Fatalf("applyAnswer: %v", err)
	}
	if res.IsCorrect {
		t.Error("IsCorrect = true, want false")
	}
	if res.PointsAwarded != 0 {
		t.Errorf("PointsAwarded = %d, want 0", res.PointsAwarded)
	}
	if next.Streak != 0 {
		t.Errorf("Streak = %d, want 0", next.Streak)
	}
	if next.BestStreak != 4 {
		t.Errorf("BestStreak = %d, want 4 (preserved)", next.BestStreak)
	}
	if next.WrongCount != 1 {
		t.Errorf("WrongCount = %d, want 1", next.WrongCount)
	}
}

func TestApplyAnswer_InvalidIndexRejectedWithoutMutation(t *testing.T) {
	s := activeState(3, scoring.ModeEndless)

	for _, idx := range []int{-5, 4, 99} {
		next, _, applied, err := applyAnswer(s, idx, 0, false)
		if !errors.Is(err, ErrInvalidAnswer) {
			t.Fatalf("applyAnswer(%d) err = %v, want ErrInvalidAnswer", idx, err)
		}
		if applied {
			t.Errorf("applyAnswer(%d) applied = true, want false", idx)
		}
		if next.Status != StatusActive || next.Score != 0 || next.Answered() != 0 {
			t.Errorf("applyAnswer(%d) mutated state: status=%v score=%d answered=%d",
				idx, next.Status, next.Score, next.Answered())
		}
	}
}

func TestApplyAnswer_TimeoutSentinel(t *testing.T) {
	s := activeState(3, scoring.ModeTimed)
	s.Streak = 2

	next, res, applied, err := applyAnswer(s, AnswerNone, 0, false)
	if err != nil {
		t.Fatalf("applyAnswer(AnswerNone): %v", err)
	}
	if !applied {
		t.Fatal("applied = false, want true")
	}
	if res.IsCorrect || res.PointsAwarded != 0 {
		t.Errorf("timeout scored correct=%v points=%d, want wrong for 0",
			res.IsCorrect, res.PointsAwarded)
	}
	if res.AnswerIndex != AnswerNone {
		t.Errorf("AnswerIndex = %d, want %d", res.AnswerIndex, AnswerNone)
	}
	if next.Streak != 0 || next.WrongCount != 1 {
		t.Errorf("Streak/WrongCount = %d/%d, want 0/1", next.Streak, next.WrongCount)
	}
	if next.Status != StatusAnswered {
		t.Errorf("Status = %v, want %v", next.Status, StatusAnswered)
	}
}

func TestApplyAnswer_DuplicateReturnsCachedResult(t *testing.T) {
	s := activeState(3, scoring.ModeEndless)
	q, _ := s.CurrentQuestion()

	first, res1, _, err := applyAnswer(s, q.CorrectIndex, 0, false)
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}

	second, res2, applied, err := applyAnswer(first, q.CorrectIndex, 0, false)
	if err != nil {
		t.Fatalf("duplicate submit: %v", err)
	}
	if applied {
		t.Error("duplicate submit applied = true, want false")
	}
	if res2 != res1 {
		t.Errorf("duplicate result = %+v, want cached %+v", res2, res1)
	}
	if second.Score != first.Score {
		t.Errorf("duplicate changed score: %d -> %d", first.Score, second.Score)
	}
	if second.Answered() != 1 {
		t.Errorf("Answered = %d, want 1", second.Answered())
	}
}

func TestApplyAnswer_CompletedSessionIsGone(t *testing.T) {
	s := forceComplete(activeState(3, scoring.ModeEndless))
	_, _, _, err := applyAnswer(s, 0, 0, false)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestApplyAnswer_TimeBonusInTimerDrivenModes(t *testing.T) {
	s := activeState(3, scoring.ModeTimed)
	q, _ := s.CurrentQuestion()

	_, res, _, err := applyAnswer(s, q.CorrectIndex, 1.0, false)
	if err != nil {
		t.Fatalf("applyAnswer: %v", err)
	}
	want := scoring.BaseValue(q.Difficulty) + scoring.BonusCap
	if res.PointsAwarded != want {
		t.Errorf("PointsAwarded = %d, want %d (full time bonus)", res.PointsAwarded, want)
	}
}

func TestApplyAnswer_StreakBonusMultiplier(t *testing.T) {
	s := activeState(3, scoring.ModeEndless)
	s.Streak = 4 // this answer makes it 5
	q, _ := s.CurrentQuestion()

	_, res, _, err := applyAnswer(s, q.CorrectIndex, 0, true)
	if err != nil {
		t.Fatalf("applyAnswer: %v", err)
	}
	want := int(float64(scoring.BaseValue(q.Difficulty)) * 1.25)
	if res.PointsAwarded != want {
		t.Errorf("PointsAwarded = %d, want %d with streak multiplier", res.PointsAwarded, want)
	}
}

func TestApplyAdvance_StepsThroughAndCompletes(t *testing.T) {
	s := activeState(2, scoring.ModeEndless)

	// Advancing an unanswered question is a caller error.
	if _, err := applyAdvance(s); !errors.Is(err, ErrInvalidAnswer) {
		t.Fatalf("advance on active err = %v, want ErrInvalidAnswer", err)
	}

	q, _ := s.CurrentQuestion()
	s, _, _, _ = applyAnswer(s, q.CorrectIndex, 0, false)

	s, err := applyAdvance(s)
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if s.Status != StatusActive || s.CurrentIndex != 1 {
		t.Fatalf("status/index = %v/%d, want active/1", s.Status, s.CurrentIndex)
	}

	q, _ = s.CurrentQuestion()
	s, _, _, _ = applyAnswer(s, q.CorrectIndex, 0, false)
	s, err = applyAdvance(s)
	if err != nil {
		t.Fatalf("final advance: %v", err)
	}
	if s.Status != StatusCompleted {
		t.Fatalf("status = %v, want completed after last question", s.Status)
	}

	if _, err := applyAdvance(s); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("advance on completed err = %v, want ErrSessionNotFound", err)
	}
}

func TestForceComplete_Idempotent(t *testing.T) {
	s := forceComplete(activeState(3, scoring.ModeEndless))
	if s.Status != StatusCompleted {
		t.Fatalf("status = %v, want completed", s.Status)
	}
	again := forceComplete(s)
	if again.Status != StatusCompleted {
		t.Errorf("second forceComplete status = %v, want completed", again.Status)
	}
}

func TestSessionState_SnapshotsAreIndependent(t *testing.T) {
	s := activeState(3, scoring.ModeEndless)
	q, _ := s.CurrentQuestion()

	next, _, _, err := applyAnswer(s, q.CorrectIndex, 0, false)
	if err != nil {
		t.Fatalf("applyAnswer: %v", err)
	}
	if s.Answered() != 0 || s.Score != 0 || s.Status != StatusActive {
		t.Errorf("prior snapshot mutated: answered=%d score=%d status=%v",
			s.Answered(), s.Score, s.Status)
	}
	if next.Answered() != 1 {
		t.Errorf("next snapshot answered = %d, want 1", next.Answered())
	}
}

func TestBuildSummary_Breakdowns(t *testing.T) {
	s := activeState(4, scoring.ModeEndless)
	for i := 0; i < 3; i++ {
		q, _ := s.CurrentQuestion()
		answer := q.CorrectIndex
		if i == 1 {
			answer = (q.CorrectIndex + 1) % len(q.Options)
		}
		var err error
		s, _, _, err = applyAnswer(s, answer, 0, false)
		if err != nil {
			t.Fatalf("answer %d: %v", i, err)
		}
		s, err = applyAdvance(s)
		if err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}
	s = forceComplete(s)

	done := s.StartTime.Add(90 * time.Second)
	sum := buildSummary(s, done)
	if sum.AnsweredCount != 3 || sum.TotalQuestions != 4 {
		t.Errorf("answered/total = %d/%d, want 3/4", sum.AnsweredCount, sum.TotalQuestions)
	}
	if sum.CorrectCount != 2 || sum.WrongCount != 1 {
		t.Errorf("correct/wrong = %d/%d, want 2/1", sum.CorrectCount, sum.WrongCount)
	}
	if want := 2.0 / 3.0; sum.Accuracy != want {
		t.Errorf("Accuracy = %v, want %v", sum.Accuracy, want)
	}
	if sum.Duration != 90*time.Second {
		t.Errorf("Duration = %v, want 90s", sum.Duration)
	}
	cat := sum.ByCategory["gospels"]
	if cat.Answered != 3 || cat.Correct != 2 {
		t.Errorf("gospels breakdown = %+v, want 3 answered / 2 correct", cat)
	}
	var diffAnswered int
	for _, ds := range sum.ByDifficulty {
		diffAnswered += ds.Answered
	}
	if diffAnswered != 3 {
		t.Errorf("difficulty breakdown covers %d answers, want 3", diffAnswered)
	}
}
