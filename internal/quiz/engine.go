// Package quiz holds the session state machine and the engine that
// orchestrates catalog, ledger, selector, levels, and scorer for one quiz
// run at a time per user.
package quiz

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veritas-labs/versewise/internal/catalog"
	"github.com/veritas-labs/versewise/internal/ledger"
	"github.com/veritas-labs/versewise/internal/levels"
	"github.com/veritas-labs/versewise/internal/scoring"
	"github.com/veritas-labs/versewise/internal/selector"
)

// Config wires the engine's collaborators. Catalog and Ledger are
// required; everything else has a usable default.
type Config struct {
	Catalog catalog.Source

	// Ledger receives one RecordExposure call per scored answer, invoked
	// synchronously on the submitting goroutine (outside the session
	// lock). Wrap a slow store in ledger.AsyncWriter, as the play command
	// does, to keep answer latency flat.
	Ledger ledger.Ledger

	// Levels is the progression table; defaults to levels.DefaultTable().
	Levels *levels.Calculator

	// Rand seeds all sampling; defaults to a time-seeded source.
	Rand *rand.Rand

	// Clock drives deadlines and timeouts; defaults to RealClock.
	Clock Clock

	// Logger defaults to zap.NewNop().
	Logger *zap.Logger

	// RecentWindow is how long a shown question stays excluded from
	// re-serving; defaults to selector.DefaultRecentWindow.
	RecentWindow time.Duration

	// StreakBonus layers scoring.StreakMultiplier on top of the base
	// score. Off by default.
	StreakBonus bool
}

// AdvanceResult is the outcome of moving past an answered question.
type AdvanceResult struct {
	Status       Status
	NextQuestion *catalog.Question
}

type sessionEntry struct {
	state   SessionState
	timer   *questionTimer
	summary *Summary
}

// Engine manages active sessions. Each session is independently owned;
// the engine does not coordinate concurrent sessions for one user beyond
// evicting the previous session when a new one starts.
type Engine struct {
	catalog catalog.Source
	ledger  ledger.Ledger
	levels  *levels.Calculator
	sel     *selector.Selector
	clock   Clock
	log     *zap.Logger
	window  time.Duration
	bonus   bool

	mu       sync.Mutex
	sessions map[string]*sessionEntry
	byUser   map[string]string
}

// NewEngine creates an engine from cfg.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("new engine: catalog source is required")
	}
	if cfg.Ledger == nil {
		return nil, fmt.Errorf("new engine: ledger is required")
	}
	if cfg.Levels == nil {
		cfg.Levels = levels.MustCalculator(levels.DefaultTable())
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Clock == nil {
		cfg.Clock = RealClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.RecentWindow <= 0 {
		cfg.RecentWindow = selector.DefaultRecentWindow
	}
	return &Engine{
		catalog:  cfg.Catalog,
		ledger:   cfg.Ledger,
		levels:   cfg.Levels,
		sel:      selector.New(cfg.Rand),
		clock:    cfg.Clock,
		log:      cfg.Logger,
		window:   cfg.RecentWindow,
		bonus:    cfg.StreakBonus,
		sessions: make(map[string]*sessionEntry),
		byUser:   make(map[string]string),
	}, nil
}

// StartSession fetches the catalog snapshot and usage stats up front,
// runs the mode's selection strategy, and registers a new Active session.
// An unreachable catalog is recovered locally: the session is built from
// the embedded fallback set and flagged degraded.
func (e *Engine) StartSession(ctx context.Context, opts Options) (*SessionState, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	degraded := false
	pool, err := e.catalog.Query(ctx, opts.filter())
	if err != nil {
		e.log.Warn("catalog unavailable, using fallback set", zap.Error(err))
		pool = filterQuestions(catalog.Fallback(), opts.filter())
		degraded = true
	}

	stats, err := e.ledger.Stats(ctx, opts.UserID)
	if err != nil {
		// Missing history only weakens repetition avoidance.
		e.log.Warn("usage stats unavailable", zap.String("user", opts.UserID), zap.Error(err))
		stats = map[string]ledger.UsageRecord{}
	}

	now := e.clock.Now()
	timePerQuestion := opts.TimePerQuestion
	questions := e.selectQuestions(opts, pool, stats, now, &timePerQuestion)

	if len(questions) == 0 && !degraded {
		// A filter can legitimately match nothing; the fallback set
		// keeps the session playable rather than stillborn.
		e.log.Warn("selection produced no questions, using fallback set")
		questions = e.selectQuestions(opts, catalog.Fallback(), stats, now, &timePerQuestion)
		degraded = true
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("start session: no questions available: %w", catalog.ErrUnavailable)
	}

	state := SessionState{
		SessionID:       uuid.NewString(),
		UserID:          opts.UserID,
		Mode:            opts.Mode,
		Questions:       questions,
		Status:          StatusActive,
		Degraded:        degraded,
		TimePerQuestion: timePerQuestion,
		StartTime:       now,
		answered:        map[int]AnswerResult{},
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// One logical session per user: starting a new one evicts the old.
	if prevID, ok := e.byUser[opts.UserID]; ok {
		if prev, ok := e.sessions[prevID]; ok {
			prev.timer.cancel()
			delete(e.sessions, prevID)
		}
	}

	entry := &sessionEntry{state: state}
	e.sessions[state.SessionID] = entry
	e.byUser[opts.UserID] = state.SessionID
	e.scheduleTimerLocked(entry)

	snapshot := entry.state
	return &snapshot, nil
}

// selectQuestions runs the mode's strategy over a pre-fetched pool.
// Level mode writes its own per-question budget through timePerQuestion.
func (e *Engine) selectQuestions(
	opts Options,
	pool []catalog.Question,
	stats map[string]ledger.UsageRecord,
	now time.Time,
	timePerQuestion *time.Duration,
) []catalog.Question {
	exclude := selector.BuildExcludeSet(stats, now, e.window)

	switch opts.Mode {
	case scoring.ModeLearning:
		return e.sel.WeightedLearningOptimized(pool, stats, opts.Focus, opts.questionCount(), now)
	case scoring.ModeMixed:
		return e.sel.BalancedMixed(pool, opts.questionCount(), nil)
	case scoring.ModeLevel:
		level := e.levels.CurrentLevel(opts.BestScore)
		*timePerQuestion = time.Duration(level.TimePerQuestionSeconds) * time.Second
		return e.sel.LevelBased(pool, level, exclude, stats)
	case scoring.ModeTimed:
		if *timePerQuestion <= 0 {
			*timePerQuestion = DefaultTimePerQuestion
		}
		return e.sel.UniformRandomExcluding(pool, exclude, stats, opts.questionCount())
	default: // endless, category
		return e.sel.UniformRandomExcluding(pool, exclude, stats, opts.questionCount())
	}
}

// SubmitAnswer scores answerIndex against the session's current question.
// AnswerNone marks a timeout. Duplicate submissions for an answered index
// return the cached result without re-scoring; invalid submissions are
// rejected with no mutation.
func (e *Engine) SubmitAnswer(ctx context.Context, sessionID string, answerIndex int) (AnswerResult, error) {
	e.mu.Lock()
	entry, ok := e.sessions[sessionID]
	if !ok {
		e.mu.Unlock()
		return AnswerResult{}, ErrSessionNotFound
	}
	res, applied, err := e.submitLocked(entry, answerIndex)
	var userID, questionID string
	if applied {
		userID = entry.state.UserID
		questionID = entry.state.Questions[res.QuestionIndex].ID
	}
	e.mu.Unlock()

	if err != nil {
		return AnswerResult{}, err
	}
	if applied {
		e.recordExposure(ctx, userID, questionID, res.IsCorrect)
	}
	return res, nil
}

// submitLocked applies one answer to entry under e.mu. applied is false
// for a duplicate submission, where res replays the cached outcome.
func (e *Engine) submitLocked(entry *sessionEntry, answerIndex int) (AnswerResult, bool, error) {
	ratio := entry.timer.remainingRatio(e.clock.Now())
	next, res, applied, err := applyAnswer(entry.state, answerIndex, ratio, e.bonus)
	if err != nil || !applied {
		return res, false, err
	}
	entry.timer.cancel()
	entry.timer = nil
	entry.state = next
	return res, true, nil
}

// recordExposure is the best-effort ledger write for one scored answer.
// Always called without e.mu held, so a slow ledger cannot stall other
// session calls; a failure never touches the session.
func (e *Engine) recordExposure(ctx context.Context, userID, questionID string, correct bool) {
	if err := e.ledger.RecordExposure(ctx, userID, questionID, correct); err != nil {
		e.log.Warn("dropping failed usage write",
			zap.String("user", userID),
			zap.String("question", questionID),
			zap.Error(err))
	}
}

// Advance moves past an answered question. Completing the last question
// builds the summary and terminalizes the session.
func (e *Engine) Advance(_ context.Context, sessionID string) (AdvanceResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.sessions[sessionID]
	if !ok {
		return AdvanceResult{}, ErrSessionNotFound
	}

	next, err := applyAdvance(entry.state)
	if err != nil {
		return AdvanceResult{}, err
	}
	entry.state = next

	if next.Status == StatusCompleted {
		e.completeLocked(entry)
		return AdvanceResult{Status: StatusCompleted}, nil
	}

	e.scheduleTimerLocked(entry)
	q, _ := next.CurrentQuestion()
	return AdvanceResult{Status: StatusActive, NextQuestion: &q}, nil
}

// CompleteSession returns the session's summary. A session that is still
// running is terminalized first (explicit quit); once Completed the call
// is idempotent.
func (e *Engine) CompleteSession(_ context.Context, sessionID string) (*Summary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if entry.summary != nil {
		return entry.summary, nil
	}
	entry.state = forceComplete(entry.state)
	e.completeLocked(entry)
	return entry.summary, nil
}

// Session returns a snapshot of the session state.
func (e *Engine) Session(sessionID string) (*SessionState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry, ok := e.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	snapshot := entry.state
	return &snapshot, nil
}

// completeLocked cancels the timer exactly once and builds the summary.
func (e *Engine) completeLocked(entry *sessionEntry) {
	entry.timer.cancel()
	entry.timer = nil
	if entry.summary == nil {
		entry.summary = buildSummary(entry.state, e.clock.Now())
	}
}

// scheduleTimerLocked arms the per-question countdown for timer-driven
// modes. The callback submits the timeout sentinel; the answered-index
// guard makes a race with a real answer harmless.
func (e *Engine) scheduleTimerLocked(entry *sessionEntry) {
	if !entry.state.Mode.TimerDriven() || entry.state.TimePerQuestion <= 0 {
		return
	}
	sessionID := entry.state.SessionID
	index := entry.state.CurrentIndex
	budget := entry.state.TimePerQuestion

	t := &questionTimer{
		deadline: e.clock.Now().Add(budget),
		total:    budget,
	}
	t.handle = e.clock.AfterFunc(budget, func() {
		e.timeout(sessionID, index)
	})
	entry.timer = t
}

// timeout fires the synthetic timeout answer for a question. The staleness
// check and the submission happen under one lock hold: a callback that
// outlives its cancellation (already running when Stop landed) finds the
// session moved past its index and does nothing.
func (e *Engine) timeout(sessionID string, index int) {
	e.mu.Lock()
	entry, ok := e.sessions[sessionID]
	if !ok || entry.state.Status != StatusActive || entry.state.CurrentIndex != index {
		e.mu.Unlock()
		return
	}
	res, applied, err := e.submitLocked(entry, AnswerNone)
	var userID, questionID string
	if applied {
		userID = entry.state.UserID
		questionID = entry.state.Questions[res.QuestionIndex].ID
	}
	e.mu.Unlock()

	if err != nil {
		e.log.Debug("timeout submission ignored", zap.String("session", sessionID), zap.Error(err))
		return
	}
	if applied {
		e.recordExposure(context.Background(), userID, questionID, res.IsCorrect)
	}
}

// filterQuestions applies a catalog filter to an in-memory set.
func filterQuestions(qs []catalog.Question, f catalog.Filter) []catalog.Question {
	out := make([]catalog.Question, 0, len(qs))
	for _, q := range qs {
		if f.Matches(q) {
			out = append(out, q)
		}
	}
	return out
}
