// Package scoring computes points for a single answer event. Everything
// here is pure: the same inputs always produce the same score.
package scoring

import (
	"math"

	"github.com/veritas-labs/versewise/internal/catalog"
)

// GameMode identifies how a session was started. The scorer only cares
// whether the mode is timer-driven.
type GameMode string

const (
	ModeTimed    GameMode = "timed"
	ModeEndless  GameMode = "endless"
	ModeCategory GameMode = "category"
	ModeMixed    GameMode = "mixed"
	ModeLevel    GameMode = "level"
	ModeLearning GameMode = "learning"
)

// TimerDriven reports whether the mode runs a per-question countdown and
// therefore pays a time bonus. Level mode carries the level's own
// per-question budget, so it counts as timer-driven too.
func (m GameMode) TimerDriven() bool {
	return m == ModeTimed || m == ModeLevel
}

// Base point values per difficulty. Static, never negative.
var baseValues = map[catalog.Difficulty]int{
	catalog.DifficultyEasy:   100,
	catalog.DifficultyMedium: 200,
	catalog.DifficultyHard:   300,
}

// BonusCap is the maximum time bonus for an instant answer.
const BonusCap = 50

// BaseValue returns the difficulty's base score. Unknown difficulties
// score as easy.
func BaseValue(d catalog.Difficulty) int {
	if v, ok := baseValues[d]; ok {
		return v
	}
	return baseValues[catalog.DifficultyEasy]
}

// Points scores one answer event. Wrong answers score 0. Correct answers
// earn the difficulty base plus floor(timeRemainingRatio*BonusCap) in
// timer-driven modes; non-timed modes always get a zero time bonus. The
// ratio is clamped to [0,1], and the result is never negative.
func Points(q catalog.Question, isCorrect bool, timeRemainingRatio float64, mode GameMode) int {
	if !isCorrect {
		return 0
	}
	points := BaseValue(q.Difficulty)
	if mode.TimerDriven() {
		ratio := timeRemainingRatio
		if ratio < 0 {
			ratio = 0
		}
		if ratio > 1 {
			ratio = 1
		}
		points += int(math.Floor(ratio * BonusCap))
	}
	return points
}

// StreakMultiplier is the documented extension point layered on top of
// the base+bonus sum by the engine. It never shrinks a score.
func StreakMultiplier(streak int) float64 {
	switch {
	case streak >= 20:
		return 2.0
	case streak >= 10:
		return 1.5
	case streak >= 5:
		return 1.25
	default:
		return 1.0
	}
}
