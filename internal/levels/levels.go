package levels

import "github.com/veritas-labs/versewise/internal/catalog"

// DifficultyMix is the proportion of questions per difficulty in a level.
// The three shares sum to 1.0.
type DifficultyMix struct {
	Easy   float64
	Medium float64
	Hard   float64
}

// Share returns the proportion for one difficulty.
func (m DifficultyMix) Share(d catalog.Difficulty) float64 {
	switch d {
	case catalog.DifficultyEasy:
		return m.Easy
	case catalog.DifficultyMedium:
		return m.Medium
	case catalog.DifficultyHard:
		return m.Hard
	}
	return 0
}

// Largest returns the difficulty with the biggest share. Ties resolve
// toward the harder tier so remainder questions lean challenging.
func (m DifficultyMix) Largest() catalog.Difficulty {
	largest := catalog.DifficultyEasy
	share := m.Easy
	if m.Medium >= share {
		largest, share = catalog.DifficultyMedium, m.Medium
	}
	if m.Hard >= share {
		largest = catalog.DifficultyHard
	}
	return largest
}

// LevelDefinition describes one progression tier.
type LevelDefinition struct {
	// Level is the 1-based tier number.
	Level int

	// ScoreThreshold is the cumulative best score that unlocks the tier.
	// Strictly increasing across the table; level 1 is always 0.
	ScoreThreshold int

	// QuestionCount is how many questions a session at this level serves.
	QuestionCount int

	// TimePerQuestionSeconds is the per-question budget in timed play.
	TimePerQuestionSeconds int

	// Mix is the difficulty distribution for the level's question set.
	Mix DifficultyMix
}

// DefaultTable returns the built-in ten-level progression. Early levels
// are short and easy; later levels lengthen, shorten the clock, and skew
// hard.
func DefaultTable() []LevelDefinition {
	return []LevelDefinition{
		{Level: 1, ScoreThreshold: 0, QuestionCount: 10, TimePerQuestionSeconds: 30, Mix: DifficultyMix{Easy: 0.7, Medium: 0.3, Hard: 0.0}},
		{Level: 2, ScoreThreshold: 1000, QuestionCount: 10, TimePerQuestionSeconds: 30, Mix: DifficultyMix{Easy: 0.6, Medium: 0.4, Hard: 0.0}},
		{Level: 3, ScoreThreshold: 2500, QuestionCount: 12, TimePerQuestionSeconds: 25, Mix: DifficultyMix{Easy: 0.5, Medium: 0.4, Hard: 0.1}},
		{Level: 4, ScoreThreshold: 4500, QuestionCount: 12, TimePerQuestionSeconds: 25, Mix: DifficultyMix{Easy: 0.4, Medium: 0.4, Hard: 0.2}},
		{Level: 5, ScoreThreshold: 7000, QuestionCount: 15, TimePerQuestionSeconds: 20, Mix: DifficultyMix{Easy: 0.3, Medium: 0.5, Hard: 0.2}},
		{Level: 6, ScoreThreshold: 10000, QuestionCount: 15, TimePerQuestionSeconds: 20, Mix: DifficultyMix{Easy: 0.2, Medium: 0.5, Hard: 0.3}},
		{Level: 7, ScoreThreshold: 14000, QuestionCount: 15, TimePerQuestionSeconds: 15, Mix: DifficultyMix{Easy: 0.2, Medium: 0.4, Hard: 0.4}},
		{Level: 8, ScoreThreshold: 19000, QuestionCount: 18, TimePerQuestionSeconds: 15, Mix: DifficultyMix{Easy: 0.1, Medium: 0.4, Hard: 0.5}},
		{Level: 9, ScoreThreshold: 25000, QuestionCount: 18, TimePerQuestionSeconds: 12, Mix: DifficultyMix{Easy: 0.1, Medium: 0.3, Hard: 0.6}},
		{Level: 10, ScoreThreshold: 32000, QuestionCount: 20, TimePerQuestionSeconds: 10, Mix: DifficultyMix{Easy: 0.0, Medium: 0.3, Hard: 0.7}},
	}
}
