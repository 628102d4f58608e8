package catalog

// Difficulty is the difficulty tier of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// AllDifficulties returns the difficulty tiers in ascending order.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Testament identifies which testament a question draws from.
type Testament string

const (
	TestamentOld  Testament = "old"
	TestamentNew  Testament = "new"
	TestamentBoth Testament = "both"
)

// Question is a single multiple-choice quiz question.
// Questions are immutable once loaded; the engine only ever copies them.
type Question struct {
	// ID is the stable unique identifier for this question.
	ID string

	// Text is the question prompt.
	Text string

	// Options is the ordered list of answer choices (2-4 entries).
	Options []string

	// CorrectIndex is the 0-based index of the correct option.
	CorrectIndex int

	// Category groups questions by topic (e.g. "gospels", "prophets").
	Category string

	// Difficulty is the difficulty tier.
	Difficulty Difficulty

	// Testament is old, new, or both.
	Testament Testament

	// Explanation is an optional note shown after answering.
	Explanation string

	// Reference is an optional scripture reference (e.g. "John 3:16").
	Reference string
}

// Valid reports whether the question is structurally sound: a non-empty
// id and text, 2-4 options, and a correct index within bounds.
func (q Question) Valid() bool {
	if q.ID == "" || q.Text == "" {
		return false
	}
	if len(q.Options) < 2 || len(q.Options) > 4 {
		return false
	}
	return q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options)
}

// clone returns a deep copy so callers can never mutate a source's backing data.
func (q Question) clone() Question {
	out := q
	out.Options = append([]string(nil), q.Options...)
	return out
}

// Filter narrows a catalog query. Zero-value fields match everything.
type Filter struct {
	Category   string
	Difficulty Difficulty
	Testament  Testament
}

// Matches reports whether q passes the filter. A question marked
// TestamentBoth matches any testament filter.
func (f Filter) Matches(q Question) bool {
	if f.Category != "" && q.Category != f.Category {
		return false
	}
	if f.Difficulty != "" && q.Difficulty != f.Difficulty {
		return false
	}
	if f.Testament != "" && f.Testament != TestamentBoth {
		if q.Testament != f.Testament && q.Testament != TestamentBoth {
			return false
		}
	}
	return true
}
