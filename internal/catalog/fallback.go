package catalog

// Fallback returns the embedded minimum-viable question set, used when the
// configured source is unreachable so a session can still start. Sessions
// built from it are flagged degraded in their summary.
//
// The set is small on purpose: enough to cover every difficulty tier and
// both testaments, not a substitute for the real catalog.
func Fallback() []Question {
	return []Question{
		{ID: "fb-001", Text: "How many days did God take to create the world, resting on the seventh?", Options: []string{"Five", "Six", "Seven", "Eight"}, CorrectIndex: 1, Category: "creation", Difficulty: DifficultyEasy, Testament: TestamentOld, Reference: "Genesis 1-2"},
		{ID: "fb-002", Text: "Who built the ark before the great flood?", Options: []string{"Moses", "Abraham", "Noah", "Jonah"}, CorrectIndex: 2, Category: "patriarchs", Difficulty: DifficultyEasy, Testament: TestamentOld, Reference: "Genesis 6"},
		{ID: "fb-003", Text: "In which town was Jesus born?", Options: []string{"Nazareth", "Jerusalem", "Bethlehem", "Capernaum"}, CorrectIndex: 2, Category: "gospels", Difficulty: DifficultyEasy, Testament: TestamentNew, Reference: "Matthew 2:1"},
		{ID: "fb-004", Text: "How many disciples did Jesus choose?", Options: []string{"Seven", "Ten", "Twelve", "Seventy"}, CorrectIndex: 2, Category: "gospels", Difficulty: DifficultyEasy, Testament: TestamentNew, Reference: "Luke 6:13"},
		{ID: "fb-005", Text: "Who led Israel out of Egypt?", Options: []string{"Joshua", "Moses", "Aaron", "David"}, CorrectIndex: 1, Category: "exodus", Difficulty: DifficultyEasy, Testament: TestamentOld, Reference: "Exodus 12"},
		{ID: "fb-006", Text: "Which king asked God for wisdom rather than riches?", Options: []string{"Saul", "David", "Solomon", "Hezekiah"}, CorrectIndex: 2, Category: "kings", Difficulty: DifficultyMedium, Testament: TestamentOld, Reference: "1 Kings 3"},
		{ID: "fb-007", Text: "Who was swallowed by a great fish after fleeing from God?", Options: []string{"Elijah", "Jonah", "Jeremiah", "Amos"}, CorrectIndex: 1, Category: "prophets", Difficulty: DifficultyMedium, Testament: TestamentOld, Reference: "Jonah 1:17"},
		{ID: "fb-008", Text: "On which road was Saul converted?", Options: []string{"Road to Emmaus", "Road to Jericho", "Road to Damascus", "Road to Galilee"}, CorrectIndex: 2, Category: "acts", Difficulty: DifficultyMedium, Testament: TestamentNew, Reference: "Acts 9"},
		{ID: "fb-009", Text: "Who denied Jesus three times before the rooster crowed?", Options: []string{"Judas", "Thomas", "Peter", "John"}, CorrectIndex: 2, Category: "gospels", Difficulty: DifficultyMedium, Testament: TestamentNew, Reference: "Luke 22:61"},
		{ID: "fb-010", Text: "Which book records the fall of Jericho?", Options: []string{"Judges", "Joshua", "Numbers", "Deuteronomy"}, CorrectIndex: 1, Category: "conquest", Difficulty: DifficultyMedium, Testament: TestamentOld, Reference: "Joshua 6"},
		{ID: "fb-011", Text: "Which prophet confronted the prophets of Baal on Mount Carmel?", Options: []string{"Elisha", "Elijah", "Isaiah", "Ezekiel"}, CorrectIndex: 1, Category: "prophets", Difficulty: DifficultyHard, Testament: TestamentOld, Reference: "1 Kings 18"},
		{ID: "fb-012", Text: "To which church did Paul write that love is the greatest of faith, hope, and love?", Options: []string{"Rome", "Ephesus", "Corinth", "Philippi"}, CorrectIndex: 2, Category: "epistles", Difficulty: DifficultyHard, Testament: TestamentNew, Reference: "1 Corinthians 13:13"},
		{ID: "fb-013", Text: "How many churches receive letters in Revelation?", Options: []string{"Five", "Six", "Seven", "Twelve"}, CorrectIndex: 2, Category: "revelation", Difficulty: DifficultyHard, Testament: TestamentNew, Reference: "Revelation 2-3"},
		{ID: "fb-014", Text: "Who interpreted the writing on the wall for Belshazzar?", Options: []string{"Joseph", "Daniel", "Nehemiah", "Ezra"}, CorrectIndex: 1, Category: "prophets", Difficulty: DifficultyHard, Testament: TestamentOld, Reference: "Daniel 5"},
		{ID: "fb-015", Text: "Which psalm begins \"The Lord is my shepherd\"?", Options: []string{"Psalm 1", "Psalm 23", "Psalm 51", "Psalm 119"}, CorrectIndex: 1, Category: "wisdom", Difficulty: DifficultyEasy, Testament: TestamentOld, Reference: "Psalm 23:1"},
	}
}
