package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette — warm, calm tones for devotional reading
var (
	Primary = lipgloss.Color("#D97706") // Amber
	Success = lipgloss.Color("#16A34A") // Green
	Error   = lipgloss.Color("#DC2626") // Red
	Text    = lipgloss.Color("#FAFAF9") // Warm White
	TextDim = lipgloss.Color("#A8A29E") // Stone
	Border  = lipgloss.Color("#44403C") // Dark Stone
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Verse = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Card frames the question block.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(1, 2)
