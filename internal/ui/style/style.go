// Package style holds the colors and glyphs shared by log and event output.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
	Iris   = lipgloss.Color("#8B5CF6")
)

// Glyphs.
const (
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Plus    = "+"
	Minus   = "-"
	Tilde   = "~"
)
