// Package style provides the colors and icons shared by the logger and the
// build report.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Frost  = lipgloss.Color("#38BDF8")
	Slate  = lipgloss.Color("#667085")
	Muted  = lipgloss.Color("#98A2B3")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Dot     = "●"
	Circle  = "○"
)

// Heading returns the style of a report section title.
func Heading(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Bold(true).Foreground(Frost)
}

// Dim returns the style of secondary report text.
func Dim(r *lipgloss.Renderer) lipgloss.Style {
	return r.NewStyle().Foreground(Muted)
}

// Tinted returns a plain style in color c.
func Tinted(r *lipgloss.Renderer, c lipgloss.Color) lipgloss.Style {
	return r.NewStyle().Foreground(c)
}
