// Package styles provides shared lipgloss styles for CLI output.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Tokyo Night color palette.
var (
	ColorGreen  = lipgloss.Color("#9ece6a")
	ColorYellow = lipgloss.Color("#e0af68")
	ColorBlue   = lipgloss.Color("#7aa2f7")
	ColorPurple = lipgloss.Color("#bb9af7")
	ColorGray   = lipgloss.Color("#565f89")
	ColorWhite  = lipgloss.Color("#c0caf5")
)

// Banner ASCII art for the demo header.
const Banner = `
 ╔╗ ╦═╗╔═╗╔═╗╔╦╗╔═╗╔═╗╔═╗╔╦╗
 ╠╩╗╠╦╝║ ║╠═╣ ║║║  ╠═╣╚═╗ ║
 ╚═╝╩╚═╚═╝╩ ╩═╩╝╚═╝╩ ╩╚═╝ ╩ `

// Transcript holds the styles used to render a scenario run. Styles are bound
// to a renderer so color output follows the writer they are printed to.
type Transcript struct {
	Banner    lipgloss.Style
	Section   lipgloss.Style
	Label     lipgloss.Style
	Time      lipgloss.Style
	Sender    lipgloss.Style
	Type      lipgloss.Style
	Content   lipgloss.Style
	Recipient lipgloss.Style
	Muted     lipgloss.Style
	Divider   lipgloss.Style
}

// NewTranscript builds transcript styles for the given renderer.
func NewTranscript(r *lipgloss.Renderer) Transcript {
	return Transcript{
		Banner:    r.NewStyle().Foreground(ColorBlue).Bold(true),
		Section:   r.NewStyle().Foreground(ColorBlue).Bold(true).Underline(true),
		Label:     r.NewStyle().Foreground(ColorYellow).Bold(true),
		Time:      r.NewStyle().Foreground(ColorGray),
		Sender:    r.NewStyle().Foreground(ColorBlue),
		Type:      r.NewStyle().Foreground(ColorPurple),
		Content:   r.NewStyle().Foreground(ColorWhite),
		Recipient: r.NewStyle().Foreground(ColorGreen),
		Muted:     r.NewStyle().Foreground(ColorGray).Italic(true),
		Divider:   r.NewStyle().Foreground(ColorGray),
	}
}
