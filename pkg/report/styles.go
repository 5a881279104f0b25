package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	colorCyan    = lipgloss.Color("36")
	colorGreen   = lipgloss.Color("35")
	colorYellow  = lipgloss.Color("220")
	colorBlue    = lipgloss.Color("75")
	colorMagenta = lipgloss.Color("170")
	colorDim     = lipgloss.Color("240")
)

// styles are bound to a renderer for the output writer, so colors follow
// that writer's terminal capabilities rather than stdout's.
type styles struct {
	title    lipgloss.Style
	category lipgloss.Style
	solution lipgloss.Style
	direct   lipgloss.Style
	indirect lipgloss.Style
	dim      lipgloss.Style
	number   lipgloss.Style
}

func newStyles(w io.Writer, noColor bool) styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		title:    r.NewStyle().Bold(true).Foreground(colorCyan),
		category: r.NewStyle().Bold(true).Foreground(colorYellow),
		solution: r.NewStyle().Foreground(colorGreen),
		direct:   r.NewStyle().Foreground(colorBlue),
		indirect: r.NewStyle().Foreground(colorMagenta),
		dim:      r.NewStyle().Foreground(colorDim),
		number:   r.NewStyle().Foreground(colorCyan),
	}
}
