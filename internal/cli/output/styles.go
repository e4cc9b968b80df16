package output

import (
	"github.com/charmbracelet/lipgloss"
)

// HeaderWidth is the width of section banners.
const HeaderWidth = 70

// Styles holds the lipgloss styles used by the renderer.
type Styles struct {
	Header  lipgloss.Style
	Rule    lipgloss.Style
	Success lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
}

// NewStyles builds styles bound to a lipgloss renderer, so the renderer's
// color profile decides whether ANSI codes are emitted.
func NewStyles(lg *lipgloss.Renderer) *Styles {
	return &Styles{
		Header:  lg.NewStyle().Bold(true),
		Rule:    lg.NewStyle().Foreground(lipgloss.Color("8")),
		Success: lg.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		Info:    lg.NewStyle().Foreground(lipgloss.Color("6")),
		Warning: lg.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		Error:   lg.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		Muted:   lg.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:    lg.NewStyle().Bold(true),
	}
}
