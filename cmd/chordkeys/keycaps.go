package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var keycapStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1).
	Bold(true)

// renderKeycaps draws every chord of sequence as a keycap, side by side.
func renderKeycaps(sequence string) string {
	tokens := strings.Fields(sequence)
	if len(tokens) == 0 {
		return ""
	}
	caps := make([]string, len(tokens))
	for i, tok := range tokens {
		caps[i] = keycapStyle.Render(tok)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, caps...)
}
