package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles renders list output. Built per writer so colour is only emitted to
// terminals.
type styles struct {
	name    lipgloss.Style
	current lipgloss.Style
	dim     lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		name:    r.NewStyle().Bold(true),
		current: r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		dim:     r.NewStyle().Faint(true),
	}
}
