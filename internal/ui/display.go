package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
)

const (
	// DefaultTermWidth is used when the output is not a terminal.
	DefaultTermWidth = 120
	// MaxContentWidth caps the wrap width of rendered markdown.
	MaxContentWidth = 100
	minContentWidth = 40
)

// TermWidth reports the column count of f, or DefaultTermWidth when f is not
// a terminal or its size cannot be read.
func TermWidth(f *os.File) int {
	fd := f.Fd()
	if !term.IsTerminal(fd) {
		return DefaultTermWidth
	}
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		return w
	}
	return DefaultTermWidth
}

// ContentWidth is the wrap width for records and guides printed to stdout.
func ContentWidth() int {
	return clampContentWidth(TermWidth(os.Stdout))
}

func clampContentWidth(w int) int {
	return min(max(w, minContentWidth), MaxContentWidth)
}
